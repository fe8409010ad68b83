package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Exchange an OAuth authorization code for tokens",
	Long: `Discover the tenant's token endpoint and exchange the authorization code
from "cmislogin authorize" for an access token. The access token can be used
with "cmislogin session --auth oauth-bearer --password <token>".`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func init() {
	addTenantFlags(tokenCmd)
	tokenCmd.Flags().StringVar(&login.code, "code", "", "OAuth authorization code")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	svc, err := requireLogin()
	if err != nil {
		return err
	}
	if login.code == "" {
		return errors.New("--code is required")
	}

	endpoint, err := buildEndpointRequest(svc.Catalog())
	if err != nil {
		return err
	}

	token, err := svc.ExchangeCode(cmd.Context(), buildLoginRequest(cmd, endpoint))
	if err != nil {
		printOAuthHint(cmd, err)
		return err
	}
	if token.IsExpired() {
		cmd.PrintErrf("Warning: the access token expired at %s\n", token.Expiry.Format(time.RFC3339))
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
