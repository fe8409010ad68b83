package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
)

var discoverShowSecret bool

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Show the server's OAuth settings",
	Long: `Fetch the authentication settings published by the tenant's server and
print the first OAuth entry. The client secret is masked unless
--show-secret is given.`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	addTenantFlags(discoverCmd)
	discoverCmd.Flags().BoolVar(&discoverShowSecret, "show-secret", false, "print the client secret")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, _ []string) error {
	svc, err := requireLogin()
	if err != nil {
		return err
	}

	req, err := buildEndpointRequest(svc.Catalog())
	if err != nil {
		return err
	}
	req.Auth = domain.AuthOAuthCode

	cfg, err := svc.Discover(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := *cfg
	if !discoverShowSecret && out.ClientSecret != "" {
		out.ClientSecret = maskSecret(out.ClientSecret)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func maskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
