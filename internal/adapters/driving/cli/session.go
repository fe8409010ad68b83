package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
)

var sessionFormat string

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Print the CMIS session parameters for a login",
	Long: `Resolve the tenant's service URL and print the session parameters a CMIS
client needs to log in.

Basic authentication uses --user and --password. OAuth bearer login takes
the access token in --password. The OAuth code flow discovers the token
endpoint and needs --code; run "cmislogin authorize" to obtain one.`,
	Args: cobra.NoArgs,
	RunE: runSession,
}

func init() {
	addTenantFlags(sessionCmd)
	addLoginFlags(sessionCmd)
	sessionCmd.Flags().StringVarP(&sessionFormat, "format", "f", formatProperties, "output format: json, toml or properties")
	rootCmd.AddCommand(sessionCmd)
}

func runSession(cmd *cobra.Command, _ []string) error {
	svc, err := requireLogin()
	if err != nil {
		return err
	}

	endpoint, err := buildEndpointRequest(svc.Catalog())
	if err != nil {
		return err
	}
	req := buildLoginRequest(cmd, endpoint)

	if req.Secret == "" && endpoint.Auth != domain.AuthOAuthCode && isTerminal() {
		label := "Password"
		if endpoint.Auth == domain.AuthOAuthBearer {
			label = "Access token"
		}
		cmd.PrintErrf("%s: ", label)
		secret, err := readSecret()
		cmd.PrintErrln()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", label, err)
		}
		req.Secret = secret
	}

	result, err := svc.Session(cmd.Context(), req)
	if err != nil {
		printOAuthHint(cmd, err)
		return err
	}
	if result.ConnectTimeout != req.ConnectTimeout || result.ReadTimeout != req.ReadTimeout {
		cmd.PrintErrf("Warning: timeouts adjusted to connect=%ds read=%ds\n",
			result.ConnectTimeout, result.ReadTimeout)
	}

	return writeParameters(cmd, result.Parameters, sessionFormat)
}
