package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the service URL of a tenant",
	Long: `Compute the service URL from the landscape, provider and consumer, or
validate a custom URL. The path depends on the binding and authentication.`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func init() {
	addTenantFlags(resolveCmd)
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, _ []string) error {
	svc, err := requireLogin()
	if err != nil {
		return err
	}

	req, err := buildEndpointRequest(svc.Catalog())
	if err != nil {
		return err
	}

	url, err := svc.Resolve(req)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), url)
	return nil
}
