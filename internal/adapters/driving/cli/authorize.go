package cli

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
)

var authorizeOpen bool

// openBrowser is replaced in tests.
var openBrowser = OpenBrowser

var authorizeCmd = &cobra.Command{
	Use:   "authorize",
	Short: "Print the URL that issues an OAuth authorization code",
	Long: `Discover the tenant's OAuth settings and print the authorization URL.
Open it in a browser, sign in and pass the code shown to
"cmislogin session --auth oauth-code --code <code>".`,
	Args: cobra.NoArgs,
	RunE: runAuthorize,
}

func init() {
	addTenantFlags(authorizeCmd)
	authorizeCmd.Flags().BoolVar(&authorizeOpen, "open", false, "open the URL in the default browser")
	rootCmd.AddCommand(authorizeCmd)
}

func runAuthorize(cmd *cobra.Command, _ []string) error {
	svc, err := requireLogin()
	if err != nil {
		return err
	}

	req, err := buildEndpointRequest(svc.Catalog())
	if err != nil {
		return err
	}
	req.Auth = domain.AuthOAuthCode

	authURL, err := svc.AuthorizationURL(cmd.Context(), req)
	if err != nil {
		printOAuthHint(cmd, err)
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), authURL)

	if authorizeOpen {
		if err := openBrowser(authURL); err != nil {
			cmd.PrintErrf("Could not open browser: %v\n", err)
		}
	}
	return nil
}

// printOAuthHint suggests a non-OAuth login when the server has no usable
// OAuth configuration.
func printOAuthHint(cmd *cobra.Command, err error) {
	if domain.IsOAuthUnavailable(err) {
		cmd.PrintErrln("Hint: this server offers no usable OAuth login; try --auth basic")
	}
}

// OpenBrowser opens url in the platform's default browser.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux", "freebsd", "openbsd":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
