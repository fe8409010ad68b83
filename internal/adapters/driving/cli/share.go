package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
)

var (
	shareURL      string
	sharePassword string
	shareFormat   string
	shareCheck    bool
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Print the session parameters for a public share link",
	Long: `Print the session parameters for a public share. The share ID is taken
from the "shr" parameter of the link and doubles as the start folder.
With --check the share endpoint is requested first to confirm the share
and its password are accepted.`,
	Args: cobra.NoArgs,
	RunE: runShare,
}

func init() {
	f := shareCmd.Flags()
	f.StringVar(&shareURL, "share-url", "", "link to the share")
	f.StringVar(&sharePassword, "share-password", "", "share password, if the share has one")
	f.BoolVar(&shareCheck, "check", false, "request the share endpoint before printing the parameters")
	f.StringVarP(&shareFormat, "format", "f", formatProperties, "output format: json, toml or properties")
	f.StringVar(&login.language, "language", "", "locale such as de_CH (default $LANG)")
	rootCmd.AddCommand(shareCmd)
}

func runShare(cmd *cobra.Command, _ []string) error {
	svc, err := requireLogin()
	if err != nil {
		return err
	}
	if shareURL == "" {
		return errors.New("--share-url is required")
	}

	defaults := buildLoginRequest(cmd, domain.EndpointRequest{})
	req := domain.ShareRequest{
		ShareURL:       shareURL,
		SharePassword:  sharePassword,
		Language:       defaults.Language,
		ConnectTimeout: defaults.ConnectTimeout,
		ReadTimeout:    defaults.ReadTimeout,
		MaxChildren:    defaults.MaxChildren,
	}

	var session *domain.ShareSession
	if shareCheck {
		session, err = svc.CheckShare(cmd.Context(), req)
	} else {
		session, err = svc.Share(req)
	}
	if err != nil {
		return err
	}

	cmd.PrintErrf("Share %s\n", session.ShareID)
	return writeParameters(cmd, session.Parameters, shareFormat)
}
