// Package cli implements the cmislogin command line.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
	"github.com/custodia-labs/cmislogin/internal/core/ports/driven"
	"github.com/custodia-labs/cmislogin/internal/core/ports/driving"
	"github.com/custodia-labs/cmislogin/internal/logger"
)

// version is set by SetVersion from the build.
var version = "dev"

var (
	configPath string
	verbose    bool
)

// Services used by the commands. They are created lazily from wiring.
var (
	loginService driving.LoginService
	configStore  driven.ConfigStore
	wiring       Wiring
)

// errLoginNotConfigured is returned when no login service is available.
var errLoginNotConfigured = errors.New("login service not configured")

// CatalogOptions selects the catalog document.
type CatalogOptions struct {
	// Path is an explicit catalog file; empty searches the default locations.
	Path string

	// Dev selects the development catalog.
	Dev bool
}

// Wiring connects the commands to their adapters.
type Wiring struct {
	// OpenConfig opens the configuration store at path ("" for the default).
	OpenConfig func(path string) (driven.ConfigStore, error)

	// NewLogin builds the login service over the selected catalog.
	NewLogin func(opts CatalogOptions) (driving.LoginService, error)

	// WatchCatalog blocks until ctx is done, calling onChange whenever the
	// catalog document changes.
	WatchCatalog func(ctx context.Context, opts CatalogOptions, onChange func(*domain.Catalog)) error
}

var rootCmd = &cobra.Command{
	Use:   "cmislogin",
	Short: "Resolve CMIS endpoints and assemble login sessions",
	Long: `cmislogin computes the service URL of a document center tenant from the
landscape catalog, discovers the server's OAuth settings and prints the
session parameters a CMIS client needs to log in.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.cmislogin/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetWiring installs the adapter constructors used by the commands.
func SetWiring(w Wiring) {
	wiring = w
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices opens the config store and builds the login service once.
func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if configStore == nil && wiring.OpenConfig != nil {
		store, err := wiring.OpenConfig(configPath)
		if err != nil {
			return err
		}
		configStore = store
	}
	if verbose || (configStore != nil && configStore.GetBool(keyVerbose)) {
		logger.SetVerbose(true)
	}

	if loginService == nil && wiring.NewLogin != nil {
		svc, err := wiring.NewLogin(catalogOptions(cmd))
		if err != nil {
			return err
		}
		loginService = svc
	}
	return nil
}

func requireLogin() (driving.LoginService, error) {
	if loginService == nil {
		return nil, errLoginNotConfigured
	}
	return loginService, nil
}
