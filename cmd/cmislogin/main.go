// Command cmislogin resolves document center endpoints and prints CMIS
// session parameters.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/cmislogin/internal/adapters/driven/catalog/file"
	configfile "github.com/custodia-labs/cmislogin/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cmislogin/internal/adapters/driven/discovery"
	"github.com/custodia-labs/cmislogin/internal/adapters/driven/oauth"
	"github.com/custodia-labs/cmislogin/internal/adapters/driven/share"
	"github.com/custodia-labs/cmislogin/internal/adapters/driving/cli"
	"github.com/custodia-labs/cmislogin/internal/core/domain"
	"github.com/custodia-labs/cmislogin/internal/core/ports/driven"
	"github.com/custodia-labs/cmislogin/internal/core/ports/driving"
	"github.com/custodia-labs/cmislogin/internal/core/services"
	"github.com/custodia-labs/cmislogin/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetWiring(cli.Wiring{
		OpenConfig: func(path string) (driven.ConfigStore, error) {
			return configfile.NewConfigStore(path)
		},
		NewLogin:     newLoginService,
		WatchCatalog: watchCatalog,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newCatalogLoader(opts cli.CatalogOptions) *file.Loader {
	return file.NewLoader(file.WithPath(opts.Path), file.WithDev(opts.Dev))
}

func newLoginService(opts cli.CatalogOptions) (driving.LoginService, error) {
	catalog, err := newCatalogLoader(opts).Load()
	if err != nil {
		// The catalog is a convenience; custom URLs still work without it.
		logger.Warn("no catalog loaded", "error", err)
		catalog = domain.NewCatalog(nil)
	}

	discoveryClient := discovery.NewClient(discovery.WithUserAgent("cmislogin/" + version))
	httpClient := discovery.NewHTTPClient()
	exchanger := oauth.NewExchanger(httpClient)
	shareChecker := share.NewChecker(httpClient)

	return services.NewLoginService(catalog, discoveryClient, exchanger,
		services.WithShareChecker(shareChecker)), nil
}

func watchCatalog(ctx context.Context, opts cli.CatalogOptions, onChange func(*domain.Catalog)) error {
	loader := newCatalogLoader(opts)
	path := loader.Locate()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		// Nothing on disk yet: wait for the user's copy to appear.
		path = filepath.Join(home, loader.FileName())
	}
	return file.NewWatcher(loader, path, file.DefaultDebounce).Watch(ctx, onChange)
}
