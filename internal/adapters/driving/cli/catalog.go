package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
)

var catalogWatch bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the landscape catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List landscapes, providers and consumers",
	Long: `List the landscapes of the catalog with their providers and consumers.

The number in brackets selects the landscape with --landscape; 0 is the
custom landscape that uses --url.`,
	Args: cobra.NoArgs,
	RunE: runCatalogList,
}

func init() {
	catalogListCmd.Flags().BoolVarP(&catalogWatch, "watch", "w", false, "reprint the catalog whenever its file changes")
	catalogCmd.AddCommand(catalogListCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	svc, err := requireLogin()
	if err != nil {
		return err
	}

	printCatalog(cmd, svc.Catalog())
	if !catalogWatch {
		return nil
	}

	if wiring.WatchCatalog == nil {
		return errors.New("catalog watching not available")
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return wiring.WatchCatalog(ctx, catalogOptions(cmd), func(c *domain.Catalog) {
		fmt.Fprintln(cmd.OutOrStdout())
		printCatalog(cmd, c)
	})
}

func printCatalog(cmd *cobra.Command, catalog *domain.Catalog) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "[0] %s\n", domain.CustomLandscapeName)
	for i, l := range catalog.Landscapes() {
		fmt.Fprintf(w, "[%d] %s  %s\n", i+1, l.DisplayName(), l.URLTemplate)
		for _, p := range l.Providers {
			fmt.Fprintf(w, "      %s\n", p.DisplayName())
			for _, c := range p.Consumers {
				fmt.Fprintf(w, "        %s\n", c.DisplayName())
			}
		}
	}
}
