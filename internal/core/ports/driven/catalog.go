package driven

import "github.com/custodia-labs/cmislogin/internal/core/domain"

// CatalogLoader produces the landscape catalog from a configuration source.
type CatalogLoader interface {
	// Load reads and parses the catalog.
	// Returns domain.ErrCatalogNotFound if no source exists.
	// Unparsable content yields an empty catalog, not an error.
	Load() (*domain.Catalog, error)
}
