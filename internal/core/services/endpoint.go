package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
)

// EndpointResolver computes service URLs from catalog selections.
// It is a pure function over its inputs and the read-only catalog.
type EndpointResolver struct {
	catalog *domain.Catalog
}

// NewEndpointResolver creates a resolver over the given catalog.
// A nil catalog behaves like an empty one.
func NewEndpointResolver(catalog *domain.Catalog) *EndpointResolver {
	return &EndpointResolver{catalog: catalog}
}

// Resolve returns the service URL for the request.
func (r *EndpointResolver) Resolve(req domain.EndpointRequest) (string, error) {
	suffix := domain.PathSuffix(req.Binding, req.Auth)

	if req.Landscape.IsCustom() {
		return resolveCustom(req.Landscape.RawURL(), suffix)
	}

	landscape, ok := r.catalog.Landscape(req.Landscape.Index())
	if !ok {
		return "", fmt.Errorf("%w: index %d of %d", domain.ErrUnknownLandscape,
			req.Landscape.Index(), r.catalog.Len())
	}

	return expandTemplate(landscape.URLTemplate, req.Provider, req.Consumer) + suffix, nil
}

// expandTemplate substitutes the selected identifiers in a single pass so
// that a value containing a placeholder (or regex metacharacters) is
// inserted literally. A nil selection leaves its placeholder in place.
func expandTemplate(template string, provider, consumer *string) string {
	var pairs []string
	if provider != nil {
		pairs = append(pairs, domain.ProviderPlaceholder, *provider)
	}
	if consumer != nil {
		pairs = append(pairs, domain.ConsumerPlaceholder, *consumer)
	}
	if len(pairs) == 0 {
		return template
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// resolveCustom validates a user-entered URL.
// A bare host gets https:// and the path suffix; an empty or root path gets
// the suffix; any other path is kept as the user entered it.
func resolveCustom(raw, suffix string) (string, error) {
	text := strings.TrimSpace(raw)
	if !strings.Contains(text, "/") {
		text = "https://" + text + suffix
	}

	u, err := url.Parse(text)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidEndpoint, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("%w: not a HTTP protocol: %q", domain.ErrInvalidEndpoint, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host in %q", domain.ErrInvalidEndpoint, raw)
	}

	if u.Path == "" || u.Path == "/" {
		u = u.ResolveReference(&url.URL{Path: suffix})
	}
	return u.String(), nil
}
