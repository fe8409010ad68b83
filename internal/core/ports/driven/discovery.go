package driven

import (
	"context"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
)

// DiscoveryClient fetches the server's authentication settings document.
type DiscoveryClient interface {
	// Discover derives the discovery URL from a resolved service endpoint,
	// fetches it and returns the first "oauth" entry.
	// A nil config with a nil error means the server advertises no OAuth entry.
	Discover(ctx context.Context, endpoint string) (*domain.OAuthServerConfig, error)
}

// TokenExchanger trades an authorization code for tokens at the token endpoint.
type TokenExchanger interface {
	Exchange(ctx context.Context, exchange domain.CodeExchange) (*domain.OAuthToken, error)
}
