package driving

import (
	"context"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
)

// LoginService turns tenant choices into a finished CMIS session configuration.
type LoginService interface {
	// Catalog returns the landscape catalog (possibly empty, never nil).
	Catalog() *domain.Catalog

	// Resolve computes the service URL.
	Resolve(req domain.EndpointRequest) (string, error)

	// Discover resolves the endpoint and fetches its OAuth configuration.
	// Returns domain.ErrIncompleteOAuthConfig if the server has no OAuth entry.
	Discover(ctx context.Context, req domain.EndpointRequest) (*domain.OAuthServerConfig, error)

	// AuthorizationURL returns the URL a user visits to obtain an authorization code.
	AuthorizationURL(ctx context.Context, req domain.EndpointRequest) (string, error)

	// Session assembles the session parameters for a login.
	// For the code flow this discovers the OAuth configuration first.
	Session(ctx context.Context, req domain.LoginRequest) (*domain.SessionResult, error)

	// ExchangeCode discovers the token endpoint and trades req.Code for tokens.
	ExchangeCode(ctx context.Context, req domain.LoginRequest) (*domain.OAuthToken, error)

	// Share assembles the session parameters for a public share link.
	Share(req domain.ShareRequest) (*domain.ShareSession, error)

	// CheckShare assembles the share session and confirms the share
	// endpoint accepts its credentials.
	CheckShare(ctx context.Context, req domain.ShareRequest) (*domain.ShareSession, error)
}
