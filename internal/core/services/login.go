package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
	"github.com/custodia-labs/cmislogin/internal/core/ports/driven"
	"github.com/custodia-labs/cmislogin/internal/core/ports/driving"
	"github.com/custodia-labs/cmislogin/internal/logger"
)

// Ensure LoginService implements the interface.
var _ driving.LoginService = (*LoginService)(nil)

// LoginService drives endpoint resolution, OAuth discovery and session assembly.
type LoginService struct {
	catalog   *domain.Catalog
	resolver  *EndpointResolver
	assembler *SessionAssembler
	discovery driven.DiscoveryClient
	exchanger driven.TokenExchanger
	shares    driven.ShareChecker
}

// LoginOption configures optional collaborators of a LoginService.
type LoginOption func(*LoginService)

// WithShareChecker sets the checker used by CheckShare.
func WithShareChecker(checker driven.ShareChecker) LoginOption {
	return func(s *LoginService) {
		s.shares = checker
	}
}

// NewLoginService creates a login service.
// discovery and exchanger may be nil; operations that need them then
// return domain.ErrIncompleteOAuthConfig.
func NewLoginService(
	catalog *domain.Catalog,
	discovery driven.DiscoveryClient,
	exchanger driven.TokenExchanger,
	opts ...LoginOption,
) *LoginService {
	if catalog == nil {
		catalog = domain.NewCatalog(nil)
	}
	s := &LoginService{
		catalog:   catalog,
		resolver:  NewEndpointResolver(catalog),
		assembler: NewSessionAssembler(),
		discovery: discovery,
		exchanger: exchanger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the landscape catalog.
func (s *LoginService) Catalog() *domain.Catalog {
	return s.catalog
}

// Resolve computes the service URL.
func (s *LoginService) Resolve(req domain.EndpointRequest) (string, error) {
	return s.resolver.Resolve(normalizeBinding(req))
}

// Discover resolves the endpoint and fetches its OAuth configuration.
func (s *LoginService) Discover(ctx context.Context, req domain.EndpointRequest) (*domain.OAuthServerConfig, error) {
	endpoint, err := s.Resolve(req)
	if err != nil {
		return nil, err
	}
	return s.discover(ctx, endpoint)
}

// AuthorizationURL returns the URL a user visits to obtain an authorization code.
func (s *LoginService) AuthorizationURL(ctx context.Context, req domain.EndpointRequest) (string, error) {
	cfg, err := s.Discover(ctx, req)
	if err != nil {
		return "", err
	}
	authURL, ok := BuildAuthorizationURL(cfg)
	if !ok {
		return "", fmt.Errorf("%w: no valid authorization URL", domain.ErrIncompleteOAuthConfig)
	}
	return authURL, nil
}

// Session assembles the session parameters for a login.
func (s *LoginService) Session(ctx context.Context, req domain.LoginRequest) (*domain.SessionResult, error) {
	endpointReq := normalizeBinding(req.Endpoint)
	endpoint, err := s.resolver.Resolve(endpointReq)
	if err != nil {
		return nil, err
	}

	var exchange *domain.CodeExchange
	if endpointReq.Auth == domain.AuthOAuthCode {
		cfg, err := s.discover(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		exchange, err = BuildCodeExchange(cfg, req.Code)
		if err != nil {
			return nil, err
		}
	}

	result, err := s.assembler.Assemble(domain.SessionRequest{
		URL:            endpoint,
		Binding:        endpointReq.Binding,
		Auth:           endpointReq.Auth,
		Username:       req.Username,
		Secret:         req.Secret,
		Language:       req.Language,
		ConnectTimeout: req.ConnectTimeout,
		ReadTimeout:    req.ReadTimeout,
		MaxChildren:    req.MaxChildren,
		Exchange:       exchange,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("session assembled", "url", endpoint, "auth", endpointReq.Auth,
		"parameters", len(result.Parameters))
	return result, nil
}

// ExchangeCode discovers the token endpoint and trades req.Code for tokens.
func (s *LoginService) ExchangeCode(ctx context.Context, req domain.LoginRequest) (*domain.OAuthToken, error) {
	if s.exchanger == nil {
		return nil, fmt.Errorf("%w: token exchange not configured", domain.ErrIncompleteOAuthConfig)
	}

	endpointReq := req.Endpoint
	endpointReq.Auth = domain.AuthOAuthCode
	cfg, err := s.Discover(ctx, endpointReq)
	if err != nil {
		return nil, err
	}
	exchange, err := BuildCodeExchange(cfg, req.Code)
	if err != nil {
		return nil, err
	}
	return s.exchanger.Exchange(ctx, *exchange)
}

// Share assembles the session parameters for a public share link.
func (s *LoginService) Share(req domain.ShareRequest) (*domain.ShareSession, error) {
	return s.assembler.AssembleShare(req)
}

// CheckShare assembles the share session and confirms the share endpoint
// accepts it.
func (s *LoginService) CheckShare(ctx context.Context, req domain.ShareRequest) (*domain.ShareSession, error) {
	session, err := s.assembler.AssembleShare(req)
	if err != nil {
		return nil, err
	}
	if s.shares == nil {
		return nil, fmt.Errorf("%w: share check not configured", domain.ErrShareUnavailable)
	}
	if err := s.shares.Check(ctx, session); err != nil {
		return nil, err
	}
	logger.Debug("share accepted", "share", session.ShareID, "url", session.Parameters.URL())
	return session, nil
}

// discover fetches the OAuth configuration for an already resolved endpoint
// and turns "no oauth entry" into domain.ErrIncompleteOAuthConfig.
func (s *LoginService) discover(ctx context.Context, endpoint string) (*domain.OAuthServerConfig, error) {
	discoveryURL, err := domain.DiscoveryURL(endpoint)
	if err != nil {
		return nil, err
	}
	if s.discovery == nil {
		return nil, fmt.Errorf("%w: discovery not configured", domain.ErrIncompleteOAuthConfig)
	}

	cfg, err := s.discovery.Discover(ctx, endpoint)
	if err != nil {
		if code, ok := domain.IsDiscoveryHTTPError(err); ok {
			logger.Debug("discovery rejected", "url", discoveryURL, "status", code)
		}
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w found at %s", domain.ErrIncompleteOAuthConfig, discoveryURL)
	}
	return cfg, nil
}

// normalizeBinding switches OAuth logins away from AtomPub: the OAuth
// endpoint only serves the browser binding.
func normalizeBinding(req domain.EndpointRequest) domain.EndpointRequest {
	if req.Auth.IsOAuth() && req.Binding == domain.BindingAtomPub {
		logger.Debug("OAuth requires the browser binding, switching from atompub")
		req.Binding = domain.BindingBrowser
	}
	return req
}
