package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
)

// BuildAuthorizationURL returns the URL a user opens in a browser to obtain
// an authorization code. It returns false when the configuration lacks the
// authorization URL, client ID or redirect URL.
func BuildAuthorizationURL(cfg *domain.OAuthServerConfig) (string, bool) {
	if !cfg.CanAuthorize() {
		return "", false
	}
	return cfg.AuthURL +
		"?client_id=" + encodeURL(cfg.ClientID) +
		"&response_type=code&scope=" + domain.AuthorizationScope +
		"&redirect_uri=" + encodeURL(cfg.RedirectURL), true
}

// BuildCodeExchange assembles the code-flow session fragment.
func BuildCodeExchange(cfg *domain.OAuthServerConfig, code string) (*domain.CodeExchange, error) {
	if cfg == nil {
		return nil, domain.ErrIncompleteOAuthConfig
	}
	if !cfg.CanExchange() {
		return nil, fmt.Errorf("%w: token URL and client ID are required", domain.ErrIncompleteOAuthConfig)
	}

	code = strings.TrimSpace(code)
	if code == "" {
		if authURL, ok := BuildAuthorizationURL(cfg); ok {
			return nil, fmt.Errorf("%w: request an OAuth code at %s", domain.ErrMissingAuthorizationCode, authURL)
		}
		return nil, domain.ErrMissingAuthorizationCode
	}

	return &domain.CodeExchange{
		TokenURL:     cfg.TokenURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Code:         code,
		RedirectURL:  cfg.RedirectURL,
	}, nil
}

// encodeURL percent-encodes a query component with spaces as %20.
func encodeURL(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
