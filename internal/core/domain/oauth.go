package domain

import (
	"fmt"
	"net/url"
)

// DiscoveryPath is the server path of the authentication settings document.
const DiscoveryPath = "/mcm/public/rest/v1/settings/auth"

// AuthorizationScope is the scope requested in the authorization-code flow.
const AuthorizationScope = "cmis_all"

// OAuthServerConfig is the "oauth" entry of the discovery document.
// Empty fields were absent from the server response.
type OAuthServerConfig struct {
	TokenURL     string `json:"tokenURL,omitempty"`
	ClientID     string `json:"clientId,omitempty"`
	ClientSecret string `json:"clientSecret,omitempty"`
	AuthURL      string `json:"authURL,omitempty"`
	RedirectURL  string `json:"redirectURL,omitempty"`
}

// CanAuthorize reports whether an authorization URL can be built.
func (c *OAuthServerConfig) CanAuthorize() bool {
	return c != nil && c.AuthURL != "" && c.ClientID != "" && c.RedirectURL != ""
}

// CanExchange reports whether an authorization code can be exchanged.
func (c *OAuthServerConfig) CanExchange() bool {
	return c != nil && c.TokenURL != "" && c.ClientID != ""
}

// CodeExchange is the session parameter fragment for the authorization-code flow.
type CodeExchange struct {
	TokenURL     string `json:"tokenURL"`
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret,omitempty"`
	Code         string `json:"code"`
	RedirectURL  string `json:"redirectURL,omitempty"`
}

// DiscoveryURL derives the discovery document URL from a resolved endpoint.
// Only scheme and host are kept. The port stays: a server on a non-default
// port publishes its settings on that same port.
func DiscoveryURL(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q has no scheme or host", ErrInvalidEndpoint, endpoint)
	}
	return (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: DiscoveryPath}).String(), nil
}
