// Package discovery fetches the OAuth settings a document server publishes
// at its well-known authentication endpoint.
package discovery

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
	"github.com/custodia-labs/cmislogin/internal/core/ports/driven"
)

const (
	connectTimeout = 60 * time.Second
	readTimeout    = 30 * time.Second

	// maxBodySize bounds the settings document.
	maxBodySize = 1 << 20

	oauthType = "oauth"
)

// DefaultUserAgent is sent when no other User-Agent is configured.
const DefaultUserAgent = "cmislogin"

// Verify interface compliance.
var _ driven.DiscoveryClient = (*Client)(nil)

// Client implements driven.DiscoveryClient over HTTP.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for discovery requests.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// NewClient creates a discovery client with a 60s connect and 30s read timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: NewHTTPClient(),
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewHTTPClient returns an http.Client with the discovery timeouts.
// The overall timeout covers a slow connect followed by a slow response.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: connectTimeout + readTimeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   connectTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   connectTimeout,
			ResponseHeaderTimeout: readTimeout,
			IdleConnTimeout:       90 * time.Second,
		},
	}
}

// Discover fetches the settings document for endpoint and returns its first
// OAuth entry. It returns nil and no error when the server offers no OAuth.
func (c *Client) Discover(ctx context.Context, endpoint string) (*domain.OAuthServerConfig, error) {
	discoveryURL, err := domain.DiscoveryURL(endpoint)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discoveryURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidEndpoint, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDiscoveryUnreachable, discoveryURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.DiscoveryHTTPError{StatusCode: resp.StatusCode, URL: discoveryURL}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDiscoveryUnreachable, discoveryURL, err)
	}

	cfg, err := ParseSettings(body)
	if err != nil {
		return nil, fmt.Errorf("%w from %s: %v", domain.ErrDiscoveryInvalidResponse, discoveryURL, err)
	}
	return cfg, nil
}
