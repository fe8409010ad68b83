package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func testCatalog() *domain.Catalog {
	return domain.NewCatalog([]domain.Landscape{
		{
			Name:        "Europe",
			URLTemplate: "https://{provider}-{consumer}.eu.example.com",
			Providers: []domain.Provider{
				{Name: "Acme", Alias: "acme", Consumers: []domain.Consumer{{Name: "Sales", Account: "sales01"}}},
			},
		},
		{Name: "Fixed", URLTemplate: "https://docs.example.com"},
		{Name: "Twice", URLTemplate: "https://{provider}.example.com/{provider}"},
	})
}

func TestEndpointResolver_Predefined(t *testing.T) {
	resolver := NewEndpointResolver(testCatalog())

	tests := []struct {
		name string
		req  domain.EndpointRequest
		want string
	}{
		{
			name: "browser basic",
			req: domain.EndpointRequest{
				Landscape: domain.PredefinedLandscape(0),
				Provider:  strPtr("acme"), Consumer: strPtr("sales01"),
				Binding: domain.BindingBrowser, Auth: domain.AuthBasic,
			},
			want: "https://acme-sales01.eu.example.com/mcm/b/json",
		},
		{
			name: "atompub basic",
			req: domain.EndpointRequest{
				Landscape: domain.PredefinedLandscape(0),
				Provider:  strPtr("acme"), Consumer: strPtr("sales01"),
				Binding: domain.BindingAtomPub, Auth: domain.AuthBasic,
			},
			want: "https://acme-sales01.eu.example.com/mcm/b/atom",
		},
		{
			name: "oauth bearer",
			req: domain.EndpointRequest{
				Landscape: domain.PredefinedLandscape(0),
				Provider:  strPtr("acme"), Consumer: strPtr("sales01"),
				Binding: domain.BindingAtomPub, Auth: domain.AuthOAuthBearer,
			},
			want: "https://acme-sales01.eu.example.com/mcm/oauth",
		},
		{
			name: "template without placeholders",
			req: domain.EndpointRequest{
				Landscape: domain.PredefinedLandscape(1),
				Provider:  strPtr("acme"),
				Binding:   domain.BindingBrowser, Auth: domain.AuthBasic,
			},
			want: "https://docs.example.com/mcm/b/json",
		},
		{
			name: "absent selections keep placeholders",
			req: domain.EndpointRequest{
				Landscape: domain.PredefinedLandscape(0),
				Binding:   domain.BindingBrowser, Auth: domain.AuthBasic,
			},
			want: "https://{provider}-{consumer}.eu.example.com/mcm/b/json",
		},
		{
			name: "empty selection substitutes empty",
			req: domain.EndpointRequest{
				Landscape: domain.PredefinedLandscape(0),
				Provider:  strPtr("acme"), Consumer: strPtr(""),
				Binding: domain.BindingBrowser, Auth: domain.AuthBasic,
			},
			want: "https://acme-.eu.example.com/mcm/b/json",
		},
		{
			name: "every occurrence replaced",
			req: domain.EndpointRequest{
				Landscape: domain.PredefinedLandscape(2),
				Provider:  strPtr("acme"),
				Binding:   domain.BindingBrowser, Auth: domain.AuthBasic,
			},
			want: "https://acme.example.com/acme/mcm/b/json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEndpointResolver_LiteralSubstitution(t *testing.T) {
	resolver := NewEndpointResolver(testCatalog())

	tests := []struct {
		name     string
		provider string
		consumer string
		want     string
	}{
		{"dollar", "a$1", "$0", "https://a$1-$0.eu.example.com/mcm/b/json"},
		{"backslash", `a\b`, `c\\d`, `https://a\b-c\\d.eu.example.com/mcm/b/json`},
		{"regex metacharacters", "a.*+?", "(x)[y]", "https://a.*+?-(x)[y].eu.example.com/mcm/b/json"},
		{"placeholder inside value", "{consumer}", "sales01", "https://{consumer}-sales01.eu.example.com/mcm/b/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(domain.EndpointRequest{
				Landscape: domain.PredefinedLandscape(0),
				Provider:  strPtr(tt.provider),
				Consumer:  strPtr(tt.consumer),
				Binding:   domain.BindingBrowser,
				Auth:      domain.AuthBasic,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEndpointResolver_OAuthCodeAlwaysOAuthPath(t *testing.T) {
	resolver := NewEndpointResolver(testCatalog())

	for _, binding := range []domain.BindingMode{domain.BindingAtomPub, domain.BindingBrowser} {
		for _, landscape := range []domain.LandscapeSelection{
			domain.PredefinedLandscape(0),
			domain.PredefinedLandscape(1),
			domain.CustomLandscape("example.com"),
			domain.CustomLandscape("https://example.com/"),
		} {
			got, err := resolver.Resolve(domain.EndpointRequest{
				Landscape: landscape,
				Provider:  strPtr("acme"),
				Consumer:  strPtr("sales01"),
				Binding:   binding,
				Auth:      domain.AuthOAuthCode,
			})
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(got, "/mcm/oauth"), got)
		}
	}
}

func TestEndpointResolver_Custom(t *testing.T) {
	resolver := NewEndpointResolver(nil)

	tests := []struct {
		name    string
		raw     string
		binding domain.BindingMode
		auth    domain.AuthMode
		want    string
	}{
		{"bare host browser", "example.com", domain.BindingBrowser, domain.AuthBasic, "https://example.com/mcm/b/json"},
		{"bare host atompub", "example.com", domain.BindingAtomPub, domain.AuthBasic, "https://example.com/mcm/b/atom"},
		{"bare host with port", "localhost:8443", domain.BindingBrowser, domain.AuthOAuthBearer, "https://localhost:8443/mcm/oauth"},
		{"path preserved", "http://localhost:8080/custom/path", domain.BindingAtomPub, domain.AuthBasic, "http://localhost:8080/custom/path"},
		{"root path completed", "https://example.com/", domain.BindingBrowser, domain.AuthBasic, "https://example.com/mcm/b/json"},
		{"empty path completed", "http://example.com", domain.BindingAtomPub, domain.AuthBasic, "http://example.com/mcm/b/atom"},
		{"query dropped with root path", "https://example.com/?x=1", domain.BindingBrowser, domain.AuthBasic, "https://example.com/mcm/b/json"},
		{"scheme case insensitive", "HTTPS://example.com/a", domain.BindingBrowser, domain.AuthBasic, "https://example.com/a"},
		{"surrounding whitespace", "  example.com ", domain.BindingBrowser, domain.AuthBasic, "https://example.com/mcm/b/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(domain.EndpointRequest{
				Landscape: domain.CustomLandscape(tt.raw),
				Binding:   tt.binding,
				Auth:      tt.auth,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEndpointResolver_CustomInvalid(t *testing.T) {
	resolver := NewEndpointResolver(nil)

	for _, raw := range []string{
		"ftp://example.com/files",
		"file:///etc/passwd",
		"example.com/path",
		"",
		"http://[::1/x",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := resolver.Resolve(domain.EndpointRequest{
				Landscape: domain.CustomLandscape(raw),
				Binding:   domain.BindingBrowser,
				Auth:      domain.AuthBasic,
			})
			assert.True(t, errors.Is(err, domain.ErrInvalidEndpoint), "got %v", err)
		})
	}
}

func TestEndpointResolver_UnknownLandscape(t *testing.T) {
	resolver := NewEndpointResolver(testCatalog())

	_, err := resolver.Resolve(domain.EndpointRequest{
		Landscape: domain.PredefinedLandscape(3),
		Binding:   domain.BindingBrowser,
		Auth:      domain.AuthBasic,
	})
	assert.True(t, errors.Is(err, domain.ErrUnknownLandscape))

	_, err = resolver.Resolve(domain.EndpointRequest{
		Landscape: domain.PredefinedLandscape(-1),
	})
	assert.True(t, errors.Is(err, domain.ErrUnknownLandscape))
}

func TestEndpointResolver_DiscoveryRoundTrip(t *testing.T) {
	resolver := NewEndpointResolver(testCatalog())

	requests := []domain.EndpointRequest{
		{Landscape: domain.PredefinedLandscape(0), Provider: strPtr("acme"), Consumer: strPtr("sales01"), Auth: domain.AuthOAuthCode},
		{Landscape: domain.CustomLandscape("example.com"), Binding: domain.BindingBrowser},
		{Landscape: domain.CustomLandscape("http://localhost:8080/custom/path?q=1"), Binding: domain.BindingAtomPub},
	}
	hosts := []string{"acme-sales01.eu.example.com", "example.com", "localhost:8080"}

	for i, req := range requests {
		endpoint, err := resolver.Resolve(req)
		require.NoError(t, err)

		discoveryURL, err := domain.DiscoveryURL(endpoint)
		require.NoError(t, err)

		assert.Contains(t, discoveryURL, "://"+hosts[i]+"/mcm/public/rest/v1/settings/auth")
		assert.NotContains(t, discoveryURL, "?")
	}
}
