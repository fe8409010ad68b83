package domain

import (
	"fmt"
	"strings"
)

// BindingMode is the wire style of the downstream CMIS protocol.
type BindingMode string

const (
	// BindingAtomPub is the AtomPub (XML) binding, kept for legacy clients.
	BindingAtomPub BindingMode = "atompub"
	// BindingBrowser is the Browser (JSON) binding.
	BindingBrowser BindingMode = "browser"
)

// ParseBindingMode accepts any word starting with "a" (AtomPub) or "b" (Browser).
func ParseBindingMode(s string) (BindingMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "a"):
		return BindingAtomPub, nil
	case strings.HasPrefix(s, "b"):
		return BindingBrowser, nil
	default:
		return "", fmt.Errorf("%w: unknown binding %q", ErrInvalidInput, s)
	}
}

// AuthMode is the authentication method used against the repository.
type AuthMode string

const (
	// AuthBasic sends username and password.
	AuthBasic AuthMode = "basic"
	// AuthOAuthBearer sends a user-supplied bearer token.
	AuthOAuthBearer AuthMode = "oauth-bearer"
	// AuthOAuthCode exchanges an authorization code for a token.
	AuthOAuthCode AuthMode = "oauth-code"
)

// IsOAuth reports whether the mode is one of the OAuth variants.
func (m AuthMode) IsOAuth() bool {
	return m == AuthOAuthBearer || m == AuthOAuthCode
}

// ParseAuthMode maps user-facing names to an AuthMode.
// "standard" and "basic" select basic auth, "oauth" and "bearer" the bearer
// flow, "code" the authorization-code flow.
func ParseAuthMode(s string) (AuthMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "basic":
		return AuthBasic, nil
	case "oauth", "bearer", string(AuthOAuthBearer):
		return AuthOAuthBearer, nil
	case "code", string(AuthOAuthCode):
		return AuthOAuthCode, nil
	default:
		return "", fmt.Errorf("%w: unknown authentication %q", ErrInvalidInput, s)
	}
}

// Endpoint path suffixes appended to the tenant base URL.
const (
	PathOAuth   = "/mcm/oauth"
	PathBrowser = "/mcm/b/json"
	PathAtomPub = "/mcm/b/atom"
)

// PathSuffix returns the service path for the given binding and auth mode.
// OAuth endpoints share one path regardless of binding.
func PathSuffix(binding BindingMode, auth AuthMode) string {
	if auth.IsOAuth() {
		return PathOAuth
	}
	if binding == BindingBrowser {
		return PathBrowser
	}
	return PathAtomPub
}

// EndpointRequest carries everything needed to compute a service URL.
type EndpointRequest struct {
	// Landscape is the predefined or custom landscape choice.
	Landscape LandscapeSelection

	// Provider is the provider identifier; nil leaves {provider} untouched.
	Provider *string

	// Consumer is the consumer identifier; nil leaves {consumer} untouched.
	Consumer *string

	Binding BindingMode
	Auth    AuthMode
}

// Locale is a language with an optional region.
type Locale struct {
	Language string
	Region   string
}

func (l Locale) String() string {
	if l.Region == "" {
		return l.Language
	}
	return l.Language + "_" + l.Region
}

// ParseLocale parses a language tag such as "de", "de-CH" or "en_US".
// Input shorter than two characters or starting with a separator yields no locale.
func ParseLocale(s string) (*Locale, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] == '-' || s[0] == '_' {
		return nil, false
	}
	if i := strings.IndexAny(s, "-_"); i > 0 {
		return &Locale{Language: s[:i], Region: s[i+1:]}, true
	}
	return &Locale{Language: s}, true
}

// LoginRequest is the complete set of user choices for one login.
type LoginRequest struct {
	Endpoint EndpointRequest

	Username string

	// Secret is the password (basic) or bearer token (oauth-bearer).
	Secret string

	// Code is the authorization code (oauth-code).
	Code string

	Language       string
	ConnectTimeout int64
	ReadTimeout    int64
	MaxChildren    int64
}
