package domain

import "sort"

// Session parameter keys understood by the CMIS client.
const (
	paramPrefix = "org.apache.chemistry.opencmis."

	ParamBindingType    = paramPrefix + "binding.spi.type"
	ParamAtomPubURL     = paramPrefix + "binding.atompub.url"
	ParamBrowserURL     = paramPrefix + "binding.browser.url"
	ParamUser           = paramPrefix + "user"
	ParamPassword       = paramPrefix + "password"
	ParamAuthHTTPBasic  = paramPrefix + "binding.auth.http.basic"
	ParamAuthBearer     = paramPrefix + "binding.auth.http.oauth.bearer"
	ParamAccessToken    = paramPrefix + "oauth.accessToken"
	ParamCSRFHeader     = paramPrefix + "binding.csrf.header"
	ParamLocaleLanguage = paramPrefix + "locale.iso639"
	ParamLocaleRegion   = paramPrefix + "locale.iso3166"
	ParamConnectTimeout = paramPrefix + "binding.connecttimeout"
	ParamReadTimeout    = paramPrefix + "binding.readtimeout"
	ParamCompression    = paramPrefix + "binding.compression"
	ParamCookies        = paramPrefix + "binding.cookies"

	ParamTokenEndpoint = paramPrefix + "oauth.tokenEndpoint"
	ParamClientID      = paramPrefix + "oauth.clientId"
	ParamClientSecret  = paramPrefix + "oauth.clientSecret"
	ParamCode          = paramPrefix + "oauth.code"
	ParamRedirectURI   = paramPrefix + "oauth.redirectURI"

	ParamAuthentication = "cmis.workbench.authentication"
	ParamMaxChildren    = "cmis.workbench.folder.maxChildren"

	ParamShareID       = "com.sap.mcm.share.id"
	ParamSharePassword = "com.sap.mcm.share.password"
)

// CSRFHeader is the header the repository expects the CSRF token in.
const CSRFHeader = "X-CSRF-Token"

// SessionParameters is the flat configuration handed to the CMIS client.
type SessionParameters map[string]string

// Keys returns the parameter names in sorted order.
func (p SessionParameters) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// URL returns the service URL for whichever binding is configured.
func (p SessionParameters) URL() string {
	if u, ok := p[ParamBrowserURL]; ok {
		return u
	}
	return p[ParamAtomPubURL]
}

// SessionRequest is the input of the session parameter assembler.
type SessionRequest struct {
	URL      string
	Binding  BindingMode
	Auth     AuthMode
	Username string

	// Secret is the password for basic auth or the token for bearer auth.
	Secret string

	// Language is a raw language tag; empty disables the locale.
	Language string

	// ConnectTimeout and ReadTimeout are in seconds; negatives are clamped to 0.
	ConnectTimeout int64
	ReadTimeout    int64

	// MaxChildren limits folder listings; 0 disables getChildren calls.
	MaxChildren int64

	// Exchange is required for AuthOAuthCode.
	Exchange *CodeExchange
}

// SessionResult is the assembled configuration plus the values that were
// corrected during assembly, for display back to the user.
type SessionResult struct {
	Parameters SessionParameters

	// ConnectTimeout and ReadTimeout are the effective (clamped) seconds.
	ConnectTimeout int64
	ReadTimeout    int64

	Locale *Locale
}

// ShareRequest describes a public-share login.
type ShareRequest struct {
	ShareURL       string
	SharePassword  string
	Language       string
	ConnectTimeout int64
	ReadTimeout    int64
	MaxChildren    int64
}

// ShareSession is the session configuration for a public share.
type ShareSession struct {
	SessionResult

	// ShareID identifies the share and doubles as the start folder.
	ShareID string
}
