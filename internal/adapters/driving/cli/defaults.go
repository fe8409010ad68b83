package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
)

// Configuration keys. Each can be overridden with CMISLOGIN_<LAST SEGMENT>.
const (
	keyLandscape      = "login.landscape"
	keyProvider       = "login.provider"
	keyConsumer       = "login.consumer"
	keyURL            = "login.url"
	keyBinding        = "login.binding"
	keyAuthentication = "login.authentication"
	keyUser           = "login.user"
	keyPassword       = "login.password"
	keyLanguage       = "login.language"
	keyConnectTimeout = "login.connecttimeout"
	keyReadTimeout    = "login.readtimeout"
	keyMaxChildren    = "login.maxchildren"
	keyCatalog        = "login.catalog"
	keyDev            = "login.dev"
	keyVerbose        = "log.verbose"
)

// Built-in defaults used when neither flags nor configuration set a value.
const (
	defaultConnectTimeout = 30
	defaultReadTimeout    = 600
	defaultMaxChildren    = 1000
)

// Numeric login flags that may be passed as negative values.
const (
	flagConnectTimeout = "connect-timeout"
	flagReadTimeout    = "read-timeout"
	flagMaxChildren    = "max-children"
)

// Persistent catalog flags.
var (
	catalogFile string
	devMode     bool
)

// tenantFlags holds the endpoint selection shared by several commands.
type tenantFlags struct {
	landscape string
	provider  string
	consumer  string
	url       string
	binding   string
	auth      string
}

// loginFlags holds the credentials and connection settings of a login.
type loginFlags struct {
	user           string
	password       string
	code           string
	language       string
	connectTimeout int64
	readTimeout    int64
	maxChildren    int64
}

var (
	tenant tenantFlags
	login  loginFlags
)

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "catalog file (default: search ~, . and the bundled copy)")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "use the development catalog")
}

func addTenantFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&tenant.landscape, "landscape", "l", "", "landscape number or name (0 or \"custom\" for --url)")
	f.StringVar(&tenant.provider, "provider", "", "provider alias or name")
	f.StringVar(&tenant.consumer, "consumer", "", "consumer account or name")
	f.StringVar(&tenant.url, "url", "", "service URL for the custom landscape")
	f.StringVarP(&tenant.binding, "binding", "b", "", "binding: browser or atompub")
	f.StringVarP(&tenant.auth, "auth", "a", "", "authentication: basic, oauth-bearer or oauth-code")
}

func addLoginFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&login.user, "user", "u", "", "user name (default $USER)")
	f.StringVarP(&login.password, "password", "p", "", "password, or the bearer token for oauth-bearer")
	f.StringVar(&login.code, "code", "", "OAuth authorization code for oauth-code")
	f.StringVar(&login.language, "language", "", "locale such as de_CH (default $LANG)")
	f.Int64Var(&login.connectTimeout, flagConnectTimeout, defaultConnectTimeout, "connect timeout in seconds")
	f.Int64Var(&login.readTimeout, flagReadTimeout, defaultReadTimeout, "read timeout in seconds")
	f.Int64Var(&login.maxChildren, flagMaxChildren, defaultMaxChildren, "page size for folder listings")
}

// catalogOptions merges the catalog flags with the configuration.
func catalogOptions(cmd *cobra.Command) CatalogOptions {
	opts := CatalogOptions{Path: catalogFile, Dev: devMode}
	if opts.Path == "" {
		opts.Path = configString(keyCatalog)
	}
	if !cmd.Flags().Changed("dev") && configStore != nil {
		opts.Dev = configStore.GetBool(keyDev)
	}
	return opts
}

func configString(key string) string {
	if configStore == nil {
		return ""
	}
	return configStore.GetString(key)
}

func configInt(key string) (int64, bool) {
	if configStore == nil {
		return 0, false
	}
	if _, ok := configStore.Get(key); !ok {
		return 0, false
	}
	return configStore.GetInt64(key), true
}

// firstNonEmpty returns the first non-empty value.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// buildEndpointRequest turns the tenant flags and configuration into an
// endpoint request against catalog.
func buildEndpointRequest(catalog *domain.Catalog) (domain.EndpointRequest, error) {
	var req domain.EndpointRequest

	selection, err := parseLandscape(catalog, firstNonEmpty(tenant.landscape, configString(keyLandscape)),
		firstNonEmpty(tenant.url, configString(keyURL)))
	if err != nil {
		return req, err
	}
	req.Landscape = selection

	if req.Binding, err = domain.ParseBindingMode(
		firstNonEmpty(tenant.binding, configString(keyBinding), string(domain.BindingBrowser))); err != nil {
		return req, err
	}
	if req.Auth, err = domain.ParseAuthMode(firstNonEmpty(tenant.auth, configString(keyAuthentication))); err != nil {
		return req, err
	}

	if selection.IsCustom() {
		return req, nil
	}

	landscape, _ := catalog.Landscape(selection.Index())
	var provider *domain.Provider
	if key := firstNonEmpty(tenant.provider, configString(keyProvider)); key != "" {
		if p, ok := landscape.FindProvider(key); ok {
			provider = &p
			req.Provider = stringPtr(p.Identifier())
		} else {
			req.Provider = stringPtr(key)
		}
	}
	if key := firstNonEmpty(tenant.consumer, configString(keyConsumer)); key != "" {
		req.Consumer = stringPtr(key)
		if provider != nil {
			if c, ok := provider.FindConsumer(key); ok {
				req.Consumer = stringPtr(c.Identifier())
			}
		}
	}
	return req, nil
}

// parseLandscape interprets a landscape number or name. Number 0, an empty
// value and "custom" select the custom landscape; 1..n select catalog
// entries in order.
func parseLandscape(catalog *domain.Catalog, value, rawURL string) (domain.LandscapeSelection, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "0" || strings.EqualFold(value, domain.CustomLandscapeName) {
		return domain.CustomLandscape(rawURL), nil
	}
	if n, err := strconv.Atoi(value); err == nil {
		if n < 0 || n > catalog.Len() {
			return domain.LandscapeSelection{}, fmt.Errorf("%w: %d (catalog has %d)",
				domain.ErrUnknownLandscape, n, catalog.Len())
		}
		return domain.PredefinedLandscape(n - 1), nil
	}
	if i := catalog.IndexOf(value); i >= 0 {
		return domain.PredefinedLandscape(i), nil
	}
	return domain.LandscapeSelection{}, fmt.Errorf("%w: %q", domain.ErrUnknownLandscape, value)
}

// buildLoginRequest adds credentials and connection settings to req.
func buildLoginRequest(cmd *cobra.Command, req domain.EndpointRequest) domain.LoginRequest {
	return domain.LoginRequest{
		Endpoint:       req,
		Username:       firstNonEmpty(login.user, configString(keyUser), os.Getenv("USER")),
		Secret:         firstNonEmpty(login.password, configString(keyPassword)),
		Code:           login.code,
		Language:       firstNonEmpty(login.language, configString(keyLanguage), systemLanguage()),
		ConnectTimeout: intSetting(cmd, flagConnectTimeout, login.connectTimeout, keyConnectTimeout, defaultConnectTimeout),
		ReadTimeout:    intSetting(cmd, flagReadTimeout, login.readTimeout, keyReadTimeout, defaultReadTimeout),
		MaxChildren:    intSetting(cmd, flagMaxChildren, login.maxChildren, keyMaxChildren, defaultMaxChildren),
	}
}

// intSetting prefers a flag set on the command line, then configuration.
// Values are passed on unchanged; clamping is left to the assembler.
func intSetting(cmd *cobra.Command, name string, value int64, key string, def int64) int64 {
	if cmd.Flags().Changed(name) {
		return value
	}
	if v, ok := configInt(key); ok {
		return v
	}
	return def
}

// systemLanguage derives a locale from $LANG, e.g. "de_CH.UTF-8" -> "de_CH".
func systemLanguage() string {
	lang := os.Getenv("LANG")
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	if lang == "C" || lang == "POSIX" {
		return ""
	}
	return lang
}

func stringPtr(s string) *string { return &s }
