package services

import (
	"fmt"
	"math"
	"strconv"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
)

// SessionAssembler merges login choices into CMIS session parameters.
// It keeps no state between calls.
type SessionAssembler struct{}

// NewSessionAssembler creates a new session assembler.
func NewSessionAssembler() *SessionAssembler {
	return &SessionAssembler{}
}

// Assemble builds the session parameters for req.
// Negative timeouts are clamped to zero, oversized ones to the largest value
// that converts to milliseconds, and the clamped values are reported back.
func (a *SessionAssembler) Assemble(req domain.SessionRequest) (*domain.SessionResult, error) {
	if req.Auth == domain.AuthOAuthCode && req.Exchange == nil {
		return nil, fmt.Errorf("%w: code flow requires a code exchange", domain.ErrIncompleteOAuthConfig)
	}

	result := &domain.SessionResult{
		Parameters:     domain.SessionParameters{},
		ConnectTimeout: clampSeconds(req.ConnectTimeout),
		ReadTimeout:    clampSeconds(req.ReadTimeout),
	}
	params := result.Parameters

	params[domain.ParamBindingType] = string(req.Binding)
	if req.Binding == domain.BindingBrowser {
		params[domain.ParamBrowserURL] = req.URL
	} else {
		params[domain.ParamAtomPubURL] = req.URL
	}

	params[domain.ParamAuthentication] = string(req.Auth)
	switch req.Auth {
	case domain.AuthBasic:
		params[domain.ParamUser] = req.Username
		params[domain.ParamPassword] = req.Secret
		params[domain.ParamAuthHTTPBasic] = "true"
		params[domain.ParamAuthBearer] = "false"
	case domain.AuthOAuthBearer:
		if req.Username != "" {
			params[domain.ParamUser] = req.Username
		}
		params[domain.ParamAccessToken] = req.Secret
		params[domain.ParamAuthHTTPBasic] = "false"
		params[domain.ParamAuthBearer] = "true"
	case domain.AuthOAuthCode:
		params[domain.ParamAuthHTTPBasic] = "false"
		params[domain.ParamAuthBearer] = "false"
		mergeCodeExchange(params, req.Exchange)
	}

	setTransport(params, result.ConnectTimeout, result.ReadTimeout)
	result.Locale = setLocale(params, req.Language)
	params[domain.ParamMaxChildren] = strconv.FormatInt(req.MaxChildren, 10)

	return result, nil
}

func mergeCodeExchange(params domain.SessionParameters, ex *domain.CodeExchange) {
	params[domain.ParamTokenEndpoint] = ex.TokenURL
	params[domain.ParamClientID] = ex.ClientID
	params[domain.ParamClientSecret] = ex.ClientSecret
	params[domain.ParamCode] = ex.Code
	params[domain.ParamRedirectURI] = ex.RedirectURL
}

// setTransport writes the connection settings shared by every login type.
func setTransport(params domain.SessionParameters, connectSecs, readSecs int64) {
	params[domain.ParamCSRFHeader] = domain.CSRFHeader
	params[domain.ParamCompression] = "true"
	params[domain.ParamCookies] = "true"
	params[domain.ParamConnectTimeout] = strconv.FormatInt(connectSecs*1000, 10)
	params[domain.ParamReadTimeout] = strconv.FormatInt(readSecs*1000, 10)
}

func setLocale(params domain.SessionParameters, language string) *domain.Locale {
	locale, ok := domain.ParseLocale(language)
	if !ok {
		return nil
	}
	params[domain.ParamLocaleLanguage] = locale.Language
	if locale.Region != "" {
		params[domain.ParamLocaleRegion] = locale.Region
	}
	return locale
}

// maxTimeoutSeconds is the largest timeout whose millisecond value fits in an int64.
const maxTimeoutSeconds = math.MaxInt64 / 1000

// clampSeconds limits a timeout to [0, maxTimeoutSeconds].
func clampSeconds(s int64) int64 {
	switch {
	case s < 0:
		return 0
	case s > maxTimeoutSeconds:
		return maxTimeoutSeconds
	}
	return s
}
