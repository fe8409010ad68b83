package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
)

const (
	sharePath           = "/mcm/public/json"
	shareQueryParam     = "shr"
	shareAuthentication = "none"
)

// AssembleShare builds the session parameters for a public share link.
// Shares always use the browser binding and no user authentication; the
// share ID and password travel as session parameters.
func (a *SessionAssembler) AssembleShare(req domain.ShareRequest) (*domain.ShareSession, error) {
	u, err := parseShareURL(req.ShareURL)
	if err != nil {
		return nil, err
	}
	id, err := shareIDOf(u)
	if err != nil {
		return nil, err
	}

	session := &domain.ShareSession{
		SessionResult: domain.SessionResult{
			Parameters:     domain.SessionParameters{},
			ConnectTimeout: clampSeconds(req.ConnectTimeout),
			ReadTimeout:    clampSeconds(req.ReadTimeout),
		},
		ShareID: id,
	}
	params := session.Parameters

	endpoint := url.URL{Scheme: u.Scheme, Host: u.Host, Path: sharePath}
	params[domain.ParamBindingType] = string(domain.BindingBrowser)
	params[domain.ParamBrowserURL] = endpoint.String()
	params[domain.ParamAuthentication] = shareAuthentication
	params[domain.ParamAuthHTTPBasic] = "false"
	params[domain.ParamAuthBearer] = "false"
	params[domain.ParamShareID] = id
	if req.SharePassword != "" {
		params[domain.ParamSharePassword] = req.SharePassword
	}

	setTransport(params, session.ConnectTimeout, session.ReadTimeout)
	session.Locale = setLocale(params, req.Language)
	params[domain.ParamMaxChildren] = strconv.FormatInt(req.MaxChildren, 10)

	return session, nil
}

func parseShareURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidShareURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute HTTP URL", domain.ErrInvalidShareURL, raw)
	}
	return u, nil
}

func shareIDOf(u *url.URL) (string, error) {
	id := u.Query().Get(shareQueryParam)
	if id == "" {
		return "", fmt.Errorf("%w: no share ID", domain.ErrInvalidShareURL)
	}
	return id, nil
}
