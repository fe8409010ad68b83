// Package share authenticates HTTP requests against a public share and
// checks that a share accepts its credentials.
package share

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
)

// Header names understood by the public share endpoint.
const (
	HeaderShareID       = "x-public-link"
	HeaderSharePassword = "x-pwd"
)

// Transport adds the share credentials to every request.
type Transport struct {
	ShareID  string
	Password string

	// Base is the underlying transport. Nil means http.DefaultTransport.
	Base http.RoundTripper
}

// NewTransport builds a transport from the parameters of a share session.
func NewTransport(params domain.SessionParameters, base http.RoundTripper) *Transport {
	return &Transport{
		ShareID:  params[domain.ParamShareID],
		Password: params[domain.ParamSharePassword],
		Base:     base,
	}
}

// NewClient returns a copy of base that authenticates as the share.
// A nil base means http.DefaultClient.
func NewClient(session *domain.ShareSession, base *http.Client) *http.Client {
	if base == nil {
		base = http.DefaultClient
	}
	client := *base
	client.Transport = NewTransport(session.Parameters, base.Transport)
	return &client
}

// RoundTrip implements http.RoundTripper.
// The request is cloned; the caller's request is not modified.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set(HeaderShareID, encode(t.ShareID))
	if t.Password != "" {
		r.Header.Set(HeaderSharePassword, encode(t.Password))
	}
	return t.base().RoundTrip(r)
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
