package oauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
)

func newTokenServer(t *testing.T, status int, body string) (*httptest.Server, <-chan url.Values) {
	t.Helper()
	forms := make(chan url.Values, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err == nil {
			select {
			case forms <- r.PostForm:
			default:
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, forms
}

func TestConfig(t *testing.T) {
	cfg := Config(domain.CodeExchange{
		TokenURL:     "https://t/token",
		ClientID:     "client",
		ClientSecret: "secret",
		Code:         "code",
		RedirectURL:  "https://r",
	})

	assert.Equal(t, "client", cfg.ClientID)
	assert.Equal(t, "secret", cfg.ClientSecret)
	assert.Equal(t, "https://r", cfg.RedirectURL)
	assert.Equal(t, []string{"cmis_all"}, cfg.Scopes)
	assert.Equal(t, "https://t/token", cfg.Endpoint.TokenURL)
	assert.Equal(t, oauth2.AuthStyleInParams, cfg.Endpoint.AuthStyle)
}

func TestExchanger_Exchange(t *testing.T) {
	srv, forms := newTokenServer(t, http.StatusOK,
		`{"access_token":"access","refresh_token":"refresh","token_type":"bearer","expires_in":3600}`)

	before := time.Now()
	token, err := NewExchanger(srv.Client()).Exchange(context.Background(), domain.CodeExchange{
		TokenURL:     srv.URL + "/token",
		ClientID:     "client",
		ClientSecret: "secret",
		Code:         "the-code",
		RedirectURL:  "https://r",
	})

	require.NoError(t, err)
	assert.Equal(t, "access", token.AccessToken)
	assert.Equal(t, "refresh", token.RefreshToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.True(t, token.Expiry.After(before.Add(59*time.Minute)))

	form := <-forms
	assert.Equal(t, "authorization_code", form.Get("grant_type"))
	assert.Equal(t, "the-code", form.Get("code"))
	assert.Equal(t, "client", form.Get("client_id"))
	assert.Equal(t, "secret", form.Get("client_secret"))
	assert.Equal(t, "https://r", form.Get("redirect_uri"))
}

func TestExchanger_ExchangeServerError(t *testing.T) {
	srv, _ := newTokenServer(t, http.StatusBadRequest,
		`{"error":"invalid_grant","error_description":"code expired"}`)

	_, err := NewExchanger(srv.Client()).Exchange(context.Background(), domain.CodeExchange{
		TokenURL: srv.URL + "/token",
		ClientID: "client",
		Code:     "stale",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant - code expired")
}

func TestExchanger_ExchangeValidation(t *testing.T) {
	e := NewExchanger(nil)

	_, err := e.Exchange(context.Background(), domain.CodeExchange{ClientID: "client", Code: "c"})
	assert.True(t, errors.Is(err, domain.ErrIncompleteOAuthConfig))

	_, err = e.Exchange(context.Background(), domain.CodeExchange{TokenURL: "https://t", ClientID: "client"})
	assert.True(t, errors.Is(err, domain.ErrMissingAuthorizationCode))
}
