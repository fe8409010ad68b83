// Package oauth exchanges authorization codes for tokens and builds
// bearer-authenticated HTTP clients.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
	"github.com/custodia-labs/cmislogin/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.TokenExchanger = (*Exchanger)(nil)

// Exchanger implements driven.TokenExchanger with golang.org/x/oauth2.
type Exchanger struct {
	httpClient *http.Client
}

// NewExchanger creates a token exchanger.
// A nil httpClient uses http.DefaultClient.
func NewExchanger(httpClient *http.Client) *Exchanger {
	return &Exchanger{httpClient: httpClient}
}

// Config converts a code exchange into an oauth2 configuration.
// Client credentials are sent in the request body.
func Config(ex domain.CodeExchange) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     ex.ClientID,
		ClientSecret: ex.ClientSecret,
		RedirectURL:  ex.RedirectURL,
		Scopes:       []string{domain.AuthorizationScope},
		Endpoint: oauth2.Endpoint{
			TokenURL:  ex.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// Exchange trades the authorization code for tokens.
func (e *Exchanger) Exchange(ctx context.Context, ex domain.CodeExchange) (*domain.OAuthToken, error) {
	if ex.TokenURL == "" || ex.ClientID == "" {
		return nil, fmt.Errorf("%w: token URL and client ID are required", domain.ErrIncompleteOAuthConfig)
	}
	if ex.Code == "" {
		return nil, domain.ErrMissingAuthorizationCode
	}

	if e.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, e.httpClient)
	}

	token, err := Config(ex).Exchange(ctx, ex.Code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.ErrorCode != "" {
			return nil, fmt.Errorf("token error: %s - %s", retrieveErr.ErrorCode, retrieveErr.ErrorDescription)
		}
		return nil, fmt.Errorf("token request: %w", err)
	}

	return toDomainToken(token), nil
}

func toDomainToken(t *oauth2.Token) *domain.OAuthToken {
	return &domain.OAuthToken{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.Type(),
		Expiry:       t.Expiry,
	}
}
