package share

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
	"github.com/custodia-labs/cmislogin/internal/core/ports/driven"
)

// Ensure Checker implements the interface.
var _ driven.ShareChecker = (*Checker)(nil)

// maxBodySize bounds how much of the answer is drained.
const maxBodySize = 1 << 20

// Checker requests a share endpoint to confirm the share is reachable.
type Checker struct {
	httpClient *http.Client
}

// NewChecker creates a checker. A nil client means http.DefaultClient.
func NewChecker(httpClient *http.Client) *Checker {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Checker{httpClient: httpClient}
}

// Check sends a GET to the session's browser URL with the share headers.
func (c *Checker) Check(ctx context.Context, session *domain.ShareSession) error {
	endpoint := session.Parameters.URL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrShareUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := NewClient(session, c.httpClient).Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrShareUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s answered %d", domain.ErrShareUnavailable, endpoint, resp.StatusCode)
	}
	return nil
}
