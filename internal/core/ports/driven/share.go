package driven

import (
	"context"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
)

// ShareChecker verifies that a public share accepts its credentials.
type ShareChecker interface {
	// Check requests the share's browser binding endpoint with the share
	// headers. It returns domain.ErrShareUnavailable on any failure.
	Check(ctx context.Context, session *domain.ShareSession) error
}
