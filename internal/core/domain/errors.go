package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent login configuration failures.
// Callers match them with errors.Is; messages are wrapped with context.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownLandscape indicates a landscape selection outside the catalog.
	ErrUnknownLandscape = errors.New("unknown landscape")

	// ErrCatalogNotFound indicates no catalog file or bundled resource exists.
	ErrCatalogNotFound = errors.New("catalog not found")

	// ErrInvalidEndpoint indicates a malformed custom URL or an unsupported scheme.
	ErrInvalidEndpoint = errors.New("invalid endpoint")

	// ErrInvalidShareURL indicates a share link without a share ID.
	ErrInvalidShareURL = errors.New("invalid share URL")

	// ErrShareUnavailable indicates the share endpoint rejected the share
	// credentials or could not be reached.
	ErrShareUnavailable = errors.New("share unavailable")

	// Discovery Errors.

	// ErrDiscoveryUnreachable indicates the discovery document could not be fetched
	// because of a network or transport failure.
	ErrDiscoveryUnreachable = errors.New("discovery endpoint unreachable")

	// ErrDiscoveryHTTP is matched by every *DiscoveryHTTPError.
	ErrDiscoveryHTTP = errors.New("discovery request failed")

	// ErrDiscoveryInvalidResponse indicates unparsable JSON or an unexpected shape.
	ErrDiscoveryInvalidResponse = errors.New("discovery response invalid")

	// OAuth Errors.

	// ErrIncompleteOAuthConfig indicates discovery returned no usable OAuth entry
	// for the requested operation.
	ErrIncompleteOAuthConfig = errors.New("no valid OAuth configuration")

	// ErrMissingAuthorizationCode indicates the code flow was invoked without a code.
	ErrMissingAuthorizationCode = errors.New("no authorization code provided")
)

// DiscoveryHTTPError is returned when the discovery endpoint answers with a
// status other than 200.
type DiscoveryHTTPError struct {
	StatusCode int
	URL        string
}

func (e *DiscoveryHTTPError) Error() string {
	return fmt.Sprintf("could not load authentication data from %s: response code %d", e.URL, e.StatusCode)
}

// Is makes errors.Is(err, ErrDiscoveryHTTP) hold for any status.
func (e *DiscoveryHTTPError) Is(target error) bool {
	return target == ErrDiscoveryHTTP
}

// IsDiscoveryHTTPError reports whether err is a non-200 discovery response
// and returns its status code.
func IsDiscoveryHTTPError(err error) (int, bool) {
	var httpErr *DiscoveryHTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}
	return 0, false
}

// IsOAuthUnavailable reports whether err means the server offers no usable
// OAuth configuration, as opposed to a transport or protocol failure.
func IsOAuthUnavailable(err error) bool {
	return errors.Is(err, ErrIncompleteOAuthConfig)
}
