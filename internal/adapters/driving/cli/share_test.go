package cli

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cmislogin/internal/adapters/driven/share"
	"github.com/custodia-labs/cmislogin/internal/core/domain"
	"github.com/custodia-labs/cmislogin/internal/core/services"
)

func TestShareCmd(t *testing.T) {
	setupTestServices(t)

	stdout, stderr, err := runCommand(t, "share",
		"--share-url", "https://docs.example.com:8443/mcm/web?shr=abc123",
		"--share-password", "pw")

	require.NoError(t, err)
	assert.Contains(t, stderr, "Share abc123")
	assert.Contains(t, stdout, domain.ParamBrowserURL+"=https://docs.example.com:8443/mcm/public/json\n")
	assert.Contains(t, stdout, domain.ParamShareID+"=abc123\n")
	assert.Contains(t, stdout, domain.ParamSharePassword+"=pw\n")
	assert.Contains(t, stdout, domain.ParamLocaleRegion+"=CH\n")
}

func TestShareCmd_Errors(t *testing.T) {
	setupTestServices(t)

	_, _, err := runCommand(t, "share")
	assert.Error(t, err)

	_, _, err = runCommand(t, "share", "--share-url", "https://docs.example.com/")
	assert.ErrorIs(t, err, domain.ErrInvalidShareURL)
}

func TestShareCmd_Check(t *testing.T) {
	shareIDs := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		shareIDs <- r.Header.Get(share.HeaderShareID)
		if r.Header.Get(share.HeaderSharePassword) != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	setLoginService(t, services.NewLoginService(testCatalog(), nil, nil,
		services.WithShareChecker(share.NewChecker(srv.Client()))))

	stdout, _, err := runCommand(t, "share", "--share-url", srv.URL+"/mcm/web?shr=abc123",
		"--share-password", "pw", "--check")

	require.NoError(t, err)
	assert.Equal(t, "abc123", <-shareIDs)
	assert.Contains(t, stdout, domain.ParamShareID+"=abc123\n")

	stdout, _, err = runCommand(t, "share", "--share-url", srv.URL+"/mcm/web?shr=abc123",
		"--share-password", "wrong", "--check")

	assert.ErrorIs(t, err, domain.ErrShareUnavailable)
	assert.Equal(t, "abc123", <-shareIDs)
	assert.Empty(t, stdout)
}
