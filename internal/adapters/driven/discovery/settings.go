package discovery

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
)

// ParseSettings finds the first OAuth entry in a settings document.
//
// The document is an array of objects, each with an "authentication" array
// of objects carrying a "type". Entries of the wrong shape are skipped.
// A nil config with a nil error means no entry has type "oauth".
func ParseSettings(data []byte) (*domain.OAuthServerConfig, error) {
	var groups []json.RawMessage
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, err
	}
	if groups == nil {
		return nil, errors.New("settings document is not an array")
	}

	for _, raw := range groups {
		var group struct {
			Authentication []json.RawMessage `json:"authentication"`
		}
		if err := json.Unmarshal(raw, &group); err != nil {
			continue
		}
		for _, entryRaw := range group.Authentication {
			var entry map[string]json.RawMessage
			if err := json.Unmarshal(entryRaw, &entry); err != nil || entry == nil {
				continue
			}
			var typ string
			if err := json.Unmarshal(entry["type"], &typ); err != nil || typ != oauthType {
				continue
			}
			return &domain.OAuthServerConfig{
				TokenURL:     field(entry, "tokenURL"),
				ClientID:     field(entry, "clientId"),
				ClientSecret: field(entry, "clientSecret"),
				AuthURL:      field(entry, "authURL"),
				RedirectURL:  field(entry, "redirectURL"),
			}, nil
		}
	}
	return nil, nil
}

// field returns a member as text: strings unquoted, other scalars in their
// JSON spelling, null or absent as "".
func field(entry map[string]json.RawMessage, key string) string {
	raw := bytes.TrimSpace(entry[key])
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
