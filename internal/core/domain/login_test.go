package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBindingMode(t *testing.T) {
	tests := []struct {
		input string
		want  BindingMode
	}{
		{"atompub", BindingAtomPub},
		{"AtomPub", BindingAtomPub},
		{"a", BindingAtomPub},
		{"browser", BindingBrowser},
		{" Browser ", BindingBrowser},
		{"b", BindingBrowser},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBindingMode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseBindingMode("json")
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = ParseBindingMode("")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestParseAuthMode(t *testing.T) {
	tests := []struct {
		input string
		want  AuthMode
	}{
		{"", AuthBasic},
		{"standard", AuthBasic},
		{"Basic", AuthBasic},
		{"oauth", AuthOAuthBearer},
		{"bearer", AuthOAuthBearer},
		{"oauth-bearer", AuthOAuthBearer},
		{"code", AuthOAuthCode},
		{"OAUTH-CODE", AuthOAuthCode},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAuthMode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseAuthMode("kerberos")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestAuthMode_IsOAuth(t *testing.T) {
	assert.False(t, AuthBasic.IsOAuth())
	assert.True(t, AuthOAuthBearer.IsOAuth())
	assert.True(t, AuthOAuthCode.IsOAuth())
}

func TestPathSuffix(t *testing.T) {
	assert.Equal(t, "/mcm/b/atom", PathSuffix(BindingAtomPub, AuthBasic))
	assert.Equal(t, "/mcm/b/json", PathSuffix(BindingBrowser, AuthBasic))

	for _, b := range []BindingMode{BindingAtomPub, BindingBrowser} {
		assert.Equal(t, "/mcm/oauth", PathSuffix(b, AuthOAuthBearer))
		assert.Equal(t, "/mcm/oauth", PathSuffix(b, AuthOAuthCode))
	}
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   *Locale
		wantOK bool
	}{
		{"language only", "de", &Locale{Language: "de"}, true},
		{"dash separator", "de-CH", &Locale{Language: "de", Region: "CH"}, true},
		{"underscore separator", "en_US", &Locale{Language: "en", Region: "US"}, true},
		{"first separator wins", "en_US-x", &Locale{Language: "en", Region: "US-x"}, true},
		{"trimmed", "  fr  ", &Locale{Language: "fr"}, true},
		{"empty", "", nil, false},
		{"whitespace", "   ", nil, false},
		{"single char", "d", nil, false},
		{"leading dash", "-CH", nil, false},
		{"leading underscore", "_US", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLocale(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocale_String(t *testing.T) {
	assert.Equal(t, "de", Locale{Language: "de"}.String())
	assert.Equal(t, "de_CH", Locale{Language: "de", Region: "CH"}.String())
}
