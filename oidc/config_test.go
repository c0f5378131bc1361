package oidc

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		issuer       string
		clientID     string
		clientSecret ClientSecret
		supported    []Alg
		redirectURL  string
		opt          []Option
		wantIsErrs   []error
	}{
		{
			name:         "valid",
			issuer:       "https://accounts.example.com",
			clientID:     "client-id",
			clientSecret: "client-secret",
			supported:    []Alg{RS256},
			redirectURL:  "https://example.com/callback",
		},
		{
			name:         "valid-with-options",
			issuer:       "https://accounts.example.com",
			clientID:     "client-id",
			clientSecret: "client-secret",
			supported:    []Alg{ES256},
			redirectURL:  "https://example.com/callback",
			opt: []Option{
				WithScopes("profile", "email", "profile"),
				WithAudiences("aud-1"),
				WithLogger(hclog.NewNullLogger()),
			},
		},
		{
			name:         "empty-client-id",
			issuer:       "https://accounts.example.com",
			clientSecret: "client-secret",
			supported:    []Alg{RS256},
			redirectURL:  "https://example.com/callback",
			wantIsErrs:   []error{ErrInvalidParameter},
		},
		{
			name:        "empty-client-secret",
			issuer:      "https://accounts.example.com",
			clientID:    "client-id",
			supported:   []Alg{RS256},
			redirectURL: "https://example.com/callback",
			wantIsErrs:  []error{ErrInvalidParameter},
		},
		{
			name:         "empty-redirect-url",
			issuer:       "https://accounts.example.com",
			clientID:     "client-id",
			clientSecret: "client-secret",
			supported:    []Alg{RS256},
			wantIsErrs:   []error{ErrInvalidParameter},
		},
		{
			name:         "empty-issuer",
			issuer:       "",
			clientID:     "client-id",
			clientSecret: "client-secret",
			supported:    []Alg{RS256},
			redirectURL:  "https://example.com/callback",
			wantIsErrs:   []error{ErrInvalidParameter},
		},
		{
			name:         "issuer-scheme-not-http",
			issuer:       "ldap://accounts.example.com",
			clientID:     "client-id",
			clientSecret: "client-secret",
			supported:    []Alg{RS256},
			redirectURL:  "https://example.com/callback",
			wantIsErrs:   []error{ErrInvalidIssuer},
		},
		{
			name:         "unparsable-issuer",
			issuer:       "https://accounts example.com",
			clientID:     "client-id",
			clientSecret: "client-secret",
			supported:    []Alg{RS256},
			redirectURL:  "https://example.com/callback",
			wantIsErrs:   []error{ErrInvalidIssuer},
		},
		{
			name:         "empty-algs",
			issuer:       "https://accounts.example.com",
			clientID:     "client-id",
			clientSecret: "client-secret",
			redirectURL:  "https://example.com/callback",
			wantIsErrs:   []error{ErrInvalidParameter},
		},
		{
			name:         "unsupported-alg",
			issuer:       "https://accounts.example.com",
			clientID:     "client-id",
			clientSecret: "client-secret",
			supported:    []Alg{"none"},
			redirectURL:  "https://example.com/callback",
			wantIsErrs:   []error{ErrInvalidParameter},
		},
		{
			name:        "multiple-problems-are-all-reported",
			issuer:      "ldap://accounts.example.com",
			supported:   []Alg{RS256},
			redirectURL: "https://example.com/callback",
			wantIsErrs:  []error{ErrInvalidParameter, ErrInvalidIssuer},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert, require := assert.New(t), require.New(t)
			got, err := NewConfig(tt.issuer, tt.clientID, tt.clientSecret, tt.supported, tt.redirectURL, tt.opt...)
			if len(tt.wantIsErrs) > 0 {
				require.Error(err)
				for _, wantIs := range tt.wantIsErrs {
					assert.ErrorIs(err, wantIs)
				}
				return
			}
			require.NoError(err)
			require.NotNil(got)
			assert.Equal(tt.issuer, got.Issuer)
			assert.Equal(tt.clientID, got.ClientID)
			assert.Equal(tt.clientSecret, got.ClientSecret)
			assert.Equal(tt.redirectURL, got.RedirectURL)
		})
	}
}

func TestNewConfig_DeduplicatesScopes(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	c, err := NewConfig(
		"https://accounts.example.com",
		"client-id",
		"client-secret",
		[]Alg{RS256},
		"https://example.com/callback",
		WithScopes("profile", "email", "profile"),
	)
	require.NoError(err)
	require.Equal([]string{"profile", "email"}, c.Scopes)
}

func TestConfig_Validate_NilConfig(t *testing.T) {
	t.Parallel()
	var c *Config
	require.ErrorIs(t, c.Validate(), ErrNilParameter)
}

func TestClientSecret_Redaction(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	const secret = ClientSecret("super-secret")

	assert.Equal(RedactedClientSecret, secret.String())
	assert.Equal(RedactedClientSecret, fmt.Sprintf("%s", secret))
	assert.Equal(RedactedClientSecret, fmt.Sprintf("%v", secret))

	b, err := json.Marshal(secret)
	require.NoError(err)
	assert.Equal(`"`+RedactedClientSecret+`"`, string(b))
}
