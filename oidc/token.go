package oidc

import (
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// AccessToken is an oauth access_token
type AccessToken string

// RedactedAccessToken is the redacted string or json for an oauth access_token
const RedactedAccessToken = "[REDACTED: access_token]"

// String will redact the token
func (t AccessToken) String() string {
	return RedactedAccessToken
}

// MarshalJSON will redact the token
func (t AccessToken) MarshalJSON() ([]byte, error) {
	return json.Marshal(RedactedAccessToken)
}

// RefreshToken is an oauth refresh_token
type RefreshToken string

// RedactedRefreshToken is the redacted string or json for an oauth refresh_token
const RedactedRefreshToken = "[REDACTED: refresh_token]"

// String will redact the token
func (t RefreshToken) String() string {
	return RedactedRefreshToken
}

// MarshalJSON will redact the token
func (t RefreshToken) MarshalJSON() ([]byte, error) {
	return json.Marshal(RedactedRefreshToken)
}

// DefaultTokenExpirySkew defines a default time skew when checking a Token's
// expiration.
const DefaultTokenExpirySkew = 10 * time.Second

// Token represents the credentials obtained from an authorization code
// exchange: an oauth2 access_token and optional refresh_token, plus the raw
// id_token when the provider returned one.  IDToken may be empty; callers
// that require one must treat its absence as a validation failure.
type Token struct {
	AccessToken  AccessToken
	RefreshToken RefreshToken
	IDToken      string
	Expiry       time.Time
}

// NewToken creates a Token from a successful oauth2 exchange response.  The
// id_token is pulled from the response's extras when present.
func NewToken(t *oauth2.Token) (*Token, error) {
	const op = "oidc.NewToken"
	if t == nil {
		return nil, fmt.Errorf("%s: oauth2 token is nil: %w", op, ErrNilParameter)
	}
	tk := &Token{
		AccessToken:  AccessToken(t.AccessToken),
		RefreshToken: RefreshToken(t.RefreshToken),
		Expiry:       t.Expiry,
	}
	if idToken, ok := t.Extra("id_token").(string); ok {
		tk.IDToken = idToken
	}
	return tk, nil
}

// Expired returns true when the token's access token is expired.  Supports
// the WithExpirySkew option and if none is provided it will use the
// DefaultTokenExpirySkew.  Tokens without a known expiry never report
// expired.
func (t *Token) Expired(opt ...Option) bool {
	if t == nil {
		return true
	}
	if t.Expiry.IsZero() {
		return false
	}
	opts := getTokenOpts(opt...)
	return t.Expiry.Round(0).Before(time.Now().Add(opts.withExpirySkew))
}

// Valid returns true when the token has an access token which is not expired.
func (t *Token) Valid() bool {
	if t == nil {
		return false
	}
	if t.AccessToken == "" {
		return false
	}
	return !t.Expired()
}

// StaticTokenSource returns a TokenSource that always returns the same token.
// It's suitable for things like userinfo requests which authenticate with the
// access token.
func (t *Token) StaticTokenSource() oauth2.TokenSource {
	if t == nil {
		return nil
	}
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: string(t.AccessToken),
		TokenType:   "Bearer",
	})
}

// tokenOptions is the set of available options for Token functions
type tokenOptions struct {
	withExpirySkew time.Duration
}

// tokenDefaults is a handy way to get the defaults at runtime and during unit
// tests.
func tokenDefaults() tokenOptions {
	return tokenOptions{
		withExpirySkew: DefaultTokenExpirySkew,
	}
}

// getTokenOpts gets the token defaults and applies the opt overrides passed in
func getTokenOpts(opt ...Option) tokenOptions {
	opts := tokenDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}
