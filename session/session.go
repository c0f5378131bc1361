package session

import (
	"crypto/subtle"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/notabene-app/auth/oidc"
)

// Session is the record of a currently authenticated user.  It's created on a
// successful login and replaced, never mutated in place, on every successful
// revalidation.
type Session struct {
	// UserID is the authenticated principal the record belongs to.
	UserID UserID

	// AccessToken is the credential presented to the provider when the
	// session is revalidated.  The type redacts itself when printed or
	// marshaled.
	AccessToken oidc.AccessToken

	// AccessTokenHash is a one-way digest of AccessToken.  It's the value
	// compared against a client-held session cookie to bind the session to
	// its credential without re-exposing the secret.
	AccessTokenHash []byte

	// PendingAction is the deferred note operation captured when the login
	// was initiated, or nil.  See Backend.TakePendingAction.
	PendingAction PendingAction

	// RemainingValidity is how long the provider reported the credential as
	// valid at the most recent (re)validation.  It's always derived from the
	// provider's introspection response, never hand-extended.
	RemainingValidity time.Duration

	// LastRevalidatedAt is when the credential was last confirmed with the
	// provider.
	LastRevalidatedAt time.Time
}

// HashAccessToken returns the blake2b-256 digest of the access token.
func HashAccessToken(t oidc.AccessToken) []byte {
	sum := blake2b.Sum256([]byte(t))
	return sum[:]
}

// TokenHashEquals compares the session's access token hash against a
// caller-held hash in constant time.
func (s *Session) TokenHashEquals(hash []byte) bool {
	if s == nil {
		return false
	}
	return subtle.ConstantTimeCompare(s.AccessTokenHash, hash) == 1
}

// clone returns a copy of the session suitable for building a replacement
// record.
func (s *Session) clone() *Session {
	cp := *s
	cp.AccessTokenHash = append([]byte(nil), s.AccessTokenHash...)
	return &cp
}
