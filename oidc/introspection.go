package oidc

import "time"

// Introspection represents an RFC 7662 token introspection response.  When a
// token is inactive, providers are only required to return the "active"
// field.
//
// See: https://datatracker.ietf.org/doc/html/rfc7662#section-2.2
type Introspection struct {
	Active bool `json:"active"`

	// Optional fields (only present when active=true)
	Scope     string   `json:"scope,omitempty"`
	ClientID  string   `json:"client_id,omitempty"`
	Username  string   `json:"username,omitempty"`
	TokenType string   `json:"token_type,omitempty"`
	Exp       int64    `json:"exp,omitempty"`
	Iat       int64    `json:"iat,omitempty"`
	Nbf       int64    `json:"nbf,omitempty"`
	Sub       string   `json:"sub,omitempty"`
	Aud       []string `json:"aud,omitempty"`
	Iss       string   `json:"iss,omitempty"`
	Jti       string   `json:"jti,omitempty"`
}

// ExpiresAt returns the token's "exp" claim as a time.Time.  The zero time is
// returned when the provider didn't report an expiration.
func (i *Introspection) ExpiresAt() time.Time {
	if i == nil || i.Exp == 0 {
		return time.Time{}
	}
	return time.Unix(i.Exp, 0)
}
