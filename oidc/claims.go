package oidc

// UserClaims is the claims document returned by a provider's userinfo
// endpoint.  The claim set differs per provider, so it's kept as a generic
// document with accessors for the claims this library relies on.
type UserClaims map[string]interface{}

// Subject returns the standard "sub" claim, and false when the claim is
// absent or not a string.
func (c UserClaims) Subject() (string, bool) {
	sub, ok := c["sub"].(string)
	if !ok || sub == "" {
		return "", false
	}
	return sub, true
}
