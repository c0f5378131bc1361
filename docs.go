// auth provides the authentication packages for the Nota Bene notes
// application: an OIDC provider integration using the 3-legged authorization
// code flow (see the oidc package), and the in-memory login-attempt and
// session bookkeeping built on top of it (see the session package).
//
// See README.md
package auth
