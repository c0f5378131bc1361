/*
oidc is a package for integrating with an OIDC provider using the 3-legged
authorization code flow.

Primary types provided by the package:

* Config: provides the configuration for the flow (client id/secret, issuer,
redirect URL, supported signing algorithms, additional scopes, etc)

* Provider: provides the integration itself, with capabilities like
generating an auth URL, exchanging codes for tokens, verifying id_tokens,
making userinfo requests and introspecting tokens per RFC 7662.

* Token: represents the credentials from a successful exchange: an oauth2
access_token and refresh_token (both redacted when printed or marshaled),
plus the raw id_token when the provider issued one.

* Introspection: represents an RFC 7662 introspection response, which reports
whether a previously issued credential is still active and when it expires.

* Alg: represents asymmetric signing algorithms

* TestProvider: an in-process provider that serves discovery, jwks,
authorize, token, userinfo and introspection endpoints, which makes writing
tests against the full flow much easier.
*/
package oidc
