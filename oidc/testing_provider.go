package oidc

import (
	"bytes"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/square/go-jose.v2"
	"gopkg.in/square/go-jose.v2/jwt"

	"github.com/notabene-app/auth/oidc/internal/strutils"
)

// TestProvider is a local server that supports test provider capabilities
// which make writing tests against the full authorization code flow much
// easier.  It serves discovery, jwks, authorize, token, userinfo and RFC 7662
// introspection endpoints.  Most of this is modeled on Consul's oauthtest
// package.
type TestProvider struct {
	httpServer *httptest.Server
	caCert     string

	jwks                *jose.JSONWebKeySet
	allowedRedirectURIs []string
	replySubject        string
	replyUserinfo       map[string]interface{}

	mu                  sync.Mutex
	clientID            string
	clientSecret        string
	expectedAuthCode    string
	expectedAuthNonce   string
	customClaims        map[string]interface{}
	customAudience      string
	omitIDToken         bool
	disableUserInfo     bool
	disableIntrospect   bool
	introspectActive    bool
	introspectExpiresIn time.Duration
	introspectCount     int
	userinfoCount       int

	ecdsaPublicKey  string
	ecdsaPrivateKey string

	t *testing.T
}

// Stop stops the running TestProvider.
func (p *TestProvider) Stop() {
	p.httpServer.Close()
}

// StartTestProvider creates and starts a disposable TestProvider over TLS.
func StartTestProvider(t *testing.T) *TestProvider {
	t.Helper()
	require := require.New(t)

	p := &TestProvider{
		t: t,
		allowedRedirectURIs: []string{
			"https://example.com/callback",
		},
		replySubject: "11111111-1111-1111-1111-111111111111",
		replyUserinfo: map[string]interface{}{
			"sub":                "11111111-1111-1111-1111-111111111111",
			"preferred_username": "alice",
			"email":              "alice@example.com",
		},
		introspectActive:    true,
		introspectExpiresIn: 1 * time.Hour,
	}
	p.ecdsaPublicKey, p.ecdsaPrivateKey = TestGenerateKeys(t)
	p.jwks = testJWKS(t, p.ecdsaPublicKey)

	p.httpServer = httptest.NewUnstartedServer(p)
	p.httpServer.Config.ErrorLog = log.New(io.Discard, "", 0)
	p.httpServer.StartTLS()
	t.Cleanup(p.httpServer.Close)

	cert := p.httpServer.Certificate()

	var buf bytes.Buffer
	err := pem.Encode(&buf, &pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw})
	require.NoError(err)
	p.caCert = buf.String()

	return p
}

// SetClientCreds is for configuring the client information required for the
// OIDC workflows.
func (p *TestProvider) SetClientCreds(clientID, clientSecret string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clientID = clientID
	p.clientSecret = clientSecret
}

// SetExpectedAuthCode configures the auth code to return from /auth and the
// allowed auth code for /token.
func (p *TestProvider) SetExpectedAuthCode(code string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.expectedAuthCode = code
}

// SetExpectedAuthNonce configures the nonce value required for /auth, which
// is also embedded in the id_tokens /token issues.
func (p *TestProvider) SetExpectedAuthNonce(nonce string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.expectedAuthNonce = nonce
}

// SetAllowedRedirectURIs allows configuring the allowed redirect URIs for the
// token exchange.
func (p *TestProvider) SetAllowedRedirectURIs(uris []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.allowedRedirectURIs = uris
}

// SetCustomClaims sets additional claims to embed in issued id_tokens.
func (p *TestProvider) SetCustomClaims(customClaims map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.customClaims = customClaims
}

// SetCustomAudience overrides the audience claim of issued id_tokens.
func (p *TestProvider) SetCustomAudience(customAudience string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.customAudience = customAudience
}

// SetReplySubject sets the subject claim for issued id_tokens and the
// userinfo document.
func (p *TestProvider) SetReplySubject(sub string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.replySubject = sub
	p.replyUserinfo["sub"] = sub
}

// SetReplyUserinfo sets the userinfo document returned by /userinfo.
func (p *TestProvider) SetReplyUserinfo(claims map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.replyUserinfo = claims
}

// SetIntrospectionResults configures what /introspect reports: whether the
// token is active and how far in the future its expiry lies (negative values
// put the expiry in the past).
func (p *TestProvider) SetIntrospectionResults(active bool, expiresIn time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.introspectActive = active
	p.introspectExpiresIn = expiresIn
}

// OmitIDTokens turns off issuing id_tokens from /token.
func (p *TestProvider) OmitIDTokens() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.omitIDToken = true
}

// DisableUserInfo removes the userinfo endpoint from the discovery document
// and makes the endpoint return 404s.
func (p *TestProvider) DisableUserInfo() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disableUserInfo = true
}

// DisableIntrospection removes the introspection endpoint from the discovery
// document and makes the endpoint return 404s.
func (p *TestProvider) DisableIntrospection() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disableIntrospect = true
}

// IntrospectionCount reports how many introspection calls the provider has
// served.
func (p *TestProvider) IntrospectionCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.introspectCount
}

// UserInfoCount reports how many userinfo calls the provider has served.
func (p *TestProvider) UserInfoCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.userinfoCount
}

// Addr returns the current base URL for the test provider's running
// webserver.
func (p *TestProvider) Addr() string { return p.httpServer.URL }

// CACert returns the pem-encoded CA certificate used by the test provider's
// HTTPS server.
func (p *TestProvider) CACert() string { return p.caCert }

// SigningKeys returns the test provider's pem-encoded keys used to sign JWTs.
func (p *TestProvider) SigningKeys() (pub, priv string) {
	return p.ecdsaPublicKey, p.ecdsaPrivateKey
}

func (p *TestProvider) writeJSON(w http.ResponseWriter, out interface{}) error {
	enc := json.NewEncoder(w)
	return enc.Encode(out)
}

func (p *TestProvider) writeAuthErrorResponse(w http.ResponseWriter, req *http.Request, errorCode, errorMessage string) {
	qv := req.URL.Query()

	redirectURI := qv.Get("redirect_uri") +
		"?state=" + url.QueryEscape(qv.Get("state")) +
		"&error=" + url.QueryEscape(errorCode)

	if errorMessage != "" {
		redirectURI += "&error_description=" + url.QueryEscape(errorMessage)
	}

	http.Redirect(w, req, redirectURI, http.StatusFound)
}

func (p *TestProvider) writeTokenErrorResponse(w http.ResponseWriter, statusCode int, errorCode, errorMessage string) error {
	body := struct {
		Code string `json:"error"`
		Desc string `json:"error_description,omitempty"`
	}{
		Code: errorCode,
		Desc: errorMessage,
	}

	w.WriteHeader(statusCode)
	return p.writeJSON(w, &body)
}

// ServeHTTP implements the test provider's http.Handler.
func (p *TestProvider) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.t.Helper()

	w.Header().Set("Content-Type", "application/json")

	switch req.URL.Path {
	case "/.well-known/openid-configuration":
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		reply := struct {
			Issuer                string `json:"issuer"`
			AuthEndpoint          string `json:"authorization_endpoint"`
			TokenEndpoint         string `json:"token_endpoint"`
			JWKSURI               string `json:"jwks_uri"`
			UserinfoEndpoint      string `json:"userinfo_endpoint,omitempty"`
			IntrospectionEndpoint string `json:"introspection_endpoint,omitempty"`
		}{
			Issuer:                p.Addr(),
			AuthEndpoint:          p.Addr() + "/auth",
			TokenEndpoint:         p.Addr() + "/token",
			JWKSURI:               p.Addr() + "/certs",
			UserinfoEndpoint:      p.Addr() + "/userinfo",
			IntrospectionEndpoint: p.Addr() + "/introspect",
		}
		if p.disableUserInfo {
			reply.UserinfoEndpoint = ""
		}
		if p.disableIntrospect {
			reply.IntrospectionEndpoint = ""
		}

		_ = p.writeJSON(w, &reply)

	case "/auth":
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		qv := req.URL.Query()

		if qv.Get("response_type") != "code" {
			p.writeAuthErrorResponse(w, req, "unsupported_response_type", "")
			return
		}

		if p.expectedAuthCode == "" {
			p.writeAuthErrorResponse(w, req, "access_denied", "")
			return
		}

		nonce := qv.Get("nonce")
		if p.expectedAuthNonce != "" && p.expectedAuthNonce != nonce {
			p.writeAuthErrorResponse(w, req, "access_denied", "")
			return
		}

		state := qv.Get("state")
		if state == "" {
			p.writeAuthErrorResponse(w, req, "invalid_request", "missing state parameter")
			return
		}

		redirectURI := qv.Get("redirect_uri")
		if redirectURI == "" {
			p.writeAuthErrorResponse(w, req, "invalid_request", "missing redirect_uri parameter")
			return
		}

		redirectURI += "?state=" + url.QueryEscape(state) +
			"&code=" + url.QueryEscape(p.expectedAuthCode)

		http.Redirect(w, req, redirectURI, http.StatusFound)

	case "/certs":
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		_ = p.writeJSON(w, p.jwks)

	case "/token":
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		switch {
		case req.FormValue("grant_type") != "authorization_code":
			_ = p.writeTokenErrorResponse(w, http.StatusBadRequest, "invalid_request", "bad grant_type")
			return
		case !strutils.StrListContains(p.allowedRedirectURIs, req.FormValue("redirect_uri")):
			_ = p.writeTokenErrorResponse(w, http.StatusBadRequest, "invalid_request", "redirect_uri is not allowed")
			return
		case req.FormValue("code") != p.expectedAuthCode:
			_ = p.writeTokenErrorResponse(w, http.StatusUnauthorized, "invalid_grant", "unexpected auth code")
			return
		}

		stdClaims := jwt.Claims{
			Subject:   p.replySubject,
			Issuer:    p.Addr(),
			NotBefore: jwt.NewNumericDate(time.Now().Add(-5 * time.Second)),
			Expiry:    jwt.NewNumericDate(time.Now().Add(5 * time.Minute)),
			Audience:  jwt.Audience{p.clientID},
		}
		if p.customAudience != "" {
			stdClaims.Audience = jwt.Audience{p.customAudience}
		}

		privateClaims := map[string]interface{}{}
		if p.expectedAuthNonce != "" {
			privateClaims["nonce"] = p.expectedAuthNonce
		}
		for k, v := range p.customClaims {
			privateClaims[k] = v
		}

		jwtData := TestSignJWT(p.t, p.ecdsaPrivateKey, stdClaims, privateClaims)

		reply := struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
			ExpiresIn   int64  `json:"expires_in"`
			IDToken     string `json:"id_token,omitempty"`
		}{
			AccessToken: jwtData,
			TokenType:   "Bearer",
			ExpiresIn:   int64(p.introspectExpiresIn.Seconds()),
			IDToken:     jwtData,
		}
		if p.omitIDToken {
			reply.IDToken = ""
		}
		_ = p.writeJSON(w, &reply)

	case "/userinfo":
		if p.disableUserInfo {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		p.userinfoCount++

		_ = p.writeJSON(w, p.replyUserinfo)

	case "/introspect":
		if p.disableIntrospect {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if req.FormValue("token") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		p.introspectCount++

		reply := Introspection{
			Active:    p.introspectActive,
			Sub:       p.replySubject,
			ClientID:  p.clientID,
			TokenType: "Bearer",
			Iss:       p.Addr(),
			Exp:       time.Now().Add(p.introspectExpiresIn).Unix(),
			Iat:       time.Now().Unix(),
		}
		_ = p.writeJSON(w, &reply)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// testJWKS converts a pem-encoded public key into JWKS data suitable for a
// verification endpoint response.
func testJWKS(t *testing.T, pubKey string) *jose.JSONWebKeySet {
	t.Helper()
	require := require.New(t)

	block, _ := pem.Decode([]byte(pubKey))
	require.NotNil(block)

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	require.NoError(err)

	return &jose.JSONWebKeySet{
		Keys: []jose.JSONWebKey{
			{
				Key:       pub,
				Algorithm: string(ES256),
			},
		},
	}
}
