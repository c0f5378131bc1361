package oidc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/notabene-app/auth/oidc/internal/strutils"
)

// Provider provides integration with a provider using the typical 3-legged
// OIDC authorization code flow.
type Provider struct {
	config   *Config
	provider *oidc.Provider

	// introspectionURL is the provider's RFC 7662 endpoint, resolved from the
	// discovery document.  Empty when the provider doesn't advertise one.
	introspectionURL string

	mu sync.Mutex

	// backgroundCtx is the context used by the provider for background
	// activities like refreshing JWKs key sets.
	backgroundCtx context.Context

	// backgroundCtxCancel is used to cancel any background activities running
	// in spawned go routines.
	backgroundCtxCancel context.CancelFunc
}

// NewProvider creates and initializes a Provider for the OIDC authorization
// code flow.  Initializing the provider includes making an http request to
// the provider's issuer for its discovery document.
//
// See Provider.Done() which must be called to release provider resources.
func NewProvider(c *Config) (*Provider, error) {
	const op = "oidc.NewProvider"
	if c == nil {
		return nil, fmt.Errorf("%s: provider config is nil: %w", op, ErrNilParameter)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: provider config is invalid: %w", op, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	// initializing the Provider with its background ctx/cancel will allow us
	// to use p.Done() to release any resources when returning errors from
	// this function.
	p := &Provider{
		config:              c,
		backgroundCtx:       ctx,
		backgroundCtxCancel: cancel,
	}

	client, err := c.HTTPClient()
	if err != nil {
		p.Done() // release the backgroundCtxCancel resources
		return nil, fmt.Errorf("%s: unable to create http client: %w", op, err)
	}

	provider, err := oidc.NewProvider(HTTPClientContext(p.backgroundCtx, client), c.Issuer) // makes http req to issuer for discovery
	if err != nil {
		p.Done() // release the backgroundCtxCancel resources
		return nil, fmt.Errorf("%s: unable to create provider: %w", op, err)
	}
	p.provider = provider

	var discovery struct {
		IntrospectionEndpoint string `json:"introspection_endpoint"`
	}
	if err := provider.Claims(&discovery); err == nil {
		p.introspectionURL = discovery.IntrospectionEndpoint
	}
	if p.introspectionURL == "" {
		c.logger().Debug("provider does not advertise an introspection endpoint", "issuer", c.Issuer)
	}

	return p, nil
}

// Done with the provider's background resources and must be called for every
// Provider created.
func (p *Provider) Done() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.backgroundCtxCancel != nil {
		p.backgroundCtxCancel()
		p.backgroundCtxCancel = nil
	}
}

// AuthURL will generate a URL the caller can use to kick off an OIDC
// authorization code flow with the IdP.  The state is the opaque value
// round-tripped through the provider to correlate the callback with the
// originating attempt, and the nonce binds the attempt to the id_token that
// will be issued for it.  They cannot be equal.
func (p *Provider) AuthURL(ctx context.Context, state, nonce string) (string, error) {
	const op = "Provider.AuthURL"
	if state == "" {
		return "", fmt.Errorf("%s: state is empty: %w", op, ErrInvalidParameter)
	}
	if nonce == "" {
		return "", fmt.Errorf("%s: nonce is empty: %w", op, ErrInvalidParameter)
	}
	if state == nonce {
		return "", fmt.Errorf("%s: state and nonce cannot be equal: %w", op, ErrInvalidParameter)
	}
	return p.oauth2Config().AuthCodeURL(state, oidc.Nonce(nonce)), nil
}

// Exchange will request a token from the oidc token endpoint, using the
// authorizationCode it received in an earlier successful authentication
// response.
//
// On success, the Token returned will include an AccessToken and, depending
// on the IdP, a RefreshToken and a raw IDToken.  The id_token is NOT verified
// here; see VerifyIDToken.
func (p *Provider) Exchange(ctx context.Context, authorizationCode string) (*Token, error) {
	const op = "Provider.Exchange"
	if authorizationCode == "" {
		return nil, fmt.Errorf("%s: authorization code is empty: %w", op, ErrInvalidParameter)
	}
	client, err := p.config.HTTPClient()
	if err != nil {
		return nil, fmt.Errorf("%s: unable to create http client: %w", op, err)
	}
	oidcCtx := HTTPClientContext(ctx, client)

	oauth2Token, err := p.oauth2Config().Exchange(oidcCtx, authorizationCode)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to exchange auth code with provider: %w", op, err)
	}
	t, err := NewToken(oauth2Token)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to create new token: %w", op, err)
	}
	return t, nil
}

// VerifyIDToken will verify the raw id_token.  It verifies it's been signed
// by the provider, validates the nonce, and performs any additional checks
// depending on the provider's config (audiences, etc).
//
// See: https://openid.net/specs/openid-connect-core-1_0.html#IDTokenValidation
func (p *Provider) VerifyIDToken(ctx context.Context, idToken string, nonce string) error {
	const op = "Provider.VerifyIDToken"
	if idToken == "" {
		return fmt.Errorf("%s: id_token is empty: %w", op, ErrMissingIDToken)
	}
	if nonce == "" {
		return fmt.Errorf("%s: nonce is empty: %w", op, ErrInvalidParameter)
	}
	algs := make([]string, 0, len(p.config.SupportedSigningAlgs))
	for _, a := range p.config.SupportedSigningAlgs {
		algs = append(algs, string(a))
	}
	verifier := p.provider.Verifier(&oidc.Config{
		SupportedSigningAlgs: algs,
		ClientID:             p.config.ClientID,
	})

	oidcIDToken, err := verifier.Verify(ctx, idToken)
	if err != nil {
		return fmt.Errorf("%s: invalid id_token: %w", op, ErrIDTokenVerificationFailed)
	}

	if oidcIDToken.Nonce != nonce {
		return fmt.Errorf("%s: invalid id_token nonce: %w", op, ErrInvalidNonce)
	}

	if len(p.config.Audiences) > 0 {
		found := false
		for _, v := range p.config.Audiences {
			if strutils.StrListContains(oidcIDToken.Audience, v) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%s: invalid id_token audiences: %w", op, ErrInvalidAudience)
		}
	}
	return nil
}

// UserInfo gets the claims document from the provider's userinfo endpoint,
// authenticating with the token's access token.
func (p *Provider) UserInfo(ctx context.Context, t *Token) (UserClaims, error) {
	const op = "Provider.UserInfo"
	if t == nil || t.AccessToken == "" {
		return nil, fmt.Errorf("%s: token has no access token: %w", op, ErrInvalidParameter)
	}
	client, err := p.config.HTTPClient()
	if err != nil {
		return nil, fmt.Errorf("%s: unable to create http client: %w", op, err)
	}
	oidcCtx := HTTPClientContext(ctx, client)

	userinfo, err := p.provider.UserInfo(oidcCtx, t.StaticTokenSource())
	if err != nil {
		return nil, fmt.Errorf("%s: provider UserInfo request failed (%v): %w", op, err, ErrUserInfoFailed)
	}
	var claims UserClaims
	if err := userinfo.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%s: failed to decode UserInfo claims (%v): %w", op, err, ErrUserInfoFailed)
	}
	return claims, nil
}

// Introspect asks the provider whether the token's access token is still
// active, per RFC 7662.  The request authenticates with the relying party's
// client id/secret.
//
// See: https://datatracker.ietf.org/doc/html/rfc7662
func (p *Provider) Introspect(ctx context.Context, t *Token) (*Introspection, error) {
	const op = "Provider.Introspect"
	if t == nil || t.AccessToken == "" {
		return nil, fmt.Errorf("%s: token has no access token: %w", op, ErrInvalidParameter)
	}
	if p.introspectionURL == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingIntrospectionEndpoint)
	}
	client, err := p.config.HTTPClient()
	if err != nil {
		return nil, fmt.Errorf("%s: unable to create http client: %w", op, err)
	}

	form := url.Values{
		"token":           {string(t.AccessToken)},
		"token_type_hint": {"access_token"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.introspectionURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%s: unable to create introspection request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(p.config.ClientID, string(p.config.ClientSecret))

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: introspection request failed (%v): %w", op, err, ErrIntrospectionFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		p.config.logger().Warn("introspection endpoint returned non-200", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%s: introspection endpoint returned %d: %w", op, resp.StatusCode, ErrIntrospectionFailed)
	}

	var introspection Introspection
	if err := json.NewDecoder(resp.Body).Decode(&introspection); err != nil {
		return nil, fmt.Errorf("%s: unable to decode introspection response (%v): %w", op, err, ErrIntrospectionFailed)
	}
	return &introspection, nil
}

// oauth2Config assembles the OpenID Connect aware OAuth2 client config.  The
// required "openid" scope is always included.
func (p *Provider) oauth2Config() *oauth2.Config {
	scopes := append([]string{oidc.ScopeOpenID}, p.config.Scopes...)
	return &oauth2.Config{
		ClientID:     p.config.ClientID,
		ClientSecret: string(p.config.ClientSecret),
		RedirectURL:  p.config.RedirectURL,
		Endpoint:     p.provider.Endpoint(),
		Scopes:       scopes,
	}
}
