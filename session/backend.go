package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/notabene-app/auth/oidc"
)

// DefaultHealthCheckInterval is how long a cached session is trusted before
// the next lookup triggers a fresh introspection round-trip.
const DefaultHealthCheckInterval = 10 * time.Second

// IdentityProvider is the capability the backend requires of the external
// provider.  *oidc.Provider implements it; tests substitute an instrumented
// fake.  All calls are network round-trips and may fail; the backend treats
// any failure as terminal for the current operation and never retries
// internally.
type IdentityProvider interface {
	// AuthURL generates the provider's authorization endpoint URL,
	// parameterized with the given state and nonce.
	AuthURL(ctx context.Context, state, nonce string) (string, error)

	// Exchange trades an authorization code for a token.
	Exchange(ctx context.Context, authorizationCode string) (*oidc.Token, error)

	// VerifyIDToken verifies the raw id_token's signature, audience and
	// nonce.
	VerifyIDToken(ctx context.Context, idToken, nonce string) error

	// UserInfo fetches the user's claims document.
	UserInfo(ctx context.Context, t *oidc.Token) (oidc.UserClaims, error)

	// Introspect reports whether the token is still active and when it
	// expires.
	Introspect(ctx context.Context, t *oidc.Token) (*oidc.Introspection, error)
}

var _ IdentityProvider = (*oidc.Provider)(nil)

// Backend owns the login flow and the authenticated-session bookkeeping: it
// turns provider callbacks into sessions and answers "who is currently
// logged in" for every authenticated request.  Both of its stores are
// process-local and in-memory; a restart forces re-authentication.
type Backend struct {
	client   IdentityProvider
	attempts *AttemptStore
	sessions *Cache

	healthCheckInterval time.Duration
	logger              hclog.Logger

	// now is the clock used for validity computations; replaced in tests.
	now func() time.Time
}

// NewBackend creates a Backend on top of the given provider client.
//
// Supported options: WithLogger, WithHealthCheckInterval, WithAttemptTTL,
// WithMaxSessions, WithIdleTimeout
//
// See Backend.Done() which must be called to release backend resources.
func NewBackend(client IdentityProvider, opt ...Option) (*Backend, error) {
	const op = "session.NewBackend"
	if client == nil {
		return nil, fmt.Errorf("%s: provider client is nil: %w", op, ErrNilParameter)
	}
	opts := getBackendOpts(opt...)
	b := &Backend{
		client:              client,
		attempts:            NewAttemptStore(WithAttemptTTL(opts.withAttemptTTL)),
		sessions:            NewCache(WithMaxSessions(opts.withMaxSessions), WithIdleTimeout(opts.withIdleTimeout)),
		healthCheckInterval: opts.withHealthCheckInterval,
		logger:              opts.withLogger,
		now:                 time.Now,
	}
	go b.sessions.Start()
	return b, nil
}

// Done releases the backend's background resources and must be called for
// every Backend created.
func (b *Backend) Done() {
	if b == nil {
		return
	}
	b.sessions.Stop()
}

// AuthenticationURL begins a new login attempt: it mints a correlation token,
// stores the optional pending action under it, and returns the provider's
// authorization URL with the token as the opaque state value.  A nil action
// is a plain login.
func (b *Backend) AuthenticationURL(ctx context.Context, action PendingAction) (string, error) {
	const op = "session.Backend.AuthenticationURL"
	nonce, err := oidc.NewID(oidc.WithPrefix("n"))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	id, err := b.attempts.Put(Attempt{Action: action, Nonce: nonce})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	u, err := b.client.AuthURL(ctx, id.String(), nonce)
	if err != nil {
		return "", fmt.Errorf("%s: unable to build authorization URL: %w", op, err)
	}
	return u, nil
}

// CompleteLogin turns a provider callback into an authenticated session, or
// a typed failure.  Every check short-circuits the rest; no partial session
// is ever cached.
func (b *Backend) CompleteLogin(ctx context.Context, cb Callback) (*Session, error) {
	const op = "session.Backend.CompleteLogin"

	if cb.Iss == "" {
		b.logger.Warn("callback missing iss field")
		return nil, fmt.Errorf("%s: %w", op, ErrMissingIssuer)
	}

	if cb.Error != "" {
		desc := cb.ErrorDescription
		if desc == "" {
			desc = "<no description>"
		}
		b.logger.Warn("provider reported login error", "error", cb.Error, "description", desc)
		return nil, fmt.Errorf("%s: %s (%s): %w", op, cb.Error, desc, ErrProviderError)
	}

	if cb.State == "" {
		b.logger.Warn("callback missing state field")
		return nil, fmt.Errorf("%s: %w", op, ErrMissingState)
	}

	stateID, err := uuid.Parse(cb.State)
	if err != nil {
		// Substitute a fresh random token so the Take below deterministically
		// misses instead of behaving unpredictably on garbage input.
		b.logger.Warn("invalid state in callback", "state", cb.State)
		stateID, err = uuid.NewRandom()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, ErrUnknownOrReplayedState)
		}
	}

	attempt, err := b.attempts.Take(stateID)
	if err != nil {
		b.logger.Warn("state not found in login attempts", "state", stateID)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if cb.Code == "" {
		b.logger.Warn("callback carries no authorization code")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidFlow)
	}

	tk, err := b.client.Exchange(ctx, cb.Code)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", op, err, ErrTokenExchange)
	}

	if tk.IDToken == "" {
		b.logger.Warn("no id_token in exchange response")
		return nil, fmt.Errorf("%s: no id_token found: %w", op, ErrTokenValidation)
	}
	if err := b.client.VerifyIDToken(ctx, tk.IDToken, attempt.Nonce); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", op, err, ErrTokenValidation)
	}

	claims, err := b.client.UserInfo(ctx, tk)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", op, err, ErrUserinfoFetch)
	}
	sub, ok := claims.Subject()
	if !ok {
		return nil, fmt.Errorf("%s: claims document has no subject: %w", op, ErrUserinfoFetch)
	}

	userID, err := ParseUserID(sub)
	if err != nil {
		b.logger.Warn("subject is not a valid user id, assigning a random one", "sub", sub)
		userID, err = NewUserID()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	intro, err := b.client.Introspect(ctx, tk)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", op, err, ErrIntrospection)
	}

	now := b.now()
	remaining, err := b.remainingValidity(intro, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := &Session{
		UserID:            userID,
		AccessToken:       tk.AccessToken,
		AccessTokenHash:   HashAccessToken(tk.AccessToken),
		PendingAction:     attempt.Action,
		RemainingValidity: remaining,
		LastRevalidatedAt: now,
	}
	b.sessions.Put(s)

	return s, nil
}

// LookupSession returns the user's session, revalidating it against the
// provider when the health-check interval has elapsed since the last
// confirmation.  A nil session with a nil error means the user isn't logged
// in.  Any failure evicts the session, so a subsequent lookup reports "not
// logged in" without another provider round-trip.
func (b *Backend) LookupSession(ctx context.Context, id UserID) (*Session, error) {
	const op = "session.Backend.LookupSession"

	s := b.sessions.Get(id)
	if s == nil {
		return nil, nil
	}

	now := b.now()
	if now.Sub(s.LastRevalidatedAt) < b.healthCheckInterval {
		return s, nil
	}

	b.logger.Info("revalidating session against provider", "user_id", s.UserID)
	intro, err := b.client.Introspect(ctx, &oidc.Token{AccessToken: s.AccessToken})
	if err != nil {
		b.sessions.Evict(id)
		return nil, fmt.Errorf("%s: %v: %w", op, err, ErrIntrospection)
	}

	remaining, err := b.remainingValidity(intro, now)
	if err != nil {
		b.logger.Warn("introspection invalidated session", "user_id", s.UserID)
		b.sessions.Evict(id)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Build a replacement record; concurrent revalidations of the same user
	// are last-writer-wins, which at worst costs one extra introspection
	// shortly after.
	replacement := s.clone()
	replacement.RemainingValidity = remaining
	replacement.LastRevalidatedAt = now
	b.sessions.Put(replacement)

	return replacement, nil
}

// TakePendingAction removes and returns the pending action attached to the
// user's session, if any.  An action is handed out exactly once; the cached
// record is replaced with the action cleared.
func (b *Backend) TakePendingAction(id UserID) PendingAction {
	s := b.sessions.Get(id)
	if s == nil || s.PendingAction == nil {
		return nil
	}
	action := s.PendingAction
	cleared := s.clone()
	cleared.PendingAction = nil
	b.sessions.Put(cleared)
	return action
}

// remainingValidity computes how long the introspected credential remains
// usable.  An explicit active=false is authoritative even when the reported
// expiry alone would suggest validity; a non-positive remainder means the
// credential is already past its expiry.
func (b *Backend) remainingValidity(intro *oidc.Introspection, now time.Time) (time.Duration, error) {
	expiresAt := intro.ExpiresAt()
	if !intro.Active && expiresAt.After(now) {
		return 0, fmt.Errorf("token reported inactive: %w", ErrInactiveOrExpiredToken)
	}
	remaining := expiresAt.Sub(now)
	if remaining <= 0 {
		return 0, fmt.Errorf("token expiry has passed: %w", ErrInactiveOrExpiredToken)
	}
	return remaining, nil
}

// backendOptions is the set of available options for Backend functions
type backendOptions struct {
	withLogger              hclog.Logger
	withHealthCheckInterval time.Duration
	withAttemptTTL          time.Duration
	withMaxSessions         uint64
	withIdleTimeout         time.Duration
}

// backendDefaults is a handy way to get the defaults at runtime and during
// unit tests.
func backendDefaults() backendOptions {
	return backendOptions{
		withLogger:              hclog.NewNullLogger(),
		withHealthCheckInterval: DefaultHealthCheckInterval,
		withAttemptTTL:          DefaultAttemptTTL,
		withMaxSessions:         DefaultMaxSessions,
		withIdleTimeout:         DefaultIdleTimeout,
	}
}

// getBackendOpts gets the backend defaults and applies the opt overrides
// passed in.
func getBackendOpts(opt ...Option) backendOptions {
	opts := backendDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}
