package session

import (
	"errors"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNilParameter     = errors.New("nil parameter")

	// ErrMissingIssuer reports an authentication callback without an iss
	// field.
	ErrMissingIssuer = errors.New("callback is missing the iss field")

	// ErrProviderError reports an error the provider itself attached to the
	// authentication callback.
	ErrProviderError = errors.New("provider reported an error")

	// ErrMissingState reports an authentication callback without a state
	// field.
	ErrMissingState = errors.New("callback is missing the state field")

	// ErrUnknownOrReplayedState reports a state token that was never issued,
	// has expired, or was already consumed by an earlier callback.
	ErrUnknownOrReplayedState = errors.New("unknown or already consumed state")

	// ErrInvalidFlow reports a callback that carries no authorization code.
	ErrInvalidFlow = errors.New("invalid authorization code flow")

	ErrTokenExchange   = errors.New("token exchange failed")
	ErrTokenValidation = errors.New("token validation failed")
	ErrUserinfoFetch   = errors.New("userinfo fetch failed")
	ErrIntrospection   = errors.New("token introspection failed")

	// ErrInactiveOrExpiredToken reports a credential the provider considers
	// no longer usable: introspection returned active=false while the token's
	// reported expiry is still in the future, or the expiry has passed.
	ErrInactiveOrExpiredToken = errors.New("token is inactive or expired")
)
