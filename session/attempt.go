package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultAttemptTTL bounds the lifetime of login attempts that are never
// completed, so abandoned attempts can't accumulate without limit.
const DefaultAttemptTTL = 10 * time.Minute

// Attempt is the deferred state attached to one login attempt: the optional
// pending action captured when the login was initiated, and the nonce that
// will be verified against the id_token issued for the attempt.
type Attempt struct {
	Action PendingAction
	Nonce  string
}

// AttemptStore maps a one-time random correlation token to its login
// attempt.  A token is single-use: Take removes the attempt atomically with
// the lookup, so exactly one caller can ever consume it.
type AttemptStore struct {
	mu       sync.Mutex
	attempts map[uuid.UUID]storedAttempt
	ttl      time.Duration

	now func() time.Time
}

type storedAttempt struct {
	attempt   Attempt
	expiresAt time.Time
}

// NewAttemptStore creates an AttemptStore.
//
// Supported options: WithAttemptTTL
func NewAttemptStore(opt ...Option) *AttemptStore {
	opts := getAttemptOpts(opt...)
	return &AttemptStore{
		attempts: make(map[uuid.UUID]storedAttempt),
		ttl:      opts.withTTL,
		now:      time.Now,
	}
}

// Put stores the attempt under a freshly generated correlation token and
// returns the token.  Expired attempts are swept opportunistically while the
// lock is held.
func (s *AttemptStore) Put(a Attempt) (uuid.UUID, error) {
	const op = "session.AttemptStore.Put"
	id, err := uuid.NewRandom()
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("%s: unable to generate correlation token: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, v := range s.attempts {
		if v.expiresAt.Before(now) {
			delete(s.attempts, k)
		}
	}
	s.attempts[id] = storedAttempt{
		attempt:   a,
		expiresAt: now.Add(s.ttl),
	}
	return id, nil
}

// Take removes and returns the attempt stored under the token.  It fails
// with ErrUnknownOrReplayedState when the token was never issued, has
// expired, or was already consumed.
func (s *AttemptStore) Take(id uuid.UUID) (Attempt, error) {
	const op = "session.AttemptStore.Take"
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.attempts[id]
	if !ok {
		return Attempt{}, fmt.Errorf("%s: %s: %w", op, id, ErrUnknownOrReplayedState)
	}
	delete(s.attempts, id)
	if stored.expiresAt.Before(s.now()) {
		return Attempt{}, fmt.Errorf("%s: %s: attempt expired: %w", op, id, ErrUnknownOrReplayedState)
	}
	return stored.attempt, nil
}

// Len reports the number of attempts currently stored.
func (s *AttemptStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.attempts)
}

// attemptOptions is the set of available options for AttemptStore functions
type attemptOptions struct {
	withTTL time.Duration
}

// attemptDefaults is a handy way to get the defaults at runtime and during
// unit tests.
func attemptDefaults() attemptOptions {
	return attemptOptions{
		withTTL: DefaultAttemptTTL,
	}
}

// getAttemptOpts gets the attempt store defaults and applies the opt
// overrides passed in.
func getAttemptOpts(opt ...Option) attemptOptions {
	opts := attemptDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}
