package session

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

const (
	// DefaultMaxSessions is the default capacity ceiling for the session
	// cache.
	DefaultMaxSessions = 64_000

	// DefaultIdleTimeout is the default idle-eviction floor: sessions
	// untouched for this long are dropped regardless of their token's
	// validity.
	DefaultIdleTimeout = 15 * time.Minute
)

// Cache is the bounded, concurrency-safe store of authenticated sessions,
// keyed by UserID.  Each entry's lifetime is derived from the record itself:
// it lives for min(RemainingValidity, idle timeout), so a session never
// outlives the provider-reported expiry of its credential.  Reads never
// extend an entry's lifetime.  When the cache is full the least recently
// used entry is evicted.
type Cache struct {
	sessions    *ttlcache.Cache[UserID, *Session]
	idleTimeout time.Duration
}

// NewCache creates a session Cache.
//
// Supported options: WithMaxSessions, WithIdleTimeout
func NewCache(opt ...Option) *Cache {
	opts := getCacheOpts(opt...)
	return &Cache{
		sessions: ttlcache.New[UserID, *Session](
			ttlcache.WithCapacity[UserID, *Session](opts.withMaxSessions),
			ttlcache.WithDisableTouchOnHit[UserID, *Session](),
		),
		idleTimeout: opts.withIdleTimeout,
	}
}

// Get returns the session stored for the user, or nil when there is none or
// its entry has expired.
func (c *Cache) Get(id UserID) *Session {
	item := c.sessions.Get(id)
	if item == nil {
		return nil
	}
	return item.Value()
}

// Put inserts the session, overwriting any existing entry for the same user.
// The entry's time-to-live is computed from the record's own remaining
// validity, capped by the idle timeout.  Records with no validity left are
// not cached.
func (c *Cache) Put(s *Session) {
	if s == nil {
		return
	}
	ttl := s.RemainingValidity
	if c.idleTimeout < ttl {
		ttl = c.idleTimeout
	}
	if ttl <= 0 {
		return
	}
	c.sessions.Set(s.UserID, s, ttl)
}

// Evict removes the user's session, if any.
func (c *Cache) Evict(id UserID) {
	c.sessions.Delete(id)
}

// Len reports the number of sessions currently stored, expired entries
// included until the janitor collects them.
func (c *Cache) Len() int {
	return c.sessions.Len()
}

// Start runs the janitor loop that collects expired entries.  It blocks
// until Stop is called.  Running it is a memory optimization only: expired
// entries are never returned by Get either way.
func (c *Cache) Start() {
	c.sessions.Start()
}

// Stop terminates the janitor loop.
func (c *Cache) Stop() {
	c.sessions.Stop()
}

// cacheOptions is the set of available options for Cache functions
type cacheOptions struct {
	withMaxSessions uint64
	withIdleTimeout time.Duration
}

// cacheDefaults is a handy way to get the defaults at runtime and during
// unit tests.
func cacheDefaults() cacheOptions {
	return cacheOptions{
		withMaxSessions: DefaultMaxSessions,
		withIdleTimeout: DefaultIdleTimeout,
	}
}

// getCacheOpts gets the cache defaults and applies the opt overrides passed
// in.
func getCacheOpts(opt ...Option) cacheOptions {
	opts := cacheDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}
