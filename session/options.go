package session

import (
	"time"

	"github.com/hashicorp/go-hclog"
)

// Option defines a common functional options type
type Option func(interface{})

// ApplyOpts takes a pointer to the options struct as a set of default options
// and applies the slice of opts as overrides.
func ApplyOpts(opts interface{}, opt ...Option) {
	for _, o := range opt {
		if o == nil {
			continue
		}
		o(opts)
	}
}

// WithLogger provides an optional logger.  A null logger is used when none is
// provided.
func WithLogger(l hclog.Logger) Option {
	return func(o interface{}) {
		if v, ok := o.(*backendOptions); ok {
			v.withLogger = l
		}
	}
}

// WithHealthCheckInterval provides an optional interval during which a cached
// session is trusted without a fresh introspection round-trip.
func WithHealthCheckInterval(d time.Duration) Option {
	return func(o interface{}) {
		if v, ok := o.(*backendOptions); ok {
			v.withHealthCheckInterval = d
		}
	}
}

// WithAttemptTTL provides an optional bounded lifetime for login attempts
// that are never completed.
func WithAttemptTTL(d time.Duration) Option {
	return func(o interface{}) {
		switch v := o.(type) {
		case *backendOptions:
			v.withAttemptTTL = d
		case *attemptOptions:
			v.withTTL = d
		}
	}
}

// WithMaxSessions provides an optional capacity ceiling for the session
// cache.  The least recently used entries are evicted when the cache is full.
func WithMaxSessions(n uint64) Option {
	return func(o interface{}) {
		switch v := o.(type) {
		case *backendOptions:
			v.withMaxSessions = n
		case *cacheOptions:
			v.withMaxSessions = n
		}
	}
}

// WithIdleTimeout provides an optional idle-eviction floor for the session
// cache: entries untouched for this long are dropped regardless of their
// token's validity.
func WithIdleTimeout(d time.Duration) Option {
	return func(o interface{}) {
		switch v := o.(type) {
		case *backendOptions:
			v.withIdleTimeout = d
		case *cacheOptions:
			v.withIdleTimeout = d
		}
	}
}
