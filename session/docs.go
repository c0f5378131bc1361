/*
session implements the login flow and authenticated-session bookkeeping on
top of the oidc package.

Primary types provided by the package:

* Backend: owns the whole subsystem.  AuthenticationURL begins a login
attempt, CompleteLogin turns the provider's callback into a Session (or one
of the package's typed failures), and LookupSession answers "who is
currently logged in" for every authenticated request, lazily revalidating
cached sessions against the provider on a cadence.

* AttemptStore: maps a one-time random correlation token to the deferred
state of one login attempt.  Tokens are single-use and attempts have a
bounded lifetime.

* Cache: the bounded store of authenticated sessions.  Each entry's lifetime
is derived from the provider-reported expiry of its own credential, capped by
an idle-eviction floor, with LRU eviction under capacity pressure.

* Session: the record of a currently authenticated user, including the
credential used to revalidate it (redacted in logs) and its one-way digest.

* PendingAction: a deferred note operation captured at login time and handed
out exactly once after authentication succeeds.

Both stores are process-local and in-memory by design: a restart forces
re-authentication.
*/
package session
