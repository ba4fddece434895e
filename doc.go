// Package igclient is a client for the Instagram web API. It authenticates
// as a regular user, keeps the resulting session in a pluggable credential
// store, and retrieves typed resources (profiles, media, comments, stories,
// followers, locations, live streams) through one shared fetch pipeline.
//
// The package is designed around a single [Client] built once through
// [Builder.Build] and then shared: Client methods are safe to call from
// multiple goroutines, and session tokens are immutable values that may be
// read concurrently by any number of in-flight requests.
//
// # Architecture boundaries
//
// igclient is the public surface. It exposes [Client], [Builder], [Config],
// error sentinels, and value types. Login orchestration lives in
// internal/negotiate, request construction and transport classification in
// internal/wire; neither is ever exported. The session token codec and the
// credential store live in the session subpackage, typed resource models in
// the models subpackage, and the verification-code mailbox contract in the
// mailbox subpackage.
//
// # What this package must NOT do
//
//   - Expose Redis clients, cookie internals, or wire details in its API.
//   - Perform I/O outside of Client methods (Builder is allocation-only
//     until Build).
//   - Mutate a session token after it has been issued; re-login always
//     produces a fresh token.
//
// # Session lifecycle
//
// Login negotiates a session once and caches it under session.<username>.
// Later calls reuse the cached token until its expiry passes, at which
// point the stale entry is deleted and exactly one re-login is attempted.
// An identity challenge raised mid-login is resolved by polling a caller
// supplied mailbox for the emailed verification code, bounded by a
// configurable attempt budget and poll interval.
package igclient
