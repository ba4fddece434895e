// Package session holds the authenticated-session token model, its
// versioned binary codec, and the credential store used to cache tokens
// between runs.
//
// A [Token] is an immutable bundle of cookie entries plus an absolute
// expiry. Only the login negotiator creates tokens; everything downstream
// reads them. The codec is self-describing (leading version byte) so the
// on-store format can evolve without invalidating cached sessions.
package session
