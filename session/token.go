package session

import "time"

// Entry is a single cookie-like key/value pair carried by a [Token].
type Entry struct {
	Name  string
	Value string
}

// Token is an authenticated-session credential bundle. Tokens are issued
// once by login negotiation and never mutated afterwards; a re-login
// produces a new Token. The zero Token is invalid.
//
// Tokens are plain values and safe for concurrent read by any number of
// in-flight requests.
type Token struct {
	Username string
	UserID   string
	Entries  []Entry

	CreatedAt int64
	ExpiresAt int64
}

// Value returns the named cookie entry, or false when absent.
func (t *Token) Value(name string) (string, bool) {
	for _, e := range t.Entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

// SessionID returns the service session identifier entry, empty when the
// token carries none.
func (t *Token) SessionID() string {
	v, _ := t.Value("sessionid")
	return v
}

// CSRFToken returns the csrftoken entry, empty when the token carries none.
func (t *Token) CSRFToken() string {
	v, _ := t.Value("csrftoken")
	return v
}

// Expired reports whether the token's expiry is at or before now.
func (t *Token) Expired(now time.Time) bool {
	return t.ExpiresAt <= now.Unix()
}
