package igclient

import "errors"

var (
	// ErrInvalidCredentials is returned when the service rejects the
	// username/password pair outright.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrChallengeTimeout is returned when the mailbox never yields a
	// verification code within the configured attempt budget.
	ErrChallengeTimeout = errors.New("challenge verification code not received")
	// ErrChallengeRejected is returned when the service refuses a retrieved
	// verification code. A wrong code is not transient, so no retry follows.
	ErrChallengeRejected = errors.New("challenge verification code rejected")
	// ErrSessionExpired is returned when a freshly negotiated session still
	// reports an expiry in the past. The cache manager retries re-login
	// exactly once before surfacing this.
	ErrSessionExpired = errors.New("session expired")
	// ErrNotFound is returned when the service reports the requested
	// resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrMalformedPayload is returned when a response is missing required
	// fields or carries them in an unexpected shape.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrTransport wraps connection, timeout, and non-2xx HTTP failures
	// that do not map to an API-level condition.
	ErrTransport = errors.New("transport failure")
	// ErrStoreUnavailable wraps credential store backend failures.
	ErrStoreUnavailable = errors.New("credential store unavailable")
	// ErrMailboxRequired is returned when the service raises an identity
	// challenge but the client was built without a mailbox.
	ErrMailboxRequired = errors.New("challenge raised but no mailbox configured")
	// ErrNotLoggedIn is returned when a resource operation runs before a
	// successful Login.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrClientNotReady is returned when a Client is used before Build.
	ErrClientNotReady = errors.New("client not initialized")
)
