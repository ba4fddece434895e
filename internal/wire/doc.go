// Package wire builds HTTP requests bound to a session token and executes
// them through a rate-paced transport. It knows nothing about login
// orchestration or resource semantics; callers classify response bodies.
package wire
