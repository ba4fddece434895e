// Package negotiate drives login against the service: it submits
// credentials, classifies the outcome, and when the service demands an
// out-of-band identity check it resolves the emailed verification code
// within a bounded polling budget. The only thing it produces is a fresh
// session token; caching that token is the caller's concern.
package negotiate
