package igclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hexathral/igclient/internal/negotiate"
	"github.com/hexathral/igclient/internal/wire"
	"github.com/hexathral/igclient/session"
)

// Login ensures a valid session exists for username. A cached, unexpired
// session is reused without any network call; otherwise credentials are
// negotiated with the service (resolving an identity challenge through the
// configured mailbox when one is raised) and the fresh session is cached.
//
// The credential pair is held in memory for re-negotiation when the cached
// session later expires; it is never written to the credential store.
func (c *Client) Login(ctx context.Context, username, password string) error {
	if c == nil {
		return ErrClientNotReady
	}
	if username == "" || password == "" {
		c.metricInc(MetricLoginFailure)
		return ErrInvalidCredentials
	}

	c.mu.Lock()
	if c.username != username {
		// Switching accounts invalidates the in-memory token; the cached
		// entry of the previous account stays untouched.
		c.current.Store(nil)
	}
	c.username = username
	c.password = password
	c.mu.Unlock()

	_, err := c.ensureSession(ctx)
	return err
}

// Logout deletes the cached session for username, or the entry under the
// bare key prefix when username is empty. Deleting a missing entry is not
// an error.
func (c *Client) Logout(ctx context.Context, username string) error {
	if c == nil {
		return ErrClientNotReady
	}

	key := session.Key(c.config.Session.KeyPrefix, username)
	if err := c.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	c.mu.Lock()
	if tok := c.current.Load(); tok != nil && session.Sanitize(tok.Username) == session.Sanitize(username) {
		c.current.Store(nil)
	}
	c.mu.Unlock()

	c.metricInc(MetricLogout)
	c.logger.Info("logged out", slog.String("key", key))
	return nil
}

// ensureSession returns a valid session token: the in-memory one when it
// is still fresh, a cached one from the credential store, or a newly
// negotiated one. A stale cached entry is deleted and the whole procedure
// re-runs exactly once; a session that is still expired after that single
// retry surfaces ErrSessionExpired rather than looping.
func (c *Client) ensureSession(ctx context.Context) (*session.Token, error) {
	c.mu.Lock()
	username, password := c.username, c.password
	c.mu.Unlock()
	if username == "" {
		return nil, ErrNotLoggedIn
	}

	now := c.clock()
	if tok := c.current.Load(); tok != nil && !tok.Expired(now) {
		return tok, nil
	}

	key := session.Key(c.config.Session.KeyPrefix, username)
	retried := false

	for {
		data, err := c.store.Get(ctx, key)
		if err == nil {
			tok, decodeErr := session.Decode(data)
			if decodeErr == nil && !tok.Expired(c.clock()) {
				c.metricInc(MetricSessionCacheHit)
				c.current.Store(tok)
				return tok, nil
			}

			// Stale or undecodable entry: drop it and re-run once.
			c.metricInc(MetricSessionExpired)
			c.logger.Info("cached session stale, discarding", slog.String("key", key))
			if delErr := c.store.Delete(ctx, key); delErr != nil {
				return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, delErr)
			}
			if retried {
				return nil, ErrSessionExpired
			}
			retried = true
			continue
		}
		if !errors.Is(err, session.ErrNoSession) {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}

		c.metricInc(MetricSessionCacheMiss)
		tok, err := c.negotiator.Login(ctx, username, password)
		if err != nil {
			c.metricInc(MetricLoginFailure)
			return nil, mapNegotiateError(err)
		}
		if tok.Expired(c.clock()) {
			if retried {
				c.metricInc(MetricLoginFailure)
				return nil, ErrSessionExpired
			}
			retried = true
			continue
		}

		encoded, err := session.Encode(tok)
		if err != nil {
			return nil, fmt.Errorf("encode session: %w", err)
		}
		ttl := time.Until(time.Unix(tok.ExpiresAt, 0))
		if err := c.store.Set(ctx, key, encoded, ttl); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}

		c.metricInc(MetricLoginSuccess)
		c.current.Store(tok)
		c.logger.Info("session negotiated and cached", slog.String("key", key))
		return tok, nil
	}
}

func mapNegotiateError(err error) error {
	switch {
	case errors.Is(err, negotiate.ErrBadCredentials):
		return ErrInvalidCredentials
	case errors.Is(err, negotiate.ErrChallengeTimeout):
		return ErrChallengeTimeout
	case errors.Is(err, negotiate.ErrChallengeRejected):
		return ErrChallengeRejected
	case errors.Is(err, negotiate.ErrNoMailbox):
		return ErrMailboxRequired
	case errors.Is(err, negotiate.ErrUnexpectedResponse):
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	case errors.Is(err, wire.ErrUnavailable):
		return fmt.Errorf("%w: %v", ErrTransport, err)
	default:
		return err
	}
}
