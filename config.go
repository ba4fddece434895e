package igclient

import (
	"errors"
	"time"
)

// Config defines the tunable behavior of a [Client]. A zero Config is not
// usable directly; [New] starts from defaultConfig and callers override
// individual fields through [Builder.WithConfig].
//
// Config instances are treated as immutable after [Builder.Build].
type Config struct {
	Session   SessionConfig
	Challenge ChallengeConfig
	Transport TransportConfig
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig controls the credential cache.
type SessionConfig struct {
	// KeyPrefix is the credential store namespace. Entries are written as
	// "<KeyPrefix>.<sanitized username>", or bare KeyPrefix for an
	// unqualified logout. Default "session".
	KeyPrefix string
	// Lifetime is the validity assigned to a freshly negotiated session
	// when the service does not state one. Instagram web sessions last
	// about a year; the default is 90 days to stay well inside it.
	Lifetime time.Duration
}

/*
====================================
CHALLENGE CONFIG
====================================
*/

// ChallengeConfig bounds the email verification sub-flow of login.
type ChallengeConfig struct {
	// MaxAttempts caps how many times the mailbox is polled for the
	// verification code before the attempt fails with ErrChallengeTimeout.
	MaxAttempts int
	// PollInterval separates consecutive mailbox polls.
	PollInterval time.Duration
	// Sender and Subject narrow which mailbox messages are considered
	// when extracting the code. Empty values match any message.
	Sender  string
	Subject string
}

/*
====================================
TRANSPORT CONFIG
====================================
*/

// TransportConfig controls the outbound HTTP layer.
type TransportConfig struct {
	// BaseURL is the service origin. Default "https://www.instagram.com".
	BaseURL string
	// UserAgent is stamped on every request.
	UserAgent string
	// Timeout applies per request when the Builder constructs its own
	// http.Client. Ignored when WithHTTPClient supplies one.
	Timeout time.Duration
	// RequestsPerSecond and Burst feed the request pacer. Every outbound
	// call waits for a rate slot, so pagination loops cannot hammer the
	// service. Zero RequestsPerSecond disables pacing.
	RequestsPerSecond float64
	Burst             int
}

func defaultConfig() Config {
	return Config{
		Session: SessionConfig{
			KeyPrefix: "session",
			Lifetime:  90 * 24 * time.Hour,
		},
		Challenge: ChallengeConfig{
			MaxAttempts:  10,
			PollInterval: 5 * time.Second,
		},
		Transport: TransportConfig{
			BaseURL:           "https://www.instagram.com",
			UserAgent:         defaultUserAgent,
			Timeout:           30 * time.Second,
			RequestsPerSecond: 1,
			Burst:             3,
		},
	}
}

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

func validateConfig(cfg Config) error {
	if cfg.Session.KeyPrefix == "" {
		return errors.New("session key prefix must not be empty")
	}
	if cfg.Session.Lifetime <= 0 {
		return errors.New("session lifetime must be positive")
	}
	if cfg.Challenge.MaxAttempts <= 0 {
		return errors.New("challenge max attempts must be positive")
	}
	if cfg.Challenge.PollInterval <= 0 {
		return errors.New("challenge poll interval must be positive")
	}
	if cfg.Transport.BaseURL == "" {
		return errors.New("transport base url must not be empty")
	}
	if cfg.Transport.RequestsPerSecond < 0 {
		return errors.New("transport requests per second must not be negative")
	}
	return nil
}
