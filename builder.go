package igclient

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/hexathral/igclient/internal/negotiate"
	"github.com/hexathral/igclient/internal/wire"
	"github.com/hexathral/igclient/mailbox"
	"github.com/hexathral/igclient/session"
)

// Builder assembles a [Client]. Construction is allocation-only; no I/O
// happens before the first Client method call.
type Builder struct {
	config Config

	redis      *redis.Client
	store      session.Store
	httpClient *http.Client
	mailbox    mailbox.Mailbox
	logger     *slog.Logger

	built bool
}

// New returns a Builder preloaded with defaults.
func New() *Builder {
	return &Builder{config: defaultConfig()}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis uses client as the backing for the default Redis credential
// store. Ignored when WithStore supplies a store directly.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithStore supplies a custom credential store.
func (b *Builder) WithStore(store session.Store) *Builder {
	b.store = store
	return b
}

// WithHTTPClient supplies the HTTP client used for all service calls.
// Without it, Build constructs one with the configured timeout.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithMailbox supplies the mailbox polled for challenge verification
// codes. Without one, a raised challenge fails the login attempt.
func (b *Builder) WithMailbox(mb mailbox.Mailbox) *Builder {
	b.mailbox = mb
	return b
}

// WithLogger supplies a structured logger. Without one the client is
// silent.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// Build validates the configuration and assembles the Client. A Builder
// may be used once.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	store := b.store
	if store == nil {
		if b.redis == nil {
			return nil, errors.New("credential store required: provide WithRedis or WithStore")
		}
		store = session.NewRedisStore(b.redis)
	}

	logger := b.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	httpClient := b.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Transport.Timeout}
	}

	var limiter *rate.Limiter
	if cfg.Transport.RequestsPerSecond > 0 {
		burst := cfg.Transport.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.Transport.RequestsPerSecond), burst)
	}

	builder := wire.NewBuilder(cfg.Transport.BaseURL, cfg.Transport.UserAgent, uuid.NewString())
	transport := wire.NewTransport(httpClient, limiter, logger)

	criteria := mailbox.Criteria{
		Sender:  cfg.Challenge.Sender,
		Subject: cfg.Challenge.Subject,
	}
	metrics := &Metrics{}
	negotiator := negotiate.New(builder, transport, b.mailbox, negotiate.Config{
		MaxAttempts:     cfg.Challenge.MaxAttempts,
		PollInterval:    cfg.Challenge.PollInterval,
		Criteria:        criteria,
		SessionLifetime: cfg.Session.Lifetime,
		OnChallenge:     func() { metrics.inc(MetricChallengeRaised) },
	}, logger)

	b.built = true
	return &Client{
		config:     cfg,
		store:      store,
		builder:    builder,
		transport:  transport,
		negotiator: negotiator,
		logger:     logger,
		metrics:    metrics,
	}, nil
}
