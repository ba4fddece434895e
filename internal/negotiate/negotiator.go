package negotiate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/hexathral/igclient/internal/wire"
	"github.com/hexathral/igclient/mailbox"
	"github.com/hexathral/igclient/session"
)

var (
	// ErrBadCredentials means the service rejected the username/password pair.
	ErrBadCredentials = errors.New("credentials rejected")
	// ErrChallengeTimeout means the mailbox yielded no code within the budget.
	ErrChallengeTimeout = errors.New("challenge code not received within budget")
	// ErrChallengeRejected means the service refused a retrieved code.
	ErrChallengeRejected = errors.New("challenge code rejected")
	// ErrNoMailbox means a challenge was raised but no mailbox is configured.
	ErrNoMailbox = errors.New("challenge raised but no mailbox configured")
	// ErrUnexpectedResponse means the login endpoint answered in a shape
	// this client does not recognize.
	ErrUnexpectedResponse = errors.New("unexpected login response")
)

// Config bounds a negotiation attempt.
type Config struct {
	MaxAttempts     int
	PollInterval    time.Duration
	Criteria        mailbox.Criteria
	SessionLifetime time.Duration

	// OnChallenge, when set, is invoked once per raised identity
	// challenge. The host uses it to feed its counters.
	OnChallenge func()
}

// Negotiator performs the two-phase login state machine:
// AwaitingCredentials -> {Authenticated | AwaitingChallenge} ->
// {Authenticated | Failed}. No state is revisited.
type Negotiator struct {
	builder   *wire.Builder
	transport *wire.Transport
	mailbox   mailbox.Mailbox
	cfg       Config
	logger    *slog.Logger

	// now and sleep are injection points for tests.
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// New constructs a Negotiator. mb may be nil when challenges are not
// expected; a raised challenge then fails with ErrNoMailbox.
func New(builder *wire.Builder, transport *wire.Transport, mb mailbox.Mailbox, cfg Config, logger *slog.Logger) *Negotiator {
	return &Negotiator{
		builder:   builder,
		transport: transport,
		mailbox:   mb,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		sleep:     sleepContext,
	}
}

// loginReply is the JSON shape of the web login endpoint.
type loginReply struct {
	Authenticated bool   `json:"authenticated"`
	User          bool   `json:"user"`
	UserID        string `json:"userId"`
	Status        string `json:"status"`
	Message       string `json:"message"`
	CheckpointURL string `json:"checkpoint_url"`
	ErrorType     string `json:"error_type"`
}

// Login submits credentials and returns a fresh session token. The
// credentials live only for the duration of this call.
func (n *Negotiator) Login(ctx context.Context, username, password string) (*session.Token, error) {
	cookies := map[string]string{}

	// Preflight for the csrf cookie the login endpoint demands.
	resp, err := n.do(ctx, wire.Request{Method: http.MethodGet, Path: "/accounts/login/"}, cookies)
	if err != nil {
		return nil, err
	}
	mergeCookies(cookies, resp.Cookies)

	form := url.Values{}
	form.Set("username", username)
	form.Set("enc_password", fmt.Sprintf("#PWD_INSTAGRAM_BROWSER:0:%d:%s", n.now().Unix(), password))
	form.Set("optIntoOneTapPrompt", "false")

	resp, err = n.do(ctx, wire.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/web/accounts/login/ajax/",
		Form:   form,
	}, cookies)
	if err != nil {
		return nil, err
	}
	mergeCookies(cookies, resp.Cookies)

	var reply loginReply
	if err := json.Unmarshal(resp.Body, &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}

	switch {
	case reply.Authenticated && cookies["sessionid"] != "":
		n.logger.Info("login succeeded", slog.String("username", username))
		return n.tokenFromCookies(username, reply.UserID, cookies), nil

	case reply.Message == "checkpoint_required" || reply.CheckpointURL != "":
		n.logger.Info("login challenged", slog.String("username", username))
		return n.resolveChallenge(ctx, challenge{
			url:       reply.CheckpointURL,
			startedAt: n.now(),
		}, cookies, username)

	case resp.OK() || reply.Status == "fail":
		return nil, ErrBadCredentials

	default:
		return nil, fmt.Errorf("%w: status %d", ErrUnexpectedResponse, resp.StatusCode)
	}
}

// do builds and executes a request with the accumulated pre-session
// cookies attached.
func (n *Negotiator) do(ctx context.Context, req wire.Request, cookies map[string]string) (*wire.Response, error) {
	if len(cookies) > 0 {
		if req.Header == nil {
			req.Header = http.Header{}
		}
		req.Header.Set("Cookie", cookieHeader(cookies))
		if csrf := cookies["csrftoken"]; csrf != "" {
			req.Header.Set("X-CSRFToken", csrf)
		}
	}
	httpReq, err := n.builder.Build(ctx, req, nil)
	if err != nil {
		return nil, err
	}
	return n.transport.Do(ctx, httpReq)
}

func (n *Negotiator) tokenFromCookies(username, userID string, cookies map[string]string) *session.Token {
	if userID == "" {
		userID = cookies["ds_user_id"]
	}

	names := make([]string, 0, len(cookies))
	for name := range cookies {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]session.Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, session.Entry{Name: name, Value: cookies[name]})
	}

	now := n.now()
	return &session.Token{
		Username:  username,
		UserID:    userID,
		Entries:   entries,
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(n.cfg.SessionLifetime).Unix(),
	}
}

func mergeCookies(dst map[string]string, cookies []*http.Cookie) {
	for _, c := range cookies {
		if c.Value == "" {
			delete(dst, c.Name)
			continue
		}
		dst[c.Name] = c.Value
	}
}

func cookieHeader(cookies map[string]string) string {
	names := make([]string, 0, len(cookies))
	for name := range cookies {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"="+cookies[name])
	}
	return strings.Join(pairs, "; ")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
