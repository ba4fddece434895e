package negotiate

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hexathral/igclient/internal/wire"
	"github.com/hexathral/igclient/session"
)

// challenge is the transient identity-check state raised mid-login. It
// exists only between detection and resolution; nothing persists it.
type challenge struct {
	// url is the checkpoint path the service nominated for this check.
	url string
	// startedAt bounds the mailbox search: only messages received after
	// the challenge began can carry its code.
	startedAt time.Time
}

// emailDeliveryChoice selects the email option on the checkpoint form.
const emailDeliveryChoice = "1"

// resolveChallenge asks the service to email a verification code, then
// polls the mailbox up to cfg.MaxAttempts times separated by
// cfg.PollInterval. A retrieved code is submitted exactly once: the
// service accepting it completes login, the service refusing it fails
// with ErrChallengeRejected. A wrong code is not transient, so no further
// polling follows a rejection.
func (n *Negotiator) resolveChallenge(ctx context.Context, ch challenge, cookies map[string]string, username string) (*session.Token, error) {
	if n.mailbox == nil {
		return nil, ErrNoMailbox
	}
	if ch.url == "" {
		return nil, ErrUnexpectedResponse
	}
	if n.cfg.OnChallenge != nil {
		n.cfg.OnChallenge()
	}

	form := url.Values{}
	form.Set("choice", emailDeliveryChoice)
	resp, err := n.do(ctx, wire.Request{
		Method: http.MethodPost,
		Path:   ch.url,
		Form:   form,
	}, cookies)
	if err != nil {
		return nil, err
	}
	mergeCookies(cookies, resp.Cookies)

	for attempt := 1; attempt <= n.cfg.MaxAttempts; attempt++ {
		if err := n.sleep(ctx, n.cfg.PollInterval); err != nil {
			return nil, err
		}

		code, ok, err := n.mailbox.FetchLatestCode(ctx, n.cfg.Criteria, ch.startedAt)
		if err != nil {
			return nil, err
		}
		if !ok {
			n.logger.Debug("challenge code not yet available",
				slog.String("username", username),
				slog.Int("attempt", attempt),
			)
			continue
		}

		n.logger.Info("challenge code retrieved",
			slog.String("username", username),
			slog.Int("attempt", attempt),
		)
		return n.submitCode(ctx, ch, cookies, username, code)
	}

	return nil, ErrChallengeTimeout
}

// submitCode posts a retrieved code to the checkpoint endpoint. Success is
// signaled by the service issuing a session cookie.
func (n *Negotiator) submitCode(ctx context.Context, ch challenge, cookies map[string]string, username, code string) (*session.Token, error) {
	form := url.Values{}
	form.Set("security_code", code)

	resp, err := n.do(ctx, wire.Request{
		Method: http.MethodPost,
		Path:   ch.url,
		Form:   form,
	}, cookies)
	if err != nil {
		return nil, err
	}
	mergeCookies(cookies, resp.Cookies)

	if !resp.OK() || cookies["sessionid"] == "" {
		return nil, ErrChallengeRejected
	}

	n.logger.Info("challenge resolved", slog.String("username", username))
	return n.tokenFromCookies(username, "", cookies), nil
}
