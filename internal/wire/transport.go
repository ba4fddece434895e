package wire

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrUnavailable wraps connection and timeout failures from the HTTP layer.
var ErrUnavailable = errors.New("http transport unavailable")

// maxResponseSize bounds how much of a response body is read. API payloads
// are small; anything larger is not something this client should buffer.
const maxResponseSize = 8 << 20

// Response is one completed HTTP exchange. Any status code counts as
// completed; callers classify it.
type Response struct {
	StatusCode int
	Body       []byte
	Cookies    []*http.Cookie
}

// OK reports whether the status code is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Envelope is the status wrapper present on JSON API responses.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ParseEnvelope decodes the status wrapper out of a JSON body.
func (r *Response) ParseEnvelope() (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(r.Body, &env); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

// Transport executes built requests. Every call first waits for a slot on
// the pacer, so bursts of pagination stay inside the configured request
// rate. A nil limiter disables pacing.
type Transport struct {
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewTransport wraps an HTTP client with pacing and logging.
func NewTransport(client *http.Client, limiter *rate.Limiter, logger *slog.Logger) *Transport {
	return &Transport{client: client, limiter: limiter, logger: logger}
}

// Do executes one request and buffers the body. A completed exchange
// returns a Response regardless of status code; only rate-wait
// cancellation and network-level failures return an error, wrapped in
// ErrUnavailable.
func (t *Transport) Do(ctx context.Context, req *http.Request) (*Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Error("request failed",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	t.logger.Debug("request completed",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
		Cookies:    resp.Cookies(),
	}, nil
}
