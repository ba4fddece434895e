package wire

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/hexathral/igclient/session"
)

// webAppID is the application id the web client sends on API calls.
const webAppID = "936619743392459"

// Request describes one service call before it is bound to a session.
type Request struct {
	Method string
	// Path is relative to the service origin, e.g. "/api/v1/feed/reels_tray/".
	Path  string
	Query url.Values
	// Form, when non-nil, becomes an x-www-form-urlencoded body.
	Form url.Values
	// Header carries call-specific headers layered over the defaults.
	Header http.Header
}

// Builder turns a [Request] into a fully formed *http.Request carrying the
// client identity headers and the session cookies. One Builder serves a
// whole Client; it is immutable after construction.
type Builder struct {
	baseURL   string
	userAgent string
	deviceID  string
}

// NewBuilder constructs a request builder for the given origin. deviceID is
// a stable per-client identifier stamped on every request.
func NewBuilder(baseURL, userAgent, deviceID string) *Builder {
	return &Builder{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		deviceID:  deviceID,
	}
}

// BaseURL returns the service origin the builder targets.
func (b *Builder) BaseURL() string {
	return b.baseURL
}

// Build binds req to token and returns an executable HTTP request. A nil
// token produces an unauthenticated request (used during login preflight).
func (b *Builder) Build(ctx context.Context, req Request, token *session.Token) (*http.Request, error) {
	target := b.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body *strings.Reader
	if req.Form != nil {
		body = strings.NewReader(req.Form.Encode())
	} else {
		body = strings.NewReader("")
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("User-Agent", b.userAgent)
	httpReq.Header.Set("Accept", "*/*")
	httpReq.Header.Set("X-IG-App-ID", webAppID)
	httpReq.Header.Set("X-IG-Device-ID", b.deviceID)
	httpReq.Header.Set("X-Requested-With", "XMLHttpRequest")
	httpReq.Header.Set("Referer", b.baseURL+"/")
	if req.Form != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	if token != nil {
		if csrf := token.CSRFToken(); csrf != "" {
			httpReq.Header.Set("X-CSRFToken", csrf)
		}
		for _, e := range token.Entries {
			httpReq.AddCookie(&http.Cookie{Name: e.Name, Value: e.Value})
		}
	}

	for name, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Set(name, v)
		}
	}

	return httpReq, nil
}
