// Package test exercises igclient through its public surface only: a
// builder-assembled client against a fake HTTP service, a miniredis
// credential store, and a scripted mailbox.
package test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/hexathral/igclient"
	"github.com/hexathral/igclient/mailbox"
)

// handleMethod registers h for pattern, restricted to one HTTP method.
// It stands in for the "METHOD /path" mux patterns that require Go 1.22.
func handleMethod(mux *http.ServeMux, method, pattern string, h http.HandlerFunc) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	})
}

type scriptedService struct {
	srv *httptest.Server

	loginCalls  int
	submitCalls int

	challenge  bool
	acceptCode string
}

func newScriptedService(t *testing.T) *scriptedService {
	t.Helper()
	fs := &scriptedService{}
	mux := http.NewServeMux()

	handleMethod(mux, "GET", "/accounts/login/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "csrf-x"})
	})
	handleMethod(mux, "POST", "/api/v1/web/accounts/login/ajax/", func(w http.ResponseWriter, r *http.Request) {
		fs.loginCalls++
		w.Header().Set("Content-Type", "application/json")
		if fs.challenge {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"message":"checkpoint_required","checkpoint_url":"/challenge/9/xyz/","status":"fail"}`)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "sid-9"})
		http.SetCookie(w, &http.Cookie{Name: "ds_user_id", Value: "9"})
		fmt.Fprint(w, `{"authenticated":true,"userId":"9","status":"ok"}`)
	})
	handleMethod(mux, "POST", "/challenge/9/xyz/", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		w.Header().Set("Content-Type", "application/json")
		code := r.PostForm.Get("security_code")
		if code == "" {
			fmt.Fprint(w, `{"status":"ok"}`)
			return
		}
		fs.submitCalls++
		if code != fs.acceptCode {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"status":"fail"}`)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "sid-9"})
		http.SetCookie(w, &http.Cookie{Name: "ds_user_id", Value: "9"})
		fmt.Fprint(w, `{"status":"ok"}`)
	})
	handleMethod(mux, "GET", "/api/v1/feed/reels_tray/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"tray":[{"id":"r1","user":{"pk":9,"username":"alice"},
			"items":[{"pk":1,"media_type":1,"taken_at":10,"expiring_at":86410}]}],"status":"ok"}`)
	})

	fs.srv = httptest.NewServer(mux)
	t.Cleanup(fs.srv.Close)
	return fs
}

type scriptedMailbox struct {
	calls   int
	yieldOn int
	code    string
}

func (m *scriptedMailbox) FetchLatestCode(ctx context.Context, criteria mailbox.Criteria, since time.Time) (string, bool, error) {
	m.calls++
	if m.yieldOn > 0 && m.calls >= m.yieldOn {
		return m.code, true, nil
	}
	return "", false, nil
}

func buildClient(t *testing.T, fs *scriptedService, mb mailbox.Mailbox) (*igclient.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := igclient.Config{
		Session: igclient.SessionConfig{
			KeyPrefix: "session",
			Lifetime:  time.Hour,
		},
		Challenge: igclient.ChallengeConfig{
			MaxAttempts:  5,
			PollInterval: time.Millisecond,
		},
		Transport: igclient.TransportConfig{
			BaseURL:   fs.srv.URL,
			UserAgent: "igclient-test",
			Timeout:   5 * time.Second,
		},
	}

	b := igclient.New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithHTTPClient(fs.srv.Client())
	if mb != nil {
		b = b.WithMailbox(mb)
	}
	c, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return c, mr
}

func TestLoginScenarioCachedUnderSessionAlice(t *testing.T) {
	fs := newScriptedService(t)
	c, mr := buildClient(t, fs, nil)
	ctx := context.Background()

	if err := c.Login(ctx, "alice", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if fs.loginCalls != 1 {
		t.Fatalf("transport login calls = %d, want 1", fs.loginCalls)
	}
	if !mr.Exists("session.alice") {
		t.Fatal("token not cached under session.alice")
	}

	if err := c.Login(ctx, "alice", "secret"); err != nil {
		t.Fatalf("second login: %v", err)
	}
	if fs.loginCalls != 1 {
		t.Fatalf("transport login calls after cached login = %d, want 1", fs.loginCalls)
	}
}

func TestChallengeScenarioCodeOnSecondPoll(t *testing.T) {
	fs := newScriptedService(t)
	fs.challenge = true
	fs.acceptCode = "482913"
	mb := &scriptedMailbox{yieldOn: 2, code: "482913"}
	c, mr := buildClient(t, fs, mb)

	if err := c.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if mb.calls != 2 {
		t.Errorf("mailbox queries = %d, want exactly 2", mb.calls)
	}
	if fs.submitCalls != 1 {
		t.Errorf("code submissions = %d, want 1", fs.submitCalls)
	}
	if !mr.Exists("session.alice") {
		t.Error("challenged login did not cache the session")
	}

	snap := c.MetricsSnapshot()
	if snap.Counters[igclient.MetricChallengeRaised] != 1 {
		t.Errorf("challenge counter = %d, want 1", snap.Counters[igclient.MetricChallengeRaised])
	}
}

func TestChallengeScenarioTimeout(t *testing.T) {
	fs := newScriptedService(t)
	fs.challenge = true
	mb := &scriptedMailbox{}
	c, _ := buildClient(t, fs, mb)

	err := c.Login(context.Background(), "alice", "secret")
	if !errors.Is(err, igclient.ErrChallengeTimeout) {
		t.Fatalf("err = %v, want ErrChallengeTimeout", err)
	}
	if mb.calls != 5 {
		t.Errorf("mailbox queries = %d, want the full budget of 5", mb.calls)
	}
}

func TestResourceFetchAfterLogin(t *testing.T) {
	fs := newScriptedService(t)
	c, _ := buildClient(t, fs, nil)
	ctx := context.Background()

	if err := c.Login(ctx, "alice", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	tray, err := c.ReelsTray(ctx)
	if err != nil {
		t.Fatalf("reels tray: %v", err)
	}
	if len(tray.Items) != 1 || tray.Items[0].User.Username != "alice" {
		t.Errorf("tray = %+v", tray.Items)
	}
	if tray.NextCursor != "" {
		t.Errorf("tray cursor = %q, want empty", tray.NextCursor)
	}
	if len(tray.Items[0].Items) != 1 || tray.Items[0].Items[0].ExpiringAt != 86410 {
		t.Errorf("story items = %+v", tray.Items[0].Items)
	}
}

func TestBuilderRequiresStore(t *testing.T) {
	if _, err := igclient.New().Build(); err == nil {
		t.Fatal("expected build failure without a credential store")
	}
}
