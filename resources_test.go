package igclient

import (
	"context"
	"errors"
	"testing"

	"github.com/hexathral/igclient/internal/wire"
	"github.com/hexathral/igclient/models"
)

func newLoggedInClient(t *testing.T, fs *fakeService) *Client {
	t.Helper()
	c, _ := newTestClient(t, fs)
	if err := c.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	return c
}

func TestProfileFetch(t *testing.T) {
	fs := newFakeService(t)
	c := newLoggedInClient(t, fs)

	p, err := c.Profile(context.Background(), "bob")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.ID != "7" || p.Username != "bob" || p.FullName != "Bob B" {
		t.Errorf("profile identity = %+v", p)
	}
	if p.FollowerCount != 120 || p.FollowingCount != 80 || p.MediaCount != 3 {
		t.Errorf("profile counts = %+v", p)
	}
	if !p.IsVerified || p.IsPrivate {
		t.Errorf("profile flags = %+v", p)
	}
}

func TestProfileNotFound(t *testing.T) {
	fs := newFakeService(t)
	c := newLoggedInClient(t, fs)

	_, err := c.Profile(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUserMediaPagination(t *testing.T) {
	fs := newFakeService(t)
	c := newLoggedInClient(t, fs)
	ctx := context.Background()

	first, err := c.UserMedia(ctx, "7", 2)
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Items) != 2 {
		t.Fatalf("first page items = %d, want 2", len(first.Items))
	}
	if first.NextCursor != "cursor-1" {
		t.Fatalf("next cursor = %q, want cursor-1", first.NextCursor)
	}

	second, err := c.UserMediaAfter(ctx, "7", first.NextCursor, 2)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if second.NextCursor != "" {
		t.Errorf("exhausted sequence cursor = %q, want empty", second.NextCursor)
	}

	seen := map[string]bool{}
	for _, m := range first.Items {
		seen[m.ID] = true
	}
	for _, m := range second.Items {
		if seen[m.ID] {
			t.Errorf("item %s returned on both pages", m.ID)
		}
	}
	if len(second.Items) != 1 || second.Items[0].Code != "C3" {
		t.Errorf("second page = %+v", second.Items)
	}
}

func TestHashtagFetch(t *testing.T) {
	fs := newFakeService(t)
	c := newLoggedInClient(t, fs)

	h, err := c.Hashtag(context.Background(), "sunset")
	if err != nil {
		t.Fatalf("hashtag: %v", err)
	}
	if h.ID != "55" || h.Name != "sunset" || h.MediaCount != 123456 {
		t.Errorf("hashtag = %+v", h)
	}
}

func TestFollowReturnsStatus(t *testing.T) {
	fs := newFakeService(t)
	c := newLoggedInClient(t, fs)

	status, err := c.Follow(context.Background(), "7")
	if err != nil {
		t.Fatalf("follow: %v", err)
	}
	if status != "ok" {
		t.Errorf("status = %q, want ok", status)
	}
}

func TestMalformedPayload(t *testing.T) {
	fs := newFakeService(t)
	c := newLoggedInClient(t, fs)

	_, err := fetchPage(context.Background(), c, wire.Request{
		Method: "GET",
		Path:   "/api/v1/feed/broken/",
	}, hydrateUserFeed)
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("err = %v, want ErrMalformedPayload", err)
	}
	if c.MetricsSnapshot().Counters[MetricFetchFailure] == 0 {
		t.Error("fetch failure counter not incremented")
	}
}

func TestTransportStatusError(t *testing.T) {
	fs := newFakeService(t)
	c := newLoggedInClient(t, fs)

	// No handler is registered for this path; the mux answers 404,
	// which classifies as ErrNotFound.
	_, err := fetchOne(context.Background(), c, wire.Request{
		Method: "GET",
		Path:   "/api/v1/live/999/info/",
	}, hydrateLive)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestHydrateUserFeedShapes(t *testing.T) {
	page, err := hydrateUserFeed([]byte(`{
		"items":[{"pk":"900","code":"Z1","media_type":2,"taken_at":50,
			"caption":{"text":"hi"},"like_count":9,"comment_count":2,
			"video_versions":[{"url":"https://cdn/v.mp4"}],
			"user":{"pk":7,"username":"bob"}}],
		"next_max_id":12345,"more_available":true,"status":"ok"}`))
	if err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if page.NextCursor != "12345" {
		t.Errorf("numeric cursor = %q, want 12345", page.NextCursor)
	}
	m := page.Items[0]
	if m.ID != "900" || m.Type != models.MediaTypeVideo || m.Caption != "hi" {
		t.Errorf("media = %+v", m)
	}
	if m.VideoURL != "https://cdn/v.mp4" || m.OwnerID != "7" || m.OwnerUsername != "bob" {
		t.Errorf("media links = %+v", m)
	}

	if _, err := hydrateUserFeed([]byte(`{"items":[{"code":"nopk"}],"status":"ok"}`)); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("missing pk err = %v, want ErrMalformedPayload", err)
	}
}
