package igclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/hexathral/igclient/internal/wire"
)

// Mutation operations share the pipeline's request and transport stages;
// hydration degenerates to extracting the envelope status string.

// Follow follows the given user and returns the service status string.
func (c *Client) Follow(ctx context.Context, userID string) (string, error) {
	return c.mutate(ctx, "/api/v1/friendships/create/"+url.PathEscape(userID)+"/")
}

// Unfollow unfollows the given user and returns the service status string.
func (c *Client) Unfollow(ctx context.Context, userID string) (string, error) {
	return c.mutate(ctx, "/api/v1/friendships/destroy/"+url.PathEscape(userID)+"/")
}

// Like likes the given media post and returns the service status string.
func (c *Client) Like(ctx context.Context, mediaID string) (string, error) {
	return c.mutate(ctx, "/api/v1/web/likes/"+url.PathEscape(mediaID)+"/like/")
}

// Unlike removes a like from the given media post and returns the service
// status string.
func (c *Client) Unlike(ctx context.Context, mediaID string) (string, error) {
	return c.mutate(ctx, "/api/v1/web/likes/"+url.PathEscape(mediaID)+"/unlike/")
}

func (c *Client) mutate(ctx context.Context, path string) (string, error) {
	// The mutation id lets the service dedupe a resubmitted form.
	form := url.Values{}
	form.Set("mutation_token", uuid.NewString())

	return fetchOne(ctx, c, wire.Request{
		Method: http.MethodPost,
		Path:   path,
		Form:   form,
	}, hydrateMutation)
}

func hydrateMutation(body []byte) (string, error) {
	var env struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return "", malformed("mutation reply", err)
	}
	if env.Status == "" {
		return "", malformed("mutation reply missing status", nil)
	}
	return env.Status, nil
}
