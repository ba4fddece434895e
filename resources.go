package igclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hexathral/igclient/internal/wire"
	"github.com/hexathral/igclient/models"
)

// Resource operations. Each is one instantiation of the shared pipeline:
// a request template plus a hydrator. Paginated resources come in two
// flavors, first page and continuation; the continuation embeds the
// opaque cursor from the prior page unmodified. limit bounds a single
// call only, never the total retrievable across pages.

// Profile fetches a user's public profile by username.
func (c *Client) Profile(ctx context.Context, username string) (*models.Profile, error) {
	q := url.Values{}
	q.Set("username", username)
	return fetchOne(ctx, c, wire.Request{
		Method: http.MethodGet,
		Path:   "/api/v1/users/web_profile_info/",
		Query:  q,
	}, hydrateProfile)
}

// UserMedia fetches the first page of a user's timeline media.
func (c *Client) UserMedia(ctx context.Context, userID string, limit int) (Page[models.Media], error) {
	return c.userMedia(ctx, userID, "", limit)
}

// UserMediaAfter continues a timeline listing from a prior page's cursor.
func (c *Client) UserMediaAfter(ctx context.Context, userID, cursor string, limit int) (Page[models.Media], error) {
	return c.userMedia(ctx, userID, cursor, limit)
}

func (c *Client) userMedia(ctx context.Context, userID, cursor string, limit int) (Page[models.Media], error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("count", strconv.Itoa(limit))
	}
	if cursor != "" {
		q.Set("max_id", cursor)
	}
	return fetchPage(ctx, c, wire.Request{
		Method: http.MethodGet,
		Path:   "/api/v1/feed/user/" + url.PathEscape(userID) + "/",
		Query:  q,
	}, hydrateUserFeed)
}

// MediaComments fetches the first page of comments under a media post.
func (c *Client) MediaComments(ctx context.Context, mediaID string, limit int) (Page[models.Comment], error) {
	return c.mediaComments(ctx, mediaID, "", limit)
}

// MediaCommentsAfter continues a comment listing from a prior page's cursor.
func (c *Client) MediaCommentsAfter(ctx context.Context, mediaID, cursor string, limit int) (Page[models.Comment], error) {
	return c.mediaComments(ctx, mediaID, cursor, limit)
}

func (c *Client) mediaComments(ctx context.Context, mediaID, cursor string, limit int) (Page[models.Comment], error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("count", strconv.Itoa(limit))
	}
	if cursor != "" {
		q.Set("min_id", cursor)
	}
	return fetchPage(ctx, c, wire.Request{
		Method: http.MethodGet,
		Path:   "/api/v1/media/" + url.PathEscape(mediaID) + "/comments/",
		Query:  q,
	}, hydrateComments)
}

// Followers fetches the first page of a user's followers.
func (c *Client) Followers(ctx context.Context, userID string, limit int) (Page[models.User], error) {
	return c.userList(ctx, userID, "followers", "", limit)
}

// FollowersAfter continues a follower listing from a prior page's cursor.
func (c *Client) FollowersAfter(ctx context.Context, userID, cursor string, limit int) (Page[models.User], error) {
	return c.userList(ctx, userID, "followers", cursor, limit)
}

// Following fetches the first page of accounts a user follows.
func (c *Client) Following(ctx context.Context, userID string, limit int) (Page[models.User], error) {
	return c.userList(ctx, userID, "following", "", limit)
}

// FollowingAfter continues a following listing from a prior page's cursor.
func (c *Client) FollowingAfter(ctx context.Context, userID, cursor string, limit int) (Page[models.User], error) {
	return c.userList(ctx, userID, "following", cursor, limit)
}

func (c *Client) userList(ctx context.Context, userID, kind, cursor string, limit int) (Page[models.User], error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("count", strconv.Itoa(limit))
	}
	if cursor != "" {
		q.Set("max_id", cursor)
	}
	return fetchPage(ctx, c, wire.Request{
		Method: http.MethodGet,
		Path:   "/api/v1/friendships/" + url.PathEscape(userID) + "/" + kind + "/",
		Query:  q,
	}, hydrateUserList)
}

// Hashtag fetches a tag page summary by tag name (no leading "#").
func (c *Client) Hashtag(ctx context.Context, name string) (*models.Hashtag, error) {
	q := url.Values{}
	q.Set("tag_name", name)
	return fetchOne(ctx, c, wire.Request{
		Method: http.MethodGet,
		Path:   "/api/v1/tags/web_info/",
		Query:  q,
	}, hydrateHashtag)
}

// Location fetches a place page summary by location id.
func (c *Client) Location(ctx context.Context, locationID string) (*models.Location, error) {
	return fetchOne(ctx, c, wire.Request{
		Method: http.MethodGet,
		Path:   "/api/v1/locations/" + url.PathEscape(locationID) + "/location_info/",
	}, hydrateLocation)
}

// Live fetches the state of a live broadcast by broadcast id.
func (c *Client) Live(ctx context.Context, broadcastID string) (*models.Live, error) {
	return fetchOne(ctx, c, wire.Request{
		Method: http.MethodGet,
		Path:   "/api/v1/live/" + url.PathEscape(broadcastID) + "/info/",
	}, hydrateLive)
}

// ReelsTray fetches the logged-in user's story tray. The tray is not
// paginated; the returned page always has an empty cursor.
func (c *Client) ReelsTray(ctx context.Context) (Page[models.Reel], error) {
	return fetchPage(ctx, c, wire.Request{
		Method: http.MethodGet,
		Path:   "/api/v1/feed/reels_tray/",
	}, hydrateReelsTray)
}

// StoryHighlights fetches the highlight reels pinned on a user's profile.
func (c *Client) StoryHighlights(ctx context.Context, userID string) (Page[models.StoryHighlight], error) {
	return fetchPage(ctx, c, wire.Request{
		Method: http.MethodGet,
		Path:   "/api/v1/highlights/" + url.PathEscape(userID) + "/highlights_tray/",
	}, hydrateHighlights)
}
