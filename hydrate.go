package igclient

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/hexathral/igclient/models"
)

// Hydrators are pure transforms from a raw service payload to a typed
// model. They validate shape only: a required field missing or mistyped is
// ErrMalformedPayload, never a retry condition.

// flexID tolerates the service flip-flopping between numeric and string
// identifiers across endpoints.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

func (f flexID) String() string { return string(f) }

func malformed(what string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedPayload, what, err)
	}
	return fmt.Errorf("%w: %s", ErrMalformedPayload, what)
}

/*
====================================
PROFILE
====================================
*/

type rawProfileReply struct {
	Data struct {
		User *struct {
			ID            flexID `json:"id"`
			Username      string `json:"username"`
			FullName      string `json:"full_name"`
			Biography     string `json:"biography"`
			ExternalURL   string `json:"external_url"`
			ProfilePicURL string `json:"profile_pic_url_hd"`
			IsPrivate     bool   `json:"is_private"`
			IsVerified    bool   `json:"is_verified"`
			FollowedBy    struct {
				Count int64 `json:"count"`
			} `json:"edge_followed_by"`
			Follow struct {
				Count int64 `json:"count"`
			} `json:"edge_follow"`
			TimelineMedia struct {
				Count int64 `json:"count"`
			} `json:"edge_owner_to_timeline_media"`
		} `json:"user"`
	} `json:"data"`
	Status string `json:"status"`
}

func hydrateProfile(body []byte) (*models.Profile, error) {
	var raw rawProfileReply
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, malformed("profile", err)
	}
	user := raw.Data.User
	if user == nil {
		return nil, ErrNotFound
	}
	if user.Username == "" {
		return nil, malformed("profile missing username", nil)
	}
	return &models.Profile{
		ID:             user.ID.String(),
		Username:       user.Username,
		FullName:       user.FullName,
		Biography:      user.Biography,
		ExternalURL:    user.ExternalURL,
		ProfilePicURL:  user.ProfilePicURL,
		FollowerCount:  user.FollowedBy.Count,
		FollowingCount: user.Follow.Count,
		MediaCount:     user.TimelineMedia.Count,
		IsPrivate:      user.IsPrivate,
		IsVerified:     user.IsVerified,
	}, nil
}

/*
====================================
MEDIA
====================================
*/

type rawMediaItem struct {
	PK        flexID `json:"pk"`
	Code      string `json:"code"`
	MediaType int    `json:"media_type"`
	TakenAt   int64  `json:"taken_at"`
	Caption   *struct {
		Text string `json:"text"`
	} `json:"caption"`
	LikeCount     int64 `json:"like_count"`
	CommentCount  int64 `json:"comment_count"`
	ImageVersions struct {
		Candidates []struct {
			URL string `json:"url"`
		} `json:"candidates"`
	} `json:"image_versions2"`
	VideoVersions []struct {
		URL string `json:"url"`
	} `json:"video_versions"`
	User struct {
		PK       flexID `json:"pk"`
		Username string `json:"username"`
	} `json:"user"`
}

func (r *rawMediaItem) model() (models.Media, error) {
	if r.PK.String() == "" {
		return models.Media{}, malformed("media missing pk", nil)
	}
	m := models.Media{
		ID:            r.PK.String(),
		Code:          r.Code,
		Type:          r.MediaType,
		TakenAt:       r.TakenAt,
		LikeCount:     r.LikeCount,
		CommentCount:  r.CommentCount,
		OwnerID:       r.User.PK.String(),
		OwnerUsername: r.User.Username,
	}
	if r.Caption != nil {
		m.Caption = r.Caption.Text
	}
	if len(r.ImageVersions.Candidates) > 0 {
		m.ImageURL = r.ImageVersions.Candidates[0].URL
	}
	if len(r.VideoVersions) > 0 {
		m.VideoURL = r.VideoVersions[0].URL
	}
	return m, nil
}

type rawUserFeedReply struct {
	Items         []rawMediaItem `json:"items"`
	NextMaxID     flexID         `json:"next_max_id"`
	MoreAvailable bool           `json:"more_available"`
	Status        string         `json:"status"`
}

func hydrateUserFeed(body []byte) (Page[models.Media], error) {
	var raw rawUserFeedReply
	if err := json.Unmarshal(body, &raw); err != nil {
		return Page[models.Media]{}, malformed("user feed", err)
	}
	page := Page[models.Media]{Items: make([]models.Media, 0, len(raw.Items))}
	for i := range raw.Items {
		m, err := raw.Items[i].model()
		if err != nil {
			return Page[models.Media]{}, err
		}
		page.Items = append(page.Items, m)
	}
	if raw.MoreAvailable {
		page.NextCursor = raw.NextMaxID.String()
	}
	return page, nil
}

/*
====================================
COMMENTS
====================================
*/

type rawCommentsReply struct {
	Comments []struct {
		PK        flexID `json:"pk"`
		Text      string `json:"text"`
		CreatedAt int64  `json:"created_at"`
		LikeCount int64  `json:"comment_like_count"`
		User      struct {
			PK       flexID `json:"pk"`
			Username string `json:"username"`
		} `json:"user"`
	} `json:"comments"`
	NextMinID flexID `json:"next_min_id"`
	Status    string `json:"status"`
}

func hydrateComments(body []byte) (Page[models.Comment], error) {
	var raw rawCommentsReply
	if err := json.Unmarshal(body, &raw); err != nil {
		return Page[models.Comment]{}, malformed("comments", err)
	}
	page := Page[models.Comment]{
		Items:      make([]models.Comment, 0, len(raw.Comments)),
		NextCursor: raw.NextMinID.String(),
	}
	for _, rc := range raw.Comments {
		if rc.PK.String() == "" {
			return Page[models.Comment]{}, malformed("comment missing pk", nil)
		}
		page.Items = append(page.Items, models.Comment{
			ID:        rc.PK.String(),
			Text:      rc.Text,
			CreatedAt: rc.CreatedAt,
			LikeCount: rc.LikeCount,
			UserID:    rc.User.PK.String(),
			Username:  rc.User.Username,
		})
	}
	return page, nil
}

/*
====================================
FOLLOWERS / FOLLOWING
====================================
*/

type rawUserListReply struct {
	Users []struct {
		PK            flexID `json:"pk"`
		Username      string `json:"username"`
		FullName      string `json:"full_name"`
		ProfilePicURL string `json:"profile_pic_url"`
		IsPrivate     bool   `json:"is_private"`
		IsVerified    bool   `json:"is_verified"`
	} `json:"users"`
	NextMaxID flexID `json:"next_max_id"`
	Status    string `json:"status"`
}

func hydrateUserList(body []byte) (Page[models.User], error) {
	var raw rawUserListReply
	if err := json.Unmarshal(body, &raw); err != nil {
		return Page[models.User]{}, malformed("user list", err)
	}
	page := Page[models.User]{
		Items:      make([]models.User, 0, len(raw.Users)),
		NextCursor: raw.NextMaxID.String(),
	}
	for _, ru := range raw.Users {
		if ru.Username == "" {
			return Page[models.User]{}, malformed("user missing username", nil)
		}
		page.Items = append(page.Items, models.User{
			ID:            ru.PK.String(),
			Username:      ru.Username,
			FullName:      ru.FullName,
			ProfilePicURL: ru.ProfilePicURL,
			IsPrivate:     ru.IsPrivate,
			IsVerified:    ru.IsVerified,
		})
	}
	return page, nil
}

/*
====================================
HASHTAG / LOCATION / LIVE
====================================
*/

type rawHashtagReply struct {
	Data struct {
		ID         flexID `json:"id"`
		Name       string `json:"name"`
		MediaCount int64  `json:"media_count"`
	} `json:"data"`
	Status string `json:"status"`
}

func hydrateHashtag(body []byte) (*models.Hashtag, error) {
	var raw rawHashtagReply
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, malformed("hashtag", err)
	}
	if raw.Data.Name == "" {
		return nil, malformed("hashtag missing name", nil)
	}
	return &models.Hashtag{
		ID:         raw.Data.ID.String(),
		Name:       raw.Data.Name,
		MediaCount: raw.Data.MediaCount,
	}, nil
}

type rawLocationReply struct {
	Location *struct {
		PK      flexID  `json:"pk"`
		Name    string  `json:"name"`
		Address string  `json:"address"`
		City    string  `json:"city"`
		Lat     float64 `json:"lat"`
		Lng     float64 `json:"lng"`
	} `json:"location"`
	Status string `json:"status"`
}

func hydrateLocation(body []byte) (*models.Location, error) {
	var raw rawLocationReply
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, malformed("location", err)
	}
	if raw.Location == nil {
		return nil, ErrNotFound
	}
	return &models.Location{
		ID:      raw.Location.PK.String(),
		Name:    raw.Location.Name,
		Address: raw.Location.Address,
		City:    raw.Location.City,
		Lat:     raw.Location.Lat,
		Lng:     raw.Location.Lng,
	}, nil
}

type rawLiveReply struct {
	ID              flexID `json:"id"`
	BroadcastStatus string `json:"broadcast_status"`
	ViewerCount     int64  `json:"viewer_count"`
	PublishedTime   int64  `json:"published_time"`
	DashPlaybackURL string `json:"dash_playback_url"`
	Status          string `json:"status"`
}

func hydrateLive(body []byte) (*models.Live, error) {
	var raw rawLiveReply
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, malformed("live", err)
	}
	if raw.ID.String() == "" {
		return nil, ErrNotFound
	}
	return &models.Live{
		ID:              raw.ID.String(),
		BroadcastStatus: raw.BroadcastStatus,
		ViewerCount:     raw.ViewerCount,
		PublishedAt:     raw.PublishedTime,
		DashPlaybackURL: raw.DashPlaybackURL,
	}, nil
}

/*
====================================
STORIES
====================================
*/

type rawStoryItem struct {
	PK            flexID `json:"pk"`
	MediaType     int    `json:"media_type"`
	TakenAt       int64  `json:"taken_at"`
	ExpiringAt    int64  `json:"expiring_at"`
	ImageVersions struct {
		Candidates []struct {
			URL string `json:"url"`
		} `json:"candidates"`
	} `json:"image_versions2"`
	VideoVersions []struct {
		URL string `json:"url"`
	} `json:"video_versions"`
}

func (r *rawStoryItem) model() models.StoryItem {
	item := models.StoryItem{
		ID:         r.PK.String(),
		Type:       r.MediaType,
		TakenAt:    r.TakenAt,
		ExpiringAt: r.ExpiringAt,
	}
	if len(r.ImageVersions.Candidates) > 0 {
		item.ImageURL = r.ImageVersions.Candidates[0].URL
	}
	if len(r.VideoVersions) > 0 {
		item.VideoURL = r.VideoVersions[0].URL
	}
	return item
}

type rawReelsTrayReply struct {
	Tray []struct {
		ID   flexID `json:"id"`
		User struct {
			PK            flexID `json:"pk"`
			Username      string `json:"username"`
			FullName      string `json:"full_name"`
			ProfilePicURL string `json:"profile_pic_url"`
			IsPrivate     bool   `json:"is_private"`
			IsVerified    bool   `json:"is_verified"`
		} `json:"user"`
		Items []rawStoryItem `json:"items"`
	} `json:"tray"`
	Status string `json:"status"`
}

func hydrateReelsTray(body []byte) (Page[models.Reel], error) {
	var raw rawReelsTrayReply
	if err := json.Unmarshal(body, &raw); err != nil {
		return Page[models.Reel]{}, malformed("reels tray", err)
	}
	page := Page[models.Reel]{Items: make([]models.Reel, 0, len(raw.Tray))}
	for _, rt := range raw.Tray {
		reel := models.Reel{
			ID: rt.ID.String(),
			User: models.User{
				ID:            rt.User.PK.String(),
				Username:      rt.User.Username,
				FullName:      rt.User.FullName,
				ProfilePicURL: rt.User.ProfilePicURL,
				IsPrivate:     rt.User.IsPrivate,
				IsVerified:    rt.User.IsVerified,
			},
		}
		for i := range rt.Items {
			reel.Items = append(reel.Items, rt.Items[i].model())
		}
		page.Items = append(page.Items, reel)
	}
	return page, nil
}

type rawHighlightsReply struct {
	Tray []struct {
		ID         flexID `json:"id"`
		Title      string `json:"title"`
		MediaCount int64  `json:"media_count"`
		CoverMedia struct {
			CroppedImage struct {
				URL string `json:"url"`
			} `json:"cropped_image_version"`
		} `json:"cover_media"`
	} `json:"tray"`
	Status string `json:"status"`
}

func hydrateHighlights(body []byte) (Page[models.StoryHighlight], error) {
	var raw rawHighlightsReply
	if err := json.Unmarshal(body, &raw); err != nil {
		return Page[models.StoryHighlight]{}, malformed("highlights", err)
	}
	page := Page[models.StoryHighlight]{Items: make([]models.StoryHighlight, 0, len(raw.Tray))}
	for _, rh := range raw.Tray {
		page.Items = append(page.Items, models.StoryHighlight{
			ID:         rh.ID.String(),
			Title:      rh.Title,
			CoverURL:   rh.CoverMedia.CroppedImage.URL,
			MediaCount: rh.MediaCount,
		})
	}
	return page, nil
}
