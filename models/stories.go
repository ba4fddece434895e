package models

// StoryItem is one segment inside a story reel.
type StoryItem struct {
	ID         string
	Type       int
	ImageURL   string
	VideoURL   string
	TakenAt    int64
	ExpiringAt int64
}

// Reel is one user's story reel as it appears in the reels tray.
type Reel struct {
	ID    string
	User  User
	Items []StoryItem
}

// StoryHighlight is a pinned highlight reel on a profile.
type StoryHighlight struct {
	ID         string
	Title      string
	CoverURL   string
	MediaCount int64
}
