package models

// Live is the state of one live broadcast.
type Live struct {
	ID              string
	BroadcastStatus string
	ViewerCount     int64
	PublishedAt     int64
	DashPlaybackURL string
}
