package models

// Profile is a user's public account page.
type Profile struct {
	ID            string
	Username      string
	FullName      string
	Biography     string
	ExternalURL   string
	ProfilePicURL string

	FollowerCount  int64
	FollowingCount int64
	MediaCount     int64

	IsPrivate  bool
	IsVerified bool
}
