package models

// User is the compact account shape carried by follower and following
// lists and by story trays.
type User struct {
	ID            string
	Username      string
	FullName      string
	ProfilePicURL string
	IsPrivate     bool
	IsVerified    bool
}
