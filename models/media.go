package models

// Media type discriminators as the service reports them.
const (
	MediaTypePhoto    = 1
	MediaTypeVideo    = 2
	MediaTypeCarousel = 8
)

// Media is one post on a user's timeline.
type Media struct {
	ID       string
	Code     string
	Type     int
	Caption  string
	ImageURL string
	VideoURL string

	LikeCount    int64
	CommentCount int64
	TakenAt      int64

	OwnerID       string
	OwnerUsername string
}

// Comment is one comment under a media post.
type Comment struct {
	ID        string
	Text      string
	CreatedAt int64
	LikeCount int64

	UserID   string
	Username string
}
