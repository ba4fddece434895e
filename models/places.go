package models

// Hashtag is a tag page summary.
type Hashtag struct {
	ID         string
	Name       string
	MediaCount int64
}

// Location is a place page summary.
type Location struct {
	ID      string
	Name    string
	Address string
	City    string
	Lat     float64
	Lng     float64
}
