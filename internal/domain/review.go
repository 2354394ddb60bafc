package domain

import "time"

type Review struct {
	ID           int64
	UserID       int64
	PlaceID      int64
	Rating       float64 // 1..5 stars
	Comment      *string
	HelpfulCount int
	CreatedAt    time.Time
}

type Favorite struct {
	ID        int64
	UserID    int64
	PlaceID   int64
	CreatedAt time.Time
}

type SearchEntry struct {
	ID        int64
	UserID    int64
	Query     string
	Location  *string
	CreatedAt time.Time
}
