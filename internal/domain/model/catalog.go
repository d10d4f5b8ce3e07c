package model

import "time"

type Album struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	ReleasedAt string `json:"releasedAt,omitempty"`
}

// Event is a time-boxed purchase campaign for one album.
type Event struct {
	ID            int64     `json:"id"`
	AlbumID       int64     `json:"albumId"`
	Name          string    `json:"name"`
	UnitPrice     int64     `json:"unitPrice"`
	PurchaseLimit int       `json:"purchaseLimit"`
	StartsAt      time.Time `json:"startsAt"`
	EndsAt        time.Time `json:"endsAt"`
	Active        bool      `json:"active"`
}
