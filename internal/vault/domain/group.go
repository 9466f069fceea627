package domain

import "time"

type Group struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Order        int       `json:"order"`
	AccountCount int       `json:"accountCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// GroupRef is the slice of a group embedded in an account listing.
type GroupRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
