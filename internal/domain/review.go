package domain

import (
	"time"
)

// Review is a user's review of a catalog product. Reviews are never updated.
type Review struct {
	ID        int64     `json:"-"`
	ProductID int       `json:"-"`
	UserID    int       `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Date      time.Time `json:"date"`
}
