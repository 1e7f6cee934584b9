package domain

import (
	"errors"
	"time"
)

var ErrTourNotFound = errors.New("tour not found")
var ErrInsufficientCapacity = errors.New("insufficient capacity")
var ErrAlreadyBooked = errors.New("tour already booked by this account")
var ErrTourHasBookings = errors.New("tour has active bookings")
var ErrForbidden = errors.New("access forbidden")

// Tour is a bookable travel product with limited capacity.
//
// Count is the number of remaining bookable seats and must never go negative;
// reservations go through a conditional update filtered on count >= seats.
// BookedBy holds the accounts with an active booking against this tour, at
// most one entry per account.
type Tour struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	City        string    `json:"city" bson:"city"`
	Address     string    `json:"address" bson:"address"`
	Distance    float64   `json:"distance" bson:"distance"`
	Price       float64   `json:"price" bson:"price"`
	Description string    `json:"description" bson:"description"`
	Count       int       `json:"count" bson:"count"`
	OwnerID     string    `json:"owner_id" bson:"owner_id"`
	BookedBy    []string  `json:"booked_by" bson:"booked_by"`
	Revenue     float64   `json:"revenue" bson:"revenue"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// IsBookedBy reports whether the account holds an active booking on this tour.
func (t *Tour) IsBookedBy(accountID string) bool {
	for _, id := range t.BookedBy {
		if id == accountID {
			return true
		}
	}
	return false
}
