package domain

import (
	"errors"
	"time"
)

var ErrBookingNotFound = errors.New("booking not found")
var ErrInvalidInput = errors.New("invalid input")

// Booking is a confirmed reservation of party-size seats against one tour by
// one user account. The admin/employee shares are stored alongside the total
// so cancellation reverses the exact amounts that were credited.
type Booking struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	TourID        string    `json:"tour_id" bson:"tour_id"`
	UserID        string    `json:"user_id" bson:"user_id"`
	OwnerID       string    `json:"owner_id" bson:"owner_id"`
	Name          string    `json:"name" bson:"name"`
	Phone         string    `json:"phone" bson:"phone"`
	StartDate     time.Time `json:"start_date" bson:"start_date"`
	EndDate       time.Time `json:"end_date" bson:"end_date"`
	Adults        int       `json:"adults" bson:"adults"`
	Children      int       `json:"children" bson:"children"`
	TotalCost     float64   `json:"total_cost" bson:"total_cost"`
	AdminShare    float64   `json:"admin_share" bson:"admin_share"`
	EmployeeShare float64   `json:"employee_share" bson:"employee_share"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// PartySize is the number of seats the booking occupies.
func (b *Booking) PartySize() int {
	return b.Adults + b.Children
}
