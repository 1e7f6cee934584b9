package domain

import "time"

const (
	AuditBookingCreated   = "created"
	AuditBookingCancelled = "cancelled"
)

// BookingEvent is an audit-trail record of a booking mutation.
type BookingEvent struct {
	BookingID  string    `json:"booking_id" bson:"booking_id"`
	TourID     string    `json:"tour_id" bson:"tour_id"`
	Action     string    `json:"action" bson:"action"`
	Amount     float64   `json:"amount" bson:"amount"`
	OccurredAt time.Time `json:"occurred_at" bson:"occurred_at"`
}
