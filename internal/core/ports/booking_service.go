package ports

import (
	"context"
	"time"

	"github.com/roamio/tour-booking/internal/core/domain"
)

// CreateBookingInput carries everything needed to book a tour. UserID is the
// authenticated caller, already resolved and role-checked by the transport
// layer.
type CreateBookingInput struct {
	UserID    string
	TourID    string
	Name      string
	Phone     string
	StartDate time.Time
	EndDate   time.Time
	Adults    int
	Children  int
}

// BookingService orchestrates booking creation and cancellation, including
// capacity enforcement and the admin/employee revenue split.
type BookingService interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	// Cancel reverses the booking and returns the cancelled record.
	Cancel(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
	ListMine(ctx context.Context, userID string) ([]*domain.Booking, error)
}
