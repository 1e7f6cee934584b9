package ports

import (
	"context"

	"github.com/roamio/tour-booking/internal/core/domain"
)

// BookingRepository defines persistence operations for the booking ledger.
type BookingRepository interface {
	Insert(ctx context.Context, b *domain.Booking) error
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error)

	// DeleteOwned removes the booking only when it belongs to userID.
	// Returns domain.ErrBookingNotFound when nothing was deleted, which is
	// how a second cancel of the same id surfaces.
	DeleteOwned(ctx context.Context, id, userID string) error
}
