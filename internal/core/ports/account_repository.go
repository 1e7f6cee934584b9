package ports

import (
	"context"

	"github.com/roamio/tour-booking/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
// All mutation methods are single-document atomic updates.
type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)

	// AddBookingRef / RemoveBookingRef maintain a user's booking_ids list.
	AddBookingRef(ctx context.Context, accountID, bookingID string) error
	RemoveBookingRef(ctx context.Context, accountID, bookingID string) error

	// AddOwnedTour appends a tour to an employee's tour_ids list.
	AddOwnedTour(ctx context.Context, accountID, tourID string) error
	RemoveOwnedTour(ctx context.Context, accountID, tourID string) error

	// AddRevenue atomically adjusts an employee's accrued revenue by delta
	// (negative on cancellation).
	AddRevenue(ctx context.Context, accountID string, delta float64) error

	// AddCartItem increments the quantity for tourID in the user's cart, or
	// inserts a new entry with quantity 1.
	AddCartItem(ctx context.Context, accountID, tourID string) error
	// RemoveCartItem drops the cart entry for tourID entirely.
	RemoveCartItem(ctx context.Context, accountID, tourID string) error
}
