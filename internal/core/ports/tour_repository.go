package ports

import (
	"context"

	"github.com/roamio/tour-booking/internal/core/domain"
)

// TourRepository defines persistence operations for the tour catalog.
type TourRepository interface {
	Create(ctx context.Context, t *domain.Tour) error
	FindByID(ctx context.Context, id string) (*domain.Tour, error)
	List(ctx context.Context) ([]*domain.Tour, error)
	// Search matches a case-insensitive substring against title or city.
	Search(ctx context.Context, query string) ([]*domain.Tour, error)

	// ReserveSeats atomically decrements the tour's remaining count by seats,
	// adds accountID to booked_by, and credits employeeShare to the tour's
	// accrued revenue, all in one conditional update that only matches when
	// count >= seats and the account is not already in booked_by. On no match
	// it returns domain.ErrTourNotFound, domain.ErrAlreadyBooked, or
	// domain.ErrInsufficientCapacity, having mutated nothing.
	ReserveSeats(ctx context.Context, tourID, accountID string, seats int, employeeShare float64) error

	// ReleaseSeats reverses ReserveSeats: restores the count, removes the
	// account from booked_by, and debits the tour's accrued revenue.
	ReleaseSeats(ctx context.Context, tourID, accountID string, seats int, employeeShare float64) error

	// DeleteUnbooked removes a tour owned by ownerID, but only while its
	// booked_by set is empty. Returns domain.ErrTourNotFound when no tour
	// matches the id, domain.ErrForbidden when it exists under another owner,
	// and domain.ErrTourHasBookings when active bookings block the delete.
	DeleteUnbooked(ctx context.Context, tourID, ownerID string) error
}
