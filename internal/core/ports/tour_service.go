package ports

import (
	"context"

	"github.com/roamio/tour-booking/internal/core/domain"
)

// CreateTourInput carries the data needed to publish a new tour.
// OwnerID is the authenticated employee, resolved by the transport layer.
type CreateTourInput struct {
	Title       string
	City        string
	Address     string
	Distance    float64
	Price       float64
	Description string
	Count       int
	OwnerID     string
}

// TourService defines catalog use cases. Reads go through the catalog cache.
type TourService interface {
	Create(ctx context.Context, input CreateTourInput) (*domain.Tour, error)
	Get(ctx context.Context, id string) (*domain.Tour, error)
	List(ctx context.Context) ([]*domain.Tour, error)
	Search(ctx context.Context, query string) ([]*domain.Tour, error)
	// Delete removes an owned tour; refused while active bookings exist.
	Delete(ctx context.Context, tourID, ownerID string) error
}
