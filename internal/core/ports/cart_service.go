package ports

import (
	"context"

	"github.com/roamio/tour-booking/internal/core/domain"
)

// CartService manages a user's pre-booking holding list. Cart entries carry
// no capacity reservation.
type CartService interface {
	Add(ctx context.Context, userID, tourID string) error
	Remove(ctx context.Context, userID, tourID string) error
	Items(ctx context.Context, userID string) ([]domain.CartItem, error)
}
