package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/roamio/tour-booking/internal/core/domain"
	"github.com/roamio/tour-booking/internal/core/ports"
)

// CartService manages a user's pre-booking holding list.
type CartService struct {
	tours    ports.TourRepository
	accounts ports.AccountRepository
	logger   zerolog.Logger
}

func NewCartService(tours ports.TourRepository, accounts ports.AccountRepository, logger zerolog.Logger) *CartService {
	return &CartService{tours: tours, accounts: accounts, logger: logger}
}

// Add puts the tour in the cart, incrementing quantity when already present.
func (s *CartService) Add(ctx context.Context, userID, tourID string) error {
	if _, err := s.tours.FindByID(ctx, tourID); err != nil {
		return err
	}
	return s.accounts.AddCartItem(ctx, userID, tourID)
}

func (s *CartService) Remove(ctx context.Context, userID, tourID string) error {
	return s.accounts.RemoveCartItem(ctx, userID, tourID)
}

func (s *CartService) Items(ctx context.Context, userID string) ([]domain.CartItem, error) {
	account, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account.User == nil {
		return nil, domain.ErrForbidden
	}
	return account.User.Cart, nil
}
