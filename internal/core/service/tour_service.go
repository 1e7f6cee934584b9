package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/roamio/tour-booking/internal/core/domain"
	"github.com/roamio/tour-booking/internal/core/ports"
)

const (
	cacheKeyTourList = "tours:all"
	cacheTTL         = time.Hour
)

func cacheKeyTour(id string) string {
	return "tours:id:" + id
}

// TourService implements catalog use cases with a read-through cache over
// list and detail queries. Search always hits the store.
type TourService struct {
	tours    ports.TourRepository
	accounts ports.AccountRepository
	cache    ports.CatalogCache
	logger   zerolog.Logger
}

func NewTourService(
	tours ports.TourRepository,
	accounts ports.AccountRepository,
	cache ports.CatalogCache,
	logger zerolog.Logger,
) *TourService {
	return &TourService{tours: tours, accounts: accounts, cache: cache, logger: logger}
}

func (s *TourService) Create(ctx context.Context, input ports.CreateTourInput) (*domain.Tour, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.City) == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Price <= 0 || input.Count <= 0 {
		return nil, domain.ErrInvalidInput
	}

	tour := &domain.Tour{
		ID:          uuid.NewString(),
		Title:       input.Title,
		City:        input.City,
		Address:     input.Address,
		Distance:    input.Distance,
		Price:       input.Price,
		Description: input.Description,
		Count:       input.Count,
		OwnerID:     input.OwnerID,
		BookedBy:    []string{},
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.tours.Create(ctx, tour); err != nil {
		s.logger.Error().Err(err).Msg("failed to create tour")
		return nil, err
	}

	if err := s.accounts.AddOwnedTour(ctx, input.OwnerID, tour.ID); err != nil {
		s.logger.Warn().Err(err).Str("tour_id", tour.ID).Msg("failed to link tour to owner")
	}

	s.cache.Invalidate(ctx, cacheKeyTourList)

	s.logger.Info().Str("tour_id", tour.ID).Str("owner_id", input.OwnerID).Msg("tour created")
	return tour, nil
}

func (s *TourService) Get(ctx context.Context, id string) (*domain.Tour, error) {
	var cached domain.Tour
	if s.cache.Get(ctx, cacheKeyTour(id), &cached) {
		return &cached, nil
	}

	tour, err := s.tours.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, cacheKeyTour(id), tour, cacheTTL)
	return tour, nil
}

func (s *TourService) List(ctx context.Context) ([]*domain.Tour, error) {
	var cached []*domain.Tour
	if s.cache.Get(ctx, cacheKeyTourList, &cached) {
		return cached, nil
	}

	tours, err := s.tours.List(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, cacheKeyTourList, tours, cacheTTL)
	return tours, nil
}

func (s *TourService) Search(ctx context.Context, query string) ([]*domain.Tour, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx)
	}
	return s.tours.Search(ctx, query)
}

// Delete removes an owned tour. Refused while any account holds an active
// booking against it.
func (s *TourService) Delete(ctx context.Context, tourID, ownerID string) error {
	if err := s.tours.DeleteUnbooked(ctx, tourID, ownerID); err != nil {
		return err
	}

	if err := s.accounts.RemoveOwnedTour(ctx, ownerID, tourID); err != nil {
		s.logger.Warn().Err(err).Str("tour_id", tourID).Msg("failed to unlink tour from owner")
	}

	s.cache.Invalidate(ctx, cacheKeyTourList, cacheKeyTour(tourID))

	s.logger.Info().Str("tour_id", tourID).Str("owner_id", ownerID).Msg("tour deleted")
	return nil
}
