package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/roamio/tour-booking/internal/core/domain"
	"github.com/roamio/tour-booking/internal/core/ports"
)

// AuditEnqueuer hands booking audit events to the async dispatcher.
type AuditEnqueuer interface {
	Enqueue(event domain.BookingEvent)
}

// BookingService orchestrates booking creation and cancellation.
//
// Consistency model: the capacity check, seat decrement, booked_by insert,
// and tour revenue credit are one conditional single-document update
// (TourRepository.ReserveSeats), which closes the lost-update race on
// capacity. The remaining writes are individually atomic; when one of them
// fails the preceding ones are compensated in reverse order, best effort.
type BookingService struct {
	tours    ports.TourRepository
	accounts ports.AccountRepository
	bookings ports.BookingRepository
	ledger   ports.RevenueLedger
	cache    ports.CatalogCache
	audit    AuditEnqueuer
	adminCut float64
	logger   zerolog.Logger
}

func NewBookingService(
	tours ports.TourRepository,
	accounts ports.AccountRepository,
	bookings ports.BookingRepository,
	ledger ports.RevenueLedger,
	cache ports.CatalogCache,
	audit AuditEnqueuer,
	adminCut float64,
	logger zerolog.Logger,
) *BookingService {
	if adminCut <= 0 || adminCut >= 1 {
		adminCut = domain.DefaultAdminCut
	}
	return &BookingService{
		tours:    tours,
		accounts: accounts,
		bookings: bookings,
		ledger:   ledger,
		cache:    cache,
		audit:    audit,
		adminCut: adminCut,
		logger:   logger,
	}
}

// Create books seats on a tour for the caller and settles the revenue split.
// All business-rule failures are detected before any mutation.
func (s *BookingService) Create(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
	if err := validateBookingInput(input); err != nil {
		return nil, err
	}
	seats := input.Adults + input.Children

	// The price and owner are read first; the capacity and duplicate checks
	// happen inside the conditional reservation below, so a stale read here
	// can never oversell.
	tour, err := s.tours.FindByID(ctx, input.TourID)
	if err != nil {
		return nil, err
	}

	split := domain.SplitCost(tour.Price, input.Adults, input.Children, s.adminCut)

	if err := s.tours.ReserveSeats(ctx, tour.ID, input.UserID, seats, split.EmployeeShare); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:            uuid.NewString(),
		TourID:        tour.ID,
		UserID:        input.UserID,
		OwnerID:       tour.OwnerID,
		Name:          input.Name,
		Phone:         input.Phone,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Adults:        input.Adults,
		Children:      input.Children,
		TotalCost:     split.Total,
		AdminShare:    split.AdminShare,
		EmployeeShare: split.EmployeeShare,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.bookings.Insert(ctx, booking); err != nil {
		s.releaseSeats(ctx, booking)
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if err := s.creditBooking(ctx, booking); err != nil {
		if delErr := s.bookings.DeleteOwned(ctx, booking.ID, booking.UserID); delErr != nil {
			s.logger.Error().Err(delErr).Str("booking_id", booking.ID).Msg("compensation: delete booking failed")
		}
		s.releaseSeats(ctx, booking)
		return nil, err
	}

	s.cache.Invalidate(ctx, cacheKeyTourList, cacheKeyTour(tour.ID))
	s.audit.Enqueue(domain.BookingEvent{
		BookingID:  booking.ID,
		TourID:     tour.ID,
		Action:     domain.AuditBookingCreated,
		Amount:     booking.TotalCost,
		OccurredAt: booking.CreatedAt,
	})

	s.logger.Info().
		Str("booking_id", booking.ID).
		Str("tour_id", tour.ID).
		Str("user_id", input.UserID).
		Int("seats", seats).
		Float64("total_cost", booking.TotalCost).
		Msg("booking created")

	return booking, nil
}

// Cancel reverses a booking: restores seats, clears booked_by, prunes the
// user's booking list, and debits both revenue accruals by the exact stored
// shares. A second cancel of the same id returns domain.ErrBookingNotFound.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, domain.ErrForbidden
	}

	// The owner-filtered delete is the commit point: whichever concurrent
	// cancel deletes the document performs the reversal; the loser gets
	// ErrBookingNotFound.
	if err := s.bookings.DeleteOwned(ctx, bookingID, userID); err != nil {
		return nil, err
	}

	if err := s.tours.ReleaseSeats(ctx, booking.TourID, userID, booking.PartySize(), booking.EmployeeShare); err != nil {
		s.logger.Error().Err(err).Str("booking_id", bookingID).Msg("cancel: seat release failed")
		return nil, fmt.Errorf("release seats: %w", err)
	}
	if err := s.accounts.RemoveBookingRef(ctx, userID, bookingID); err != nil {
		s.logger.Warn().Err(err).Str("booking_id", bookingID).Msg("cancel: booking ref not pruned")
	}
	if err := s.accounts.AddRevenue(ctx, booking.OwnerID, -booking.EmployeeShare); err != nil {
		s.logger.Error().Err(err).Str("booking_id", bookingID).Msg("cancel: employee revenue not reversed")
		return nil, fmt.Errorf("reverse employee revenue: %w", err)
	}
	if err := s.ledger.Add(ctx, -booking.AdminShare); err != nil {
		s.logger.Error().Err(err).Str("booking_id", bookingID).Msg("cancel: platform revenue not reversed")
		return nil, fmt.Errorf("reverse platform revenue: %w", err)
	}

	s.cache.Invalidate(ctx, cacheKeyTourList, cacheKeyTour(booking.TourID))
	s.audit.Enqueue(domain.BookingEvent{
		BookingID:  booking.ID,
		TourID:     booking.TourID,
		Action:     domain.AuditBookingCancelled,
		Amount:     booking.TotalCost,
		OccurredAt: time.Now().UTC(),
	})

	s.logger.Info().
		Str("booking_id", bookingID).
		Str("tour_id", booking.TourID).
		Str("user_id", userID).
		Msg("booking cancelled")

	return booking, nil
}

func (s *BookingService) ListMine(ctx context.Context, userID string) ([]*domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// creditBooking applies the post-reservation writes: the user's booking ref,
// the employee's revenue share, and the platform ledger. On failure the
// already-applied writes are reverted before returning.
func (s *BookingService) creditBooking(ctx context.Context, b *domain.Booking) error {
	if err := s.accounts.AddBookingRef(ctx, b.UserID, b.ID); err != nil {
		return fmt.Errorf("add booking ref: %w", err)
	}
	if err := s.accounts.AddRevenue(ctx, b.OwnerID, b.EmployeeShare); err != nil {
		s.revert(ctx, b, func() error { return s.accounts.RemoveBookingRef(ctx, b.UserID, b.ID) })
		return fmt.Errorf("credit employee revenue: %w", err)
	}
	if err := s.ledger.Add(ctx, b.AdminShare); err != nil {
		s.revert(ctx, b,
			func() error { return s.accounts.RemoveBookingRef(ctx, b.UserID, b.ID) },
			func() error { return s.accounts.AddRevenue(ctx, b.OwnerID, -b.EmployeeShare) },
		)
		return fmt.Errorf("credit platform revenue: %w", err)
	}
	return nil
}

func (s *BookingService) revert(ctx context.Context, b *domain.Booking, undos ...func() error) {
	for _, undo := range undos {
		if err := undo(); err != nil {
			s.logger.Error().Err(err).Str("booking_id", b.ID).Msg("compensation step failed")
		}
	}
}

func (s *BookingService) releaseSeats(ctx context.Context, b *domain.Booking) {
	if err := s.tours.ReleaseSeats(ctx, b.TourID, b.UserID, b.PartySize(), b.EmployeeShare); err != nil {
		s.logger.Error().Err(err).
			Str("tour_id", b.TourID).
			Str("user_id", b.UserID).
			Msg("compensation: seat release failed, tour count inconsistent")
	}
}

func validateBookingInput(in ports.CreateBookingInput) error {
	if in.TourID == "" || in.Name == "" || in.Phone == "" {
		return domain.ErrInvalidInput
	}
	if in.Adults < 1 || in.Children < 0 {
		return domain.ErrInvalidInput
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() || in.EndDate.Before(in.StartDate) {
		return domain.ErrInvalidInput
	}
	return nil
}
