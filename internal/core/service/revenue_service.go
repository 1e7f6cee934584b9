package service

import (
	"context"

	"github.com/roamio/tour-booking/internal/core/domain"
	"github.com/roamio/tour-booking/internal/core/ports"
)

// RevenueService exposes the accrued revenue views.
type RevenueService struct {
	ledger   ports.RevenueLedger
	accounts ports.AccountRepository
}

func NewRevenueService(ledger ports.RevenueLedger, accounts ports.AccountRepository) *RevenueService {
	return &RevenueService{ledger: ledger, accounts: accounts}
}

func (s *RevenueService) Platform(ctx context.Context) (float64, error) {
	return s.ledger.Total(ctx)
}

func (s *RevenueService) Employee(ctx context.Context, accountID string) (float64, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if account.Employee == nil {
		return 0, domain.ErrForbidden
	}
	return account.Employee.Revenue, nil
}
