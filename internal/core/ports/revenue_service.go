package ports

import "context"

// RevenueService exposes the accrued revenue views.
type RevenueService interface {
	// Platform returns the admin-side total across all bookings.
	Platform(ctx context.Context) (float64, error)
	// Employee returns the accrued share for one employee account.
	Employee(ctx context.Context, accountID string) (float64, error)
}
