package ports

import "context"

// RevenueLedger is the platform-wide revenue accumulator. It replaces a
// fetched-and-resaved admin record with atomic increments so concurrent
// bookings never lose updates.
type RevenueLedger interface {
	// Add adjusts the platform total by delta (negative on cancellation).
	Add(ctx context.Context, delta float64) error
	Total(ctx context.Context) (float64, error)
}
