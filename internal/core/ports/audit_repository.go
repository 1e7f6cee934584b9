package ports

import (
	"context"

	"github.com/roamio/tour-booking/internal/core/domain"
)

// AuditRepository persists booking audit events. Writes are best-effort and
// happen off the request path.
type AuditRepository interface {
	InsertEvent(ctx context.Context, e *domain.BookingEvent) error
}
