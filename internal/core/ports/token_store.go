package ports

import (
	"context"
	"time"
)

// TokenRevoker tracks revoked JWT ids until their natural expiry, backing
// logout. The auth middleware consults it on every authenticated request.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
