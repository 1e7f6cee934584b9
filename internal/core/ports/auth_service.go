package ports

import (
	"context"
	"time"

	"github.com/roamio/tour-booking/internal/core/domain"
)

// RegisterInput carries the data needed to create an account. EmployeeCode
// holds the invite code consulted for employee and admin registration.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Role         string
	EmployeeCode string
}

// AuthService handles registration, login, and logout.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	// Login returns a signed bearer token and the authenticated account.
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
	// Logout revokes the token id until expiresAt.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}
