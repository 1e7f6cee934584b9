package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/roamio/tour-booking/internal/core/domain"
	"github.com/roamio/tour-booking/internal/core/ports"
)

// AuthService implements registration, login, and token revocation.
type AuthService struct {
	accounts     ports.AccountRepository
	tokens       ports.TokenRevoker
	jwtSecret    string
	tokenTTL     time.Duration
	employeeCode string
	adminCode    string
}

func NewAuthService(
	accounts ports.AccountRepository,
	tokens ports.TokenRevoker,
	jwtSecret string,
	tokenTTL time.Duration,
	employeeCode, adminCode string,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		accounts:     accounts,
		tokens:       tokens,
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
		employeeCode: employeeCode,
		adminCode:    adminCode,
	}
}

// Register creates an account with the profile matching its role. Employee
// and admin registration is gated by the corresponding invite code.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Role:      input.Role,
		CreatedAt: now,
	}

	switch input.Role {
	case domain.RoleUser:
		account.User = &domain.UserProfile{Cart: []domain.CartItem{}, BookingIDs: []string{}}
	case domain.RoleEmployee:
		if input.EmployeeCode != s.employeeCode {
			return nil, domain.ErrInvalidEmployeeCode
		}
		account.Employee = &domain.EmployeeProfile{TourIDs: []string{}}
	case domain.RoleAdmin:
		if input.EmployeeCode != s.adminCode {
			return nil, domain.ErrInvalidEmployeeCode
		}
	default:
		return nil, domain.ErrInvalidCredentials
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	account.PasswordHash = string(hash)

	return s.accounts.Create(ctx, account)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(account)
	if err != nil {
		return "", nil, err
	}

	return token, account, nil
}

// Logout revokes the token id until its natural expiry. Tokens already past
// expiry need no denylist entry.
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.tokens.Revoke(ctx, jti, ttl)
}

func (s *AuthService) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":  account.ID,
		"name": account.Name,
		"role": account.Role,
		"jti":  uuid.NewString(),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
