package domain

import (
	"errors"
	"time"
)

const (
	RoleUser     = "user"
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

var ErrAccountNotFound = errors.New("account not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidEmployeeCode = errors.New("invalid employee code")
var ErrRoleProfileMismatch = errors.New("profile does not match account role")

// CartItem references a tour a user intends to book. Quantity is a plain
// counter and carries no capacity reservation.
type CartItem struct {
	TourID   string `json:"tour_id" bson:"tour_id"`
	Quantity int    `json:"quantity" bson:"quantity"`
}

// UserProfile holds the fields only user accounts carry.
type UserProfile struct {
	Cart       []CartItem `json:"cart" bson:"cart"`
	BookingIDs []string   `json:"booking_ids" bson:"booking_ids"`
}

// EmployeeProfile holds the fields only employee accounts carry.
type EmployeeProfile struct {
	TourIDs []string `json:"tour_ids" bson:"tour_ids"`
	Revenue float64  `json:"revenue" bson:"revenue"`
}

// Account models any authenticated actor. Exactly one of the role profiles is
// set, matching Role; admin accounts carry neither. Validate enforces this at
// write time.
type Account struct {
	ID           string           `json:"id" bson:"_id,omitempty"`
	Name         string           `json:"name" bson:"name"`
	Email        string           `json:"email" bson:"email"`
	PasswordHash string           `json:"-" bson:"password_hash"`
	Role         string           `json:"role" bson:"role"`
	User         *UserProfile     `json:"user_profile,omitempty" bson:"user_profile,omitempty"`
	Employee     *EmployeeProfile `json:"employee_profile,omitempty" bson:"employee_profile,omitempty"`
	CreatedAt    time.Time        `json:"created_at" bson:"created_at"`
}

// Validate checks the role/profile pairing invariant.
func (a *Account) Validate() error {
	switch a.Role {
	case RoleUser:
		if a.User == nil || a.Employee != nil {
			return ErrRoleProfileMismatch
		}
	case RoleEmployee:
		if a.Employee == nil || a.User != nil {
			return ErrRoleProfileMismatch
		}
	case RoleAdmin:
		if a.User != nil || a.Employee != nil {
			return ErrRoleProfileMismatch
		}
	default:
		return ErrRoleProfileMismatch
	}
	return nil
}
