package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents an authenticated user with their financial profile
type User struct {
	ID            uuid.UUID       `json:"id"`
	AuthID        string          `json:"-"` // JWT subject from the identity provider
	Email         string          `json:"email"`
	Name          *string         `json:"name,omitempty"`
	DateOfBirth   *Date           `json:"dateOfBirth,omitempty"`
	Occupation    *string         `json:"occupation,omitempty"`
	MonthlyIncome decimal.Decimal `json:"monthlyIncome"`
	AvatarKey     *string         `json:"-"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ProfileComplete reports whether the user finished profile setup
func (u *User) ProfileComplete() bool {
	return u.DateOfBirth != nil && u.Occupation != nil && u.MonthlyIncome.IsPositive()
}

// UserRepository defines persistence for users
type UserRepository interface {
	GetByID(id uuid.UUID) (*User, error)
	GetByAuthID(authID string) (*User, error)
	CreateOrGetByAuthID(authID, email string, name *string) (user *User, created bool, err error)
	UpdateProfile(id uuid.UUID, dateOfBirth Date, occupation string, monthlyIncome decimal.Decimal) (*User, error)
	UpdateAvatarKey(id uuid.UUID, key *string) error
}
