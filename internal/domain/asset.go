package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrAssetNotFound          = errors.New("asset not found")
	ErrAssetNameEmpty         = errors.New("asset name is required")
	ErrAssetValueNotPositive  = errors.New("asset value must be positive")
	ErrLiabilityNotFound      = errors.New("liability not found")
	ErrLiabilityNameEmpty     = errors.New("liability name is required")
	ErrLiabilityAmountInvalid = errors.New("liability amount must be positive")
)

// Asset is something the user owns: savings, investments, property
type Asset struct {
	ID            uuid.UUID        `json:"id"`
	UserID        uuid.UUID        `json:"userId"`
	Type          string           `json:"type"` // savings, investment, fd, stocks, mutual_funds, real_estate
	Name          string           `json:"name"`
	Value         decimal.Decimal  `json:"value"`
	MonthlyReturn *decimal.Decimal `json:"monthlyReturn,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

func (a *Asset) Validate() error {
	if a.Name == "" {
		return ErrAssetNameEmpty
	}
	if !a.Value.IsPositive() {
		return ErrAssetValueNotPositive
	}
	return nil
}

// Liability is an outstanding obligation outside the loan book
type Liability struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"userId"`
	Type           string           `json:"type"` // credit_card, personal_loan, other
	Name           string           `json:"name"`
	Amount         decimal.Decimal  `json:"amount"`
	MonthlyPayment *decimal.Decimal `json:"monthlyPayment,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}

func (l *Liability) Validate() error {
	if l.Name == "" {
		return ErrLiabilityNameEmpty
	}
	if !l.Amount.IsPositive() {
		return ErrLiabilityAmountInvalid
	}
	return nil
}

// AssetRepository defines persistence for assets
type AssetRepository interface {
	Create(asset *Asset) (*Asset, error)
	GetByUser(userID uuid.UUID) ([]*Asset, error)
	Delete(userID uuid.UUID, id uuid.UUID) error
}

// LiabilityRepository defines persistence for liabilities
type LiabilityRepository interface {
	Create(liability *Liability) (*Liability, error)
	GetByUser(userID uuid.UUID) ([]*Liability, error)
	Delete(userID uuid.UUID, id uuid.UUID) error
}
