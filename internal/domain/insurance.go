package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrPolicyNotFound = errors.New("insurance policy not found")

// PaymentFrequency is how often a premium falls due
type PaymentFrequency string

const (
	FrequencyMonthly   PaymentFrequency = "monthly"
	FrequencyQuarterly PaymentFrequency = "quarterly"
	FrequencyYearly    PaymentFrequency = "yearly"
)

// Months returns the number of months in one payment period
func (f PaymentFrequency) Months() int {
	switch f {
	case FrequencyMonthly:
		return 1
	case FrequencyQuarterly:
		return 3
	default:
		return 12
	}
}

// Valid reports whether f is a known frequency
func (f PaymentFrequency) Valid() bool {
	return f == FrequencyMonthly || f == FrequencyQuarterly || f == FrequencyYearly
}

// PolicyStatus is derived from the current date against the policy end date.
// It is never stored.
type PolicyStatus string

const (
	StatusActive       PolicyStatus = "Active"
	StatusExpiringSoon PolicyStatus = "Expiring Soon"
	StatusExpired      PolicyStatus = "Expired"
)

// ExpiringSoonWindowDays is the days-left threshold for Expiring Soon
const ExpiringSoonWindowDays = 30

// InsurancePolicy is a premium-paying policy covering a fixed term
type InsurancePolicy struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"userId"`
	Type           string           `json:"type"`
	Provider       string           `json:"provider"`
	PolicyNumber   string           `json:"policyNumber"`
	Premium        decimal.Decimal  `json:"premium"` // per payment period
	Frequency      PaymentFrequency `json:"frequency"`
	CoverageAmount decimal.Decimal  `json:"coverageAmount"`
	StartDate      Date             `json:"startDate"`
	EndDate        Date             `json:"endDate"`
	LastPaidDate   *Date            `json:"lastPaidDate,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// Validate checks the policy invariants. Construction is unchecked; this runs
// at create/update time and failures carry the offending field name.
func (p *InsurancePolicy) Validate() error {
	if p.Type == "" {
		return NewValidationError("type", "policy type is required")
	}
	if p.Provider == "" {
		return NewValidationError("provider", "provider is required")
	}
	if p.PolicyNumber == "" {
		return NewValidationError("policyNumber", "policy number is required")
	}
	if !p.Premium.IsPositive() {
		return NewValidationError("premium", "premium must be positive")
	}
	if !p.Frequency.Valid() {
		return NewValidationError("frequency", "frequency must be monthly, quarterly or yearly")
	}
	if !p.CoverageAmount.IsPositive() {
		return NewValidationError("coverageAmount", "coverage amount must be positive")
	}
	if p.EndDate.Before(p.StartDate) {
		return NewValidationError("endDate", "end date must not be before start date")
	}
	return nil
}

// StatusOn derives the policy status and remaining days as of the given date
func (p *InsurancePolicy) StatusOn(today Date) (PolicyStatus, int) {
	daysLeft := today.DaysUntil(p.EndDate)
	switch {
	case daysLeft < 0:
		return StatusExpired, daysLeft
	case daysLeft <= ExpiringSoonWindowDays:
		return StatusExpiringSoon, daysLeft
	default:
		return StatusActive, daysLeft
	}
}

// NextDueDate projects the next premium due date: one payment period after
// the last payment, or after the start date if nothing has been paid yet.
func (p *InsurancePolicy) NextDueDate() Date {
	base := p.StartDate
	if p.LastPaidDate != nil {
		base = *p.LastPaidDate
	}
	return base.AddMonths(p.Frequency.Months())
}

// AnnualizedPremium normalizes the premium to a yearly equivalent
func (p *InsurancePolicy) AnnualizedPremium() decimal.Decimal {
	periodsPerYear := decimal.NewFromInt(12).Div(decimal.NewFromInt(int64(p.Frequency.Months())))
	return p.Premium.Mul(periodsPerYear)
}

// InsuranceRepository defines persistence for insurance policies
type InsuranceRepository interface {
	Create(policy *InsurancePolicy) (*InsurancePolicy, error)
	GetByID(userID uuid.UUID, id uuid.UUID) (*InsurancePolicy, error)
	GetByUser(userID uuid.UUID) ([]*InsurancePolicy, error)
	Update(policy *InsurancePolicy) (*InsurancePolicy, error)
	Delete(userID uuid.UUID, id uuid.UUID) error
}
