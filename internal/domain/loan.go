package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrLoanNotFound      = errors.New("loan not found")
	ErrLoanTypeInvalid   = errors.New("loan type is not recognized")
	ErrLoanBankInvalid   = errors.New("bank is not recognized")
	ErrLoanAmountInvalid = errors.New("loan amount must be positive")
	ErrLoanRateInvalid   = errors.New("interest rate must not be negative")
	ErrLoanTenureInvalid = errors.New("tenure must be at least 1 month")
)

type LoanType string

const (
	LoanTypePersonal  LoanType = "personal"
	LoanTypeHome      LoanType = "home"
	LoanTypeCar       LoanType = "car"
	LoanTypeEducation LoanType = "education"
)

// Valid reports whether t is a known loan type
func (t LoanType) Valid() bool {
	switch t {
	case LoanTypePersonal, LoanTypeHome, LoanTypeCar, LoanTypeEducation:
		return true
	}
	return false
}

// Loan is an amortized loan with a derived equal monthly installment.
// EMI is computed once at creation and immutable afterwards.
type Loan struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"userId"`
	Type         LoanType        `json:"type"`
	Bank         string          `json:"bank"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interestRate"` // annual, percent
	TenureMonths int             `json:"tenureMonths"`
	EMI          decimal.Decimal `json:"emi"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// BankRateCard holds per-loan-type annual interest rates for one bank
type BankRateCard struct {
	Name  string
	Rates map[LoanType]decimal.Decimal
}

// BankRateCards lists the supported banks and their indicative annual rates
// per loan type, in display order.
var BankRateCards = []BankRateCard{
	{Name: "SBI", Rates: rates(11.5, 8.5, 9.5, 8.0)},
	{Name: "HDFC", Rates: rates(11.0, 8.75, 9.25, 8.5)},
	{Name: "ICICI", Rates: rates(10.75, 8.65, 9.15, 8.25)},
	{Name: "Axis Bank", Rates: rates(11.25, 8.8, 9.4, 8.75)},
	{Name: "PNB", Rates: rates(11.75, 8.9, 9.6, 8.1)},
	{Name: "Kotak", Rates: rates(10.99, 8.7, 9.3, 8.6)},
}

func rates(personal, home, car, education float64) map[LoanType]decimal.Decimal {
	return map[LoanType]decimal.Decimal{
		LoanTypePersonal:  decimal.NewFromFloat(personal),
		LoanTypeHome:      decimal.NewFromFloat(home),
		LoanTypeCar:       decimal.NewFromFloat(car),
		LoanTypeEducation: decimal.NewFromFloat(education),
	}
}

// DefaultRate returns the indicative annual rate for a bank and loan type
func DefaultRate(bank string, loanType LoanType) (decimal.Decimal, error) {
	for _, card := range BankRateCards {
		if card.Name == bank {
			if rate, ok := card.Rates[loanType]; ok {
				return rate, nil
			}
			return decimal.Zero, ErrLoanTypeInvalid
		}
	}
	return decimal.Zero, ErrLoanBankInvalid
}

// LoanRepository defines persistence for loans.
// Listings preserve insertion order; there is no re-sorting.
type LoanRepository interface {
	Create(loan *Loan) (*Loan, error)
	GetByID(userID uuid.UUID, id uuid.UUID) (*Loan, error)
	GetByUser(userID uuid.UUID) ([]*Loan, error)
	Delete(userID uuid.UUID, id uuid.UUID) error
}
