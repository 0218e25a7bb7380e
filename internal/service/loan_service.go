package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/websocket"
)

// LoanService handles loan business logic
type LoanService struct {
	loanRepo       domain.LoanRepository
	eventPublisher websocket.EventPublisher
}

// NewLoanService creates a new LoanService
func NewLoanService(loanRepo domain.LoanRepository) *LoanService {
	return &LoanService{loanRepo: loanRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *LoanService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *LoanService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// ComputeEMI calculates the equal monthly installment for an amortized loan.
// The annual rate is a percentage; a zero rate means an interest-free loan
// repaid in equal principal portions. The result is rounded to the nearest
// whole rupee.
func ComputeEMI(principal, annualRatePercent decimal.Decimal, tenureMonths int) (decimal.Decimal, error) {
	if tenureMonths <= 0 {
		return decimal.Decimal{}, domain.ErrLoanTenureInvalid
	}
	if principal.IsNegative() {
		return decimal.Decimal{}, domain.ErrLoanAmountInvalid
	}
	if annualRatePercent.IsNegative() {
		return decimal.Decimal{}, domain.ErrLoanRateInvalid
	}

	months := decimal.NewFromInt(int64(tenureMonths))
	if annualRatePercent.IsZero() {
		return principal.Div(months).Round(0), nil
	}

	// r = annual rate / (12 * 100); EMI = P*r*(1+r)^n / ((1+r)^n - 1)
	r := annualRatePercent.Div(decimal.NewFromInt(1200))
	compound := decimal.NewFromInt(1).Add(r).Pow(months)
	emi := principal.Mul(r).Mul(compound).Div(compound.Sub(decimal.NewFromInt(1)))
	return emi.Round(0), nil
}

// CreateLoanInput contains the input for creating a loan
type CreateLoanInput struct {
	Type         domain.LoanType
	Bank         string
	Amount       decimal.Decimal
	InterestRate *decimal.Decimal // optional override, bank rate card default if nil
	TenureMonths int
}

// CreateLoan validates the input, derives the EMI and appends the loan to the
// user's loan book.
func (s *LoanService) CreateLoan(userID uuid.UUID, input CreateLoanInput) (*domain.Loan, error) {
	if !input.Type.Valid() {
		return nil, domain.ErrLoanTypeInvalid
	}
	if !input.Amount.IsPositive() {
		return nil, domain.ErrLoanAmountInvalid
	}
	if input.TenureMonths <= 0 {
		return nil, domain.ErrLoanTenureInvalid
	}

	bank := strings.TrimSpace(input.Bank)
	defaultRate, err := domain.DefaultRate(bank, input.Type)
	if err != nil {
		return nil, err
	}

	rate := defaultRate
	if input.InterestRate != nil {
		rate = *input.InterestRate
	}
	if rate.IsNegative() {
		return nil, domain.ErrLoanRateInvalid
	}

	emi, err := ComputeEMI(input.Amount, rate, input.TenureMonths)
	if err != nil {
		return nil, err
	}

	loan := &domain.Loan{
		UserID:       userID,
		Type:         input.Type,
		Bank:         bank,
		Amount:       input.Amount,
		InterestRate: rate,
		TenureMonths: input.TenureMonths,
		EMI:          emi,
	}

	created, err := s.loanRepo.Create(loan)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.NewEvent(websocket.EventTypeCreated, websocket.EntityTypeLoan, created))
	return created, nil
}

// PreviewEMI derives the EMI and effective rate without creating a loan
func (s *LoanService) PreviewEMI(input CreateLoanInput) (emi, rate decimal.Decimal, err error) {
	if !input.Type.Valid() {
		return decimal.Decimal{}, decimal.Decimal{}, domain.ErrLoanTypeInvalid
	}

	rate, err = domain.DefaultRate(strings.TrimSpace(input.Bank), input.Type)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	if input.InterestRate != nil {
		rate = *input.InterestRate
	}

	emi, err = ComputeEMI(input.Amount, rate, input.TenureMonths)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	return emi, rate, nil
}

// GetLoans retrieves all loans for a user in insertion order
func (s *LoanService) GetLoans(userID uuid.UUID) ([]*domain.Loan, error) {
	return s.loanRepo.GetByUser(userID)
}

// DeleteLoan removes a loan
func (s *LoanService) DeleteLoan(userID uuid.UUID, id uuid.UUID) error {
	loan, err := s.loanRepo.GetByID(userID, id)
	if err != nil {
		return err
	}
	if err := s.loanRepo.Delete(userID, id); err != nil {
		return err
	}
	s.publishEvent(userID, websocket.NewEvent(websocket.EventTypeDeleted, websocket.EntityTypeLoan, loan))
	return nil
}
