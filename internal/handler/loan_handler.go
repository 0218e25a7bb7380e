package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/middleware"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/service"
)

// LoanHandler handles loan-related HTTP requests
type LoanHandler struct {
	loanService *service.LoanService
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(loanService *service.LoanService) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
	}
}

// CreateLoanRequest represents the create loan request body
type CreateLoanRequest struct {
	Type         string  `json:"type"`
	Bank         string  `json:"bank"`
	Amount       string  `json:"amount"`
	InterestRate *string `json:"interestRate,omitempty"` // optional override
	TenureMonths int     `json:"tenureMonths"`
}

// LoanResponse represents a loan in API responses
type LoanResponse struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Bank         string `json:"bank"`
	Amount       string `json:"amount"`
	InterestRate string `json:"interestRate"`
	TenureMonths int    `json:"tenureMonths"`
	EMI          string `json:"emi"`
	CreatedAt    string `json:"createdAt"`
}

// PreviewLoanResponse represents the preview EMI calculation result
type PreviewLoanResponse struct {
	EMI          string `json:"emi"`
	InterestRate string `json:"interestRate"`
}

// BankRateCardResponse represents one bank's indicative rates
type BankRateCardResponse struct {
	Name  string            `json:"name"`
	Rates map[string]string `json:"rates"`
}

func toLoanResponse(loan *domain.Loan) LoanResponse {
	return LoanResponse{
		ID:           loan.ID.String(),
		Type:         string(loan.Type),
		Bank:         loan.Bank,
		Amount:       loan.Amount.StringFixed(2),
		InterestRate: loan.InterestRate.String(),
		TenureMonths: loan.TenureMonths,
		EMI:          loan.EMI.StringFixed(2),
		CreatedAt:    loan.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// parseLoanInput converts a request body into a service input, reporting the
// first invalid field.
func parseLoanInput(c echo.Context, req CreateLoanRequest) (service.CreateLoanInput, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return service.CreateLoanInput{}, NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	var interestRate *decimal.Decimal
	if req.InterestRate != nil && *req.InterestRate != "" {
		rate, err := decimal.NewFromString(*req.InterestRate)
		if err != nil {
			return service.CreateLoanInput{}, NewValidationError(c, "Invalid interest rate", []ValidationError{
				{Field: "interestRate", Message: "Must be a valid decimal number"},
			})
		}
		interestRate = &rate
	}

	return service.CreateLoanInput{
		Type:         domain.LoanType(req.Type),
		Bank:         req.Bank,
		Amount:       amount,
		InterestRate: interestRate,
		TenureMonths: req.TenureMonths,
	}, nil
}

// loanValidationResponse maps loan domain errors to problem responses.
// Returns nil when err is not a validation failure.
func loanValidationResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrLoanTypeInvalid):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Must be one of: personal, home, car, education"},
		})
	case errors.Is(err, domain.ErrLoanBankInvalid):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "bank", Message: "Bank is not recognized"},
		})
	case errors.Is(err, domain.ErrLoanAmountInvalid):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		})
	case errors.Is(err, domain.ErrLoanRateInvalid):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "interestRate", Message: "Interest rate must not be negative"},
		})
	case errors.Is(err, domain.ErrLoanTenureInvalid):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "tenureMonths", Message: "Tenure must be at least 1 month"},
		})
	}
	return nil
}

// CreateLoan godoc
// @Summary Create a loan
// @Description Create a loan and compute its EMI from the bank rate card
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLoanRequest true "Loan details"
// @Success 201 {object} LoanResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /loans [post]
func (h *LoanHandler) CreateLoan(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateLoanRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, err := parseLoanInput(c, req)
	if err != nil {
		return err
	}

	loan, err := h.loanService.CreateLoan(userID, input)
	if err != nil {
		if resp := loanValidationResponse(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create loan")
		return NewInternalError(c, "Failed to create loan")
	}

	log.Info().Str("user_id", userID.String()).Str("loan_id", loan.ID.String()).Str("bank", loan.Bank).Msg("Loan created")

	return c.JSON(http.StatusCreated, toLoanResponse(loan))
}

// PreviewLoan godoc
// @Summary Preview an EMI
// @Description Compute the EMI for a prospective loan without persisting anything
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLoanRequest true "Loan details"
// @Success 200 {object} PreviewLoanResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /loans/preview [post]
func (h *LoanHandler) PreviewLoan(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateLoanRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, err := parseLoanInput(c, req)
	if err != nil {
		return err
	}

	emi, rate, err := h.loanService.PreviewEMI(input)
	if err != nil {
		if resp := loanValidationResponse(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to preview loan")
		return NewInternalError(c, "Failed to preview loan")
	}

	return c.JSON(http.StatusOK, PreviewLoanResponse{
		EMI:          emi.StringFixed(2),
		InterestRate: rate.String(),
	})
}

// GetLoans godoc
// @Summary List loans
// @Description Get all loans for the authenticated user
// @Tags loans
// @Produce json
// @Success 200 {array} LoanResponse
// @Failure 401 {object} ProblemDetails
// @Security BearerAuth
// @Router /loans [get]
func (h *LoanHandler) GetLoans(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	loans, err := h.loanService.GetLoans(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get loans")
		return NewInternalError(c, "Failed to get loans")
	}

	responses := make([]LoanResponse, len(loans))
	for i, loan := range loans {
		responses[i] = toLoanResponse(loan)
	}

	return c.JSON(http.StatusOK, responses)
}

// GetBanks godoc
// @Summary List bank rate cards
// @Description Get the supported banks with their indicative rates per loan type
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} BankRateCardResponse
// @Router /loans/banks [get]
func (h *LoanHandler) GetBanks(c echo.Context) error {
	responses := make([]BankRateCardResponse, len(domain.BankRateCards))
	for i, card := range domain.BankRateCards {
		rates := make(map[string]string, len(card.Rates))
		for loanType, rate := range card.Rates {
			rates[string(loanType)] = rate.String()
		}
		responses[i] = BankRateCardResponse{Name: card.Name, Rates: rates}
	}
	return c.JSON(http.StatusOK, responses)
}

// DeleteLoan godoc
// @Summary Delete a loan
// @Tags loans
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 204 "No Content"
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /loans/{id} [delete]
func (h *LoanHandler) DeleteLoan(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid loan ID", []ValidationError{
			{Field: "id", Message: "Must be a valid UUID"},
		})
	}

	if err := h.loanService.DeleteLoan(userID, id); err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return NewNotFoundError(c, "Loan not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("loan_id", id.String()).Msg("Failed to delete loan")
		return NewInternalError(c, "Failed to delete loan")
	}

	return c.NoContent(http.StatusNoContent)
}
