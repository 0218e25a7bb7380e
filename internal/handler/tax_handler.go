package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/middleware"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/service"
)

// TaxHandler handles income tax calculation HTTP requests
type TaxHandler struct {
	taxService *service.TaxService
}

// NewTaxHandler creates a new TaxHandler
func NewTaxHandler(taxService *service.TaxService) *TaxHandler {
	return &TaxHandler{
		taxService: taxService,
	}
}

// OldRegimeDeductionsRequest carries deduction fields for the old regime.
// Amounts are fail-soft: unparsable or negative values are treated as zero.
type OldRegimeDeductionsRequest struct {
	Investments80C       string `json:"investments80c"`
	LifeInsurancePremium string `json:"lifeInsurancePremium"`
	HRA                  string `json:"hra"`
	LTA                  string `json:"lta"`
	MedicalReimbursement string `json:"medicalReimbursement"`
	EducationLoan80E     string `json:"educationLoan80e"`
	HomeLoanInterest24B  string `json:"homeLoanInterest24b"`
}

// CalculateTaxRequest represents the tax calculation request body
type CalculateTaxRequest struct {
	GrossAnnualIncome string                      `json:"grossAnnualIncome"`
	IsSalaried        bool                        `json:"isSalaried"`
	Regime            string                      `json:"regime"`
	Deductions        *OldRegimeDeductionsRequest `json:"deductions,omitempty"`
}

// TaxResultResponse represents the tax calculation result
type TaxResultResponse struct {
	Regime          string `json:"regime"`
	GrossIncome     string `json:"grossIncome"`
	TotalDeductions string `json:"totalDeductions"`
	TaxableIncome   string `json:"taxableIncome"`
	BaseTax         string `json:"baseTax"`
	Surcharge       string `json:"surcharge"`
	Cess            string `json:"cess"`
	TotalTax        string `json:"totalTax"`
	MonthlyTax      string `json:"monthlyTax"`
	TakeHomeAnnual  string `json:"takeHomeAnnual"`
	TakeHomeMonthly string `json:"takeHomeMonthly"`
	TotalTaxDisplay string `json:"totalTaxDisplay"` // Indian digit grouping, e.g. "₹1,71,600"
}

// CalculateTax godoc
// @Summary Calculate income tax
// @Description Compute tax liability under the new or old Indian regime
// @Tags tax
// @Accept json
// @Produce json
// @Param request body CalculateTaxRequest true "Tax inputs"
// @Success 200 {object} TaxResultResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Security BearerAuth
// @Router /tax/calculate [post]
func (h *TaxHandler) CalculateTax(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CalculateTaxRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := domain.TaxInput{
		GrossAnnualIncome: domain.ParseAmount(req.GrossAnnualIncome),
		IsSalaried:        req.IsSalaried,
		Regime:            domain.TaxRegime(req.Regime),
	}
	if req.Deductions != nil {
		input.Old = &domain.OldRegimeDeductions{
			Investments80C:       domain.ParseAmount(req.Deductions.Investments80C),
			LifeInsurancePremium: domain.ParseAmount(req.Deductions.LifeInsurancePremium),
			HRA:                  domain.ParseAmount(req.Deductions.HRA),
			LTA:                  domain.ParseAmount(req.Deductions.LTA),
			MedicalReimbursement: domain.ParseAmount(req.Deductions.MedicalReimbursement),
			EducationLoan80E:     domain.ParseAmount(req.Deductions.EducationLoan80E),
			HomeLoanInterest24B:  domain.ParseAmount(req.Deductions.HomeLoanInterest24B),
		}
	}

	result, err := h.taxService.CalculateTax(input)
	if err != nil {
		if errors.Is(err, domain.ErrTaxRegimeInvalid) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "regime", Message: "Must be new or old"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to calculate tax")
		return NewInternalError(c, "Failed to calculate tax")
	}

	return c.JSON(http.StatusOK, TaxResultResponse{
		Regime:          string(result.Regime),
		GrossIncome:     result.GrossIncome.StringFixed(2),
		TotalDeductions: result.TotalDeductions.StringFixed(2),
		TaxableIncome:   result.TaxableIncome.StringFixed(2),
		BaseTax:         result.BaseTax.StringFixed(2),
		Surcharge:       result.Surcharge.StringFixed(2),
		Cess:            result.Cess.StringFixed(2),
		TotalTax:        result.TotalTax.StringFixed(2),
		MonthlyTax:      result.MonthlyTax.StringFixed(2),
		TakeHomeAnnual:  result.TakeHomeAnnual.StringFixed(2),
		TakeHomeMonthly: result.TakeHomeMonthly.StringFixed(2),
		TotalTaxDisplay: domain.FormatINR(result.TotalTax),
	})
}
