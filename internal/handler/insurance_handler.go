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

// InsuranceHandler handles insurance policy HTTP requests
type InsuranceHandler struct {
	insuranceService *service.InsuranceService
}

// NewInsuranceHandler creates a new InsuranceHandler
func NewInsuranceHandler(insuranceService *service.InsuranceService) *InsuranceHandler {
	return &InsuranceHandler{
		insuranceService: insuranceService,
	}
}

// PolicyRequest represents the create/update policy request body
type PolicyRequest struct {
	Type           string  `json:"type"`
	Provider       string  `json:"provider"`
	PolicyNumber   string  `json:"policyNumber"`
	Premium        string  `json:"premium"`
	Frequency      string  `json:"frequency"`
	CoverageAmount string  `json:"coverageAmount"`
	StartDate      string  `json:"startDate"` // YYYY-MM-DD
	EndDate        string  `json:"endDate"`   // YYYY-MM-DD
	Notes          *string `json:"notes,omitempty"`
}

// PolicyResponse represents a policy with its derived lifecycle fields
type PolicyResponse struct {
	ID                string  `json:"id"`
	Type              string  `json:"type"`
	Provider          string  `json:"provider"`
	PolicyNumber      string  `json:"policyNumber"`
	Premium           string  `json:"premium"`
	Frequency         string  `json:"frequency"`
	CoverageAmount    string  `json:"coverageAmount"`
	StartDate         string  `json:"startDate"`
	EndDate           string  `json:"endDate"`
	LastPaidDate      *string `json:"lastPaidDate,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	Status            string  `json:"status"`
	DaysLeft          int     `json:"daysLeft"`
	NextDueDate       string  `json:"nextDueDate"`
	AnnualizedPremium string  `json:"annualizedPremium"`
}

// InsuranceOverviewResponse represents the portfolio rollup
type InsuranceOverviewResponse struct {
	TotalCoverage      string `json:"totalCoverage"`
	TotalAnnualPremium string `json:"totalAnnualPremium"`
	ActiveCount        int    `json:"activeCount"`
	ExpiringCount      int    `json:"expiringCount"`
}

func toPolicyResponse(view *service.PolicyView) PolicyResponse {
	resp := PolicyResponse{
		ID:                view.ID.String(),
		Type:              view.Type,
		Provider:          view.Provider,
		PolicyNumber:      view.PolicyNumber,
		Premium:           view.Premium.StringFixed(2),
		Frequency:         string(view.Frequency),
		CoverageAmount:    view.CoverageAmount.StringFixed(2),
		StartDate:         view.StartDate.String(),
		EndDate:           view.EndDate.String(),
		Notes:             view.Notes,
		Status:            string(view.Status),
		DaysLeft:          view.DaysLeft,
		NextDueDate:       view.NextDueDate.String(),
		AnnualizedPremium: view.AnnualizedPremium.StringFixed(2),
	}
	if view.LastPaidDate != nil {
		last := view.LastPaidDate.String()
		resp.LastPaidDate = &last
	}
	return resp
}

// parsePolicyInput converts a request body into a service input, reporting
// the first invalid field.
func parsePolicyInput(c echo.Context, req PolicyRequest) (service.PolicyInput, error) {
	premium, err := decimal.NewFromString(req.Premium)
	if err != nil {
		return service.PolicyInput{}, NewValidationError(c, "Invalid premium", []ValidationError{
			{Field: "premium", Message: "Must be a valid decimal number"},
		})
	}

	coverage, err := decimal.NewFromString(req.CoverageAmount)
	if err != nil {
		return service.PolicyInput{}, NewValidationError(c, "Invalid coverage amount", []ValidationError{
			{Field: "coverageAmount", Message: "Must be a valid decimal number"},
		})
	}

	start, err := domain.ParseDate(req.StartDate)
	if err != nil {
		return service.PolicyInput{}, NewValidationError(c, "Invalid start date", []ValidationError{
			{Field: "startDate", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	end, err := domain.ParseDate(req.EndDate)
	if err != nil {
		return service.PolicyInput{}, NewValidationError(c, "Invalid end date", []ValidationError{
			{Field: "endDate", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	return service.PolicyInput{
		Type:           req.Type,
		Provider:       req.Provider,
		PolicyNumber:   req.PolicyNumber,
		Premium:        premium,
		Frequency:      domain.PaymentFrequency(req.Frequency),
		CoverageAmount: coverage,
		StartDate:      start,
		EndDate:        end,
		Notes:          req.Notes,
	}, nil
}

// CreatePolicy godoc
// @Summary Create an insurance policy
// @Description Register a policy; status and annualized premium are derived
// @Tags insurance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PolicyRequest true "Policy details"
// @Success 201 {object} PolicyResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /insurance [post]
func (h *InsuranceHandler) CreatePolicy(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req PolicyRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, err := parsePolicyInput(c, req)
	if err != nil {
		return err
	}

	policy, err := h.insuranceService.CreatePolicy(userID, input)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: ve.Field, Message: ve.Message},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create policy")
		return NewInternalError(c, "Failed to create policy")
	}

	log.Info().Str("user_id", userID.String()).Str("policy_id", policy.ID.String()).Str("provider", policy.Provider).Msg("Policy created")

	status, daysLeft := policy.StatusOn(domain.Today())
	view := &service.PolicyView{
		InsurancePolicy:   policy,
		Status:            status,
		DaysLeft:          daysLeft,
		NextDueDate:       policy.NextDueDate(),
		AnnualizedPremium: policy.AnnualizedPremium(),
	}

	return c.JSON(http.StatusCreated, toPolicyResponse(view))
}

// GetPolicies godoc
// @Summary List insurance policies
// @Tags insurance
// @Produce json
// @Security BearerAuth
// @Success 200 {array} PolicyResponse
// @Failure 401 {object} ProblemDetails
// @Router /insurance [get]
func (h *InsuranceHandler) GetPolicies(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	views, err := h.insuranceService.GetPolicies(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get policies")
		return NewInternalError(c, "Failed to get policies")
	}

	responses := make([]PolicyResponse, len(views))
	for i, view := range views {
		responses[i] = toPolicyResponse(view)
	}

	return c.JSON(http.StatusOK, responses)
}

// UpdatePolicy godoc
// @Summary Update an insurance policy
// @Tags insurance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Policy ID"
// @Param request body PolicyRequest true "Policy details"
// @Success 200 {object} PolicyResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /insurance/{id} [put]
func (h *InsuranceHandler) UpdatePolicy(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid policy ID", []ValidationError{
			{Field: "id", Message: "Must be a valid UUID"},
		})
	}

	var req PolicyRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, err := parsePolicyInput(c, req)
	if err != nil {
		return err
	}

	policy, err := h.insuranceService.UpdatePolicy(userID, id, input)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: ve.Field, Message: ve.Message},
			})
		}
		if errors.Is(err, domain.ErrPolicyNotFound) {
			return NewNotFoundError(c, "Policy not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("policy_id", id.String()).Msg("Failed to update policy")
		return NewInternalError(c, "Failed to update policy")
	}

	status, daysLeft := policy.StatusOn(domain.Today())
	view := &service.PolicyView{
		InsurancePolicy:   policy,
		Status:            status,
		DaysLeft:          daysLeft,
		NextDueDate:       policy.NextDueDate(),
		AnnualizedPremium: policy.AnnualizedPremium(),
	}

	return c.JSON(http.StatusOK, toPolicyResponse(view))
}

// MarkPaid godoc
// @Summary Record a premium payment
// @Description Record a premium payment and advance the next due date
// @Tags insurance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Policy ID"
// @Success 200 {object} PolicyResponse
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /insurance/{id}/pay [post]
func (h *InsuranceHandler) MarkPaid(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid policy ID", []ValidationError{
			{Field: "id", Message: "Must be a valid UUID"},
		})
	}

	view, err := h.insuranceService.MarkPaid(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrPolicyNotFound) {
			return NewNotFoundError(c, "Policy not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("policy_id", id.String()).Msg("Failed to mark policy paid")
		return NewInternalError(c, "Failed to mark policy paid")
	}

	log.Info().Str("user_id", userID.String()).Str("policy_id", id.String()).Msg("Policy premium paid")

	return c.JSON(http.StatusOK, toPolicyResponse(view))
}

// GetOverview godoc
// @Summary Insurance portfolio overview
// @Description Get total coverage, annual premium and policy counts
// @Tags insurance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} InsuranceOverviewResponse
// @Failure 401 {object} ProblemDetails
// @Router /insurance/overview [get]
func (h *InsuranceHandler) GetOverview(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	overview, err := h.insuranceService.Overview(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get insurance overview")
		return NewInternalError(c, "Failed to get insurance overview")
	}

	return c.JSON(http.StatusOK, InsuranceOverviewResponse{
		TotalCoverage:      overview.TotalCoverage.StringFixed(2),
		TotalAnnualPremium: overview.TotalAnnualPremium.StringFixed(2),
		ActiveCount:        overview.ActiveCount,
		ExpiringCount:      overview.ExpiringCount,
	})
}

// DeletePolicy godoc
// @Summary Delete an insurance policy
// @Tags insurance
// @Security BearerAuth
// @Param id path string true "Policy ID"
// @Success 204 "No Content"
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /insurance/{id} [delete]
func (h *InsuranceHandler) DeletePolicy(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid policy ID", []ValidationError{
			{Field: "id", Message: "Must be a valid UUID"},
		})
	}

	if err := h.insuranceService.DeletePolicy(userID, id); err != nil {
		if errors.Is(err, domain.ErrPolicyNotFound) {
			return NewNotFoundError(c, "Policy not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("policy_id", id.String()).Msg("Failed to delete policy")
		return NewInternalError(c, "Failed to delete policy")
	}

	return c.NoContent(http.StatusNoContent)
}
