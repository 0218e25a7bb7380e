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

// AssetHandler handles asset and liability HTTP requests
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// CreateAssetRequest represents the create asset request body
type CreateAssetRequest struct {
	Type          string  `json:"type"`
	Name          string  `json:"name"`
	Value         string  `json:"value"`
	MonthlyReturn *string `json:"monthlyReturn,omitempty"`
}

// AssetResponse represents an asset in API responses
type AssetResponse struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"`
	Name          string  `json:"name"`
	Value         string  `json:"value"`
	MonthlyReturn *string `json:"monthlyReturn,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// CreateLiabilityRequest represents the create liability request body
type CreateLiabilityRequest struct {
	Type           string  `json:"type"`
	Name           string  `json:"name"`
	Amount         string  `json:"amount"`
	MonthlyPayment *string `json:"monthlyPayment,omitempty"`
}

// LiabilityResponse represents a liability in API responses
type LiabilityResponse struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	Name           string  `json:"name"`
	Amount         string  `json:"amount"`
	MonthlyPayment *string `json:"monthlyPayment,omitempty"`
	CreatedAt      string  `json:"createdAt"`
}

// NetWorthResponse represents the net worth rollup
type NetWorthResponse struct {
	NetWorth        string `json:"netWorth"`
	MonthlyCashflow string `json:"monthlyCashflow"`
}

func toAssetResponse(a *domain.Asset) AssetResponse {
	resp := AssetResponse{
		ID:        a.ID.String(),
		Type:      a.Type,
		Name:      a.Name,
		Value:     a.Value.StringFixed(2),
		CreatedAt: a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if a.MonthlyReturn != nil {
		mr := a.MonthlyReturn.StringFixed(2)
		resp.MonthlyReturn = &mr
	}
	return resp
}

func toLiabilityResponse(l *domain.Liability) LiabilityResponse {
	resp := LiabilityResponse{
		ID:        l.ID.String(),
		Type:      l.Type,
		Name:      l.Name,
		Amount:    l.Amount.StringFixed(2),
		CreatedAt: l.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if l.MonthlyPayment != nil {
		mp := l.MonthlyPayment.StringFixed(2)
		resp.MonthlyPayment = &mp
	}
	return resp
}

// parseOptionalDecimal parses an optional string-encoded decimal field
func parseOptionalDecimal(s *string) (*decimal.Decimal, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateAsset godoc
// @Summary Create an asset
// @Tags assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAssetRequest true "Asset details"
// @Success 201 {object} AssetResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /assets [post]
func (h *AssetHandler) CreateAsset(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateAssetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	value, err := decimal.NewFromString(req.Value)
	if err != nil {
		return NewValidationError(c, "Invalid value", []ValidationError{
			{Field: "value", Message: "Must be a valid decimal number"},
		})
	}

	monthlyReturn, err := parseOptionalDecimal(req.MonthlyReturn)
	if err != nil {
		return NewValidationError(c, "Invalid monthly return", []ValidationError{
			{Field: "monthlyReturn", Message: "Must be a valid decimal number"},
		})
	}

	asset, err := h.assetService.CreateAsset(userID, service.CreateAssetInput{
		Type:          req.Type,
		Name:          req.Name,
		Value:         value,
		MonthlyReturn: monthlyReturn,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAssetNameEmpty) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrAssetValueNotPositive) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "value", Message: "Value must be positive"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create asset")
		return NewInternalError(c, "Failed to create asset")
	}

	log.Info().Str("user_id", userID.String()).Str("asset_id", asset.ID.String()).Str("name", asset.Name).Msg("Asset created")

	return c.JSON(http.StatusCreated, toAssetResponse(asset))
}

// GetAssets godoc
// @Summary List assets
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} AssetResponse
// @Failure 401 {object} ProblemDetails
// @Router /assets [get]
func (h *AssetHandler) GetAssets(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	assets, err := h.assetService.GetAssets(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get assets")
		return NewInternalError(c, "Failed to get assets")
	}

	responses := make([]AssetResponse, len(assets))
	for i, asset := range assets {
		responses[i] = toAssetResponse(asset)
	}

	return c.JSON(http.StatusOK, responses)
}

// DeleteAsset godoc
// @Summary Delete an asset
// @Tags assets
// @Security BearerAuth
// @Param id path string true "Asset ID"
// @Success 204 "No Content"
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid asset ID", []ValidationError{
			{Field: "id", Message: "Must be a valid UUID"},
		})
	}

	if err := h.assetService.DeleteAsset(userID, id); err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return NewNotFoundError(c, "Asset not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("asset_id", id.String()).Msg("Failed to delete asset")
		return NewInternalError(c, "Failed to delete asset")
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateLiability godoc
// @Summary Create a liability
// @Tags liabilities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLiabilityRequest true "Liability details"
// @Success 201 {object} LiabilityResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /liabilities [post]
func (h *AssetHandler) CreateLiability(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateLiabilityRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	monthlyPayment, err := parseOptionalDecimal(req.MonthlyPayment)
	if err != nil {
		return NewValidationError(c, "Invalid monthly payment", []ValidationError{
			{Field: "monthlyPayment", Message: "Must be a valid decimal number"},
		})
	}

	liability, err := h.assetService.CreateLiability(userID, service.CreateLiabilityInput{
		Type:           req.Type,
		Name:           req.Name,
		Amount:         amount,
		MonthlyPayment: monthlyPayment,
	})
	if err != nil {
		if errors.Is(err, domain.ErrLiabilityNameEmpty) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrLiabilityAmountInvalid) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be positive"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create liability")
		return NewInternalError(c, "Failed to create liability")
	}

	log.Info().Str("user_id", userID.String()).Str("liability_id", liability.ID.String()).Str("name", liability.Name).Msg("Liability created")

	return c.JSON(http.StatusCreated, toLiabilityResponse(liability))
}

// GetLiabilities godoc
// @Summary List liabilities
// @Tags liabilities
// @Produce json
// @Security BearerAuth
// @Success 200 {array} LiabilityResponse
// @Failure 401 {object} ProblemDetails
// @Router /liabilities [get]
func (h *AssetHandler) GetLiabilities(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	liabilities, err := h.assetService.GetLiabilities(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get liabilities")
		return NewInternalError(c, "Failed to get liabilities")
	}

	responses := make([]LiabilityResponse, len(liabilities))
	for i, liability := range liabilities {
		responses[i] = toLiabilityResponse(liability)
	}

	return c.JSON(http.StatusOK, responses)
}

// DeleteLiability godoc
// @Summary Delete a liability
// @Tags liabilities
// @Security BearerAuth
// @Param id path string true "Liability ID"
// @Success 204 "No Content"
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /liabilities/{id} [delete]
func (h *AssetHandler) DeleteLiability(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid liability ID", []ValidationError{
			{Field: "id", Message: "Must be a valid UUID"},
		})
	}

	if err := h.assetService.DeleteLiability(userID, id); err != nil {
		if errors.Is(err, domain.ErrLiabilityNotFound) {
			return NewNotFoundError(c, "Liability not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("liability_id", id.String()).Msg("Failed to delete liability")
		return NewInternalError(c, "Failed to delete liability")
	}

	return c.NoContent(http.StatusNoContent)
}

// GetNetWorth godoc
// @Summary Net worth and monthly cashflow
// @Description Get total assets minus liabilities and the monthly cashflow
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} NetWorthResponse
// @Failure 401 {object} ProblemDetails
// @Router /assets/net-worth [get]
func (h *AssetHandler) GetNetWorth(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	netWorth, err := h.assetService.NetWorth(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to compute net worth")
		return NewInternalError(c, "Failed to compute net worth")
	}

	cashflow, err := h.assetService.MonthlyCashflow(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to compute monthly cashflow")
		return NewInternalError(c, "Failed to compute monthly cashflow")
	}

	return c.JSON(http.StatusOK, NetWorthResponse{
		NetWorth:        netWorth.StringFixed(2),
		MonthlyCashflow: cashflow.StringFixed(2),
	})
}
