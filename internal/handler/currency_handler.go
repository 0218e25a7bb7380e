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

// CurrencyHandler handles currency conversion HTTP requests
type CurrencyHandler struct {
	currencyService *service.CurrencyService
}

// NewCurrencyHandler creates a new CurrencyHandler
func NewCurrencyHandler(currencyService *service.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{
		currencyService: currencyService,
	}
}

// ConvertRequest represents the conversion request body
type ConvertRequest struct {
	Amount string `json:"amount"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// ConversionResponse represents the conversion result
type ConversionResponse struct {
	Amount          string `json:"amount"`
	From            string `json:"from"`
	To              string `json:"to"`
	Rate            string `json:"rate"`
	ConvertedAmount string `json:"convertedAmount"`
}

// CurrencyResponse represents a supported currency
type CurrencyResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Convert godoc
// @Summary Convert an amount between currencies
// @Tags currency
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ConvertRequest true "Conversion request"
// @Success 200 {object} ConversionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /currency/convert [post]
func (h *CurrencyHandler) Convert(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req ConvertRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	conversion, err := h.currencyService.Convert(amount, req.From, req.To)
	if err != nil {
		if errors.Is(err, domain.ErrCurrencyCodeInvalid) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "from", Message: "Currency code is not supported"},
			})
		}
		if errors.Is(err, domain.ErrRateNotFound) {
			return NewNotFoundError(c, "Exchange rate not available for this pair")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("from", req.From).Str("to", req.To).Msg("Failed to convert currency")
		return NewInternalError(c, "Failed to convert currency")
	}

	return c.JSON(http.StatusOK, ConversionResponse{
		Amount:          conversion.Amount.String(),
		From:            conversion.From,
		To:              conversion.To,
		Rate:            conversion.Rate.String(),
		ConvertedAmount: conversion.ConvertedAmount.StringFixed(2),
	})
}

// GetCurrencies godoc
// @Summary List supported currencies
// @Tags currency
// @Produce json
// @Security BearerAuth
// @Success 200 {array} CurrencyResponse
// @Router /currency/currencies [get]
func (h *CurrencyHandler) GetCurrencies(c echo.Context) error {
	currencies := h.currencyService.Currencies()

	responses := make([]CurrencyResponse, len(currencies))
	for i, currency := range currencies {
		responses[i] = CurrencyResponse{
			Code: currency.Code,
			Name: currency.Name,
		}
	}

	return c.JSON(http.StatusOK, responses)
}
