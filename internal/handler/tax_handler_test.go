package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/service"
)

func postTaxCalculate(t *testing.T, handler *TaxHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tax/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithUser(c, "auth0|test", "test@example.com", "Test User", uuid.New())

	if err := handler.CalculateTax(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return rec
}

func TestCalculateTax_NewRegime(t *testing.T) {
	handler := NewTaxHandler(service.NewTaxService())

	rec := postTaxCalculate(t, handler, `{
		"grossAnnualIncome": "1100000",
		"isSalaried": true,
		"regime": "new"
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response TaxResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Regime != "new" {
		t.Errorf("Expected regime 'new', got %s", response.Regime)
	}
	if response.TaxableIncome != "1050000.00" {
		t.Errorf("Expected taxable income '1050000.00', got %s", response.TaxableIncome)
	}
	if response.BaseTax != "67500.00" {
		t.Errorf("Expected base tax '67500.00', got %s", response.BaseTax)
	}
	if response.TotalTax != "70200.00" {
		t.Errorf("Expected total tax '70200.00', got %s", response.TotalTax)
	}
	if response.TotalTaxDisplay != "₹70,200" {
		t.Errorf("Expected display '₹70,200', got %s", response.TotalTaxDisplay)
	}
}

func TestCalculateTax_OldRegimeWithDeductions(t *testing.T) {
	handler := NewTaxHandler(service.NewTaxService())

	// 80C investments + life insurance premium share the 1.5L cap
	rec := postTaxCalculate(t, handler, `{
		"grossAnnualIncome": "1200000",
		"isSalaried": true,
		"regime": "old",
		"deductions": {
			"investments80c": "100000",
			"lifeInsurancePremium": "100000",
			"hra": "120000"
		}
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response TaxResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Regime != "old" {
		t.Errorf("Expected regime 'old', got %s", response.Regime)
	}
	// 50k standard + 1.5L capped 80C + 1.2L HRA
	if response.TotalDeductions != "320000.00" {
		t.Errorf("Expected total deductions '320000.00', got %s", response.TotalDeductions)
	}
	if response.TaxableIncome != "880000.00" {
		t.Errorf("Expected taxable income '880000.00', got %s", response.TaxableIncome)
	}
}

func TestCalculateTax_UnparsableAmountTreatedAsZero(t *testing.T) {
	handler := NewTaxHandler(service.NewTaxService())

	rec := postTaxCalculate(t, handler, `{
		"grossAnnualIncome": "garbage",
		"regime": "new"
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response TaxResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.GrossIncome != "0.00" {
		t.Errorf("Expected gross income '0.00', got %s", response.GrossIncome)
	}
	if response.TotalTax != "0.00" {
		t.Errorf("Expected total tax '0.00', got %s", response.TotalTax)
	}
}

func TestCalculateTax_InvalidRegimeRejected(t *testing.T) {
	handler := NewTaxHandler(service.NewTaxService())

	rec := postTaxCalculate(t, handler, `{
		"grossAnnualIncome": "1000000",
		"regime": "flat"
	}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(problem.Errors) != 1 || problem.Errors[0].Field != "regime" {
		t.Errorf("Expected validation error on field 'regime', got %+v", problem.Errors)
	}
}

func TestCalculateTax_Unauthenticated(t *testing.T) {
	e := echo.New()
	handler := NewTaxHandler(service.NewTaxService())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tax/calculate", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.CalculateTax(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}
