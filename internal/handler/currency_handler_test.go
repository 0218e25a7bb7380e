package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/service"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/testutil"
)

func postConvert(t *testing.T, handler *CurrencyHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/currency/convert", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithUser(c, "auth0|test", "test@example.com", "Test User", uuid.New())

	if err := handler.Convert(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return rec
}

func TestConvert_Success(t *testing.T) {
	handler := NewCurrencyHandler(service.NewCurrencyService(domain.StaticRates, nil))

	rec := postConvert(t, handler, `{"amount": "100", "from": "USD", "to": "INR"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response ConversionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Rate != "83.12" {
		t.Errorf("Expected rate '83.12', got %s", response.Rate)
	}
	if response.ConvertedAmount != "8312.00" {
		t.Errorf("Expected converted amount '8312.00', got %s", response.ConvertedAmount)
	}
}

func TestConvert_IdentityPair(t *testing.T) {
	handler := NewCurrencyHandler(service.NewCurrencyService(domain.StaticRates, nil))

	rec := postConvert(t, handler, `{"amount": "42.50", "from": "EUR", "to": "EUR"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response ConversionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Rate != "1" {
		t.Errorf("Expected rate '1', got %s", response.Rate)
	}
	if response.ConvertedAmount != "42.50" {
		t.Errorf("Expected converted amount '42.50', got %s", response.ConvertedAmount)
	}
}

func TestConvert_UnsupportedCurrency(t *testing.T) {
	handler := NewCurrencyHandler(service.NewCurrencyService(domain.StaticRates, nil))

	rec := postConvert(t, handler, `{"amount": "100", "from": "ZZZ", "to": "INR"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestConvert_MissingRatePair(t *testing.T) {
	// A table with no USD->INR entry must fail rather than assume parity
	table := domain.RateTable{}
	handler := NewCurrencyHandler(service.NewCurrencyService(table, nil))

	rec := postConvert(t, handler, `{"amount": "100", "from": "USD", "to": "INR"}`)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestConvert_PopulatesCache(t *testing.T) {
	cache := testutil.NewMockRateCache()
	handler := NewCurrencyHandler(service.NewCurrencyService(domain.StaticRates, cache))

	postConvert(t, handler, `{"amount": "100", "from": "USD", "to": "INR"}`)
	rec := postConvert(t, handler, `{"amount": "200", "from": "USD", "to": "INR"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if cache.Hits != 1 {
		t.Errorf("Expected 1 cache hit on the second conversion, got %d", cache.Hits)
	}
}

func TestGetCurrencies_ListsSupported(t *testing.T) {
	e := echo.New()
	handler := NewCurrencyHandler(service.NewCurrencyService(domain.StaticRates, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currency/currencies", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.GetCurrencies(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var responses []CurrencyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &responses); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(responses) != 10 {
		t.Fatalf("Expected 10 currencies, got %d", len(responses))
	}
	if responses[0].Code != "USD" || responses[0].Name != "US Dollar" {
		t.Errorf("Expected USD first, got %+v", responses[0])
	}
}
