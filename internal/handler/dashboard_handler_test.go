package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/service"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/testutil"
)

func TestGetSummary_AggregatesAcrossServices(t *testing.T) {
	e := echo.New()

	transactionRepo := testutil.NewMockTransactionRepository()
	loanRepo := testutil.NewMockLoanRepository()
	assetService := service.NewAssetService(testutil.NewMockAssetRepository(), testutil.NewMockLiabilityRepository())
	insuranceService := service.NewInsuranceService(testutil.NewMockInsuranceRepository())

	transactionService := service.NewTransactionService(transactionRepo)
	loanService := service.NewLoanService(loanRepo)
	dashboardService := service.NewDashboardService(transactionRepo, loanRepo, assetService, insuranceService)
	handler := NewDashboardHandler(dashboardService)

	userID := uuid.New()
	today := domain.Today()
	firstOfMonth := domain.Date{Year: today.Year, Month: today.Month, Day: 1}

	seed := []service.CreateTransactionInput{
		{Date: firstOfMonth, Description: "Monthly salary", Category: "salary", Amount: decimal.NewFromInt(100000), Type: domain.TransactionTypeIncome},
		{Date: firstOfMonth, Description: "Rent", Category: "housing", Amount: decimal.NewFromInt(25000), Type: domain.TransactionTypeExpense},
		{Date: today, Description: "Groceries", Category: "groceries", Amount: decimal.NewFromInt(5000), Type: domain.TransactionTypeExpense},
		// Outside the current month, excluded from the rollup
		{Date: firstOfMonth.AddMonths(-1), Description: "Old expense", Category: "dining", Amount: decimal.NewFromInt(9999), Type: domain.TransactionTypeExpense},
	}
	for _, input := range seed {
		if _, err := transactionService.CreateTransaction(userID, input); err != nil {
			t.Fatalf("Failed to seed transaction: %v", err)
		}
	}

	if _, err := loanService.CreateLoan(userID, service.CreateLoanInput{
		Type:         "car",
		Bank:         "HDFC",
		Amount:       decimal.NewFromInt(600000),
		TenureMonths: 60,
	}); err != nil {
		t.Fatalf("Failed to seed loan: %v", err)
	}

	if _, err := assetService.CreateAsset(userID, service.CreateAssetInput{
		Type:  "mutual-fund",
		Name:  "Index Fund",
		Value: decimal.NewFromInt(250000),
	}); err != nil {
		t.Fatalf("Failed to seed asset: %v", err)
	}
	if _, err := assetService.CreateLiability(userID, service.CreateLiabilityInput{
		Type:   "credit-card",
		Name:   "Credit Card",
		Amount: decimal.NewFromInt(50000),
	}); err != nil {
		t.Fatalf("Failed to seed liability: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithUser(c, "auth0|test", "test@example.com", "Test User", userID)

	err := handler.GetSummary(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response DashboardSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.MonthIncome != "100000.00" {
		t.Errorf("Expected month income '100000.00', got %s", response.MonthIncome)
	}
	if response.MonthExpenses != "30000.00" {
		t.Errorf("Expected month expenses '30000.00', got %s", response.MonthExpenses)
	}
	if response.NetSavings != "70000.00" {
		t.Errorf("Expected net savings '70000.00', got %s", response.NetSavings)
	}

	if len(response.MonthlySeries) != 6 {
		t.Fatalf("Expected 6 months in series, got %d", len(response.MonthlySeries))
	}
	current := response.MonthlySeries[5]
	if current.Year != today.Year || current.Month != int(today.Month) {
		t.Errorf("Expected series to end on the current month, got %d-%d", current.Year, current.Month)
	}
	if current.Income != "100000.00" {
		t.Errorf("Expected current month income '100000.00', got %s", current.Income)
	}
	previous := response.MonthlySeries[4]
	if previous.Expenses != "9999.00" {
		t.Errorf("Expected previous month expenses '9999.00', got %s", previous.Expenses)
	}

	if len(response.ExpenseCategories) != 2 {
		t.Fatalf("Expected 2 expense categories, got %d", len(response.ExpenseCategories))
	}
	if response.ExpenseCategories[0].Category != "housing" || response.ExpenseCategories[0].Total != "25000.00" {
		t.Errorf("Expected housing '25000.00' first, got %+v", response.ExpenseCategories[0])
	}

	if response.TotalLoanAmount != "600000.00" {
		t.Errorf("Expected total loan amount '600000.00', got %s", response.TotalLoanAmount)
	}
	if response.NetWorth != "200000.00" {
		t.Errorf("Expected net worth '200000.00', got %s", response.NetWorth)
	}
}

func TestGetSummary_EmptyUser(t *testing.T) {
	e := echo.New()

	transactionRepo := testutil.NewMockTransactionRepository()
	loanRepo := testutil.NewMockLoanRepository()
	assetService := service.NewAssetService(testutil.NewMockAssetRepository(), testutil.NewMockLiabilityRepository())
	insuranceService := service.NewInsuranceService(testutil.NewMockInsuranceRepository())
	dashboardService := service.NewDashboardService(transactionRepo, loanRepo, assetService, insuranceService)
	handler := NewDashboardHandler(dashboardService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithUser(c, "auth0|test", "test@example.com", "Test User", uuid.New())

	err := handler.GetSummary(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response DashboardSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.NetSavings != "0.00" {
		t.Errorf("Expected zero net savings, got %s", response.NetSavings)
	}
	if len(response.MonthlySeries) != 6 {
		t.Errorf("Expected 6 months in series even with no data, got %d", len(response.MonthlySeries))
	}
	if len(response.ExpenseCategories) != 0 {
		t.Errorf("Expected no expense categories, got %d", len(response.ExpenseCategories))
	}
}

func TestGetSummary_Unauthenticated(t *testing.T) {
	e := echo.New()

	dashboardService := service.NewDashboardService(
		testutil.NewMockTransactionRepository(),
		testutil.NewMockLoanRepository(),
		service.NewAssetService(testutil.NewMockAssetRepository(), testutil.NewMockLiabilityRepository()),
		service.NewInsuranceService(testutil.NewMockInsuranceRepository()),
	)
	handler := NewDashboardHandler(dashboardService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.GetSummary(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}
