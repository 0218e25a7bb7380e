package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/testutil"
)

func newDashboardFixture() (*DashboardService, *testutil.MockTransactionRepository, *testutil.MockLoanRepository, *AssetService, *InsuranceService) {
	transactionRepo := testutil.NewMockTransactionRepository()
	loanRepo := testutil.NewMockLoanRepository()
	assetService := NewAssetService(testutil.NewMockAssetRepository(), testutil.NewMockLiabilityRepository())
	insuranceService := NewInsuranceService(testutil.NewMockInsuranceRepository())
	dashboardService := NewDashboardService(transactionRepo, loanRepo, assetService, insuranceService)
	return dashboardService, transactionRepo, loanRepo, assetService, insuranceService
}

func addTransaction(t *testing.T, repo *testutil.MockTransactionRepository, userID uuid.UUID, date domain.Date, category string, amount int64, transactionType domain.TransactionType) {
	t.Helper()
	_, err := repo.Create(&domain.Transaction{
		UserID:      userID,
		Date:        date,
		Description: category,
		Category:    category,
		Amount:      decimal.NewFromInt(amount),
		Type:        transactionType,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func TestGetSummary_CurrentMonthTotals(t *testing.T) {
	dashboardService, transactionRepo, _, _, _ := newDashboardFixture()
	userID := uuid.New()
	today := domain.Date{Year: 2025, Month: time.August, Day: 15}

	addTransaction(t, transactionRepo, userID, domain.Date{Year: 2025, Month: time.August, Day: 1}, "Salary", 80000, domain.TransactionTypeIncome)
	addTransaction(t, transactionRepo, userID, domain.Date{Year: 2025, Month: time.August, Day: 5}, "Rent", 20000, domain.TransactionTypeExpense)
	addTransaction(t, transactionRepo, userID, domain.Date{Year: 2025, Month: time.August, Day: 10}, "Food", 5000, domain.TransactionTypeExpense)
	// Previous month must not leak into the current-month totals
	addTransaction(t, transactionRepo, userID, domain.Date{Year: 2025, Month: time.July, Day: 20}, "Rent", 20000, domain.TransactionTypeExpense)

	summary, err := dashboardService.getSummaryOn(userID, today)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !summary.MonthIncome.Equal(decimal.NewFromInt(80000)) {
		t.Errorf("Expected month income 80000, got %s", summary.MonthIncome.String())
	}
	if !summary.MonthExpenses.Equal(decimal.NewFromInt(25000)) {
		t.Errorf("Expected month expenses 25000, got %s", summary.MonthExpenses.String())
	}
	if !summary.NetSavings.Equal(decimal.NewFromInt(55000)) {
		t.Errorf("Expected net savings 55000, got %s", summary.NetSavings.String())
	}
}

func TestGetSummary_MonthlySeries(t *testing.T) {
	dashboardService, transactionRepo, _, _, _ := newDashboardFixture()
	userID := uuid.New()
	today := domain.Date{Year: 2025, Month: time.August, Day: 15}

	addTransaction(t, transactionRepo, userID, domain.Date{Year: 2025, Month: time.March, Day: 10}, "Salary", 70000, domain.TransactionTypeIncome)
	addTransaction(t, transactionRepo, userID, domain.Date{Year: 2025, Month: time.June, Day: 10}, "Rent", 20000, domain.TransactionTypeExpense)
	addTransaction(t, transactionRepo, userID, domain.Date{Year: 2025, Month: time.August, Day: 1}, "Salary", 80000, domain.TransactionTypeIncome)

	summary, err := dashboardService.getSummaryOn(userID, today)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	series := summary.MonthlySeries
	if len(series) != 6 {
		t.Fatalf("Expected 6 series points, got %d", len(series))
	}
	wantLabels := []string{"Mar", "Apr", "May", "Jun", "Jul", "Aug"}
	for i, want := range wantLabels {
		if series[i].Label != want {
			t.Errorf("Position %d: expected label %s, got %s", i, want, series[i].Label)
		}
	}

	if !series[0].Income.Equal(decimal.NewFromInt(70000)) {
		t.Errorf("Expected March income 70000, got %s", series[0].Income.String())
	}
	if !series[3].Expenses.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("Expected June expenses 20000, got %s", series[3].Expenses.String())
	}
	// Empty months stay in the series with zero totals
	if !series[1].Income.IsZero() || !series[1].Expenses.IsZero() {
		t.Errorf("Expected zero totals for April, got %s / %s", series[1].Income.String(), series[1].Expenses.String())
	}
}

func TestGetSummary_ExpenseCategories(t *testing.T) {
	dashboardService, transactionRepo, _, _, _ := newDashboardFixture()
	userID := uuid.New()
	today := domain.Date{Year: 2025, Month: time.August, Day: 15}

	addTransaction(t, transactionRepo, userID, domain.Date{Year: 2025, Month: time.August, Day: 2}, "Food", 3000, domain.TransactionTypeExpense)
	addTransaction(t, transactionRepo, userID, domain.Date{Year: 2025, Month: time.August, Day: 5}, "Rent", 20000, domain.TransactionTypeExpense)
	addTransaction(t, transactionRepo, userID, domain.Date{Year: 2025, Month: time.August, Day: 9}, "Food", 2000, domain.TransactionTypeExpense)
	// Income and out-of-month expenses are excluded
	addTransaction(t, transactionRepo, userID, domain.Date{Year: 2025, Month: time.August, Day: 1}, "Salary", 80000, domain.TransactionTypeIncome)
	addTransaction(t, transactionRepo, userID, domain.Date{Year: 2025, Month: time.July, Day: 5}, "Travel", 15000, domain.TransactionTypeExpense)

	summary, err := dashboardService.getSummaryOn(userID, today)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	categories := summary.ExpenseCategories
	if len(categories) != 2 {
		t.Fatalf("Expected 2 expense categories, got %d", len(categories))
	}
	if categories[0].Category != "Food" || !categories[0].Total.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("Expected Food 5000 first, got %s %s", categories[0].Category, categories[0].Total.String())
	}
	if categories[1].Category != "Rent" || !categories[1].Total.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("Expected Rent 20000 second, got %s %s", categories[1].Category, categories[1].Total.String())
	}
}

func TestGetSummary_LoanAndPortfolioRollups(t *testing.T) {
	dashboardService, _, loanRepo, assetService, insuranceService := newDashboardFixture()
	userID := uuid.New()
	today := domain.Date{Year: 2025, Month: time.August, Day: 15}

	for _, l := range []struct {
		amount int64
		emi    int64
	}{
		{2500000, 21696},
		{500000, 10747},
	} {
		_, err := loanRepo.Create(&domain.Loan{
			UserID:       userID,
			Type:         domain.LoanTypeHome,
			Bank:         "SBI",
			Amount:       decimal.NewFromInt(l.amount),
			InterestRate: decimal.NewFromFloat(8.5),
			TenureMonths: 240,
			EMI:          decimal.NewFromInt(l.emi),
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	if _, err := assetService.CreateAsset(userID, CreateAssetInput{
		Type:  "savings",
		Name:  "Savings",
		Value: decimal.NewFromInt(900000),
	}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := assetService.CreateLiability(userID, CreateLiabilityInput{
		Type:   "credit_card",
		Name:   "Credit Card",
		Amount: decimal.NewFromInt(100000),
	}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	policy := validPolicyInput()
	policy.EndDate = domain.Date{Year: 2026, Month: time.August, Day: 15}
	if _, err := insuranceService.CreatePolicy(userID, policy); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	summary, err := dashboardService.getSummaryOn(userID, today)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !summary.TotalLoanAmount.Equal(decimal.NewFromInt(3000000)) {
		t.Errorf("Expected total loan amount 3000000, got %s", summary.TotalLoanAmount.String())
	}
	if !summary.TotalMonthlyEMI.Equal(decimal.NewFromInt(32443)) {
		t.Errorf("Expected total monthly EMI 32443, got %s", summary.TotalMonthlyEMI.String())
	}
	if !summary.NetWorth.Equal(decimal.NewFromInt(800000)) {
		t.Errorf("Expected net worth 800000, got %s", summary.NetWorth.String())
	}
	if summary.Insurance.ActiveCount != 1 {
		t.Errorf("Expected 1 active policy, got %d", summary.Insurance.ActiveCount)
	}
	if !summary.Insurance.TotalAnnualPremium.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("Expected annual premium 30000, got %s", summary.Insurance.TotalAnnualPremium.String())
	}
}

func TestGetSummary_EmptyUser(t *testing.T) {
	dashboardService, _, _, _, _ := newDashboardFixture()

	summary, err := dashboardService.getSummaryOn(uuid.New(), domain.Date{Year: 2025, Month: time.August, Day: 15})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !summary.MonthIncome.IsZero() || !summary.MonthExpenses.IsZero() {
		t.Error("Expected zero totals for a user with no data")
	}
	if len(summary.MonthlySeries) != 6 {
		t.Errorf("Expected 6 series points even with no data, got %d", len(summary.MonthlySeries))
	}
	if len(summary.ExpenseCategories) != 0 {
		t.Errorf("Expected no categories, got %d", len(summary.ExpenseCategories))
	}
}
