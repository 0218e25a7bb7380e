package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
)

// DashboardService aggregates financial data across services for the dashboard view
type DashboardService struct {
	transactionRepo  domain.TransactionRepository
	loanRepo         domain.LoanRepository
	assetService     *AssetService
	insuranceService *InsuranceService
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	transactionRepo domain.TransactionRepository,
	loanRepo domain.LoanRepository,
	assetService *AssetService,
	insuranceService *InsuranceService,
) *DashboardService {
	return &DashboardService{
		transactionRepo:  transactionRepo,
		loanRepo:         loanRepo,
		assetService:     assetService,
		insuranceService: insuranceService,
	}
}

// monthsInSeries is the number of trailing months in the dashboard series,
// including the current month.
const monthsInSeries = 6

// GetSummary builds the dashboard summary for a user as of today
func (s *DashboardService) GetSummary(userID uuid.UUID) (*domain.DashboardSummary, error) {
	return s.getSummaryOn(userID, domain.Today())
}

func (s *DashboardService) getSummaryOn(userID uuid.UUID, today domain.Date) (*domain.DashboardSummary, error) {
	seriesStart := domain.Date{Year: today.Year, Month: today.Month, Day: 1}.AddMonths(-(monthsInSeries - 1))
	transactions, err := s.transactionRepo.GetByUserAndDateRange(userID, seriesStart, today)
	if err != nil {
		return nil, err
	}

	summary := &domain.DashboardSummary{
		MonthIncome:       decimal.Zero,
		MonthExpenses:     decimal.Zero,
		MonthlySeries:     buildMonthlySeries(transactions, today),
		ExpenseCategories: buildCategoryTotals(transactions, today),
		TotalLoanAmount:   decimal.Zero,
		TotalMonthlyEMI:   decimal.Zero,
	}

	for _, t := range transactions {
		if t.Date.Year != today.Year || t.Date.Month != today.Month {
			continue
		}
		switch t.Type {
		case domain.TransactionTypeIncome:
			summary.MonthIncome = summary.MonthIncome.Add(t.Amount)
		case domain.TransactionTypeExpense:
			summary.MonthExpenses = summary.MonthExpenses.Add(t.Amount)
		}
	}
	summary.NetSavings = summary.MonthIncome.Sub(summary.MonthExpenses)

	loans, err := s.loanRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	for _, l := range loans {
		summary.TotalLoanAmount = summary.TotalLoanAmount.Add(l.Amount)
		summary.TotalMonthlyEMI = summary.TotalMonthlyEMI.Add(l.EMI)
	}

	netWorth, err := s.assetService.NetWorth(userID)
	if err != nil {
		return nil, err
	}
	summary.NetWorth = netWorth

	overview, err := s.insuranceService.overviewOn(userID, today)
	if err != nil {
		return nil, err
	}
	summary.Insurance = *overview

	return summary, nil
}

// buildMonthlySeries folds transactions into per-month income and expense
// totals for the trailing window, oldest month first. Months with no
// transactions still appear with zero totals.
func buildMonthlySeries(transactions []*domain.Transaction, today domain.Date) []domain.MonthlySeriesPoint {
	series := make([]domain.MonthlySeriesPoint, 0, monthsInSeries)
	index := make(map[string]int, monthsInSeries)

	cursor := domain.Date{Year: today.Year, Month: today.Month, Day: 1}.AddMonths(-(monthsInSeries - 1))
	for i := 0; i < monthsInSeries; i++ {
		label := time.Date(cursor.Year, cursor.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan")
		series = append(series, domain.MonthlySeriesPoint{
			Year:     cursor.Year,
			Month:    int(cursor.Month),
			Label:    label,
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
		})
		index[monthKey(cursor.Year, cursor.Month)] = i
		cursor = cursor.AddMonths(1)
	}

	for _, t := range transactions {
		i, ok := index[monthKey(t.Date.Year, t.Date.Month)]
		if !ok {
			continue
		}
		switch t.Type {
		case domain.TransactionTypeIncome:
			series[i].Income = series[i].Income.Add(t.Amount)
		case domain.TransactionTypeExpense:
			series[i].Expenses = series[i].Expenses.Add(t.Amount)
		}
	}

	return series
}

// buildCategoryTotals sums the current month's expenses per category,
// preserving first-seen category order.
func buildCategoryTotals(transactions []*domain.Transaction, today domain.Date) []domain.CategoryTotal {
	totals := make([]domain.CategoryTotal, 0)
	index := make(map[string]int)

	for _, t := range transactions {
		if t.Type != domain.TransactionTypeExpense {
			continue
		}
		if t.Date.Year != today.Year || t.Date.Month != today.Month {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(totals)
			index[t.Category] = i
			totals = append(totals, domain.CategoryTotal{Category: t.Category, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(t.Amount)
	}

	return totals
}

func monthKey(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
