package domain

import "github.com/shopspring/decimal"

// MonthlySeriesPoint is one month of aggregated income and expenses
type MonthlySeriesPoint struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Label    string          `json:"label"` // month abbreviation, e.g. "Mar"
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// CategoryTotal is the expense total for one category
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// InsuranceOverview aggregates the policy portfolio
type InsuranceOverview struct {
	TotalCoverage      decimal.Decimal `json:"totalCoverage"`
	TotalAnnualPremium decimal.Decimal `json:"totalAnnualPremium"`
	ActiveCount        int             `json:"activeCount"`
	ExpiringCount      int             `json:"expiringCount"`
}

// DashboardSummary is the full dashboard payload, derived on demand
type DashboardSummary struct {
	MonthIncome       decimal.Decimal      `json:"monthIncome"`
	MonthExpenses     decimal.Decimal      `json:"monthExpenses"`
	NetSavings        decimal.Decimal      `json:"netSavings"`
	MonthlySeries     []MonthlySeriesPoint `json:"monthlySeries"`
	ExpenseCategories []CategoryTotal      `json:"expenseCategories"`
	TotalLoanAmount   decimal.Decimal      `json:"totalLoanAmount"`
	TotalMonthlyEMI   decimal.Decimal      `json:"totalMonthlyEmi"`
	NetWorth          decimal.Decimal      `json:"netWorth"`
	Insurance         InsuranceOverview    `json:"insurance"`
}
