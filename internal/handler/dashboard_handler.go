package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/middleware"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/service"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// MonthlySeriesPointResponse represents one month in the income/expense series
type MonthlySeriesPointResponse struct {
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Label    string `json:"label"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
}

// CategoryTotalResponse represents one expense category total
type CategoryTotalResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

// DashboardSummaryResponse represents the dashboard summary API response
type DashboardSummaryResponse struct {
	MonthIncome       string                       `json:"monthIncome"`
	MonthExpenses     string                       `json:"monthExpenses"`
	NetSavings        string                       `json:"netSavings"`
	MonthlySeries     []MonthlySeriesPointResponse `json:"monthlySeries"`
	ExpenseCategories []CategoryTotalResponse      `json:"expenseCategories"`
	TotalLoanAmount   string                       `json:"totalLoanAmount"`
	TotalMonthlyEMI   string                       `json:"totalMonthlyEmi"`
	NetWorth          string                       `json:"netWorth"`
	Insurance         InsuranceOverviewResponse    `json:"insurance"`
}

func toDashboardSummaryResponse(summary *domain.DashboardSummary) DashboardSummaryResponse {
	series := make([]MonthlySeriesPointResponse, len(summary.MonthlySeries))
	for i, point := range summary.MonthlySeries {
		series[i] = MonthlySeriesPointResponse{
			Year:     point.Year,
			Month:    point.Month,
			Label:    point.Label,
			Income:   point.Income.StringFixed(2),
			Expenses: point.Expenses.StringFixed(2),
		}
	}

	categories := make([]CategoryTotalResponse, len(summary.ExpenseCategories))
	for i, total := range summary.ExpenseCategories {
		categories[i] = CategoryTotalResponse{
			Category: total.Category,
			Total:    total.Total.StringFixed(2),
		}
	}

	return DashboardSummaryResponse{
		MonthIncome:       summary.MonthIncome.StringFixed(2),
		MonthExpenses:     summary.MonthExpenses.StringFixed(2),
		NetSavings:        summary.NetSavings.StringFixed(2),
		MonthlySeries:     series,
		ExpenseCategories: categories,
		TotalLoanAmount:   summary.TotalLoanAmount.StringFixed(2),
		TotalMonthlyEMI:   summary.TotalMonthlyEMI.StringFixed(2),
		NetWorth:          summary.NetWorth.StringFixed(2),
		Insurance: InsuranceOverviewResponse{
			TotalCoverage:      summary.Insurance.TotalCoverage.StringFixed(2),
			TotalAnnualPremium: summary.Insurance.TotalAnnualPremium.StringFixed(2),
			ActiveCount:        summary.Insurance.ActiveCount,
			ExpiringCount:      summary.Insurance.ExpiringCount,
		},
	}
}

// GetSummary godoc
// @Summary Dashboard summary
// @Description Get the aggregated dashboard for the authenticated user
// @Tags dashboard
// @Produce json
// @Success 200 {object} DashboardSummaryResponse
// @Failure 401 {object} ProblemDetails
// @Security BearerAuth
// @Router /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	summary, err := h.dashboardService.GetSummary(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get dashboard summary")
		return NewInternalError(c, "Failed to get dashboard summary")
	}

	return c.JSON(http.StatusOK, toDashboardSummaryResponse(summary))
}
