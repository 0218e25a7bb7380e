package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/testutil"
)

func validPolicyInput() PolicyInput {
	return PolicyInput{
		Type:           "Health",
		Provider:       "Star Health",
		PolicyNumber:   "SH-2025-001",
		Premium:        decimal.NewFromInt(2500),
		Frequency:      domain.FrequencyMonthly,
		CoverageAmount: decimal.NewFromInt(500000),
		StartDate:      domain.Date{Year: 2025, Month: time.January, Day: 15},
		EndDate:        domain.Date{Year: 2027, Month: time.January, Day: 15},
	}
}

func TestCreatePolicy_Valid(t *testing.T) {
	policyRepo := testutil.NewMockInsuranceRepository()
	insuranceService := NewInsuranceService(policyRepo)
	userID := uuid.New()

	policy, err := insuranceService.CreatePolicy(userID, validPolicyInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if policy.LastPaidDate != nil {
		t.Error("Expected no last paid date on a new policy")
	}
	if len(policyRepo.Policies) != 1 {
		t.Fatalf("Expected 1 persisted policy, got %d", len(policyRepo.Policies))
	}
}

func TestCreatePolicy_ValidationBlocksPersistence(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*PolicyInput)
		wantField string
	}{
		{"missing provider", func(in *PolicyInput) { in.Provider = "  " }, "provider"},
		{"zero premium", func(in *PolicyInput) { in.Premium = decimal.Zero }, "premium"},
		{"bad frequency", func(in *PolicyInput) { in.Frequency = "weekly" }, "frequency"},
		{"end before start", func(in *PolicyInput) {
			in.EndDate = domain.Date{Year: 2024, Month: time.December, Day: 31}
		}, "endDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policyRepo := testutil.NewMockInsuranceRepository()
			insuranceService := NewInsuranceService(policyRepo)

			input := validPolicyInput()
			tt.mutate(&input)

			_, err := insuranceService.CreatePolicy(uuid.New(), input)
			vErr, ok := domain.AsValidationError(err)
			if !ok {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("Expected field %q, got %q", tt.wantField, vErr.Field)
			}
			if len(policyRepo.Policies) != 0 {
				t.Errorf("Expected nothing persisted, got %d policies", len(policyRepo.Policies))
			}
		})
	}
}

func TestMarkPaid_AdvancesOnePeriodPerCall(t *testing.T) {
	policyRepo := testutil.NewMockInsuranceRepository()
	insuranceService := NewInsuranceService(policyRepo)
	userID := uuid.New()

	policy, err := insuranceService.CreatePolicy(userID, validPolicyInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// First payment lands on the first due date after the start
	view, err := insuranceService.MarkPaid(userID, policy.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	firstDue := domain.Date{Year: 2025, Month: time.February, Day: 15}
	if view.LastPaidDate == nil || !view.LastPaidDate.Equal(firstDue) {
		t.Fatalf("Expected last paid %s, got %v", firstDue, view.LastPaidDate)
	}

	// Each further call moves exactly one period forward
	view, err = insuranceService.MarkPaid(userID, policy.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	secondDue := domain.Date{Year: 2025, Month: time.March, Day: 15}
	if !view.LastPaidDate.Equal(secondDue) {
		t.Errorf("Expected last paid %s, got %s", secondDue, view.LastPaidDate)
	}
	if !view.NextDueDate.Equal(domain.Date{Year: 2025, Month: time.April, Day: 15}) {
		t.Errorf("Expected next due 2025-04-15, got %s", view.NextDueDate)
	}
}

func TestMarkPaid_QuarterlyMonthEndClamp(t *testing.T) {
	policyRepo := testutil.NewMockInsuranceRepository()
	insuranceService := NewInsuranceService(policyRepo)
	userID := uuid.New()

	input := validPolicyInput()
	input.Frequency = domain.FrequencyQuarterly
	input.StartDate = domain.Date{Year: 2025, Month: time.November, Day: 30}
	input.EndDate = domain.Date{Year: 2028, Month: time.November, Day: 30}

	policy, err := insuranceService.CreatePolicy(userID, input)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Nov 30 + 3 months clamps to the end of February
	view, err := insuranceService.MarkPaid(userID, policy.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := domain.Date{Year: 2026, Month: time.February, Day: 28}
	if !view.LastPaidDate.Equal(want) {
		t.Errorf("Expected last paid %s, got %s", want, view.LastPaidDate)
	}
}

func TestUpdatePolicy_PreservesPaymentHistory(t *testing.T) {
	policyRepo := testutil.NewMockInsuranceRepository()
	insuranceService := NewInsuranceService(policyRepo)
	userID := uuid.New()

	policy, err := insuranceService.CreatePolicy(userID, validPolicyInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := insuranceService.MarkPaid(userID, policy.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	input := validPolicyInput()
	input.Premium = decimal.NewFromInt(3000)
	updated, err := insuranceService.UpdatePolicy(userID, policy.ID, input)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !updated.Premium.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("Expected premium 3000, got %s", updated.Premium.String())
	}
	if updated.LastPaidDate == nil {
		t.Error("Expected update to preserve last paid date")
	}
	if updated.ID != policy.ID {
		t.Error("Expected update to preserve policy ID")
	}
}

func TestGetPolicies_DerivedStatus(t *testing.T) {
	policyRepo := testutil.NewMockInsuranceRepository()
	insuranceService := NewInsuranceService(policyRepo)
	userID := uuid.New()

	today := domain.Date{Year: 2025, Month: time.June, Day: 1}

	expired := validPolicyInput()
	expired.PolicyNumber = "P-EXPIRED"
	expired.StartDate = domain.Date{Year: 2023, Month: time.June, Day: 1}
	expired.EndDate = domain.Date{Year: 2025, Month: time.May, Day: 1}

	expiring := validPolicyInput()
	expiring.PolicyNumber = "P-EXPIRING"
	expiring.EndDate = domain.Date{Year: 2025, Month: time.June, Day: 20}

	active := validPolicyInput()
	active.PolicyNumber = "P-ACTIVE"
	active.EndDate = domain.Date{Year: 2026, Month: time.June, Day: 1}

	for _, in := range []PolicyInput{expired, expiring, active} {
		if _, err := insuranceService.CreatePolicy(userID, in); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	views, err := insuranceService.getPoliciesOn(userID, today)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("Expected 3 policies, got %d", len(views))
	}

	wantStatus := map[string]domain.PolicyStatus{
		"P-EXPIRED":  domain.StatusExpired,
		"P-EXPIRING": domain.StatusExpiringSoon,
		"P-ACTIVE":   domain.StatusActive,
	}
	for _, v := range views {
		if v.Status != wantStatus[v.PolicyNumber] {
			t.Errorf("Policy %s: expected status %s, got %s", v.PolicyNumber, wantStatus[v.PolicyNumber], v.Status)
		}
	}
}

func TestOverview_Aggregates(t *testing.T) {
	policyRepo := testutil.NewMockInsuranceRepository()
	insuranceService := NewInsuranceService(policyRepo)
	userID := uuid.New()

	today := domain.Date{Year: 2025, Month: time.June, Day: 1}

	monthly := validPolicyInput() // 2500/month -> 30000/year
	monthly.EndDate = domain.Date{Year: 2026, Month: time.June, Day: 1}

	yearly := validPolicyInput() // 12000/year
	yearly.PolicyNumber = "SH-2025-002"
	yearly.Frequency = domain.FrequencyYearly
	yearly.Premium = decimal.NewFromInt(12000)
	yearly.CoverageAmount = decimal.NewFromInt(1500000)
	yearly.EndDate = domain.Date{Year: 2025, Month: time.June, Day: 15}

	for _, in := range []PolicyInput{monthly, yearly} {
		if _, err := insuranceService.CreatePolicy(userID, in); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	overview, err := insuranceService.overviewOn(userID, today)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !overview.TotalCoverage.Equal(decimal.NewFromInt(2000000)) {
		t.Errorf("Expected total coverage 2000000, got %s", overview.TotalCoverage.String())
	}
	if !overview.TotalAnnualPremium.Equal(decimal.NewFromInt(42000)) {
		t.Errorf("Expected total annual premium 42000, got %s", overview.TotalAnnualPremium.String())
	}
	if overview.ActiveCount != 1 {
		t.Errorf("Expected 1 active policy, got %d", overview.ActiveCount)
	}
	if overview.ExpiringCount != 1 {
		t.Errorf("Expected 1 expiring policy, got %d", overview.ExpiringCount)
	}
}

func TestDeletePolicy_NotFound(t *testing.T) {
	insuranceService := NewInsuranceService(testutil.NewMockInsuranceRepository())

	err := insuranceService.DeletePolicy(uuid.New(), uuid.New())
	if !errors.Is(err, domain.ErrPolicyNotFound) {
		t.Errorf("Expected ErrPolicyNotFound, got %v", err)
	}
}

func TestMarkPaid_PublishesEvent(t *testing.T) {
	policyRepo := testutil.NewMockInsuranceRepository()
	insuranceService := NewInsuranceService(policyRepo)
	publisher := testutil.NewMockEventPublisher()
	insuranceService.SetEventPublisher(publisher)
	userID := uuid.New()

	policy, err := insuranceService.CreatePolicy(userID, validPolicyInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := insuranceService.MarkPaid(userID, policy.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	event := publisher.LastEvent()
	if event == nil {
		t.Fatal("Expected a published event")
	}
	if event.Event.Type != "policy.paid" {
		t.Errorf("Expected event type policy.paid, got %s", event.Event.Type)
	}
}
