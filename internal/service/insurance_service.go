package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/websocket"
)

// InsuranceService handles insurance policy business logic
type InsuranceService struct {
	policyRepo     domain.InsuranceRepository
	eventPublisher websocket.EventPublisher
}

// NewInsuranceService creates a new InsuranceService
func NewInsuranceService(policyRepo domain.InsuranceRepository) *InsuranceService {
	return &InsuranceService{policyRepo: policyRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *InsuranceService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *InsuranceService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// PolicyInput contains the user-editable policy fields
type PolicyInput struct {
	Type           string
	Provider       string
	PolicyNumber   string
	Premium        decimal.Decimal
	Frequency      domain.PaymentFrequency
	CoverageAmount decimal.Decimal
	StartDate      domain.Date
	EndDate        domain.Date
	Notes          *string
}

// PolicyView is a policy together with its derived lifecycle fields
type PolicyView struct {
	*domain.InsurancePolicy
	Status            domain.PolicyStatus `json:"status"`
	DaysLeft          int                 `json:"daysLeft"`
	NextDueDate       domain.Date         `json:"nextDueDate"`
	AnnualizedPremium decimal.Decimal     `json:"annualizedPremium"`
}

// CreatePolicy validates and persists a new policy. Validation failures carry
// the offending field and leave nothing persisted.
func (s *InsuranceService) CreatePolicy(userID uuid.UUID, input PolicyInput) (*domain.InsurancePolicy, error) {
	policy := policyFromInput(userID, input)
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	created, err := s.policyRepo.Create(policy)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.NewEvent(websocket.EventTypeCreated, websocket.EntityTypePolicy, created))
	return created, nil
}

// UpdatePolicy validates and applies edits to an existing policy.
// lastPaidDate is not editable here; it only moves through MarkPaid.
func (s *InsuranceService) UpdatePolicy(userID uuid.UUID, id uuid.UUID, input PolicyInput) (*domain.InsurancePolicy, error) {
	existing, err := s.policyRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	updated := policyFromInput(userID, input)
	updated.ID = existing.ID
	updated.LastPaidDate = existing.LastPaidDate
	updated.CreatedAt = existing.CreatedAt
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.policyRepo.Update(updated)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.NewEvent(websocket.EventTypeUpdated, websocket.EntityTypePolicy, saved))
	return saved, nil
}

// GetPolicies returns the user's policies with live-derived status as of today
func (s *InsuranceService) GetPolicies(userID uuid.UUID) ([]*PolicyView, error) {
	return s.getPoliciesOn(userID, domain.Today())
}

func (s *InsuranceService) getPoliciesOn(userID uuid.UUID, today domain.Date) ([]*PolicyView, error) {
	policies, err := s.policyRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	views := make([]*PolicyView, 0, len(policies))
	for _, p := range policies {
		views = append(views, viewOf(p, today))
	}
	return views, nil
}

// MarkPaid advances lastPaidDate to the policy's next due date. The
// transition is forward-only; there is no unpay.
func (s *InsuranceService) MarkPaid(userID uuid.UUID, id uuid.UUID) (*PolicyView, error) {
	policy, err := s.policyRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	nextDue := policy.NextDueDate()
	policy.LastPaidDate = &nextDue

	saved, err := s.policyRepo.Update(policy)
	if err != nil {
		return nil, err
	}

	view := viewOf(saved, domain.Today())
	s.publishEvent(userID, websocket.NewEvent(websocket.EventTypePaid, websocket.EntityTypePolicy, view))
	return view, nil
}

// DeletePolicy removes a policy
func (s *InsuranceService) DeletePolicy(userID uuid.UUID, id uuid.UUID) error {
	policy, err := s.policyRepo.GetByID(userID, id)
	if err != nil {
		return err
	}
	if err := s.policyRepo.Delete(userID, id); err != nil {
		return err
	}
	s.publishEvent(userID, websocket.NewEvent(websocket.EventTypeDeleted, websocket.EntityTypePolicy, policy))
	return nil
}

// Overview aggregates the policy portfolio as of today
func (s *InsuranceService) Overview(userID uuid.UUID) (*domain.InsuranceOverview, error) {
	return s.overviewOn(userID, domain.Today())
}

func (s *InsuranceService) overviewOn(userID uuid.UUID, today domain.Date) (*domain.InsuranceOverview, error) {
	policies, err := s.policyRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	overview := &domain.InsuranceOverview{
		TotalCoverage:      decimal.Zero,
		TotalAnnualPremium: decimal.Zero,
	}
	for _, p := range policies {
		overview.TotalCoverage = overview.TotalCoverage.Add(p.CoverageAmount)
		overview.TotalAnnualPremium = overview.TotalAnnualPremium.Add(p.AnnualizedPremium())

		status, _ := p.StatusOn(today)
		switch status {
		case domain.StatusActive:
			overview.ActiveCount++
		case domain.StatusExpiringSoon:
			overview.ExpiringCount++
		}
	}
	return overview, nil
}

func policyFromInput(userID uuid.UUID, input PolicyInput) *domain.InsurancePolicy {
	return &domain.InsurancePolicy{
		UserID:         userID,
		Type:           strings.TrimSpace(input.Type),
		Provider:       strings.TrimSpace(input.Provider),
		PolicyNumber:   strings.TrimSpace(input.PolicyNumber),
		Premium:        input.Premium,
		Frequency:      input.Frequency,
		CoverageAmount: input.CoverageAmount,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		Notes:          input.Notes,
	}
}

func viewOf(p *domain.InsurancePolicy, today domain.Date) *PolicyView {
	status, daysLeft := p.StatusOn(today)
	return &PolicyView{
		InsurancePolicy:   p,
		Status:            status,
		DaysLeft:          daysLeft,
		NextDueDate:       p.NextDueDate(),
		AnnualizedPremium: p.AnnualizedPremium(),
	}
}
