package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/websocket"
)

// ProfileService handles profile-related business logic
type ProfileService struct {
	userRepo       domain.UserRepository
	eventPublisher websocket.EventPublisher
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo domain.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ProfileService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// GetProfile retrieves a user's profile by ID
func (s *ProfileService) GetProfile(userID uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateProfileInput holds the editable profile fields
type UpdateProfileInput struct {
	DateOfBirth   domain.Date
	Occupation    string
	MonthlyIncome decimal.Decimal
}

// UpdateProfile validates and persists profile changes
func (s *ProfileService) UpdateProfile(userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	occupation := strings.TrimSpace(input.Occupation)
	if occupation == "" {
		return nil, domain.NewValidationError("occupation", "occupation is required")
	}
	if input.DateOfBirth.IsZero() {
		return nil, domain.NewValidationError("dateOfBirth", "date of birth is required")
	}
	if input.DateOfBirth.After(domain.Today()) {
		return nil, domain.NewValidationError("dateOfBirth", "date of birth cannot be in the future")
	}
	if input.MonthlyIncome.IsNegative() {
		return nil, domain.NewValidationError("monthlyIncome", "monthly income cannot be negative")
	}

	user, err := s.userRepo.UpdateProfile(userID, input.DateOfBirth, occupation, input.MonthlyIncome)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, websocket.NewEvent(websocket.EventTypeUpdated, websocket.EntityTypeProfile, user))
	}
	return user, nil
}
