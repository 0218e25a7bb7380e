package service

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
)

// AuthService handles authentication-related business logic
type AuthService struct {
	userRepo domain.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// AuthResult represents the result of an authentication operation
type AuthResult struct {
	User      *domain.User
	IsNewUser bool
}

// AuthenticateUser handles the authentication flow after the identity
// provider callback, creating the user record on first sign-in.
func (s *AuthService) AuthenticateUser(authID, email string, name *string) (*AuthResult, error) {
	user, isNew, err := s.userRepo.CreateOrGetByAuthID(authID, email, name)
	if err != nil {
		log.Error().Err(err).Str("auth_id", authID).Msg("Failed to create or get user")
		return nil, err
	}

	if isNew {
		log.Info().Str("user_id", user.ID.String()).Msg("Created new user")
	} else {
		log.Info().Str("user_id", user.ID.String()).Msg("Existing user authenticated")
	}

	return &AuthResult{User: user, IsNewUser: isNew}, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(id)
}

// GetUserByAuthID retrieves a user by their identity provider subject
func (s *AuthService) GetUserByAuthID(authID string) (*domain.User, error) {
	return s.userRepo.GetByAuthID(authID)
}
