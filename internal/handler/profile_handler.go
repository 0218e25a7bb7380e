package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/middleware"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/service"
)

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
	avatarService  *service.AvatarService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *service.ProfileService, avatarService *service.AvatarService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		avatarService:  avatarService,
	}
}

// ProfileResponse represents the profile response
type ProfileResponse struct {
	ID              string  `json:"id"`
	Email           string  `json:"email"`
	Name            *string `json:"name"`
	DateOfBirth     *string `json:"dateOfBirth"`
	Occupation      *string `json:"occupation"`
	MonthlyIncome   string  `json:"monthlyIncome"`
	AvatarURL       *string `json:"avatarUrl,omitempty"`          // display variant
	AvatarThumbURL  *string `json:"avatarThumbnailUrl,omitempty"`
	ProfileComplete bool    `json:"profileComplete"`
}

// UpdateProfileRequest represents the update profile request
type UpdateProfileRequest struct {
	DateOfBirth   string `json:"dateOfBirth"` // YYYY-MM-DD
	Occupation    string `json:"occupation"`
	MonthlyIncome string `json:"monthlyIncome"`
}

func (h *ProfileHandler) toProfileResponse(c echo.Context, user *domain.User) ProfileResponse {
	resp := ProfileResponse{
		ID:              user.ID.String(),
		Email:           user.Email,
		Name:            user.Name,
		Occupation:      user.Occupation,
		MonthlyIncome:   user.MonthlyIncome.StringFixed(2),
		ProfileComplete: user.ProfileComplete(),
	}
	if user.DateOfBirth != nil {
		dob := user.DateOfBirth.String()
		resp.DateOfBirth = &dob
	}
	if h.avatarService != nil && h.avatarService.IsEnabled() {
		urls, err := h.avatarService.URLs(c.Request().Context(), user)
		if err != nil {
			log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("Failed to presign avatar URLs")
		} else if urls != nil {
			resp.AvatarURL = &urls.DisplayURL
			resp.AvatarThumbURL = &urls.ThumbnailURL
		}
	}
	return resp
}

// GetProfile godoc
// @Summary Get profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	user, err := h.profileService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get profile")
		return NewInternalError(c, "Failed to get profile")
	}

	return c.JSON(http.StatusOK, h.toProfileResponse(c, user))
}

// UpdateProfile godoc
// @Summary Update profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	dob, err := domain.ParseDate(strings.TrimSpace(req.DateOfBirth))
	if err != nil {
		return NewValidationError(c, "Invalid date of birth", []ValidationError{
			{Field: "dateOfBirth", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	income, err := decimal.NewFromString(strings.TrimSpace(req.MonthlyIncome))
	if err != nil {
		return NewValidationError(c, "Invalid monthly income", []ValidationError{
			{Field: "monthlyIncome", Message: "Must be a valid decimal number"},
		})
	}

	input := service.UpdateProfileInput{
		DateOfBirth:   dob,
		Occupation:    req.Occupation,
		MonthlyIncome: income,
	}

	user, err := h.profileService.UpdateProfile(userID, input)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: ve.Field, Message: ve.Message},
			})
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to update profile")
		return NewInternalError(c, "Failed to update profile")
	}

	log.Info().Str("user_id", userID.String()).Msg("Profile updated")

	return c.JSON(http.StatusOK, h.toProfileResponse(c, user))
}
