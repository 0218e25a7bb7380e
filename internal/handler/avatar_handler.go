package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/middleware"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/service"
)

// AvatarHandler handles profile picture HTTP requests
type AvatarHandler struct {
	avatarService  *service.AvatarService
	profileService *service.ProfileService
}

// NewAvatarHandler creates a new AvatarHandler
func NewAvatarHandler(avatarService *service.AvatarService, profileService *service.ProfileService) *AvatarHandler {
	return &AvatarHandler{
		avatarService:  avatarService,
		profileService: profileService,
	}
}

// UploadAvatarResponse represents the avatar upload response
type UploadAvatarResponse struct {
	ThumbnailURL string `json:"thumbnailUrl"`
	DisplayURL   string `json:"displayUrl"`
}

// UploadAvatar godoc
// @Summary Upload a profile picture
// @Description Store thumbnail and display variants of the uploaded image
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file (JPEG, PNG or WebP, max 5MB)"
// @Success 200 {object} UploadAvatarResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /profile/avatar [post]
func (h *AvatarHandler) UploadAvatar(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	// If storage isn't configured, don't attempt to process/upload (would panic on nil storage).
	if h.avatarService == nil || !h.avatarService.IsEnabled() {
		return NewServiceUnavailableError(c, "Avatar uploads are disabled (storage not configured)")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read file")
	}

	urls, err := h.avatarService.Upload(c.Request().Context(), userID, data, file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAvatarTooLarge):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "File too large. Maximum size is 5MB"},
			})
		case errors.Is(err, service.ErrAvatarInvalidFormat):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Invalid format. Supported: JPEG, PNG, WebP"},
			})
		case errors.Is(err, service.ErrAvatarTooSmall):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Image too small. Minimum 50x50 pixels"},
			})
		case errors.Is(err, service.ErrAvatarInvalidData):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Invalid image data"},
			})
		default:
			log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to upload avatar")
			return NewInternalError(c, "Failed to upload avatar")
		}
	}

	log.Info().Str("user_id", userID.String()).Msg("Avatar uploaded")

	return c.JSON(http.StatusOK, UploadAvatarResponse{
		ThumbnailURL: urls.ThumbnailURL,
		DisplayURL:   urls.DisplayURL,
	})
}

// DeleteAvatar godoc
// @Summary Delete the profile picture
// @Tags profile
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /profile/avatar [delete]
func (h *AvatarHandler) DeleteAvatar(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	if h.avatarService == nil || !h.avatarService.IsEnabled() {
		return NewServiceUnavailableError(c, "Avatar deletion is disabled (storage not configured)")
	}

	user, err := h.profileService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get user")
		return NewInternalError(c, "Failed to delete avatar")
	}

	if err := h.avatarService.Delete(c.Request().Context(), userID, user); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to delete avatar")
		return NewInternalError(c, "Failed to delete avatar")
	}

	log.Info().Str("user_id", userID.String()).Msg("Avatar deleted")

	return c.NoContent(http.StatusNoContent)
}
