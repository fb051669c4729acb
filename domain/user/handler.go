package user

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/Rasaku-Space/be-culinary-platform/config"
	"github.com/Rasaku-Space/be-culinary-platform/pkg/apperrors"
	"github.com/Rasaku-Space/be-culinary-platform/pkg/logger"
	"github.com/labstack/echo/v4"
)

// GetMeHandler returns the calling user's profile.
// GET /users/me
func GetMeHandler(c echo.Context) error {
	log := logger.FromContext(c.Request().Context()).WithComponent("user")
	userID := c.Get("user_id").(int64)

	var u User
	err := config.DB.Get(&u, `
		SELECT id, email, password, display_name, role, store_name, bio, avatar_url, created_at, updated_at
		FROM users WHERE id = ?`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeUserNotFound,
				"User not found.",
			))
		}
		log.Error("Failed to fetch user", err, logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return c.JSON(http.StatusOK, u)
}

// UpdateMeHandler updates the calling user's profile. The display name is
// denormalized onto content items so feed search keeps matching it.
// PUT /users/me
func UpdateMeHandler(c echo.Context) error {
	log := logger.FromContext(c.Request().Context()).WithComponent("user")
	userID := c.Get("user_id").(int64)

	req := new(UpdateProfileRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}
	if req.DisplayName == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"Display name is required.",
		))
	}

	now := time.Now().UTC()
	_, err := config.DB.Exec(`
		UPDATE users
		SET display_name = ?, store_name = ?, bio = ?, avatar_url = ?, updated_at = ?
		WHERE id = ?`,
		req.DisplayName, req.StoreName, req.Bio, req.AvatarURL, now, userID)
	if err != nil {
		log.Error("Failed to update profile", err, logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	if _, err := config.DB.Exec(
		`UPDATE content_items SET owner_name = ? WHERE owner_id = ?`,
		req.DisplayName, userID); err != nil {
		log.Warn("Failed to propagate display name to content", logger.Err(err), logger.UserID(userID))
	}

	log.Info("Profile updated", logger.UserID(userID))
	return c.JSON(http.StatusOK, map[string]string{"message": "Profile updated successfully."})
}
