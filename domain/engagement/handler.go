package engagement

import (
	"errors"
	"net/http"

	"github.com/Rasaku-Space/be-culinary-platform/domain/content"
	"github.com/Rasaku-Space/be-culinary-platform/pkg/apperrors"
	"github.com/Rasaku-Space/be-culinary-platform/pkg/logger"
	"github.com/labstack/echo/v4"
)

// Handler exposes the engagement engine over HTTP.
type Handler struct {
	Svc  *Service
	Repo content.Repository
	Log  logger.Logger
}

func NewHandler(svc *Service, repo content.Repository, log logger.Logger) *Handler {
	return &Handler{Svc: svc, Repo: repo, Log: log.WithComponent("engagement")}
}

// ViewHandler registers a view on an item. Owners viewing their own
// content never count; for everyone else the view is fire-and-forget.
// POST /engagement/:kind/:id/view
func (h *Handler) ViewHandler(c echo.Context) error {
	kind, err := content.ParseKind(c.Param("kind"))
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidKind,
			"Content kind must be education or promotion.",
		))
	}
	id := c.Param("id")

	item, err := h.Repo.GetByID(c.Request().Context(), kind, id)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeContentNotFound,
				"Content no longer available.",
			))
		}
		h.Log.Error("Failed to fetch content for view", err, logger.ContentID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	viewerID, _ := c.Get("user_id").(int64)
	if viewerID != 0 && viewerID == item.OwnerID {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": true,
			"counted": false,
		})
	}
	if item.Status != content.StatusPublished {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeContentNotFound,
			"Content no longer available.",
		))
	}

	ok := h.Svc.AddView(c.Request().Context(), kind, id)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": ok,
		"counted": ok,
	})
}

// LikeHandler toggles the caller's like on an item. Requires identity;
// owners are blocked before the engine is reached.
// POST /engagement/:kind/:id/like
func (h *Handler) LikeHandler(c echo.Context) error {
	userID := c.Get("user_id").(int64)

	kind, err := content.ParseKind(c.Param("kind"))
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidKind,
			"Content kind must be education or promotion.",
		))
	}
	id := c.Param("id")

	item, err := h.Repo.GetByID(c.Request().Context(), kind, id)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeContentNotFound,
				"Content no longer available.",
			))
		}
		h.Log.Error("Failed to fetch content for like", err, logger.ContentID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	if item.OwnerID == userID {
		return apperrors.RespondWithError(c, apperrors.NewForbidden(
			apperrors.ErrCodeOwnContent,
			"You cannot like your own content.",
		))
	}
	if item.Status != content.StatusPublished {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeContentNotFound,
			"Content no longer available.",
		))
	}

	res := h.Svc.ToggleLike(c.Request().Context(), kind, id, userID)
	if !res.Success {
		// The item can vanish between the visibility check above and the
		// toggle; that is a 404, not a retryable failure.
		if errors.Is(res.Err, content.ErrNotFound) {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeContentNotFound,
				"Content no longer available.",
			))
		}
		return apperrors.RespondWithError(c, apperrors.NewServiceUnavailable(
			apperrors.ErrCodeToggleFailed,
			"Could not update like, please try again.",
			res.Err,
		))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"is_liked": res.IsLiked,
		"action":   res.Action,
	})
}

// ListLikesHandler returns the ids of everything the caller has liked.
// GET /likes
func (h *Handler) ListLikesHandler(c echo.Context) error {
	userID := c.Get("user_id").(int64)

	ids, err := h.Svc.LikedContentIDs(c.Request().Context(), userID)
	if err != nil {
		h.Log.Error("Failed to list likes", err, logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"liked_ids": ids})
}
