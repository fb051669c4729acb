package feed

import (
	"errors"
	"net/http"

	"github.com/Rasaku-Space/be-culinary-platform/domain/content"
	"github.com/Rasaku-Space/be-culinary-platform/domain/engagement"
	"github.com/Rasaku-Space/be-culinary-platform/domain/user"
	"github.com/Rasaku-Space/be-culinary-platform/pkg/apperrors"
	"github.com/Rasaku-Space/be-culinary-platform/pkg/logger"
	"github.com/labstack/echo/v4"
)

// Handler composes feeds over HTTP. Each request builds a fresh composer;
// the long-lived per-session state machine lives client side.
type Handler struct {
	Repo content.Repository
	Eng  *engagement.Service
	Log  logger.Logger
}

func NewHandler(repo content.Repository, eng *engagement.Service, log logger.Logger) *Handler {
	return &Handler{Repo: repo, Eng: eng, Log: log.WithComponent("feed")}
}

// FeedItem decorates a content item with the viewer's like state.
type FeedItem struct {
	content.Item
	IsLiked bool `json:"is_liked"`
}

// ListHandler returns the filtered, sorted feed for one kind.
// GET /feed?kind=&search=&category=&sort=
func (h *Handler) ListHandler(c echo.Context) error {
	kindParam := c.QueryParam("kind")
	if kindParam == "" {
		kindParam = string(content.KindEducation)
	}
	kind, err := content.ParseKind(kindParam)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidKind,
			"Content kind must be education or promotion.",
		))
	}

	sortKey, err := ParseSortKey(c.QueryParam("sort"))
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidSortKey,
			"Sort key must be latest, oldest, most_liked or most_viewed.",
		))
	}

	composer := NewComposer(h.Repo, h.Eng, viewerFromContext(c), kind, h.Log)
	composer.SetSearch(c.QueryParam("search"))
	composer.SetCategory(c.QueryParam("category"))
	composer.SetSort(sortKey)

	if err := composer.Load(c.Request().Context()); err != nil {
		h.Log.Error("Failed to load feed", err, logger.ContentKind(string(kind)))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	visible := composer.Visible()
	items := make([]FeedItem, 0, len(visible))
	for _, item := range visible {
		items = append(items, FeedItem{Item: item, IsLiked: composer.Liked(item.ID)})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"kind":  kind,
		"items": items,
		"total": len(items),
	})
}

// DetailHandler returns one item, visible to its owner or, when
// published, to anyone.
// GET /feed/:kind/:id
func (h *Handler) DetailHandler(c echo.Context) error {
	kind, err := content.ParseKind(c.Param("kind"))
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidKind,
			"Content kind must be education or promotion.",
		))
	}

	item, err := h.Repo.GetByID(c.Request().Context(), kind, c.Param("id"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeContentNotFound,
				"Content no longer available.",
			))
		}
		h.Log.Error("Failed to fetch content detail", err, logger.ContentID(c.Param("id")))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	viewer := viewerFromContext(c)
	if item.Status != content.StatusPublished && item.OwnerID != viewer.ID {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeContentNotFound,
			"Content no longer available.",
		))
	}

	isLiked := false
	if !viewer.Guest() {
		ids, err := h.Eng.LikedContentIDs(c.Request().Context(), viewer.ID)
		if err == nil {
			for _, id := range ids {
				if id == item.ID {
					isLiked = true
					break
				}
			}
		}
	}

	return c.JSON(http.StatusOK, FeedItem{Item: item, IsLiked: isLiked})
}

// viewerFromContext builds a Viewer from whatever identity the optional
// auth middleware extracted. Guests come through with a zero ID.
func viewerFromContext(c echo.Context) Viewer {
	v := Viewer{}
	if id, ok := c.Get("user_id").(int64); ok {
		v.ID = id
	}
	if role, ok := c.Get("role").(string); ok {
		v.Role = user.Role(role)
	}
	return v
}
