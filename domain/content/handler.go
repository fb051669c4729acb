package content

import (
	"context"
	"errors"
	"net/http"

	"github.com/Rasaku-Space/be-culinary-platform/pkg/apperrors"
	"github.com/Rasaku-Space/be-culinary-platform/pkg/logger"
	"github.com/labstack/echo/v4"
)

// MediaDeleter is the slice of the media host the delete cascade needs.
type MediaDeleter interface {
	Delete(ctx context.Context, key string) error
}

// Handler exposes the authoring pass-throughs for sellers. These are thin
// by design; the store owns all persistence semantics.
type Handler struct {
	Repo  Repository
	Media MediaDeleter
	Log   logger.Logger
}

func NewHandler(repo Repository, media MediaDeleter, log logger.Logger) *Handler {
	return &Handler{Repo: repo, Media: media, Log: log.WithComponent("content")}
}

// CreateHandler creates a new content item owned by the calling seller.
// POST /content
func (h *Handler) CreateHandler(c echo.Context) error {
	userID := c.Get("user_id").(int64)
	ownerName, _ := c.Get("display_name").(string)

	req := new(CreateRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	if _, err := ParseKind(string(req.Kind)); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidKind,
			"Content kind must be education or promotion.",
		))
	}
	if req.Title == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"Title is required.",
		))
	}

	item := &Item{
		Kind:         req.Kind,
		OwnerID:      userID,
		OwnerName:    ownerName,
		Title:        SanitizeTitle(req.Title),
		Description:  SanitizeDescription(req.Description),
		Category:     req.Category,
		Status:       req.Status,
		VideoURL:     req.VideoURL,
		VideoKey:     req.VideoKey,
		ThumbnailURL: req.ThumbnailURL,
		ThumbnailKey: req.ThumbnailKey,
		ReadTime:     req.ReadTime,
		ImageURL:     req.ImageURL,
		ImageKey:     req.ImageKey,
	}

	if err := h.Repo.Create(c.Request().Context(), item); err != nil {
		h.Log.Error("Failed to create content", err, logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	h.Log.Info("Content created",
		logger.UserID(userID),
		logger.ContentID(item.ID),
		logger.ContentKind(string(item.Kind)),
	)
	return apperrors.RespondWithCreated(c, item)
}

// ListMineHandler lists the calling seller's own items of one kind,
// drafts included.
// GET /content/:kind
func (h *Handler) ListMineHandler(c echo.Context) error {
	userID := c.Get("user_id").(int64)

	kind, err := ParseKind(c.Param("kind"))
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidKind,
			"Content kind must be education or promotion.",
		))
	}

	items, err := h.Repo.ListByOwner(c.Request().Context(), kind, userID)
	if err != nil {
		h.Log.Error("Failed to list own content", err, logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"items": items})
}

// UpdateHandler edits an item owned by the calling seller.
// PUT /content/:kind/:id
func (h *Handler) UpdateHandler(c echo.Context) error {
	userID := c.Get("user_id").(int64)

	kind, err := ParseKind(c.Param("kind"))
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidKind,
			"Content kind must be education or promotion.",
		))
	}
	id := c.Param("id")

	item, err := h.ownedItem(c, kind, id, userID)
	if err != nil {
		return err
	}

	req := new(UpdateRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}
	if req.Title != nil {
		clean := SanitizeTitle(*req.Title)
		req.Title = &clean
	}
	if req.Description != nil {
		clean := SanitizeDescription(*req.Description)
		req.Description = &clean
	}

	updated, err := h.Repo.Update(c.Request().Context(), kind, id, *req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeContentNotFound,
				"Content not found.",
			))
		}
		h.Log.Error("Failed to update content", err, logger.ContentID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	h.Log.Info("Content updated", logger.UserID(userID), logger.ContentID(item.ID))
	return c.JSON(http.StatusOK, updated)
}

// DeleteHandler deletes an item owned by the calling seller. Like records
// go in the same transaction; media cleanup is best effort afterwards.
// DELETE /content/:kind/:id
func (h *Handler) DeleteHandler(c echo.Context) error {
	userID := c.Get("user_id").(int64)

	kind, err := ParseKind(c.Param("kind"))
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidKind,
			"Content kind must be education or promotion.",
		))
	}
	id := c.Param("id")

	item, err := h.ownedItem(c, kind, id, userID)
	if err != nil {
		return err
	}

	if err := h.Repo.Delete(c.Request().Context(), kind, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeContentNotFound,
				"Content not found.",
			))
		}
		h.Log.Error("Failed to delete content", err, logger.ContentID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	for _, key := range item.MediaKeys() {
		if err := h.Media.Delete(c.Request().Context(), key); err != nil {
			// The item is already gone; an orphaned media object is not
			// worth failing the request over.
			h.Log.Warn("Failed to delete media object",
				logger.ContentID(id),
				logger.MediaKey(key),
				logger.Err(err),
			)
		}
	}

	h.Log.Info("Content deleted",
		logger.UserID(userID),
		logger.ContentID(id),
		logger.ContentKind(string(kind)),
	)
	return c.JSON(http.StatusOK, map[string]string{"message": "Content deleted successfully."})
}

// ownedItem fetches an item and rejects callers who do not own it.
func (h *Handler) ownedItem(c echo.Context, kind Kind, id string, userID int64) (Item, error) {
	item, err := h.Repo.GetByID(c.Request().Context(), kind, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Item{}, apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeContentNotFound,
				"Content not found.",
			))
		}
		h.Log.Error("Failed to fetch content", err, logger.ContentID(id))
		return Item{}, apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}
	if item.OwnerID != userID {
		return Item{}, apperrors.RespondWithError(c, apperrors.NewForbidden(
			apperrors.ErrCodeNotOwner,
			"You can only manage your own content.",
		))
	}
	return item, nil
}
