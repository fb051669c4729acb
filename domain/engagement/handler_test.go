package engagement_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rasaku-Space/be-culinary-platform/domain/content"
	"github.com/Rasaku-Space/be-culinary-platform/domain/engagement"
	"github.com/Rasaku-Space/be-culinary-platform/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staleRepo keeps serving an item the engagement store has already lost,
// reproducing a delete racing a like.
type staleRepo struct {
	content.Repository
	item content.Item
}

func (r *staleRepo) GetByID(ctx context.Context, kind content.Kind, id string) (content.Item, error) {
	return r.item, nil
}

func likeRequest(t *testing.T, h *engagement.Handler, userID int64) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/engagement/education/gone/like", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("kind", "id")
	c.SetParamValues("education", "gone")
	c.Set("user_id", userID)

	require.NoError(t, h.LikeHandler(c))
	return rec
}

func TestLikeHandlerContentDeletedDuringToggle(t *testing.T) {
	svc, _ := newService(t)
	repo := &staleRepo{item: content.Item{
		ID:      "gone",
		Kind:    content.KindEducation,
		OwnerID: 10,
		Status:  content.StatusPublished,
	}}
	h := engagement.NewHandler(svc, repo, logger.Get())

	rec := likeRequest(t, h, 1)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "RESOURCE_CONTENT_NOT_FOUND")
}

func TestLikeHandlerToggleFailure(t *testing.T) {
	_, mem := newService(t)
	item := seedItem(t, mem, 0)
	svc := engagement.NewService(&lookupFailStore{Memory: mem}, logger.Get())
	h := engagement.NewHandler(svc, mem, logger.Get())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/engagement/education/x/like", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("kind", "id")
	c.SetParamValues(string(item.Kind), item.ID)
	c.Set("user_id", int64(1))

	require.NoError(t, h.LikeHandler(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "ENGAGEMENT_TOGGLE_FAILED")
}
