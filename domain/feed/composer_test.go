package feed_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Rasaku-Space/be-culinary-platform/domain/content"
	"github.com/Rasaku-Space/be-culinary-platform/domain/engagement"
	"github.com/Rasaku-Space/be-culinary-platform/domain/feed"
	"github.com/Rasaku-Space/be-culinary-platform/domain/storage"
	"github.com/Rasaku-Space/be-culinary-platform/domain/user"
	"github.com/Rasaku-Space/be-culinary-platform/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sellerID int64 = 10

func quietLogger() logger.Logger {
	logger.Init(logger.Config{
		Level:       logger.LevelError,
		Environment: "production",
		Output:      io.Discard,
	})
	return logger.Get()
}

// seedMemory creates three published education items owned by one seller.
// Creation timestamps are strictly increasing, so the latest-first order
// is "c", "b", "a".
func seedMemory(t *testing.T) *storage.Memory {
	t.Helper()
	mem := storage.NewMemory()

	for _, id := range []string{"a", "b", "c"} {
		item := content.Item{
			ID:        id,
			Kind:      content.KindEducation,
			OwnerID:   sellerID,
			OwnerName: "Warung Mak Yem",
			Title:     "Resep " + id,
			Category:  "Makanan Utama",
			Status:    content.StatusPublished,
		}
		require.NoError(t, mem.Create(context.Background(), &item))
		time.Sleep(time.Millisecond)
	}
	return mem
}

func newComposer(t *testing.T, mem *storage.Memory, viewer feed.Viewer) *feed.Composer {
	t.Helper()
	log := quietLogger()
	svc := engagement.NewService(mem, log)
	c := feed.NewComposer(mem, svc, viewer, content.KindEducation, log)
	require.NoError(t, c.Load(context.Background()))
	return c
}

func buyer(id int64) feed.Viewer {
	return feed.Viewer{ID: id, Role: user.RoleBuyer}
}

func TestLoadBuyerSeesPublishedOnly(t *testing.T) {
	mem := seedMemory(t)
	draft := content.Item{
		Kind: content.KindEducation, OwnerID: sellerID,
		Title: "Belum tayang", Status: content.StatusDraft,
	}
	require.NoError(t, mem.Create(context.Background(), &draft))

	c := newComposer(t, mem, buyer(1))
	assert.Len(t, c.Visible(), 3)
	for _, item := range c.Visible() {
		assert.Equal(t, content.StatusPublished, item.Status)
	}
}

func TestLoadPopulatesLikedSet(t *testing.T) {
	mem := seedMemory(t)
	log := quietLogger()
	svc := engagement.NewService(mem, log)
	res := svc.ToggleLike(context.Background(), content.KindEducation, "b", 1)
	require.True(t, res.Success)

	c := feed.NewComposer(mem, svc, buyer(1), content.KindEducation, log)
	require.NoError(t, c.Load(context.Background()))

	assert.True(t, c.Liked("b"))
	assert.False(t, c.Liked("a"))
}

func TestActivateOwnerDoesNotCountView(t *testing.T) {
	mem := seedMemory(t)
	c := newComposer(t, mem, feed.Viewer{ID: sellerID, Role: user.RoleSeller})

	item, err := c.Activate(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), item.Views)

	stored, err := mem.GetByID(context.Background(), content.KindEducation, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.Views)
}

func TestActivateNonOwnerCountsView(t *testing.T) {
	mem := seedMemory(t)
	c := newComposer(t, mem, buyer(1))

	item, err := c.Activate(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.Views)

	stored, err := mem.GetByID(context.Background(), content.KindEducation, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Views)

	// A second activation counts again; views measure impressions.
	item, err = c.Activate(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), item.Views)
}

func TestNavigationWrapsAround(t *testing.T) {
	mem := seedMemory(t)
	c := newComposer(t, mem, buyer(1))

	_, err := c.Activate(context.Background(), 2)
	require.NoError(t, err)

	_, err = c.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, c.CurrentIndex())

	_, err = c.Prev(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, c.CurrentIndex())
}

func TestNavigationEmptyFeed(t *testing.T) {
	c := newComposer(t, storage.NewMemory(), buyer(1))

	_, err := c.Next(context.Background())
	assert.ErrorIs(t, err, feed.ErrEmptyFeed)
	_, err = c.Activate(context.Background(), 0)
	assert.ErrorIs(t, err, feed.ErrEmptyFeed)
}

func TestGuestToggleLikePromptsSignIn(t *testing.T) {
	mem := seedMemory(t)
	c := newComposer(t, mem, feed.Viewer{})

	_, err := c.ToggleLike(context.Background())
	assert.ErrorIs(t, err, feed.ErrSignInRequired)
	assert.Equal(t, 0, mem.LikeCount("a"))
	assert.Equal(t, 0, mem.LikeCount("b"))
	assert.Equal(t, 0, mem.LikeCount("c"))
}

func TestOwnerToggleLikeBlocked(t *testing.T) {
	mem := seedMemory(t)
	c := newComposer(t, mem, feed.Viewer{ID: sellerID, Role: user.RoleSeller})

	_, err := c.ToggleLike(context.Background())
	assert.ErrorIs(t, err, feed.ErrOwnContent)
}

func TestToggleLikeUpdatesLocalState(t *testing.T) {
	mem := seedMemory(t)
	c := newComposer(t, mem, buyer(1))

	_, err := c.Activate(context.Background(), 0)
	require.NoError(t, err)
	current := c.Visible()[c.CurrentIndex()]

	res, err := c.ToggleLike(context.Background())
	require.NoError(t, err)
	assert.Equal(t, engagement.ActionAdded, res.Action)
	assert.True(t, c.Liked(current.ID))
	assert.Equal(t, current.Likes+1, c.Visible()[c.CurrentIndex()].Likes)

	res, err = c.ToggleLike(context.Background())
	require.NoError(t, err)
	assert.Equal(t, engagement.ActionRemoved, res.Action)
	assert.False(t, c.Liked(current.ID))
	assert.Equal(t, current.Likes, c.Visible()[c.CurrentIndex()].Likes)
}

func TestToggleLikeDeletedContent(t *testing.T) {
	mem := seedMemory(t)
	c := newComposer(t, mem, buyer(1))

	_, err := c.Activate(context.Background(), 0)
	require.NoError(t, err)
	gone := c.Visible()[c.CurrentIndex()]
	require.NoError(t, mem.Delete(context.Background(), content.KindEducation, gone.ID))

	_, err = c.ToggleLike(context.Background())
	assert.ErrorIs(t, err, feed.ErrUnavailable)
	assert.Len(t, c.Visible(), 2)
	for _, item := range c.Visible() {
		assert.NotEqual(t, gone.ID, item.ID)
	}
}

// toggleFailStore fails the ledger lookup so every toggle errors out.
type toggleFailStore struct {
	*storage.Memory
}

func (s *toggleFailStore) FindLike(ctx context.Context, userID int64, contentID string, kind content.Kind) (*engagement.LikeRecord, error) {
	return nil, errors.New("backend unavailable")
}

func TestToggleLikeFailureLeavesState(t *testing.T) {
	mem := seedMemory(t)
	log := quietLogger()
	svc := engagement.NewService(&toggleFailStore{Memory: mem}, log)
	c := feed.NewComposer(mem, svc, buyer(1), content.KindEducation, log)
	require.NoError(t, c.Load(context.Background()))

	before := c.Visible()[0]
	_, err := c.ToggleLike(context.Background())
	assert.ErrorIs(t, err, feed.ErrToggleFailed)
	assert.False(t, c.Liked(before.ID))
	assert.Equal(t, before.Likes, c.Visible()[0].Likes)
}

// likedFailStore fails the liked-set fetch on load.
type likedFailStore struct {
	*storage.Memory
}

func (s *likedFailStore) ListLikedContentIDs(ctx context.Context, userID int64) ([]string, error) {
	return nil, errors.New("backend unavailable")
}

func TestLoadToleratesLikedSetFailure(t *testing.T) {
	mem := seedMemory(t)
	log := quietLogger()
	svc := engagement.NewService(&likedFailStore{Memory: mem}, log)
	c := feed.NewComposer(mem, svc, buyer(1), content.KindEducation, log)

	require.NoError(t, c.Load(context.Background()))
	assert.Len(t, c.Visible(), 3)
	assert.False(t, c.Liked("a"))
}

// slowLikedStore delays the liked-set fetch well past the grace period.
type slowLikedStore struct {
	*storage.Memory
	delay time.Duration
}

func (s *slowLikedStore) ListLikedContentIDs(ctx context.Context, userID int64) ([]string, error) {
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
	}
	return s.Memory.ListLikedContentIDs(ctx, userID)
}

func TestLoadDoesNotWaitForSlowLikedSet(t *testing.T) {
	mem := seedMemory(t)
	log := quietLogger()
	svc := engagement.NewService(&slowLikedStore{Memory: mem, delay: 3 * time.Second}, log)
	c := feed.NewComposer(mem, svc, buyer(1), content.KindEducation, log)

	start := time.Now()
	require.NoError(t, c.Load(context.Background()))
	elapsed := time.Since(start)

	// The item list arrives without the liked set; the slow fetch is
	// abandoned after the grace period.
	assert.Less(t, elapsed, 2*time.Second)
	assert.Len(t, c.Visible(), 3)
	assert.False(t, c.Liked("a"))
}

func TestActivateDeletedContentRemovesItem(t *testing.T) {
	mem := seedMemory(t)
	c := newComposer(t, mem, buyer(1))

	gone := c.Visible()[1]
	require.NoError(t, mem.Delete(context.Background(), content.KindEducation, gone.ID))

	_, err := c.Activate(context.Background(), 1)
	assert.ErrorIs(t, err, feed.ErrUnavailable)
	assert.Len(t, c.Visible(), 2)
}

func TestSwitchKindResetsFiltersKeepsLikedSet(t *testing.T) {
	mem := seedMemory(t)
	promo := content.Item{
		Kind: content.KindPromotion, OwnerID: sellerID,
		Title: "Promo Nasi Goreng", Status: content.StatusPublished,
	}
	require.NoError(t, mem.Create(context.Background(), &promo))

	c := newComposer(t, mem, buyer(1))
	_, err := c.Activate(context.Background(), 1)
	require.NoError(t, err)
	_, err = c.ToggleLike(context.Background())
	require.NoError(t, err)
	likedID := c.Visible()[c.CurrentIndex()].ID

	c.SetSearch("resep")
	c.SetCategory("Makanan Utama")
	c.SetSort(feed.SortMostLiked)

	require.NoError(t, c.SwitchKind(context.Background(), content.KindPromotion))

	assert.Equal(t, content.KindPromotion, c.Kind())
	assert.Equal(t, feed.DefaultFilters(), c.Filters())
	assert.Equal(t, 0, c.CurrentIndex())
	assert.Len(t, c.Visible(), 1)
	assert.True(t, c.Liked(likedID))
}

func TestIndexClampAfterFilterShrink(t *testing.T) {
	mem := seedMemory(t)
	c := newComposer(t, mem, buyer(1))

	_, err := c.Activate(context.Background(), 2)
	require.NoError(t, err)

	// Narrow the view so the old cursor points past the end.
	c.SetSearch("Resep a")
	item, err := c.Activate(context.Background(), c.CurrentIndex())
	require.NoError(t, err)
	assert.Equal(t, "a", item.ID)
	assert.Equal(t, 0, c.CurrentIndex())
}
