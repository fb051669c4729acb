package engagement_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/Rasaku-Space/be-culinary-platform/domain/content"
	"github.com/Rasaku-Space/be-culinary-platform/domain/engagement"
	"github.com/Rasaku-Space/be-culinary-platform/domain/storage"
	"github.com/Rasaku-Space/be-culinary-platform/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*engagement.Service, *storage.Memory) {
	t.Helper()
	logger.Init(logger.Config{
		Level:       logger.LevelError,
		Environment: "production",
		Output:      io.Discard,
	})
	mem := storage.NewMemory()
	return engagement.NewService(mem, logger.Get()), mem
}

func seedItem(t *testing.T, mem *storage.Memory, likes int64) content.Item {
	t.Helper()
	item := content.Item{
		Kind:    content.KindEducation,
		OwnerID: 10,
		Title:   "Cara Membuat Rendang",
		Status:  content.StatusPublished,
		Likes:   likes,
	}
	require.NoError(t, mem.Create(context.Background(), &item))
	return item
}

func TestToggleLikeAddThenRemove(t *testing.T) {
	svc, mem := newService(t)
	item := seedItem(t, mem, 0)
	ctx := context.Background()

	res := svc.ToggleLike(ctx, item.Kind, item.ID, 1)
	require.True(t, res.Success)
	assert.True(t, res.IsLiked)
	assert.Equal(t, engagement.ActionAdded, res.Action)

	stored, err := mem.GetByID(ctx, item.Kind, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Likes)
	assert.Equal(t, 1, mem.LikeCount(item.ID))

	res = svc.ToggleLike(ctx, item.Kind, item.ID, 1)
	require.True(t, res.Success)
	assert.False(t, res.IsLiked)
	assert.Equal(t, engagement.ActionRemoved, res.Action)

	stored, err = mem.GetByID(ctx, item.Kind, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.Likes)
	assert.Equal(t, 0, mem.LikeCount(item.ID))
}

func TestToggleLikeDoubleToggleRestoresCounter(t *testing.T) {
	svc, mem := newService(t)
	item := seedItem(t, mem, 7)
	ctx := context.Background()

	svc.ToggleLike(ctx, item.Kind, item.ID, 1)
	svc.ToggleLike(ctx, item.Kind, item.ID, 1)

	stored, err := mem.GetByID(ctx, item.Kind, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), stored.Likes)
}

func TestToggleLikeCounterMatchesLedger(t *testing.T) {
	svc, mem := newService(t)
	item := seedItem(t, mem, 0)
	ctx := context.Background()

	for userID := int64(1); userID <= 5; userID++ {
		res := svc.ToggleLike(ctx, item.Kind, item.ID, userID)
		require.True(t, res.Success)
	}
	svc.ToggleLike(ctx, item.Kind, item.ID, 3)

	stored, err := mem.GetByID(ctx, item.Kind, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stored.Likes)
	assert.Equal(t, 4, mem.LikeCount(item.ID))
}

func TestToggleLikeConcurrentSameUser(t *testing.T) {
	svc, mem := newService(t)
	item := seedItem(t, mem, 0)
	ctx := context.Background()

	const rounds = 20
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.ToggleLike(ctx, item.Kind, item.ID, 1)
		}()
	}
	wg.Wait()

	// An even number of serialized toggles lands back on "not liked" and
	// the counter agrees with the ledger.
	stored, err := mem.GetByID(ctx, item.Kind, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.Likes)
	assert.Equal(t, 0, mem.LikeCount(item.ID))
}

func TestToggleLikeMissingContent(t *testing.T) {
	svc, _ := newService(t)

	res := svc.ToggleLike(context.Background(), content.KindEducation, "nope", 1)
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, content.ErrNotFound)
}

// lookupFailStore fails the ledger lookup.
type lookupFailStore struct {
	*storage.Memory
}

func (s *lookupFailStore) FindLike(ctx context.Context, userID int64, contentID string, kind content.Kind) (*engagement.LikeRecord, error) {
	return nil, errors.New("backend unavailable")
}

func TestToggleLikeLookupFailure(t *testing.T) {
	_, mem := newService(t)
	item := seedItem(t, mem, 3)
	svc := engagement.NewService(&lookupFailStore{Memory: mem}, logger.Get())

	res := svc.ToggleLike(context.Background(), item.Kind, item.ID, 1)
	assert.False(t, res.Success)
	assert.Error(t, res.Err)

	stored, err := mem.GetByID(context.Background(), item.Kind, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stored.Likes)
}

func TestAddViewCountsEveryCall(t *testing.T) {
	svc, mem := newService(t)
	item := seedItem(t, mem, 0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, svc.AddView(ctx, item.Kind, item.ID))
	}

	stored, err := mem.GetByID(ctx, item.Kind, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stored.Views)
}

func TestAddViewMissingContent(t *testing.T) {
	svc, _ := newService(t)
	assert.False(t, svc.AddView(context.Background(), content.KindEducation, "nope"))
}

func TestLikedContentIDs(t *testing.T) {
	svc, mem := newService(t)
	first := seedItem(t, mem, 0)
	second := seedItem(t, mem, 0)
	ctx := context.Background()

	svc.ToggleLike(ctx, first.Kind, first.ID, 1)
	svc.ToggleLike(ctx, second.Kind, second.ID, 1)
	svc.ToggleLike(ctx, first.Kind, first.ID, 2)

	ids, err := svc.LikedContentIDs(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first.ID, second.ID}, ids)

	ids, err = svc.LikedContentIDs(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
