// Package storage provides an in-memory implementation of the content
// repository and engagement store contracts. It backs the test suites and
// local development; production uses the SQL implementations.
package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Rasaku-Space/be-culinary-platform/domain/content"
	"github.com/Rasaku-Space/be-culinary-platform/domain/engagement"
	"github.com/google/uuid"
)

// Memory holds content items and like records behind one mutex. Every
// multi-step mutation (like + counter, delete + cascade) runs under the
// lock, matching the atomic-batch guarantee of the SQL store.
type Memory struct {
	mu     sync.Mutex
	items  map[string]content.Item // keyed by id
	likes  []engagement.LikeRecord
	nextID int64
}

func NewMemory() *Memory {
	return &Memory{
		items:  make(map[string]content.Item),
		nextID: 1,
	}
}

// --- content.Repository ---

func (m *Memory) Create(ctx context.Context, item *content.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.Status == "" {
		item.Status = content.StatusDraft
	}
	m.items[item.ID] = *item
	return nil
}

func (m *Memory) GetByID(ctx context.Context, kind content.Kind, id string) (content.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok || item.Kind != kind {
		return content.Item{}, content.ErrNotFound
	}
	return item, nil
}

func (m *Memory) ListByOwner(ctx context.Context, kind content.Kind, ownerID int64) ([]content.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []content.Item
	for _, item := range m.items {
		if item.Kind == kind && item.OwnerID == ownerID {
			out = append(out, item)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *Memory) ListPublished(ctx context.Context, kind content.Kind, f content.ListFilters) ([]content.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []content.Item
	for _, item := range m.items {
		if item.Kind != kind || item.Status != content.StatusPublished {
			continue
		}
		if f.Category != "" && !strings.EqualFold(item.Category, f.Category) {
			continue
		}
		out = append(out, item)
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *Memory) Update(ctx context.Context, kind content.Kind, id string, req content.UpdateRequest) (content.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok || item.Kind != kind {
		return content.Item{}, content.ErrNotFound
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	if req.VideoURL != nil {
		item.VideoURL = *req.VideoURL
	}
	if req.VideoKey != nil {
		item.VideoKey = *req.VideoKey
	}
	if req.ThumbnailURL != nil {
		item.ThumbnailURL = *req.ThumbnailURL
	}
	if req.ThumbnailKey != nil {
		item.ThumbnailKey = *req.ThumbnailKey
	}
	if req.ReadTime != nil {
		item.ReadTime = *req.ReadTime
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.ImageKey != nil {
		item.ImageKey = *req.ImageKey
	}
	item.UpdatedAt = time.Now().UTC()

	m.items[id] = item
	return item, nil
}

func (m *Memory) Delete(ctx context.Context, kind content.Kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok || item.Kind != kind {
		return content.ErrNotFound
	}
	delete(m.items, id)

	kept := m.likes[:0]
	for _, rec := range m.likes {
		if rec.ContentID != id || rec.Kind != kind {
			kept = append(kept, rec)
		}
	}
	m.likes = kept
	return nil
}

func (m *Memory) IncrementField(ctx context.Context, kind content.Kind, id string, field content.CounterField, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.incrementLocked(kind, id, field, delta)
}

func (m *Memory) incrementLocked(kind content.Kind, id string, field content.CounterField, delta int64) error {
	item, ok := m.items[id]
	if !ok || item.Kind != kind {
		return content.ErrNotFound
	}
	switch field {
	case content.FieldLikes:
		item.Likes += delta
		if item.Likes < 0 {
			item.Likes = 0
		}
	case content.FieldViews:
		item.Views += delta
	default:
		return content.ErrNotFound
	}
	m.items[id] = item
	return nil
}

// --- engagement.Store ---

func (m *Memory) FindLike(ctx context.Context, userID int64, contentID string, kind content.Kind) (*engagement.LikeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range m.likes {
		if rec.UserID == userID && rec.ContentID == contentID && rec.Kind == kind {
			found := rec
			return &found, nil
		}
	}
	return nil, nil
}

func (m *Memory) AddLike(ctx context.Context, rec *engagement.LikeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.incrementLocked(rec.Kind, rec.ContentID, content.FieldLikes, 1); err != nil {
		return err
	}
	rec.ID = m.nextID
	m.nextID++
	rec.LikedAt = time.Now().UTC()
	m.likes = append(m.likes, *rec)
	return nil
}

func (m *Memory) RemoveLike(ctx context.Context, userID int64, contentID string, kind content.Kind) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	kept := m.likes[:0]
	for _, rec := range m.likes {
		if rec.UserID == userID && rec.ContentID == contentID && rec.Kind == kind {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	m.likes = kept

	if removed > 0 {
		// Item may be gone already; cleaning up the ledger is still right.
		_ = m.incrementLocked(kind, contentID, content.FieldLikes, -1)
	}
	return removed, nil
}

func (m *Memory) IncrementViews(ctx context.Context, kind content.Kind, contentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.incrementLocked(kind, contentID, content.FieldViews, 1)
}

func (m *Memory) ListLikedContentIDs(ctx context.Context, userID int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := []string{}
	for _, rec := range m.likes {
		if rec.UserID == userID {
			ids = append(ids, rec.ContentID)
		}
	}
	return ids, nil
}

// LikeCount reports ledger entries for one item; test helper for the
// counter-vs-ledger invariant.
func (m *Memory) LikeCount(contentID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, rec := range m.likes {
		if rec.ContentID == contentID {
			n++
		}
	}
	return n
}

func sortNewestFirst(items []content.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
