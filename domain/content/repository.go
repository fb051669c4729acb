package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CounterField names a counter column mutable through IncrementField.
// It is a closed set so field names never reach SQL unchecked.
type CounterField string

const (
	FieldLikes CounterField = "likes"
	FieldViews CounterField = "views"
)

// ListFilters narrows a published listing. Search and sort are applied by
// the feed pipeline, not pushed down to the store.
type ListFilters struct {
	Category string
}

// Repository is the content store contract. The SQL implementation is the
// production store; tests substitute the in-memory one.
type Repository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, kind Kind, id string) (Item, error)
	ListByOwner(ctx context.Context, kind Kind, ownerID int64) ([]Item, error)
	ListPublished(ctx context.Context, kind Kind, f ListFilters) ([]Item, error)
	Update(ctx context.Context, kind Kind, id string, req UpdateRequest) (Item, error)
	// Delete removes the item and cascades like-record cleanup in the same
	// transaction. Media cleanup is the caller's job (the authoring flow
	// owns the media host).
	Delete(ctx context.Context, kind Kind, id string) error
	// IncrementField atomically adjusts a single counter column.
	IncrementField(ctx context.Context, kind Kind, id string, field CounterField, delta int64) error
}

const itemColumns = `id, kind, owner_id, owner_name, title, description, category, status,
	likes, views, video_url, video_key, thumbnail_url, thumbnail_key, read_time,
	image_url, image_key, created_at, updated_at`

// SQLRepository implements Repository over MySQL.
type SQLRepository struct {
	db *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, item *Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.Status == "" {
		item.Status = StatusDraft
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO content_items
			(id, kind, owner_id, owner_name, title, description, category, status,
			 likes, views, video_url, video_key, thumbnail_url, thumbnail_key, read_time,
			 image_url, image_key, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, 0, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Kind, item.OwnerID, item.OwnerName, item.Title, item.Description,
		item.Category, item.Status, item.VideoURL, item.VideoKey, item.ThumbnailURL,
		item.ThumbnailKey, item.ReadTime, item.ImageURL, item.ImageKey,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert content item: %w", err)
	}
	return nil
}

func (r *SQLRepository) GetByID(ctx context.Context, kind Kind, id string) (Item, error) {
	var item Item
	err := r.db.GetContext(ctx, &item, `
		SELECT `+itemColumns+`
		FROM content_items
		WHERE kind = ? AND id = ?`, kind, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, fmt.Errorf("get content item: %w", err)
	}
	return item, nil
}

func (r *SQLRepository) ListByOwner(ctx context.Context, kind Kind, ownerID int64) ([]Item, error) {
	items := []Item{}
	err := r.db.SelectContext(ctx, &items, `
		SELECT `+itemColumns+`
		FROM content_items
		WHERE kind = ? AND owner_id = ?
		ORDER BY created_at DESC`, kind, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list content by owner: %w", err)
	}
	return items, nil
}

func (r *SQLRepository) ListPublished(ctx context.Context, kind Kind, f ListFilters) ([]Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM content_items
		WHERE kind = ? AND status = ?`
	args := []interface{}{kind, StatusPublished}
	if f.Category != "" {
		query += ` AND LOWER(category) = LOWER(?)`
		args = append(args, f.Category)
	}
	query += ` ORDER BY created_at DESC`

	items := []Item{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list published content: %w", err)
	}
	return items, nil
}

func (r *SQLRepository) Update(ctx context.Context, kind Kind, id string, req UpdateRequest) (Item, error) {
	item, err := r.GetByID(ctx, kind, id)
	if err != nil {
		return Item{}, err
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

	res, err := r.db.ExecContext(ctx, `
		UPDATE content_items
		SET title = ?, description = ?, category = ?, status = ?,
			video_url = ?, video_key = ?, thumbnail_url = ?, thumbnail_key = ?,
			read_time = ?, image_url = ?, image_key = ?, updated_at = ?
		WHERE kind = ? AND id = ?`,
		item.Title, item.Description, item.Category, item.Status,
		item.VideoURL, item.VideoKey, item.ThumbnailURL, item.ThumbnailKey,
		item.ReadTime, item.ImageURL, item.ImageKey, item.UpdatedAt,
		kind, id,
	)
	if err != nil {
		return Item{}, fmt.Errorf("update content item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Item{}, ErrNotFound
	}
	return item, nil
}

func (r *SQLRepository) Delete(ctx context.Context, kind Kind, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer tx.Rollback()

	// Like records are jointly owned by the item; they go with it.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM like_records WHERE content_id = ? AND kind = ?`, id, kind); err != nil {
		return fmt.Errorf("delete like records: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM content_items WHERE kind = ? AND id = ?`, kind, id)
	if err != nil {
		return fmt.Errorf("delete content item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

func (r *SQLRepository) IncrementField(ctx context.Context, kind Kind, id string, field CounterField, delta int64) error {
	switch field {
	case FieldLikes, FieldViews:
	default:
		return fmt.Errorf("invalid counter field %q", field)
	}

	// Counter bumps deliberately leave updated_at alone; it tracks
	// authoring mutations only.
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`
		UPDATE content_items
		SET %s = %s + ?
		WHERE kind = ? AND id = ?`, field, field),
		delta, kind, id,
	)
	if err != nil {
		return fmt.Errorf("increment %s: %w", field, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
