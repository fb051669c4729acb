package engagement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Rasaku-Space/be-culinary-platform/domain/content"
	"github.com/jmoiron/sqlx"
)

// Store is the engagement engine's view of the remote backend: the like
// ledger plus the counter mutation primitive. AddLike and RemoveLike
// commit the ledger change and the counter change as one atomic batch;
// that mirrors what the backend's transaction primitive guarantees, and
// nothing more.
type Store interface {
	FindLike(ctx context.Context, userID int64, contentID string, kind content.Kind) (*LikeRecord, error)
	// AddLike inserts a ledger record and increments the item's likes
	// counter in one transaction. LikedAt is assigned by the store.
	AddLike(ctx context.Context, rec *LikeRecord) error
	// RemoveLike deletes every matching ledger record (defensively plural,
	// at most one should exist) and decrements likes by one, in one
	// transaction. Returns the number of records removed.
	RemoveLike(ctx context.Context, userID int64, contentID string, kind content.Kind) (int64, error)
	IncrementViews(ctx context.Context, kind content.Kind, contentID string) error
	ListLikedContentIDs(ctx context.Context, userID int64) ([]string, error)
}

// SQLStore implements Store over MySQL.
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) FindLike(ctx context.Context, userID int64, contentID string, kind content.Kind) (*LikeRecord, error) {
	var rec LikeRecord
	err := s.db.GetContext(ctx, &rec, `
		SELECT id, user_id, content_id, kind, liked_at
		FROM like_records
		WHERE user_id = ? AND content_id = ? AND kind = ?
		LIMIT 1`, userID, contentID, kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find like record: %w", err)
	}
	return &rec, nil
}

func (s *SQLStore) AddLike(ctx context.Context, rec *LikeRecord) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin like tx: %w", err)
	}
	defer tx.Rollback()

	rec.LikedAt = time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO like_records (user_id, content_id, kind, liked_at)
		VALUES (?, ?, ?, ?)`,
		rec.UserID, rec.ContentID, rec.Kind, rec.LikedAt)
	if err != nil {
		return fmt.Errorf("insert like record: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		rec.ID = id
	}

	bumped, err := tx.ExecContext(ctx, `
		UPDATE content_items SET likes = likes + 1
		WHERE kind = ? AND id = ?`, rec.Kind, rec.ContentID)
	if err != nil {
		return fmt.Errorf("increment likes: %w", err)
	}
	if n, _ := bumped.RowsAffected(); n == 0 {
		return content.ErrNotFound
	}

	return tx.Commit()
}

func (s *SQLStore) RemoveLike(ctx context.Context, userID int64, contentID string, kind content.Kind) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin unlike tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		DELETE FROM like_records
		WHERE user_id = ? AND content_id = ? AND kind = ?`,
		userID, contentID, kind)
	if err != nil {
		return 0, fmt.Errorf("delete like records: %w", err)
	}
	removed, _ := res.RowsAffected()

	// The counter may already be zero, or the item gone entirely, while a
	// ledger record still pointed at it. Cleaning up the record is the
	// right outcome either way, so the decrement is not checked.
	if _, err := tx.ExecContext(ctx, `
		UPDATE content_items SET likes = likes - 1
		WHERE kind = ? AND id = ? AND likes > 0`, kind, contentID); err != nil {
		return 0, fmt.Errorf("decrement likes: %w", err)
	}

	return removed, tx.Commit()
}

func (s *SQLStore) IncrementViews(ctx context.Context, kind content.Kind, contentID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE content_items SET views = views + 1
		WHERE kind = ? AND id = ?`, kind, contentID)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return content.ErrNotFound
	}
	return nil
}

func (s *SQLStore) ListLikedContentIDs(ctx context.Context, userID int64) ([]string, error) {
	ids := []string{}
	err := s.db.SelectContext(ctx, &ids, `
		SELECT content_id FROM like_records
		WHERE user_id = ?
		ORDER BY liked_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list liked content ids: %w", err)
	}
	return ids, nil
}
