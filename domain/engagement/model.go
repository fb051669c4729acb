package engagement

import (
	"time"

	"github.com/Rasaku-Space/be-culinary-platform/domain/content"
)

// Action reports which way a like toggle went.
type Action string

const (
	ActionAdded   Action = "added"
	ActionRemoved Action = "removed"
)

// LikeRecord is one entry in the like ledger: a single (user, content)
// relationship. Records are inserted and deleted, never updated.
type LikeRecord struct {
	ID        int64        `db:"id" json:"-"`
	UserID    int64        `db:"user_id" json:"user_id"`
	ContentID string       `db:"content_id" json:"content_id"`
	Kind      content.Kind `db:"kind" json:"kind"`
	LikedAt   time.Time    `db:"liked_at" json:"liked_at"`
}

// ToggleResult is the outcome of a like toggle. Success is false on remote
// failure; callers check it rather than receiving an error by contract.
type ToggleResult struct {
	Success bool   `json:"success"`
	IsLiked bool   `json:"is_liked"`
	Action  Action `json:"action,omitempty"`
	Err     error  `json:"-"`
}
