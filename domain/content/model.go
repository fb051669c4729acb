package content

import (
	"errors"
	"fmt"
	"time"
)

// Kind distinguishes the two content types sharing engagement mechanics.
type Kind string

const (
	// KindEducation is recipe/tutorial content with a video and read time.
	KindEducation Kind = "education"
	// KindPromotion is promotional content with a single image.
	KindPromotion Kind = "promotion"
)

// ParseKind validates a kind string coming from a route or query parameter.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindEducation, KindPromotion:
		return Kind(s), nil
	}
	return "", fmt.Errorf("invalid content kind %q", s)
}

// Status controls content visibility. Only published items are visible
// to anyone other than the owner.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// ErrNotFound is returned when a content item does not exist (or was
// deleted concurrently).
var ErrNotFound = errors.New("content not found")

// Item is a single content item of either kind. Likes and views are
// denormalized counters; they are mutated only through the engagement
// service, never by authoring flows.
type Item struct {
	ID          string `db:"id" json:"id"`
	Kind        Kind   `db:"kind" json:"kind"`
	OwnerID     int64  `db:"owner_id" json:"owner_id"`
	OwnerName   string `db:"owner_name" json:"owner_name"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
	Category    string `db:"category" json:"category"`
	Status      Status `db:"status" json:"status"`
	Likes       int64  `db:"likes" json:"likes"`
	Views       int64  `db:"views" json:"views"`

	// Education only
	VideoURL     string `db:"video_url" json:"video_url,omitempty"`
	VideoKey     string `db:"video_key" json:"-"`
	ThumbnailURL string `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	ThumbnailKey string `db:"thumbnail_key" json:"-"`
	ReadTime     int    `db:"read_time" json:"read_time,omitempty"`

	// Promotion only
	ImageURL string `db:"image_url" json:"image_url,omitempty"`
	ImageKey string `db:"image_key" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// MediaKeys returns the media host keys attached to this item, for
// cascade deletion.
func (i Item) MediaKeys() []string {
	var keys []string
	for _, k := range []string{i.VideoKey, i.ThumbnailKey, i.ImageKey} {
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// CreateRequest is the authoring payload for a new item.
type CreateRequest struct {
	Kind        Kind   `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      Status `json:"status"`

	VideoURL     string `json:"video_url"`
	VideoKey     string `json:"video_key"`
	ThumbnailURL string `json:"thumbnail_url"`
	ThumbnailKey string `json:"thumbnail_key"`
	ReadTime     int    `json:"read_time"`

	ImageURL string `json:"image_url"`
	ImageKey string `json:"image_key"`
}

// UpdateRequest is the authoring payload for editing an item. Nil fields
// are left unchanged.
type UpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Status      *Status `json:"status"`

	VideoURL     *string `json:"video_url"`
	VideoKey     *string `json:"video_key"`
	ThumbnailURL *string `json:"thumbnail_url"`
	ThumbnailKey *string `json:"thumbnail_key"`
	ReadTime     *int    `json:"read_time"`

	ImageURL *string `json:"image_url"`
	ImageKey *string `json:"image_key"`
}
