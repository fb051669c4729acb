package feed

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Rasaku-Space/be-culinary-platform/domain/content"
)

// SortKey selects the feed ordering.
type SortKey string

const (
	SortLatest     SortKey = "latest"
	SortOldest     SortKey = "oldest"
	SortMostLiked  SortKey = "most_liked"
	SortMostViewed SortKey = "most_viewed"
)

// ParseSortKey validates a sort key from a query parameter; empty means
// the default (latest first).
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortLatest, nil
	}
	switch SortKey(s) {
	case SortLatest, SortOldest, SortMostLiked, SortMostViewed:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("invalid sort key %q", s)
}

// Filters is the shared filter/sort configuration of a feed. The zero
// value is not valid; use DefaultFilters.
type Filters struct {
	Search   string
	Category string
	Sort     SortKey
}

// DefaultFilters returns the reset state: no search, no category, latest
// first.
func DefaultFilters() Filters {
	return Filters{Sort: SortLatest}
}

// Apply runs the filter/sort pipeline over a fixed item list. It is a
// pure function: the input is never mutated and the same inputs always
// produce the same output ordering and membership.
func Apply(items []content.Item, f Filters) []content.Item {
	out := make([]content.Item, 0, len(items))
	for _, item := range items {
		if !matchesSearch(item, f.Search) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(item.Category, f.Category) {
			continue
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch f.Sort {
		case SortOldest:
			return a.CreatedAt.Before(b.CreatedAt)
		case SortMostLiked:
			return a.Likes > b.Likes
		case SortMostViewed:
			return a.Views > b.Views
		default: // SortLatest
			return a.CreatedAt.After(b.CreatedAt)
		}
	})

	return out
}

// matchesSearch does a case-insensitive substring match against title,
// description, owner display name and category. Empty search passes
// everything.
func matchesSearch(item content.Item, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, field := range []string{item.Title, item.Description, item.OwnerName, item.Category} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
