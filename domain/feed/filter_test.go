package feed_test

import (
	"testing"
	"time"

	"github.com/Rasaku-Space/be-culinary-platform/domain/content"
	"github.com/Rasaku-Space/be-culinary-platform/domain/feed"
	"github.com/google/go-cmp/cmp"
)

func fixtureItems() []content.Item {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []content.Item{
		{
			ID: "a", Title: "Cara Membuat Nasi Goreng", Description: "Resep nasi goreng kampung",
			OwnerName: "Warung Mak Yem", Category: "Makanan Utama",
			Likes: 3, Views: 100, CreatedAt: base,
		},
		{
			ID: "b", Title: "Rahasia Rendang Empuk", Description: "Teknik memasak rendang",
			OwnerName: "Dapur Padang", Category: "Makanan Utama",
			Likes: 1, Views: 300, CreatedAt: base.Add(1 * time.Hour),
		},
		{
			ID: "c", Title: "Es Teh Manis Segar", Description: "Minuman pendamping nasi",
			OwnerName: "Kedai Teh", Category: "Minuman",
			Likes: 5, Views: 200, CreatedAt: base.Add(2 * time.Hour),
		},
	}
}

func ids(items []content.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		filters feed.Filters
		want    []string
	}{
		{
			name:    "default is latest first",
			filters: feed.DefaultFilters(),
			want:    []string{"c", "b", "a"},
		},
		{
			name:    "oldest first",
			filters: feed.Filters{Sort: feed.SortOldest},
			want:    []string{"a", "b", "c"},
		},
		{
			name:    "most liked orders 5 3 1",
			filters: feed.Filters{Sort: feed.SortMostLiked},
			want:    []string{"c", "a", "b"},
		},
		{
			name:    "most viewed",
			filters: feed.Filters{Sort: feed.SortMostViewed},
			want:    []string{"b", "c", "a"},
		},
		{
			name:    "search matches title and description case-insensitively",
			filters: feed.Filters{Search: "NASI", Sort: feed.SortLatest},
			want:    []string{"c", "a"},
		},
		{
			name:    "search matches owner name",
			filters: feed.Filters{Search: "padang", Sort: feed.SortLatest},
			want:    []string{"b"},
		},
		{
			name:    "category filter is exact and case-insensitive",
			filters: feed.Filters{Category: "minuman", Sort: feed.SortLatest},
			want:    []string{"c"},
		},
		{
			name:    "search and category combine",
			filters: feed.Filters{Search: "nasi", Category: "Makanan Utama", Sort: feed.SortLatest},
			want:    []string{"a"},
		},
		{
			name:    "no match yields empty list",
			filters: feed.Filters{Search: "pizza", Sort: feed.SortLatest},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(feed.Apply(fixtureItems(), tt.filters))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Apply() order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyIsPure(t *testing.T) {
	items := fixtureItems()
	f := feed.Filters{Search: "nasi", Sort: feed.SortMostLiked}

	first := feed.Apply(items, f)
	second := feed.Apply(items, f)

	if diff := cmp.Diff(ids(first), ids(second)); diff != "" {
		t.Errorf("Apply() not deterministic (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(ids(fixtureItems()), ids(items)); diff != "" {
		t.Errorf("Apply() mutated its input (-want +got):\n%s", diff)
	}
}

func TestApplyStableForEqualKeys(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	items := []content.Item{
		{ID: "x", Likes: 2, CreatedAt: base},
		{ID: "y", Likes: 2, CreatedAt: base},
		{ID: "z", Likes: 2, CreatedAt: base},
	}

	got := ids(feed.Apply(items, feed.Filters{Sort: feed.SortMostLiked}))
	if diff := cmp.Diff([]string{"x", "y", "z"}, got); diff != "" {
		t.Errorf("equal sort keys should keep input order (-want +got):\n%s", diff)
	}
}

func TestParseSortKey(t *testing.T) {
	got, err := feed.ParseSortKey("")
	if err != nil || got != feed.SortLatest {
		t.Errorf("ParseSortKey(\"\") = %q, %v; want latest, nil", got, err)
	}
	if _, err := feed.ParseSortKey("trending"); err == nil {
		t.Error("ParseSortKey(\"trending\") should fail")
	}
}
