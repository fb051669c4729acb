package feed

import (
	"context"
	"errors"
	"time"

	"github.com/Rasaku-Space/be-culinary-platform/domain/content"
	"github.com/Rasaku-Space/be-culinary-platform/domain/engagement"
	"github.com/Rasaku-Space/be-culinary-platform/domain/user"
	"github.com/Rasaku-Space/be-culinary-platform/pkg/logger"
)

var (
	// ErrSignInRequired means the action needs a signed-in viewer. This is
	// a prompt, not a failure: the caller should offer authentication.
	ErrSignInRequired = errors.New("sign in required")
	// ErrOwnContent means the viewer tried to like their own item.
	ErrOwnContent = errors.New("cannot like own content")
	// ErrUnavailable means the item was deleted while on screen; it has
	// been dropped from the feed.
	ErrUnavailable = errors.New("content no longer available")
	// ErrEmptyFeed means navigation or activation hit an empty filtered
	// list.
	ErrEmptyFeed = errors.New("feed is empty")
	// ErrToggleFailed wraps a remote toggle failure; local state is left
	// unchanged and the action can simply be retried.
	ErrToggleFailed = errors.New("like toggle failed")
)

// Viewer identifies who is looking at the feed. A zero ID is a guest.
type Viewer struct {
	ID   int64
	Role user.Role
}

// Guest reports whether the viewer has no identity.
func (v Viewer) Guest() bool { return v.ID == 0 }

// Composer is the feed state machine for one viewer: the active kind, the
// per-kind item list, the viewer's liked set, the shared filter/sort
// configuration, and a cursor into the filtered view. It owns its state
// exclusively; it is not safe for concurrent use and is rebuilt from
// scratch per viewer session.
type Composer struct {
	repo   content.Repository
	eng    *engagement.Service
	log    logger.Logger
	viewer Viewer

	kind    content.Kind
	items   []content.Item
	liked   map[string]struct{}
	filters Filters
	current int
}

func NewComposer(repo content.Repository, eng *engagement.Service, viewer Viewer, kind content.Kind, log logger.Logger) *Composer {
	return &Composer{
		repo:    repo,
		eng:     eng,
		log:     log.WithComponent("feed"),
		viewer:  viewer,
		kind:    kind,
		liked:   make(map[string]struct{}),
		filters: DefaultFilters(),
	}
}

// likedSetGrace bounds how long Load waits for the liked set once the
// item list is ready. The liked set only decorates the feed, so a slow
// fetch must never hold the items back.
const likedSetGrace = 250 * time.Millisecond

// Load fetches the item list for the active kind and, for signed-in
// viewers, the liked set. The liked-set fetch runs concurrently and the
// item list never blocks on it: once the items are in, the liked set gets
// a short grace period, then a slow or failed fetch degrades to an empty
// set.
func (c *Composer) Load(ctx context.Context) error {
	type likedResult struct {
		ids []string
		err error
	}

	var likedCh chan likedResult
	if !c.viewer.Guest() {
		likedCh = make(chan likedResult, 1)
		go func() {
			ids, err := c.eng.LikedContentIDs(ctx, c.viewer.ID)
			likedCh <- likedResult{ids: ids, err: err}
		}()
	}

	var (
		items []content.Item
		err   error
	)
	if c.viewer.Role == user.RoleSeller {
		items, err = c.repo.ListByOwner(ctx, c.kind, c.viewer.ID)
	} else {
		items, err = c.repo.ListPublished(ctx, c.kind, content.ListFilters{})
	}
	if err != nil {
		return err
	}
	c.items = items

	if likedCh != nil {
		select {
		case res := <-likedCh:
			if res.err != nil {
				c.log.Warn("Liked set fetch failed, continuing with empty set",
					logger.UserID(c.viewer.ID),
					logger.Err(res.err),
				)
			} else {
				c.liked = make(map[string]struct{}, len(res.ids))
				for _, id := range res.ids {
					c.liked[id] = struct{}{}
				}
			}
		case <-time.After(likedSetGrace):
			c.log.Warn("Liked set fetch slow, continuing with empty set",
				logger.UserID(c.viewer.ID),
			)
		}
	}

	return nil
}

// SetSearch updates the search text. The visible list is derived, so
// there is nothing else to recompute.
func (c *Composer) SetSearch(q string) { c.filters.Search = q }

// SetCategory updates the category filter.
func (c *Composer) SetCategory(cat string) { c.filters.Category = cat }

// SetSort updates the sort key.
func (c *Composer) SetSort(k SortKey) { c.filters.Sort = k }

// Filters returns the current filter configuration.
func (c *Composer) Filters() Filters { return c.filters }

// Kind returns the active content kind.
func (c *Composer) Kind() content.Kind { return c.kind }

// CurrentIndex returns the cursor into the filtered list.
func (c *Composer) CurrentIndex() int { return c.current }

// Liked reports whether the viewer has liked the given item.
func (c *Composer) Liked(id string) bool {
	_, ok := c.liked[id]
	return ok
}

// Visible recomputes the filtered, sorted view. Pure function of the item
// list and filters; never mutated independently.
func (c *Composer) Visible() []content.Item {
	return Apply(c.items, c.filters)
}

// Activate opens the item at index i of the filtered list: it moves the
// cursor, refreshes the local copy from the store, and registers a view
// unless the viewer owns the item. The local views counter is bumped
// optimistically whether or not the remote call succeeds.
func (c *Composer) Activate(ctx context.Context, i int) (content.Item, error) {
	visible := c.Visible()
	if len(visible) == 0 {
		return content.Item{}, ErrEmptyFeed
	}
	// The filtered list may have shrunk since the caller picked an index;
	// clamp rather than fail.
	if i < 0 {
		i = 0
	}
	if i >= len(visible) {
		i = len(visible) - 1
	}
	c.current = i
	item := visible[i]

	fresh, err := c.repo.GetByID(ctx, item.Kind, item.ID)
	switch {
	case err == nil:
		// Sync local state with remote counters.
		c.replaceItem(fresh)
		item = fresh
	case errors.Is(err, content.ErrNotFound):
		c.removeItem(item.ID)
		return content.Item{}, ErrUnavailable
	default:
		// Transient failure: open with the local copy.
		c.log.Warn("Detail refresh failed, using local copy",
			logger.ContentID(item.ID),
			logger.Err(err),
		)
	}

	if c.viewer.ID != item.OwnerID {
		c.eng.AddView(ctx, item.Kind, item.ID)
		// Optimistic, no rollback: a missed remote view is acceptable.
		item.Views++
		c.replaceItem(item)
	}

	return item, nil
}

// Next moves to the next item of the filtered list, wrapping from last to
// first, and activates it.
func (c *Composer) Next(ctx context.Context) (content.Item, error) {
	visible := c.Visible()
	if len(visible) == 0 {
		return content.Item{}, ErrEmptyFeed
	}
	return c.Activate(ctx, (c.clamped(len(visible))+1)%len(visible))
}

// Prev moves to the previous item, wrapping from first to last, and
// activates it.
func (c *Composer) Prev(ctx context.Context) (content.Item, error) {
	visible := c.Visible()
	if len(visible) == 0 {
		return content.Item{}, ErrEmptyFeed
	}
	i := c.clamped(len(visible)) - 1
	if i < 0 {
		i = len(visible) - 1
	}
	return c.Activate(ctx, i)
}

// ToggleLike flips the viewer's like on the current item. Guests get a
// sign-in prompt, owners are blocked locally; on success the local
// counter and liked set are adjusted without a refetch, on failure local
// state is untouched.
func (c *Composer) ToggleLike(ctx context.Context) (engagement.ToggleResult, error) {
	if c.viewer.Guest() {
		return engagement.ToggleResult{}, ErrSignInRequired
	}

	visible := c.Visible()
	if len(visible) == 0 {
		return engagement.ToggleResult{}, ErrEmptyFeed
	}
	item := visible[c.clamped(len(visible))]

	if item.OwnerID == c.viewer.ID {
		return engagement.ToggleResult{}, ErrOwnContent
	}

	res := c.eng.ToggleLike(ctx, item.Kind, item.ID, c.viewer.ID)
	if !res.Success {
		if errors.Is(res.Err, content.ErrNotFound) {
			c.removeItem(item.ID)
			return res, ErrUnavailable
		}
		return res, ErrToggleFailed
	}

	if res.Action == engagement.ActionAdded {
		item.Likes++
		c.liked[item.ID] = struct{}{}
	} else {
		if item.Likes > 0 {
			item.Likes--
		}
		delete(c.liked, item.ID)
	}
	c.replaceItem(item)

	return res, nil
}

// SwitchKind changes the active kind, resets filters to defaults and the
// cursor to zero, and reloads. The liked set is viewer-scoped, not
// kind-scoped, so it survives the switch.
func (c *Composer) SwitchKind(ctx context.Context, kind content.Kind) error {
	c.kind = kind
	c.filters = DefaultFilters()
	c.current = 0
	return c.Load(ctx)
}

func (c *Composer) clamped(visibleLen int) int {
	if c.current >= visibleLen {
		c.current = visibleLen - 1
	}
	if c.current < 0 {
		c.current = 0
	}
	return c.current
}

func (c *Composer) replaceItem(item content.Item) {
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i] = item
			return
		}
	}
}

func (c *Composer) removeItem(id string) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}
