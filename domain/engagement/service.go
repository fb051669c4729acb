package engagement

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Rasaku-Space/be-culinary-platform/domain/content"
	"github.com/Rasaku-Space/be-culinary-platform/pkg/logger"
)

// defaultOpTimeout bounds a single remote operation. The backend this
// replaces hung forever on a dead connection; here a hung call fails the
// interaction instead.
const defaultOpTimeout = 5 * time.Second

// Service is the engagement engine. It keeps the denormalized likes
// counter consistent with the like ledger.
//
// The ledger lookup and the ledger+counter batch are two separate store
// calls, so two concurrent toggles by the same user could both observe
// "not liked" and double-insert. Toggles are therefore serialized per
// (user, content) key before they reach the store, which closes that
// window within a single process.
type Service struct {
	store   Store
	log     logger.Logger
	timeout time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(store Store, log logger.Logger) *Service {
	return &Service{
		store:   store,
		log:     log.WithComponent("engagement"),
		timeout: defaultOpTimeout,
		locks:   make(map[string]*sync.Mutex),
	}
}

// AddView registers one view on an item. Fire-and-forget from the
// caller's perspective: failures are logged and reported as false, never
// propagated, since a missed view count is not business-critical. There
// is no de-duplication; views measure impressions, not unique reach.
func (s *Service) AddView(ctx context.Context, kind content.Kind, contentID string) bool {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.store.IncrementViews(ctx, kind, contentID); err != nil {
		s.log.WithContext(ctx).Warn("Failed to add view",
			logger.ContentID(contentID),
			logger.ContentKind(string(kind)),
			logger.Err(err),
		)
		return false
	}
	return true
}

// ToggleLike flips the (user, content) like state: inserts a ledger
// record and increments likes when no record exists, deletes all matching
// records and decrements likes when one does. Each branch commits as one
// atomic batch. Strict toggle semantics: two calls in a row return the
// pair to its original state.
func (s *Service) ToggleLike(ctx context.Context, kind content.Kind, contentID string, userID int64) ToggleResult {
	unlock := s.lockKey(toggleKey(userID, contentID, kind))
	defer unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// Request id flows in through the context when the call originates
	// from an HTTP request.
	log := s.log.WithContext(ctx)

	existing, err := s.store.FindLike(ctx, userID, contentID, kind)
	if err != nil {
		log.Error("Like lookup failed", err,
			logger.UserID(userID),
			logger.ContentID(contentID),
		)
		return ToggleResult{Success: false, Err: err}
	}

	if existing != nil {
		removed, err := s.store.RemoveLike(ctx, userID, contentID, kind)
		if err != nil {
			log.Error("Failed to remove like", err,
				logger.UserID(userID),
				logger.ContentID(contentID),
			)
			return ToggleResult{Success: false, IsLiked: true, Err: err}
		}
		log.Info("Like removed",
			logger.UserID(userID),
			logger.ContentID(contentID),
			logger.Count(int(removed)),
		)
		return ToggleResult{Success: true, IsLiked: false, Action: ActionRemoved}
	}

	rec := &LikeRecord{UserID: userID, ContentID: contentID, Kind: kind}
	if err := s.store.AddLike(ctx, rec); err != nil {
		log.Error("Failed to add like", err,
			logger.UserID(userID),
			logger.ContentID(contentID),
		)
		return ToggleResult{Success: false, IsLiked: false, Err: err}
	}
	log.Info("Like added",
		logger.UserID(userID),
		logger.ContentID(contentID),
	)
	return ToggleResult{Success: true, IsLiked: true, Action: ActionAdded}
}

// LikedContentIDs returns every content id the user has liked, across
// both kinds. Used to seed a viewer's liked set on feed load.
func (s *Service) LikedContentIDs(ctx context.Context, userID int64) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.store.ListLikedContentIDs(ctx, userID)
}

func toggleKey(userID int64, contentID string, kind content.Kind) string {
	return fmt.Sprintf("%d:%s:%s", userID, kind, contentID)
}

// lockKey acquires the per-key mutex, creating it on first use, and
// returns the unlock func. Lock entries are kept for the process
// lifetime; the keyspace is bounded by active (user, content) pairs.
func (s *Service) lockKey(key string) func() {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}
