// Package store owns the canonical users and posts collections. Every
// mutation entry point funnels through it so the ordering invariants and
// the persistence write-through are applied uniformly.
package store

import (
	"sort"
	"sync"

	"grandline/internal/kv"
	"grandline/internal/models"
	"grandline/internal/observability"
	"grandline/internal/persist"
)

// Options configures a Store. Zero values are usable: a nil Mirror gets an
// in-memory backend with saving disabled, a nil Logger discards output.
type Options struct {
	Mirror *persist.Mirror
	Logger *observability.Logger
	Clock  models.Clock
}

// Store is the social-graph aggregate. Collections are always kept sorted
// descending by UpdatedTs (posts) / LastActivity (users); consumers never
// rely on insertion order.
type Store struct {
	mu sync.RWMutex

	users   []*models.User
	posts   []*models.Post
	current *models.User

	// lastPostTs tracks the newest post arrival for presentation, debounced
	// to one advance per second so a burst counts as a single event.
	lastPostTs int64

	mirror  *persist.Mirror
	clock   models.Clock
	userLog *observability.StoreLogger
	postLog *observability.StoreLogger

	subscribers []func(Event)
}

// New creates a Store.
func New(opts Options) *Store {
	mirror := opts.Mirror
	if mirror == nil {
		mirror = persist.NewMirror(kv.NewMemory(), opts.Logger)
	}
	clock := opts.Clock
	if clock == nil {
		clock = models.WallClock
	}
	return &Store{
		mirror:  mirror,
		clock:   clock,
		userLog: observability.NewStoreLogger("users", opts.Logger),
		postLog: observability.NewStoreLogger("posts", opts.Logger),
	}
}

// Mirror exposes the persistence port, e.g. for toggling save mode.
func (s *Store) Mirror() *persist.Mirror {
	return s.mirror
}

// sortPostsLocked re-sorts posts newest-updated first. Callers hold the lock.
func (s *Store) sortPostsLocked() {
	sort.SliceStable(s.posts, func(i, j int) bool {
		return s.posts[i].UpdatedTs > s.posts[j].UpdatedTs
	})
}

// sortUsersLocked re-sorts users most-recently-active first.
func (s *Store) sortUsersLocked() {
	sort.SliceStable(s.users, func(i, j int) bool {
		return s.users[i].LastActivity > s.users[j].LastActivity
	})
}
