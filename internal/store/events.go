package store

// EventKind identifies which mutation an Event describes.
type EventKind string

const (
	EventUserAdded     EventKind = "user.added"
	EventUserUpdated   EventKind = "user.updated"
	EventUserLoggedIn  EventKind = "user.logged_in"
	EventUserLoggedOut EventKind = "user.logged_out"
	EventUsersCleared  EventKind = "users.cleared"
	EventPostAdded     EventKind = "post.added"
	EventPostUpdated   EventKind = "post.updated"
	EventPostRemoved   EventKind = "post.removed"
	EventPostsCleared  EventKind = "posts.cleared"
)

// Event is emitted to subscribers after a successful mutation. Consumers
// re-read the collections they care about; the event carries ids only.
type Event struct {
	Kind   EventKind
	UserID string
	PostID string
}

// Subscribe registers fn to be called synchronously after each successful
// mutation, in subscription order. Subscribers must not mutate the store
// from within the callback.
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// notify runs outside the store lock.
func (s *Store) notify(e Event) {
	s.mu.RLock()
	subs := make([]func(Event), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(e)
	}
}
