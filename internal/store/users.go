package store

import (
	"context"
	"strings"

	"grandline/internal/models"
)

// AddUser inserts a user into the canonical collection. Inserting an id that
// already exists is a silent no-op; the record is still mirrored.
func (s *Store) AddUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	inserted := false
	if s.findUserLocked(user.ID) == nil {
		s.users = append(s.users, user)
		s.sortUsersLocked()
		inserted = true
	}
	s.mu.Unlock()

	if err := s.mirror.SaveUser(ctx, user); err != nil {
		s.userLog.LogError("add", err)
		return err
	}

	if !inserted {
		s.userLog.LogSkip("add", "duplicate id", map[string]interface{}{"user_id": user.ID})
		return nil
	}

	s.userLog.LogMutation("add", map[string]interface{}{"user_id": user.ID, "username": user.Username})
	s.notify(Event{Kind: EventUserAdded, UserID: user.ID})
	return nil
}

// UpdateUser merges every mutable field of user onto the canonical stored
// instance, recomputes the fullname from the incoming name parts, bumps
// lastActivity, re-sorts, and mirrors the result. When the updated user is
// the active session, the session reference is refreshed too. Updating an
// unknown id is a silent no-op.
func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	existing := s.findUserLocked(user.ID)
	if existing == nil {
		s.mu.Unlock()
		s.userLog.LogSkip("update", "not found", map[string]interface{}{"user_id": user.ID})
		return nil
	}

	existing.Username = user.Username
	existing.Password = user.Password
	existing.Firstname = user.Firstname
	existing.Lastname = user.Lastname
	existing.Fullname = models.ComposeFullname(user.Firstname, user.Lastname)
	existing.Description = user.Description
	existing.SavedPosts = user.SavedPosts
	existing.Deleted = user.Deleted
	existing.LastActivity = s.clock()

	s.sortUsersLocked()

	refreshSession := s.current != nil && s.current.ID == existing.ID
	if refreshSession {
		s.current = cloneUser(existing)
	}
	s.mu.Unlock()

	if err := s.mirror.SaveUser(ctx, existing); err != nil {
		s.userLog.LogError("update", err)
		return err
	}
	if refreshSession {
		if err := s.mirror.SaveLogin(ctx, existing); err != nil {
			s.userLog.LogError("update", err)
			return err
		}
	}

	s.userLog.LogMutation("update", map[string]interface{}{"user_id": existing.ID})
	s.notify(Event{Kind: EventUserUpdated, UserID: existing.ID})
	return nil
}

// SetUser switches the active session. With login=true the matching stored
// user gets a fresh lastActivity, both the user record and the logged-in
// pointer record are mirrored, and the session holds a freshly constructed
// copy. With login=false the pointer record is dropped and the session is
// cleared.
func (s *Store) SetUser(ctx context.Context, user *models.User, login bool) error {
	s.mu.Lock()
	existing := s.findUserLocked(user.ID)

	if !login {
		s.current = nil
		s.mu.Unlock()

		target := existing
		if target == nil {
			target = user
		}
		if err := s.mirror.RemoveLogin(ctx, target); err != nil {
			s.userLog.LogError("logout", err)
			return err
		}
		s.userLog.LogMutation("logout", map[string]interface{}{"user_id": user.ID})
		s.notify(Event{Kind: EventUserLoggedOut, UserID: user.ID})
		return nil
	}

	session := user
	if existing != nil {
		existing.LastActivity = s.clock()
		s.sortUsersLocked()
		session = existing
	}
	s.current = cloneUser(session)
	s.mu.Unlock()

	if existing != nil {
		if err := s.mirror.SaveUser(ctx, existing); err != nil {
			s.userLog.LogError("login", err)
			return err
		}
		if err := s.mirror.SaveLogin(ctx, existing); err != nil {
			s.userLog.LogError("login", err)
			return err
		}
	}

	s.userLog.LogMutation("login", map[string]interface{}{"user_id": user.ID})
	s.notify(Event{Kind: EventUserLoggedIn, UserID: user.ID})
	return nil
}

// Login authenticates by username (case-insensitive) and password and
// activates the session. Unknown usernames and wrong passwords are
// indistinguishable to the caller.
func (s *Store) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, ok := s.UserByUsername(username)
	if !ok || user.Password != password {
		return nil, models.NewUnauthorizedError("Invalid username or password")
	}
	if err := s.SetUser(ctx, user, true); err != nil {
		return nil, err
	}
	return s.CurrentUser(), nil
}

// Logout clears the active session. A no-op when nobody is logged in.
func (s *Store) Logout(ctx context.Context) error {
	current := s.CurrentUser()
	if current == nil {
		return nil
	}
	return s.SetUser(ctx, current, false)
}

// CurrentUser returns the active session user, or nil.
func (s *Store) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Users returns the users sorted most-recently-active first.
func (s *Store) Users() []*models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.User, len(s.users))
	copy(out, s.users)
	return out
}

// User returns the user with the given id.
func (s *Store) User(id string) (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u := s.findUserLocked(id)
	return u, u != nil
}

// UserByUsername looks a user up by username, case-insensitively.
func (s *Store) UserByUsername(username string) (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return u, true
		}
	}
	return nil, false
}

// UsernameTaken reports whether a username is already registered, ignoring
// case.
func (s *Store) UsernameTaken(username string) bool {
	_, taken := s.UserByUsername(username)
	return taken
}

// DeleteAllUsers clears the in-memory collection and the session.
func (s *Store) DeleteAllUsers() {
	s.mu.Lock()
	s.users = nil
	s.current = nil
	s.mu.Unlock()

	s.userLog.LogMutation("clear", nil)
	s.notify(Event{Kind: EventUsersCleared})
}

func (s *Store) findUserLocked(id string) *models.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// cloneUser copies a user so the session reference cannot alias the stored
// instance.
func cloneUser(u *models.User) *models.User {
	clone := *u
	clone.SavedPosts = append([]string{}, u.SavedPosts...)
	return &clone
}
