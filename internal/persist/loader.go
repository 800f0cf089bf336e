package persist

import (
	"context"
	"strings"

	"grandline/internal/models"
)

// Target receives replayed entities during startup. The social-graph store
// satisfies this; the indirection keeps persist from depending on it.
type Target interface {
	AddUser(ctx context.Context, user *models.User) error
	SetUser(ctx context.Context, user *models.User, login bool) error
	AddPost(ctx context.Context, post *models.Post) error
}

// Load reconstructs prior session state from the mirror's backend.
//
// When the marker key is absent the backend is cleared and saving stays
// disabled: whatever keys were left behind belong to a session that turned
// saving off, so they are stale by definition. When the marker is present,
// every key matching a known prefix is decoded and replayed; unknown keys
// are ignored.
func Load(ctx context.Context, m *Mirror, target Target) error {
	_, ok, err := m.kv.Get(ctx, MarkerKey)
	if err != nil {
		return err
	}
	if !ok {
		m.mu.Lock()
		m.enabled = false
		m.mu.Unlock()
		return m.kv.Clear(ctx)
	}

	m.mu.Lock()
	m.enabled = true
	m.mu.Unlock()

	entries, err := m.kv.Entries(ctx)
	if err != nil {
		return err
	}

	// Users first, then posts, then the login pointer: the pointer record
	// refreshes lastActivity on an existing user, so that user has to be in
	// the collection already.
	for key, value := range entries {
		if !strings.HasPrefix(key, PrefixUser+"-") {
			continue
		}
		user, err := models.DecodeUser([]byte(value))
		if err != nil {
			m.logger.LogError("load", err)
			continue
		}
		if err := target.AddUser(ctx, user); err != nil {
			return err
		}
	}
	for key, value := range entries {
		if !strings.HasPrefix(key, PrefixPost+"-") {
			continue
		}
		post, err := models.DecodePost([]byte(value))
		if err != nil {
			m.logger.LogError("load", err)
			continue
		}
		if err := target.AddPost(ctx, post); err != nil {
			return err
		}
	}
	for key, value := range entries {
		if !strings.HasPrefix(key, PrefixLogin+"-") {
			continue
		}
		user, err := models.DecodeUser([]byte(value))
		if err != nil {
			m.logger.LogError("load", err)
			continue
		}
		if err := target.SetUser(ctx, user, true); err != nil {
			return err
		}
	}

	return nil
}
