// Package persist mirrors entity mutations into a key-value store and
// replays them on startup. It is a write-through port: the social-graph
// store calls it after each successful mutation, and the key-value backend
// behind it is swappable without touching mutation logic.
package persist

import (
	"context"
	"encoding/json"
	"sync"

	"grandline/internal/kv"
	"grandline/internal/models"
	"grandline/internal/observability"
)

// Key prefixes, one namespace per entity type. A record lives under
// "<prefix>-<id>".
const (
	PrefixUser  = "u"
	PrefixLogin = "l"
	PrefixPost  = "p"
)

// MarkerKey is the top-level flag recording that saving is enabled. When it
// is absent on startup the whole backend is cleared, so stale keys can never
// outlive a disabled flag.
const MarkerKey = "save"

// Key builds the record key for an entity id.
func Key(prefix, id string) string {
	return prefix + "-" + id
}

// Mirror writes entity records through the key-value port, gated by the
// save-enabled flag. Removal is never gated.
type Mirror struct {
	kv      kv.Store
	logger  *observability.StoreLogger
	mu      sync.RWMutex
	enabled bool
}

// NewMirror creates a Mirror over the given backend with saving disabled.
func NewMirror(store kv.Store, logger *observability.Logger) *Mirror {
	return &Mirror{
		kv:     store,
		logger: observability.NewStoreLogger("persist", logger),
	}
}

// Enabled reports whether writes are currently mirrored.
func (m *Mirror) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}

// SetEnabled toggles mirroring. Enabling writes the marker key; disabling
// removes the marker and clears the backend so persisted state always
// matches the flag.
func (m *Mirror) SetEnabled(ctx context.Context, enabled bool) error {
	m.mu.Lock()
	m.enabled = enabled
	m.mu.Unlock()

	if enabled {
		return m.kv.Set(ctx, MarkerKey, "1")
	}
	return m.kv.Clear(ctx)
}

// Save mirrors the entity under "<prefix>-<id>". When saving is disabled the
// write is silently skipped; the entity still lives in memory. An empty id
// is a caller contract violation and fails loudly.
func (m *Mirror) Save(ctx context.Context, prefix, id string, entity any) error {
	if id == "" {
		return models.NewIntegrityError("refusing to persist an entity without an id")
	}

	if !m.Enabled() {
		return nil
	}

	data, err := json.Marshal(entity)
	if err != nil {
		m.logger.LogError("save", err)
		return models.NewInternalError(err)
	}
	if err := m.kv.Set(ctx, Key(prefix, id), string(data)); err != nil {
		m.logger.LogError("save", err)
		return err
	}
	return nil
}

// Remove deletes the persisted record regardless of the save-enabled flag.
func (m *Mirror) Remove(ctx context.Context, prefix, id string) error {
	if id == "" {
		return models.NewIntegrityError("refusing to remove an entity without an id")
	}
	if err := m.kv.Delete(ctx, Key(prefix, id)); err != nil {
		m.logger.LogError("remove", err)
		return err
	}
	return nil
}

// SaveUser mirrors a user record.
func (m *Mirror) SaveUser(ctx context.Context, user *models.User) error {
	return m.Save(ctx, PrefixUser, user.ID, user)
}

// SaveLogin mirrors the currently-logged-in pointer record.
func (m *Mirror) SaveLogin(ctx context.Context, user *models.User) error {
	return m.Save(ctx, PrefixLogin, user.ID, user)
}

// RemoveLogin drops the currently-logged-in pointer record (logout).
func (m *Mirror) RemoveLogin(ctx context.Context, user *models.User) error {
	return m.Remove(ctx, PrefixLogin, user.ID)
}

// SavePost mirrors a post record, nested comments and replies included.
func (m *Mirror) SavePost(ctx context.Context, post *models.Post) error {
	return m.Save(ctx, PrefixPost, post.ID, post)
}

// RemovePost drops a post record.
func (m *Mirror) RemovePost(ctx context.Context, post *models.Post) error {
	return m.Remove(ctx, PrefixPost, post.ID)
}
