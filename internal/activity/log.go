// Package activity keeps the append-only bounded log of recent user
// actions. The log is independent of the entity collections: callers record
// actions as a side effect, and a missed call site simply loses that entry.
package activity

import (
	"sort"
	"sync"

	"grandline/internal/models"
)

// MaxEntries caps the log at the newest entries; older ones are discarded.
const MaxEntries = 10

// Log is the bounded activity log.
type Log struct {
	mu      sync.RWMutex
	entries []*models.Activity
}

// NewLog creates an empty activity log.
func NewLog() *Log {
	return &Log{}
}

// Add records an action for username stamped with the current time.
func (l *Log) Add(username, action string) {
	l.add(models.NewActivity(username, action))
}

// AddAt records an action with an explicit timestamp. Only seed and replay
// paths use this; live mutations always stamp with the current time.
func (l *Log) AddAt(username, action string, ts int64) {
	entry := models.NewActivity(username, action)
	entry.CreatedTs = ts
	l.add(entry)
}

func (l *Log) add(entry *models.Activity) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := append([]*models.Activity{entry}, l.entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedTs > entries[j].CreatedTs
	})
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	l.entries = entries
}

// All returns the entries newest first.
func (l *Log) All() []*models.Activity {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*models.Activity, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Clear removes every entry.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
