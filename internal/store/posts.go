package store

import (
	"context"

	"grandline/internal/models"
)

// AddPost inserts a post into the canonical collection. Inserting an id that
// already exists is a silent no-op (the post is still mirrored, matching the
// write-through contract). The arrival tracker advances unless the previous
// tracked value is within one second, so a burst of arrivals reads as a
// single "new post" event.
func (s *Store) AddPost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()

	inserted := false
	if s.findPostLocked(post.ID) == nil {
		s.posts = append(s.posts, post)
		s.sortPostsLocked()
		inserted = true
	}

	ts := s.clock()
	if s.lastPostTs+1 >= ts {
		ts = s.lastPostTs
	}
	s.lastPostTs = ts

	s.mu.Unlock()

	if err := s.mirror.SavePost(ctx, post); err != nil {
		s.postLog.LogError("add", err)
		return err
	}

	if !inserted {
		s.postLog.LogSkip("add", "duplicate id", map[string]interface{}{"post_id": post.ID})
		return nil
	}

	s.postLog.LogMutation("add", map[string]interface{}{"post_id": post.ID, "user_id": post.UserID})
	s.notify(Event{Kind: EventPostAdded, PostID: post.ID, UserID: post.UserID})
	return nil
}

// UpdatePost merges every mutable field (everything but the id) of post onto
// the canonical stored instance, re-sorts the collection, and mirrors the
// result. This is the single path by which entity-level mutations (edits,
// like toggles, comments, replies, tombstones) become visible to the rest of
// the system. Updating an unknown id is a silent no-op.
func (s *Store) UpdatePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	existing := s.findPostLocked(post.ID)
	if existing == nil {
		s.mu.Unlock()
		s.postLog.LogSkip("update", "not found", map[string]interface{}{"post_id": post.ID})
		return nil
	}

	existing.UserID = post.UserID
	existing.Content = post.Content
	existing.CreatedTs = post.CreatedTs
	existing.UpdatedTs = post.UpdatedTs
	existing.Likes = post.Likes
	existing.Comments = post.Comments
	existing.Edited = post.Edited
	existing.Deleted = post.Deleted

	s.sortPostsLocked()
	s.mu.Unlock()

	if err := s.mirror.SavePost(ctx, existing); err != nil {
		s.postLog.LogError("update", err)
		return err
	}

	s.postLog.LogMutation("update", map[string]interface{}{"post_id": existing.ID})
	s.notify(Event{Kind: EventPostUpdated, PostID: existing.ID, UserID: existing.UserID})
	return nil
}

// RemovePost removes the post from the collection entirely and drops its
// persisted record. This is hard removal, distinct from a post's own
// display-tombstone flag. Removing an unknown id is a silent no-op.
func (s *Store) RemovePost(ctx context.Context, id string) error {
	s.mu.Lock()
	var removed *models.Post
	for i, p := range s.posts {
		if p.ID == id {
			removed = p
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			break
		}
	}
	s.sortPostsLocked()
	s.mu.Unlock()

	if removed == nil {
		s.postLog.LogSkip("remove", "not found", map[string]interface{}{"post_id": id})
		return nil
	}

	if err := s.mirror.RemovePost(ctx, removed); err != nil {
		s.postLog.LogError("remove", err)
		return err
	}

	s.postLog.LogMutation("remove", map[string]interface{}{"post_id": id})
	s.notify(Event{Kind: EventPostRemoved, PostID: id, UserID: removed.UserID})
	return nil
}

// DeleteAllPosts clears the in-memory collection. Persisted records are left
// alone; clearing the backend is the mirror's concern.
func (s *Store) DeleteAllPosts() {
	s.mu.Lock()
	s.posts = nil
	s.mu.Unlock()

	s.postLog.LogMutation("clear", nil)
	s.notify(Event{Kind: EventPostsCleared})
}

// Posts returns the posts sorted newest-updated first.
func (s *Store) Posts() []*models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Post returns the post with the given id.
func (s *Store) Post(id string) (*models.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.findPostLocked(id)
	return p, p != nil
}

// LastPostTs returns the debounced newest-post-arrival timestamp.
func (s *Store) LastPostTs() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastPostTs
}

// SavedPosts resolves a user's bookmarks to posts, most recently saved
// first. Ids that no longer resolve yield a synthesized deleted placeholder
// preserving the original id, so a bookmark never errors out of a render.
func (s *Store) SavedPosts(user *models.User) []*models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Post, 0, len(user.SavedPosts))
	for _, id := range user.SavedPosts {
		if p := s.findPostLocked(id); p != nil {
			out = append(out, p)
			continue
		}
		out = append(out, models.Tombstone(id))
	}
	return out
}

func (s *Store) findPostLocked(id string) *models.Post {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}
