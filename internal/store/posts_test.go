package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grandline/internal/kv"
	"grandline/internal/models"
	"grandline/internal/persist"
)

type fixture struct {
	store   *Store
	mirror  *persist.Mirror
	backend *kv.Memory
	clock   *fakeClock
}

type fakeClock struct {
	ts int64
}

func (c *fakeClock) now() int64 {
	c.ts++
	return c.ts
}

// newFixture builds a store over a memory backend with saving enabled and a
// deterministic clock shared with the entity constructors.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := &fakeClock{ts: 1000}
	restore := models.SetClock(clock.now)
	t.Cleanup(restore)

	backend := kv.NewMemory()
	mirror := persist.NewMirror(backend, nil)
	require.NoError(t, mirror.SetEnabled(context.Background(), true))

	return &fixture{
		store:   New(Options{Mirror: mirror, Clock: clock.now}),
		mirror:  mirror,
		backend: backend,
		clock:   clock,
	}
}

func newPost(userID, content string) *models.Post {
	return models.NewPost(models.PostInput{UserID: userID, Content: content})
}

func TestAddPostIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post := newPost("u1", "hello")
	require.NoError(t, f.store.AddPost(ctx, post))
	require.NoError(t, f.store.AddPost(ctx, post))

	assert.Len(t, f.store.Posts(), 1)
}

func TestAddPostPersistsRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post := newPost("u1", "hello")
	require.NoError(t, f.store.AddPost(ctx, post))

	_, ok, err := f.backend.Get(ctx, persist.Key(persist.PrefixPost, post.ID))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAddPostSaveDisabledKeepsMemoryOnly(t *testing.T) {
	clock := &fakeClock{ts: 1000}
	restore := models.SetClock(clock.now)
	t.Cleanup(restore)

	ctx := context.Background()
	backend := kv.NewMemory()
	mirror := persist.NewMirror(backend, nil)
	engine := New(Options{Mirror: mirror, Clock: clock.now})

	post := newPost("u1", "ephemeral")
	require.NoError(t, engine.AddPost(ctx, post))

	assert.Len(t, engine.Posts(), 1)
	entries, err := backend.Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// turning save on afterwards must not resurrect the unsaved post
	require.NoError(t, mirror.SetEnabled(ctx, true))
	fresh := New(Options{Clock: clock.now})
	freshMirror := persist.NewMirror(backend, nil)
	require.NoError(t, persist.Load(ctx, freshMirror, fresh))
	assert.Empty(t, fresh.Posts())
}

func TestPostsSortedByUpdatedTsDesc(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	oldest := newPost("u1", "first")
	middle := newPost("u1", "second")
	newest := newPost("u1", "third")

	require.NoError(t, f.store.AddPost(ctx, middle))
	require.NoError(t, f.store.AddPost(ctx, newest))
	require.NoError(t, f.store.AddPost(ctx, oldest))

	posts := f.store.Posts()
	require.Len(t, posts, 3)
	assert.Equal(t, newest.ID, posts[0].ID)
	assert.Equal(t, middle.ID, posts[1].ID)
	assert.Equal(t, oldest.ID, posts[2].ID)
}

func TestUpdatePostResorts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := newPost("u1", "first")
	second := newPost("u1", "second")
	require.NoError(t, f.store.AddPost(ctx, first))
	require.NoError(t, f.store.AddPost(ctx, second))

	// a new comment bumps UpdatedTs and must float the post to the top
	first.AddComment("u2", "nice")
	require.NoError(t, f.store.UpdatePost(ctx, first))

	posts := f.store.Posts()
	assert.Equal(t, first.ID, posts[0].ID)
}

func TestUpdatePostMergesOntoCanonical(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post := newPost("u1", "original")
	require.NoError(t, f.store.AddPost(ctx, post))

	edited, err := models.DecodePost([]byte(`{}`))
	require.NoError(t, err)
	edited.ID = post.ID
	edited.UserID = post.UserID
	edited.CreatedTs = post.CreatedTs
	edited.UpdatedTs = post.UpdatedTs + 100
	edited.Content = "edited"
	edited.Edited = true

	require.NoError(t, f.store.UpdatePost(ctx, edited))

	canonical, ok := f.store.Post(post.ID)
	require.True(t, ok)
	assert.Same(t, post, canonical) // instance survives, fields merged
	assert.Equal(t, "edited", canonical.Content)
	assert.True(t, canonical.Edited)
}

func TestUpdatePostUnknownIDIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.UpdatePost(ctx, newPost("u1", "ghost")))
	assert.Empty(t, f.store.Posts())
}

func TestRemovePostHardRemoves(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post := newPost("u1", "doomed")
	require.NoError(t, f.store.AddPost(ctx, post))
	require.NoError(t, f.store.RemovePost(ctx, post.ID))

	assert.Empty(t, f.store.Posts())
	_, ok, err := f.backend.Get(ctx, persist.Key(persist.PrefixPost, post.ID))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemovePostUnknownIDIsNoop(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.RemovePost(context.Background(), "nope"))
}

func TestLastPostTsDebounce(t *testing.T) {
	ticks := []int64{100, 100, 100, 200}
	i := 0
	clock := func() int64 { ts := ticks[i]; i++; return ts }

	restoreEntity := models.SetClock(func() int64 { return 50 })
	t.Cleanup(restoreEntity)

	engine := New(Options{Clock: clock})
	ctx := context.Background()

	require.NoError(t, engine.AddPost(ctx, newPost("u1", "a")))
	first := engine.LastPostTs()
	assert.Equal(t, int64(100), first)

	// next arrival lands within a second of the tracked value: not advanced
	require.NoError(t, engine.AddPost(ctx, newPost("u1", "b")))
	assert.Equal(t, first, engine.LastPostTs())

	require.NoError(t, engine.AddPost(ctx, newPost("u1", "c")))
	assert.Equal(t, first, engine.LastPostTs())

	// a full second later the tracker moves
	require.NoError(t, engine.AddPost(ctx, newPost("u1", "d")))
	assert.Equal(t, int64(200), engine.LastPostTs())
}

func TestLikeScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := models.NewUser(models.UserInput{Firstname: "A", Username: "a", Password: "x"})
	b := models.NewUser(models.UserInput{Firstname: "B", Username: "b", Password: "x"})
	require.NoError(t, f.store.AddUser(ctx, a))
	require.NoError(t, f.store.AddUser(ctx, b))

	post := newPost(a.ID, "Hello")
	require.NoError(t, f.store.AddPost(ctx, post))

	assert.True(t, post.Like(b.ID))
	require.NoError(t, f.store.UpdatePost(ctx, post))

	canonical, _ := f.store.Post(post.ID)
	assert.Equal(t, []string{b.ID}, canonical.Likes)

	assert.False(t, post.Like(b.ID))
	require.NoError(t, f.store.UpdatePost(ctx, post))
	assert.Empty(t, canonical.Likes)
}

func TestSavedPostsSynthesizesTombstone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := models.NewUser(models.UserInput{Firstname: "Nami", Username: "nami", Password: "x"})
	require.NoError(t, f.store.AddUser(ctx, user))

	kept := newPost("u1", "kept")
	removed := newPost("u1", "removed")
	require.NoError(t, f.store.AddPost(ctx, kept))
	require.NoError(t, f.store.AddPost(ctx, removed))

	user.ToggleSavePost(kept.ID)
	user.ToggleSavePost(removed.ID)
	require.NoError(t, f.store.RemovePost(ctx, removed.ID))

	saved := f.store.SavedPosts(user)
	require.Len(t, saved, 2)

	// most recently saved first: the removed one
	assert.Equal(t, removed.ID, saved[0].ID)
	assert.True(t, saved[0].Deleted)
	assert.Equal(t, kept.ID, saved[1].ID)
	assert.False(t, saved[1].Deleted)
}

func TestDeleteAllPosts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.AddPost(ctx, newPost("u1", "a")))
	require.NoError(t, f.store.AddPost(ctx, newPost("u1", "b")))

	f.store.DeleteAllPosts()
	assert.Empty(t, f.store.Posts())
}

func TestPostEventsEmitted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var events []Event
	f.store.Subscribe(func(e Event) { events = append(events, e) })

	post := newPost("u1", "hello")
	require.NoError(t, f.store.AddPost(ctx, post))
	require.NoError(t, f.store.AddPost(ctx, post)) // duplicate: no event
	require.NoError(t, f.store.UpdatePost(ctx, post))
	require.NoError(t, f.store.RemovePost(ctx, post.ID))

	require.Len(t, events, 3)
	assert.Equal(t, EventPostAdded, events[0].Kind)
	assert.Equal(t, EventPostUpdated, events[1].Kind)
	assert.Equal(t, EventPostRemoved, events[2].Kind)
	assert.Equal(t, post.ID, events[0].PostID)
}
