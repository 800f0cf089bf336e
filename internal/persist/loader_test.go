package persist

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grandline/internal/kv"
	"grandline/internal/models"
)

// targetStub records replayed entities in arrival order.
type targetStub struct {
	users  []*models.User
	posts  []*models.Post
	logins []*models.User
}

func (s *targetStub) AddUser(_ context.Context, user *models.User) error {
	s.users = append(s.users, user)
	return nil
}

func (s *targetStub) SetUser(_ context.Context, user *models.User, login bool) error {
	if login {
		s.logins = append(s.logins, user)
	}
	return nil
}

func (s *targetStub) AddPost(_ context.Context, post *models.Post) error {
	s.posts = append(s.posts, post)
	return nil
}

func TestLoadMarkerAbsentClearsBackend(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	mirror := NewMirror(backend, nil)

	// stale keys from a session that disabled saving
	require.NoError(t, backend.Set(ctx, "u-stale", `{"id":"stale"}`))
	require.NoError(t, backend.Set(ctx, "p-stale", `{"id":"stale"}`))

	target := &targetStub{}
	require.NoError(t, Load(ctx, mirror, target))

	assert.False(t, mirror.Enabled())
	assert.Empty(t, target.users)
	assert.Empty(t, target.posts)

	entries, err := backend.Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoadReplaysEntities(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	mirror := NewMirror(backend, nil)

	user := models.NewUser(models.UserInput{Firstname: "Nami", Username: "nami", Password: "x"})
	post := models.NewPost(models.PostInput{UserID: user.ID, Content: "hello"})
	post.AddComment(user.ID, "self comment").AddReply(user.ID, "self reply")

	userJSON, err := json.Marshal(user)
	require.NoError(t, err)
	postJSON, err := json.Marshal(post)
	require.NoError(t, err)

	require.NoError(t, backend.Set(ctx, MarkerKey, "1"))
	require.NoError(t, backend.Set(ctx, Key(PrefixUser, user.ID), string(userJSON)))
	require.NoError(t, backend.Set(ctx, Key(PrefixPost, post.ID), string(postJSON)))
	require.NoError(t, backend.Set(ctx, Key(PrefixLogin, user.ID), string(userJSON)))
	require.NoError(t, backend.Set(ctx, "junk-key", "ignored"))

	target := &targetStub{}
	require.NoError(t, Load(ctx, mirror, target))

	assert.True(t, mirror.Enabled())
	require.Len(t, target.users, 1)
	assert.Equal(t, user.ID, target.users[0].ID)

	require.Len(t, target.posts, 1)
	replayed := target.posts[0]
	assert.Equal(t, post.ID, replayed.ID)
	require.Len(t, replayed.Comments, 1)
	require.Len(t, replayed.Comments[0].Replies, 1)

	require.Len(t, target.logins, 1)
	assert.Equal(t, user.ID, target.logins[0].ID)
}

func TestLoadSkipsCorruptRecords(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	mirror := NewMirror(backend, nil)

	require.NoError(t, backend.Set(ctx, MarkerKey, "1"))
	require.NoError(t, backend.Set(ctx, "u-bad", "not json"))
	require.NoError(t, backend.Set(ctx, "u-good", `{"id":"good","username":"nami"}`))

	target := &targetStub{}
	require.NoError(t, Load(ctx, mirror, target))

	require.Len(t, target.users, 1)
	assert.Equal(t, "good", target.users[0].ID)
}
