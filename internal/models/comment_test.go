package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComment(t *testing.T) {
	restore := SetClock(func() int64 { return 42 })
	defer restore()

	comment := NewComment(CommentInput{PostID: "p1", UserID: "u1", Content: "hi"})

	assert.NotEmpty(t, comment.ID)
	assert.Equal(t, "p1", comment.PostID)
	assert.Equal(t, int64(42), comment.CreatedTs)
	assert.Empty(t, comment.Replies)
}

func TestCommentLikeToggle(t *testing.T) {
	comment := NewComment(CommentInput{PostID: "p1", UserID: "u1", Content: "hi"})

	assert.True(t, comment.Like("u2"))
	assert.False(t, comment.Like("u2"))
	assert.Empty(t, comment.Likes)
}

func TestAddReplyAppends(t *testing.T) {
	comment := NewComment(CommentInput{PostID: "p1", UserID: "u1", Content: "parent"})

	comment.AddReply("u2", "one")
	comment.AddReply("u3", "two")
	comment.AddReply("u4", "three")
	reply := comment.AddReply("u5", "four")

	require.Len(t, comment.Replies, 4)
	assert.Same(t, reply, comment.Replies[3])
	assert.Equal(t, "one", comment.Replies[0].Content)
}

func TestAddReplyInheritsPostID(t *testing.T) {
	comment := NewComment(CommentInput{PostID: "p1", UserID: "u1", Content: "parent"})
	reply := comment.AddReply("u2", "child")
	assert.Equal(t, "p1", reply.PostID)
}

func TestAddReplyDoesNotTouchParentTimestamps(t *testing.T) {
	ts := int64(100)
	restore := SetClock(func() int64 { ts += 10; return ts })
	defer restore()

	comment := NewComment(CommentInput{PostID: "p1", UserID: "u1", Content: "parent"})
	before := comment.UpdatedTs

	comment.AddReply("u2", "child")

	assert.Equal(t, before, comment.UpdatedTs)
}

func TestCommentDeleteRestore(t *testing.T) {
	comment := NewComment(CommentInput{PostID: "p1", UserID: "u1", Content: "hi"})
	comment.Like("u2")

	comment.Delete()
	assert.True(t, comment.Deleted)
	// soft delete keeps everything else
	assert.Equal(t, []string{"u2"}, comment.Likes)
	assert.Equal(t, "hi", comment.Content)

	comment.Restore()
	assert.False(t, comment.Deleted)
	assert.Equal(t, []string{"u2"}, comment.Likes)
}

func TestCommentDeleteDoesNotCascade(t *testing.T) {
	comment := NewComment(CommentInput{PostID: "p1", UserID: "u1", Content: "parent"})
	reply := comment.AddReply("u2", "child")

	comment.Delete()

	assert.False(t, reply.Deleted)
}

func TestCommentEdit(t *testing.T) {
	ts := int64(100)
	restore := SetClock(func() int64 { ts += 10; return ts })
	defer restore()

	comment := NewComment(CommentInput{PostID: "p1", UserID: "u1", Content: "before"})
	created := comment.CreatedTs

	comment.Edit("after")

	assert.Equal(t, "after", comment.Content)
	assert.True(t, comment.Edited)
	assert.Greater(t, comment.UpdatedTs, created)
}
