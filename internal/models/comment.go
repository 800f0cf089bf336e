package models

// Content limits enforced at the validation boundary before construction.
const (
	PostContentMaxLen    = 300
	CommentContentMaxLen = 100
)

// CommentCore holds the fields shared by top-level comments and replies.
type CommentCore struct {
	ID        string `json:"id"`
	PostID    string `json:"postId"`
	UserID    string `json:"userId"`
	Content   string `json:"content"`
	CreatedTs int64  `json:"createdTs"`
	UpdatedTs int64  `json:"updatedTs"`
	// Likes holds the ids of users who liked, in like-insertion order.
	Likes   []string `json:"likes"`
	Edited  bool     `json:"edited"`
	Deleted bool     `json:"deleted"`
}

// Comment is a top-level comment on a post. Replies nest exactly one level:
// a Reply has no replies of its own, which the type makes structural rather
// than conventional.
type Comment struct {
	CommentCore
	Replies []*Reply `json:"replies"`
}

// Reply is a comment on a comment. It inherits the parent's post id.
type Reply struct {
	CommentCore
}

// CommentInput is the validated payload for creating a comment or reply.
type CommentInput struct {
	PostID  string
	UserID  string
	Content string
}

// NewComment constructs a top-level comment from validated input.
func NewComment(in CommentInput) *Comment {
	return &Comment{
		CommentCore: newCommentCore(in),
		Replies:     []*Reply{},
	}
}

func newCommentCore(in CommentInput) CommentCore {
	ts := now()
	return CommentCore{
		ID:        NewID(),
		PostID:    in.PostID,
		UserID:    in.UserID,
		Content:   in.Content,
		CreatedTs: ts,
		UpdatedTs: ts,
		Likes:     []string{},
	}
}

// Like toggles userID's membership in the like list. Returns true when the
// user now likes it, false after an unlike. UpdatedTs is not touched.
func (c *CommentCore) Like(userID string) bool {
	liked := false
	c.Likes, liked = toggleLike(c.Likes, userID)
	return liked
}

// Edit replaces the content, marking the record edited.
func (c *CommentCore) Edit(content string) {
	c.Content = content
	c.Edited = true
	c.UpdatedTs = now()
}

// Delete marks the record as deleted. The content is hidden, not erased, so
// the owner can restore it.
func (c *CommentCore) Delete() {
	c.Deleted = true
}

// Restore clears the deleted flag. Any other mutated state stays as-is.
func (c *CommentCore) Restore() {
	c.Deleted = false
}

// AddReply creates a reply authored by userID and appends it to Replies.
// Reply order is insertion order, oldest first. The reply carries the
// parent's post id, and the parent's UpdatedTs is left alone.
func (c *Comment) AddReply(userID, content string) *Reply {
	reply := &Reply{
		CommentCore: newCommentCore(CommentInput{
			PostID:  c.PostID,
			UserID:  userID,
			Content: content,
		}),
	}
	c.Replies = append(c.Replies, reply)
	return reply
}

// toggleLike adds userID when absent (preserving insertion order) and
// removes it when present. The list never holds duplicates.
func toggleLike(likes []string, userID string) ([]string, bool) {
	for i, id := range likes {
		if id == userID {
			return append(likes[:i], likes[i+1:]...), false
		}
	}
	return append(likes, userID), true
}
