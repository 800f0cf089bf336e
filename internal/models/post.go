package models

import "encoding/json"

// Post represents a feed post.
//
// The Deleted flag is a display tombstone: the record keeps its id and
// metadata so consumers can render a placeholder. Actually removing a post
// from the canonical collection is a separate store-level operation.
type Post struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Content   string `json:"content"`
	CreatedTs int64  `json:"createdTs"`
	UpdatedTs int64  `json:"updatedTs"`
	// Likes holds the ids of users who liked, in like-insertion order.
	Likes []string `json:"likes"`
	// Comments are ordered newest first.
	Comments []*Comment `json:"comments"`
	Edited   bool       `json:"edited"`
	Deleted  bool       `json:"deleted"`
}

// PostInput is the validated payload for creating a post.
type PostInput struct {
	UserID  string
	Content string
}

// NewPost constructs a Post from validated input with fresh identity and
// timestamps.
func NewPost(in PostInput) *Post {
	ts := now()
	return &Post{
		ID:        NewID(),
		UserID:    in.UserID,
		Content:   in.Content,
		CreatedTs: ts,
		UpdatedTs: ts,
		Likes:     []string{},
		Comments:  []*Comment{},
	}
}

// DecodePost reconstructs a Post from its persisted record, including nested
// comments and replies as full entities. Identity and timestamps present in
// the record are kept as-is.
func DecodePost(data []byte) (*Post, error) {
	var p Post
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, NewInternalError(err)
	}
	if p.Likes == nil {
		p.Likes = []string{}
	}
	if p.Comments == nil {
		p.Comments = []*Comment{}
	}
	for _, c := range p.Comments {
		if c.Likes == nil {
			c.Likes = []string{}
		}
		if c.Replies == nil {
			c.Replies = []*Reply{}
		}
		for _, r := range c.Replies {
			if r.Likes == nil {
				r.Likes = []string{}
			}
		}
	}
	return &p, nil
}

// Like toggles userID's membership in the like list. Returns true when the
// user now likes it, false after an unlike. UpdatedTs is not touched, so a
// like never reorders the feed.
func (p *Post) Like(userID string) bool {
	liked := false
	p.Likes, liked = toggleLike(p.Likes, userID)
	return liked
}

// AddComment creates a comment authored by userID and prepends it to
// Comments (newest first). The post's UpdatedTs is bumped so commented
// posts float to the top of the feed.
func (p *Post) AddComment(userID, content string) *Comment {
	p.UpdatedTs = now()
	comment := NewComment(CommentInput{
		PostID:  p.ID,
		UserID:  userID,
		Content: content,
	})
	p.Comments = append([]*Comment{comment}, p.Comments...)
	return comment
}

// Edit replaces the content, marking the post edited and bumping UpdatedTs.
func (p *Post) Edit(content string) {
	p.Content = content
	p.Edited = true
	p.UpdatedTs = now()
}

// Delete marks the post as a display tombstone.
func (p *Post) Delete() {
	p.Deleted = true
}

// Comment returns the top-level comment with the given id, or nil.
func (p *Post) Comment(id string) *Comment {
	for _, c := range p.Comments {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Tombstone synthesizes a deleted placeholder post for an id that no longer
// resolves to a real post, e.g. a bookmarked post that was removed.
func Tombstone(id string) *Post {
	return &Post{
		ID:       id,
		Deleted:  true,
		Likes:    []string{},
		Comments: []*Comment{},
	}
}
