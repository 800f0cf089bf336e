package models

// Activity action vocabulary. The strings are user-facing.
const (
	ActionPostCreate     = "created a post"
	ActionPostUpdate     = "updated a post"
	ActionPostDelete     = "deleted a post"
	ActionPostSave       = "bookmarked a post"
	ActionPostUnsave     = "removed a bookmark"
	ActionPostLike       = "liked a post"
	ActionPostUnlike     = "unliked a post"
	ActionCommentCreate  = "commented on a post"
	ActionCommentReply   = "replied to a comment"
	ActionCommentLike    = "liked a comment"
	ActionCommentUnlike  = "unliked a comment"
	ActionCommentUpdate  = "edited a comment"
	ActionCommentDelete  = "deleted a comment"
	ActionCommentRestore = "restored a comment"
)

// Activity is one entry of the recent-actions log. The username is
// denormalized on purpose: entries outlive profile edits and never chase the
// User record.
type Activity struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Action    string `json:"action"`
	CreatedTs int64  `json:"createdTs"`
}

// NewActivity constructs an activity stamped with the current time.
func NewActivity(username, action string) *Activity {
	return &Activity{
		ID:        NewID(),
		Username:  username,
		Action:    action,
		CreatedTs: now(),
	}
}
