// Package models contains data structures for the social-graph state engine.
package models

import (
	"encoding/json"
	"strings"
)

// DefaultDescription is assigned to users that never set one.
const DefaultDescription = "User"

// User represents a registered account.
//
// Passwords are stored as-is; this is a demo engine with no real
// authentication.
type User struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Password     string   `json:"password"`
	Firstname    string   `json:"firstname"`
	Lastname     string   `json:"lastname"`
	Fullname     string   `json:"fullname"`
	Description  string   `json:"description"`
	LastActivity int64    `json:"lastActivity"`
	// SavedPosts holds bookmarked post ids, most recently saved first.
	SavedPosts []string `json:"savedPosts"`
	Deleted    bool     `json:"deleted"`
}

// UserInput is the validated payload for creating a user.
type UserInput struct {
	Firstname string
	Lastname  string
	Username  string
	Password  string
}

// NewUser constructs a User from validated input. The id and lastActivity
// timestamp are generated fresh; Fullname is derived once here and is not
// recomputed on later name edits.
func NewUser(in UserInput) *User {
	return &User{
		ID:           NewID(),
		Username:     in.Username,
		Password:     in.Password,
		Firstname:    in.Firstname,
		Lastname:     in.Lastname,
		Fullname:     ComposeFullname(in.Firstname, in.Lastname),
		Description:  DefaultDescription,
		LastActivity: now(),
		SavedPosts:   []string{},
	}
}

// ComposeFullname derives the display name from its parts.
func ComposeFullname(firstname, lastname string) string {
	return strings.TrimSpace(firstname + " " + lastname)
}

// DecodeUser reconstructs a User from its persisted record. Identity and
// timestamps present in the record are kept as-is.
func DecodeUser(data []byte) (*User, error) {
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, NewInternalError(err)
	}
	if u.SavedPosts == nil {
		u.SavedPosts = []string{}
	}
	return &u, nil
}

// ToggleSavePost bookmarks the post id when absent, prepending it to
// SavedPosts, and removes it otherwise. Returns true when saved, false when
// unsaved. Persistence and activity logging are the caller's responsibility.
func (u *User) ToggleSavePost(postID string) bool {
	for i, saved := range u.SavedPosts {
		if saved == postID {
			u.SavedPosts = append(u.SavedPosts[:i], u.SavedPosts[i+1:]...)
			return false
		}
	}
	u.SavedPosts = append([]string{postID}, u.SavedPosts...)
	return true
}

// HasSaved reports whether the post id is currently bookmarked.
func (u *User) HasSaved(postID string) bool {
	for _, saved := range u.SavedPosts {
		if saved == postID {
			return true
		}
	}
	return false
}
