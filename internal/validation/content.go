package validation

import (
	"strings"

	"grandline/internal/models"
)

// ValidatePostContent trims and checks post content against the 300-char
// limit. Returns the trimmed content.
func ValidatePostContent(content string) (string, FieldErrors) {
	content = strings.TrimSpace(content)
	switch {
	case content == "":
		return content, FieldErrors{"content": MsgMustNotBeEmpty}
	case len([]rune(content)) > models.PostContentMaxLen:
		return content, FieldErrors{"content": "Must be at most 300 characters"}
	}
	return content, nil
}

// ValidateCommentContent trims and checks comment/reply content against the
// 100-char limit. Returns the trimmed content.
func ValidateCommentContent(content string) (string, FieldErrors) {
	content = strings.TrimSpace(content)
	switch {
	case content == "":
		return content, FieldErrors{"content": MsgMustNotBeEmpty}
	case len([]rune(content)) > models.CommentContentMaxLen:
		return content, FieldErrors{"content": "Must be at most 100 characters"}
	}
	return content, nil
}
