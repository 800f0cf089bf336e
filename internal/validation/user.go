// Package validation rejects malformed input at the boundary, before any
// entity is constructed. Failures surface as field-level messages, never as
// panics inside the engine.
package validation

import (
	"regexp"
	"sort"
	"strings"

	"grandline/internal/models"
)

// Validation messages shared across fields.
const (
	MsgMustNotBeEmpty      = "Must not be empty"
	MsgMustBeAlpha         = "Must contain alpha characters only"
	MsgMustNotContainSpace = "Must NOT contain a space"
	MsgMustBeWordChars     = `Must contain alphanumeric or underscore "_" characters only`
)

const maxNameLen = 30

var (
	alphaSpaceRegex = regexp.MustCompile(`^[a-z A-Z]+$`)
	usernameRegex   = regexp.MustCompile(`^\w+$`)

	lowercaseRegex = regexp.MustCompile(`[a-z]`)
	uppercaseRegex = regexp.MustCompile(`[A-Z]`)
	digitRegex     = regexp.MustCompile(`\d`)
	specialRegex   = regexp.MustCompile(`[^a-zA-Z0-9]`)
	spaceRegex     = regexp.MustCompile(`\s`)
)

// FieldErrors maps field names to their first failing rule's message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

// ValidateUserInput checks registration input and returns the normalized
// (trimmed) input on success.
func ValidateUserInput(in models.UserInput) (models.UserInput, FieldErrors) {
	errs := FieldErrors{}

	in.Firstname = strings.TrimSpace(in.Firstname)
	switch {
	case in.Firstname == "":
		errs["firstname"] = MsgMustNotBeEmpty
	case len(in.Firstname) > maxNameLen:
		errs["firstname"] = "Must be at most 30 characters"
	case !alphaSpaceRegex.MatchString(in.Firstname):
		errs["firstname"] = MsgMustBeAlpha
	}

	in.Lastname = strings.TrimSpace(in.Lastname)
	switch {
	case len(in.Lastname) > maxNameLen:
		errs["lastname"] = "Must be at most 30 characters"
	case in.Lastname != "" && !alphaSpaceRegex.MatchString(in.Lastname):
		errs["lastname"] = MsgMustBeAlpha
	}

	in.Username = strings.TrimSpace(in.Username)
	switch {
	case in.Username == "":
		errs["username"] = MsgMustNotBeEmpty
	case len(in.Username) > maxNameLen:
		errs["username"] = "Must be at most 30 characters"
	case strings.ContainsAny(in.Username, " \t"):
		errs["username"] = MsgMustNotContainSpace
	case !usernameRegex.MatchString(in.Username):
		errs["username"] = MsgMustBeWordChars
	}

	if msg := passwordMessage(in.Password); msg != "" {
		errs["password"] = msg
	}

	if len(errs) > 0 {
		return in, errs
	}
	return in, nil
}

// passwordMessage returns the first failing password rule, or "".
func passwordMessage(password string) string {
	switch {
	case len(password) < 8:
		return "Must be at least 8 characters"
	case !lowercaseRegex.MatchString(password):
		return "Must contain lowercase character"
	case !uppercaseRegex.MatchString(password):
		return "Must contain uppercase character"
	case !digitRegex.MatchString(password):
		return "Must contain number"
	case !specialRegex.MatchString(password):
		return "Must contain special character"
	case !spaceRegex.MatchString(password):
		return "Must contain space"
	}
	return ""
}

// ValidatePassword checks a standalone password (password-update flow).
func ValidatePassword(password string) FieldErrors {
	if msg := passwordMessage(password); msg != "" {
		return FieldErrors{"password": msg}
	}
	return nil
}
