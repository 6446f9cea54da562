package storage

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrDuplicateFriend is returned by AddFriend when the person is
	// already in the user's friend list.
	ErrDuplicateFriend = errors.New("person is already a friend")

	// ErrUserNotFound is returned by AddFriend when the user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError reports fields rejected by the store's shape checks
// (required fields, minimum lengths, uniqueness).
type ValidationError struct {
	// Fields maps each offending field name to a short reason.
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
