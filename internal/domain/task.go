package domain

import (
	"errors"
	"time"
	"unicode/utf8"
)

const (
	TitleMaxLen       = 100
	DescriptionMaxLen = 500
)

var ErrTaskNotFound = errors.New("task not found")

// Task belongs to exactly one owner. Every read and write against it is
// scoped by OwnerID, so a task is invisible outside its owner's requests.
type Task struct {
	ID          TaskID
	OwnerID     UserID
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidationError reports a single offending field. Handlers surface it
// with a 422 and the field name, never a generic message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// ValidateTitle enforces the 1..100 character limit. Lengths count
// characters, not bytes.
func ValidateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < 1 || n > TitleMaxLen {
		return &ValidationError{Field: "title", Reason: "must be between 1 and 100 characters"}
	}
	return nil
}

// ValidateDescription enforces the 500 character limit. Empty is allowed.
func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > DescriptionMaxLen {
		return &ValidationError{Field: "description", Reason: "must be at most 500 characters"}
	}
	return nil
}
