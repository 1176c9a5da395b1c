package domain

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidTaskID = errors.New("task id is not a valid UUID")

// TaskID is a UUID in string form. Construct one with NewTaskID or
// ParseTaskID; an invalid identifier cannot exist as a TaskID value.
type TaskID string

// NewTaskID generates a random task identifier. IDs are always minted
// server-side; clients never supply them.
func NewTaskID() TaskID {
	return TaskID(uuid.NewString())
}

// ParseTaskID validates a client-supplied identifier.
func ParseTaskID(s string) (TaskID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", ErrInvalidTaskID
	}
	return TaskID(s), nil
}

func (id TaskID) String() string { return string(id) }

// UserID is an opaque identifier carried in the token's user_id claim.
// Unlike TaskID it has no format requirement: the issuing system owns
// its shape, we only compare it for equality.
type UserID string

func (id UserID) String() string { return string(id) }
