package domain

import (
	"errors"
	"time"
)

var (
	ErrJobNotFound   = errors.New("job not found")
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidStatus = errors.New("invalid job status")
)

type Status string

// The upstream service used two disjoint enums: creation wrote a lowercase
// "queued" while the transition endpoint only accepted TODO / IN PROGRESS /
// DONE, so a fresh job could never pass its own validator. Collapsed here
// into one enum with an explicit initial state.
const (
	StatusQueued     Status = "QUEUED"
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN PROGRESS"
	StatusDone       Status = "DONE"
)

// Valid reports whether s is a member of the status enum.
func (s Status) Valid() bool {
	switch s {
	case StatusQueued, StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Job struct {
	ID          int64
	UserID      int64
	Title       string
	Description *string // nil means no description
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// JobPatch carries the job fields a caller may change via update. A nil
// field is left untouched. Ownership is not patchable.
type JobPatch struct {
	Title       *string
	Description *string
	Status      *Status
}

func (p JobPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}
