package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Error kinds reported by the store and the task operations built on it.
// Callers match them with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("task not found")
	ErrCorruptStore = errors.New("corrupt task store")
	ErrPersistence  = errors.New("persistence error")
)

// Status represents a task status.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses lists every valid status in workflow order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// ParseStatus converts a user-supplied filter into a Status.
// The empty string is returned unchanged and means "any status".
func ParseStatus(s string) (Status, error) {
	if s == "" {
		return "", nil
	}
	status := Status(s)
	if !status.Valid() {
		return "", &ValidationError{
			Path: "status",
			Err:  fmt.Errorf("invalid status %q, must be one of: %s", s, statusList()),
		}
	}
	return status, nil
}

func statusList() string {
	names := make([]string, 0, 3)
	for _, s := range Statuses() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// Task represents a single tracked unit of work.
type Task struct {
	ID          int
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // Field or JSON path the error refers to
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ValidateDescription rejects empty and whitespace-only descriptions.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return &ValidationError{
			Path: "description",
			Err:  errors.New("must not be empty"),
		}
	}
	return nil
}
