package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/nibzard/task-cli/internal/todo"
)

// Exit codes returned by the task-cli binary.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitValidation  = 2
	ExitNotFound    = 3
	ExitCorrupt     = 4
	ExitPersistence = 5
)

// ExitCode maps an error returned by Run to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, todo.ErrCorruptStore):
		return ExitCorrupt
	case errors.Is(err, todo.ErrPersistence):
		return ExitPersistence
	case errors.Is(err, todo.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, todo.ErrValidation):
		return ExitValidation
	default:
		return ExitFailure
	}
}

// parseID converts a positional argument into a task id.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 0 {
		return 0, &todo.ValidationError{
			Path: "id",
			Err:  fmt.Errorf("%q is not a valid task id (expected a non-negative integer)", arg),
		}
	}
	return id, nil
}
