// Package tasks implements the task tracker operations on top of the store.
//
// Every operation loads the store file fresh, applies its change in memory,
// and saves the whole store back before returning. A failed operation leaves
// the file exactly as it was. Read-only operations never save.
//
// Operations report failures with the error kinds defined in package todo:
//
//   - todo.ErrValidation: empty description or unknown status filter
//   - todo.ErrNotFound: the referenced id is not in the store
//   - todo.ErrCorruptStore: the store file exists but is not valid
//   - todo.ErrPersistence: the store file could not be read or written
//
// Status transitions are unrestricted: MarkInProgress and MarkDone may be
// applied from any status, including the one the task already has, and
// always refresh the task's updatedAt timestamp.
package tasks
