// Package todo loads, validates, and saves the task store file.
//
// The store file (tasks.json) holds a single object keyed by task id:
//
//	{
//	  "tasks": {
//	    "0": {
//	      "description": "buy milk",
//	      "status": "todo",
//	      "createdAt": "2026-01-01T00:00:00Z",
//	      "updatedAt": "2026-01-01T00:00:00Z"
//	    }
//	  }
//	}
//
// Keys are decimal task ids. The id is not repeated inside the task object;
// it is restored from the key when the file is loaded.
//
// # Validation
//
// Every load validates the raw document against the embedded JSON Schema
// (tasks.schema.json, draft 2020-12) before decoding it. A file that exists
// but fails to parse or validate is reported as ErrCorruptStore and is never
// replaced with an empty store.
//
// # Task Status Values
//
//   - "todo": Task is pending (all new tasks start here)
//   - "in-progress": Task is being worked on
//   - "done": Task is complete
//
// # File Format
//
// When writing the store, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - Write to a temporary file in the same directory, then rename
package todo
