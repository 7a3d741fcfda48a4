package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nibzard/task-cli/internal/todo"
)

const ruleWidth = 40

// printTask writes one task as a labeled block.
func printTask(w io.Writer, t todo.Task) {
	fmt.Fprintf(w, "ID:          %d\n", t.ID)
	fmt.Fprintf(w, "Description: %s\n", t.Description)
	fmt.Fprintf(w, "Status:      %s\n", t.Status)
	fmt.Fprintf(w, "Created At:  %s\n", formatTime(t.CreatedAt))
	fmt.Fprintf(w, "Updated At:  %s\n", formatTime(t.UpdatedAt))
}

// printTaskList writes each task block followed by a rule line.
func printTaskList(w io.Writer, list []todo.Task) {
	rule := strings.Repeat("-", ruleWidth)
	for _, t := range list {
		printTask(w, t)
		fmt.Fprintln(w, rule)
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
