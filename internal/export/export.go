// Package export writes task lists as JSON, CSV, or PDF reports.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nibzard/task-cli/internal/todo"
)

// Format names an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// ParseFormat validates a format name. An empty name falls back to the
// extension of path.
func ParseFormat(name, path string) (Format, error) {
	if name == "" {
		name = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	switch f := Format(strings.ToLower(name)); f {
	case FormatJSON, FormatCSV, FormatPDF:
		return f, nil
	}
	return "", &todo.ValidationError{
		Path: "format",
		Err:  fmt.Errorf("unknown export format %q, must be one of: json, csv, pdf", name),
	}
}

// record is the exported shape of a task. Unlike the store file it carries
// the id inline.
type record struct {
	ID          int         `json:"id"`
	Description string      `json:"description"`
	Status      todo.Status `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Options controls report metadata.
type Options struct {
	Title     string
	Generated time.Time
}

// Write encodes tasks to w in the given format.
func Write(w io.Writer, tasks []todo.Task, format Format, opts Options) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, tasks)
	case FormatCSV:
		return writeCSV(w, tasks)
	case FormatPDF:
		return writePDF(w, tasks, opts)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func writeJSON(w io.Writer, tasks []todo.Task) error {
	records := make([]record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, record(t))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func writeCSV(w io.Writer, tasks []todo.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "description", "status", "createdAt", "updatedAt"}); err != nil {
		return err
	}
	for _, t := range tasks {
		row := []string{
			strconv.Itoa(t.ID),
			t.Description,
			string(t.Status),
			t.CreatedAt.UTC().Format(time.RFC3339Nano),
			t.UpdatedAt.UTC().Format(time.RFC3339Nano),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writePDF(w io.Writer, tasks []todo.Task, opts Options) error {
	title := opts.Title
	if title == "" {
		title = "Task Report"
	}
	generated := opts.Generated
	if generated.IsZero() {
		generated = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreationDate(generated)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, tr(title))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(40, 6, fmt.Sprintf("Generated %s, %d task(s)", generated.UTC().Format(time.RFC3339), len(tasks)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	for _, t := range tasks {
		line := fmt.Sprintf("[%d] %s (%s)", t.ID, t.Description, t.Status)
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
		pdf.SetFont("Arial", "", 8)
		pdf.MultiCell(0, 5, fmt.Sprintf("created %s, updated %s",
			t.CreatedAt.UTC().Format(time.RFC3339), t.UpdatedAt.UTC().Format(time.RFC3339)), "0", "L", false)
		pdf.SetFont("Arial", "", 10)
		pdf.Ln(2)
	}

	return pdf.Output(w)
}
