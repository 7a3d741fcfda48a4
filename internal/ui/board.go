// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/nibzard/task-cli/internal/tasks"
	"github.com/nibzard/task-cli/internal/todo"
)

// BoardOption configures the board behavior.
type BoardOption func(*boardConfig)

// boardConfig holds board configuration.
type boardConfig struct {
	refreshInterval time.Duration
	watch           bool
}

// WithRefreshInterval sets how often the board reloads without a file event.
func WithRefreshInterval(d time.Duration) BoardOption {
	return func(c *boardConfig) {
		c.refreshInterval = d
	}
}

// WithWatch enables reloading when the store file changes on disk.
func WithWatch(enabled bool) BoardOption {
	return func(c *boardConfig) {
		c.watch = enabled
	}
}

// RunBoard starts the read-only task board for the service's store.
func RunBoard(ctx context.Context, svc *tasks.Service, opts ...BoardOption) error {
	c := &boardConfig{
		refreshInterval: 5 * time.Second,
		watch:           true,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("board requires a TTY")
	}

	model := newBoardModel(svc, c.refreshInterval)
	if c.watch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create file watcher: %w", err)
		}
		defer watcher.Close()
		// Saves rename a temp file over the store, so watch the directory.
		if err := watcher.Add(filepath.Dir(model.path)); err != nil {
			return fmt.Errorf("watch %s: %w", filepath.Dir(model.path), err)
		}
		model.watcher = watcher
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type boardModel struct {
	svc          *tasks.Service
	path         string
	watcher      *fsnotify.Watcher
	loadErr      error
	watchErr     error
	all          []todo.Task
	counts       map[todo.Status]int
	filter       todo.Status
	showHelp     bool
	tickInterval time.Duration
	lastRefresh  time.Time
}

type tickMsg time.Time

type fileChangedMsg struct{}

type watchErrMsg struct {
	err error
}

func newBoardModel(svc *tasks.Service, interval time.Duration) *boardModel {
	return &boardModel{
		svc:          svc,
		path:         filepath.Clean(svc.Path()),
		tickInterval: interval,
	}
}

func (m *boardModel) Init() tea.Cmd {
	m.refresh()
	cmds := []tea.Cmd{tickCmd(m.tickInterval)}
	if m.watcher != nil {
		cmds = append(cmds, waitForChange(m.watcher, m.path))
	}
	return tea.Batch(cmds...)
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "h", "?":
			m.showHelp = !m.showHelp
		case "1":
			m.filter = todo.StatusTodo
		case "2":
			m.filter = todo.StatusInProgress
		case "3":
			m.filter = todo.StatusDone
		case "0":
			m.filter = ""
		}
		return m, nil
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	case fileChangedMsg:
		m.refresh()
		return m, waitForChange(m.watcher, m.path)
	case watchErrMsg:
		m.watchErr = msg.err
		return m, waitForChange(m.watcher, m.path)
	}
	return m, nil
}

func (m *boardModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval, m.watcher != nil)
		return b.String()
	}

	if m.filter != "" {
		b.WriteString(fmt.Sprintf("Filter: %s (0 to clear)\n\n", m.filter))
	}

	if m.loadErr != nil {
		b.WriteString("Error loading task store:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval, m.watcher != nil)
		return b.String()
	}
	if m.counts == nil {
		b.WriteString("Loading...\n\n")
		writeFooter(&b, m.tickInterval, m.watcher != nil)
		return b.String()
	}

	writeOverview(&b, m.counts)
	writeTasks(&b, m.visible())
	b.WriteString(fmt.Sprintf("Store: %s (loaded %s)\n", m.path, m.lastRefresh.Format("15:04:05")))
	if m.watchErr != nil {
		b.WriteString(fmt.Sprintf("Watch error: %v\n", m.watchErr))
	}
	b.WriteString("\n")
	writeFooter(&b, m.tickInterval, m.watcher != nil)
	return b.String()
}

// visible returns the loaded tasks that pass the current filter.
func (m *boardModel) visible() []todo.Task {
	if m.filter == "" {
		return m.all
	}
	out := make([]todo.Task, 0, len(m.all))
	for _, t := range m.all {
		if t.Status == m.filter {
			out = append(out, t)
		}
	}
	return out
}

func (m *boardModel) refresh() {
	all, err := m.svc.List("")
	if err != nil {
		m.loadErr = err
		m.all = nil
		m.counts = nil
		return
	}
	m.loadErr = nil
	m.all = all
	m.counts = map[todo.Status]int{
		todo.StatusTodo:       0,
		todo.StatusInProgress: 0,
		todo.StatusDone:       0,
	}
	for _, t := range all {
		m.counts[t.Status]++
	}
	m.lastRefresh = time.Now()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForChange blocks until the watcher reports a change to path.
func waitForChange(w *fsnotify.Watcher, path string) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
					event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
					return fileChangedMsg{}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

func writeTitle(b *strings.Builder) {
	title := "Task Board"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, counts map[todo.Status]int) {
	b.WriteString(fmt.Sprintf("  Todo: %d  In progress: %d  Done: %d\n\n",
		counts[todo.StatusTodo],
		counts[todo.StatusInProgress],
		counts[todo.StatusDone],
	))
}

func writeTasks(b *strings.Builder, list []todo.Task) {
	b.WriteString("Tasks\n\n")
	if len(list) == 0 {
		b.WriteString("  No tasks.\n\n")
		return
	}
	for i := range list {
		b.WriteString(formatTask(&list[i]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh data\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Filter by todo\n")
	b.WriteString("  2            Filter by in-progress\n")
	b.WriteString("  3            Filter by done\n")
	b.WriteString("  0            Clear filter\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration, watching bool) {
	refresh := fmt.Sprintf("refreshing every %s", interval)
	if watching {
		refresh = "watching for changes"
	}
	b.WriteString(fmt.Sprintf("Press h for help | q to quit | %s\n", refresh))
}

func formatTask(t *todo.Task) string {
	statusIcon := " "
	switch t.Status {
	case todo.StatusInProgress:
		statusIcon = ">"
	case todo.StatusDone:
		statusIcon = "x"
	}

	description := t.Description
	if runes := []rune(description); len(runes) > 60 {
		description = string(runes[:57]) + "..."
	}
	return fmt.Sprintf("  %s [%d] %s  (updated %s)", statusIcon, t.ID, description,
		t.UpdatedAt.Local().Format("2006-01-02 15:04"))
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
