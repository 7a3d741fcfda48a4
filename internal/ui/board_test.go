package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/nibzard/task-cli/internal/tasks"
	"github.com/nibzard/task-cli/internal/todo"
)

func newBoardFixture(t *testing.T) (*boardModel, *tasks.Service) {
	t.Helper()
	svc := tasks.New(filepath.Join(t.TempDir(), "tasks.json"))
	for _, d := range []string{"buy milk", "walk dog", "write report"} {
		if _, err := svc.Add(d); err != nil {
			t.Fatalf("Add(%q): %v", d, err)
		}
	}
	if _, err := svc.MarkInProgress(1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.MarkDone(2); err != nil {
		t.Fatal(err)
	}
	m := newBoardModel(svc, time.Second)
	m.refresh()
	return m, svc
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoardViewShowsCountsAndTasks(t *testing.T) {
	m, _ := newBoardFixture(t)
	view := m.View()

	for _, want := range []string{
		"Task Board",
		"Todo: 1  In progress: 1  Done: 1",
		"[0] buy milk",
		"> [1] walk dog",
		"x [2] write report",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestBoardFilterKeys(t *testing.T) {
	m, _ := newBoardFixture(t)

	tests := []struct {
		key     string
		want    todo.Status
		visible []int
	}{
		{"1", todo.StatusTodo, []int{0}},
		{"2", todo.StatusInProgress, []int{1}},
		{"3", todo.StatusDone, []int{2}},
		{"0", "", []int{0, 1, 2}},
	}

	for _, tt := range tests {
		m.Update(key(tt.key))
		if m.filter != tt.want {
			t.Errorf("key %s: filter = %q, want %q", tt.key, m.filter, tt.want)
		}
		var ids []int
		for _, task := range m.visible() {
			ids = append(ids, task.ID)
		}
		if len(ids) != len(tt.visible) {
			t.Fatalf("key %s: visible = %v, want %v", tt.key, ids, tt.visible)
		}
		for i := range ids {
			if ids[i] != tt.visible[i] {
				t.Errorf("key %s: visible = %v, want %v", tt.key, ids, tt.visible)
			}
		}
	}
}

func TestBoardRefreshPicksUpChanges(t *testing.T) {
	m, svc := newBoardFixture(t)
	if _, err := svc.Add("new arrival"); err != nil {
		t.Fatal(err)
	}

	m.Update(fileChangedMsg{})
	if !strings.Contains(m.View(), "[3] new arrival") {
		t.Errorf("expected refreshed view to include new task:\n%s", m.View())
	}
}

func TestBoardShowsCorruptStore(t *testing.T) {
	m, svc := newBoardFixture(t)
	if err := os.WriteFile(svc.Path(), []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}

	m.Update(key("r"))
	view := m.View()
	if !strings.Contains(view, "Error loading task store") {
		t.Errorf("expected load error in view:\n%s", view)
	}
}

func TestBoardHelpAndQuit(t *testing.T) {
	m, _ := newBoardFixture(t)

	m.Update(key("?"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("expected help screen")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestWaitForChangeFiltersOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		t.Fatalf("watch: %v", err)
	}

	done := make(chan tea.Msg, 1)
	go func() {
		done <- waitForChange(watcher, path)()
	}()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := todo.New().Save(path); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-done:
		if _, ok := msg.(fileChangedMsg); !ok {
			t.Errorf("got %T, want fileChangedMsg", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer is not a TTY")
	}
}

func TestFormatTaskTruncatesLongDescriptions(t *testing.T) {
	task := &todo.Task{
		ID:          4,
		Description: strings.Repeat("é", 80),
		Status:      todo.StatusInProgress,
		UpdatedAt:   time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
	}

	got := formatTask(task)
	if !strings.HasPrefix(got, "  > [4] ") {
		t.Errorf("unexpected prefix: %q", got)
	}
	if !strings.Contains(got, strings.Repeat("é", 57)+"...") || strings.Contains(got, strings.Repeat("é", 58)) {
		t.Errorf("description not truncated to 57 runes: %q", got)
	}
}
