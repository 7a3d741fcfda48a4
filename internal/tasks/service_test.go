package tasks

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/task-cli/internal/todo"
)

// stepClock returns a time source that advances one second per call.
func stepClock() func() time.Time {
	current := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	return New(path, WithClock(stepClock()))
}

func seed(t *testing.T, svc *Service, tasks ...todo.Task) {
	t.Helper()
	store := todo.New()
	for _, task := range tasks {
		store.Put(task)
	}
	require.NoError(t, store.Save(svc.Path()))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestAddAssignsIDsAndDefaults(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.Add("buy milk")
	require.NoError(t, err)
	assert.Equal(t, 0, first.ID)
	assert.Equal(t, "buy milk", first.Description)
	assert.Equal(t, todo.StatusTodo, first.Status)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
	assert.Equal(t, time.UTC, first.CreatedAt.Location())

	second, err := svc.Add("walk dog")
	require.NoError(t, err)
	assert.Equal(t, 1, second.ID)

	all, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first, all[0])
	assert.Equal(t, second, all[1])
}

func TestAddAfterSparseIDs(t *testing.T) {
	svc := newTestService(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seed(t, svc,
		todo.Task{ID: 0, Description: "a", Status: todo.StatusTodo, CreatedAt: now, UpdatedAt: now},
		todo.Task{ID: 2, Description: "b", Status: todo.StatusDone, CreatedAt: now, UpdatedAt: now},
		todo.Task{ID: 5, Description: "c", Status: todo.StatusInProgress, CreatedAt: now, UpdatedAt: now},
	)

	task, err := svc.Add("d")
	require.NoError(t, err)
	assert.Equal(t, 6, task.ID)
}

func TestAddFailsWhenIDsAreExhausted(t *testing.T) {
	svc := newTestService(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seed(t, svc, todo.Task{ID: math.MaxInt, Description: "last", Status: todo.StatusTodo, CreatedAt: now, UpdatedAt: now})
	before := readFile(t, svc.Path())

	_, err := svc.Add("one more")
	require.Error(t, err)
	assert.ErrorIs(t, err, todo.ErrValidation)
	assert.Equal(t, before, readFile(t, svc.Path()), "failed add must not touch the store")

	all, err := svc.List("")
	require.NoError(t, err, "store must stay readable")
	require.Len(t, all, 1)
	assert.Equal(t, math.MaxInt, all[0].ID)
}

func TestAddRejectsBlankDescription(t *testing.T) {
	for _, description := range []string{"", "   ", "\t"} {
		svc := newTestService(t)

		_, err := svc.Add(description)
		require.Error(t, err)
		assert.ErrorIs(t, err, todo.ErrValidation)
		assert.NoFileExists(t, svc.Path())
	}
}

func TestUpdate(t *testing.T) {
	svc := newTestService(t)
	original, err := svc.Add("buy milk")
	require.NoError(t, err)

	updated, err := svc.Update(original.ID, "buy oat milk")
	require.NoError(t, err)
	assert.Equal(t, "buy oat milk", updated.Description)
	assert.Equal(t, original.Status, updated.Status)
	assert.Equal(t, original.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(original.UpdatedAt))

	all, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, updated, all[0])
}

func TestUpdateErrors(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Add("buy milk")
	require.NoError(t, err)
	before := readFile(t, svc.Path())

	_, err = svc.Update(99, "x")
	assert.ErrorIs(t, err, todo.ErrNotFound)

	_, err = svc.Update(0, "")
	assert.ErrorIs(t, err, todo.ErrValidation)

	_, err = svc.Update(0, "  ")
	assert.ErrorIs(t, err, todo.ErrValidation)

	assert.Equal(t, before, readFile(t, svc.Path()), "failed updates must not touch the store")
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Add("one")
	require.NoError(t, err)
	_, err = svc.Add("two")
	require.NoError(t, err)

	_, err = svc.Delete(7)
	assert.ErrorIs(t, err, todo.ErrNotFound)

	removed, err := svc.Delete(0)
	require.NoError(t, err)
	assert.Equal(t, "one", removed.Description)

	all, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 1, all[0].ID)

	_, err = svc.Delete(0)
	assert.ErrorIs(t, err, todo.ErrNotFound)
}

func TestMarkStatusErrorsOnMissingID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.MarkInProgress(3)
	assert.ErrorIs(t, err, todo.ErrNotFound)

	_, err = svc.MarkDone(3)
	assert.ErrorIs(t, err, todo.ErrNotFound)
}

func TestMarkDoneTwiceRefreshesUpdatedAt(t *testing.T) {
	svc := newTestService(t)
	created, err := svc.Add("ship release")
	require.NoError(t, err)

	first, err := svc.MarkDone(created.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.StatusDone, first.Status)

	second, err := svc.MarkDone(created.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.StatusDone, second.Status)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt), "updatedAt must strictly increase")
	assert.Equal(t, created.CreatedAt, second.CreatedAt)
}

func TestStatusTransitionsAreUnrestricted(t *testing.T) {
	svc := newTestService(t)
	task, err := svc.Add("flip flop")
	require.NoError(t, err)

	steps := []struct {
		apply func(int) (todo.Task, error)
		want  todo.Status
	}{
		{svc.MarkDone, todo.StatusDone},
		{svc.MarkInProgress, todo.StatusInProgress},
		{svc.MarkInProgress, todo.StatusInProgress},
		{svc.MarkDone, todo.StatusDone},
	}

	last := task.UpdatedAt
	for i, step := range steps {
		got, err := step.apply(task.ID)
		require.NoError(t, err, "step %d", i)
		assert.Equal(t, step.want, got.Status, "step %d", i)
		assert.True(t, got.UpdatedAt.After(last), "step %d", i)
		last = got.UpdatedAt
	}
}

func TestListFilters(t *testing.T) {
	svc := newTestService(t)
	for _, d := range []string{"a", "b", "c", "d", "e"} {
		_, err := svc.Add(d)
		require.NoError(t, err)
	}
	_, err := svc.MarkDone(3)
	require.NoError(t, err)
	_, err = svc.MarkDone(0)
	require.NoError(t, err)
	_, err = svc.MarkInProgress(1)
	require.NoError(t, err)

	tests := []struct {
		filter string
		want   []int
	}{
		{"", []int{0, 1, 2, 3, 4}},
		{"done", []int{0, 3}},
		{"in-progress", []int{1}},
		{"todo", []int{2, 4}},
	}

	for _, tt := range tests {
		t.Run("filter="+tt.filter, func(t *testing.T) {
			got, err := svc.List(tt.filter)
			require.NoError(t, err)
			ids := make([]int, 0, len(got))
			for _, task := range got {
				ids = append(ids, task.ID)
				if tt.filter != "" {
					assert.Equal(t, todo.Status(tt.filter), task.Status)
				}
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.List("bogus")
	assert.ErrorIs(t, err, todo.ErrValidation)
}

func TestListDoesNotWrite(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Add("read only")
	require.NoError(t, err)

	info, err := os.Stat(svc.Path())
	require.NoError(t, err)
	before := readFile(t, svc.Path())

	_, err = svc.List("")
	require.NoError(t, err)

	after, err := os.Stat(svc.Path())
	require.NoError(t, err)
	assert.Equal(t, before, readFile(t, svc.Path()))
	assert.True(t, os.SameFile(info, after), "list must not replace the store file")
}

func TestCorruptStoreIsNeverOverwritten(t *testing.T) {
	svc := newTestService(t)
	garbage := "{not json"
	require.NoError(t, os.WriteFile(svc.Path(), []byte(garbage), 0644))

	_, err := svc.Add("new task")
	assert.ErrorIs(t, err, todo.ErrCorruptStore)
	_, err = svc.List("")
	assert.ErrorIs(t, err, todo.ErrCorruptStore)
	_, err = svc.MarkDone(0)
	assert.ErrorIs(t, err, todo.ErrCorruptStore)

	assert.Equal(t, garbage, readFile(t, svc.Path()))
}

func TestCounts(t *testing.T) {
	svc := newTestService(t)
	for _, d := range []string{"a", "b", "c"} {
		_, err := svc.Add(d)
		require.NoError(t, err)
	}
	_, err := svc.MarkDone(2)
	require.NoError(t, err)

	counts, err := svc.Counts()
	require.NoError(t, err)
	assert.Equal(t, map[todo.Status]int{
		todo.StatusTodo:       2,
		todo.StatusInProgress: 0,
		todo.StatusDone:       1,
	}, counts)
}

func TestEndToEndLifecycle(t *testing.T) {
	svc := newTestService(t)
	assert.NoFileExists(t, svc.Path())

	added, err := svc.Add("buy milk")
	require.NoError(t, err)
	assert.Equal(t, 0, added.ID)
	assert.Equal(t, todo.StatusTodo, added.Status)

	all, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, all, 1)

	started, err := svc.MarkInProgress(0)
	require.NoError(t, err)
	assert.Equal(t, todo.StatusInProgress, started.Status)
	assert.True(t, started.UpdatedAt.After(added.UpdatedAt))
	assert.Equal(t, added.CreatedAt, started.CreatedAt)

	_, err = svc.Delete(0)
	require.NoError(t, err)
	all, err = svc.List("")
	require.NoError(t, err)
	assert.Empty(t, all)

	again, err := svc.Add("second")
	require.NoError(t, err)
	assert.Equal(t, 0, again.ID)
}

func TestFailedSaveKeepsPreviousContent(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("directory permissions are not enforced on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	dir := t.TempDir()
	svc := New(filepath.Join(dir, "tasks.json"), WithClock(stepClock()))
	_, err := svc.Add("buy milk")
	require.NoError(t, err)
	before := readFile(t, svc.Path())

	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	_, err = svc.Add("walk dog")
	assert.ErrorIs(t, err, todo.ErrPersistence)
	_, err = svc.Update(0, "buy oat milk")
	assert.ErrorIs(t, err, todo.ErrPersistence)
	_, err = svc.MarkDone(0)
	assert.ErrorIs(t, err, todo.ErrPersistence)
	_, err = svc.Delete(0)
	assert.ErrorIs(t, err, todo.ErrPersistence)

	assert.Equal(t, before, readFile(t, svc.Path()))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files may be left behind")
}
