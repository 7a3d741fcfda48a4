package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

// Store is the full set of tasks persisted in one file, keyed by id.
type Store struct {
	tasks       map[int]Task
	initialized bool
}

// fileDocument is the on-disk shape of the store.
type fileDocument struct {
	Tasks map[string]taskRecord `json:"tasks"`
}

type taskRecord struct {
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// New returns an empty store.
func New() *Store {
	return &Store{tasks: make(map[int]Task)}
}

// Load reads the store file at path.
// A missing file is initialized as an empty store and written immediately.
// A file that exists but cannot be parsed or fails schema validation is
// reported as ErrCorruptStore.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: read task store %s: %w", ErrPersistence, path, err)
		}
		s := New()
		if err := s.Save(path); err != nil {
			return nil, err
		}
		s.initialized = true
		return s, nil
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes store bytes. Any failure is wrapped in ErrCorruptStore.
func Parse(data []byte) (*Store, error) {
	if err := validateDocument(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptStore, err)
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode task store: %w", ErrCorruptStore, err)
	}

	s := New()
	for key, rec := range doc.Tasks {
		id, err := strconv.Atoi(key)
		if err != nil || id < 0 || strconv.Itoa(id) != key {
			return nil, fmt.Errorf("%w: invalid task id %q", ErrCorruptStore, key)
		}
		s.tasks[id] = Task{
			ID:          id,
			Description: rec.Description,
			Status:      rec.Status,
			CreatedAt:   rec.CreatedAt.UTC(),
			UpdatedAt:   rec.UpdatedAt.UTC(),
		}
	}
	return s, nil
}

// Marshal encodes the store with 2-space indentation and a trailing newline.
func (s *Store) Marshal() ([]byte, error) {
	doc := fileDocument{Tasks: make(map[string]taskRecord, len(s.tasks))}
	for id, task := range s.tasks {
		doc.Tasks[strconv.Itoa(id)] = taskRecord{
			Description: task.Description,
			Status:      task.Status,
			CreatedAt:   task.CreatedAt.UTC(),
			UpdatedAt:   task.UpdatedAt.UTC(),
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal task store: %w", err)
	}
	return append(data, '\n'), nil
}

// Save replaces the file at path with the full store contents.
// The data is written to a temporary file in the same directory and renamed
// into place, so a failed save leaves the previous file intact.
func (s *Store) Save(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create store dir: %w", ErrPersistence, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrPersistence, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("%w: write task store: %w", ErrPersistence, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("%w: sync task store: %w", ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close task store: %w", ErrPersistence, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("%w: chmod task store: %w", ErrPersistence, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: replace task store: %w", ErrPersistence, err)
	}
	committed = true
	return nil
}

// Initialized reports whether Load created this store because no file existed.
func (s *Store) Initialized() bool {
	return s.initialized
}

// NextID returns 1 + the highest id in the store, or 0 when it is empty.
// It fails once the highest id is math.MaxInt.
func (s *Store) NextID() (int, error) {
	next := 0
	for id := range s.tasks {
		if id == math.MaxInt {
			return 0, &ValidationError{
				Path: "id",
				Err:  fmt.Errorf("task id %d is the largest possible id, no new id can be assigned", id),
			}
		}
		if id >= next {
			next = id + 1
		}
	}
	return next, nil
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id int) (Task, bool) {
	task, ok := s.tasks[id]
	return task, ok
}

// Put inserts or replaces a task under its own id.
func (s *Store) Put(task Task) {
	s.tasks[task.ID] = task
}

// Remove deletes a task and reports whether it existed.
func (s *Store) Remove(id int) bool {
	if _, ok := s.tasks[id]; !ok {
		return false
	}
	delete(s.tasks, id)
	return true
}

// Tasks returns every task in ascending id order.
func (s *Store) Tasks() []Task {
	return s.Filter("")
}

// Filter returns the tasks with the given status in ascending id order.
// An empty status matches every task.
func (s *Store) Filter(status Status) []Task {
	out := make([]Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if status == "" || task.Status == status {
			out = append(out, task)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Counts returns the number of tasks per status.
func (s *Store) Counts() map[Status]int {
	counts := map[Status]int{
		StatusTodo:       0,
		StatusInProgress: 0,
		StatusDone:       0,
	}
	for _, task := range s.tasks {
		counts[task.Status]++
	}
	return counts
}
