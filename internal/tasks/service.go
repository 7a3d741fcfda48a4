package tasks

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/task-cli/internal/todo"
)

// Service runs task operations against a single store file.
type Service struct {
	path   string
	now    func() time.Time
	logger *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for createdAt and updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLogger sets the logger used for operation diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a Service for the store file at path.
func New(path string, opts ...Option) *Service {
	s := &Service{
		path:   path,
		now:    time.Now,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the store file path.
func (s *Service) Path() string {
	return s.path
}

// Add creates a new todo task and returns it with its assigned id.
func (s *Service) Add(description string) (todo.Task, error) {
	if err := todo.ValidateDescription(description); err != nil {
		return todo.Task{}, err
	}

	store, err := s.load()
	if err != nil {
		return todo.Task{}, err
	}

	id, err := store.NextID()
	if err != nil {
		return todo.Task{}, err
	}

	now := s.timestamp()
	task := todo.Task{
		ID:          id,
		Description: description,
		Status:      todo.StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	store.Put(task)

	if err := s.save(store); err != nil {
		return todo.Task{}, err
	}
	s.logger.Debug("task added", "id", task.ID)
	return task, nil
}

// Update replaces the description of an existing task.
func (s *Service) Update(id int, description string) (todo.Task, error) {
	return s.mutate(id, "task updated", func(task *todo.Task) error {
		if err := todo.ValidateDescription(description); err != nil {
			return err
		}
		task.Description = description
		return nil
	})
}

// Delete removes a task and returns the removed value.
func (s *Service) Delete(id int) (todo.Task, error) {
	store, err := s.load()
	if err != nil {
		return todo.Task{}, err
	}

	task, ok := store.Get(id)
	if !ok {
		return todo.Task{}, notFound(id)
	}
	store.Remove(id)

	if err := s.save(store); err != nil {
		return todo.Task{}, err
	}
	s.logger.Debug("task deleted", "id", id)
	return task, nil
}

// MarkInProgress sets a task's status to in-progress.
func (s *Service) MarkInProgress(id int) (todo.Task, error) {
	return s.setStatus(id, todo.StatusInProgress)
}

// MarkDone sets a task's status to done.
func (s *Service) MarkDone(id int) (todo.Task, error) {
	return s.setStatus(id, todo.StatusDone)
}

// List returns the tasks matching filter in ascending id order.
// An empty filter returns every task.
func (s *Service) List(filter string) ([]todo.Task, error) {
	status, err := todo.ParseStatus(filter)
	if err != nil {
		return nil, err
	}

	store, err := s.load()
	if err != nil {
		return nil, err
	}
	return store.Filter(status), nil
}

// Counts returns the number of tasks in each status.
func (s *Service) Counts() (map[todo.Status]int, error) {
	store, err := s.load()
	if err != nil {
		return nil, err
	}
	return store.Counts(), nil
}

func (s *Service) setStatus(id int, status todo.Status) (todo.Task, error) {
	return s.mutate(id, "task status changed", func(task *todo.Task) error {
		task.Status = status
		return nil
	})
}

// mutate applies fn to the task with the given id, refreshes updatedAt,
// and saves. Nothing is written if fn fails.
func (s *Service) mutate(id int, msg string, fn func(*todo.Task) error) (todo.Task, error) {
	store, err := s.load()
	if err != nil {
		return todo.Task{}, err
	}

	task, ok := store.Get(id)
	if !ok {
		return todo.Task{}, notFound(id)
	}
	if err := fn(&task); err != nil {
		return todo.Task{}, err
	}
	task.UpdatedAt = s.timestamp()
	store.Put(task)

	if err := s.save(store); err != nil {
		return todo.Task{}, err
	}
	s.logger.Debug(msg, "id", id, "status", task.Status)
	return task, nil
}

func (s *Service) load() (*todo.Store, error) {
	store, err := todo.Load(s.path)
	if err != nil {
		return nil, err
	}
	if store.Initialized() {
		s.logger.Info("created empty task store", "path", s.path)
	}
	s.logger.Debug("task store loaded", "path", s.path, "tasks", store.Len())
	return store, nil
}

func (s *Service) save(store *todo.Store) error {
	if err := store.Save(s.path); err != nil {
		return err
	}
	s.logger.Debug("task store saved", "path", s.path, "tasks", store.Len())
	return nil
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC()
}

func notFound(id int) error {
	return fmt.Errorf("%w: id %d", todo.ErrNotFound, id)
}
