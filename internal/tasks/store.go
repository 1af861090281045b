// Package tasks owns the task collection and keeps it persisted.
package tasks

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"taskboard/internal/metrics"
	"taskboard/internal/models"
	"taskboard/internal/storage"
)

// Store holds tasks in insertion order. Every mutation rewrites the whole
// collection under storage.KeyTasks.
type Store struct {
	mu     sync.Mutex
	kv     storage.KV
	logger *slog.Logger
	tasks  []models.Task
	newID  func() string
}

// Option customizes a Store.
type Option func(*Store)

// WithIDGenerator replaces the generator used for tasks added without an id.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// NewStore loads the persisted collection, falling back to the sample set
// when the key is missing or unreadable.
func NewStore(ctx context.Context, kv storage.KV, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{kv: kv, logger: logger, newID: models.NewID}
	for _, opt := range opts {
		opt(s)
	}

	var loaded []models.Task
	ok, err := storage.LoadJSON(ctx, kv, storage.KeyTasks, &loaded)
	switch {
	case err != nil:
		logger.Warn("stored tasks unreadable, using samples", slog.String("error", err.Error()))
		s.tasks = Samples()
	case !ok:
		s.tasks = Samples()
	default:
		s.tasks = loaded
	}
	return s
}

// List returns a snapshot of all tasks in display order.
func (s *Store) List() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// ListByProject returns the tasks referencing projectID.
func (s *Store) ListByProject(projectID string) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Task{}
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

// Get returns the first task with id.
func (s *Store) Get(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return models.Task{}, false
}

// Add appends t, assigning an id when it has none. ProjectID is stored as is.
func (s *Store) Add(ctx context.Context, t models.Task) models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = s.newID()
	}
	s.tasks = append(s.tasks, t)
	s.persist(ctx, "add")
	return t
}

// ErrMissingID is returned for patches that do not name a task.
var ErrMissingID = errors.New("task patch without id")

// Update merges patch into the matching task. An unknown id is a no-op. Status
// and Completed are taken from the patch as given and may disagree afterwards.
func (s *Store) Update(ctx context.Context, patch models.TaskPatch) (models.Task, bool, error) {
	return s.UpdateIf(ctx, patch, nil)
}

// UpdateIf is Update with a check on the merged record, run under the same
// lock as the write. A failed check leaves the task unchanged.
func (s *Store) UpdateIf(ctx context.Context, patch models.TaskPatch, check func(models.Task) error) (models.Task, bool, error) {
	if patch.ID == "" {
		return models.Task{}, false, ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(patch.ID)
	if i < 0 {
		return models.Task{}, false, nil
	}
	merged := s.tasks[i]
	patch.Apply(&merged)
	if check != nil {
		if err := check(merged); err != nil {
			return models.Task{}, true, err
		}
	}
	s.tasks[i] = merged
	s.persist(ctx, "update")
	return merged, true, nil
}

// ToggleComplete flips Completed and moves Status to completed or in-progress
// accordingly.
func (s *Store) ToggleComplete(ctx context.Context, id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, false
	}
	t := &s.tasks[i]
	t.Completed = !t.Completed
	if t.Completed {
		t.Status = models.StatusCompleted
	} else {
		t.Status = models.StatusInProgress
	}
	s.persist(ctx, "toggle")
	return *t, true
}

// Delete removes every task with id and persists the result.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	removed := len(kept) != len(s.tasks)
	s.tasks = kept
	s.persist(ctx, "delete")
	return removed
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with mu held.
func (s *Store) persist(ctx context.Context, op string) {
	metrics.StoreMutations.WithLabelValues("tasks", op).Inc()
	storage.PersistJSON(ctx, s.kv, storage.KeyTasks, s.tasks, s.logger)
}
