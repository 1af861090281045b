// Package projects owns the project collection and keeps it persisted.
package projects

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"taskboard/internal/metrics"
	"taskboard/internal/models"
	"taskboard/internal/storage"
)

// UnknownTitle is shown for references to a project that does not exist.
const UnknownTitle = "Unknown project"

// Store holds projects in insertion order. Every mutation rewrites the whole
// collection under storage.KeyProjects.
type Store struct {
	mu       sync.Mutex
	kv       storage.KV
	logger   *slog.Logger
	projects []models.Project
	selected *models.Project
	newID    func() string
}

// Option customizes a Store.
type Option func(*Store)

// WithIDGenerator replaces the generator used for projects added without an id.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// NewStore loads the persisted collection. A missing or unreadable value falls
// back to the sample set, which is not written until the first mutation; a
// corrupt value is left in place.
func NewStore(ctx context.Context, kv storage.KV, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{kv: kv, logger: logger, newID: models.NewID}
	for _, opt := range opts {
		opt(s)
	}

	var loaded []models.Project
	ok, err := storage.LoadJSON(ctx, kv, storage.KeyProjects, &loaded)
	switch {
	case err != nil:
		logger.Warn("stored projects unreadable, using samples", slog.String("error", err.Error()))
		s.projects = Samples()
	case !ok:
		s.projects = Samples()
	default:
		s.projects = loaded
	}
	return s
}

// List returns a snapshot of all projects in display order.
func (s *Store) List() []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out
}

// Get returns the first project with id.
func (s *Store) Get(id string) (models.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.projects[i].Clone(), true
	}
	return models.Project{}, false
}

// Title resolves a project id to its title for display joins.
func (s *Store) Title(id string) string {
	if p, ok := s.Get(id); ok {
		return p.Title
	}
	return UnknownTitle
}

// Add appends p, assigning an id when it has none. Uniqueness of caller
// supplied ids is the caller's responsibility: duplicates shadow on lookup.
func (s *Store) Add(ctx context.Context, p models.Project) models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = s.newID()
	}
	if p.TeamMembers == nil {
		p.TeamMembers = []string{}
	}
	stored := p.Clone()
	s.projects = append(s.projects, stored)
	s.persist(ctx, "add")
	return stored.Clone()
}

// ErrMissingID is returned for patches that do not name a project.
var ErrMissingID = errors.New("project patch without id")

// Update merges patch into the matching project. An unknown id is a no-op and
// nothing is persisted.
func (s *Store) Update(ctx context.Context, patch models.ProjectPatch) (models.Project, bool, error) {
	return s.UpdateIf(ctx, patch, nil)
}

// UpdateIf is Update with a check on the merged record. The merge, the check
// and the write happen under one lock; when check fails the project is left
// unchanged and its error is returned.
func (s *Store) UpdateIf(ctx context.Context, patch models.ProjectPatch, check func(models.Project) error) (models.Project, bool, error) {
	if patch.ID == "" {
		return models.Project{}, false, ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(patch.ID)
	if i < 0 {
		return models.Project{}, false, nil
	}
	merged := s.projects[i].Clone()
	patch.Apply(&merged)
	if check != nil {
		if err := check(merged.Clone()); err != nil {
			return models.Project{}, true, err
		}
	}
	s.projects[i] = merged
	s.persist(ctx, "update")
	return merged.Clone(), true, nil
}

// Delete removes every project with id and persists the result, even when
// nothing matched. It reports whether anything was removed.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	removed := len(kept) != len(s.projects)
	s.projects = kept
	s.persist(ctx, "delete")
	return removed
}

// Select sets the transient selection; nil clears it. It is not persisted.
func (s *Store) Select(p *models.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == nil {
		s.selected = nil
		return
	}
	c := p.Clone()
	s.selected = &c
}

// Selected returns the current selection.
func (s *Store) Selected() (models.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return models.Project{}, false
	}
	return s.selected.Clone(), true
}

func (s *Store) indexOf(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with mu held.
func (s *Store) persist(ctx context.Context, op string) {
	metrics.StoreMutations.WithLabelValues("projects", op).Inc()
	storage.PersistJSON(ctx, s.kv, storage.KeyProjects, s.projects, s.logger)
}
