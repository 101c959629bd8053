package memory

import (
	"context"
	"sync"

	"github.com/dextr-labs/dextr-cli/internal/core/domain"
	"github.com/dextr-labs/dextr-cli/internal/core/ports/driven"
)

// Ensure ProjectStore implements the interface.
var _ driven.ProjectStore = (*ProjectStore)(nil)

// ProjectStore is an in-memory implementation of driven.ProjectStore.
// Records are deep-copied on the way in and out so the registry keeps
// exclusive ownership of every stored project.
type ProjectStore struct {
	mu       sync.RWMutex
	projects map[string]domain.Project
	order    []string
}

// NewProjectStore creates a new in-memory project store.
func NewProjectStore() *ProjectStore {
	return &ProjectStore{
		projects: make(map[string]domain.Project),
	}
}

// Save stores or replaces a project by ID.
func (s *ProjectStore) Save(_ context.Context, project domain.Project) error {
	if project.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[project.ID]; !exists {
		s.order = append(s.order, project.ID)
	}
	s.projects[project.ID] = *project.Clone()
	return nil
}

// Get retrieves a project by ID.
func (s *ProjectStore) Get(_ context.Context, id string) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return project.Clone(), nil
}

// List returns all projects, newest first.
func (s *ProjectStore) List(_ context.Context) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Project, 0, len(s.projects))
	for i := len(s.order) - 1; i >= 0; i-- {
		project := s.projects[s.order[i]]
		result = append(result, *project.Clone())
	}
	return result, nil
}
