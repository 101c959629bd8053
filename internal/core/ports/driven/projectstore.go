package driven

import (
	"context"

	"github.com/dextr-labs/dextr-cli/internal/core/domain"
)

// ProjectStore is the project registry. Every update replaces the whole
// record for an ID rather than mutating fields in place; there is no
// delete operation. List order is newest first.
type ProjectStore interface {
	// Save stores or replaces a project by ID.
	Save(ctx context.Context, project domain.Project) error

	// Get retrieves a project by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Project, error)

	// List returns all projects, newest first.
	List(ctx context.Context) ([]domain.Project, error)
}
