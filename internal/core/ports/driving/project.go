package driving

import (
	"context"

	"github.com/dextr-labs/dextr-cli/internal/core/domain"
)

// TargetDraft carries the phase-1 inputs for saving or publishing a
// target schema. An empty ProjectID creates a net-new project.
type TargetDraft struct {
	// ProjectID is the project to update, or empty for a new project.
	ProjectID string

	// Name is the project name. Defaults to "Untitled Project".
	Name string

	// Platform is the target integration platform.
	Platform domain.Platform

	// Schema is the target schema to store.
	Schema *domain.SchemaDocument
}

// ProjectService drives the phase-gated project lifecycle. All guard
// invariants of the state machine are enforced here, at the data layer.
type ProjectService interface {
	// Get retrieves a project by ID.
	Get(ctx context.Context, id string) (*domain.Project, error)

	// List returns all projects, newest first.
	List(ctx context.Context) ([]domain.Project, error)

	// SaveTargetDraft saves a target schema as a draft, creating the
	// project on first save. Sets the target phase, status Draft.
	SaveTargetDraft(ctx context.Context, draft TargetDraft) (*domain.Project, error)

	// PublishTarget publishes the target schema, locking it.
	// Requires a schema to be present.
	PublishTarget(ctx context.Context, draft TargetDraft) (*domain.Project, error)

	// UpdateSchemaText applies a manual edit of the schema JSON text.
	// Invalid JSON is stored with the validity flag cleared rather than
	// rejected, so the text stays editable; a valid parse replaces the
	// stored schema. Rejected once the schema is published.
	UpdateSchemaText(ctx context.Context, id, text string) (*domain.Project, error)

	// SaveSourceFields stores the analysed source fields and sets the
	// source phase. Requires the target phase; rejected once a mapping
	// draft or published transformation locks the source table.
	SaveSourceFields(ctx context.Context, id string, fields *domain.SchemaDocument) (*domain.Project, error)

	// SaveMappingDraft stores the mapping set and rules prompt, sets the
	// mapped phase and always clears the exported flag. Requires the
	// source phase; rejected once the transformation is published.
	SaveMappingDraft(ctx context.Context, id string, mappings domain.MappingSet, prompt string) (*domain.Project, error)

	// SetMappingLink applies one atomic link edit to the stored mapping
	// set, preserving the uniqueness invariant. A sentinel side un-maps.
	SetMappingLink(ctx context.Context, id string, candidate domain.Link) (*domain.Project, error)

	// PublishTransformation publishes the mapping: sets the exported
	// phase and status Published, locking mapping and source edits.
	// Requires the mapped phase.
	PublishTransformation(ctx context.Context, id string) (*domain.Project, error)

	// StoreGeneratedCode overwrites the generated transformation logic.
	// Requires a published transformation; phases are unchanged.
	StoreGeneratedCode(ctx context.Context, id, code string) (*domain.Project, error)
}
