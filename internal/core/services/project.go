package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dextr-labs/dextr-cli/internal/core/domain"
	"github.com/dextr-labs/dextr-cli/internal/core/ports/driven"
	"github.com/dextr-labs/dextr-cli/internal/core/ports/driving"
	"github.com/dextr-labs/dextr-cli/internal/logger"
)

// Ensure ProjectService implements the interface.
var _ driving.ProjectService = (*ProjectService)(nil)

// DefaultProjectName is used when a draft is saved without a name.
const DefaultProjectName = "Untitled Project"

// ProjectService drives the phase-gated project lifecycle. Every guard
// of the state machine lives here so no front end can bypass it.
type ProjectService struct {
	store driven.ProjectStore
	ids   driven.IDGenerator
	clock driven.Clock
}

// NewProjectService creates a new project service.
func NewProjectService(store driven.ProjectStore, ids driven.IDGenerator, clock driven.Clock) *ProjectService {
	return &ProjectService{
		store: store,
		ids:   ids,
		clock: clock,
	}
}

// Get retrieves a project by ID.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: project ID is required", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

// List returns all projects, newest first.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.store.List(ctx)
}

// SaveTargetDraft saves a target schema as a draft, creating the project
// on first save. A published project's schema is immutable, so drafting
// over it is rejected rather than silently re-opening it.
func (s *ProjectService) SaveTargetDraft(ctx context.Context, draft driving.TargetDraft) (*domain.Project, error) {
	project, err := s.loadOrCreate(ctx, draft)
	if err != nil {
		return nil, err
	}
	if !project.CanEditSchema() {
		return nil, fmt.Errorf("project %s: %w", project.ID, domain.ErrSchemaLocked)
	}

	s.applyTargetDraft(project, draft)
	project.Status = domain.StatusDraft

	logger.Debug("Saving target draft for project %s (%s)", project.ID, project.Name)
	return s.persist(ctx, project)
}

// PublishTarget publishes the target schema, locking it against edits.
func (s *ProjectService) PublishTarget(ctx context.Context, draft driving.TargetDraft) (*domain.Project, error) {
	project, err := s.loadOrCreate(ctx, draft)
	if err != nil {
		return nil, err
	}
	if !project.CanEditSchema() {
		return nil, fmt.Errorf("project %s: %w", project.ID, domain.ErrSchemaLocked)
	}

	s.applyTargetDraft(project, draft)
	if project.Artifacts.Schema == nil || project.Artifacts.Schema.IsEmpty() {
		return nil, fmt.Errorf("%w: cannot publish without a target schema", domain.ErrInvalidInput)
	}
	if !project.Artifacts.SchemaReady() {
		return nil, fmt.Errorf("project %s: %w", project.ID, domain.ErrSchemaInvalid)
	}
	project.Status = domain.StatusPublished

	logger.Debug("Publishing target schema for project %s (%s)", project.ID, project.Name)
	return s.persist(ctx, project)
}

// UpdateSchemaText applies a manual edit of the schema JSON text.
// Invalid JSON is stored with the validity flag cleared rather than
// rejected, so the editor never loses the user's text.
func (s *ProjectService) UpdateSchemaText(ctx context.Context, id, text string) (*domain.Project, error) {
	project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !project.CanEditSchema() {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrSchemaLocked)
	}

	project.Artifacts.SchemaText = text
	if parsed, perr := domain.ParseSchemaDocument([]byte(text)); perr == nil {
		project.Artifacts.Schema = parsed
		project.Artifacts.SchemaValid = true
	} else {
		logger.Debug("Schema text for project %s failed to parse: %v", id, perr)
		project.Artifacts.SchemaValid = false
	}

	return s.persist(ctx, project)
}

// SaveSourceFields stores the analysed source fields and advances to the
// source phase.
func (s *ProjectService) SaveSourceFields(ctx context.Context, id string, fields *domain.SchemaDocument) (*domain.Project, error) {
	if fields == nil || fields.IsEmpty() {
		return nil, fmt.Errorf("%w: source fields are required", domain.ErrInvalidInput)
	}

	project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !project.Phases.Target {
		return nil, fmt.Errorf("project %s: target schema first: %w", id, domain.ErrPhaseNotReady)
	}
	if !project.CanEditSource() {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrSourceLocked)
	}

	project.Artifacts.SourceFields = fields.Clone()
	project.Phases.Source = true

	logger.Debug("Saving source fields for project %s", id)
	return s.persist(ctx, project)
}

// SaveMappingDraft stores the mapping set and rules prompt wholesale.
// A fresh draft always clears the exported flag: the previous publish no
// longer describes these links.
func (s *ProjectService) SaveMappingDraft(ctx context.Context, id string, mappings domain.MappingSet, prompt string) (*domain.Project, error) {
	if err := mappings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !project.Phases.Source {
		return nil, fmt.Errorf("project %s: source fields first: %w", id, domain.ErrPhaseNotReady)
	}
	if !project.CanEditMappings() {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrMappingLocked)
	}

	project.Artifacts.Mappings = mappings.Clone()
	project.Artifacts.Prompt = prompt
	project.Phases.Mapped = true
	project.Phases.Exported = false

	logger.Debug("Saving mapping draft for project %s (%d links)", id, len(mappings))
	return s.persist(ctx, project)
}

// SetMappingLink applies one atomic link edit to the stored mapping set.
func (s *ProjectService) SetMappingLink(ctx context.Context, id string, candidate domain.Link) (*domain.Project, error) {
	if strings.TrimSpace(candidate.Source) == "" || strings.TrimSpace(candidate.Target) == "" {
		return nil, fmt.Errorf("%w: link needs both a source and a target", domain.ErrInvalidInput)
	}

	project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !project.Phases.Source {
		return nil, fmt.Errorf("project %s: source fields first: %w", id, domain.ErrPhaseNotReady)
	}
	if !project.CanEditMappings() {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrMappingLocked)
	}

	project.Artifacts.Mappings = project.Artifacts.Mappings.SetLink(candidate)
	project.Phases.Mapped = true
	project.Phases.Exported = false

	return s.persist(ctx, project)
}

// PublishTransformation publishes the mapping, locking mapping and
// source edits.
func (s *ProjectService) PublishTransformation(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !project.Phases.Mapped {
		return nil, fmt.Errorf("project %s: mapping draft first: %w", id, domain.ErrPhaseNotReady)
	}

	project.Phases.Exported = true
	project.Status = domain.StatusPublished

	logger.Debug("Publishing transformation for project %s", id)
	return s.persist(ctx, project)
}

// StoreGeneratedCode overwrites the generated transformation logic.
func (s *ProjectService) StoreGeneratedCode(ctx context.Context, id, code string) (*domain.Project, error) {
	project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !project.CanGenerateCode() {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrExportNotReady)
	}

	project.Artifacts.GeneratedCode = code
	return s.persist(ctx, project)
}

// load fetches a private copy of the project for mutation.
func (s *ProjectService) load(ctx context.Context, id string) (*domain.Project, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: project ID is required", domain.ErrInvalidInput)
	}
	project, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return project.Clone(), nil
}

// loadOrCreate resolves the draft's project, minting a new record when
// the draft carries no ID.
func (s *ProjectService) loadOrCreate(ctx context.Context, draft driving.TargetDraft) (*domain.Project, error) {
	if draft.ProjectID != "" {
		return s.load(ctx, draft.ProjectID)
	}

	now := s.clock.Now()
	project := &domain.Project{
		ID:        s.ids.NewID(),
		Name:      DefaultProjectName,
		Target:    domain.PlatformDextrHub,
		Status:    domain.StatusDraft,
		CreatedAt: now,
	}
	logger.Debug("Creating project %s", project.ID)
	return project, nil
}

// applyTargetDraft copies the phase-1 inputs onto the project.
func (s *ProjectService) applyTargetDraft(project *domain.Project, draft driving.TargetDraft) {
	if name := strings.TrimSpace(draft.Name); name != "" {
		project.Name = name
	}
	if draft.Platform != "" {
		project.Target = draft.Platform
	}
	if draft.Schema != nil {
		schema := draft.Schema.Clone()
		schema.Normalize()
		project.Artifacts.Schema = schema
		project.Artifacts.SchemaText = ""
		project.Artifacts.SchemaValid = false
	}
	project.Phases.Target = true
}

// persist stamps the update time and replaces the stored record.
func (s *ProjectService) persist(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	project.UpdatedAt = s.clock.Now()
	if err := s.store.Save(ctx, *project); err != nil {
		return nil, fmt.Errorf("save project %s: %w", project.ID, err)
	}
	return project, nil
}
