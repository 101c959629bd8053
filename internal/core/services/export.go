package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dextr-labs/dextr-cli/internal/core/domain"
	"github.com/dextr-labs/dextr-cli/internal/core/ports/driven"
	"github.com/dextr-labs/dextr-cli/internal/core/ports/driving"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ExportService assembles a project's downloadable artifacts. Files are
// plain text; content is exactly the stored artifact, rendered once.
type ExportService struct {
	store driven.ProjectStore
}

// NewExportService creates a new export service.
func NewExportService(store driven.ProjectStore) *ExportService {
	return &ExportService{store: store}
}

// TargetSchemaFile renders the stored target schema as schema.json.
func (s *ExportService) TargetSchemaFile(project *domain.Project) (driving.ExportFile, error) {
	if project.Artifacts.Schema == nil || project.Artifacts.Schema.IsEmpty() {
		return driving.ExportFile{}, fmt.Errorf("project %s has no target schema: %w", project.ID, domain.ErrPhaseNotReady)
	}

	content, err := json.MarshalIndent(project.Artifacts.Schema, "", "  ")
	if err != nil {
		return driving.ExportFile{}, fmt.Errorf("render target schema: %w", err)
	}
	return driving.ExportFile{Name: "schema.json", Content: content}, nil
}

// SourceSchemaFile renders the source fields stripped down to bare types.
func (s *ExportService) SourceSchemaFile(project *domain.Project) (driving.ExportFile, error) {
	if project.Artifacts.SourceFields == nil || project.Artifacts.SourceFields.IsEmpty() {
		return driving.ExportFile{}, fmt.Errorf("project %s has no source fields: %w", project.ID, domain.ErrPhaseNotReady)
	}

	content, err := json.MarshalIndent(project.Artifacts.SourceFields.TypesOnly(), "", "  ")
	if err != nil {
		return driving.ExportFile{}, fmt.Errorf("render source schema: %w", err)
	}
	return driving.ExportFile{Name: "source_schema.json", Content: content}, nil
}

// TransformFile renders the generated transformation logic with the
// platform-specific extension, e.g. invoice_sync_transform.dwl.
func (s *ExportService) TransformFile(project *domain.Project) (driving.ExportFile, error) {
	if project.Artifacts.GeneratedCode == "" {
		return driving.ExportFile{}, fmt.Errorf("project %s has no generated code: %w", project.ID, domain.ErrExportNotReady)
	}

	name := fmt.Sprintf("%s_transform.%s", project.Name, project.Target.ExportExtension())
	return driving.ExportFile{Name: name, Content: []byte(project.Artifacts.GeneratedCode)}, nil
}

// Artifacts returns every exportable file the project has produced so
// far. Artifacts from phases not yet reached are simply absent.
func (s *ExportService) Artifacts(ctx context.Context, projectID string) ([]driving.ExportFile, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: project ID is required", domain.ErrInvalidInput)
	}
	project, err := s.store.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var files []driving.ExportFile
	if file, err := s.TargetSchemaFile(project); err == nil {
		files = append(files, file)
	}
	if file, err := s.SourceSchemaFile(project); err == nil {
		files = append(files, file)
	}
	if file, err := s.TransformFile(project); err == nil {
		files = append(files, file)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("project %s has nothing to export: %w", projectID, domain.ErrPhaseNotReady)
	}
	return files, nil
}
