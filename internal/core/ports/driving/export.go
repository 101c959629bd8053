package driving

import (
	"context"

	"github.com/dextr-labs/dextr-cli/internal/core/domain"
)

// ExportFile is one downloadable artifact: a plain-text blob whose
// content is exactly the stored artifact.
type ExportFile struct {
	// Name is the file name including extension.
	Name string

	// Content is the artifact text.
	Content []byte
}

// ExportService assembles a project's downloadable artifacts.
type ExportService interface {
	// TargetSchemaFile renders the stored target schema as schema JSON.
	TargetSchemaFile(project *domain.Project) (ExportFile, error)

	// SourceSchemaFile renders the source fields stripped down to bare
	// types.
	SourceSchemaFile(project *domain.Project) (ExportFile, error)

	// TransformFile renders the generated transformation logic with the
	// platform-specific extension.
	TransformFile(project *domain.Project) (ExportFile, error)

	// Artifacts returns every exportable file for the project.
	Artifacts(ctx context.Context, projectID string) ([]ExportFile, error)
}
