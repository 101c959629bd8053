package driving

import (
	"context"

	"github.com/dextr-labs/dextr-cli/internal/core/domain"
	"github.com/dextr-labs/dextr-cli/internal/core/ports/driven"
)

// AnalysisService drives schema inference and mapping suggestion. AI
// results are applied atomically: project state only changes after a
// fully parsed, well-formed response, and failures leave prior
// artifacts untouched.
type AnalysisService interface {
	// SniffFile derives a schema document locally, dispatched by file
	// extension. Returns domain.ErrUnsupportedFormat for unknown
	// extensions and domain.ErrParse for malformed content.
	SniffFile(ctx context.Context, file driven.SampleFile) (*domain.SchemaDocument, error)

	// DiscoverTarget sends the combined sample payload to the assistant
	// and returns the proposed target schema. Pure with respect to the
	// registry; the caller decides whether to save it.
	DiscoverTarget(ctx context.Context, req driven.DiscoverRequest) (*domain.SchemaDocument, error)

	// AnalyzeSource analyses one internal sample and auto-saves the
	// result as the project's source fields. Local sniffing is used when
	// local is true, the assistant otherwise. Honours the source-table
	// lock rules.
	AnalyzeSource(ctx context.Context, projectID string, file driven.SampleFile, local bool) (*domain.Project, error)

	// SuggestMappings asks the assistant for a fresh link set and saves
	// it as a mapping draft, replacing the store wholesale. Rejected
	// once the transformation is published.
	SuggestMappings(ctx context.Context, projectID, instructions string) (*domain.Project, error)

	// GenerateCode produces the platform-specific transformation logic
	// and stores it on the project. Requires a published transformation.
	GenerateCode(ctx context.Context, projectID string) (*domain.Project, error)
}
