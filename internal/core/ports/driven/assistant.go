package driven

import (
	"context"

	"github.com/dextr-labs/dextr-cli/internal/core/domain"
)

// Assistant phase discriminators, carried in the request's state.phase field.
const (
	PhaseTargetDiscovery   = "target_discovery"
	PhaseSourceAnalysis    = "source_analysis"
	PhaseMappingSuggestion = "mapping_suggestion"
	PhaseCodeGeneration    = "code_generation"
)

// DiscoverRequest asks the assistant to derive a target schema from one
// or more sample files. All files must be fully read before the request
// is built; the combined payload ships in one call.
type DiscoverRequest struct {
	// Files are the raw samples, in selection order.
	Files []SampleFile

	// TargetSystem is the integration platform the schema is for.
	TargetSystem domain.Platform

	// UserContext is free-form context forwarded with the request.
	UserContext string
}

// SuggestRequest asks the assistant to propose one mapping per target field.
type SuggestRequest struct {
	// SourceFields is the analysed source-field document.
	SourceFields *domain.SchemaDocument

	// TargetSchema is the target schema to map onto.
	TargetSchema *domain.SchemaDocument

	// Instructions is the user's natural-language transformation rules.
	Instructions string
}

// GenerateRequest asks the assistant to write platform-specific
// transformation logic for a finalised mapping.
type GenerateRequest struct {
	// TargetSystem selects the logic dialect (DataWeave, XSLT, ...).
	TargetSystem domain.Platform

	// Mappings is the published link set.
	Mappings domain.MappingSet

	// SourceFields and TargetSchema give the assistant both shapes.
	SourceFields *domain.SchemaDocument
	TargetSchema *domain.SchemaDocument

	// Instructions is the user's natural-language transformation rules.
	Instructions string
}

// Assistant is the generative backend that proposes schemas, mappings
// and transformation code. It is an opaque service speaking a documented
// JSON contract; prompt text is the adapter's concern.
//
// Failure semantics: any non-success response, malformed response JSON
// or missing expected key is a recoverable failure (domain.ErrService or
// domain.ErrParse). Callers apply results atomically - prior state is
// never touched on error. No retries; every retry is a fresh call.
type Assistant interface {
	// DiscoverTarget derives a target schema from sample files.
	DiscoverTarget(ctx context.Context, req DiscoverRequest) (*domain.SchemaDocument, error)

	// AnalyzeSource extracts typed source fields from one internal sample.
	AnalyzeSource(ctx context.Context, file SampleFile) (*domain.SchemaDocument, error)

	// SuggestMappings proposes source-to-target links.
	SuggestMappings(ctx context.Context, req SuggestRequest) ([]domain.Link, error)

	// GenerateCode writes the transformation logic for the target platform.
	GenerateCode(ctx context.Context, req GenerateRequest) (string, error)
}
