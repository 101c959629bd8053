package services

import (
	"context"
	"fmt"

	"github.com/dextr-labs/dextr-cli/internal/core/domain"
	"github.com/dextr-labs/dextr-cli/internal/core/ports/driven"
	"github.com/dextr-labs/dextr-cli/internal/core/ports/driving"
	"github.com/dextr-labs/dextr-cli/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnalysisService orchestrates schema inference and mapping suggestion.
// Assistant results are applied atomically: the project only changes
// after a fully parsed response, so a failed call leaves prior
// artifacts untouched.
type AnalysisService struct {
	sniffers  *SnifferRegistry
	assistant driven.Assistant
	projects  driving.ProjectService
}

// NewAnalysisService creates a new analysis service. The assistant may
// be nil when no backend is configured; local sniffing still works.
func NewAnalysisService(sniffers *SnifferRegistry, assistant driven.Assistant, projects driving.ProjectService) *AnalysisService {
	return &AnalysisService{
		sniffers:  sniffers,
		assistant: assistant,
		projects:  projects,
	}
}

// SniffFile derives a schema document locally, dispatched by extension.
func (s *AnalysisService) SniffFile(ctx context.Context, file driven.SampleFile) (*domain.SchemaDocument, error) {
	if file.Name == "" {
		return nil, fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
	}
	logger.Debug("Sniffing %s (%d bytes)", file.Name, len(file.Content))
	return s.sniffers.Sniff(ctx, file)
}

// DiscoverTarget sends the combined sample payload to the assistant and
// returns the proposed target schema. The result is not saved; the
// caller decides what to do with it.
func (s *AnalysisService) DiscoverTarget(ctx context.Context, req driven.DiscoverRequest) (*domain.SchemaDocument, error) {
	if err := s.requireAssistant(); err != nil {
		return nil, err
	}
	if len(req.Files) == 0 {
		return nil, fmt.Errorf("%w: at least one sample file is required", domain.ErrInvalidInput)
	}

	logger.Section("Target Discovery")
	logger.Debug("Samples: %d, platform: %s", len(req.Files), req.TargetSystem)

	schema, err := s.assistant.DiscoverTarget(ctx, req)
	if err != nil {
		return nil, err
	}
	schema.Normalize()
	return schema, nil
}

// AnalyzeSource analyses one internal sample and auto-saves the result
// as the project's source fields. The lock is checked up front so a
// doomed request never burns an assistant call.
func (s *AnalysisService) AnalyzeSource(ctx context.Context, projectID string, file driven.SampleFile, local bool) (*domain.Project, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.Phases.Target {
		return nil, fmt.Errorf("project %s: target schema first: %w", projectID, domain.ErrPhaseNotReady)
	}
	if !project.CanEditSource() {
		return nil, fmt.Errorf("project %s: %w", projectID, domain.ErrSourceLocked)
	}

	logger.Section("Source Analysis")
	logger.Debug("Project: %s, file: %s, local: %t", projectID, file.Name, local)

	var fields *domain.SchemaDocument
	if local {
		fields, err = s.SniffFile(ctx, file)
	} else {
		if err := s.requireAssistant(); err != nil {
			return nil, err
		}
		fields, err = s.assistant.AnalyzeSource(ctx, file)
	}
	if err != nil {
		return nil, err
	}
	fields.Normalize()

	return s.projects.SaveSourceFields(ctx, projectID, fields)
}

// SuggestMappings asks the assistant for a fresh link set and saves it
// as a mapping draft, replacing the stored set wholesale.
func (s *AnalysisService) SuggestMappings(ctx context.Context, projectID, instructions string) (*domain.Project, error) {
	if err := s.requireAssistant(); err != nil {
		return nil, err
	}

	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.Phases.Source {
		return nil, fmt.Errorf("project %s: source fields first: %w", projectID, domain.ErrPhaseNotReady)
	}
	if !project.CanResuggest() {
		return nil, fmt.Errorf("project %s: %w", projectID, domain.ErrMappingLocked)
	}
	if !project.Artifacts.SchemaReady() {
		return nil, fmt.Errorf("project %s: %w", projectID, domain.ErrSchemaInvalid)
	}

	logger.Section("Mapping Suggestion")
	logger.Debug("Project: %s", projectID)

	links, err := s.assistant.SuggestMappings(ctx, driven.SuggestRequest{
		SourceFields: project.Artifacts.SourceFields,
		TargetSchema: project.Artifacts.Schema,
		Instructions: instructions,
	})
	if err != nil {
		return nil, err
	}

	mappings := domain.ReplaceAll(links)
	logger.Debug("Assistant proposed %d links, kept %d", len(links), len(mappings))

	return s.projects.SaveMappingDraft(ctx, projectID, mappings, instructions)
}

// GenerateCode produces the platform-specific transformation logic and
// stores it on the project.
func (s *AnalysisService) GenerateCode(ctx context.Context, projectID string) (*domain.Project, error) {
	if err := s.requireAssistant(); err != nil {
		return nil, err
	}

	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.CanGenerateCode() {
		return nil, fmt.Errorf("project %s: %w", projectID, domain.ErrExportNotReady)
	}

	logger.Section("Code Generation")
	logger.Debug("Project: %s, platform: %s", projectID, project.Target)

	code, err := s.assistant.GenerateCode(ctx, driven.GenerateRequest{
		TargetSystem: project.Target,
		Mappings:     project.Artifacts.Mappings,
		SourceFields: project.Artifacts.SourceFields,
		TargetSchema: project.Artifacts.Schema,
		Instructions: project.Artifacts.Prompt,
	})
	if err != nil {
		return nil, err
	}

	return s.projects.StoreGeneratedCode(ctx, projectID, code)
}

func (s *AnalysisService) requireAssistant() error {
	if s.assistant == nil {
		return fmt.Errorf("%w: no assistant backend configured", domain.ErrService)
	}
	return nil
}
