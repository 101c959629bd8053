package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dextr-labs/dextr-cli/internal/adapters/driven/storage/memory"
	"github.com/dextr-labs/dextr-cli/internal/core/domain"
	"github.com/dextr-labs/dextr-cli/internal/core/ports/driven"
	"github.com/dextr-labs/dextr-cli/internal/core/ports/driving"
	"github.com/dextr-labs/dextr-cli/internal/core/services"
	"github.com/dextr-labs/dextr-cli/internal/sniffers/csvfile"
	"github.com/dextr-labs/dextr-cli/internal/sniffers/jsonfile"
	"github.com/dextr-labs/dextr-cli/internal/sniffers/xmlfile"
)

// seqIDs mints sequential project IDs.
type seqIDs struct {
	next int
}

func (s *seqIDs) NewID() string {
	s.next++
	return fmt.Sprintf("project-%d", s.next)
}

// scriptedAssistant returns canned answers for command tests.
type scriptedAssistant struct {
	schema *domain.SchemaDocument
	links  []domain.Link
	code   string
}

func (a *scriptedAssistant) DiscoverTarget(_ context.Context, _ driven.DiscoverRequest) (*domain.SchemaDocument, error) {
	return a.schema.Clone(), nil
}

func (a *scriptedAssistant) AnalyzeSource(_ context.Context, _ driven.SampleFile) (*domain.SchemaDocument, error) {
	return a.schema.Clone(), nil
}

func (a *scriptedAssistant) SuggestMappings(_ context.Context, _ driven.SuggestRequest) ([]domain.Link, error) {
	return a.links, nil
}

func (a *scriptedAssistant) GenerateCode(_ context.Context, _ driven.GenerateRequest) (string, error) {
	return a.code, nil
}

// setupTestServices wires the command globals to in-memory services and
// returns a cleanup restoring the previous wiring.
func setupTestServices() func() {
	prevConfig := configStore
	prevProjects := projectService
	prevAnalysis := analysisService
	prevExport := exportService

	store := memory.NewProjectStore()
	registry := services.NewSnifferRegistry()
	registry.Register(csvfile.New())
	registry.Register(jsonfile.New())
	registry.Register(xmlfile.New())

	backend := &scriptedAssistant{
		schema: &domain.SchemaDocument{
			Header: map[string]domain.FieldDescriptor{
				"invoice_id": {Type: domain.FieldTypeString, Sample: "INV-001"},
			},
		},
		links: []domain.Link{
			{Source: "inv_no", Target: "invoice_id", Rule: "Direct copy", Confidence: 0.9},
		},
		code: "%dw 2.0\n---\npayload",
	}

	configStore = memory.NewConfigStore()
	projectService = services.NewProjectService(store, &seqIDs{}, fixedClock{})
	analysisService = services.NewAnalysisService(registry, backend, projectService)
	exportService = services.NewExportService(store)

	return func() {
		configStore = prevConfig
		projectService = prevProjects
		analysisService = prevAnalysis
		exportService = prevExport
	}
}

// fixedClock keeps command output deterministic.
type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

// executeCommand runs the root command with args and captures output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// seedProject walks a project to the source phase for mapping tests.
func seedProject(t *testing.T) *domain.Project {
	t.Helper()
	ctx := context.Background()

	created, err := projectService.SaveTargetDraft(ctx, driving.TargetDraft{
		Name: "Invoice Sync",
		Schema: &domain.SchemaDocument{
			Header: map[string]domain.FieldDescriptor{
				"invoice_id": {Type: domain.FieldTypeString, Sample: "INV-001"},
				"total":      {Type: domain.FieldTypeDecimal, Sample: "99.50"},
			},
		},
	})
	require.NoError(t, err)

	project, err := projectService.SaveSourceFields(ctx, created.ID, &domain.SchemaDocument{
		Header: map[string]domain.FieldDescriptor{
			"inv_no": {Type: domain.FieldTypeString, Sample: "001"},
			"amount": {Type: domain.FieldTypeDecimal, Sample: "99.50"},
		},
	})
	require.NoError(t, err)
	return project
}
