package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dextr-labs/dextr-cli/internal/adapters/driven/storage/memory"
	"github.com/dextr-labs/dextr-cli/internal/core/domain"
)

func exportFixture() *domain.Project {
	return &domain.Project{
		ID:     "p1",
		Name:   "Invoice Sync",
		Target: domain.PlatformMuleSoft,
		Status: domain.StatusPublished,
		Phases: domain.Phases{Target: true, Source: true, Mapped: true, Exported: true},
		Artifacts: domain.Artifacts{
			Schema:       testSchema(),
			SourceFields: testSourceFields(),
			Mappings: domain.MappingSet{
				{Source: "amount", Target: "total", Confidence: 1.0},
			},
			GeneratedCode: "%dw 2.0\noutput application/json\n---\npayload",
		},
	}
}

func TestExportService_TargetSchemaFile(t *testing.T) {
	service := NewExportService(memory.NewProjectStore())

	file, err := service.TargetSchemaFile(exportFixture())

	require.NoError(t, err)
	assert.Equal(t, "schema.json", file.Name)

	var doc domain.SchemaDocument
	require.NoError(t, json.Unmarshal(file.Content, &doc))
	assert.Contains(t, doc.Header, "invoice_id")
}

func TestExportService_TargetSchemaFile_NoSchema(t *testing.T) {
	service := NewExportService(memory.NewProjectStore())

	_, err := service.TargetSchemaFile(&domain.Project{ID: "p1"})

	assert.ErrorIs(t, err, domain.ErrPhaseNotReady)
}

func TestExportService_SourceSchemaFile_TypesOnly(t *testing.T) {
	service := NewExportService(memory.NewProjectStore())

	file, err := service.SourceSchemaFile(exportFixture())

	require.NoError(t, err)
	assert.Equal(t, "source_schema.json", file.Name)

	// The source export strips samples down to bare type names.
	var doc struct {
		Header map[string]string   `json:"header"`
		Lines  []map[string]string `json:"lines"`
	}
	require.NoError(t, json.Unmarshal(file.Content, &doc))
	assert.Equal(t, "Decimal", doc.Header["amount"])
	assert.NotContains(t, string(file.Content), "99.50")
}

func TestExportService_TransformFile_PlatformExtension(t *testing.T) {
	service := NewExportService(memory.NewProjectStore())

	tests := []struct {
		platform domain.Platform
		name     string
	}{
		{domain.PlatformMuleSoft, "Invoice Sync_transform.dwl"},
		{domain.PlatformBoomi, "Invoice Sync_transform.xslt"},
		{domain.PlatformDextrHub, "Invoice Sync_transform.json"},
		{domain.Platform("SAP"), "Invoice Sync_transform.txt"},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			project := exportFixture()
			project.Target = tt.platform

			file, err := service.TransformFile(project)

			require.NoError(t, err)
			assert.Equal(t, tt.name, file.Name)
			assert.Equal(t, project.Artifacts.GeneratedCode, string(file.Content))
		})
	}
}

func TestExportService_TransformFile_NoCode(t *testing.T) {
	service := NewExportService(memory.NewProjectStore())
	project := exportFixture()
	project.Artifacts.GeneratedCode = ""

	_, err := service.TransformFile(project)

	assert.ErrorIs(t, err, domain.ErrExportNotReady)
}

func TestExportService_Artifacts(t *testing.T) {
	store := memory.NewProjectStore()
	service := NewExportService(store)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, *exportFixture()))

	files, err := service.Artifacts(ctx, "p1")

	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "schema.json", files[0].Name)
	assert.Equal(t, "source_schema.json", files[1].Name)
	assert.Equal(t, "Invoice Sync_transform.dwl", files[2].Name)
}

func TestExportService_Artifacts_PartialProject(t *testing.T) {
	store := memory.NewProjectStore()
	service := NewExportService(store)
	ctx := context.Background()

	project := exportFixture()
	project.Artifacts.SourceFields = nil
	project.Artifacts.GeneratedCode = ""
	require.NoError(t, store.Save(ctx, *project))

	files, err := service.Artifacts(ctx, "p1")

	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "schema.json", files[0].Name)
}

func TestExportService_Artifacts_NothingToExport(t *testing.T) {
	store := memory.NewProjectStore()
	service := NewExportService(store)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Project{ID: "bare"}))

	_, err := service.Artifacts(ctx, "bare")

	assert.ErrorIs(t, err, domain.ErrPhaseNotReady)
}

func TestExportService_Artifacts_UnknownProject(t *testing.T) {
	service := NewExportService(memory.NewProjectStore())

	_, err := service.Artifacts(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
