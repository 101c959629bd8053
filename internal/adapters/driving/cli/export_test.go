package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCmd_WritesArtifacts(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	project := seedProject(t)
	_, err := executeCommand(t, "mapping", "suggest", "--project", project.ID)
	require.NoError(t, err)
	_, err = executeCommand(t, "mapping", "publish", "--project", project.ID)
	require.NoError(t, err)

	output, err := executeCommand(t, "generate", "--project", project.ID)
	require.NoError(t, err)
	assert.Contains(t, output, "Transformation logic generated")

	outDir := t.TempDir()
	output, err = executeCommand(t, "export", "--project", project.ID, "--out", outDir)
	require.NoError(t, err)
	assert.Contains(t, output, "schema.json")

	schema, err := os.ReadFile(filepath.Join(outDir, "schema.json"))
	require.NoError(t, err)
	assert.Contains(t, string(schema), "invoice_id")

	sourceSchema, err := os.ReadFile(filepath.Join(outDir, "source_schema.json"))
	require.NoError(t, err)
	assert.Contains(t, string(sourceSchema), "Decimal")

	// Seeded projects default to the DextrHub platform.
	transform, err := os.ReadFile(filepath.Join(outDir, "Invoice Sync_transform.json"))
	require.NoError(t, err)
	assert.Contains(t, string(transform), "%dw 2.0")
}

func TestGenerateCmd_BeforePublish(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	project := seedProject(t)

	_, err := executeCommand(t, "generate", "--project", project.ID)

	assert.Error(t, err)
}
