package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCmd_Use(t *testing.T) {
	assert.Equal(t, "project", projectCmd.Use)
	assert.Equal(t, "list", projectListCmd.Use)
	assert.Equal(t, "show [project-id]", projectShowCmd.Use)
}

func TestProjectListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	output, err := executeCommand(t, "project", "list")

	require.NoError(t, err)
	assert.Contains(t, output, "No projects yet")
}

func TestProjectListCmd_ShowsProjects(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	seedProject(t)

	output, err := executeCommand(t, "project", "list")

	require.NoError(t, err)
	assert.Contains(t, output, "Invoice Sync")
	assert.Contains(t, output, "project-1")
}

func TestProjectShowCmd_ShowsLifecycle(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	project := seedProject(t)

	output, err := executeCommand(t, "project", "show", project.ID)

	require.NoError(t, err)
	assert.Contains(t, output, "Invoice Sync")
	assert.Contains(t, output, "Target schema: 2 header fields")
	assert.Contains(t, output, "Source fields: 2 header fields")
}

func TestProjectShowCmd_UnknownProject(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand(t, "project", "show", "missing")

	assert.Error(t, err)
}
