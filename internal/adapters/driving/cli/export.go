package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	exportProject string
	exportDir     string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the transformation logic for the target platform",
	Long: `Asks the assistant to write the platform-specific transformation logic
for the published mapping and stores it on the project.`,
	RunE: runGenerate,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the project's artifacts to files",
	Long: `Writes every artifact the project has produced so far: the target
schema (schema.json), the bare-type source schema (source_schema.json)
and the generated transformation logic with its platform extension.`,
	RunE: runExport,
}

func init() {
	generateCmd.Flags().StringVarP(&exportProject, "project", "p", "", "project ID (required)")
	_ = generateCmd.MarkFlagRequired("project")
	exportCmd.Flags().StringVarP(&exportProject, "project", "p", "", "project ID (required)")
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", ".", "output directory")
	_ = exportCmd.MarkFlagRequired("project")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(exportCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	project, err := analysisService.GenerateCode(context.Background(), exportProject)
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	cmd.Printf("%s (%d bytes)\n", successStyle.Render("Transformation logic generated"), len(project.Artifacts.GeneratedCode))
	cmd.Println("Run 'dextr export' to write it to a file.")
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	files, err := exportService.Artifacts(context.Background(), exportProject)
	if err != nil {
		return fmt.Errorf("collect artifacts: %w", err)
	}

	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for _, file := range files {
		path := filepath.Join(exportDir, file.Name)
		if err := os.WriteFile(path, file.Content, 0644); err != nil {
			return fmt.Errorf("write %s: %w", file.Name, err)
		}
		cmd.Printf("%s %s\n", successStyle.Render("Wrote"), path)
	}
	return nil
}
