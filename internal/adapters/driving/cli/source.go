package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	sourceProject string
	sourceLocal   bool
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Analyse the source system's fields",
}

var sourceAnalyzeCmd = &cobra.Command{
	Use:   "analyze [sample-file]",
	Short: "Extract typed source fields from one sample file",
	Long: `Analyses a source sample and stores the result as the project's source
fields. Uses the assistant by default; --local infers the fields from
the file structure without a backend call.`,
	Args: cobra.ExactArgs(1),
	RunE: runSourceAnalyze,
}

func init() {
	sourceAnalyzeCmd.Flags().StringVarP(&sourceProject, "project", "p", "", "project ID (required)")
	sourceAnalyzeCmd.Flags().BoolVar(&sourceLocal, "local", false, "sniff locally instead of calling the assistant")
	_ = sourceAnalyzeCmd.MarkFlagRequired("project")

	sourceCmd.AddCommand(sourceAnalyzeCmd)
	rootCmd.AddCommand(sourceCmd)
}

func runSourceAnalyze(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	files, err := readSampleFiles(args)
	if err != nil {
		return err
	}

	project, err := analysisService.AnalyzeSource(context.Background(), sourceProject, files[0], sourceLocal)
	if err != nil {
		return fmt.Errorf("analyze source: %w", err)
	}

	fields := project.Artifacts.SourceFields
	cmd.Printf("%s (%s)\n", successStyle.Render("Source fields saved"), project.Name)
	cmd.Printf("Header fields: %d\n", len(fields.Header))
	if template, ok := fields.LineTemplate(); ok {
		cmd.Printf("Line fields: %d\n", len(template))
	}
	return nil
}
