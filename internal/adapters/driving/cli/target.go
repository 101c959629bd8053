package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dextr-labs/dextr-cli/internal/core/domain"
	"github.com/dextr-labs/dextr-cli/internal/core/ports/driven"
	"github.com/dextr-labs/dextr-cli/internal/core/ports/driving"
)

var (
	targetProject  string
	targetName     string
	targetPlatform string
	targetContext  string
	targetPublish  bool
	targetFile     string
)

var targetCmd = &cobra.Command{
	Use:   "target",
	Short: "Build and publish the target schema",
}

var targetDiscoverCmd = &cobra.Command{
	Use:   "discover [sample-files...]",
	Short: "Infer a target schema from sample files",
	Long: `Sends one or more sample files (csv, json, xml) to the assistant and
saves the proposed target schema as a project draft. All files are read
fully before the request is sent.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTargetDiscover,
}

var targetPublishCmd = &cobra.Command{
	Use:   "publish [project-id]",
	Short: "Publish the target schema, locking it against edits",
	Args:  cobra.ExactArgs(1),
	RunE:  runTargetPublish,
}

var targetEditCmd = &cobra.Command{
	Use:   "edit [project-id]",
	Short: "Replace the target schema from a JSON file",
	Long: `Stores the file content as the project's schema text. Invalid JSON is
kept editable but blocks mapping until fixed.`,
	Args: cobra.ExactArgs(1),
	RunE: runTargetEdit,
}

func init() {
	targetDiscoverCmd.Flags().StringVarP(&targetProject, "project", "p", "", "existing project to update")
	targetDiscoverCmd.Flags().StringVarP(&targetName, "name", "n", "", "project name")
	targetDiscoverCmd.Flags().StringVar(&targetPlatform, "platform", "", "target platform (MuleSoft, Boomi, DextrHub)")
	targetDiscoverCmd.Flags().StringVar(&targetContext, "context", "", "free-form context for the assistant")
	targetDiscoverCmd.Flags().BoolVar(&targetPublish, "publish", false, "publish the schema immediately")
	targetEditCmd.Flags().StringVarP(&targetFile, "file", "f", "", "schema JSON file (required)")
	_ = targetEditCmd.MarkFlagRequired("file")

	targetCmd.AddCommand(targetDiscoverCmd)
	targetCmd.AddCommand(targetPublishCmd)
	targetCmd.AddCommand(targetEditCmd)
	rootCmd.AddCommand(targetCmd)
}

func runTargetDiscover(cmd *cobra.Command, args []string) error {
	if analysisService == nil || projectService == nil {
		return errors.New("services not configured")
	}

	files, err := readSampleFiles(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	schema, err := analysisService.DiscoverTarget(ctx, driven.DiscoverRequest{
		Files:        files,
		TargetSystem: parsePlatform(targetPlatform),
		UserContext:  targetContext,
	})
	if err != nil {
		return fmt.Errorf("discover target: %w", err)
	}

	draft := driving.TargetDraft{
		ProjectID: targetProject,
		Name:      targetName,
		Platform:  parsePlatform(targetPlatform),
		Schema:    schema,
	}

	var project *domain.Project
	if targetPublish {
		project, err = projectService.PublishTarget(ctx, draft)
	} else {
		project, err = projectService.SaveTargetDraft(ctx, draft)
	}
	if err != nil {
		return fmt.Errorf("save target schema: %w", err)
	}

	cmd.Printf("%s %s\n", successStyle.Render("Target schema saved to"), project.Name)
	cmd.Printf("Project ID: %s\n", project.ID)
	cmd.Printf("Header fields: %d\n", len(schema.Header))
	if template, ok := schema.LineTemplate(); ok {
		cmd.Printf("Line fields: %d\n", len(template))
	}
	return nil
}

func runTargetPublish(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	project, err := projectService.PublishTarget(context.Background(), driving.TargetDraft{
		ProjectID: args[0],
	})
	if err != nil {
		return fmt.Errorf("publish target: %w", err)
	}

	cmd.Printf("%s (%s)\n", successStyle.Render("Target schema published"), project.Name)
	return nil
}

func runTargetEdit(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	content, err := os.ReadFile(targetFile)
	if err != nil {
		return fmt.Errorf("read schema file: %w", err)
	}

	project, err := projectService.UpdateSchemaText(context.Background(), args[0], string(content))
	if err != nil {
		return fmt.Errorf("update schema: %w", err)
	}

	if project.Artifacts.SchemaValid {
		cmd.Println(successStyle.Render("Schema updated"))
	} else {
		cmd.Println(warningStyle.Render("Schema text saved but is not valid JSON; fix it before mapping"))
	}
	return nil
}

// readSampleFiles loads every file fully before any request is built.
func readSampleFiles(paths []string) ([]driven.SampleFile, error) {
	files := make([]driven.SampleFile, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read sample %s: %w", path, err)
		}
		files = append(files, driven.SampleFile{
			Name:    filepath.Base(path),
			Content: string(content),
		})
	}
	return files, nil
}

// parsePlatform resolves the canonical platforms case-insensitively and
// passes anything else through as a custom platform name.
func parsePlatform(s string) domain.Platform {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ""
	case "mulesoft":
		return domain.PlatformMuleSoft
	case "boomi":
		return domain.PlatformBoomi
	case "dextrhub":
		return domain.PlatformDextrHub
	default:
		return domain.Platform(strings.TrimSpace(s))
	}
}
