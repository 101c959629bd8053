package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dextr-labs/dextr-cli/internal/core/domain"
)

var projectJSON bool

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage integration projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects, newest first",
	RunE:  runProjectList,
}

var projectShowCmd = &cobra.Command{
	Use:   "show [project-id]",
	Short: "Show a project's lifecycle state and artifacts",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectShow,
}

func init() {
	projectListCmd.Flags().BoolVar(&projectJSON, "json", false, "output as JSON")
	projectShowCmd.Flags().BoolVar(&projectJSON, "json", false, "output as JSON")
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProjectList(cmd *cobra.Command, _ []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	projects, err := projectService.List(context.Background())
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}

	if projectJSON {
		return printJSON(cmd, projects)
	}

	if len(projects) == 0 {
		cmd.Println("No projects yet. Run 'dextr target discover' to create one.")
		return nil
	}

	cmd.Println(titleStyle.Render("Projects"))
	cmd.Println()
	for i := range projects {
		p := &projects[i]
		cmd.Printf("%s %s\n", p.Name, mutedStyle.Render("("+p.ID+")"))
		cmd.Printf("  %s  %s  %s\n", p.Target, renderStatus(p.Status), renderPhases(p.Phases))
	}
	return nil
}

func runProjectShow(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	project, err := projectService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("get project: %w", err)
	}

	if projectJSON {
		return printJSON(cmd, project)
	}

	cmd.Println(titleStyle.Render(project.Name))
	cmd.Printf("ID:       %s\n", project.ID)
	cmd.Printf("Platform: %s\n", project.Target)
	cmd.Printf("Status:   %s\n", renderStatus(project.Status))
	cmd.Printf("Phases:   %s\n", renderPhases(project.Phases))
	cmd.Printf("Updated:  %s\n", project.UpdatedAt.Format("2006-01-02 15:04:05"))
	cmd.Println()

	artifacts := &project.Artifacts
	if artifacts.Schema != nil {
		cmd.Printf("Target schema: %d header fields", len(artifacts.Schema.Header))
		if template, ok := artifacts.Schema.LineTemplate(); ok {
			cmd.Printf(", %d line fields", len(template))
		}
		cmd.Println()
		if artifacts.SchemaText != "" && !artifacts.SchemaValid {
			cmd.Println(warningStyle.Render("  schema text has unsaved JSON errors"))
		}
	}
	if artifacts.SourceFields != nil {
		cmd.Printf("Source fields: %d header fields", len(artifacts.SourceFields.Header))
		if template, ok := artifacts.SourceFields.LineTemplate(); ok {
			cmd.Printf(", %d line fields", len(template))
		}
		cmd.Println()
	}
	if len(artifacts.Mappings) > 0 {
		cmd.Printf("Mappings:      %d links\n", len(artifacts.Mappings))
	}
	if artifacts.GeneratedCode != "" {
		cmd.Printf("Generated:     %d bytes of transformation logic\n", len(artifacts.GeneratedCode))
	}
	return nil
}

func renderStatus(status domain.Status) string {
	if status == domain.StatusPublished {
		return successStyle.Render(status.String())
	}
	return warningStyle.Render(status.String())
}

func renderPhases(phases domain.Phases) string {
	return phaseBadge("target", phases.Target) + " " +
		phaseBadge("source", phases.Source) + " " +
		phaseBadge("mapped", phases.Mapped) + " " +
		phaseBadge("exported", phases.Exported)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
