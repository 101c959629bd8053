package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dextr-labs/dextr-cli/internal/core/domain"
)

var (
	mappingProject      string
	mappingInstructions string
	mappingSource       string
	mappingTarget       string
	mappingRule         string
	mappingJSON         bool
)

var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "Reconcile source-to-target field mappings",
}

var mappingSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Ask the assistant for a fresh mapping proposal",
	Long: `Requests one suggested link per target field and replaces the stored
mapping set wholesale. Rejected once the transformation is published.`,
	RunE: runMappingSuggest,
}

var mappingSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set one mapping link by hand",
	Long: `Applies a single link edit. Any existing link sharing the new link's
source or target is evicted first, so no field is ever mapped twice.
Manual links always carry confidence 1.0.`,
	RunE: runMappingSet,
}

var mappingUnmapCmd = &cobra.Command{
	Use:   "unmap",
	Short: "Remove the link touching a target field",
	RunE:  runMappingUnmap,
}

var mappingShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current mapping set",
	RunE:  runMappingShow,
}

var mappingPublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the transformation, locking mapping and source edits",
	RunE:  runMappingPublish,
}

func init() {
	for _, cmd := range []*cobra.Command{
		mappingSuggestCmd, mappingSetCmd, mappingUnmapCmd, mappingShowCmd, mappingPublishCmd,
	} {
		cmd.Flags().StringVarP(&mappingProject, "project", "p", "", "project ID (required)")
		_ = cmd.MarkFlagRequired("project")
	}
	mappingSuggestCmd.Flags().StringVarP(&mappingInstructions, "instructions", "i", "", "natural-language transformation rules")
	mappingSetCmd.Flags().StringVar(&mappingSource, "source", "", "source field (required)")
	mappingSetCmd.Flags().StringVar(&mappingTarget, "target", "", "target field (required)")
	mappingSetCmd.Flags().StringVar(&mappingRule, "rule", "", "transformation rule text")
	_ = mappingSetCmd.MarkFlagRequired("source")
	_ = mappingSetCmd.MarkFlagRequired("target")
	mappingUnmapCmd.Flags().StringVar(&mappingTarget, "target", "", "target field to un-map (required)")
	_ = mappingUnmapCmd.MarkFlagRequired("target")
	mappingShowCmd.Flags().BoolVar(&mappingJSON, "json", false, "output as JSON")

	mappingCmd.AddCommand(mappingSuggestCmd)
	mappingCmd.AddCommand(mappingSetCmd)
	mappingCmd.AddCommand(mappingUnmapCmd)
	mappingCmd.AddCommand(mappingShowCmd)
	mappingCmd.AddCommand(mappingPublishCmd)
	rootCmd.AddCommand(mappingCmd)
}

func runMappingSuggest(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	project, err := analysisService.SuggestMappings(context.Background(), mappingProject, mappingInstructions)
	if err != nil {
		return fmt.Errorf("suggest mappings: %w", err)
	}

	cmd.Printf("%s (%d links)\n", successStyle.Render("Mapping draft saved"), len(project.Artifacts.Mappings))
	printMappings(cmd, project.Artifacts.Mappings)
	return nil
}

func runMappingSet(cmd *cobra.Command, _ []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	rule := mappingRule
	if rule == "" {
		rule = "Manual mapping."
	}

	project, err := projectService.SetMappingLink(context.Background(), mappingProject, domain.Link{
		Source: mappingSource,
		Target: mappingTarget,
		Rule:   rule,
	})
	if err != nil {
		return fmt.Errorf("set mapping: %w", err)
	}

	cmd.Printf("%s %s -> %s\n", successStyle.Render("Mapped"), mappingSource, mappingTarget)
	cmd.Printf("Mapping set now holds %d links\n", len(project.Artifacts.Mappings))
	return nil
}

func runMappingUnmap(cmd *cobra.Command, _ []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	project, err := projectService.SetMappingLink(context.Background(), mappingProject, domain.Link{
		Source: domain.Unmapped,
		Target: mappingTarget,
	})
	if err != nil {
		return fmt.Errorf("unmap: %w", err)
	}

	cmd.Printf("%s %s\n", successStyle.Render("Unmapped"), mappingTarget)
	cmd.Printf("Mapping set now holds %d links\n", len(project.Artifacts.Mappings))
	return nil
}

func runMappingShow(cmd *cobra.Command, _ []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	project, err := projectService.Get(context.Background(), mappingProject)
	if err != nil {
		return fmt.Errorf("get project: %w", err)
	}

	if mappingJSON {
		return printJSON(cmd, project.Artifacts.Mappings)
	}

	if len(project.Artifacts.Mappings) == 0 {
		cmd.Println("No mappings yet. Run 'dextr mapping suggest' or 'dextr mapping set'.")
		return nil
	}

	sourceRefs := project.Artifacts.SourceFields.FieldRefs()
	targetRefs := project.Artifacts.Schema.FieldRefs()

	cmd.Println(titleStyle.Render("Mappings"))
	resolved := make(domain.MappingSet, 0, len(project.Artifacts.Mappings))
	for _, link := range project.Artifacts.Mappings {
		resolved = append(resolved, domain.ResolveDisplayRefs(link, sourceRefs, targetRefs))
	}
	printMappings(cmd, resolved)

	var unmapped []domain.Link
	for _, ref := range targetRefs {
		if _, found := project.Artifacts.Mappings.LinkTouching(ref); !found {
			unmapped = append(unmapped, domain.PrefillLink(ref, targetRefs))
		}
	}
	if len(unmapped) > 0 {
		cmd.Println()
		cmd.Println(warningStyle.Render("Unmapped target fields"))
		for _, link := range unmapped {
			cmd.Printf("  %s -> %s\n", mutedStyle.Render(link.Source), link.Target)
		}
	}
	return nil
}

func runMappingPublish(cmd *cobra.Command, _ []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	project, err := projectService.PublishTransformation(context.Background(), mappingProject)
	if err != nil {
		return fmt.Errorf("publish transformation: %w", err)
	}

	cmd.Printf("%s (%s)\n", successStyle.Render("Transformation published"), project.Name)
	cmd.Println("Run 'dextr generate' to produce the transformation logic.")
	return nil
}

func printMappings(cmd *cobra.Command, mappings domain.MappingSet) {
	for _, link := range mappings {
		confidence := fmt.Sprintf("%.2f", link.Confidence)
		cmd.Printf("  %s -> %s %s\n", link.Source, link.Target, mutedStyle.Render("("+confidence+")"))
		if link.Rule != "" {
			cmd.Printf("     %s\n", mutedStyle.Render(link.Rule))
		}
	}
}
