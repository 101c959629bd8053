package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var sniffCmd = &cobra.Command{
	Use:   "sniff [sample-file]",
	Short: "Infer a schema document from a file without saving anything",
	Long: `Derives a schema document locally from a csv, json or xml sample and
prints it. Nothing is stored; use this to preview what analysis would
produce for a file.`,
	Args: cobra.ExactArgs(1),
	RunE: runSniff,
}

func init() {
	rootCmd.AddCommand(sniffCmd)
}

func runSniff(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	files, err := readSampleFiles(args)
	if err != nil {
		return err
	}

	doc, err := analysisService.SniffFile(context.Background(), files[0])
	if err != nil {
		return fmt.Errorf("sniff %s: %w", args[0], err)
	}

	return printJSON(cmd, doc)
}
