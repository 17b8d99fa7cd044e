package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pagepress/internal/pdfops"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "inspect <input.pdf>",
		Short: "Report size, page count, and matching paper sizes for a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := resolveInputPath(args[0])
			if err != nil {
				return err
			}
			if !isPDF(input) {
				return fmt.Errorf("inspect requires a PDF input, got %s", input)
			}

			analysis, err := pdfops.Inspect(input)
			if err != nil {
				return err
			}

			if jsonFlag {
				return writeJSON(cmd, analysis)
			}

			papers := strings.Join(analysis.PaperSizes, ", ")
			if papers == "" {
				papers = "(no standard size)"
			}
			rows := [][]string{
				{"File", analysis.Path},
				{"Size", fmt.Sprintf("%s (%d bytes)", formatBytes(analysis.SizeBytes), analysis.SizeBytes)},
				{"Pages", fmt.Sprintf("%d", analysis.Pages)},
				{"Page dimensions", fmt.Sprintf("%.1f x %.1f pt", analysis.WidthPoints, analysis.HeightPoints)},
				{"", fmt.Sprintf("%.1f x %.1f mm", analysis.WidthMM, analysis.HeightMM)},
				{"Paper size", papers},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the analysis as JSON")
	return cmd
}
