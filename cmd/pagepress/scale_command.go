package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pagepress/internal/papersize"
	"pagepress/internal/pdfops"
)

func newScaleCommand(ctx *commandContext) *cobra.Command {
	var paperFlag string
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "scale <input.pdf>",
		Short: "Scale every page of a PDF to a standard paper size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()

			input, err := resolveInputPath(args[0])
			if err != nil {
				return err
			}
			if !isPDF(input) {
				return fmt.Errorf("scale requires a PDF input, got %s", input)
			}

			paper := strings.TrimSpace(paperFlag)
			if paper == "" {
				paper = cfg.Scale.DefaultPaper
			}
			output := outputFlag
			if output == "" {
				output = defaultOutputPath(cfg, input, "")
			}

			size, err := pdfops.ScaleToPaper(input, output, paper)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s\n", output)
			fmt.Fprintf(out, "Pages scaled to %s (%.0f x %.0f mm)\n", size.Name, size.WidthMM, size.HeightMM)
			return nil
		},
	}

	cmd.Flags().StringVarP(&paperFlag, "paper", "p", "",
		"Target paper size ("+strings.Join(papersize.Names(), ", ")+")")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output path (defaults to the output directory)")

	return cmd
}
