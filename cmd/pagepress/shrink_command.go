package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pagepress/internal/config"
	"pagepress/internal/fileutil"
	"pagepress/internal/imaging"
	"pagepress/internal/pdfops"
)

func newShrinkCommand(ctx *commandContext) *cobra.Command {
	var sizeFlag string
	var outputFlag string
	var formatFlag string
	var toleranceFlag float64

	cmd := &cobra.Command{
		Use:   "shrink <input>",
		Short: "Fit a PDF or image to a target byte size",
		Long: `Fit a PDF or image to a target byte size.

PDF inputs are copied through when already small enough, losslessly optimized
when that suffices, and otherwise rasterized and refit through a quality
search. Image inputs are pre-scaled and refit the same way.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *ctx.configValue()
			if _, err := ctx.ensureLogger(); err != nil {
				return err
			}

			target, err := parseTargetSize(sizeFlag)
			if err != nil {
				return err
			}
			input, err := resolveInputPath(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tolerance") {
				if toleranceFlag < 0 || toleranceFlag >= 1 {
					return fmt.Errorf("tolerance %v out of range [0, 1)", toleranceFlag)
				}
				cfg.Shrink.Tolerance = toleranceFlag
			}

			if isPDF(input) {
				if formatFlag != "" {
					return fmt.Errorf("--format applies to image inputs only")
				}
				return runPDFShrink(cmd, ctx, &cfg, input, outputFlag, target)
			}
			return runImageShrink(cmd, &cfg, input, outputFlag, formatFlag, target)
		},
	}

	cmd.Flags().StringVarP(&sizeFlag, "size", "s", "", "Target size, e.g. 500KB or 2.5MB")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output path (defaults to the output directory)")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output image format (jpeg or png)")
	cmd.Flags().Float64Var(&toleranceFlag, "tolerance", 0, "Acceptable size deviation as a fraction of the target")
	_ = cmd.MarkFlagRequired("size")

	return cmd
}

func runPDFShrink(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, input, output string, target int64) error {
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	if output == "" {
		output = defaultOutputPath(cfg, input, "")
	}

	outcome, err := pdfops.NewShrinker(cfg, logger, nil).Shrink(cmd.Context(), input, output, target)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %s\n", output)
	fmt.Fprintf(out, "Method: %s\n", outcome.Method)
	fmt.Fprintf(out, "Size: %s (target %s, off by %s)\n",
		formatBytes(outcome.SizeBytes), formatBytes(target), formatBytes(outcome.Diff))
	if outcome.Method == pdfops.MethodRasterFit {
		fmt.Fprintf(out, "Quality: %d after %d iterations across %d pages\n",
			outcome.Quality, outcome.Iterations, outcome.Pages)
	}
	fmt.Fprintf(out, "Within tolerance: %s\n", yesNo(outcome.WithinTolerance))
	return nil
}

func runImageShrink(cmd *cobra.Command, cfg *config.Config, input, output, formatName string, target int64) error {
	img, sourceFormat, err := imaging.DecodeFile(input)
	if err != nil {
		return err
	}
	currentSize, err := fileutil.FileSize(input)
	if err != nil {
		return err
	}

	if formatName == "" {
		formatName = cfg.Image.DefaultFormat
		if sourceFormat == "png" {
			formatName = "png"
		}
	}
	format, err := imaging.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if output == "" {
		output = defaultOutputPath(cfg, input, format.Extension())
	}

	outcome, err := imaging.Shrink(cmd.Context(), img, currentSize, imaging.ShrinkRequest{
		TargetBytes:    target,
		Format:         format,
		MinQuality:     cfg.Shrink.MinQuality,
		MaxQuality:     cfg.Shrink.MaxQuality,
		Tolerance:      cfg.Shrink.Tolerance,
		MaxIterations:  cfg.Shrink.MaxIterations,
		ConvertQuality: cfg.Image.ConvertQuality,
	})
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(output, outcome.Data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %s\n", output)
	fmt.Fprintf(out, "Size: %s (target %s, off by %s)\n",
		formatBytes(outcome.Size), formatBytes(target), formatBytes(outcome.Diff))
	if outcome.Resized {
		fmt.Fprintf(out, "Scaled to %dx%d before fitting\n", outcome.Width, outcome.Height)
	}
	if format.HasQualityAxis() {
		fmt.Fprintf(out, "Quality: %d after %d iterations\n", outcome.Quality, outcome.Iterations)
	}
	fmt.Fprintf(out, "Within tolerance: %s\n", yesNo(outcome.WithinTolerance))
	return nil
}
