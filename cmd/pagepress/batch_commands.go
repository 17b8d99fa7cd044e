package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pagepress/internal/batch"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Queue transforms and run them in bulk",
	}

	batchCmd.AddCommand(newBatchAddCommand(ctx))
	batchCmd.AddCommand(newBatchRunCommand(ctx))
	batchCmd.AddCommand(newBatchListCommand(ctx))
	batchCmd.AddCommand(newBatchRetryCommand(ctx))
	batchCmd.AddCommand(newBatchClearCommand(ctx))

	return batchCmd
}

func (c *commandContext) withStore(fn func(*batch.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := batch.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func newBatchAddCommand(ctx *commandContext) *cobra.Command {
	var sizeFlag string
	var outputFlag string
	var scaleToFlag string

	cmd := &cobra.Command{
		Use:   "add <input>...",
		Short: "Queue shrink or scale jobs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()

			scaleTo := strings.TrimSpace(scaleToFlag)
			if scaleTo == "" && sizeFlag == "" {
				return fmt.Errorf("either --size or --scale-to is required")
			}
			if scaleTo != "" && sizeFlag != "" {
				return fmt.Errorf("--size and --scale-to are mutually exclusive")
			}
			if outputFlag != "" && len(args) > 1 {
				return fmt.Errorf("--output only applies to a single input")
			}

			var target int64
			if sizeFlag != "" {
				var err error
				target, err = parseTargetSize(sizeFlag)
				if err != nil {
					return err
				}
			}

			return ctx.withStore(func(store *batch.Store) error {
				out := cmd.OutOrStdout()
				for _, arg := range args {
					input, err := resolveInputPath(arg)
					if err != nil {
						return err
					}
					output := outputFlag
					if output == "" {
						output = defaultOutputPath(cfg, input, "")
					}

					job := &batch.Job{
						InputPath:  input,
						OutputPath: output,
					}
					if scaleTo != "" {
						job.Kind = batch.KindScale
						job.Paper = scaleTo
					} else {
						job.Kind = batch.KindShrink
						job.TargetBytes = target
					}

					stored, err := store.Add(cmd.Context(), job)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Queued job %d: %s %s\n", stored.ID, stored.Kind, input)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&sizeFlag, "size", "s", "", "Target size for shrink jobs, e.g. 500KB")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output path (single input only)")
	cmd.Flags().StringVar(&scaleToFlag, "scale-to", "", "Queue a scale job to the named paper size instead")

	return cmd
}

func newBatchRunCommand(ctx *commandContext) *cobra.Command {
	var watchFlag bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drain the job queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *batch.Store) error {
				// Jobs abandoned mid-run by a crashed runner go back to pending.
				if reset, err := store.ResetStuckRunning(cmd.Context()); err != nil {
					return err
				} else if reset > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Returned %d stuck job(s) to pending\n", reset)
				}

				runner := batch.NewRunner(cfg, store, logger, nil)
				if watchFlag {
					return runner.Watch(cmd.Context())
				}

				summary, err := runner.Run(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Run %s: %d processed, %d succeeded, %d failed\n",
					summary.RunID, summary.Processed, summary.Succeeded, summary.Failed)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Keep running and poll for new jobs")
	return cmd
}

func newBatchListCommand(ctx *commandContext) *cobra.Command {
	var statusFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queued jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			var statuses []batch.Status
			if trimmed := strings.TrimSpace(statusFlag); trimmed != "" {
				for _, part := range strings.Split(trimmed, ",") {
					status := batch.Status(strings.ToLower(strings.TrimSpace(part)))
					if !batch.ValidStatus(status) {
						return fmt.Errorf("unknown status %q", part)
					}
					statuses = append(statuses, status)
				}
			}

			return ctx.withStore(func(store *batch.Store) error {
				jobs, err := store.List(cmd.Context(), statuses...)
				if err != nil {
					return err
				}
				if len(jobs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
					return nil
				}

				rows := make([][]string, 0, len(jobs))
				for _, job := range jobs {
					detail := formatBytes(job.TargetBytes)
					if job.Kind == batch.KindScale {
						detail = job.Paper
					}
					note := job.ErrorMessage
					if note == "" && job.Status == batch.StatusDone {
						note = fmt.Sprintf("%s, %s", job.Method, formatBytes(job.SizeBytes))
					}
					rows = append(rows, []string{
						strconv.FormatInt(job.ID, 10),
						string(job.Kind),
						string(job.Status),
						job.InputPath,
						detail,
						note,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Kind", "Status", "Input", "Target", "Notes"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&statusFlag, "status", "", "Filter by status (comma separated: pending, running, done, failed)")
	return cmd
}

func newBatchRetryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retry [id]...",
		Short: "Return failed jobs to pending",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid job id %q", arg)
				}
				ids = append(ids, id)
			}

			return ctx.withStore(func(store *batch.Store) error {
				affected, err := store.RetryFailed(cmd.Context(), ids...)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Returned %d job(s) to pending\n", affected)
				return nil
			})
		},
	}
}

func newBatchClearCommand(ctx *commandContext) *cobra.Command {
	var allFlag bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove finished jobs (or all jobs with --all)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *batch.Store) error {
				var (
					removed int64
					err     error
				)
				if allFlag {
					removed, err = store.Clear(cmd.Context())
				} else {
					removed, err = store.ClearDone(cmd.Context())
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d job(s)\n", removed)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&allFlag, "all", false, "Remove every job regardless of status")
	return cmd
}
