package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"pagepress/internal/config"
	"pagepress/internal/fileutil"
	"pagepress/internal/imaging"
	"pagepress/internal/logging"
	"pagepress/internal/pdfops"
)

// ErrRunnerActive indicates another runner holds the batch lock.
var ErrRunnerActive = errors.New("another batch runner is already active")

// Runner drains pending jobs while holding an exclusive file lock, so at most
// one runner works a queue at a time.
type Runner struct {
	cfg      *config.Config
	store    *Store
	logger   *slog.Logger
	shrinker *pdfops.Shrinker
	lock     *flock.Flock
}

// RunSummary reports what a drain pass processed.
type RunSummary struct {
	RunID     string
	Processed int
	Succeeded int
	Failed    int
}

// NewRunner constructs a runner. A nil shrinker selects the default document
// pipeline.
func NewRunner(cfg *config.Config, store *Store, logger *slog.Logger, shrinker *pdfops.Shrinker) *Runner {
	if shrinker == nil {
		shrinker = pdfops.NewShrinker(cfg, logger, nil)
	}
	return &Runner{
		cfg:      cfg,
		store:    store,
		logger:   logging.WithComponent(logger, "batch"),
		shrinker: shrinker,
		lock:     flock.New(filepath.Join(cfg.Paths.LogDir, "batch.lock")),
	}
}

// Run acquires the batch lock, drains every pending job, and releases the
// lock. Failed jobs stay in the queue with their error message recorded.
func (r *Runner) Run(ctx context.Context) (RunSummary, error) {
	ok, err := r.lock.TryLock()
	if err != nil {
		return RunSummary{}, fmt.Errorf("acquire batch lock: %w", err)
	}
	if !ok {
		return RunSummary{}, ErrRunnerActive
	}
	defer func() { _ = r.lock.Unlock() }()

	return r.drain(ctx)
}

// Watch holds the batch lock and drains the queue repeatedly, waking on the
// configured poll interval, until the context is cancelled.
func (r *Runner) Watch(ctx context.Context) error {
	ok, err := r.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire batch lock: %w", err)
	}
	if !ok {
		return ErrRunnerActive
	}
	defer func() { _ = r.lock.Unlock() }()

	interval := time.Duration(r.cfg.Batch.PollInterval) * time.Second
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := r.drain(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (r *Runner) drain(ctx context.Context) (RunSummary, error) {
	summary := RunSummary{RunID: uuid.NewString()}
	r.logger.Debug("draining queue", logging.String(logging.FieldRunID, summary.RunID))

	for {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		job, err := r.store.NextPending(ctx)
		if err != nil {
			return summary, err
		}
		if job == nil {
			break
		}

		job.Status = StatusRunning
		job.RunID = summary.RunID
		if err := r.store.Update(ctx, job); err != nil {
			return summary, err
		}

		summary.Processed++
		if err := r.execute(ctx, job); err != nil {
			job.Status = StatusFailed
			job.ErrorMessage = err.Error()
			summary.Failed++
			r.logger.Error("job failed",
				logging.Int64(logging.FieldJobID, job.ID),
				logging.String(logging.FieldInput, job.InputPath),
				logging.Error(err),
			)
		} else {
			job.Status = StatusDone
			job.ErrorMessage = ""
			summary.Succeeded++
			r.logger.Info("job done",
				logging.Int64(logging.FieldJobID, job.ID),
				logging.String(logging.FieldOutput, job.OutputPath),
				logging.Int64(logging.FieldSize, job.SizeBytes),
			)
		}
		if err := r.store.Update(ctx, job); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func (r *Runner) execute(ctx context.Context, job *Job) error {
	switch job.Kind {
	case KindShrink:
		return r.runShrink(ctx, job)
	case KindScale:
		return r.runScale(job)
	default:
		return fmt.Errorf("unknown job kind %q", job.Kind)
	}
}

func (r *Runner) runShrink(ctx context.Context, job *Job) error {
	if strings.EqualFold(filepath.Ext(job.InputPath), ".pdf") {
		outcome, err := r.shrinker.Shrink(ctx, job.InputPath, job.OutputPath, job.TargetBytes)
		if err != nil {
			return err
		}
		job.Method = outcome.Method
		job.Quality = outcome.Quality
		job.SizeBytes = outcome.SizeBytes
		return nil
	}

	img, _, err := imaging.DecodeFile(job.InputPath)
	if err != nil {
		return err
	}
	currentSize, err := fileutil.FileSize(job.InputPath)
	if err != nil {
		return err
	}

	format, err := r.outputFormat(job.OutputPath)
	if err != nil {
		return err
	}
	outcome, err := imaging.Shrink(ctx, img, currentSize, imaging.ShrinkRequest{
		TargetBytes:    job.TargetBytes,
		Format:         format,
		MinQuality:     r.cfg.Shrink.MinQuality,
		MaxQuality:     r.cfg.Shrink.MaxQuality,
		Tolerance:      r.cfg.Shrink.Tolerance,
		MaxIterations:  r.cfg.Shrink.MaxIterations,
		ConvertQuality: r.cfg.Image.ConvertQuality,
	})
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(job.OutputPath, outcome.Data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	job.Method = "image-fit"
	job.Quality = outcome.Quality
	job.SizeBytes = outcome.Size
	return nil
}

func (r *Runner) runScale(job *Job) error {
	paper := job.Paper
	if paper == "" {
		paper = r.cfg.Scale.DefaultPaper
	}
	if _, err := pdfops.ScaleToPaper(job.InputPath, job.OutputPath, paper); err != nil {
		return err
	}
	size, err := fileutil.FileSize(job.OutputPath)
	if err != nil {
		return fmt.Errorf("stat output: %w", err)
	}
	job.Method = "scale"
	job.SizeBytes = size
	return nil
}

// outputFormat derives the image codec from the output extension, falling
// back to the configured default.
func (r *Runner) outputFormat(outputPath string) (imaging.Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(outputPath), ".")
	if ext == "" {
		return imaging.ParseFormat(r.cfg.Image.DefaultFormat)
	}
	return imaging.ParseFormat(ext)
}
