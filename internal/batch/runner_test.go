package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"pagepress/internal/config"
	"pagepress/internal/fileutil"
	"pagepress/internal/logging"
	"pagepress/internal/pdfops"
	"pagepress/internal/testsupport"
)

func runnerFixture(t *testing.T) (*config.Config, *Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return cfg, store
}

func TestRunnerDrainsImageShrinkJobs(t *testing.T) {
	cfg, store := runnerFixture(t)
	ctx := context.Background()

	input := testsupport.WriteJPEG(t, t.TempDir(), "photo.jpg", 128, 128, 95)
	output := filepath.Join(cfg.Paths.OutputDir, "photo.jpg")
	job, err := store.Add(ctx, &Job{
		Kind:        KindShrink,
		InputPath:   input,
		OutputPath:  output,
		TargetBytes: 10_000,
	})
	if err != nil {
		t.Fatalf("add job: %v", err)
	}

	runner := NewRunner(cfg, store, logging.NewNop(), nil)
	summary, err := runner.Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Processed != 1 || summary.Succeeded != 1 || summary.Failed != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.RunID == "" {
		t.Error("run id not assigned")
	}

	done, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if done.Status != StatusDone {
		t.Fatalf("status = %q (error %q), want done", done.Status, done.ErrorMessage)
	}
	if done.RunID != summary.RunID {
		t.Errorf("job run id = %q, want %q", done.RunID, summary.RunID)
	}
	if done.Method != "image-fit" {
		t.Errorf("method = %q, want image-fit", done.Method)
	}
	size, err := fileutil.FileSize(output)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if size != done.SizeBytes {
		t.Errorf("output size %d does not match recorded %d", size, done.SizeBytes)
	}
}

func TestRunnerRecordsFailures(t *testing.T) {
	cfg, store := runnerFixture(t)
	ctx := context.Background()

	job, err := store.Add(ctx, &Job{
		Kind:        KindShrink,
		InputPath:   filepath.Join(t.TempDir(), "missing.jpg"),
		OutputPath:  filepath.Join(cfg.Paths.OutputDir, "missing.jpg"),
		TargetBytes: 10_000,
	})
	if err != nil {
		t.Fatalf("add job: %v", err)
	}

	summary, err := NewRunner(cfg, store, logging.NewNop(), nil).Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Failed != 1 || summary.Succeeded != 0 {
		t.Errorf("summary = %+v", summary)
	}

	failed, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if failed.Status != StatusFailed {
		t.Errorf("status = %q, want failed", failed.Status)
	}
	if failed.ErrorMessage == "" {
		t.Error("failed job should record an error message")
	}
}

func TestRunnerExecutesScaleJobs(t *testing.T) {
	cfg, store := runnerFixture(t)
	ctx := context.Background()

	restore := pdfops.SetPDFEnginesForTests(nil, nil, func(_, out, desc string) error {
		if desc != "form:A4" {
			t.Errorf("resize description = %q, want form:A4", desc)
		}
		return os.WriteFile(out, []byte("%PDF-1.7 scaled"), 0o644)
	}, nil)
	defer restore()

	input := filepath.Join(t.TempDir(), "letter.pdf")
	testsupport.WriteFile(t, input, 2_000)
	output := filepath.Join(cfg.Paths.OutputDir, "letter.pdf")
	job, err := store.Add(ctx, &Job{
		Kind:       KindScale,
		InputPath:  input,
		OutputPath: output,
		Paper:      "a4",
	})
	if err != nil {
		t.Fatalf("add job: %v", err)
	}

	summary, err := NewRunner(cfg, store, logging.NewNop(), nil).Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Succeeded != 1 {
		t.Fatalf("summary = %+v", summary)
	}

	done, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if done.Status != StatusDone || done.Method != "scale" {
		t.Errorf("job = %+v", done)
	}
	if done.SizeBytes == 0 {
		t.Error("scale job should record output size")
	}
}

func TestRunnerScaleFallsBackToDefaultPaper(t *testing.T) {
	cfg, store := runnerFixture(t)
	ctx := context.Background()

	var gotDesc string
	restore := pdfops.SetPDFEnginesForTests(nil, nil, func(_, out, desc string) error {
		gotDesc = desc
		return os.WriteFile(out, []byte("%PDF-1.7 scaled"), 0o644)
	}, nil)
	defer restore()

	input := filepath.Join(t.TempDir(), "doc.pdf")
	testsupport.WriteFile(t, input, 2_000)
	if _, err := store.Add(ctx, &Job{
		Kind:       KindScale,
		InputPath:  input,
		OutputPath: filepath.Join(cfg.Paths.OutputDir, "doc.pdf"),
	}); err != nil {
		t.Fatalf("add job: %v", err)
	}

	if _, err := NewRunner(cfg, store, logging.NewNop(), nil).Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if gotDesc != "form:"+cfg.Scale.DefaultPaper {
		t.Errorf("description = %q, want form:%s", gotDesc, cfg.Scale.DefaultPaper)
	}
}

func TestRunnerRefusesSecondInstance(t *testing.T) {
	cfg, store := runnerFixture(t)

	held := flock.New(filepath.Join(cfg.Paths.LogDir, "batch.lock"))
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("pre-acquire lock: ok=%v err=%v", ok, err)
	}
	defer func() { _ = held.Unlock() }()

	_, err = NewRunner(cfg, store, logging.NewNop(), nil).Run(context.Background())
	if err != ErrRunnerActive {
		t.Fatalf("err = %v, want ErrRunnerActive", err)
	}
}
