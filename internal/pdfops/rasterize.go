package pdfops

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"pagepress/internal/config"
	"pagepress/internal/logging"
)

// PageRasterizer renders PDF pages into image files inside outDir and returns
// the page file paths in page order.
type PageRasterizer interface {
	Rasterize(ctx context.Context, pdfPath, outDir string) ([]string, error)
}

// ExecRasterizer shells out to ghostscript or mutool.
type ExecRasterizer struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewExecRasterizer builds a rasterizer using the configured tool.
func NewExecRasterizer(cfg *config.Config, logger *slog.Logger) *ExecRasterizer {
	return &ExecRasterizer{cfg: cfg, logger: logging.WithComponent(logger, "raster")}
}

// Rasterize renders every page of the PDF at the configured DPI.
func (r *ExecRasterizer) Rasterize(ctx context.Context, pdfPath, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create raster directory: %w", err)
	}

	timeout := time.Duration(r.cfg.Raster.Timeout) * time.Second
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	binary, args, pattern := r.command(pdfPath, outDir)
	r.logger.Debug("rasterizing pdf",
		logging.String(logging.FieldInput, pdfPath),
		logging.String("command", binary+" "+strings.Join(args, " ")),
	)

	cmd := exec.CommandContext(runCtx, binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%s rasterize: %w: %s", binary, err, strings.TrimSpace(string(output)))
	}

	pages, err := filepath.Glob(filepath.Join(outDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("collect raster pages: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%s produced no pages for %s", binary, pdfPath)
	}
	sort.Strings(pages)
	return pages, nil
}

// command builds the tool invocation and the glob pattern matching its output.
func (r *ExecRasterizer) command(pdfPath, outDir string) (string, []string, string) {
	dpi := strconv.Itoa(r.cfg.Raster.DPI)
	if r.cfg.Raster.Tool == "mutool" {
		// mutool numbers pages with %d; zero padding comes from %03d.
		out := filepath.Join(outDir, "page-%03d.png")
		return r.cfg.MuToolBinary(), []string{"draw", "-r", dpi, "-o", out, pdfPath}, "page-*.png"
	}
	out := filepath.Join(outDir, "page-%03d.jpg")
	args := []string{
		"-dNOPAUSE", "-dBATCH", "-dSAFER", "-dQUIET",
		"-sDEVICE=jpeg", "-dJPEGQ=92",
		"-r" + dpi,
		"-o", out,
		pdfPath,
	}
	return r.cfg.GhostscriptBinary(), args, "page-*.jpg"
}
