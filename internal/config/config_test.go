package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"pagepress/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantWork := filepath.Join(tempHome, ".local", "share", "pagepress", "work")
	if cfg.Paths.WorkDir != wantWork {
		t.Fatalf("unexpected work dir: got %q want %q", cfg.Paths.WorkDir, wantWork)
	}
	if cfg.Paths.OutputDir != "" {
		t.Fatalf("expected empty output dir default, got %q", cfg.Paths.OutputDir)
	}
	if cfg.Shrink.MaxQuality != 100 || cfg.Shrink.MinQuality != 1 {
		t.Fatalf("unexpected quality bounds: %+v", cfg.Shrink)
	}
	if cfg.Shrink.Tolerance != 0.05 {
		t.Fatalf("unexpected tolerance: %g", cfg.Shrink.Tolerance)
	}
	if cfg.Raster.Tool != "gs" || cfg.Raster.DPI != 150 {
		t.Fatalf("unexpected raster defaults: %+v", cfg.Raster)
	}
	if cfg.Scale.DefaultPaper != "A4" {
		t.Fatalf("unexpected default paper: %q", cfg.Scale.DefaultPaper)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.WorkDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "pagepress.toml")

	type payload struct {
		Shrink struct {
			MaxQuality int     `toml:"max_quality"`
			Tolerance  float64 `toml:"tolerance"`
		} `toml:"shrink"`
		Raster struct {
			Tool string `toml:"tool"`
			DPI  int    `toml:"dpi"`
		} `toml:"raster"`
	}
	custom := payload{}
	custom.Shrink.MaxQuality = 90
	custom.Shrink.Tolerance = 0.1
	custom.Raster.Tool = "mutool"
	custom.Raster.DPI = 200
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Shrink.MaxQuality != 90 {
		t.Fatalf("expected max quality 90, got %d", cfg.Shrink.MaxQuality)
	}
	if cfg.Shrink.Tolerance != 0.1 {
		t.Fatalf("expected tolerance 0.1, got %g", cfg.Shrink.Tolerance)
	}
	if cfg.Raster.Tool != "mutool" || cfg.Raster.DPI != 200 {
		t.Fatalf("unexpected raster overrides: %+v", cfg.Raster)
	}
}

func TestEnvOverridesLogLevel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PAGEPRESS_LOG_LEVEL", "DEBUG")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected env override to debug, got %q", cfg.Logging.Level)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "max_iterations") {
		t.Fatalf("sample config missing shrink keys: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Shrink.MaxQuality != 100 {
		t.Fatalf("sample max quality should match defaults, got %d", cfg.Shrink.MaxQuality)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Shrink.MinQuality = 50
	cfg.Shrink.MaxQuality = 10
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for inverted quality range")
	}

	cfg = config.Default()
	cfg.Shrink.Tolerance = 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for tolerance of 1")
	}

	cfg = config.Default()
	cfg.Raster.Tool = "poppler"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported raster tool")
	}

	cfg = config.Default()
	cfg.Raster.DPI = 1200
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for out-of-range dpi")
	}

	cfg = config.Default()
	cfg.Scale.DefaultPaper = "C4"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown paper size")
	}

	cfg = config.Default()
	cfg.Image.DefaultFormat = "webp"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported output format")
	}
}
