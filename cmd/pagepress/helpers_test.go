package main

import (
	"path/filepath"
	"testing"

	"pagepress/internal/testsupport"
)

func TestParseTargetSize(t *testing.T) {
	cases := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{input: "500KB", want: 500_000},
		{input: "2MB", want: 2_000_000},
		{input: "2 MiB", want: 2_097_152},
		{input: "12345", want: 12_345},
		{input: "", wantErr: true},
		{input: "0", wantErr: true},
		{input: "lots", wantErr: true},
	}
	for _, tc := range cases {
		got, err := parseTargetSize(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseTargetSize(%q) = %d, want error", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseTargetSize(%q) error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseTargetSize(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestDefaultOutputPath(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	got := defaultOutputPath(cfg, "/docs/report.pdf", "")
	if got != filepath.Join(cfg.Paths.OutputDir, "report.pdf") {
		t.Errorf("default path = %q", got)
	}

	got = defaultOutputPath(cfg, "/photos/cat.png", "jpg")
	if got != filepath.Join(cfg.Paths.OutputDir, "cat.jpg") {
		t.Errorf("extension swap path = %q", got)
	}

	cfg.Paths.OutputDir = ""
	got = defaultOutputPath(cfg, "/docs/report.pdf", "")
	if got != "/docs/resized-report.pdf" {
		t.Errorf("sibling path = %q", got)
	}
}

func TestIsPDF(t *testing.T) {
	if !isPDF("report.PDF") || !isPDF("/a/b/c.pdf") {
		t.Error("pdf extensions should match case-insensitively")
	}
	if isPDF("photo.jpg") || isPDF("archive.pdf.zip") {
		t.Error("non-pdf paths should not match")
	}
}
