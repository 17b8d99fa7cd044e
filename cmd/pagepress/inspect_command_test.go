package main

import (
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"pagepress/internal/pdfops"
	"pagepress/internal/testsupport"
)

func TestInspectCommandRendersAnalysis(t *testing.T) {
	env := setupCLITestEnv(t)

	restore := pdfops.SetPDFEnginesForTests(func(string) ([]types.Dim, error) {
		return []types.Dim{{Width: 595.27, Height: 841.89}}, nil
	}, nil, nil, nil)
	defer restore()

	input := filepath.Join(t.TempDir(), "report.pdf")
	testsupport.WriteFile(t, input, 54_321)

	out, _, err := runCLI(t, []string{"inspect", input}, env.configPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "A4")
	requireContains(t, out, "54321 bytes")

	out, _, err = runCLI(t, []string{"inspect", input, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("inspect --json: %v", err)
	}
	requireContains(t, out, `"pages": 1`)
	requireContains(t, out, `"size_bytes": 54321`)
}

func TestInspectCommandRejectsNonPDF(t *testing.T) {
	env := setupCLITestEnv(t)

	input := testsupport.WriteJPEG(t, t.TempDir(), "photo.jpg", 16, 16, 80)
	if _, _, err := runCLI(t, []string{"inspect", input}, env.configPath); err == nil {
		t.Fatal("expected error for non-pdf input")
	}
}
