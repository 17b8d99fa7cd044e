package pdfops

import (
	"testing"
)

func TestScaleToPaperBuildsFormDescription(t *testing.T) {
	var gotIn, gotOut, gotDesc string
	restore := SetPDFEnginesForTests(nil, nil, func(in, out, desc string) error {
		gotIn, gotOut, gotDesc = in, out, desc
		return nil
	}, nil)
	defer restore()

	size, err := ScaleToPaper("in.pdf", "out.pdf", "a4")
	if err != nil {
		t.Fatalf("ScaleToPaper returned error: %v", err)
	}
	if size.Name != "A4" {
		t.Errorf("size name = %q, want A4", size.Name)
	}
	if gotIn != "in.pdf" || gotOut != "out.pdf" {
		t.Errorf("resize called with (%q, %q)", gotIn, gotOut)
	}
	if gotDesc != "form:A4" {
		t.Errorf("resize description = %q, want form:A4", gotDesc)
	}
}

func TestScaleToPaperRejectsUnknownPaper(t *testing.T) {
	called := false
	restore := SetPDFEnginesForTests(nil, nil, func(string, string, string) error {
		called = true
		return nil
	}, nil)
	defer restore()

	if _, err := ScaleToPaper("in.pdf", "out.pdf", "napkin"); err == nil {
		t.Fatal("expected error for unknown paper size")
	}
	if called {
		t.Error("resize should not run when the paper size is unknown")
	}
}
