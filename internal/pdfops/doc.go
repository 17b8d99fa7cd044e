// Package pdfops implements the PDF transforms: inspection, page scaling to
// standard paper sizes, and shrinking a document to a target byte size.
//
// Structural PDF work is delegated to pdfcpu. Shrinking first tries pdfcpu's
// lossless optimizer; when that cannot reach the target the pages are
// rasterized with an external tool (ghostscript or mutool), re-encoded as
// JPEG at a searched quality level, and reassembled into a fresh document.
package pdfops
