// Package imaging decodes raster images, rescales them, and fits re-encoded
// output to a target byte size.
//
// Decoding accepts JPEG, PNG, GIF, WebP, BMP, and TIFF. Output is JPEG or
// PNG; only JPEG exposes a real quality axis, so PNG fitting degenerates to a
// single trial at the codec's best compression level.
package imaging
