// Command pagepress fits PDFs and raster images to target byte sizes,
// scales pages to standard paper formats, and runs queued batches of both.
package main
