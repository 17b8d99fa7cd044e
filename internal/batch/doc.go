// Package batch persists queued transform jobs in SQLite and drains them
// with a single-instance runner.
package batch
