// Package tasks orchestrates multi-request operations against the admin backend.
//
// # Report Assembly
//
// [SeriesEngine.Report] builds a [models.SeriesReport] for one song: metadata
// first, then the national weekly series, then one series per requested
// station. Station selection is resolved through the backend's station
// directory, either an explicit ID list or the whole directory.
//
// Metadata and national fetches are load-bearing and abort the run; station
// fetches are best-effort, with failures collected in ReportResult so the
// caller can render a partial report and name what was skipped.
//
// # Bulk Export
//
// [SeriesEngine.BulkExport] runs report assembly for many songs and writes
// each report to disk via the formatter package. Fetches go through a
// rate-limited producer, file writes through a bounded worker pool, and the
// run ends with an export_manifest.json summarizing per-song outcomes.
//
// # Progress Reporting
//
// Long operations accept an optional progress channel. Sends never block;
// a nil channel or a slow consumer only loses display updates, not work.
package tasks
