// Package report writes comparison results to disk.
//
// A run produces up to five files in one output folder: a plain-text summary and four JSON
// arrays (patches, source-only records, target-only records and differing match-key labels).
// Empty collections and unnamed files are skipped. Summary lines are also logged.
//
// When an Uploader is configured, every written file is copied to object storage under
// "<prefix>/<folder>/<file>".
package report
