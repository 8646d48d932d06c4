// Package comparison runs configured comparisons and exposes them over HTTP.
//
// The Service opens fresh providers for every run, feeds them to the comparison engine and
// writes the report into a timestamped output folder. Batches run sequentially; a failing
// comparison is logged and the batch moves on. Concurrent HTTP requests for the same
// comparison share one run.
//
// # Routes
//
//   - GET  /comparisons              configured comparisons
//   - POST /comparisons/:name/run    run one comparison and return its summary
//   - GET  /comparisons/:name/report summary of the last completed run
package comparison
