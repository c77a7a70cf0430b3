// Package display renders per-job progress bars and formats sizes and
// durations for the run summary.
package display
