// Package pipeline turns command-line inputs into conversion jobs, runs the
// jobs concurrently under a Runner, and reports their outcomes.
//
// Resolution errors (missing inputs, bad output directory, mixed inputs)
// abort the whole batch before any job starts. Everything that happens
// once a job is running, including its frame count, is recorded in that
// job's Result and never affects sibling jobs.
package pipeline
