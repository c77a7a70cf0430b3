package pipeline

import (
	"time"

	"github.com/google/uuid"
)

// Job is one source-to-destination conversion. Jobs are created by
// ResolveJobs and not modified afterwards.
type Job struct {
	ID         string
	InputPath  string
	OutputPath string
	// Codec overrides the policy's choice for this job only. Set by
	// AssignCodecs from the config file's codecs.files table.
	Codec string
	// Rejected is set by ResolveJobs when the job cannot run. The Runner
	// reports it as the job's result without spawning anything.
	Rejected error
}

// NewJob returns a Job with a fresh random ID.
func NewJob(inputPath, outputPath string) Job {
	return Job{
		ID:         uuid.NewString(),
		InputPath:  inputPath,
		OutputPath: outputPath,
	}
}

// ShortID returns the first eight characters of the job ID, enough to tell
// jobs apart in logs and temporary file names.
func (j Job) ShortID() string {
	if len(j.ID) > 8 {
		return j.ID[:8]
	}
	return j.ID
}

// Result is the terminal outcome of one job. Err is nil on success.
type Result struct {
	Job        Job
	Frames     uint64
	Err        error
	Elapsed    time.Duration
	InputSize  int64
	OutputSize int64
}

// OK reports whether the job succeeded.
func (r Result) OK() bool { return r.Err == nil }
