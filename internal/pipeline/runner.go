package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/backmassage/qonvert/internal/display"
	"github.com/backmassage/qonvert/internal/naming"
	"github.com/backmassage/qonvert/internal/planner"
	"github.com/backmassage/qonvert/internal/progress"
)

// FrameCounter reports the number of frames in an input; satisfied by
// *probe.Counter.
type FrameCounter interface {
	Count(ctx context.Context, path string) (uint64, error)
}

// Transcoder runs one conversion; satisfied by *ffmpeg.Supervisor.
type Transcoder interface {
	Run(ctx context.Context, plan *planner.FilePlan, observe func(progress.Snapshot)) error
	CommandLine(plan *planner.FilePlan) string
}

// Logger is the subset of *logging.Logger the pipeline writes to.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Runner executes a batch of jobs concurrently. Jobs share nothing but the
// read-only Policy; each has its own tracker and its own Result.
type Runner struct {
	Counter    FrameCounter
	Supervisor Transcoder
	Policy     planner.Policy
	Display    display.Display // display.Quiet when nil
	Log        Logger

	// Limit caps the number of jobs running at once; 0 means no cap.
	Limit   int
	DryRun  bool
	Verbose bool
}

// Run starts every job and waits for all of them. The returned slice has
// one Result per job, in job order. A failing job never stops another.
func (r *Runner) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))

	var sem *semaphore.Weighted
	if r.Limit > 0 {
		sem = semaphore.NewWeighted(int64(r.Limit))
	}

	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Go(func() {
			if sem != nil {
				if err := sem.Acquire(ctx, 1); err != nil {
					results[i] = Result{Job: job, Err: fmt.Errorf("not started: %w", err)}
					return
				}
				defer sem.Release(1)
			}
			results[i] = r.runJob(ctx, job)
		})
	}
	wg.Wait()
	r.display().Wait()
	return results
}

func (r *Runner) display() display.Display {
	if r.Display == nil {
		return display.Quiet{}
	}
	return r.Display
}

// policyFor applies the job's own codec override, if any.
func (r *Runner) policyFor(job Job) planner.Policy {
	if job.Codec == "" {
		return r.Policy
	}
	p := r.Policy
	p.Override = job.Codec
	return p
}

// runJob counts frames, supervises ffmpeg into a temporary sibling of the
// destination and moves the result into place on success.
func (r *Runner) runJob(ctx context.Context, job Job) Result {
	start := time.Now()
	res := Result{Job: job}
	if fi, err := os.Stat(job.InputPath); err == nil {
		res.InputSize = fi.Size()
	}

	if job.Rejected != nil {
		res.Err = job.Rejected
		return res
	}
	if err := ctx.Err(); err != nil {
		res.Err = fmt.Errorf("not started: %w", err)
		return res
	}

	plan := planner.BuildPlan(r.policyFor(job), job.InputPath, job.OutputPath, r.Verbose)
	if r.DryRun {
		r.Log.Info("[DRY] %s", r.Supervisor.CommandLine(plan))
		return res
	}

	frames, err := r.Counter.Count(ctx, job.InputPath)
	if err != nil {
		res.Err = &ResolutionError{Op: "count frames", Path: job.InputPath, Err: err}
		res.Elapsed = time.Since(start)
		return res
	}
	res.Frames = frames
	r.Log.Debug(r.Verbose, "[%s] %s: %d frames", job.ShortID(), filepath.Base(job.InputPath), frames)

	tmp := naming.TempPath(job.OutputPath, job.ShortID())
	tmpPlan := plan.WithOutput(tmp)
	r.Log.Debug(r.Verbose, "[%s] %s", job.ShortID(), r.Supervisor.CommandLine(tmpPlan))

	tracker := r.display().Track(filepath.Base(job.InputPath), frames)
	err = r.Supervisor.Run(ctx, tmpPlan, tracker.Update)
	if err == nil {
		err = finalize(tmp, job.OutputPath)
	}
	tracker.Done(err)
	res.Elapsed = time.Since(start)

	if err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			r.Log.Debug(r.Verbose, "[%s] remove %s: %v", job.ShortID(), tmp, rmErr)
		}
		res.Err = err
		return res
	}
	if fi, err := os.Stat(job.OutputPath); err == nil {
		res.OutputSize = fi.Size()
	}
	return res
}

// finalize moves a completed temporary output over the destination.
func finalize(tmp, dst string) error {
	if err := os.Rename(tmp, dst); err != nil {
		return fmt.Errorf("move output into place: %w", err)
	}
	return nil
}
