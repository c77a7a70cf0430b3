package pipeline

import (
	"errors"
	"strings"
	"time"

	"github.com/backmassage/qonvert/internal/display"
	"github.com/backmassage/qonvert/internal/ffmpeg"
)

// Report logs one line per job and a summary, and returns the totals.
// Failure details are only printed in verbose mode.
func (r *Runner) Report(results []Result, elapsed time.Duration) RunStats {
	stats := RunStats{Elapsed: elapsed}
	for _, res := range results {
		stats.Add(res)
		switch {
		case res.OK() && r.DryRun:
			r.Log.Info("Would convert: %s -> %s", res.Job.InputPath, res.Job.OutputPath)
		case res.OK():
			r.Log.Success("%s", res.Job.OutputPath)
		default:
			r.logFailure(res)
		}
	}
	r.logSummary(&stats)
	return stats
}

func (r *Runner) logFailure(res Result) {
	if !r.Verbose {
		r.Log.Error("%s: conversion failed (use -v for details)", res.Job.InputPath)
		return
	}
	r.Log.Error("%s: %v", res.Job.InputPath, res.Err)
	var pe *ffmpeg.ProcessError
	if errors.As(res.Err, &pe) {
		logStderr(r.Log, pe.Stderr)
	}
}

func logStderr(log Logger, stderr string) {
	if stderr == "" {
		return
	}
	for _, l := range strings.Split(stderr, "\n") {
		log.Error("  %s", strings.TrimRight(l, "\r"))
	}
}

func (r *Runner) logSummary(stats *RunStats) {
	log := r.Log
	log.Info("==============================")
	log.Info("Done: %d converted, %d failed in %s",
		stats.Converted, stats.Failed, display.FormatDuration(stats.Elapsed))

	if r.DryRun {
		log.Info("  Total space saved: n/a (dry run)")
		return
	}
	if stats.Converted == 0 {
		return
	}

	saved := stats.SpaceSaved()
	if saved >= 0 {
		log.Success("  Total space saved: %s (input %s -> output %s)",
			display.FormatBytes(saved),
			display.FormatBytes(stats.TotalInputBytes),
			display.FormatBytes(stats.TotalOutputBytes))
	} else {
		log.Warn("  Total space saved: %s (overall output is larger)",
			display.FormatBytesWithSign(saved))
	}
}
