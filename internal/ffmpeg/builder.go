package ffmpeg

import (
	"strconv"
	"strings"

	"github.com/backmassage/qonvert/internal/planner"
)

// Build constructs the ffmpeg argument slice (without the program name) for
// a plan. Progress is always written to stdout as key=value lines.
func Build(plan *planner.FilePlan) []string {
	args := make([]string, 0, 32)

	// --- Preamble ---
	args = append(args, "-hide_banner", "-nostdin", "-nostats")
	if plan.Verbose {
		args = append(args, "-loglevel", "info")
	} else {
		args = append(args, "-loglevel", "error")
	}
	args = append(args, "-progress", "pipe:1")

	// Overwrite the output file.
	args = append(args, "-y")

	// --- Input ---
	args = append(args, "-i", plan.InputPath)

	// --- Video codec ---
	if plan.Codec != "" {
		args = append(args, "-c:v", plan.Codec)
		args = append(args, plan.CodecOpts...)
	}

	// --- Container and filters ---
	args = append(args, plan.ContainerOpts...)
	args = append(args, plan.FilterOpts...)

	// --- Output ---
	args = append(args, plan.OutputPath)
	return args
}

// FormatCommand renders name and args as a shell-like string for logs.
func FormatCommand(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quoteArg(name))
	for _, a := range args {
		parts = append(parts, quoteArg(a))
	}
	return strings.Join(parts, " ")
}

func quoteArg(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n'\"\\$*?()") {
		return strconv.Quote(s)
	}
	return s
}
