package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/qonvert/internal/naming"
)

// ResolveInputs expands command-line arguments into input files. A single
// directory argument expands to the media files inside it, and the entries
// it leaves out are named in one warning on log; otherwise every argument
// must be a file.
func ResolveInputs(args []string, log Logger) ([]string, error) {
	if len(args) == 0 {
		return nil, &ResolutionError{Op: "resolve inputs", Err: ErrNoInputs}
	}

	if len(args) == 1 {
		fi, err := os.Stat(args[0])
		if err != nil {
			return nil, &ResolutionError{Op: "stat", Path: args[0], Err: err}
		}
		if fi.IsDir() {
			files, skipped, err := Discover(args[0])
			if err != nil {
				return nil, &ResolutionError{Op: "read dir", Path: args[0], Err: err}
			}
			if len(skipped) > 0 {
				log.Warn("Skipping %d file(s) without a media extension: %s",
					len(skipped), strings.Join(skipped, ", "))
			}
			if len(files) == 0 {
				return nil, &ResolutionError{Op: "read dir", Path: args[0], Err: ErrNoInputs}
			}
			return files, nil
		}
		return []string{filepath.Clean(args[0])}, nil
	}

	files := make([]string, 0, len(args))
	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil {
			return nil, &ResolutionError{Op: "stat", Path: arg, Err: err}
		}
		if fi.IsDir() {
			return nil, &ResolutionError{Op: "resolve inputs", Path: arg, Err: ErrMixedInputs}
		}
		files = append(files, filepath.Clean(arg))
	}
	return files, nil
}

// ResolveJobs pairs every input with its destination inside outputDir,
// using outputType as the new extension. Inputs that would land on the same
// destination, or on another input, get " - dupN" suffixes. An input that
// would be its own destination yields a job whose Rejected field holds a
// *ResolutionError; the other jobs are unaffected. Only an unusable
// outputDir fails the whole call.
func ResolveJobs(inputs []string, outputDir, outputType string) ([]Job, error) {
	fi, err := os.Stat(outputDir)
	if err != nil {
		return nil, &ResolutionError{Op: "stat", Path: outputDir, Err: err}
	}
	if !fi.IsDir() {
		return nil, &ResolutionError{Op: "output dir", Path: outputDir, Err: ErrNotDirectory}
	}

	claims := naming.NewClaims()
	for _, in := range inputs {
		claims.Claim(in, in)
	}
	jobs := make([]Job, 0, len(inputs))
	for _, in := range inputs {
		out := claims.Claim(in, naming.OutputPath(in, outputDir, outputType))
		job := NewJob(in, out)
		if samePath(in, out) {
			job.Rejected = &ResolutionError{Op: "output path", Path: in, Err: ErrSameAsInput}
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// AssignCodecs sets the per-job codec from byPattern, which maps
// filepath.Match patterns to codecs. Patterns are matched against the
// lowercased base name of the input. When several patterns match, the
// lexically smallest one wins so the choice does not depend on map order.
func AssignCodecs(jobs []Job, byPattern map[string]string) error {
	patterns := make([]string, 0, len(byPattern))
	for p := range byPattern {
		if _, err := filepath.Match(p, ""); err != nil {
			return &ResolutionError{Op: "codec pattern", Path: p, Err: err}
		}
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)

	for i := range jobs {
		name := strings.ToLower(filepath.Base(jobs[i].InputPath))
		for _, p := range patterns {
			if ok, _ := filepath.Match(strings.ToLower(p), name); ok {
				jobs[i].Codec = byPattern[p]
				break
			}
		}
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
