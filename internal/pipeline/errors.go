package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by ResolutionError.
var (
	ErrNoInputs     = errors.New("no input files")
	ErrNotDirectory = errors.New("not a directory")
	ErrMixedInputs  = errors.New("either a single directory or multiple files can be used as input")
	ErrSameAsInput  = errors.New("output path is the same as the input path")
)

// ResolutionError reports a failure that happens before a conversion can
// start: resolving inputs and outputs, or counting a job's frames.
type ResolutionError struct {
	Op   string // e.g. "stat", "read dir", "count frames"
	Path string
	Err  error
}

func (e *ResolutionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }
