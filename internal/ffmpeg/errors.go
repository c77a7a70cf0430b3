package ffmpeg

import (
	"fmt"
	"strings"
)

// ProcessError reports an ffmpeg process that exited unsuccessfully.
type ProcessError struct {
	ExitCode int    // -1 when the process did not report a code (e.g. killed)
	Stderr   string // full diagnostic output, one trailing line break trimmed
	Err      error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("ffmpeg exited with status %d", e.ExitCode)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// SpawnError reports that the ffmpeg process could not be started.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("start %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// trimTrailingNewline removes exactly one trailing "\n" or "\r\n".
func trimTrailingNewline(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	return strings.TrimSuffix(s, "\n")
}
