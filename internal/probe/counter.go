package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNoFrameCount is returned when ffprobe reports no count, e.g. for an
// input without a video stream.
var ErrNoFrameCount = errors.New("ffprobe reported no video frame count")

// Counter counts video frames with a one-shot ffprobe call.
type Counter struct {
	FFprobePath string

	// commandContext builds the process; replaced in tests.
	commandContext func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewCounter returns a Counter invoking the given ffprobe binary
// ("ffprobe" when empty).
func NewCounter(ffprobePath string) *Counter {
	return &Counter{FFprobePath: ffprobePath}
}

func (c *Counter) path() string {
	if c.FFprobePath == "" {
		return "ffprobe"
	}
	return c.FFprobePath
}

// countArgs reads packets of the first video stream; packet count equals
// frame count for video and avoids a full decode.
func countArgs(path string) []string {
	return []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-count_packets",
		"-show_entries", "stream=nb_read_packets",
		"-of", "csv=p=0",
		path,
	}
}

// Count returns the number of frames in the first video stream of path.
func (c *Counter) Count(ctx context.Context, path string) (uint64, error) {
	var cmd *exec.Cmd
	if c.commandContext != nil {
		cmd = c.commandContext(ctx, c.path(), countArgs(path)...)
	} else {
		cmd = exec.CommandContext(ctx, c.path(), countArgs(path)...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return 0, fmt.Errorf("ffprobe %q: %w: %s", path, err, msg)
		}
		return 0, fmt.Errorf("ffprobe %q: %w", path, err)
	}
	return ParseCount(stdout.String())
}

// ParseCount converts ffprobe's csv output into a frame count.
// Exported for testing without a real ffprobe binary.
func ParseCount(out string) (uint64, error) {
	s := strings.TrimSpace(out)
	// Some containers list the stream twice; the first line is authoritative.
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	s = strings.TrimSuffix(s, ",")
	if s == "" || s == "N/A" {
		return 0, ErrNoFrameCount
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse frame count %q: %w", s, err)
	}
	return n, nil
}
