package probe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    uint64
		wantErr error
	}{
		{"plain", "240\n", 240, nil},
		{"surrounding whitespace", "  1200 \r\n", 1200, nil},
		{"trailing comma", "96,\n", 96, nil},
		{"duplicate stream line", "48\n48\n", 48, nil},
		{"empty", "", 0, ErrNoFrameCount},
		{"whitespace only", " \n", 0, ErrNoFrameCount},
		{"not available", "N/A\n", 0, ErrNoFrameCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCount(tt.out)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseCount_NonNumeric(t *testing.T) {
	for _, out := range []string{"abc", "-5", "12.5"} {
		if _, err := ParseCount(out); err == nil {
			t.Errorf("ParseCount(%q): expected error", out)
		}
	}
}

func TestCountArgs(t *testing.T) {
	args := countArgs("/media/a b.mkv")
	joined := strings.Join(args, " ")
	for _, want := range []string{"-count_packets", "-select_streams v:0", "stream=nb_read_packets", "csv=p=0"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args %v missing %q", args, want)
		}
	}
	if args[len(args)-1] != "/media/a b.mkv" {
		t.Errorf("path must be last, got %q", args[len(args)-1])
	}
}

// helperCounter re-executes the test binary as a stand-in for ffprobe.
func helperCounter(stdout, stderr string, code int) *Counter {
	return &Counter{
		commandContext: func(ctx context.Context, name string, args ...string) *exec.Cmd {
			cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
			cmd := exec.CommandContext(ctx, os.Args[0], cs...)
			cmd.Env = append(os.Environ(),
				"GO_WANT_HELPER_PROCESS=1",
				"QO_HELPER_STDOUT="+stdout,
				"QO_HELPER_STDERR="+stderr,
				fmt.Sprintf("QO_HELPER_EXIT=%d", code),
			)
			return cmd
		},
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	fmt.Fprint(os.Stdout, os.Getenv("QO_HELPER_STDOUT"))
	fmt.Fprint(os.Stderr, os.Getenv("QO_HELPER_STDERR"))
	code := 0
	fmt.Sscanf(os.Getenv("QO_HELPER_EXIT"), "%d", &code)
	os.Exit(code)
}

func TestCount_Helper(t *testing.T) {
	n, err := helperCounter("360\n", "", 0).Count(context.Background(), "clip.mkv")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 360 {
		t.Errorf("Count = %d, want 360", n)
	}
}

func TestCount_ToolFailure(t *testing.T) {
	_, err := helperCounter("", "clip.mkv: Invalid data found when processing input", 1).
		Count(context.Background(), "clip.mkv")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Errorf("error %q does not carry ffprobe stderr", err)
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Errorf("error does not wrap *exec.ExitError: %v", err)
	}
}

func TestCount_EmptyOutput(t *testing.T) {
	_, err := helperCounter("", "", 0).Count(context.Background(), "audio.flac")
	if !errors.Is(err, ErrNoFrameCount) {
		t.Fatalf("err = %v, want ErrNoFrameCount", err)
	}
}

func TestCount_RealFFprobe(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not available")
	}

	path := filepath.Join(t.TempDir(), "gen.mp4")
	gen := exec.Command("ffmpeg", "-hide_banner", "-loglevel", "error",
		"-f", "lavfi", "-i", "testsrc=duration=1:size=160x120:rate=24",
		"-c:v", "libx264", "-pix_fmt", "yuv420p", "-y", path)
	if out, err := gen.CombinedOutput(); err != nil {
		t.Skipf("cannot generate sample (%v): %s", err, out)
	}

	n, err := NewCounter("").Count(context.Background(), path)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 24 {
		t.Errorf("Count = %d, want 24", n)
	}
}
