package check

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/qonvert/internal/config"
)

const encodersOutput = `Encoders:
 V..... = Video
 A..... = Audio
 ------
 V....D libx264              libx264 H.264 / AVC / MPEG-4 AVC / MPEG-4 part 10 (codec h264)
 V....D libx265              libx265 H.265 / HEVC (codec hevc)
 A....D aac                  AAC (Advanced Audio Coding)
`

func TestEncoderListed(t *testing.T) {
	tests := []struct {
		codec string
		want  bool
	}{
		{"libx265", true},
		{"libx264", true},
		{"aac", true},
		{"hevc_videotoolbox", false},
		{"libx26", false},
		{"=", false},
		{"Video", false},
	}
	for _, tt := range tests {
		t.Run(tt.codec, func(t *testing.T) {
			if got := EncoderListed(encodersOutput, tt.codec); got != tt.want {
				t.Errorf("EncoderListed(%q) = %v, want %v", tt.codec, got, tt.want)
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	got := firstLine("ffmpeg version 6.1 Copyright (c) 2000-2023\nbuilt with gcc\n")
	if got != "ffmpeg version 6.1 Copyright (c) 2000-2023" {
		t.Errorf("firstLine = %q", got)
	}
}

func TestCheckDeps_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-tool")

	cfg := config.DefaultConfig()
	cfg.FFmpegPath = missing
	if err := CheckDeps(&cfg); !errors.Is(err, ErrFfmpegNotFound) {
		t.Errorf("err = %v, want ErrFfmpegNotFound", err)
	}

	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available")
	}
	cfg = config.DefaultConfig()
	cfg.FFprobePath = missing
	if err := CheckDeps(&cfg); !errors.Is(err, ErrFfprobeNotFound) {
		t.Errorf("err = %v, want ErrFfprobeNotFound", err)
	}
}

type mockLogger struct{ lines []string }

func (m *mockLogger) add(level, f string, a ...interface{}) {
	m.lines = append(m.lines, level+" "+fmt.Sprintf(f, a...))
}
func (m *mockLogger) Info(f string, a ...interface{})    { m.add("INFO", f, a...) }
func (m *mockLogger) Success(f string, a ...interface{}) { m.add("SUCCESS", f, a...) }
func (m *mockLogger) Warn(f string, a ...interface{})    { m.add("WARN", f, a...) }
func (m *mockLogger) Error(f string, a ...interface{})   { m.add("ERROR", f, a...) }
func (m *mockLogger) Debug(bool, string, ...interface{}) {}

func TestRunCheck_MissingTools(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FFmpegPath = filepath.Join(t.TempDir(), "ffmpeg")
	cfg.FFprobePath = filepath.Join(t.TempDir(), "ffprobe")
	log := &mockLogger{}

	if RunCheck(&cfg, log) {
		t.Error("RunCheck should fail when tools are missing")
	}
	out := strings.Join(log.lines, "\n")
	if !strings.Contains(out, "ERROR ffmpeg not found") || !strings.Contains(out, "ERROR ffprobe not found") {
		t.Errorf("both tools should be reported:\n%s", out)
	}
}

func TestRunCheck_RealTools(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not available")
	}
	cfg := config.DefaultConfig()
	cfg.Codec = "definitely_not_an_encoder"
	log := &mockLogger{}
	if RunCheck(&cfg, log) {
		t.Errorf("unknown encoder should fail the check:\n%s", strings.Join(log.lines, "\n"))
	}
}
