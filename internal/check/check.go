// Package check provides system diagnostics (--check mode) and pre-run
// dependency validation (CheckDeps) for ffmpeg, ffprobe and the selected
// video encoder.
package check

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/backmassage/qonvert/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found")
	ErrFfprobeNotFound = errors.New("ffprobe not found")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// CheckDeps verifies that the configured ffmpeg and ffprobe executables can
// be found. The returned error wraps one of the sentinels.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FFmpegPath); err != nil {
		return fmt.Errorf("%w (%s): %v", ErrFfmpegNotFound, cfg.FFmpegPath, err)
	}
	if _, err := exec.LookPath(cfg.FFprobePath); err != nil {
		return fmt.Errorf("%w (%s): %v", ErrFfprobeNotFound, cfg.FFprobePath, err)
	}
	return nil
}

// RunCheck prints tool versions and whether the encoder qo would use for
// cfg.OutputType is available. It reports false if anything is missing.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkTool(log, "ffmpeg", cfg.FFmpegPath)
	if !checkTool(log, "ffprobe", cfg.FFprobePath) {
		ok = false
	}
	if !ok {
		return false
	}

	policy := cfg.Policy()
	codec := policy.Override
	if codec == "" && cfg.OutputType != "" {
		codec = policy.Describe(cfg.OutputType)
	}
	if codec == "" {
		log.Info("Codec: ffmpeg default for the output type")
		return true
	}
	return checkEncoder(log, cfg.FFmpegPath, codec, policy.ArgsFor(codec))
}

// checkTool verifies a tool is on PATH and logs its version string.
func checkTool(log Logger, name, path string) bool {
	if _, err := exec.LookPath(path); err != nil {
		log.Error("%s not found (%s)", name, path)
		return false
	}
	out, err := exec.Command(path, "-version").Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", name, err)
		return true
	}
	log.Success("%s: %s", name, firstLine(string(out)))
	return true
}

// checkEncoder looks codec up in `ffmpeg -encoders`.
func checkEncoder(log Logger, ffmpegPath, codec string, extra []string) bool {
	out, err := exec.Command(ffmpegPath, "-hide_banner", "-encoders").Output()
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return false
	}
	if !EncoderListed(string(out), codec) {
		log.Error("Encoder %s is not available in this ffmpeg build", codec)
		return false
	}
	if len(extra) > 0 {
		log.Success("Encoder %s available (extra args: %s)", codec, strings.Join(extra, " "))
	} else {
		log.Success("Encoder %s available", codec)
	}
	return true
}

// EncoderListed reports whether codec appears as an encoder name in the
// output of `ffmpeg -encoders`. Lines look like
//
//	V....D libx265              libx265 H.265 / HEVC (codec hevc)
func EncoderListed(encoders, codec string) bool {
	for _, line := range strings.Split(encoders, "\n") {
		fields := strings.Fields(line)
		// The legend lines ("V..... = Video") share the flag column.
		if len(fields) >= 2 && len(fields[0]) == 6 && fields[1] != "=" && fields[1] == codec {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
