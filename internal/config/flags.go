package config

// This file registers CLI flags on a pflag set owned by the cobra command.
// Flags are grouped into output, behavior, display, and tools.
// --no-color is applied after the file and environment layers so it always
// wins.

import (
	"github.com/spf13/pflag"
)

// negatedFlags holds boolean flags that override a mode rather than set a
// field directly.
type negatedFlags struct {
	noColor bool
}

// DefineFlags registers every qo flag on fs with defaults from
// [DefaultConfig].
func DefineFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	defineOutputFlags(fs, d)
	defineBehaviorFlags(fs, d)
	defineDisplayFlags(fs, d)
	defineToolFlags(fs, d)
}

// defineOutputFlags registers -o/--output-dir, -t/--output-type, -c/--codec.
func defineOutputFlags(fs *pflag.FlagSet, d Config) {
	fs.StringP("output-dir", "o", d.OutputDir, "Directory for the converted files")
	fs.StringP("output-type", "t", d.OutputType, "File extension of the converted files (e.g. mp4)")
	fs.StringP("codec", "c", d.Codec, "ffmpeg video codec (default: by output type, mp4 uses libx265)")
}

// defineBehaviorFlags registers -l/--limit and -d/--dry-run.
func defineBehaviorFlags(fs *pflag.FlagSet, d Config) {
	fs.IntP("limit", "l", d.Limit, "Maximum concurrent ffmpeg processes (0 = no limit)")
	fs.BoolP("dry-run", "d", d.DryRun, "Print the ffmpeg commands without running them")
}

// defineDisplayFlags registers -v/--verbose, --color, --no-color, --log.
// A bare --color means --color=always.
func defineDisplayFlags(fs *pflag.FlagSet, d Config) {
	fs.BoolP("verbose", "v", d.Verbose, "Show ffmpeg diagnostics for failed conversions")
	fs.String("color", string(d.ColorMode), "Colored output: auto, always or never")
	fs.Lookup("color").NoOptDefVal = string(ColorAlways)
	fs.Bool("no-color", false, "Disable colored output (same as --color=never)")
	fs.String("log", d.LogFile, "Append logs to file")
}

// defineToolFlags registers --check, --ffmpeg, --ffprobe, --config.
func defineToolFlags(fs *pflag.FlagSet, d Config) {
	fs.Bool("check", d.CheckOnly, "Check ffmpeg/ffprobe and the selected codec, then exit")
	fs.String("ffmpeg", d.FFmpegPath, "ffmpeg executable")
	fs.String("ffprobe", d.FFprobePath, "ffprobe executable")
	fs.String("config", "", "Config file (default: ./qo.yaml or ~/.config/qo/qo.yaml)")
}

// readNegatedFlags collects the override flags after parsing.
func readNegatedFlags(fs *pflag.FlagSet) negatedFlags {
	var n negatedFlags
	n.noColor, _ = fs.GetBool("no-color")
	return n
}

// applyNegatedFlags copies override flag values into cfg. --no-color wins
// over --color.
func applyNegatedFlags(cfg *Config, n negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	}
}
