// Package config holds runtime configuration: defaults, CLI flags, the
// optional qo.yaml file with QO_* environment overrides, and validation.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/backmassage/qonvert/internal/planner"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is built by [Load] and passed (by
// pointer) to the packages that need it.
type Config struct {
	// Inputs are the positional arguments: one directory or many files.
	Inputs []string `validate:"dive,required"`

	// OutputDir defaults to ".".
	OutputDir string `validate:"required"`
	// OutputType is the destination extension without a dot, e.g. "mp4".
	OutputType string `validate:"omitempty,alphanum,max=8"`

	// Codec overrides the per-extension default for every job.
	Codec string `validate:"omitempty,printascii"`
	// Codecs extends the built-in codec tables from the config file.
	Codecs CodecTables

	// Limit caps concurrent conversions; 0 runs every job at once.
	Limit int `validate:"gte=0"`

	DryRun  bool
	Verbose bool

	ColorMode ColorMode `validate:"oneof=auto always never"`
	LogFile   string
	CheckOnly bool

	FFmpegPath  string `validate:"required"`
	FFprobePath string `validate:"required"`

	// ConfigFile is the config file that was read, if any.
	ConfigFile string
}

// CodecTables are the `codecs` section of qo.yaml:
//
//	codecs:
//	  defaults:
//	    webm: libvpx-vp9
//	  args:
//	    libvpx-vp9: ["-crf", "32", "-b:v", "0"]
//	  files:
//	    "screen-*": hevc_videotoolbox
type CodecTables struct {
	Defaults map[string]string   // output extension → codec
	Args     map[string][]string // codec → extra arguments; [] removes a built-in entry
	Files    map[string]string   // input base-name glob → codec, beats --codec
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() Config {
	return Config{
		OutputDir:   ".",
		Limit:       0,
		ColorMode:   ColorAuto,
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
	}
}

var validate = validator.New()

// Validate normalizes OutputType and checks field constraints. Outside of
// CheckOnly mode it also requires inputs and an output type.
func (c *Config) Validate() error {
	c.OutputType = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c.OutputType), "."))

	if err := validate.Struct(c); err != nil {
		return describeValidation(err)
	}
	if c.CheckOnly {
		return nil
	}
	if len(c.Inputs) == 0 {
		return errors.New("need at least one input file or a single input directory")
	}
	if c.OutputType == "" {
		return errors.New("output type is required (e.g. -t mp4)")
	}
	return nil
}

// Policy builds the codec policy: built-in tables, then the config file's
// tables, then the --codec override.
func (c *Config) Policy() planner.Policy {
	return planner.DefaultPolicy().Merge(planner.Policy{
		Override:  c.Codec,
		Defaults:  c.Codecs.Defaults,
		ExtraArgs: c.Codecs.Args,
	})
}

// flagNames maps struct fields to the flag a user would fix.
var flagNames = map[string]string{
	"Inputs":      "input",
	"OutputDir":   "--output-dir",
	"OutputType":  "--output-type",
	"Codec":       "--codec",
	"Limit":       "--limit",
	"ColorMode":   "--color",
	"FFmpegPath":  "--ffmpeg",
	"FFprobePath": "--ffprobe",
}

// describeValidation turns the first validator failure into a user-facing
// error.
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	name := flagNames[fe.StructField()]
	if name == "" {
		name = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s must not be empty", name)
	case "oneof":
		return fmt.Errorf("invalid %s %q (use %s)", name, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Errorf("%s must be >= %s (got %v)", name, fe.Param(), fe.Value())
	default:
		return fmt.Errorf("invalid %s %q (%s)", name, fe.Value(), fe.Tag())
	}
}
