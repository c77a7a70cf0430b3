package planner

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// Policy selects a codec per output file and maps codecs to extra args.
type Policy struct {
	// Override, when set, is used for every job.
	Override string
	// Defaults maps a lowercase output extension (no dot) to a codec.
	Defaults map[string]string
	// ExtraArgs maps a codec to arguments appended after -c:v <codec>.
	ExtraArgs map[string][]string
}

// DefaultPolicy returns the built-in codec tables.
func DefaultPolicy() Policy {
	return Policy{
		Defaults: map[string]string{
			"mp4": "libx265",
		},
		ExtraArgs: map[string][]string{
			// hvc1 enables HEVC thumbnail previews on Apple devices. CRF 24
			// instead of x265's default 28 keeps quality close to the source.
			"libx265": {"-tag:v", "hvc1", "-crf", "24"},
			// Quality 65 is the size/quality knee for VideoToolbox.
			"hevc_videotoolbox": {"-tag:v", "hvc1", "-q:v", "65"},
		},
	}
}

// Merge returns a policy with other's entries layered over p. An empty
// ExtraArgs slice in other removes the codec's extras.
func (p Policy) Merge(other Policy) Policy {
	out := Policy{
		Override:  p.Override,
		Defaults:  maps.Clone(p.Defaults),
		ExtraArgs: maps.Clone(p.ExtraArgs),
	}
	if out.Defaults == nil {
		out.Defaults = make(map[string]string)
	}
	if out.ExtraArgs == nil {
		out.ExtraArgs = make(map[string][]string)
	}
	if other.Override != "" {
		out.Override = other.Override
	}
	for ext, codec := range other.Defaults {
		out.Defaults[strings.ToLower(strings.TrimPrefix(ext, "."))] = codec
	}
	for codec, args := range other.ExtraArgs {
		if len(args) == 0 {
			delete(out.ExtraArgs, codec)
			continue
		}
		out.ExtraArgs[codec] = slices.Clone(args)
	}
	return out
}

// CodecFor returns the codec for a destination path, or "" to let ffmpeg
// choose.
func (p Policy) CodecFor(outputPath string) string {
	if p.Override != "" {
		return p.Override
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(outputPath), "."))
	return p.Defaults[ext]
}

// ArgsFor returns a copy of the extra arguments registered for codec.
func (p Policy) ArgsFor(codec string) []string {
	return slices.Clone(p.ExtraArgs[codec])
}

// Describe returns the codec label shown in the run header: the override,
// the default for ext, or "".
func (p Policy) Describe(ext string) string {
	return p.CodecFor("x." + ext)
}
