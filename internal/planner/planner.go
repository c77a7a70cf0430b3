package planner

// Fixed output arguments applied to every job.
var (
	// yuv420p keeps GIF palettes and odd source formats playable everywhere.
	pixFmtOpts = []string{"-pix_fmt", "yuv420p"}
	// Most encoders reject odd dimensions; crop down to the nearest even size.
	cropEvenOpts = []string{"-vf", "crop=trunc(iw/2)*2:trunc(ih/2)*2"}
	// Move the moov atom up front so playback can start before download ends.
	faststartOpts = []string{"-movflags", "+faststart"}
)

// BuildPlan resolves the codec for one input/output pair and collects the
// argument groups the ffmpeg builder needs.
func BuildPlan(policy Policy, inputPath, outputPath string, verbose bool) *FilePlan {
	plan := &FilePlan{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Verbose:    verbose,
	}

	plan.Codec = policy.CodecFor(outputPath)
	if plan.Codec != "" {
		plan.CodecOpts = policy.ArgsFor(plan.Codec)
	}

	plan.FilterOpts = append(append([]string{}, pixFmtOpts...), cropEvenOpts...)
	plan.ContainerOpts = append([]string{}, faststartOpts...)
	return plan
}
