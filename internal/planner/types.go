package planner

// FilePlan holds the complete set of encoding decisions for one job. It is
// produced by BuildPlan and consumed by the ffmpeg package.
type FilePlan struct {
	InputPath  string
	OutputPath string

	// Video codec; empty lets ffmpeg choose from the output extension.
	Codec     string
	CodecOpts []string // codec-specific extras, e.g. -tag:v hvc1 -crf 24

	FilterOpts    []string // -pix_fmt / -vf pairs
	ContainerOpts []string // e.g. -movflags +faststart

	// Verbose raises ffmpeg's log level so diagnostics are richer.
	Verbose bool
}

// WithOutput returns a copy of the plan writing to path instead.
func (p *FilePlan) WithOutput(path string) *FilePlan {
	c := *p
	c.OutputPath = path
	return &c
}
