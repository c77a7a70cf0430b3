package pipeline

import "time"

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	Total            int
	Converted        int
	Failed           int
	TotalInputBytes  int64
	TotalOutputBytes int64
	Elapsed          time.Duration
}

// Add folds one job result into the totals. Byte totals only count
// successful conversions so the savings figure compares like with like.
func (s *RunStats) Add(r Result) {
	s.Total++
	if !r.OK() {
		s.Failed++
		return
	}
	s.Converted++
	s.TotalInputBytes += r.InputSize
	s.TotalOutputBytes += r.OutputSize
}

// SpaceSaved returns the aggregate byte difference between inputs and outputs.
// Positive means outputs are smaller; negative means they grew.
func (s *RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}
