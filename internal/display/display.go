package display

import "github.com/backmassage/qonvert/internal/progress"

// Tracker receives one job's progress. Update is called from a single
// goroutine per job; Done is called once after the last Update.
type Tracker interface {
	Update(progress.Snapshot)
	Done(err error)
}

// Display hands out one Tracker per job. Implementations must be safe for
// concurrent Track calls.
type Display interface {
	Track(name string, totalFrames uint64) Tracker
	// Wait blocks until every tracker has finished rendering.
	Wait()
}

// Quiet is a Display that draws nothing, used when stdout is not a
// terminal.
type Quiet struct{}

func (Quiet) Track(string, uint64) Tracker { return nopTracker{} }
func (Quiet) Wait()                        {}

type nopTracker struct{}

func (nopTracker) Update(progress.Snapshot) {}
func (nopTracker) Done(error)               {}
