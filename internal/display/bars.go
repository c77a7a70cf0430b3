package display

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/backmassage/qonvert/internal/progress"
)

// Bars draws one mpb progress bar per job.
type Bars struct {
	p *mpb.Progress
}

// NewBars creates a bar container writing to w. Cancelling ctx stops
// rendering.
func NewBars(ctx context.Context, w io.Writer) *Bars {
	return &Bars{
		p: mpb.NewWithContext(ctx,
			mpb.WithOutput(w),
			mpb.WithWidth(40),
			mpb.WithRefreshRate(150*time.Millisecond),
		),
	}
}

// Track adds a bar labelled name. A zero totalFrames gives a bar of unknown
// length that is sized when the job finishes.
func (b *Bars) Track(name string, totalFrames uint64) Tracker {
	bar := b.p.AddBar(0,
		mpb.PrependDecorators(
			decor.Name(name, decor.WCSyncSpaceR),
			decor.Any(func(s decor.Statistics) string {
				return fmt.Sprintf("%d/%d", s.Current, s.Total)
			}, decor.WCSyncSpace),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.OnAbort(
				decor.OnComplete(
					decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncWidth), "done",
				),
				"failed",
			),
		),
	)
	// Counted packets can differ slightly from encoded frames, so the bar
	// only completes when the job says so.
	if totalFrames > 0 {
		bar.SetTotal(int64(totalFrames), false)
	}
	return &barTracker{bar: bar, last: time.Now()}
}

// Wait blocks until all bars are complete or aborted and flushes output.
func (b *Bars) Wait() { b.p.Wait() }

type barTracker struct {
	bar   *mpb.Bar
	frame uint64
	last  time.Time
}

func (t *barTracker) Update(s progress.Snapshot) {
	now := time.Now()
	if s.Frame > t.frame {
		t.bar.EwmaIncrBy(int(s.Frame-t.frame), now.Sub(t.last))
		t.frame = s.Frame
	}
	t.last = now
}

func (t *barTracker) Done(err error) {
	if err != nil {
		t.bar.Abort(false)
		return
	}
	// Total becomes the current frame, which completes the bar.
	t.bar.SetTotal(-1, true)
}
