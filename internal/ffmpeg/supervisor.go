package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"golang.org/x/sync/errgroup"

	"github.com/backmassage/qonvert/internal/planner"
	"github.com/backmassage/qonvert/internal/progress"
)

// Supervisor runs one ffmpeg process per call to Run. A Supervisor holds no
// per-job state and may be shared by concurrent jobs.
type Supervisor struct {
	FFmpegPath string

	// commandContext builds the process; replaced in tests.
	commandContext func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewSupervisor returns a Supervisor invoking the given ffmpeg binary
// ("ffmpeg" when empty, resolved through PATH).
func NewSupervisor(ffmpegPath string) *Supervisor {
	return &Supervisor{FFmpegPath: ffmpegPath}
}

func (s *Supervisor) path() string {
	if s.FFmpegPath == "" {
		return "ffmpeg"
	}
	return s.FFmpegPath
}

func (s *Supervisor) command(ctx context.Context, args []string) *exec.Cmd {
	if s.commandContext != nil {
		return s.commandContext(ctx, s.path(), args...)
	}
	return exec.CommandContext(ctx, s.path(), args...)
}

// CommandLine renders the command Run would execute for plan.
func (s *Supervisor) CommandLine(plan *planner.FilePlan) string {
	return FormatCommand(s.path(), Build(plan))
}

// Run executes ffmpeg for plan and blocks until it has exited and both of
// its output streams are fully drained. observe is called once per
// progress snapshot, in order, from a single goroutine.
//
// Run returns nil on a zero exit status. Otherwise the error is one of:
//   - *SpawnError when the process could not be started;
//   - an error wrapping *progress.ProtocolError when the progress stream is
//     malformed (the process is killed without waiting for it to finish);
//   - an error wrapping ctx.Err() when ctx was cancelled;
//   - an error wrapping the read error when stdout or stderr could not be
//     drained (the process is killed);
//   - *ProcessError carrying the exit code and the captured stderr.
func (s *Supervisor) Run(ctx context.Context, plan *planner.FilePlan, observe func(progress.Snapshot)) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	cmd := s.command(runCtx, Build(plan))
	cmd.Stdin = nil // reads from the null device

	outR, outW, err := os.Pipe()
	if err != nil {
		return &SpawnError{Path: s.path(), Err: err}
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		outR.Close()
		outW.Close()
		return &SpawnError{Path: s.path(), Err: err}
	}
	cmd.Stdout = outW
	cmd.Stderr = errW

	startErr := cmd.Start()
	// The child owns its copies of the write ends; ours must be closed or
	// the readers never see EOF.
	outW.Close()
	errW.Close()
	if startErr != nil {
		outR.Close()
		errR.Close()
		return &SpawnError{Path: s.path(), Err: startErr}
	}

	var (
		diag    bytes.Buffer
		waitErr error
		g       errgroup.Group
	)
	g.Go(func() error {
		defer outR.Close()
		if err := progress.Parse(outR, observe); err != nil {
			cancel()
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer errR.Close()
		_, err := io.Copy(&diag, errR)
		return err
	})
	g.Go(func() error {
		waitErr = cmd.Wait()
		return nil
	})
	drainErr := g.Wait()

	var protoErr *progress.ProtocolError
	if errors.As(drainErr, &protoErr) {
		return fmt.Errorf("ffmpeg progress stream: %w", drainErr)
	}
	if ctx.Err() != nil {
		return fmt.Errorf("ffmpeg interrupted: %w", ctx.Err())
	}
	// A failed read kills the process, so its exit status says nothing.
	if drainErr != nil {
		return fmt.Errorf("read ffmpeg output: %w", drainErr)
	}
	if waitErr != nil {
		return newProcessError(waitErr, diag.String())
	}
	return nil
}

func newProcessError(err error, stderr string) *ProcessError {
	pe := &ProcessError{
		ExitCode: -1,
		Stderr:   trimTrailingNewline(stderr),
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		pe.ExitCode = exitErr.ExitCode()
	}
	return pe
}
