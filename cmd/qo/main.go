// Command qo converts media files concurrently with ffmpeg, showing one
// progress bar per file.
//
//	qo -t mp4 clip.mov loop.gif
//	qo -t mp4 -o converted/ -l 4 ~/Movies/raw
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/backmassage/qonvert/internal/check"
	"github.com/backmassage/qonvert/internal/config"
	"github.com/backmassage/qonvert/internal/display"
	"github.com/backmassage/qonvert/internal/ffmpeg"
	"github.com/backmassage/qonvert/internal/logging"
	"github.com/backmassage/qonvert/internal/pipeline"
	"github.com/backmassage/qonvert/internal/probe"
	"github.com/backmassage/qonvert/internal/term"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "0.3.0"
	commit  = "unknown"
)

// exitInterrupted is returned when SIGINT/SIGTERM stopped the batch.
const exitInterrupted = 130

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	exitCode := 0
	cmd := newRootCommand(&exitCode)
	cmd.SetArgs(args)

	// Phase 1: Bootstrap. The logger doesn't exist until flags and config
	// are resolved, so errors up to that point go straight to stderr.
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "qo: %v\n", err)
		return 1
	}
	return exitCode
}

func newRootCommand(exitCode *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qo [flags] <dir> | <file>...",
		Short: "A tiny CLI for batch video conversion",
		Long: `qo converts one directory of media files, or any number of individual
files, with ffmpeg. Every file is converted concurrently with its own
progress bar. A failed file never stops the others.

Settings can also come from qo.yaml (in . or ~/.config/qo) and from QO_*
environment variables, e.g. QO_LIMIT=4 or QO_FFMPEG=/opt/ffmpeg/bin/ffmpeg.`,
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), args)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			*exitCode = execute(cmd.Context(), &cfg)
			return nil
		},
	}
	config.DefineFlags(cmd.Flags())
	return cmd
}

// execute runs the check or the batch once configuration is valid and
// returns the process exit status. Failed jobs do not change it; only
// setup failures before the first job starts do.
func execute(ctx context.Context, cfg *config.Config) int {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "qo: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available. All output goes through log from here on.
	if cfg.ConfigFile != "" {
		log.Debug(cfg.Verbose, "Config file: %s", cfg.ConfigFile)
	}

	if cfg.CheckOnly {
		if !check.RunCheck(cfg, log) {
			return 1
		}
		return 0
	}

	inputs, err := pipeline.ResolveInputs(cfg.Inputs, log)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	jobs, err := pipeline.ResolveJobs(inputs, cfg.OutputDir, cfg.OutputType)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	if err := pipeline.AssignCodecs(jobs, cfg.Codecs.Files); err != nil {
		log.Error("%v", err)
		return 1
	}

	// Fail fast if ffmpeg/ffprobe are unavailable; a dry run needs neither.
	if !cfg.DryRun {
		if err := check.CheckDeps(cfg); err != nil {
			log.Error("%v", err)
			return 1
		}
	}

	policy := cfg.Policy()
	display.PrintHeader(term.Stdout(), len(jobs), policy.Describe(cfg.OutputType))
	if cfg.DryRun {
		log.Warn("DRY RUN, no files will be written")
	}

	// Phase 3: Signal handling. Cancelling the context kills every running
	// ffmpeg process; their jobs fail as interrupted and temp files are removed.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	interrupted := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, stopping running conversions…")
			close(interrupted)
			cancel()
		case <-ctx.Done():
		}
	}()

	// Phase 4: Run every job, then report. Bars are skipped when they would
	// interleave with other output.
	var disp display.Display = display.Quiet{}
	if term.IsTerminal(os.Stdout) && !cfg.Verbose && !cfg.DryRun {
		disp = display.NewBars(ctx, term.Stdout())
	}
	runner := &pipeline.Runner{
		Counter:    probe.NewCounter(cfg.FFprobePath),
		Supervisor: ffmpeg.NewSupervisor(cfg.FFmpegPath),
		Policy:     policy,
		Display:    disp,
		Log:        log,
		Limit:      cfg.Limit,
		DryRun:     cfg.DryRun,
		Verbose:    cfg.Verbose,
	}

	start := time.Now()
	results := runner.Run(ctx, jobs)
	runner.Report(results, time.Since(start))

	select {
	case <-interrupted:
		return exitInterrupted
	default:
		return 0
	}
}
