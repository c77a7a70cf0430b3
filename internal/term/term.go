// Package term holds the process-wide color palette and terminal detection.
//
// The palette lives in package variables so logging and display can splice
// colors into format strings directly. They are empty strings while colors
// are off, so output written with them stays plain.
package term

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/backmassage/qonvert/internal/config"
)

// Palette. Empty when colors are disabled.
var (
	Red    = ""
	Green  = ""
	Yellow = ""
	Blue   = ""
	Cyan   = ""
	NC     = "" // reset
)

const (
	ansiRed    = "\033[1;91m"
	ansiGreen  = "\033[1;92m"
	ansiYellow = "\033[1;93m"
	ansiBlue   = "\033[1;94m"
	ansiCyan   = "\033[1;96m"
	ansiReset  = "\033[0m"
)

// Configure switches the palette on or off for mode. Called once at startup
// by [logging.NewLogger].
func Configure(mode config.ColorMode) {
	if !wantColor(mode, os.Stdout, os.Getenv) {
		Red, Green, Yellow, Blue, Cyan, NC = "", "", "", "", "", ""
		return
	}
	Red, Green, Yellow, Blue, Cyan, NC = ansiRed, ansiGreen, ansiYellow, ansiBlue, ansiCyan, ansiReset
}

// Enabled reports whether the palette is on.
func Enabled() bool { return NC != "" }

// Paint wraps s in color and a reset. It returns s unchanged while colors
// are off.
func Paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + NC
}

// wantColor decides auto mode from the TTY state of out, NO_COLOR
// (https://no-color.org) and TERM=dumb.
func wantColor(mode config.ColorMode, out *os.File, getenv func(string) string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if getenv("NO_COLOR") != "" || strings.EqualFold(getenv("TERM"), "dumb") {
		return false
	}
	return IsTerminal(out)
}

// IsTerminal reports whether f is a terminal, counting Cygwin/MSYS ptys.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Stdout returns standard output wrapped so ANSI escapes render on legacy
// Windows consoles.
func Stdout() io.Writer { return colorable.NewColorableStdout() }

// Stderr is the standard-error counterpart of [Stdout].
func Stderr() io.Writer { return colorable.NewColorableStderr() }
