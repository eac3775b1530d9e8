// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New returns a logger writing to w at level. FormatAuto uses the console
// writer when w is a terminal and JSON lines otherwise.
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parsing log level: %w", err)
	}

	var out io.Writer
	switch format {
	case FormatJSON:
		out = w
	case FormatConsole:
		out = consoleWriter(w, !IsTerminal(w))
	case FormatAuto, "":
		if IsTerminal(w) {
			out = consoleWriter(w, false)
		} else {
			out = w
		}
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", format)
	}

	return zerolog.New(out).Level(lvl).With().
		Timestamp().
		Str("app", "devsynth").
		Logger(), nil
}

func consoleWriter(w io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: noColor}
}

// IsTerminal reports whether w is an *os.File attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
