package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// FormatConsole writes human readable lines
	FormatConsole = "console"

	// FormatJSON writes one JSON object per line
	FormatJSON = "json"
)

// Options controls logger construction
type Options struct {
	// Level is a zerolog level name, defaults to info
	Level string

	// Format is FormatConsole or FormatJSON, defaults to console
	Format string

	// Name is attached to every entry as the "logger" field
	Name string

	// Out defaults to stderr
	Out io.Writer
}

// New builds a zerolog logger from options. An unknown level falls back to info.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if strings.EqualFold(opts.Format, FormatJSON) {
		zerolog.TimeFieldFormat = time.RFC3339Nano
	} else {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if opts.Name != "" {
		ctx = ctx.Str("logger", opts.Name)
	}

	return ctx.Logger()
}
