package shared

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// LogFlags are the logging options shared by every command.
type LogFlags struct {
	Debug     bool   `help:"Enable debug logging"`
	LogFormat string `enum:"text,json" default:"text" help:"Log output format (text or json)"`
}

// SetupLogger builds a logger writing to stderr. level comes from settings
// and is overridden by --debug.
func SetupLogger(flags LogFlags, level string) (*log.Logger, error) {
	return NewLogger(os.Stderr, flags, level)
}

// NewLogger builds a logger writing to w.
func NewLogger(w io.Writer, flags LogFlags, level string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}
	if flags.Debug {
		lvl = log.DebugLevel
	}

	formatter := log.TextFormatter
	if flags.LogFormat == "json" {
		formatter = log.JSONFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}), nil
}
