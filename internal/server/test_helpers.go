package server

import (
	"io"

	"github.com/charmbracelet/log"
)

// quietLogger returns a logger that discards everything below errors.
func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}
