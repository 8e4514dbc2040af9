package suika

import (
	"io"

	"github.com/charmbracelet/log"
)

// logger receives rule events. The TUI owns the terminal, so the default
// discards everything until SetLogger points it somewhere.
var logger *log.Logger

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	logger = l
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Prefix: "suika"})
}

func currentLogger() *log.Logger {
	if logger == nil {
		return discardLogger()
	}
	return logger
}
