package rwmclog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a human-readable console logger writing to w, tagged with
// the "rwmc" component field every event carries.
func New(w io.Writer) zerolog.Logger {
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}

	return zerolog.New(console).With().Timestamp().Str("component", "rwmc").Logger()
}

// Default returns New(os.Stderr).
func Default() zerolog.Logger {
	return New(os.Stderr)
}

// Nop returns a logger that discards every event, the default for an RC
// constructed without WithLogger.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
