package utils

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates a console logger at the appropriate level. Debug
// mode enables debug-level output and caller annotation.
func NewLogger(debug bool) (*zerolog.Logger, error) {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	if debug {
		logger = logger.With().Caller().Logger()
	}

	return &logger, nil
}
