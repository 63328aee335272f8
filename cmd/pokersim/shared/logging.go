package shared

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rs/zerolog"
)

// SetupLogger configures zerolog with pretty console output
func SetupLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// SetupStructuredLogger configures zerolog for structured (JSON) output
func SetupStructuredLogger(debug bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(os.Stderr).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// SetupEngineLogger returns the logger handed to the engine and simulator.
// Hand level debug output is only emitted with debug set.
func SetupEngineLogger(debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{Level: level, ReportTimestamp: debug})
}
