package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "fleet-service"

// New returns the process logger. Development gets a human-readable console
// writer, every other environment logs JSON lines to stdout.
func New(environment string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	if environment != "production" {
		level = zerolog.DebugLevel
	}

	if environment == "development" {
		out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
		return zerolog.New(out).Level(level).With().Timestamp().Str("service", serviceName).Logger()
	}

	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", serviceName).Logger()
}
