// Package logging sets up the one zerolog.Logger that cmd/pgexfmt and its
// internal collaborators carry by value. The core pgex package never logs;
// it is a library and returns errors for the caller to decide what to do
// with.
package logging

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvLevel  = "PGEXFMT_LOG_LEVEL"
	EnvFormat = "PGEXFMT_LOG_FORMAT" // "json" (default) or "console"
)

// New builds a logger from PGEXFMT_LOG_LEVEL / PGEXFMT_LOG_FORMAT.
func New() zerolog.Logger {
	level, err := zerolog.ParseLevel(os.Getenv(EnvLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if os.Getenv(EnvFormat) == "console" {
		out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(out).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// GetEnvInt reads an int environment variable, falling back to def.
func GetEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
