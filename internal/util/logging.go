package util

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogging configures the global zerolog logger. An empty level falls back
// to LOG_LEVEL and then info; a nil out writes to stdout.
func SetupLogging(level string, out io.Writer) {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339
	if out == nil {
		out = os.Stdout
	}
	log.Logger = zerolog.New(out).With().Timestamp().Str("service", "site-edge").Logger()
}
