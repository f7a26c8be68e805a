// Package logger provides a thin constructor around zerolog.Logger so all
// entry points (api, seed, cleanup) emit the same JSON log shape.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New configures the global zerolog logger for the given component label
// ("api", "seed", "auth_cleanup") and returns it. Output is JSON on stdout
// with a timestamp on every entry.
func New(component string) zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL"))); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}
	zerolog.SetGlobalLevel(level)

	l := zerolog.New(os.Stdout).With().
		Str("component", component).
		Timestamp().
		Logger()

	log.Logger = l
	return l
}
