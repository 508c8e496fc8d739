// Package logger sets up the global zerolog logger. Stdout carries the game
// protocol, so logs go to the writer given to Init, normally stderr.
package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const milliTimeFormat = "15:04:05.000"

// Init configures the global logger. Unknown levels fall back to info.
func Init(w io.Writer, logLevel string) {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil || logLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: milliTimeFormat,
		NoColor:    true,
	}).With().Timestamp().Logger()
}
