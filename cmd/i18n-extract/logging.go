package main

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	i18n "github.com/goliatone/go-i18n-icu"
	"github.com/goliatone/go-i18n-icu/source/goast"
	"github.com/goliatone/go-i18n-icu/source/markup"
)

// setupLogging configures the global logger to write to out and rebinds the
// package loggers to it.
func setupLogging(level string, out *os.File) {
	switch level {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Logger = zerolog.New(consoleWriter(out)).With().Timestamp().Logger()

	i18n.UseGlobalLogger()
	goast.UseGlobalLogger()
	markup.UseGlobalLogger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd())
}

// consoleWriter disables colors unless f is a terminal.
func consoleWriter(f *os.File) io.Writer {
	return zerolog.ConsoleWriter{Out: f, NoColor: !isTerminal(f), TimeFormat: time.DateTime}
}
