package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var log = newLogger(zerolog.InfoLevel)

func newLogger(lvl zerolog.Level) zerolog.Logger {
	return zerolog.New(os.Stdout).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "presto-auth").
		Logger()
}

// Init configures the global service logger. Level is one of
// zerolog's named levels ("debug", "info", ...); unknown values
// fall back to info. Callers before Init get an info-level logger.
func Init(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log = newLogger(lvl)
}

func event(e *zerolog.Event, msg string, fields map[string]any) {
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	e.Msg(msg)
}

func Debug(msg string, fields map[string]any) {
	event(log.Debug(), msg, fields)
}

func Info(msg string, fields map[string]any) {
	event(log.Info(), msg, fields)
}

func Warn(msg string, fields map[string]any) {
	event(log.Warn(), msg, fields)
}

func Error(msg string, fields map[string]any) {
	event(log.Error(), msg, fields)
}

// Fatal logs the message and exits the process.
func Fatal(msg string, fields map[string]any) {
	event(log.Fatal(), msg, fields)
}
