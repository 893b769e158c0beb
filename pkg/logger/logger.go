package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Service is the value of the "service" field on every event.
const Service = "multiwallet-trader"

// New creates the process logger writing to stdout. pretty switches to the console
// writer, which drops the constant service field.
func New(level string, pretty bool) zerolog.Logger {
	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{
			Out:           os.Stdout,
			TimeFormat:    "15:04:05.000",
			FieldsExclude: []string{"service"},
		}
	}
	return build(level, w).With().Caller().Logger()
}

// NewWithWriter creates a JSON logger writing to w (useful for testing).
func NewWithWriter(level string, w io.Writer) zerolog.Logger {
	return build(level, w)
}

// Component tags every event of log with the component that emitted it.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// ParseLevel accepts zerolog level names and "warning". Empty and unknown values
// fall back to info.
func ParseLevel(level string) zerolog.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}
	parsed, err := zerolog.ParseLevel(name)
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}

func build(level string, w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("service", Service).
		Logger()
}
