package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New возвращает логгер для этапа bootstrap, до загрузки конфигурации.
func New() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	return zerolog.New(output).
		With().
		Timestamp().
		Caller().
		Logger().
		Level(zerolog.InfoLevel)
}

func NewWithConfig(level string, pretty, noColor bool) zerolog.Logger {
	var log zerolog.Logger

	if pretty {
		output := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
			NoColor:    noColor,
		}
		log = zerolog.New(output).With().Timestamp().Logger()
	} else {
		log = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	switch level {
	case "debug":
		return log.Level(zerolog.DebugLevel)
	case "warn":
		return log.Level(zerolog.WarnLevel)
	case "error":
		return log.Level(zerolog.ErrorLevel)
	default:
		return log.Level(zerolog.InfoLevel)
	}
}
