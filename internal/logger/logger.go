package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger() zerolog.Logger {
	if os.Getenv("LOG_FORMAT") == "json" {
		return log.Logger
	}
	return log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
