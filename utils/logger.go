package utils

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger configures the global zerolog logger, human readable in debug mode
func SetupLogger(debug bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// RequestLogger replaces gin's default logger
func RequestLogger(c *gin.Context) {
	start := time.Now()
	path := c.Request.URL.Path
	query := c.Request.URL.RawQuery

	c.Next()

	event := log.Info()
	if len(c.Errors) > 0 {
		event = log.Error().Err(c.Errors.Last())
	} else if c.Writer.Status() >= 500 {
		event = log.Error()
	}
	event.
		Int("status", c.Writer.Status()).
		Str("method", c.Request.Method).
		Str("path", path).
		Str("query", query).
		Str("ip", c.ClientIP()).
		Dur("latency", time.Since(start)).
		Msg("request")
}
