package commands

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/fivetwenty-io/sellsy-client/pkg/sellsy"
)

var _ sellsy.Logger = (*zerologLogger)(nil)

// zerologLogger adapts a zerolog.Logger to sellsy.Logger.
type zerologLogger struct {
	logger zerolog.Logger
}

// newLogger writes human readable logs to w. Debug entries are kept only
// when verbose is set.
func newLogger(w io.Writer, verbose, noColor bool) *zerologLogger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: noColor}

	return &zerologLogger{
		logger: zerolog.New(output).Level(level).With().Str("service", "sellsy").Timestamp().Logger(),
	}
}

func (l *zerologLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error().Fields(fields).Msg(msg)
}
