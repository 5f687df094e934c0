package log

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// GooseLogger routes migration output into the request-scoped logger under component=migrations.
type GooseLogger struct {
	logger zerolog.Logger
}

// Fatalf logs at error level and panics instead of exiting, so deferred
// shutdown hooks still flush the log writer.
func (g *GooseLogger) Fatalf(format string, v ...interface{}) {
	msg := trimLine(fmt.Sprintf(format, v...))
	g.logger.Error().Msg(msg)
	panic(msg)
}

func (g *GooseLogger) Printf(format string, v ...interface{}) {
	g.logger.Info().Msg(trimLine(fmt.Sprintf(format, v...)))
}

// goose terminates most messages with a newline
func trimLine(s string) string {
	return strings.TrimRight(s, "\r\n")
}

func NewGooseLoggerFromCtx(ctx context.Context) *GooseLogger {
	return &GooseLogger{
		logger: FromCtx(ctx).With().Str("component", "migrations").Logger(),
	}
}
