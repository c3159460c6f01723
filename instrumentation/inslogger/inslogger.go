// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

// Package inslogger carries a zerolog logger through contexts and keeps log
// records correlated by trace ID.
package inslogger

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/lucidledger/flow-core/instrumentation/trace"
)

const TimestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

type loggerKey struct{}

// NewLogger builds the default process logger writing to the given output.
func NewLogger(out io.Writer, level string) (zerolog.Logger, error) {
	if out == nil {
		out = os.Stderr
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, errors.Wrapf(err, "invalid log level %q", level)
	}
	zerolog.TimeFieldFormat = TimestampFormat
	logger := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return logger, nil
}

// FromContext returns the logger bound to the context, or a disabled logger
// when none was set.
func FromContext(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
		return l
	}
	return zerolog.Nop()
}

func SetLogger(ctx context.Context, l zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// WithTraceField stamps both the context and its logger with a trace id.
func WithTraceField(ctx context.Context, traceID string) (context.Context, zerolog.Logger) {
	ctx, err := trace.SetID(ctx, traceID)
	if err != nil {
		l := FromContext(ctx)
		l.Warn().Err(err).Msg("failed to set trace id")
	}
	l := FromContext(ctx).With().Str("traceID", traceID).Logger()
	return SetLogger(ctx, l), l
}

// TraceID is a convenience alias for trace.ID.
func TraceID(ctx context.Context) string {
	return trace.ID(ctx)
}
