// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/z5labs/tour/internal/maskslog"
	"github.com/z5labs/tour/otelslog"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// UnknownLogFormatError
type UnknownLogFormatError struct {
	Format string
}

// Error implements the [error] interface.
func (e UnknownLogFormatError) Error() string {
	return fmt.Sprintf("unknown log format: %q", e.Format)
}

func newLogHandler(w io.Writer, cfg Config) (slog.Handler, error) {
	opts := &slog.HandlerOptions{
		Level: cfg.Logging.Level,
	}

	var h slog.Handler
	switch cfg.Logging.Format {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, UnknownLogFormatError{Format: cfg.Logging.Format}
	}
	// masking goes last so span events only ever see masked values
	h = otelslog.NewHandler(h)
	return maskslog.NewHandler(h, maskslog.Attr("url", maskslog.URLPassword)), nil
}

type tracing struct {
	tp       trace.TracerProvider
	shutdown func(context.Context) error
}

// newTracing exports spans to w when tracing is enabled. Otherwise
// spans are not recorded at all.
func newTracing(w io.Writer, cfg Config) (tracing, error) {
	if !cfg.Trace.Enabled {
		return tracing{
			tp: noop.NewTracerProvider(),
			shutdown: func(context.Context) error {
				return nil
			},
		}, nil
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
	)
	if err != nil {
		return tracing{}, err
	}

	res, err := resource.New(
		context.Background(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceName(cfg.Trace.ServiceName),
		),
	)
	if err != nil {
		return tracing{}, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return tracing{
		tp:       tp,
		shutdown: tp.Shutdown,
	}, nil
}
