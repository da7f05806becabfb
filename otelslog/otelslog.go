// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package otelslog ties structured logs to OpenTelemetry spans.
//
// Every record logged within an active span is tagged with the span's
// trace and span ids and, if the span is recording, is also added to it
// as an event. A traced tour therefore shows what each demonstration
// logged alongside its span, even when logs and traces are exported to
// different places.
package otelslog

import (
	"context"
	"log/slog"
	"slices"

	"github.com/z5labs/tour/internal/slogfield"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SeverityKey is the span event attribute holding the record's level.
const SeverityKey = attribute.Key("log.severity")

// Handler decorates another slog.Handler.
type Handler struct {
	base slog.Handler

	// attrs and prefix mirror WithAttrs and WithGroup calls, since
	// span events never see the attributes held by base.
	attrs  []attribute.KeyValue
	prefix string
}

// NewHandler returns a [Handler] which forwards records to h.
func NewHandler(h slog.Handler) *Handler {
	return &Handler{base: h}
}

// Enabled implements the slog.Handler interface.
func (h *Handler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.base.Enabled(ctx, lvl)
}

// Handle implements the slog.Handler interface.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent(
			record.Message,
			trace.WithTimestamp(record.Time),
			trace.WithAttributes(h.eventAttributes(record)...),
		)
	}

	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return h.base.Handle(ctx, record)
	}

	r := record.Clone()
	r.AddAttrs(
		slog.Group(
			"otel",
			slogfield.String("trace_id", spanCtx.TraceID().String()),
			slogfield.String("span_id", spanCtx.SpanID().String()),
			slogfield.Bool("sampled", spanCtx.IsSampled()),
		),
	)
	return h.base.Handle(ctx, r)
}

func (h *Handler) eventAttributes(record slog.Record) []attribute.KeyValue {
	kvs := make([]attribute.KeyValue, 0, len(h.attrs)+record.NumAttrs()+1)
	kvs = append(kvs, h.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		kvs = appendAttr(kvs, h.prefix, a)
		return true
	})
	return append(kvs, SeverityKey.String(record.Level.String()))
}

// WithAttrs implements the slog.Handler interface.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	kvs := slices.Clone(h.attrs)
	for _, a := range attrs {
		kvs = appendAttr(kvs, h.prefix, a)
	}
	return &Handler{
		base:   h.base.WithAttrs(attrs),
		attrs:  kvs,
		prefix: h.prefix,
	}
}

// WithGroup implements the slog.Handler interface.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &Handler{
		base:   h.base.WithGroup(name),
		attrs:  h.attrs,
		prefix: h.prefix + name + ".",
	}
}

func appendAttr(kvs []attribute.KeyValue, prefix string, a slog.Attr) []attribute.KeyValue {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return kvs
	}

	key := attribute.Key(prefix + a.Key)
	v := a.Value
	switch v.Kind() {
	case slog.KindGroup:
		// groups with an empty key are inlined
		p := prefix
		if a.Key != "" {
			p = string(key) + "."
		}
		for _, ga := range v.Group() {
			kvs = appendAttr(kvs, p, ga)
		}
		return kvs
	case slog.KindBool:
		return append(kvs, key.Bool(v.Bool()))
	case slog.KindInt64:
		return append(kvs, key.Int64(v.Int64()))
	case slog.KindFloat64:
		return append(kvs, key.Float64(v.Float64()))
	default:
		return append(kvs, key.String(v.String()))
	}
}
