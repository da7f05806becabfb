// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package maskslog hides sensitive attribute values before they reach
// another slog.Handler.
package maskslog

import (
	"context"
	"log/slog"
	"net/url"
)

// Masker rewrites an attribute.
type Masker func(slog.Attr) slog.Attr

type options struct {
	maskers map[string]Masker
}

// Option configures a [Handler].
type Option func(*options)

// Attr masks every attribute with the given key, including attributes
// added through [slog.Logger.With].
func Attr(key string, m Masker) Option {
	return func(o *options) {
		o.maskers[key] = m
	}
}

// Anonymous replaces the value with "****", whatever its type.
func Anonymous(a slog.Attr) slog.Attr {
	return slog.String(a.Key, "****")
}

// URLPassword redacts the password of a URL valued attribute. Values
// which do not parse as a URL are left alone.
func URLPassword(a slog.Attr) slog.Attr {
	u, err := url.Parse(a.Value.String())
	if err != nil || u.User == nil {
		return a
	}
	return slog.String(a.Key, u.Redacted())
}

// Handler applies [Masker]s to records before passing them on.
type Handler struct {
	base    slog.Handler
	maskers map[string]Masker
}

// NewHandler returns a [Handler] wrapping h.
func NewHandler(h slog.Handler, opts ...Option) *Handler {
	o := &options{
		maskers: make(map[string]Masker),
	}
	for _, opt := range opts {
		opt(o)
	}
	return &Handler{
		base:    h,
		maskers: o.maskers,
	}
}

func (h *Handler) mask(a slog.Attr) slog.Attr {
	if m, ok := h.maskers[a.Key]; ok {
		return m(a)
	}
	return a
}

// Enabled implements the slog.Handler interface.
func (h *Handler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.base.Enabled(ctx, lvl)
}

// Handle implements the slog.Handler interface.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if len(h.maskers) == 0 {
		return h.base.Handle(ctx, record)
	}

	nr := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(a slog.Attr) bool {
		nr.AddAttrs(h.mask(a))
		return true
	})
	return h.base.Handle(ctx, nr)
}

// WithAttrs implements the slog.Handler interface.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.mask(a)
	}
	return &Handler{
		base:    h.base.WithAttrs(masked),
		maskers: h.maskers,
	}
}

// WithGroup implements the slog.Handler interface.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		base:    h.base.WithGroup(name),
		maskers: h.maskers,
	}
}
