// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tour

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/z5labs/tour/internal/slogfield"
	"github.com/z5labs/tour/internal/try"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/z5labs/tour"

// Routine is a single self-contained demonstration. Anything it wants
// shown to the user should be written to w.
type Routine interface {
	Run(ctx context.Context, w io.Writer) error
}

// RoutineFunc is a functional implementation of the [Routine] interface.
type RoutineFunc func(context.Context, io.Writer) error

// Run implements the [Routine] interface.
func (f RoutineFunc) Run(ctx context.Context, w io.Writer) error {
	return f(ctx, w)
}

// Descriptor names a [Routine].
type Descriptor struct {
	Name    string
	Routine Routine
}

// Outcome records the result of running one [Routine].
type Outcome struct {
	Name     string
	Err      error
	Output   mo.Option[string]
	Duration time.Duration
}

// Succeeded reports whether the routine completed without error.
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// ErrorDetail returns the failure reason, if any.
func (o Outcome) ErrorDetail() mo.Option[string] {
	if o.Err == nil {
		return mo.None[string]()
	}
	return mo.Some(o.Err.Error())
}

// Summary counts the outcomes of a run.
type Summary struct {
	Succeeded int
	Total     int
}

// Summarize counts how many outcomes succeeded.
func Summarize(outcomes []Outcome) Summary {
	return Summary{
		Succeeded: lo.CountBy(outcomes, Outcome.Succeeded),
		Total:     len(outcomes),
	}
}

// Failed returns the number of failed outcomes.
func (s Summary) Failed() int {
	return s.Total - s.Succeeded
}

// String implements the [fmt.Stringer] interface.
func (s Summary) String() string {
	return fmt.Sprintf("%d/%d demonstrations succeeded", s.Succeeded, s.Total)
}

// State is the lifecycle of a [Tour].
type State int32

const (
	NotStarted State = iota
	Running
	Completed
)

// String implements the [fmt.Stringer] interface.
func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// ErrNilRoutine is recorded for a [Descriptor] without a [Routine].
var ErrNilRoutine = errors.New("tour: nil routine")

// NotRunError is recorded for routines which were never started
// because the run context was already done.
type NotRunError struct {
	Cause error
}

// Error implements the [error] interface.
func (e NotRunError) Error() string {
	return fmt.Sprintf("not run: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e NotRunError) Unwrap() error {
	return e.Cause
}

// FailedDemonstrationsError is returned by a strict [Tour] when
// at least one routine failed.
type FailedDemonstrationsError struct {
	Failed int
	Total  int
}

// Error implements the [error] interface.
func (e FailedDemonstrationsError) Error() string {
	return fmt.Sprintf("%d of %d demonstrations failed", e.Failed, e.Total)
}

type options struct {
	stdout     io.Writer
	logHandler slog.Handler
	tp         trace.TracerProvider
	strict     bool
}

// Option configures a [Tour].
type Option func(*options)

// Stdout sets where routine output, failure lines and the summary are written.
func Stdout(w io.Writer) Option {
	return func(o *options) {
		o.stdout = w
	}
}

// LogHandler sets the handler for the tour's structured logs.
// By default they are discarded.
func LogHandler(h slog.Handler) Option {
	return func(o *options) {
		o.logHandler = h
	}
}

// TracerProvider overrides the global OpenTelemetry tracer provider.
func TracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tp = tp
	}
}

// Strict makes [Tour.Run] return a [FailedDemonstrationsError]
// when any routine fails.
func Strict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// Tour runs a fixed, ordered list of routines one at a time. A failing
// routine is recorded and the tour moves on to the next one.
type Tour struct {
	descriptors []Descriptor
	stdout      io.Writer
	log         *slog.Logger
	tracer      trace.Tracer
	strict      bool

	state atomic.Int32
}

// New returns a [Tour] over a copy of descriptors.
func New(descriptors []Descriptor, opts ...Option) *Tour {
	o := &options{
		stdout:     io.Discard,
		logHandler: slog.NewTextHandler(io.Discard, nil),
		tp:         otel.GetTracerProvider(),
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Tour{
		descriptors: append([]Descriptor(nil), descriptors...),
		stdout:      o.stdout,
		log:         slog.New(o.logHandler),
		tracer:      o.tp.Tracer(instrumentationName),
		strict:      o.strict,
	}
}

// Names returns the routine names in run order.
func (t *Tour) Names() []string {
	return lo.Map(t.descriptors, func(d Descriptor, _ int) string {
		return d.Name
	})
}

// State returns the current lifecycle state.
func (t *Tour) State() State {
	return State(t.state.Load())
}

// RunAll runs every routine in order and returns exactly one
// [Outcome] per descriptor, in the same order.
func (t *Tour) RunAll(ctx context.Context) []Outcome {
	t.state.Store(int32(Running))
	defer t.state.Store(int32(Completed))

	outcomes := make([]Outcome, len(t.descriptors))
	for i, d := range t.descriptors {
		outcomes[i] = t.runOne(ctx, d)
	}
	return outcomes
}

func (t *Tour) runOne(ctx context.Context, d Descriptor) Outcome {
	log := t.log.With(slogfield.Routine(d.Name))

	if err := ctx.Err(); err != nil {
		log.WarnContext(ctx, "skipping demonstration", slogfield.Error(err))
		return Outcome{Name: d.Name, Err: NotRunError{Cause: err}}
	}

	spanCtx, span := t.tracer.Start(
		ctx,
		d.Name,
		trace.WithAttributes(attribute.String("tour.routine", d.Name)),
	)
	defer span.End()

	fmt.Fprintf(t.stdout, "== %s ==\n", d.Name)
	log.InfoContext(spanCtx, "running demonstration")

	var buf bytes.Buffer
	start := time.Now()
	err := invoke(spanCtx, d.Routine, io.MultiWriter(t.stdout, &buf))
	elapsed := time.Since(start)

	outcome := Outcome{
		Name:     d.Name,
		Err:      err,
		Duration: elapsed,
	}
	if buf.Len() > 0 {
		outcome.Output = mo.Some(buf.String())
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorContext(
			spanCtx,
			"demonstration failed",
			slogfield.Duration("duration", elapsed),
			slogfield.Error(err),
		)

		var perr try.PanicError
		if errors.As(err, &perr) {
			log.DebugContext(spanCtx, "demonstration panicked", slogfield.String("stack", string(perr.Stack)))
		}
		return outcome
	}

	span.SetStatus(codes.Ok, "")
	log.InfoContext(spanCtx, "demonstration succeeded", slogfield.Duration("duration", elapsed))
	return outcome
}

func invoke(ctx context.Context, r Routine, w io.Writer) (err error) {
	defer try.Recover(&err)

	if r == nil {
		return ErrNilRoutine
	}
	return r.Run(ctx, w)
}

// Run implements the [Runtime] interface. It runs every routine, reports
// each failure followed by the summary line and, only if the tour is
// strict, fails when any routine failed.
func (t *Tour) Run(ctx context.Context) error {
	outcomes := t.RunAll(ctx)

	fmt.Fprintln(t.stdout)
	for _, o := range outcomes {
		if o.Succeeded() {
			continue
		}
		fmt.Fprintf(t.stdout, "%s failed: %s\n", o.Name, o.Err)
	}

	summary := Summarize(outcomes)
	fmt.Fprintln(t.stdout, summary)

	t.log.InfoContext(
		ctx,
		"tour completed",
		slogfield.Int("succeeded", summary.Succeeded),
		slogfield.Int("failed", summary.Failed()),
	)

	if t.strict && summary.Failed() > 0 {
		return FailedDemonstrationsError{
			Failed: summary.Failed(),
			Total:  summary.Total,
		}
	}
	return nil
}
