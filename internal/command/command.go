// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package command implements the tour command line.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/z5labs/tour"
	"github.com/z5labs/tour/features"
	"github.com/z5labs/tour/fileio"
	"github.com/z5labs/tour/httpclient"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type options struct {
	stdout    io.Writer
	stderr    io.Writer
	fs        afero.Fs
	transport http.RoundTripper
}

// Option configures the command returned by [New].
type Option func(*options)

// Stdout sets where routine output and the summary are written.
func Stdout(w io.Writer) Option {
	return func(o *options) {
		o.stdout = w
	}
}

// Stderr sets where logs, traces and errors are written.
func Stderr(w io.Writer) Option {
	return func(o *options) {
		o.stderr = w
	}
}

// Fs sets the filesystem used for the config file and the file routine.
func Fs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// Transport sets the base transport of the fetch routine's client.
func Transport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

type flags struct {
	configPath string
	strict     bool
	trace      bool
	only       []string
	list       bool
	url        string
	timeout    time.Duration
}

// UnknownRoutineError is returned when --only names a routine
// which is not in the catalog.
type UnknownRoutineError struct {
	Names []string
}

// Error implements the [error] interface.
func (e UnknownRoutineError) Error() string {
	return fmt.Sprintf("unknown routines: %s", strings.Join(e.Names, ", "))
}

// New returns the root tour command.
func New(opts ...Option) *cobra.Command {
	o := &options{
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		fs:        afero.NewOsFs(),
		transport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(o)
	}

	f := &flags{}
	cmd := &cobra.Command{
		Use:           "tour",
		Short:         "Run a tour of small, independent feature demonstrations",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.list {
				return list(cmd.OutOrStdout())
			}

			cfgB := tour.BuilderFunc[Config](func(ctx context.Context) (Config, error) {
				return readConfig(o.fs, cmd, f)
			})
			rtB := tour.Map(cfgB, func(cfg Config) (*runtime, error) {
				return buildRuntime(o, cmd, f, cfg)
			})

			runner := tour.NotifyOnSignal(
				tour.RecoverPanics(tour.DefaultRunner[*runtime]()),
				os.Interrupt,
				syscall.SIGTERM,
			)
			return runner.Run(cmd.Context(), rtB)
		},
	}
	cmd.SetOut(o.stdout)
	cmd.SetErr(o.stderr)

	fs := cmd.Flags()
	fs.StringVar(&f.configPath, "config", "", "config file (.yaml, .yml, .toml or .json)")
	fs.BoolVar(&f.strict, "strict", false, "exit with a non-zero code if any demonstration fails")
	fs.BoolVar(&f.trace, "trace", false, "write a trace span per demonstration to stderr")
	fs.StringSliceVar(&f.only, "only", nil, "only run the named demonstrations, still in catalog order")
	fs.BoolVar(&f.list, "list", false, "list the demonstrations and exit")
	fs.StringVar(&f.url, "url", "", "url fetched by the http-client demonstration")
	fs.DurationVar(&f.timeout, "timeout", 0, "timeout of the http-client demonstration")

	return cmd
}

// Execute runs the tour command with args and returns the process exit code.
func Execute(ctx context.Context, args []string, opts ...Option) int {
	cmd := New(opts...)

	// cobra falls back to os.Args when given nil
	cmd.SetArgs(append([]string{}, args...))

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	return 1
}

func list(w io.Writer) error {
	catalog := features.Catalog(features.Config{}, nil, nil)
	for _, d := range catalog {
		_, err := fmt.Fprintln(w, d.Name)
		if err != nil {
			return err
		}
	}
	return nil
}

func selectRoutines(catalog []tour.Descriptor, only []string) ([]tour.Descriptor, error) {
	if len(only) == 0 {
		return catalog, nil
	}

	names := lo.Map(catalog, func(d tour.Descriptor, _ int) string {
		return d.Name
	})
	unknown := lo.Without(lo.Uniq(only), names...)
	if len(unknown) > 0 {
		return nil, UnknownRoutineError{Names: unknown}
	}

	return lo.Filter(catalog, func(d tour.Descriptor, _ int) bool {
		return slices.Contains(only, d.Name)
	}), nil
}

type runtime struct {
	tour     *tour.Tour
	shutdown func(context.Context) error
}

func buildRuntime(o *options, cmd *cobra.Command, f *flags, cfg Config) (*runtime, error) {
	logHandler, err := newLogHandler(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return nil, err
	}

	tr, err := newTracing(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return nil, err
	}

	clientOpts := []httpclient.Option{
		httpclient.Name("fetch"),
		httpclient.RoundTripper(o.transport),
		httpclient.Timeout(cfg.Fetch.EffectiveTimeout()),
		httpclient.LogHandler(logHandler),
		httpclient.TracerProvider(tr.tp),
	}
	if cfg.HTTP.Retries > 0 {
		clientOpts = append(clientOpts, httpclient.Retry(cfg.HTTP.Retries, cfg.HTTP.RetryWaitMin, cfg.HTTP.RetryWaitMax))
	}
	if cfg.HTTP.TripAfter > 0 {
		clientOpts = append(
			clientOpts,
			httpclient.TripAfter(cfg.HTTP.TripAfter),
			httpclient.OpenStateTimeout(cfg.HTTP.OpenStateTimeout),
			httpclient.HalfOpenRequests(cfg.HTTP.HalfOpenRequests),
			httpclient.CountResetInterval(cfg.HTTP.CountResetInterval),
		)
	}

	catalog := features.Catalog(
		cfg.Features(),
		httpclient.New(clientOpts...),
		fileio.New(o.fs),
	)
	catalog, err = selectRoutines(catalog, f.only)
	if err != nil {
		return nil, errors.Join(err, tr.shutdown(context.Background()))
	}

	t := tour.New(
		catalog,
		tour.Stdout(cmd.OutOrStdout()),
		tour.LogHandler(logHandler),
		tour.TracerProvider(tr.tp),
		tour.Strict(cfg.Strict),
	)
	return &runtime{
		tour:     t,
		shutdown: tr.shutdown,
	}, nil
}

// Run implements the [tour.Runtime] interface. Buffered spans are
// flushed even if the run context was cancelled.
func (rt *runtime) Run(ctx context.Context) error {
	err := rt.tour.Run(ctx)
	return errors.Join(err, rt.shutdown(context.WithoutCancel(ctx)))
}
