// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package tour runs a fixed, ordered list of independent demonstrations
// and reports how each one went.
//
// A [Tour] is built from [Descriptor]s, each naming a [Routine]. Routines run
// one at a time in the order given. A routine which returns an error or
// panics is recorded as a failed [Outcome] and the tour continues with the
// next routine, so every run yields exactly one outcome per descriptor.
//
// # Basic Usage
//
//	t := tour.New(
//	    []tour.Descriptor{
//	        {Name: "hello", Routine: tour.RoutineFunc(func(ctx context.Context, w io.Writer) error {
//	            _, err := fmt.Fprintln(w, "hello")
//	            return err
//	        })},
//	    },
//	    tour.Stdout(os.Stdout),
//	)
//
// [Tour] also implements [Runtime], so it can be run with the same
// composable runners used for any other runtime:
//
//	runner := tour.NotifyOnSignal(
//	    tour.RecoverPanics(tour.DefaultRunner[*tour.Tour]()),
//	    os.Interrupt,
//	)
//	err := runner.Run(ctx, tour.BuilderFunc[*tour.Tour](func(ctx context.Context) (*tour.Tour, error) {
//	    return t, nil
//	}))
package tour
