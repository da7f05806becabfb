// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package features

import (
	"container/list"
	"context"
	"fmt"
	"io"

	"github.com/z5labs/tour/sequence"
	"github.com/z5labs/tour/text"
)

// NotBlankLines prints every line which is not blank.
func NotBlankLines(ctx context.Context, w io.Writer) error {
	lines := sequence.Filter(text.Lines("first\n    \nsecond"), sequence.Not(text.IsBlank))
	for line := range lines {
		_, err := fmt.Fprintln(w, line)
		if err != nil {
			return err
		}
	}
	return nil
}

// Arrays copies a linked list into a slice three ways.
func Arrays(ctx context.Context, w io.Writer) error {
	l := list.New()
	for _, s := range []string{"a", "b", "c"} {
		l.PushBack(s)
	}
	seq := sequence.FromList[string](l)

	presized := sequence.ToSlice(seq, make([]string, sequence.Len(seq)))
	fmt.Fprintf(w, "pre-sized: %q\n", presized)

	grown := sequence.ToSlice(seq, nil)
	fmt.Fprintf(w, "empty: %q\n", grown)

	generated := sequence.ToSliceFunc(seq, func(n int) []string {
		return make([]string, n)
	})
	_, err := fmt.Fprintf(w, "generator: %q\n", generated)
	return err
}
