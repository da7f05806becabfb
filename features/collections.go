// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package features

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"

	"github.com/z5labs/tour/immutable"
)

// Collections builds a list, a set and a map from literals, prints
// them and shows that mutating them is refused.
func Collections(ctx context.Context, w io.Writer) error {
	list := immutable.ListOf("a", "b", "c")

	set, err := immutable.SetOf("a", "b", "c")
	if err != nil {
		return err
	}

	m, err := immutable.MapOf(
		immutable.E("a", 1),
		immutable.E("b", 2),
		immutable.E("c", 3),
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "list: %v (size %d)\n", list.Slice(), list.Len())
	fmt.Fprintf(w, "set: %v (size %d, contains %q: %t)\n", set.Slice(), set.Len(), "b", set.Contains("b"))
	fmt.Fprintf(w, "map: %v (size %d)\n", maps.Collect(m.All()), m.Len())

	err = list.Add("d")
	if err == nil {
		return errors.New("list accepted a new element")
	}
	_, err = fmt.Fprintf(w, "list.Add(%q): %s\n", "d", err)
	return err
}
