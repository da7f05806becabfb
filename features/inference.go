// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package features

import (
	"context"
	"fmt"
	"io"
)

// Inference binds values without naming their types and prints the
// types the compiler chose.
func Inference(ctx context.Context, w io.Writer) error {
	var s = ""
	n := 42
	f := 1.5
	r := 'x'
	names := []string{"a", "b"}

	for _, v := range []any{s, n, f, r, names} {
		_, err := fmt.Fprintf(w, "%#v: %T\n", v, v)
		if err != nil {
			return err
		}
	}
	return nil
}
