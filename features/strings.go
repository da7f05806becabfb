// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package features

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/z5labs/tour/text"
)

// Strings prints the result of each helper in the text package.
func Strings(ctx context.Context, w io.Writer) error {
	repeated, err := text.Repeat("Hello", 3)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "repeat: %s\n", repeated)
	fmt.Fprintf(w, "lines: %q\n", slices.Collect(text.Lines("first\nsecond")))
	fmt.Fprintf(w, "strip: [%s]\n", text.Strip(" Hello "))
	fmt.Fprintf(w, "stripLeading: [%s]\n", text.StripLeading(" Hello "))
	fmt.Fprintf(w, "stripTrailing: [%s]\n", text.StripTrailing(" Hello "))
	_, err = fmt.Fprintf(w, "isBlank(%q): %t\n", "  ", text.IsBlank("  "))
	return err
}
