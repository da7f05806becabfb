// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package text

import (
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestRepeat(t *testing.T) {
	t.Run("will concatenate n copies", func(t *testing.T) {
		properties := gopter.NewProperties(nil)

		properties.Property("length is n times the original length", prop.ForAll(
			func(s string, n int) bool {
				r, err := Repeat(s, n)
				return err == nil && len(r) == n*len(s)
			},
			gen.AnyString(),
			gen.IntRange(0, 50),
		))

		properties.Property("equals n concatenations", prop.ForAll(
			func(s string, n int) bool {
				r, err := Repeat(s, n)
				if err != nil {
					return false
				}
				var sb strings.Builder
				for i := 0; i < n; i++ {
					sb.WriteString(s)
				}
				return r == sb.String()
			},
			gen.AlphaString(),
			gen.IntRange(0, 20),
		))

		properties.TestingRun(t)
	})

	t.Run("will return an empty string", func(t *testing.T) {
		t.Run("if n is zero", func(t *testing.T) {
			r, err := Repeat("Hello", 0)
			require.NoError(t, err)
			require.Empty(t, r)
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if n is negative", func(t *testing.T) {
			_, err := Repeat("Hello", -1)

			var nerr NegativeCountError
			require.ErrorAs(t, err, &nerr)
			require.Equal(t, -1, nerr.Count)
		})

		t.Run("if the result would overflow", func(t *testing.T) {
			n := math.MaxInt/2 + 1
			r, err := Repeat("ab", n)

			var oerr LengthOverflowError
			require.ErrorAs(t, err, &oerr)
			require.Equal(t, 2, oerr.Length)
			require.Equal(t, n, oerr.Count)
			require.Empty(t, r)
		})
	})

	t.Run("will not overflow", func(t *testing.T) {
		t.Run("if the string is empty", func(t *testing.T) {
			r, err := Repeat("", math.MaxInt)
			require.NoError(t, err)
			require.Empty(t, r)
		})
	})

	r, err := Repeat("Hello", 3)
	require.NoError(t, err)
	require.Equal(t, "HelloHelloHello", r)
}

func TestLines(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "newline", input: "first\nsecond", expected: []string{"first", "second"}},
		{name: "carriage return newline", input: "first\r\nsecond", expected: []string{"first", "second"}},
		{name: "carriage return", input: "first\rsecond", expected: []string{"first", "second"}},
		{name: "trailing terminator", input: "first\nsecond\n", expected: []string{"first", "second"}},
		{name: "blank line kept", input: "first\n    \nsecond", expected: []string{"first", "    ", "second"}},
		{name: "empty line kept", input: "a\n\nb", expected: []string{"a", "", "b"}},
		{name: "only terminator", input: "\n", expected: []string{""}},
		{name: "empty", input: "", expected: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lines := slices.Collect(Lines(tc.input))
			require.Equal(t, tc.expected, lines)
		})
	}

	t.Run("will be restartable", func(t *testing.T) {
		seq := Lines("first\nsecond")
		require.Equal(t, slices.Collect(seq), slices.Collect(seq))
	})

	t.Run("will stop early", func(t *testing.T) {
		var got []string
		for line := range Lines("a\nb\nc") {
			got = append(got, line)
			if line == "b" {
				break
			}
		}
		require.Equal(t, []string{"a", "b"}, got)
	})
}

func TestStrip(t *testing.T) {
	testCases := []struct {
		input    string
		both     string
		leading  string
		trailing string
	}{
		{input: " Hello ", both: "Hello", leading: "Hello ", trailing: " Hello"},
		{input: "\u2003Hello\u3000", both: "Hello", leading: "Hello\u3000", trailing: "\u2003Hello"},
		{input: "\t\n Hello", both: "Hello", leading: "Hello", trailing: "\t\n Hello"},
		{input: "   ", both: "", leading: "", trailing: ""},
		{input: "", both: "", leading: "", trailing: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			require.Equal(t, tc.both, Strip(tc.input))
			require.Equal(t, tc.leading, StripLeading(tc.input))
			require.Equal(t, tc.trailing, StripTrailing(tc.input))
		})
	}
}

func TestIsBlank(t *testing.T) {
	testCases := []struct {
		input    string
		expected bool
	}{
		{input: "", expected: true},
		{input: "  ", expected: true},
		{input: "\u2003\u3000\t", expected: true},
		{input: "a ", expected: false},
		{input: " a", expected: false},
		{input: "\u200b", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			require.Equal(t, tc.expected, IsBlank(tc.input))
		})
	}
}
