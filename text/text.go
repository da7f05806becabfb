// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package text provides string helpers whose notion of white space is the
// Unicode White_Space property rather than just the ASCII space.
package text

import (
	"fmt"
	"iter"
	"math"
	"strings"
	"unicode"
)

// NegativeCountError is returned by [Repeat] for a negative count.
type NegativeCountError struct {
	Count int
}

// Error implements the [error] interface.
func (e NegativeCountError) Error() string {
	return fmt.Sprintf("text: negative repeat count: %d", e.Count)
}

// LengthOverflowError is returned by [Repeat] when the result would be
// longer than the largest representable string.
type LengthOverflowError struct {
	Length int
	Count  int
}

// Error implements the [error] interface.
func (e LengthOverflowError) Error() string {
	return fmt.Sprintf("text: repeating a string of length %d %d times overflows", e.Length, e.Count)
}

// Repeat returns n concatenations of s. Repeating zero times yields "".
func Repeat(s string, n int) (string, error) {
	if n < 0 {
		return "", NegativeCountError{Count: n}
	}
	if len(s) > 0 && n > math.MaxInt/len(s) {
		return "", LengthOverflowError{Length: len(s), Count: n}
	}
	return strings.Repeat(s, n), nil
}

// Lines returns a lazy sequence of the lines in s. Lines are terminated by
// "\n", "\r" or "\r\n" and the terminators are not included. A final
// terminator does not start an extra empty line, so "" has no lines.
// The sequence may be ranged over any number of times.
func Lines(s string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := s
		for len(rest) > 0 {
			i := strings.IndexAny(rest, "\r\n")
			if i < 0 {
				yield(rest)
				return
			}
			if !yield(rest[:i]) {
				return
			}

			next := i + 1
			if rest[i] == '\r' && next < len(rest) && rest[next] == '\n' {
				next++
			}
			rest = rest[next:]
		}
	}
}

// IsWhiteSpace reports whether r has the Unicode White_Space property.
func IsWhiteSpace(r rune) bool {
	return unicode.Is(unicode.White_Space, r)
}

// Strip removes leading and trailing white space.
func Strip(s string) string {
	return strings.TrimFunc(s, IsWhiteSpace)
}

// StripLeading removes leading white space.
func StripLeading(s string) string {
	return strings.TrimLeftFunc(s, IsWhiteSpace)
}

// StripTrailing removes trailing white space.
func StripTrailing(s string) string {
	return strings.TrimRightFunc(s, IsWhiteSpace)
}

// IsBlank reports whether s is empty or contains only white space.
func IsBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return !IsWhiteSpace(r)
	}) < 0
}
