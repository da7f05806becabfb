// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package immutable

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListOf(t *testing.T) {
	t.Run("will match the literal elements", func(t *testing.T) {
		l := ListOf("a", "b", "c")

		require.Equal(t, 3, l.Len())
		require.Equal(t, []string{"a", "b", "c"}, l.Slice())

		v, ok := l.At(1)
		require.True(t, ok)
		require.Equal(t, "b", v)

		_, ok = l.At(3)
		require.False(t, ok)
		_, ok = l.At(-1)
		require.False(t, ok)
	})

	t.Run("will not alias the caller's slice", func(t *testing.T) {
		elems := []string{"a", "b"}
		l := ListOf(elems...)
		elems[0] = "z"

		out := l.Slice()
		out[1] = "y"

		require.Equal(t, []string{"a", "b"}, l.Slice())
	})

	t.Run("will reject mutation", func(t *testing.T) {
		l := ListOf(1, 2, 3)

		for _, err := range []error{l.Add(4), l.Set(0, 9), l.Remove(0)} {
			var uerr UnsupportedOperationError
			require.ErrorAs(t, err, &uerr)
			require.Equal(t, "List", uerr.Collection)
			require.ErrorIs(t, err, ErrImmutable)
		}
		require.Equal(t, []int{1, 2, 3}, l.Slice())
	})
}

func TestSetOf(t *testing.T) {
	t.Run("will match the literal elements", func(t *testing.T) {
		s, err := SetOf("a", "b", "c")
		require.NoError(t, err)

		require.Equal(t, 3, s.Len())
		require.True(t, s.Contains("a"))
		require.False(t, s.Contains("d"))
		require.Equal(t, []string{"a", "b", "c"}, slices.Collect(s.All()))
	})

	t.Run("will reject duplicate elements", func(t *testing.T) {
		_, err := SetOf("a", "b", "a")

		var derr DuplicateElementError[string]
		require.ErrorAs(t, err, &derr)
		require.Equal(t, []string{"a"}, derr.Elements)
	})

	t.Run("will reject mutation", func(t *testing.T) {
		s, err := SetOf("a")
		require.NoError(t, err)

		require.ErrorIs(t, s.Add("b"), ErrImmutable)
		require.ErrorIs(t, s.Remove("a"), ErrImmutable)
		require.True(t, s.Contains("a"))
		require.False(t, s.Contains("b"))
	})

	t.Run("will allow an empty set", func(t *testing.T) {
		s, err := SetOf[int]()
		require.NoError(t, err)
		require.Zero(t, s.Len())
		require.False(t, s.Contains(0))
	})
}

func TestMapOf(t *testing.T) {
	t.Run("will match the literal entries", func(t *testing.T) {
		m, err := MapOf(E("a", 1), E("b", 2), E("c", 3))
		require.NoError(t, err)

		require.Equal(t, 3, m.Len())
		require.Equal(t, []string{"a", "b", "c"}, m.Keys())
		require.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3}, maps.Collect(m.All()))

		v, ok := m.Get("b")
		require.True(t, ok)
		require.Equal(t, 2, v)
		require.False(t, m.ContainsKey("d"))
	})

	t.Run("will reject duplicate keys", func(t *testing.T) {
		_, err := MapOf(E("a", 1), E("a", 2))

		var derr DuplicateKeyError[string]
		require.ErrorAs(t, err, &derr)
		require.Equal(t, []string{"a"}, derr.Keys)
	})

	t.Run("will reject mutation", func(t *testing.T) {
		m, err := MapOf(E("a", 1))
		require.NoError(t, err)

		require.ErrorIs(t, m.Put("a", 5), ErrImmutable)
		require.ErrorIs(t, m.Delete("a"), ErrImmutable)

		v, _ := m.Get("a")
		require.Equal(t, 1, v)
	})
}
