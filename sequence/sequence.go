// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package sequence provides lazy helpers over [iter.Seq] along with
// conversions from sequences into fixed length slices.
package sequence

import (
	"container/list"
	"iter"
)

// Not returns the logical complement of p.
func Not[T any](p func(T) bool) func(T) bool {
	return func(v T) bool {
		return !p(v)
	}
}

// Filter lazily yields the elements of seq for which keep returns true,
// preserving their relative order.
func Filter[T any](seq iter.Seq[T], keep func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if !keep(v) {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// FromList returns a sequence over the values of l, front to back.
// Every element of l must hold a T.
func FromList[T any](l *list.List) iter.Seq[T] {
	return func(yield func(T) bool) {
		if l == nil {
			return
		}
		for e := l.Front(); e != nil; e = e.Next() {
			if !yield(e.Value.(T)) {
				return
			}
		}
	}
}

// Len counts the elements of seq.
func Len[T any](seq iter.Seq[T]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}

// ToSlice copies seq into dst, reusing dst's backing array when its
// capacity is large enough and allocating a new one otherwise. The
// returned slice always has exactly as many elements as seq, whatever
// the length of dst.
func ToSlice[T any](seq iter.Seq[T], dst []T) []T {
	return fill(seq, dst[:0])
}

// ToSliceFunc is like [ToSlice] but lets alloc size the target once the
// number of elements is known.
func ToSliceFunc[T any](seq iter.Seq[T], alloc func(n int) []T) []T {
	n := Len(seq)
	dst := alloc(n)
	if cap(dst) < n {
		dst = make([]T, 0, n)
	}
	return fill(seq, dst[:0])
}

func fill[T any](seq iter.Seq[T], dst []T) []T {
	for v := range seq {
		dst = append(dst, v)
	}
	return dst
}
