// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package immutable provides read-only collections built from literal
// elements. Their contents are fixed at construction: every mutator fails
// with an [UnsupportedOperationError] and every accessor returning a slice
// returns a copy.
package immutable

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/samber/lo"
)

// ErrImmutable is wrapped by every [UnsupportedOperationError].
var ErrImmutable = errors.New("immutable: collection can not be modified")

// UnsupportedOperationError is returned by every mutator.
type UnsupportedOperationError struct {
	Collection string
	Op         string
}

// Error implements the [error] interface.
func (e UnsupportedOperationError) Error() string {
	return fmt.Sprintf("immutable: %s.%s is not supported", e.Collection, e.Op)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e UnsupportedOperationError) Unwrap() error {
	return ErrImmutable
}

// DuplicateElementError is returned by [SetOf] when the same element
// is given more than once.
type DuplicateElementError[T comparable] struct {
	Elements []T
}

// Error implements the [error] interface.
func (e DuplicateElementError[T]) Error() string {
	return fmt.Sprintf("immutable: duplicate elements: %v", e.Elements)
}

// DuplicateKeyError is returned by [MapOf] when the same key
// is given more than once.
type DuplicateKeyError[K comparable] struct {
	Keys []K
}

// Error implements the [error] interface.
func (e DuplicateKeyError[K]) Error() string {
	return fmt.Sprintf("immutable: duplicate keys: %v", e.Keys)
}

// List is an ordered, fixed sequence of elements.
type List[T any] struct {
	elems []T
}

// ListOf returns a [List] holding elems in order.
func ListOf[T any](elems ...T) List[T] {
	return List[T]{elems: slices.Clone(elems)}
}

// Len returns the number of elements.
func (l List[T]) Len() int {
	return len(l.elems)
}

// At returns the element at index i. ok is false if i is out of range.
func (l List[T]) At(i int) (v T, ok bool) {
	if i < 0 || i >= len(l.elems) {
		return v, false
	}
	return l.elems[i], true
}

// All iterates over the indexes and elements in order.
func (l List[T]) All() iter.Seq2[int, T] {
	return slices.All(l.elems)
}

// Slice returns a copy of the elements.
func (l List[T]) Slice() []T {
	return slices.Clone(l.elems)
}

// Add always fails.
func (l List[T]) Add(T) error {
	return UnsupportedOperationError{Collection: "List", Op: "Add"}
}

// Set always fails.
func (l List[T]) Set(int, T) error {
	return UnsupportedOperationError{Collection: "List", Op: "Set"}
}

// Remove always fails.
func (l List[T]) Remove(int) error {
	return UnsupportedOperationError{Collection: "List", Op: "Remove"}
}

// Set is a fixed collection of unique elements. Iteration follows
// construction order.
type Set[T comparable] struct {
	elems []T
	index map[T]struct{}
}

// SetOf returns a [Set] of elems. Giving the same element twice is
// an error, as it most likely is a typo in the literal.
func SetOf[T comparable](elems ...T) (Set[T], error) {
	if dups := lo.FindDuplicates(elems); len(dups) > 0 {
		return Set[T]{}, DuplicateElementError[T]{Elements: dups}
	}

	index := make(map[T]struct{}, len(elems))
	for _, e := range elems {
		index[e] = struct{}{}
	}
	return Set[T]{
		elems: slices.Clone(elems),
		index: index,
	}, nil
}

// Len returns the number of elements.
func (s Set[T]) Len() int {
	return len(s.elems)
}

// Contains reports whether v is a member of s.
func (s Set[T]) Contains(v T) bool {
	_, ok := s.index[v]
	return ok
}

// All iterates over the elements.
func (s Set[T]) All() iter.Seq[T] {
	return slices.Values(s.elems)
}

// Slice returns a copy of the elements.
func (s Set[T]) Slice() []T {
	return slices.Clone(s.elems)
}

// Add always fails.
func (s Set[T]) Add(T) error {
	return UnsupportedOperationError{Collection: "Set", Op: "Add"}
}

// Remove always fails.
func (s Set[T]) Remove(T) error {
	return UnsupportedOperationError{Collection: "Set", Op: "Remove"}
}

// E is shorthand for building an entry for [MapOf].
func E[K comparable, V any](k K, v V) lo.Entry[K, V] {
	return lo.Entry[K, V]{Key: k, Value: v}
}

// Map is a fixed mapping from unique keys to values. Iteration follows
// construction order.
type Map[K comparable, V any] struct {
	keys []K
	m    map[K]V
}

// MapOf returns a [Map] of entries. Giving the same key twice is an error.
func MapOf[K comparable, V any](entries ...lo.Entry[K, V]) (Map[K, V], error) {
	keys := lo.Map(entries, func(e lo.Entry[K, V], _ int) K {
		return e.Key
	})
	if dups := lo.FindDuplicates(keys); len(dups) > 0 {
		return Map[K, V]{}, DuplicateKeyError[K]{Keys: dups}
	}

	return Map[K, V]{
		keys: keys,
		m:    lo.FromEntries(entries),
	}, nil
}

// Len returns the number of entries.
func (m Map[K, V]) Len() int {
	return len(m.keys)
}

// Get returns the value for k.
func (m Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.m[k]
	return v, ok
}

// ContainsKey reports whether k is a key of m.
func (m Map[K, V]) ContainsKey(k K) bool {
	_, ok := m.m[k]
	return ok
}

// All iterates over the entries.
func (m Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.m[k]) {
				return
			}
		}
	}
}

// Keys returns a copy of the keys.
func (m Map[K, V]) Keys() []K {
	return slices.Clone(m.keys)
}

// Put always fails.
func (m Map[K, V]) Put(K, V) error {
	return UnsupportedOperationError{Collection: "Map", Op: "Put"}
}

// Delete always fails.
func (m Map[K, V]) Delete(K) error {
	return UnsupportedOperationError{Collection: "Map", Op: "Delete"}
}
