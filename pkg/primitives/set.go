package primitives

import (
	"maps"
	"slices"
)

// Set is an unordered collection of distinct values compared with ==.
type Set[T comparable] map[T]struct{}

// NewSet creates a set holding the given values.
func NewSet[T comparable](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts v and reports whether it was not already present.
func (s Set[T]) Add(v T) bool {
	if _, ok := s[v]; ok {
		return false
	}
	s[v] = struct{}{}
	return true
}

func (s Set[T]) Contains(v T) bool {
	_, ok := s[v]
	return ok
}

func (s Set[T]) Len() int {
	return len(s)
}

// Values returns the members in unspecified order.
func (s Set[T]) Values() []T {
	return slices.Collect(maps.Keys(s))
}
