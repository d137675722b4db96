package aggregation

import (
	"iter"
	"maps"
	"slices"
)

// Container is the result mapping produced by a grouping. Implementations
// decide iteration order; the grouping core only calls Put once per group,
// after that group is fully finished.
type Container[K comparable, V any] interface {
	Put(key K, value V)
	Get(key K) (V, bool)
	Len() int

	// Keys returns the keys in the container's iteration order.
	Keys() []K

	// All iterates entries in the container's iteration order.
	All() iter.Seq2[K, V]
}

// HashMap is the default, unordered container.
type HashMap[K comparable, V any] map[K]V

// NewHashMap is the default container factory.
func NewHashMap[K comparable, V any]() HashMap[K, V] {
	return make(HashMap[K, V])
}

func (m HashMap[K, V]) Put(key K, value V) {
	m[key] = value
}

func (m HashMap[K, V]) Get(key K) (V, bool) {
	v, ok := m[key]
	return v, ok
}

func (m HashMap[K, V]) Len() int {
	return len(m)
}

// Keys returns the keys in unspecified order.
func (m HashMap[K, V]) Keys() []K {
	return slices.Collect(maps.Keys(m))
}

func (m HashMap[K, V]) All() iter.Seq2[K, V] {
	return maps.All(m)
}
