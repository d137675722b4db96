package aggregation

import (
	"strings"

	"groupby/pkg/primitives"
)

// ToList collects records in fold order. An empty group yields an empty,
// non-nil slice.
func ToList[T any]() Collector[T, []T] {
	return Of(
		func() []T { return make([]T, 0) },
		func(s []T, item T) []T { return append(s, item) },
		identity[[]T],
	)
}

// ToSet collects distinct records, compared with ==.
func ToSet[T comparable]() Collector[T, primitives.Set[T]] {
	return Of(
		func() primitives.Set[T] { return primitives.NewSet[T]() },
		func(s primitives.Set[T], item T) primitives.Set[T] {
			s.Add(item)
			return s
		},
		identity[primitives.Set[T]],
	)
}

// ToSetBy collects records that are distinct according to a comparable
// identity, for record types that cannot be compared with == directly.
// The first record seen for an identity is kept; result order is fold order.
func ToSetBy[T any, I comparable](identityOf func(T) I) Collector[T, []T] {
	return Of(
		func() *distinctState[T, I] {
			return &distinctState[T, I]{seen: primitives.NewSet[I](), items: make([]T, 0)}
		},
		func(s *distinctState[T, I], item T) *distinctState[T, I] {
			if s.seen.Add(identityOf(item)) {
				s.items = append(s.items, item)
			}
			return s
		},
		func(s *distinctState[T, I]) ([]T, error) { return s.items, nil },
	)
}

type distinctState[T any, I comparable] struct {
	seen  primitives.Set[I]
	items []T
}

// Joining concatenates strings in fold order, separated by sep.
func Joining(sep string) Collector[string, string] {
	return Of(
		func() []string { return nil },
		func(s []string, item string) []string { return append(s, item) },
		func(s []string) (string, error) { return strings.Join(s, sep), nil },
	)
}
