package aggregation

import "groupby/pkg/primitives"

// MaxBy keeps the greatest record according to compare. An empty group yields
// an absent Optional. On ties the first record folded wins.
func MaxBy[T any](compare primitives.Comparator[T]) Collector[T, primitives.Optional[T]] {
	return Of(
		primitives.None[T],
		func(best primitives.Optional[T], item T) primitives.Optional[T] {
			if cur, ok := best.Get(); !ok || compare(item, cur) > 0 {
				return primitives.Some(item)
			}
			return best
		},
		identity[primitives.Optional[T]],
	)
}

// MinBy keeps the least record according to compare, with the same
// absent-on-empty and first-wins rules as MaxBy.
func MinBy[T any](compare primitives.Comparator[T]) Collector[T, primitives.Optional[T]] {
	return Of(
		primitives.None[T],
		func(best primitives.Optional[T], item T) primitives.Optional[T] {
			if cur, ok := best.Get(); !ok || compare(item, cur) < 0 {
				return primitives.Some(item)
			}
			return best
		},
		identity[primitives.Optional[T]],
	)
}

// Reducing folds records with a binary operator starting from seed.
// An empty group yields seed.
func Reducing[T any](seed T, op func(acc, item T) T) Collector[T, T] {
	return Of(
		func() T { return seed },
		op,
		identity[T],
	)
}
