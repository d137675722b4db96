package primitives

import "cmp"

// Integer covers the signed and unsigned integer kinds a record field may hold.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Number is any numeric field type that can be summed or averaged.
type Number interface {
	Integer | ~float32 | ~float64
}

// Comparator orders two values: negative if a < b, zero if equal, positive if a > b.
type Comparator[T any] func(a, b T) int

// Ascending returns the natural order comparator for an ordered type.
func Ascending[T cmp.Ordered]() Comparator[T] {
	return cmp.Compare[T]
}

// Descending returns the reverse natural order comparator for an ordered type.
func Descending[T cmp.Ordered]() Comparator[T] {
	return Reverse(Ascending[T]())
}

// Reverse flips the order imposed by c.
func Reverse[T any](c Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		return c(b, a)
	}
}

// Comparing builds a comparator that orders values by a derived ordered key,
// e.g. Comparing(func(p Person) int { return p.Age }).
func Comparing[T any, K cmp.Ordered](key func(T) K) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}
