package primitives

import "fmt"

// Optional holds either a value or the explicit absence of one.
// The zero Optional is absent.
type Optional[T any] struct {
	value   T
	present bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// None returns the absent marker for T.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// IsPresent reports whether a value is held.
func (o Optional[T]) IsPresent() bool {
	return o.present
}

// IsEmpty reports whether the value is absent.
func (o Optional[T]) IsEmpty() bool {
	return !o.present
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// OrElse returns the held value, or def when absent.
func (o Optional[T]) OrElse(def T) T {
	if o.present {
		return o.value
	}
	return def
}

// MustGet returns the held value and panics when absent.
// Use it only where presence is already established.
func (o Optional[T]) MustGet() T {
	if !o.present {
		panic("primitives: MustGet on absent Optional")
	}
	return o.value
}

func (o Optional[T]) String() string {
	if !o.present {
		return "Optional.empty"
	}
	return fmt.Sprintf("Optional[%v]", o.value)
}
