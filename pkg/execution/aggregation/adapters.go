package aggregation

// Mapping transforms each record with fn before folding it into inner.
func Mapping[T, U, R any](fn func(T) U, inner Collector[U, R]) Collector[T, R] {
	return TryMapping(func(item T) (U, error) { return fn(item), nil }, inner)
}

// TryMapping is Mapping with a fallible transform; the first error aborts the
// grouping.
func TryMapping[T, U, R any](fn func(T) (U, error), inner Collector[U, R]) Collector[T, R] {
	return CollectorFunc[T, R](func() Accumulator[T, R] {
		return &mappingAccumulator[T, U, R]{fn: fn, inner: inner.NewAccumulator()}
	})
}

type mappingAccumulator[T, U, R any] struct {
	fn    func(T) (U, error)
	inner Accumulator[U, R]
}

func (a *mappingAccumulator[T, U, R]) Fold(item T) error {
	v, err := a.fn(item)
	if err != nil {
		return err
	}
	return a.inner.Fold(v)
}

func (a *mappingAccumulator[T, U, R]) Finish() (R, error) {
	return a.inner.Finish()
}

// FlatMapping expands each record into zero or more values and folds every
// value into inner individually. A nil or empty expansion folds nothing.
func FlatMapping[T, U, R any](fn func(T) []U, inner Collector[U, R]) Collector[T, R] {
	return CollectorFunc[T, R](func() Accumulator[T, R] {
		return &flatMappingAccumulator[T, U, R]{fn: fn, inner: inner.NewAccumulator()}
	})
}

type flatMappingAccumulator[T, U, R any] struct {
	fn    func(T) []U
	inner Accumulator[U, R]
}

func (a *flatMappingAccumulator[T, U, R]) Fold(item T) error {
	for _, v := range a.fn(item) {
		if err := a.inner.Fold(v); err != nil {
			return err
		}
	}
	return nil
}

func (a *flatMappingAccumulator[T, U, R]) Finish() (R, error) {
	return a.inner.Finish()
}

// Filtering folds only the records satisfying pred into inner. Unlike
// filtering the input before grouping, the group itself survives: a key whose
// records all fail pred maps to inner's empty result.
func Filtering[T, R any](pred func(T) bool, inner Collector[T, R]) Collector[T, R] {
	return TryFiltering(func(item T) (bool, error) { return pred(item), nil }, inner)
}

// TryFiltering is Filtering with a fallible predicate.
func TryFiltering[T, R any](pred func(T) (bool, error), inner Collector[T, R]) Collector[T, R] {
	return CollectorFunc[T, R](func() Accumulator[T, R] {
		return &filteringAccumulator[T, R]{pred: pred, inner: inner.NewAccumulator()}
	})
}

type filteringAccumulator[T, R any] struct {
	pred  func(T) (bool, error)
	inner Accumulator[T, R]
}

func (a *filteringAccumulator[T, R]) Fold(item T) error {
	keep, err := a.pred(item)
	if err != nil || !keep {
		return err
	}
	return a.inner.Fold(item)
}

func (a *filteringAccumulator[T, R]) Finish() (R, error) {
	return a.inner.Finish()
}

// CollectingAndThen applies finisher to inner's result, e.g. to turn an
// absent MaxBy into a default:
//
//	CollectingAndThen(MaxBy(cmp), func(o primitives.Optional[int]) int { return o.OrElse(-1) })
func CollectingAndThen[T, R, RR any](inner Collector[T, R], finisher func(R) RR) Collector[T, RR] {
	return CollectorFunc[T, RR](func() Accumulator[T, RR] {
		return &finishingAccumulator[T, R, RR]{inner: inner.NewAccumulator(), finisher: finisher}
	})
}

type finishingAccumulator[T, R, RR any] struct {
	inner    Accumulator[T, R]
	finisher func(R) RR
}

func (a *finishingAccumulator[T, R, RR]) Fold(item T) error {
	return a.inner.Fold(item)
}

func (a *finishingAccumulator[T, R, RR]) Finish() (RR, error) {
	r, err := a.inner.Finish()
	if err != nil {
		var zero RR
		return zero, err
	}
	return a.finisher(r), nil
}

// Partitioning splits a group in two by pred. Both the true and the false
// partition are always present in the result, even when empty.
func Partitioning[T, R any](pred func(T) bool, downstream Collector[T, R]) Collector[T, map[bool]R] {
	return CollectorFunc[T, map[bool]R](func() Accumulator[T, map[bool]R] {
		return &partitionAccumulator[T, R]{
			pred: pred,
			yes:  downstream.NewAccumulator(),
			no:   downstream.NewAccumulator(),
		}
	})
}

type partitionAccumulator[T, R any] struct {
	pred func(T) bool
	yes  Accumulator[T, R]
	no   Accumulator[T, R]
}

func (a *partitionAccumulator[T, R]) Fold(item T) error {
	if a.pred(item) {
		return a.yes.Fold(item)
	}
	return a.no.Fold(item)
}

func (a *partitionAccumulator[T, R]) Finish() (map[bool]R, error) {
	yes, err := a.yes.Finish()
	if err != nil {
		return nil, err
	}
	no, err := a.no.Finish()
	if err != nil {
		return nil, err
	}
	return map[bool]R{true: yes, false: no}, nil
}

// PartitionBy partitions records by pred at the top level, with both keys
// always present. Use it instead of GroupBy when a missing partition must read
// as empty rather than absent.
func PartitionBy[T, R any](records []T, pred func(T) bool, downstream Collector[T, R]) (map[bool]R, error) {
	acc := Partitioning(pred, downstream).NewAccumulator()
	for _, item := range records {
		if err := acc.Fold(item); err != nil {
			return nil, err
		}
	}
	return acc.Finish()
}
