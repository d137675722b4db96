package aggregation

// Collector is a downstream aggregator: a recipe for folding the records of
// one group into a single result. NewAccumulator is called once per group,
// lazily, when the group's key is first seen.
//
// Collectors are immutable and may be reused across groups and calls; all
// mutable state lives in the Accumulator they create.
type Collector[T, R any] interface {
	NewAccumulator() Accumulator[T, R]
}

// Accumulator is the per-group state of a Collector. It is owned by a single
// grouping invocation and never shared.
type Accumulator[T, R any] interface {
	// Fold adds one record to the state. A non-nil error aborts the grouping.
	Fold(item T) error

	// Finish produces the group's final value. It is called exactly once,
	// after the last Fold.
	Finish() (R, error)
}

// CollectorFunc adapts a constructor function to the Collector interface.
type CollectorFunc[T, R any] func() Accumulator[T, R]

func (f CollectorFunc[T, R]) NewAccumulator() Accumulator[T, R] {
	return f()
}

// Of builds a collector from its three steps: init creates the empty state,
// fold returns the state with one more record folded in, and finish converts
// the state to the result.
//
// Example:
//
//	longest := aggregation.Of(
//	    func() string { return "" },
//	    func(s, v string) string { if len(v) > len(s) { return v }; return s },
//	    func(s string) (string, error) { return s, nil },
//	)
func Of[T, S, R any](init func() S, fold func(S, T) S, finish func(S) (R, error)) Collector[T, R] {
	return CollectorFunc[T, R](func() Accumulator[T, R] {
		return &foldAccumulator[T, S, R]{
			state:  init(),
			fold:   fold,
			finish: finish,
		}
	})
}

type foldAccumulator[T, S, R any] struct {
	state  S
	fold   func(S, T) S
	finish func(S) (R, error)
}

func (a *foldAccumulator[T, S, R]) Fold(item T) error {
	a.state = a.fold(a.state, item)
	return nil
}

func (a *foldAccumulator[T, S, R]) Finish() (R, error) {
	return a.finish(a.state)
}

func identity[S any](s S) (S, error) {
	return s, nil
}
