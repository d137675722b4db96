package aggregation

import (
	"iter"
	"slices"

	grouperr "groupby/pkg/error"
	"groupby/pkg/logging"
)

const component = "aggregation"

// groups holds the per-key accumulators of one grouping invocation. Keys are
// remembered in first-seen order so finishing is deterministic.
type groups[T any, K comparable, R any] struct {
	downstream Collector[T, R]
	order      []K
	accs       map[K]Accumulator[T, R]
}

func newGroups[T any, K comparable, R any](downstream Collector[T, R]) *groups[T, K, R] {
	return &groups[T, K, R]{
		downstream: downstream,
		accs:       make(map[K]Accumulator[T, R]),
	}
}

// add routes item to the accumulator for key, creating it on first encounter.
func (g *groups[T, K, R]) add(key K, item T) error {
	acc, ok := g.accs[key]
	if !ok {
		acc = g.downstream.NewAccumulator()
		g.accs[key] = acc
		g.order = append(g.order, key)
	}
	if err := acc.Fold(item); err != nil {
		return groupFailure(err, grouperr.CodeFoldFailed, key)
	}
	return nil
}

// finishInto finishes every group and stores it in out. Nothing is written to
// out unless all groups finish, so a failed grouping never leaks a
// partially-filled container.
func finishInto[T any, K comparable, R any, M Container[K, R]](g *groups[T, K, R], out M) (M, error) {
	results := make([]R, len(g.order))
	for i, key := range g.order {
		r, err := g.accs[key].Finish()
		if err != nil {
			var zero M
			return zero, groupFailure(err, grouperr.CodeFoldFailed, key)
		}
		results[i] = r
	}
	for i, key := range g.order {
		// A container whose ordering is inconsistent with == would merge two
		// finished groups and silently drop one of them.
		if _, dup := out.Get(key); dup {
			var zero M
			return zero, grouperr.New(grouperr.ErrCategoryUser, grouperr.CodeKeyCollision,
				"result container treats distinct keys as equal").
				WithDetail("group %v", key).
				WithOperation("GroupBy", component)
		}
		out.Put(key, results[i])
	}
	return out, nil
}

func groupFailure[K any](err error, code string, key K) error {
	ge := grouperr.Wrap(err, code, "GroupBy", component)
	if ge.Detail == "" {
		ge.WithDetail("group %v", key)
	}
	return ge
}

func pureKey[T any, K any](key func(T) K) func(T) (K, error) {
	return func(item T) (K, error) {
		return key(item), nil
	}
}

// collect is the single-pass grouping algorithm shared by every entry point.
func collect[T any, K comparable, R any, M Container[K, R]](
	op string,
	records iter.Seq[T],
	key func(T) (K, error),
	factory func() M,
	downstream Collector[T, R],
) (M, error) {
	var zero M
	g := newGroups[T, K](downstream)

	n := 0
	for item := range records {
		k, err := key(item)
		if err != nil {
			ge := grouperr.Wrap(err, grouperr.CodeKeyExtractionFailed, op, component)
			ge.WithDetail("record %d", n)
			return zero, ge
		}
		if err := g.add(k, item); err != nil {
			return zero, err
		}
		n++
	}

	out, err := finishInto(g, factory())
	if err != nil {
		return zero, err
	}

	logging.WithOp(component, op).Debug("grouping complete", "records", n, "groups", out.Len())
	return out, nil
}

// GroupBy groups records by key, collecting each group into a slice in input
// order. Empty input yields an empty map.
func GroupBy[T any, K comparable](records []T, key func(T) K) map[K][]T {
	// ToList never fails and key is pure, so the error is always nil.
	out, _ := collect("GroupBy", slices.Values(records), pureKey(key), NewHashMap[K, []T], ToList[T]())
	return out
}

// GroupByWith groups records by key and folds each group with downstream.
func GroupByWith[T any, K comparable, R any](records []T, key func(T) K, downstream Collector[T, R]) (map[K]R, error) {
	out, err := collect("GroupByWith", slices.Values(records), pureKey(key), NewHashMap[K, R], downstream)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GroupByInto is GroupByWith with a caller-supplied result container, e.g.
// TreeMapOf for an ordered result.
func GroupByInto[T any, K comparable, R any, M Container[K, R]](
	records []T,
	key func(T) K,
	factory func() M,
	downstream Collector[T, R],
) (M, error) {
	return collect("GroupByInto", slices.Values(records), pureKey(key), factory, downstream)
}

// GroupBySeq runs the grouping over a finite sequence.
func GroupBySeq[T any, K comparable, R any, M Container[K, R]](
	records iter.Seq[T],
	key func(T) K,
	factory func() M,
	downstream Collector[T, R],
) (M, error) {
	return collect("GroupBySeq", records, pureKey(key), factory, downstream)
}

// TryGroupBy accepts a fallible key extractor. The first extractor error
// aborts the call with a KEY_EXTRACTION_FAILED error and no result.
func TryGroupBy[T any, K comparable, R any, M Container[K, R]](
	records []T,
	key func(T) (K, error),
	factory func() M,
	downstream Collector[T, R],
) (M, error) {
	return collect("TryGroupBy", slices.Values(records), key, factory, downstream)
}

// Grouping is the grouping core as a downstream collector, for nested
// grouping: GroupByWith(xs, byA, Grouping(byB, Counting[T]())) yields a
// map of maps.
func Grouping[T any, K comparable, R any](key func(T) K, downstream Collector[T, R]) Collector[T, map[K]R] {
	return CollectingAndThen(
		GroupingInto(key, NewHashMap[K, R], downstream),
		func(m HashMap[K, R]) map[K]R { return m },
	)
}

// GroupingInto is Grouping with a caller-supplied container.
func GroupingInto[T any, K comparable, R any, M Container[K, R]](
	key func(T) K,
	factory func() M,
	downstream Collector[T, R],
) Collector[T, M] {
	return CollectorFunc[T, M](func() Accumulator[T, M] {
		return &groupingAccumulator[T, K, R, M]{
			key:     key,
			factory: factory,
			groups:  newGroups[T, K](downstream),
		}
	})
}

type groupingAccumulator[T any, K comparable, R any, M Container[K, R]] struct {
	key     func(T) K
	factory func() M
	groups  *groups[T, K, R]
}

func (a *groupingAccumulator[T, K, R, M]) Fold(item T) error {
	return a.groups.add(a.key(item), item)
}

func (a *groupingAccumulator[T, K, R, M]) Finish() (M, error) {
	return finishInto(a.groups, a.factory())
}
