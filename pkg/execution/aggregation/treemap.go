package aggregation

import (
	"iter"

	"groupby/pkg/primitives"

	"github.com/google/btree"
)

// treeDegree is the B-tree branching factor; groups are few, so a small
// degree keeps nodes compact.
const treeDegree = 8

type treeEntry[K, V any] struct {
	key   K
	value V
}

// TreeMap is a container ordered by a caller-supplied comparator, so the
// ordering policy is chosen per call and never globally.
//
// Example (descending job titles):
//
//	byTitle, err := aggregation.GroupByInto(staff, people.Person.GetJobTitle,
//	    aggregation.TreeMapOf[string, []people.Person](primitives.Descending[string]()),
//	    aggregation.ToList[people.Person]())
//	first, _, _ := byTitle.First()
type TreeMap[K comparable, V any] struct {
	tree *btree.BTreeG[treeEntry[K, V]]
}

// NewTreeMap creates an empty TreeMap ordered by compare.
func NewTreeMap[K comparable, V any](compare primitives.Comparator[K]) *TreeMap[K, V] {
	less := func(a, b treeEntry[K, V]) bool {
		return compare(a.key, b.key) < 0
	}
	return &TreeMap[K, V]{
		tree: btree.NewG(treeDegree, less),
	}
}

// TreeMapOf returns a container factory for GroupByInto and GroupingInto.
func TreeMapOf[K comparable, V any](compare primitives.Comparator[K]) func() *TreeMap[K, V] {
	return func() *TreeMap[K, V] {
		return NewTreeMap[K, V](compare)
	}
}

// Put inserts or replaces the entry for key. Keys the comparator considers
// equal share one entry.
func (m *TreeMap[K, V]) Put(key K, value V) {
	m.tree.ReplaceOrInsert(treeEntry[K, V]{key: key, value: value})
}

func (m *TreeMap[K, V]) Get(key K) (V, bool) {
	e, ok := m.tree.Get(treeEntry[K, V]{key: key})
	return e.value, ok
}

func (m *TreeMap[K, V]) Len() int {
	return m.tree.Len()
}

// First returns the lowest entry according to the comparator.
func (m *TreeMap[K, V]) First() (K, V, bool) {
	e, ok := m.tree.Min()
	return e.key, e.value, ok
}

// Last returns the highest entry according to the comparator.
func (m *TreeMap[K, V]) Last() (K, V, bool) {
	e, ok := m.tree.Max()
	return e.key, e.value, ok
}

// Keys returns the keys in comparator order.
func (m *TreeMap[K, V]) Keys() []K {
	keys := make([]K, 0, m.tree.Len())
	m.tree.Ascend(func(e treeEntry[K, V]) bool {
		keys = append(keys, e.key)
		return true
	})
	return keys
}

// Values returns the values in key order.
func (m *TreeMap[K, V]) Values() []V {
	values := make([]V, 0, m.tree.Len())
	m.tree.Ascend(func(e treeEntry[K, V]) bool {
		values = append(values, e.value)
		return true
	})
	return values
}

func (m *TreeMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.tree.Ascend(func(e treeEntry[K, V]) bool {
			return yield(e.key, e.value)
		})
	}
}
