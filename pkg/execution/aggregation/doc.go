// Package aggregation groups in-memory records by a derived key and folds
// every group with a composable downstream Collector.
//
// # Grouping
//
// GroupBy and its variants make a single pass over the input in order. The
// key of each record selects its group; a group's Accumulator is created the
// first time its key is seen. After the pass every accumulator is finished
// and the results are stored in the result container:
//
//	byTitle := aggregation.GroupBy(staff, people.Person.GetJobTitle) // map[string][]Person
//
//	counts, err := aggregation.GroupByWith(staff, people.Person.GetJobTitle,
//	    aggregation.Counting[people.Person]())
//
// # Collectors
//
// A Collector creates Accumulators with three steps: init (NewAccumulator),
// fold (Fold) and finish (Finish). Collectors compose by wrapping:
//
//	aggregation.Mapping(people.Person.GetAge,
//	    aggregation.CollectingAndThen(
//	        aggregation.MaxBy(primitives.Ascending[int]()),
//	        func(o primitives.Optional[int]) int { return o.OrElse(-1) }))
//
// Nested grouping is a Collector too: Grouping(byAge, Counting[Person]())
// used as the downstream of GroupByWith yields a map of maps.
//
// # Filtering
//
// Filtering the input before grouping (functools.Filter) drops keys whose
// records all fail the predicate. Filtering inside a collector (Filtering)
// keeps every observed key and maps it to the inner collector's empty result.
//
// # Result containers
//
// The default container is an unordered HashMap. GroupByInto and
// GroupingInto take a factory instead; TreeMapOf builds an ordered one:
//
//	aggregation.TreeMapOf[string, []Person](primitives.Descending[string]())
//
// # Errors
//
// Absent values (MaxBy on an empty group) are primitives.Optional, not
// errors. Averaging over zero records fails with DIVISION_UNDEFINED. Any
// fold, finish or key-extraction error aborts the whole call and no partial
// result is returned.
package aggregation
