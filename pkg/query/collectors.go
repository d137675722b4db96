package query

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"groupby/pkg/execution/aggregation"
	"groupby/pkg/people"
	"groupby/pkg/primitives"

	"github.com/shopspring/decimal"
)

type (
	person    = people.Person
	formatter = aggregation.Collector[person, string]
)

func salaryDecimal(p person) decimal.Decimal {
	return decimal.NewFromInt(int64(p.GetSalary().OrElse(0)))
}

// collectorFor builds the per-group aggregate of c, rendered as text.
func collectorFor(c Config) (formatter, error) {
	var agg formatter
	switch c.Aggregate {
	case AggIDs:
		agg = aggregation.Mapping(
			func(p person) string { return strconv.Itoa(p.ID) },
			aggregation.Joining(", "),
		)

	case AggCount:
		if c.ThenBy != "" {
			agg = nestedCount(c.ThenBy, c.Order)
			break
		}
		agg = aggregation.CollectingAndThen(aggregation.Counting[person](), func(n int64) string {
			return strconv.FormatInt(n, 10)
		})

	case AggAges:
		agg = aggregation.Mapping(people.Person.GetAge,
			aggregation.CollectingAndThen(aggregation.ToSet[int](), sortedJoin[int]))

	case AggAvgSalary:
		agg = aggregation.Filtering(people.Person.HasSalary,
			aggregation.CollectingAndThen(aggregation.AveragingDecimal(salaryDecimal), func(d decimal.Decimal) string {
				return d.StringFixed(2)
			}))

	case AggSumSalary:
		agg = aggregation.CollectingAndThen(aggregation.SummingDecimal(salaryDecimal), decimal.Decimal.String)

	case AggMaxSalary:
		agg = aggregation.FlatMapping(people.Person.SalaryValues,
			aggregation.CollectingAndThen(aggregation.MaxBy(primitives.Ascending[int]()), optionalText(c.Default)))

	case AggMaxAge:
		agg = aggregation.Mapping(people.Person.GetAge,
			aggregation.CollectingAndThen(aggregation.MaxBy(primitives.Ascending[int]()), optionalText(c.Default)))

	case AggHobbies:
		agg = aggregation.FlatMapping(people.Person.GetHobbies,
			aggregation.CollectingAndThen(aggregation.ToSet[string](), sortedJoin[string]))

	default:
		return nil, fmt.Errorf("no collector for aggregate %q", c.Aggregate)
	}

	if c.Within != nil {
		pred, err := c.Within.Predicate()
		if err != nil {
			return nil, err
		}
		agg = aggregation.Filtering(pred, agg)
	}
	return agg, nil
}

func optionalText(def *int) func(primitives.Optional[int]) string {
	return func(o primitives.Optional[int]) string {
		if v, ok := o.Get(); ok {
			return strconv.Itoa(v)
		}
		if def != nil {
			return strconv.Itoa(*def)
		}
		return "-"
	}
}

func sortedJoin[T cmp.Ordered](s primitives.Set[T]) string {
	values := s.Values()
	slices.Sort(values)
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

// nestedCount groups each group again by key and counts the sub-groups,
// rendering them as "sub:count" pairs in the query's key order.
func nestedCount(key, order string) formatter {
	switch key {
	case KeyJobTitle:
		return countBy(people.Person.GetJobTitle, order)
	case KeyAge:
		return countBy(people.Person.GetAge, order)
	default:
		return countBy(people.Person.GetID, order)
	}
}

func countBy[K cmp.Ordered](key func(person) K, order string) formatter {
	inner := aggregation.GroupingInto(key, aggregation.TreeMapOf[K, int64](comparatorFor[K](order)), aggregation.Counting[person]())
	return aggregation.CollectingAndThen(inner, func(m *aggregation.TreeMap[K, int64]) string {
		parts := make([]string, 0, m.Len())
		for k, n := range m.All() {
			parts = append(parts, fmt.Sprintf("%v:%d", k, n))
		}
		return strings.Join(parts, ", ")
	})
}

func comparatorFor[K cmp.Ordered](order string) primitives.Comparator[K] {
	if order == OrderDesc {
		return primitives.Descending[K]()
	}
	return primitives.Ascending[K]()
}
