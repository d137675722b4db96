package aggregation

import (
	"errors"
	"slices"
	"testing"

	grouperr "groupby/pkg/error"
	"groupby/pkg/people"
	"groupby/pkg/primitives"
	"groupby/pkg/utils/functools"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Person = people.Person

func jobTitle(p Person) string { return p.JobTitle }
func age(p Person) int { return p.Age }

func TestGroupBy_DefaultCollectsListsInInputOrder(t *testing.T) {
	p1 := Person{ID: 1, JobTitle: "manager"}
	p2 := Person{ID: 2, JobTitle: "manager"}

	byTitle := GroupBy([]Person{p1, p2}, jobTitle)

	require.Len(t, byTitle, 1)
	assert.Equal(t, []Person{p1, p2}, byTitle["manager"])
}

func TestGroupBy_EmptyInput(t *testing.T) {
	assert.Empty(t, GroupBy(nil, jobTitle))
	assert.NotNil(t, GroupBy([]Person{}, jobTitle))

	collectors := map[string]func() (int, error){
		"list": func() (int, error) {
			m, err := GroupByWith(nil, jobTitle, ToList[Person]())
			return len(m), err
		},
		"count": func() (int, error) {
			m, err := GroupByWith(nil, jobTitle, Counting[Person]())
			return len(m), err
		},
		"average": func() (int, error) {
			m, err := GroupByWith(nil, jobTitle, Averaging(age))
			return len(m), err
		},
		"max": func() (int, error) {
			m, err := GroupByWith(nil, jobTitle, MaxBy(primitives.Comparing(age)))
			return len(m), err
		},
		"nested": func() (int, error) {
			m, err := GroupByWith(nil, jobTitle, Grouping(age, Counting[Person]()))
			return len(m), err
		},
		"tree": func() (int, error) {
			m, err := GroupByInto(nil, jobTitle, TreeMapOf[string, []Person](primitives.Ascending[string]()), ToList[Person]())
			return m.Len(), err
		},
	}

	for name, run := range collectors {
		t.Run(name, func(t *testing.T) {
			n, err := run()
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestGroupBy_PartitionsInput(t *testing.T) {
	staff := people.Sample()
	byTitle := GroupBy(staff, jobTitle)

	var union []Person
	for key, members := range byTitle {
		for _, p := range members {
			assert.Equal(t, key, p.JobTitle, "record routed to the wrong group")
		}
		union = append(union, members...)
	}
	assert.ElementsMatch(t, staff, union)
}

func TestGroupBy_DuplicateRecordsBothKept(t *testing.T) {
	p := Person{ID: 1, JobTitle: "manager"}

	byTitle := GroupBy([]Person{p, p}, jobTitle)
	assert.Len(t, byTitle["manager"], 2)

	sets, err := GroupByWith([]Person{p, p}, jobTitle, ToSetBy(Person.Identity))
	require.NoError(t, err)
	assert.Len(t, sets["manager"], 1)
}

func TestGroupByWith_ToSet(t *testing.T) {
	p1 := Person{ID: 1, JobTitle: "manager"}
	p2 := Person{ID: 1, JobTitle: "manager"}

	byTitle, err := GroupByWith([]Person{p1, p2}, jobTitle, ToSetBy(Person.Identity))
	require.NoError(t, err)

	require.Len(t, byTitle, 1)
	assert.Equal(t, []Person{p1}, byTitle["manager"])

	joined := Person{ID: 1, JobTitle: "manager", Hobbies: []string{"a\x1fb"}}
	split := Person{ID: 1, JobTitle: "manager", Hobbies: []string{"a", "b"}}
	blank := Person{ID: 1, JobTitle: "manager", Hobbies: []string{""}}

	distinct, err := GroupByWith([]Person{p1, joined, split, blank}, jobTitle, ToSetBy(Person.Identity))
	require.NoError(t, err)
	assert.Equal(t, []Person{p1, joined, split, blank}, distinct["manager"], "similar hobby lists are not duplicates")
}

func TestGroupByWith_MappingChangesElementType(t *testing.T) {
	p1 := Person{ID: 1, JobTitle: "manager", Age: 20}
	p2 := Person{ID: 2, JobTitle: "manager", Age: 35}

	ages, err := GroupByWith([]Person{p1, p2}, jobTitle, Mapping(age, ToList[int]()))
	require.NoError(t, err)

	require.Len(t, ages, 1)
	assert.Equal(t, []int{20, 35}, ages["manager"])
}

func TestGroupByInto_DescendingTreeMap(t *testing.T) {
	p1 := Person{ID: 1, JobTitle: "manager"}
	p2 := Person{ID: 2, JobTitle: "manager"}
	p3 := Person{ID: 3, JobTitle: "president"}

	byTitle, err := GroupByInto(
		[]Person{p1, p2, p3},
		jobTitle,
		TreeMapOf[string, []Person](primitives.Descending[string]()),
		ToSetBy(Person.Identity),
	)
	require.NoError(t, err)
	require.Equal(t, 2, byTitle.Len())

	firstKey, first, ok := byTitle.First()
	require.True(t, ok)
	assert.Equal(t, "president", firstKey)
	assert.ElementsMatch(t, []Person{p3}, first)

	lastKey, last, ok := byTitle.Last()
	require.True(t, ok)
	assert.Equal(t, "manager", lastKey)
	assert.ElementsMatch(t, []Person{p1, p2}, last)

	assert.Equal(t, []string{"president", "manager"}, byTitle.Keys())
}

func TestGroupByWith_Counting(t *testing.T) {
	staff := []Person{
		{ID: 1, JobTitle: "manager"},
		{ID: 2, JobTitle: "manager"},
		{ID: 3, JobTitle: "developer"},
	}

	counts, err := GroupByWith(staff, jobTitle, Counting[Person]())
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{"manager": 2, "developer": 1}, counts)
	for key, n := range counts {
		assert.EqualValues(t, len(GroupBy(staff, jobTitle)[key]), n)
	}
}

func TestGroupByWith_NestedGrouping(t *testing.T) {
	staff := []Person{
		{ID: 1, JobTitle: "manager", Age: 10},
		{ID: 2, JobTitle: "manager", Age: 10},
		{ID: 3, JobTitle: "manager", Age: 15},
		{ID: 4, JobTitle: "assistant", Age: 20},
	}

	nested, err := GroupByWith(staff, jobTitle, Grouping(age, Counting[Person]()))
	require.NoError(t, err)

	assert.Equal(t, map[string]map[int]int64{
		"manager":   {10: 2, 15: 1},
		"assistant": {20: 1},
	}, nested)
}

func TestGroupByWith_NestedGroupingIntoTreeMap(t *testing.T) {
	staff := []Person{
		{ID: 1, JobTitle: "manager", Age: 40},
		{ID: 2, JobTitle: "manager", Age: 10},
		{ID: 3, JobTitle: "manager", Age: 25},
	}

	nested, err := GroupByWith(staff, jobTitle,
		GroupingInto(age, TreeMapOf[int, int64](primitives.Ascending[int]()), Counting[Person]()))
	require.NoError(t, err)

	assert.Equal(t, []int{10, 25, 40}, nested["manager"].Keys())
}

func TestGroupByWith_AveragingSalary(t *testing.T) {
	staff := []Person{
		{ID: 1, JobTitle: "manager", Salary: primitives.Some(10)},
		{ID: 2, JobTitle: "manager", Salary: primitives.Some(20)},
	}

	avg, err := GroupByWith(staff, jobTitle, Averaging(func(p Person) int { return p.Salary.OrElse(0) }))
	require.NoError(t, err)

	require.Len(t, avg, 1)
	assert.Equal(t, 15.0, avg["manager"])
}

func TestFiltering_BeforeVersusWithinGrouping(t *testing.T) {
	p1 := Person{ID: 1, JobTitle: "manager", Age: 50}
	p2 := Person{ID: 2, JobTitle: "manager", Age: 20}
	p3 := Person{ID: 3, JobTitle: "developer", Age: 20}
	staff := []Person{p1, p2, p3}

	t.Run("before grouping drops the key", func(t *testing.T) {
		byTitle := GroupBy(functools.Filter(staff, people.OlderThan(30)), jobTitle)

		require.Len(t, byTitle, 1)
		assert.Equal(t, []Person{p1}, byTitle["manager"])
		assert.NotContains(t, byTitle, "developer")
	})

	t.Run("within grouping keeps the key", func(t *testing.T) {
		byTitle, err := GroupByWith(staff, jobTitle, Filtering(people.OlderThan(30), ToList[Person]()))
		require.NoError(t, err)

		require.Len(t, byTitle, 2)
		assert.Equal(t, []Person{p1}, byTitle["manager"])
		require.Contains(t, byTitle, "developer")
		assert.Empty(t, byTitle["developer"])
		assert.NotNil(t, byTitle["developer"])
	})
}

func TestMaxBy_AbsentForEmptyGroup(t *testing.T) {
	staff := []Person{
		{ID: 1, JobTitle: "manager", Salary: primitives.Some(40)},
		{ID: 2, JobTitle: "manager", Salary: primitives.Some(30)},
		{ID: 3, JobTitle: "developer"},
	}

	maxSalary, err := GroupByWith(staff, jobTitle,
		FlatMapping(Person.SalaryValues, MaxBy(primitives.Ascending[int]())))
	require.NoError(t, err)

	require.Len(t, maxSalary, 2)
	assert.Equal(t, 40, maxSalary["manager"].MustGet())
	assert.True(t, maxSalary["developer"].IsEmpty())
}

func TestCollectingAndThen_DefaultForAbsentMax(t *testing.T) {
	staff := []Person{
		{ID: 1, JobTitle: "manager", Age: 10},
		{ID: 2, JobTitle: "manager", Age: 15},
		{ID: 3, JobTitle: "developer", Age: 20},
	}
	orDefault := func(o primitives.Optional[int]) int { return o.OrElse(-1) }

	maxAge, err := GroupByWith(staff, jobTitle,
		Filtering(people.OlderThan(12),
			Mapping(age, CollectingAndThen(MaxBy(primitives.Ascending[int]()), orDefault))))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"manager": 15, "developer": 20}, maxAge)

	maxAge, err = GroupByWith(staff, jobTitle,
		Filtering(people.OlderThan(18),
			Mapping(age, CollectingAndThen(MaxBy(primitives.Ascending[int]()), orDefault))))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"manager": -1, "developer": 20}, maxAge)
}

func TestFlatMapping_Hobbies(t *testing.T) {
	staff := []Person{
		{ID: 1, JobTitle: "manager", Hobbies: []string{"skiing", "football"}},
		{ID: 2, JobTitle: "manager", Hobbies: []string{"music", "films"}},
		{ID: 3, JobTitle: "developer", Hobbies: []string{"RPG", "comics"}},
		{ID: 4, JobTitle: "developer"},
	}

	hobbies, err := GroupByWith(staff, jobTitle, FlatMapping(Person.GetHobbies, ToList[string]()))
	require.NoError(t, err)

	require.Len(t, hobbies, 2)
	assert.ElementsMatch(t, []string{"skiing", "football", "music", "films"}, hobbies["manager"])
	assert.ElementsMatch(t, []string{"RPG", "comics"}, hobbies["developer"])

	lists, err := GroupByWith(staff, jobTitle, Mapping(Person.GetHobbies, ToList[[]string]()))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"skiing", "football"}, {"music", "films"}}, lists["manager"])
}

func TestAveraging_DivisionUndefined(t *testing.T) {
	staff := []Person{
		{ID: 1, JobTitle: "manager", Age: 50},
		{ID: 2, JobTitle: "developer", Age: 20},
	}

	result, err := GroupByWith(staff, jobTitle, Filtering(people.OlderThan(30), Averaging(age)))
	require.Error(t, err)
	assert.Nil(t, result, "no partial result on failure")
	assert.ErrorIs(t, err, grouperr.ErrDivisionUndefined)

	var ge *grouperr.GroupError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, grouperr.ErrCategoryPrecondition, ge.Category)
	assert.Equal(t, "group developer", ge.Detail)
}

func TestTryGroupBy_KeyExtractorErrorAborts(t *testing.T) {
	boom := errors.New("no title")
	calls := 0
	key := func(p Person) (string, error) {
		calls++
		if p.JobTitle == "" {
			return "", boom
		}
		return p.JobTitle, nil
	}
	staff := []Person{{ID: 1, JobTitle: "manager"}, {ID: 2}, {ID: 3, JobTitle: "developer"}}

	result, err := TryGroupBy(staff, key, NewHashMap[string, int64], Counting[Person]())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 2, calls, "grouping must stop at the failing record")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, grouperr.ErrKeyExtractionFailed)
	assert.Contains(t, err.Error(), "record 1")
}

func TestTryFiltering_PredicateErrorAborts(t *testing.T) {
	boom := errors.New("predicate failed")
	pred := func(p Person) (bool, error) {
		if p.ID == 2 {
			return false, boom
		}
		return true, nil
	}
	staff := []Person{{ID: 1, JobTitle: "manager"}, {ID: 2, JobTitle: "manager"}}

	result, err := GroupByWith(staff, jobTitle, TryFiltering(pred, ToList[Person]()))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, grouperr.ErrFoldFailed)
}

func TestTryMapping_SentinelErrorStaysUnchanged(t *testing.T) {
	before := grouperr.ErrDivisionUndefined.Error()
	failing := TryMapping(func(int) (int, error) { return 0, grouperr.ErrDivisionUndefined }, ToList[int]())
	self := func(v int) int { return v }

	_, err := GroupByWith([]int{1}, self, failing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "group 1")

	_, err = GroupByWith([]int{2}, self, failing)
	require.Error(t, err)
	assert.ErrorIs(t, err, grouperr.ErrDivisionUndefined)
	assert.Contains(t, err.Error(), "group 2")
	assert.NotContains(t, err.Error(), "group 1", "detail of an earlier failure must not leak")

	assert.Equal(t, before, grouperr.ErrDivisionUndefined.Error())
	assert.Empty(t, grouperr.ErrDivisionUndefined.Detail)
}

func TestGroupBySeq(t *testing.T) {
	staff := people.Sample()

	bySeq, err := GroupBySeq(slices.Values(staff), jobTitle, NewHashMap[string, int64], Counting[Person]())
	require.NoError(t, err)

	bySlice, err := GroupByWith(staff, jobTitle, Counting[Person]())
	require.NoError(t, err)

	assert.Equal(t, bySlice, map[string]int64(bySeq))
}

func TestGroupBy_Deterministic(t *testing.T) {
	staff := people.Sample()
	collector := Grouping(age, Mapping(func(p Person) int { return p.ID }, ToList[int]()))

	first, err := GroupByWith(staff, jobTitle, collector)
	require.NoError(t, err)
	second, err := GroupByWith(staff, jobTitle, collector)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGroupBy_DoesNotMutateInput(t *testing.T) {
	staff := people.Sample()
	before := slices.Clone(staff)

	_, err := GroupByWith(staff, jobTitle, FlatMapping(Person.GetHobbies, ToList[string]()))
	require.NoError(t, err)

	assert.Equal(t, before, staff)
}
