package query

import (
	"errors"
	"io"
	"os"
	"slices"
	"strconv"

	grouperr "groupby/pkg/error"
	"groupby/pkg/people"
	"groupby/pkg/primitives"

	"gopkg.in/yaml.v3"
)

// Key fields a query can group by.
const (
	KeyJobTitle = "jobTitle"
	KeyAge      = "age"
	KeyID       = "id"
)

// Aggregates a query can compute per group.
const (
	AggIDs       = "ids"
	AggCount     = "count"
	AggAges      = "ages"
	AggAvgSalary = "avg-salary"
	AggSumSalary = "sum-salary"
	AggMaxSalary = "max-salary"
	AggMaxAge    = "max-age"
	AggHobbies   = "hobbies"
)

// Result orderings.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
	OrderHash = "hash"
)

var (
	keys       = []string{KeyJobTitle, KeyAge, KeyID}
	aggregates = []string{AggIDs, AggCount, AggAges, AggAvgSalary, AggSumSalary, AggMaxSalary, AggMaxAge, AggHobbies}
	orders     = []string{OrderAsc, OrderDesc, OrderHash}
)

// Filter is a single comparison against a Person field, e.g. age > 30.
type Filter struct {
	Field string `yaml:"field"`
	Op    string `yaml:"op"`
	Value string `yaml:"value"`
}

// Config describes one grouping query.
type Config struct {
	Name string `yaml:"name"`

	// Key is the field records are grouped by.
	Key string `yaml:"key"`

	// ThenBy, when set, groups every group again by a second key and counts
	// the sub-groups. Aggregate must be "count".
	ThenBy string `yaml:"thenBy"`

	Aggregate string `yaml:"aggregate"`
	Order     string `yaml:"order"`

	// Where filters the input before grouping: keys whose records all fail
	// disappear from the result.
	Where *Filter `yaml:"where"`

	// Within filters inside each group: every key stays, possibly with an
	// empty aggregate.
	Within *Filter `yaml:"within"`

	// Default replaces an absent max-salary/max-age.
	Default *int `yaml:"default"`
}

// DefaultConfig groups by job title and counts, in ascending key order.
func DefaultConfig() Config {
	return Config{
		Name:      "staff",
		Key:       KeyJobTitle,
		Aggregate: AggCount,
		Order:     OrderAsc,
	}
}

// LoadConfig decodes a YAML query over base; fields absent from the document
// keep their value in base.
func LoadConfig(r io.Reader, base Config) (Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	cfg := base
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		ge := grouperr.Wrap(err, grouperr.CodeInvalidQuery, "LoadConfig", "query")
		return Config{}, ge
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML query file over base.
func LoadConfigFile(path string, base Config) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		ge := grouperr.Wrap(err, grouperr.CodeLoadFailed, "LoadConfigFile", "query")
		ge.Category = grouperr.ErrCategorySystem
		return Config{}, ge.WithDetail("path %s", path)
	}
	defer f.Close()
	return LoadConfig(f, base)
}

// Validate rejects unknown keys, aggregates, orders and malformed filters.
func (c Config) Validate() error {
	if !slices.Contains(keys, c.Key) {
		return grouperr.InvalidQuery("unknown key %q", c.Key).WithDetail("expected one of %v", keys)
	}
	if !slices.Contains(aggregates, c.Aggregate) {
		return grouperr.InvalidQuery("unknown aggregate %q", c.Aggregate).WithDetail("expected one of %v", aggregates)
	}
	if c.Order != "" && !slices.Contains(orders, c.Order) {
		return grouperr.InvalidQuery("unknown order %q", c.Order).WithDetail("expected one of %v", orders)
	}
	if c.ThenBy != "" {
		if !slices.Contains(keys, c.ThenBy) {
			return grouperr.InvalidQuery("unknown thenBy key %q", c.ThenBy)
		}
		if c.Aggregate != AggCount {
			return grouperr.InvalidQuery("thenBy requires aggregate %q, got %q", AggCount, c.Aggregate)
		}
	}
	for _, f := range []*Filter{c.Where, c.Within} {
		if f == nil {
			continue
		}
		if _, err := f.Predicate(); err != nil {
			return err
		}
	}
	return nil
}

// Predicate compiles the filter. Records lacking the field (a person
// without a salary) never match.
func (f Filter) Predicate() (func(people.Person) bool, error) {
	op, err := primitives.ParsePredicate(f.Op)
	if err != nil {
		return nil, grouperr.InvalidQuery("bad filter on %q", f.Field).WithDetail("%v", err)
	}

	if f.Field == KeyJobTitle {
		return func(p people.Person) bool {
			return primitives.Evaluate(op, p.JobTitle, f.Value)
		}, nil
	}

	want, err := strconv.Atoi(f.Value)
	if err != nil {
		return nil, grouperr.InvalidQuery("filter on %q needs an integer value, got %q", f.Field, f.Value)
	}

	var field func(people.Person) primitives.Optional[int]
	switch f.Field {
	case KeyAge:
		field = func(p people.Person) primitives.Optional[int] { return primitives.Some(p.Age) }
	case KeyID:
		field = func(p people.Person) primitives.Optional[int] { return primitives.Some(p.ID) }
	case "salary":
		field = people.Person.GetSalary
	default:
		return nil, grouperr.InvalidQuery("unknown filter field %q", f.Field)
	}

	return func(p people.Person) bool {
		v, ok := field(p).Get()
		return ok && primitives.Evaluate(op, v, want)
	}, nil
}
