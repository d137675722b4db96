// Package query runs declarative grouping queries over people.
//
// A Config names the grouping key, the per-group aggregate and the result
// order. Run validates it, compiles it into collectors and returns a Report
// whose rows follow the requested order.
package query

import (
	"cmp"
	"fmt"

	grouperr "groupby/pkg/error"
	"groupby/pkg/execution/aggregation"
	"groupby/pkg/logging"
	"groupby/pkg/people"
	"groupby/pkg/utils/functools"
)

// Row is one group of a report.
type Row struct {
	Key   string
	Value string
}

// Report is the rendered result of a query.
type Report struct {
	Title       string
	KeyHeader   string
	ValueHeader string
	Rows        []Row
	Records     int
}

// Run executes cfg over staff.
func Run(cfg Config, staff []people.Person) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logging.WithQuery(cfg.Name)

	records := staff
	if cfg.Where != nil {
		pred, err := cfg.Where.Predicate()
		if err != nil {
			return nil, err
		}
		records = functools.Filter(staff, pred)
		log.Debug("pre-filter applied", "kept", len(records), "dropped", len(staff)-len(records))
	}

	downstream, err := collectorFor(cfg)
	if err != nil {
		return nil, grouperr.InvalidQuery("%v", err)
	}

	var rows []Row
	switch cfg.Key {
	case KeyJobTitle:
		rows, err = run(records, people.Person.GetJobTitle, cfg.Order, downstream)
	case KeyAge:
		rows, err = run(records, people.Person.GetAge, cfg.Order, downstream)
	case KeyID:
		rows, err = run(records, people.Person.GetID, cfg.Order, downstream)
	}
	if err != nil {
		logging.WithError(err).Error("query failed", "query", cfg.Name, "key", cfg.Key)
		return nil, err
	}

	log.Info("query complete", "records", len(records), "groups", len(rows))
	return &Report{
		Title:       cfg.Name,
		KeyHeader:   cfg.Key,
		ValueHeader: valueHeader(cfg),
		Rows:        rows,
		Records:     len(records),
	}, nil
}

func run[K cmp.Ordered](records []people.Person, key func(people.Person) K, order string, downstream formatter) ([]Row, error) {
	factory := func() aggregation.Container[K, string] {
		if order == OrderHash {
			return aggregation.NewHashMap[K, string]()
		}
		return aggregation.NewTreeMap[K, string](comparatorFor[K](order))
	}

	groups, err := aggregation.GroupByInto(records, key, factory, downstream)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, groups.Len())
	for k, v := range groups.All() {
		rows = append(rows, Row{Key: fmt.Sprint(k), Value: v})
	}
	return rows, nil
}

func valueHeader(cfg Config) string {
	if cfg.ThenBy != "" {
		return "count by " + cfg.ThenBy
	}
	return cfg.Aggregate
}
