package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	grouperr "groupby/pkg/error"
	"groupby/pkg/logging"
	"groupby/pkg/people"
	"groupby/pkg/query"
	"groupby/pkg/ui"

	"github.com/namsral/flag"
)

const envPrefix = "GROUPBY"

// Configuration is everything the command line can set. Every flag can also
// come from the environment as GROUPBY_<FLAG>, e.g. GROUPBY_KEY=age.
type Configuration struct {
	PeopleFile string
	QueryFile  string
	LogLevel   string
	LogFormat  string
	LogFile    string
	Plain      bool
	Query      query.Config
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the process exit, returning the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	config, err := parseArguments(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprint(stderr, ui.Error(err))
		if errors.Is(err, grouperr.ErrLoadFailed) {
			return 1
		}
		return 2
	}

	if err := initLogging(config, stderr); err != nil {
		fmt.Fprint(stderr, ui.Error(err))
		return 2
	}
	defer logging.Close()

	staff, err := loadPeople(config.PeopleFile)
	if err != nil {
		logging.WithError(err).Error("loading people failed", "path", config.PeopleFile)
		fmt.Fprint(stderr, ui.Error(err))
		return 1
	}

	report, err := query.Run(config.Query, staff)
	if err != nil {
		fmt.Fprint(stderr, ui.Error(err))
		if errors.Is(err, grouperr.ErrInvalidQuery) {
			return 2
		}
		return 1
	}

	if err := ui.WriteReport(stdout, report, ui.Options{Plain: config.Plain}); err != nil {
		logging.WithError(err).Error("writing report failed")
		return 1
	}
	return 0
}

// parseArguments processes command-line flags. A query file, when given,
// provides the base query; flags that are set explicitly override it.
func parseArguments(args []string, output io.Writer) (Configuration, error) {
	var config Configuration
	var olderThan, onlyOlderThan, defaultValue int
	q := query.DefaultConfig()

	fs := flag.NewFlagSetWithEnvPrefix("groupby", envPrefix, flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&config.PeopleFile, "people", "", "YAML file of people; the built-in sample when empty")
	fs.StringVar(&config.QueryFile, "query", "", "YAML query file")
	fs.StringVar(&config.LogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	fs.StringVar(&config.LogFormat, "log-format", "text", "Log format: text or json")
	fs.StringVar(&config.LogFile, "log-file", "", "Write logs to this file instead of stderr")
	fs.BoolVar(&config.Plain, "plain", false, "Print tab-separated rows without styling")

	fs.StringVar(&q.Name, "name", q.Name, "Report title")
	fs.StringVar(&q.Key, "key", q.Key, "Group by: jobTitle, age, id")
	fs.StringVar(&q.ThenBy, "then-by", "", "Group each group again by this key and count")
	fs.StringVar(&q.Aggregate, "aggregate", q.Aggregate, "Per-group aggregate: ids, count, ages, avg-salary, sum-salary, max-salary, max-age, hobbies")
	fs.StringVar(&q.Order, "order", q.Order, "Key order: asc, desc, hash")
	fs.IntVar(&olderThan, "older-than", 0, "Drop people not older than this before grouping")
	fs.IntVar(&onlyOlderThan, "only-older-than", 0, "Aggregate only people older than this, keeping every group")
	fs.IntVar(&defaultValue, "default", 0, "Value reported for an absent maximum")

	if err := fs.Parse(args); err != nil {
		return config, err
	}
	if fs.NArg() > 0 {
		return config, grouperr.InvalidQuery("unexpected arguments %v", fs.Args())
	}

	base := query.DefaultConfig()
	if config.QueryFile != "" {
		loaded, err := query.LoadConfigFile(config.QueryFile, base)
		if err != nil {
			return config, err
		}
		base = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			base.Name = q.Name
		case "key":
			base.Key = q.Key
		case "then-by":
			base.ThenBy = q.ThenBy
		case "aggregate":
			base.Aggregate = q.Aggregate
		case "order":
			base.Order = q.Order
		case "older-than":
			base.Where = ageAbove(olderThan)
		case "only-older-than":
			base.Within = ageAbove(onlyOlderThan)
		case "default":
			base.Default = &defaultValue
		}
	})
	config.Query = base

	return config, base.Validate()
}

func ageAbove(age int) *query.Filter {
	return &query.Filter{Field: query.KeyAge, Op: ">", Value: strconv.Itoa(age)}
}

func initLogging(config Configuration, stderr io.Writer) error {
	level, err := logging.ParseLevel(config.LogLevel)
	if err != nil {
		return grouperr.InvalidQuery("%v", err)
	}
	if config.LogFormat != "text" && config.LogFormat != "json" {
		return grouperr.InvalidQuery("unknown log format %q", config.LogFormat)
	}

	// A logger left over from an earlier run in the same process is replaced.
	_ = logging.Close()
	return logging.Init(logging.Config{
		Level:      level,
		OutputPath: config.LogFile,
		Writer:     stderr,
		Format:     config.LogFormat,
	})
}

func loadPeople(path string) ([]people.Person, error) {
	if path == "" {
		return people.Sample(), nil
	}
	return people.LoadFile(path)
}
