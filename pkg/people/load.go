package people

import (
	"bytes"
	_ "embed"
	"errors"
	"io"
	"os"

	grouperr "groupby/pkg/error"
	"groupby/pkg/primitives"

	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleYAML []byte

type personDoc struct {
	ID       int      `yaml:"id"`
	JobTitle string   `yaml:"jobTitle"`
	Age      int      `yaml:"age"`
	Salary   *int     `yaml:"salary"`
	Hobbies  []string `yaml:"hobbies"`
}

type peopleDoc struct {
	People []personDoc `yaml:"people"`
}

func (d personDoc) toPerson() Person {
	p := Person{
		ID:       d.ID,
		JobTitle: d.JobTitle,
		Age:      d.Age,
		Hobbies:  d.Hobbies,
	}
	if d.Salary != nil {
		p.Salary = primitives.Some(*d.Salary)
	}
	return p
}

// Load decodes a YAML document with a top-level "people" list. Unknown
// fields are rejected.
func Load(r io.Reader) ([]Person, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc peopleDoc
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		ge := grouperr.Wrap(err, grouperr.CodeLoadFailed, "Load", "people")
		ge.Category = grouperr.ErrCategorySystem
		return nil, ge
	}

	out := make([]Person, 0, len(doc.People))
	for _, d := range doc.People {
		out = append(out, d.toPerson())
	}
	return out, nil
}

// LoadFile reads people from a YAML file.
func LoadFile(path string) ([]Person, error) {
	f, err := os.Open(path)
	if err != nil {
		ge := grouperr.Wrap(err, grouperr.CodeLoadFailed, "LoadFile", "people")
		ge.Category = grouperr.ErrCategorySystem
		return nil, ge.WithDetail("path %s", path)
	}
	defer f.Close()
	return Load(f)
}

// Sample returns the bundled demo staff list.
func Sample() []Person {
	staff, err := Load(bytes.NewReader(sampleYAML))
	if err != nil {
		panic("people: bundled sample is invalid: " + err.Error())
	}
	return staff
}
