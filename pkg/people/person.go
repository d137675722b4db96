// Package people holds the Person record grouped by the tests, the sample
// data set and the CLI.
package people

import (
	"fmt"

	"groupby/pkg/primitives"
)

// Person is an immutable staff record. Salary is optional: records without
// one contribute nothing to salary aggregates.
type Person struct {
	ID       int
	JobTitle string
	Age      int
	Salary   primitives.Optional[int]
	Hobbies  []string
}

func (p Person) GetID() int {
	return p.ID
}

func (p Person) GetJobTitle() string {
	return p.JobTitle
}

func (p Person) GetAge() int {
	return p.Age
}

func (p Person) GetSalary() primitives.Optional[int] {
	return p.Salary
}

func (p Person) HasSalary() bool {
	return p.Salary.IsPresent()
}

// SalaryValues returns the salary as a zero- or one-element slice, for
// FlatMapping over records that may lack one.
func (p Person) SalaryValues() []int {
	if s, ok := p.Salary.Get(); ok {
		return []int{s}
	}
	return nil
}

// GetHobbies returns a copy of the hobby list; nil when the person has none.
func (p Person) GetHobbies() []string {
	if len(p.Hobbies) == 0 {
		return nil
	}
	out := make([]string, len(p.Hobbies))
	copy(out, p.Hobbies)
	return out
}

func (p Person) IsOlderThan(age int) bool {
	return p.Age > age
}

// OlderThan returns IsOlderThan as a predicate.
func OlderThan(age int) func(Person) bool {
	return func(p Person) bool {
		return p.IsOlderThan(age)
	}
}

// Identity is a comparable stand-in for Person equality: two people are equal
// when every field, including the hobby list, is equal.
type Identity struct {
	ID       int
	JobTitle string
	Age      int
	Salary   primitives.Optional[int]
	Hobbies  string
}

// Identity encodes the hobby list with its length and every element quoted,
// so distinct lists never share an encoding. A nil list equals an empty one.
func (p Person) Identity() Identity {
	return Identity{
		ID:       p.ID,
		JobTitle: p.JobTitle,
		Age:      p.Age,
		Salary:   p.Salary,
		Hobbies:  fmt.Sprintf("%d:%q", len(p.Hobbies), p.Hobbies),
	}
}

// Equal reports field-wise equality.
func (p Person) Equal(other Person) bool {
	return p.Identity() == other.Identity()
}
