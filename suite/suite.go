// Package suite contains the test registry: an ordered, fixed list of named test functions.
package suite

// Thunk is the body of one test. Returning normally means the test passed; any other way
// of leaving the function (a panic, or the process exiting) means it failed.
type Thunk func()

// TestCase is a single named test. The name is a display label and does not have to be unique.
type TestCase struct {
	Name string
	Func Thunk
}

// Suite is an immutable ordered list of test cases. The zero value is an empty suite.
type Suite struct {
	cases []TestCase
}

// New builds a Suite from the given cases, in the given order. The slice is copied, so
// later changes by the caller do not affect the suite.
func New(cases ...TestCase) Suite {
	return Suite{cases: append([]TestCase(nil), cases...)}
}

// Len returns the number of test cases.
func (s Suite) Len() int {
	return len(s.cases)
}

// At returns the test case at index i. It panics if i is out of range, like a slice index.
func (s Suite) At(i int) TestCase {
	return s.cases[i]
}

// Cases returns a copy of the test cases in declaration order.
func (s Suite) Cases() []TestCase {
	return append([]TestCase(nil), s.cases...)
}

// Names returns the test names in declaration order.
func (s Suite) Names() []string {
	ret := make([]string, 0, len(s.cases))
	for _, c := range s.cases {
		ret = append(ret, c.Name)
	}
	return ret
}

// Builder accumulates test cases before a run. It is not safe to use after Build has been
// called, since the built Suite is meant to be final.
type Builder struct {
	cases []TestCase
}

func (b *Builder) Add(name string, thunk Thunk) *Builder {
	b.cases = append(b.cases, TestCase{Name: name, Func: thunk})
	return b
}

func (b *Builder) Build() Suite {
	return New(b.cases...)
}
