package suite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func noop() {}

func TestEmptySuite(t *testing.T) {
	var s Suite
	assert.Equal(t, 0, s.Len())
	assert.Len(t, s.Cases(), 0)
	assert.Equal(t, 0, New().Len())
	assert.Equal(t, 0, (&Builder{}).Build().Len())
}

func TestSuiteKeepsDeclarationOrder(t *testing.T) {
	s := New(
		TestCase{Name: "c", Func: noop},
		TestCase{Name: "a", Func: noop},
		TestCase{Name: "b", Func: noop},
	)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"c", "a", "b"}, s.Names())
	assert.Equal(t, "a", s.At(1).Name)
}

func TestSuiteAllowsDuplicateNames(t *testing.T) {
	s := (&Builder{}).Add("same", noop).Add("same", noop).Build()
	assert.Equal(t, []string{"same", "same"}, s.Names())
}

func TestSuiteIsNotAffectedByCallerChanges(t *testing.T) {
	cases := []TestCase{{Name: "first", Func: noop}}
	s := New(cases...)
	cases[0].Name = "changed"
	assert.Equal(t, "first", s.At(0).Name)

	copied := s.Cases()
	copied[0].Name = "changed again"
	assert.Equal(t, "first", s.At(0).Name)
}

func TestBuilderIsNotAffectedByLaterAdds(t *testing.T) {
	b := &Builder{}
	b.Add("one", noop)
	s := b.Build()
	b.Add("two", noop)
	assert.Equal(t, 1, s.Len())
}
