package report

import (
	"fmt"

	"github.com/launchdarkly/resumable-test-runner/fault"
)

// Sink receives report events in the order they happen. One TestFailed call is made per
// failure; TestPassed and TestFailed are never both called for the same index.
type Sink interface {
	SuiteStarted(size int)
	TestStarted(index int, name string)
	TestPassed(index int, name string)
	TestFailed(rec fault.Record, name string)
	Summary(s Summary)
}

// Summary is the final tally of a run. Fatal is set if the run was cut short by an environment fault.
type Summary struct {
	Attempted int
	Passed    int
	Failed    int
	Fatal     *fault.Record
}

func (s Summary) OK() bool {
	return s.Failed == 0 && s.Fatal == nil
}

func (s Summary) String() string {
	return fmt.Sprintf("attempted=%d, passed=%d, failed=%d", s.Attempted, s.Passed, s.Failed)
}

type nullSink struct{}

func (nullSink) SuiteStarted(int)                {}
func (nullSink) TestStarted(int, string)         {}
func (nullSink) TestPassed(int, string)          {}
func (nullSink) TestFailed(fault.Record, string) {}
func (nullSink) Summary(Summary)                 {}

// NullSink returns a Sink that discards everything.
func NullSink() Sink { return nullSink{} }

// OrNull returns s, or a Sink that discards everything if s is nil.
func OrNull(s Sink) Sink {
	if s == nil {
		return nullSink{}
	}
	return s
}

type multiSink []Sink

// Multi returns a Sink that forwards every event to each of the given sinks in turn.
func Multi(sinks ...Sink) Sink {
	var ms multiSink
	for _, s := range sinks {
		if s != nil {
			ms = append(ms, s)
		}
	}
	return ms
}

func (ms multiSink) SuiteStarted(size int) {
	for _, s := range ms {
		s.SuiteStarted(size)
	}
}

func (ms multiSink) TestStarted(index int, name string) {
	for _, s := range ms {
		s.TestStarted(index, name)
	}
}

func (ms multiSink) TestPassed(index int, name string) {
	for _, s := range ms {
		s.TestPassed(index, name)
	}
}

func (ms multiSink) TestFailed(rec fault.Record, name string) {
	for _, s := range ms {
		s.TestFailed(rec, name)
	}
}

func (ms multiSink) Summary(summary Summary) {
	for _, s := range ms {
		s.Summary(summary)
	}
}
