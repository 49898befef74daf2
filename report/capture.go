package report

import (
	"fmt"
	"sync"

	"github.com/launchdarkly/resumable-test-runner/fault"
)

type EventKind int

const (
	SuiteStartedEvent EventKind = iota
	TestStartedEvent
	TestPassedEvent
	TestFailedEvent
	SummaryEvent
)

// Event is one call made to a Capturing sink.
type Event struct {
	Kind    EventKind
	Index   int
	Name    string
	Size    int
	Fault   *fault.Record
	Summary *Summary
}

// String gives a short form of the event without diagnostics, which is convenient for
// comparing whole runs in tests.
func (e Event) String() string {
	switch e.Kind {
	case SuiteStartedEvent:
		return fmt.Sprintf("suite %d", e.Size)
	case TestStartedEvent:
		return fmt.Sprintf("start %d %s", e.Index, e.Name)
	case TestPassedEvent:
		return fmt.Sprintf("ok %d %s", e.Index, e.Name)
	case TestFailedEvent:
		return fmt.Sprintf("failed %d %s (%s)", e.Index, e.Name, e.Fault.Kind)
	case SummaryEvent:
		return "summary " + e.Summary.String()
	}
	return "?"
}

// Capturing records every event in memory.
type Capturing struct {
	events []Event
	lock   sync.Mutex
}

func (c *Capturing) add(e Event) {
	c.lock.Lock()
	c.events = append(c.events, e)
	c.lock.Unlock()
}

func (c *Capturing) SuiteStarted(size int) {
	c.add(Event{Kind: SuiteStartedEvent, Size: size})
}

func (c *Capturing) TestStarted(index int, name string) {
	c.add(Event{Kind: TestStartedEvent, Index: index, Name: name})
}

func (c *Capturing) TestPassed(index int, name string) {
	c.add(Event{Kind: TestPassedEvent, Index: index, Name: name})
}

func (c *Capturing) TestFailed(rec fault.Record, name string) {
	c.add(Event{Kind: TestFailedEvent, Index: rec.Index, Name: name, Fault: &rec})
}

func (c *Capturing) Summary(s Summary) {
	c.add(Event{Kind: SummaryEvent, Summary: &s})
}

func (c *Capturing) Events() []Event {
	c.lock.Lock()
	ret := append([]Event(nil), c.events...)
	c.lock.Unlock()
	return ret
}

// Lines returns the String form of every event.
func (c *Capturing) Lines() []string {
	var ret []string
	for _, e := range c.Events() {
		ret = append(ret, e.String())
	}
	return ret
}

// Results returns only the pass/fail events, in order.
func (c *Capturing) Results() []Event {
	var ret []Event
	for _, e := range c.Events() {
		if e.Kind == TestPassedEvent || e.Kind == TestFailedEvent {
			ret = append(ret, e)
		}
	}
	return ret
}

// LastSummary returns the most recent summary, or nil if there has not been one.
func (c *Capturing) LastSummary() *Summary {
	events := c.Events()
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Kind == SummaryEvent {
			return events[i].Summary
		}
	}
	return nil
}
