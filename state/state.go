// Package state holds the execution counters that survive a faulting test: the cursor (index of
// the next test to attempt) and the tally of tests that passed.
package state

import (
	"errors"
	"fmt"
	"sync/atomic"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ErrInvalidCounters is returned when a set of counters violates 0 <= passed <= cursor <= size.
var ErrInvalidCounters = errors.New("invalid execution counters")

// Counters is a point-in-time copy of the execution state.
//
// Finished is set once a runner has reported its summary, and FatalIndex once a run has been
// ended by an environment fault in that test. A process that exits without Finished being saved
// did not leave the run through the runner.
type Counters struct {
	Cursor     int                 `json:"cursor"`
	Passed     int                 `json:"passed"`
	Finished   bool                `json:"finished,omitempty"`
	FatalIndex ldvalue.OptionalInt `json:"fatalIndex"`
}

// Failed is the number of attempted tests that did not pass.
func (c Counters) Failed() int {
	return c.Cursor - c.Passed
}

// Done reports whether every test in a suite of the given size has been attempted.
func (c Counters) Done(size int) bool {
	return c.Cursor >= size
}

// Validate checks the counters against a suite of the given size.
func (c Counters) Validate(size int) error {
	if c.Passed < 0 || c.Passed > c.Cursor || c.Cursor > size {
		return fmt.Errorf("%w: cursor=%d passed=%d suite size=%d", ErrInvalidCounters, c.Cursor, c.Passed, size)
	}
	if i, ok := c.FatalIndex.Get(); ok && (i < 0 || i >= c.Cursor || !c.Finished) {
		return fmt.Errorf("%w: run terminated in test %d with cursor=%d", ErrInvalidCounters, i, c.Cursor)
	}
	return nil
}

func (c Counters) String() string {
	return fmt.Sprintf("cursor=%d passed=%d", c.Cursor, c.Passed)
}

// State is the live execution state. Each counter is updated with a single atomic operation, so
// a fault that unwinds a test at any point can never leave either of them half written.
//
// Only two mutations exist: NextIndex, which marks a test as attempted before it runs, and
// RecordSuccess. Neither counter is ever decremented or reset.
type State struct {
	cursor atomic.Int64
	passed atomic.Int64
}

// New returns a State starting at (0, 0).
func New() *State {
	return &State{}
}

// Restore returns a State that continues from previously saved counters. Only the cursor and
// the passed count are restored; the terminal fields belong to whoever ended the run.
func Restore(c Counters) *State {
	s := &State{}
	s.cursor.Store(int64(c.Cursor))
	s.passed.Store(int64(c.Passed))
	return s
}

// NextIndex advances the cursor and returns its previous value: the index of the test that
// is about to be attempted.
func (s *State) NextIndex() int {
	return int(s.cursor.Add(1) - 1)
}

// RecordSuccess increments the count of passed tests.
func (s *State) RecordSuccess() {
	s.passed.Add(1)
}

// Cursor returns the index of the next test to attempt.
func (s *State) Cursor() int {
	return int(s.cursor.Load())
}

// Snapshot returns both counters.
func (s *State) Snapshot() Counters {
	// passed is only ever incremented after cursor has moved past the same test, so reading it
	// first keeps passed <= cursor in the result.
	passed := s.passed.Load()
	cursor := s.cursor.Load()
	return Counters{Cursor: int(cursor), Passed: int(passed)}
}
