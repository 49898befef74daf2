// Package runner executes a suite of tests in which any test may fail by never returning.
//
// The runner keeps its progress in a state.State. Before a test is invoked its index is
// committed as attempted, so that whatever happens inside the test, resuming the run starts
// at the following test: no test is run twice and none is skipped. A test that fails is
// handed to the fault handler, which reports it and either resumes the run from the current
// cursor or, for an environment fault, ends it.
package runner

import (
	"fmt"

	"github.com/launchdarkly/resumable-test-runner/exitcodes"
	"github.com/launchdarkly/resumable-test-runner/fault"
	"github.com/launchdarkly/resumable-test-runner/logging"
	"github.com/launchdarkly/resumable-test-runner/report"
	"github.com/launchdarkly/resumable-test-runner/state"
	"github.com/launchdarkly/resumable-test-runner/suite"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Config holds the collaborators of a Runner. All fields are optional.
type Config struct {
	// Sink receives report events. If nil, nothing is reported.
	Sink report.Sink
	// Store persists the counters after every change. If set, the Runner starts from the
	// counters it loads from the Store instead of from zero.
	Store state.Store
	// EnvFaults is the policy for environment faults; the default ends the run.
	EnvFaults EnvFaultPolicy
	// Exit is called with the exit code when a run completes or is terminated. Normally this
	// is os.Exit, in which case Run never returns for a finished run.
	Exit func(code int)
	// Logger receives debug output.
	Logger logging.Logger
}

// Result is the outcome of a run.
type Result struct {
	report.Summary
	ExitCode int
}

// Runner runs a suite. The same Runner, or a new one restored from the same Store, can be
// asked to run the suite again; it only ever continues from where the last attempt stopped.
type Runner struct {
	state      *state.State
	store      state.Store
	sink       report.Sink
	policy     EnvFaultPolicy
	exit       func(int)
	logger     logging.Logger
	finished   bool
	terminated *fault.Record
}

// New creates a Runner. It fails only if counters cannot be loaded from cfg.Store.
//
// If the stored counters say that the run was ended by an environment fault, the new Runner
// is terminated too: running it again reports the same summary without running any test.
func New(cfg Config) (*Runner, error) {
	r := &Runner{
		state:  state.New(),
		store:  cfg.Store,
		sink:   report.OrNull(cfg.Sink),
		policy: cfg.EnvFaults,
		exit:   cfg.Exit,
		logger: logging.OrNull(cfg.Logger),
	}
	if cfg.Store != nil {
		c, err := cfg.Store.Load()
		if err != nil {
			return nil, err
		}
		r.state = state.Restore(c)
		r.finished = c.Finished
		if i, ok := c.FatalIndex.Get(); ok {
			// The diagnostic was reported by the process that hit the fault.
			r.terminated = &fault.Record{Index: i, Kind: fault.Environment}
		}
	}
	return r, nil
}

// Counters returns the current execution counters, including whether the run has finished.
func (r *Runner) Counters() state.Counters {
	c := r.state.Snapshot()
	c.Finished = r.finished
	if r.terminated != nil {
		c.FatalIndex = ldvalue.NewOptionalInt(r.terminated.Index)
	}
	return c
}

// Run runs every test that has not been attempted yet, in declaration order, then reports
// the summary and calls the exit function. Calling Run again after the suite has finished
// runs nothing and reports the same summary again.
//
// An error is returned only if the counters do not fit the suite or cannot be persisted; in
// that case the exit function is not called.
func (r *Runner) Run(s suite.Suite) (Result, error) {
	start := r.Counters()
	if err := start.Validate(s.Len()); err != nil {
		return Result{ExitCode: exitcodes.RuntimeError}, err
	}
	if r.terminated != nil {
		return r.finish(r.terminated)
	}
	if start.Cursor == 0 {
		r.sink.SuiteStarted(s.Len())
	}
	for r.state.Cursor() < s.Len() {
		rec, err := r.attempt(s)
		if err != nil {
			return Result{Summary: r.summary(nil), ExitCode: exitcodes.RuntimeError}, err
		}
		if rec != nil && !r.handleFault(*rec, s.At(rec.Index).Name) {
			r.terminated = rec
			return r.finish(rec)
		}
	}
	return r.finish(nil)
}

// attempt runs the test at the cursor. It returns the failure record if the test did not
// return normally.
func (r *Runner) attempt(s suite.Suite) (*fault.Record, error) {
	i := r.state.NextIndex()
	if err := r.persist(); err != nil {
		return nil, err
	}
	tc := s.At(i)
	r.sink.TestStarted(i, tc.Name)
	if rec := fault.Capture(i, tc.Func); rec != nil {
		return rec, nil
	}
	r.state.RecordSuccess()
	if err := r.persist(); err != nil {
		return nil, err
	}
	r.sink.TestPassed(i, tc.Name)
	return nil, nil
}

// handleFault is where every failed test ends up. The failure is always reported first. It
// returns true if the run should resume with the next test; the cursor has already moved past
// the failed one, so resuming cannot retry it.
func (r *Runner) handleFault(rec fault.Record, name string) bool {
	r.sink.TestFailed(rec, name)
	if rec.Kind.Recoverable() {
		r.logger.Printf("Test %d failed (%s); resuming at %d", rec.Index, rec.Kind, r.state.Cursor())
		return true
	}
	if r.policy == ResumeOnEnvFault {
		r.logger.Printf("Test %d hit an environment fault; resuming at %d as configured", rec.Index, r.state.Cursor())
		return true
	}
	r.logger.Printf("Test %d hit an environment fault; terminating the run", rec.Index)
	return false
}

// finish saves the counters as finished, reports the summary and calls the exit function. fatal
// is nil for a run that completed.
func (r *Runner) finish(fatal *fault.Record) (Result, error) {
	res := Result{Summary: r.summary(fatal)}
	r.finished = true
	if err := r.persist(); err != nil {
		return Result{Summary: res.Summary, ExitCode: exitcodes.RuntimeError}, err
	}
	switch {
	case fatal != nil:
		res.ExitCode = exitcodes.EnvironmentFault
	case res.Passed == res.Attempted:
		res.ExitCode = exitcodes.Success
	default:
		res.ExitCode = exitcodes.TestFailure
	}
	r.sink.Summary(res.Summary)
	r.logger.Printf("Run finished with %s, exit code %d", r.state.Snapshot(), res.ExitCode)
	if r.exit != nil {
		r.exit(res.ExitCode)
	}
	return res, nil
}

func (r *Runner) summary(fatal *fault.Record) report.Summary {
	c := r.state.Snapshot()
	return report.Summary{Attempted: c.Cursor, Passed: c.Passed, Failed: c.Failed(), Fatal: fatal}
}

func (r *Runner) persist() error {
	if r.store == nil {
		return nil
	}
	c := r.Counters()
	if err := r.store.Save(c); err != nil {
		return fmt.Errorf("could not save execution state (%s): %w", c, err)
	}
	return nil
}

// Run is a shortcut for running a suite once in memory with the given sink and no exit function.
func Run(s suite.Suite, sink report.Sink) Result {
	r, _ := New(Config{Sink: sink})
	res, _ := r.Run(s)
	return res
}
