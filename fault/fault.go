// Package fault defines how a test signals failure and how the runner classifies the ways a
// test can stop without returning.
//
// A failing test never returns to its caller. Assertion failures and explicit aborts are
// raised as panics carrying a *Failure; runtime faults such as a nil pointer dereference
// arrive as runtime.Error panics from the Go runtime. Classify turns whatever was recovered
// into a Record that the runner reports.
package fault

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Kind is the class of a test failure.
type Kind int

const (
	// Assertion means the test detected a violated expectation.
	Assertion Kind = iota
	// Aborted means the test stopped deliberately, or panicked with a value of its own.
	Aborted
	// Environment means an operation inside the test was trapped by the runtime. It is not
	// raised by the test's own failure logic and ends the whole run under the default policy.
	Environment
)

func (k Kind) String() string {
	switch k {
	case Assertion:
		return "assertion failure"
	case Aborted:
		return "aborted"
	case Environment:
		return "environment fault"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Recoverable reports whether a failure of this kind is confined to the test that raised it.
func (k Kind) Recoverable() bool {
	return k != Environment
}

// Failure is the panic value used to signal a test failure.
type Failure struct {
	Kind    Kind
	Message string
}

func (f *Failure) Error() string {
	if f.Message == "" {
		return f.Kind.String()
	}
	return f.Message
}

// Record describes one failed test. It is created when the failure is caught and handed
// straight to the reporting sink.
type Record struct {
	Index      int
	Kind       Kind
	Diagnostic string
}

func (r Record) String() string {
	return fmt.Sprintf("[%d] %s: %s", r.Index, r.Kind, r.Diagnostic)
}

// Fail ends the current test with an assertion failure.
func Fail(format string, args ...interface{}) {
	panic(&Failure{Kind: Assertion, Message: fmt.Sprintf(format, args...)})
}

// Assert ends the current test with an assertion failure if cond is false.
func Assert(cond bool, format string, args ...interface{}) {
	if !cond {
		Fail(format, args...)
	}
}

// Abort ends the current test without a specific assertion.
func Abort(reason string) {
	panic(&Failure{Kind: Aborted, Message: reason})
}

// Trap raises an environment fault, as if the runtime had trapped an illegal operation.
func Trap(format string, args ...interface{}) {
	panic(&Failure{Kind: Environment, Message: fmt.Sprintf(format, args...)})
}

// Classify converts a value recovered from a test into a Record for the test at index.
// stack is the stack trace at the point of recovery; it is only included for panics that did
// not come from this package, since those are the ones where the location is not obvious.
func Classify(index int, recovered interface{}, stack []byte) Record {
	rec := Record{Index: index}
	switch v := recovered.(type) {
	case *Failure:
		if v == nil {
			rec.Kind = Aborted
			rec.Diagnostic = "test panicked with a nil *fault.Failure"
			return rec
		}
		rec.Kind = v.Kind
		rec.Diagnostic = v.Error()
		return rec
	case *runtime.PanicNilError:
		rec.Kind = Aborted
		rec.Diagnostic = v.Error()
	case runtime.Error:
		rec.Kind = Environment
		rec.Diagnostic = v.Error()
	default:
		rec.Kind = Aborted
		rec.Diagnostic = fmt.Sprintf("unexpected panic in test: %+v", v)
	}
	if len(stack) > 0 {
		rec.Diagnostic += "\n" + string(stack)
	}
	return rec
}

// Capture runs fn and returns nil if it returned normally, or a Record describing how it
// failed. fn runs on a goroutine of its own, so that a test which ends its goroutine with
// runtime.Goexit (as testing.T.FailNow does) is reported as aborted instead of taking the
// caller's goroutine with it.
func Capture(index int, fn func()) *Record {
	done := make(chan *Record, 1)
	go func() {
		returned := false
		defer func() {
			r := recover()
			switch {
			case r != nil:
				classified := Classify(index, r, debug.Stack())
				done <- &classified
			case !returned:
				done <- &Record{Index: index, Kind: Aborted, Diagnostic: "test called runtime.Goexit"}
			default:
				done <- nil
			}
		}()
		if fn == nil {
			Abort("test has no body")
		}
		fn()
		returned = true
	}()
	return <-done
}
