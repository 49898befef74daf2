// Package examplesuite contains small demonstration suites for the command line tool. They
// show each way a test can end: passing, failing an assertion, aborting, triggering a
// runtime fault, and terminating the process.
package examplesuite

import (
	"os"
	"sort"

	"github.com/launchdarkly/resumable-test-runner/fault"
	"github.com/launchdarkly/resumable-test-runner/suite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	DefaultSuite     = "default"
	EnvFaultSuite    = "env-fault"
	ProcessKillSuite = "process-kill"
)

var suites = map[string]func() suite.Suite{
	DefaultSuite:     Default,
	EnvFaultSuite:    WithEnvFault,
	ProcessKillSuite: WithProcessKill,
}

// Lookup returns the named suite.
func Lookup(name string) (suite.Suite, bool) {
	build, ok := suites[name]
	if !ok {
		return suite.Suite{}, false
	}
	return build(), true
}

// Names lists the available suites.
func Names() []string {
	var ret []string
	for name := range suites {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

func addition() {
	result := 2 + 2
	require.Equal(fault.T{}, 4, result)
}

func subtraction() {
	result := 5 - 3
	require.Equal(fault.T{}, 2, result)
}

func failingAssertion() {
	require.Equal(fault.T{}, 5, 2+2, "This test should fail")
}

func failingBoolean() {
	assert.True(fault.T{}, false, "This boolean assertion should fail")
}

func explicitPanic() {
	panic("This test should panic explicitly")
}

type device struct {
	registers []uint32
}

var unmapped *device

func nilDereference() {
	unmapped.registers[0] = 1
}

func exitProcess() {
	os.Exit(7)
}

// Default has two passing tests followed by three that fail in different ways.
func Default() suite.Suite {
	return (&suite.Builder{}).
		Add("addition", addition).
		Add("subtraction", subtraction).
		Add("failing assertion", failingAssertion).
		Add("failing boolean", failingBoolean).
		Add("explicit panic", explicitPanic).
		Build()
}

// WithEnvFault is Default with a runtime fault in the middle, which ends the run under the
// default policy.
func WithEnvFault() suite.Suite {
	return (&suite.Builder{}).
		Add("addition", addition).
		Add("nil dereference", nilDereference).
		Add("subtraction", subtraction).
		Build()
}

// WithProcessKill includes a test that exits the process. Without -isolate it ends the whole
// run; with it, the supervisor reports the test as failed and continues.
func WithProcessKill() suite.Suite {
	return (&suite.Builder{}).
		Add("addition", addition).
		Add("exit process", exitProcess).
		Add("failing assertion", failingAssertion).
		Add("subtraction", subtraction).
		Build()
}
