// Package exitcodes defines the process exit codes that report the outcome of a test run.
package exitcodes

// Exit codes passed to the host when a run ends.
//
// * Success (0): every attempted test returned normally
// * TestFailure (1): at least one test failed an assertion or aborted
// * EnvironmentFault (3): a test triggered a runtime fault and the run was terminated
// * RuntimeError (4): the runner itself could not operate (bad parameters, unreadable state)
//
// 2 is left unused: the Go runtime exits with it on an unrecovered panic or fatal error,
// and the supervisor must be able to tell that apart from a deliberate exit.
const (
	Success          = 0
	TestFailure      = 1
	EnvironmentFault = 3
	RuntimeError     = 4
)

// IsProtocol reports whether code is one of the codes a worker exits with deliberately.
func IsProtocol(code int) bool {
	switch code {
	case Success, TestFailure, EnvironmentFault:
		return true
	}
	return false
}
