package supervisor

import (
	"github.com/launchdarkly/resumable-test-runner/exitcodes"
	"github.com/launchdarkly/resumable-test-runner/runner"
	"github.com/launchdarkly/resumable-test-runner/state"
	"github.com/launchdarkly/resumable-test-runner/suite"
)

// RunWorker runs the worker side of a supervised run: it continues the suite from the
// counters in stateFile, saving them there as it goes. cfg.Store is replaced.
//
// With cfg.Exit set to os.Exit, RunWorker only returns on error.
func RunWorker(s suite.Suite, cfg runner.Config, stateFile string) (int, error) {
	cfg.Store = state.NewFileStore(stateFile)
	r, err := runner.New(cfg)
	if err != nil {
		return exitcodes.RuntimeError, err
	}
	res, err := r.Run(s)
	return res.ExitCode, err
}
