// Package supervisor runs a suite in worker processes, for tests that can take down the whole
// process (os.Exit, a fatal runtime error, a panic on another goroutine) rather than just panic.
//
// The supervisor starts the current program again as a worker, with the path of a state file
// in its environment. The worker runs the suite with its counters persisted to that file.
// If the worker dies, the supervisor reads the file, reports the test at cursor-1 as failed,
// and starts a new worker, which carries on from the cursor.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/launchdarkly/resumable-test-runner/exitcodes"
	"github.com/launchdarkly/resumable-test-runner/fault"
	"github.com/launchdarkly/resumable-test-runner/logging"
	"github.com/launchdarkly/resumable-test-runner/report"
	"github.com/launchdarkly/resumable-test-runner/state"
	"github.com/launchdarkly/resumable-test-runner/suite"

	"github.com/alessio/shellescape"
)

// EnvStateFile is the environment variable that tells a process it is a worker, and where
// its state file is.
const EnvStateFile = "RESUMABLE_TEST_RUNNER_STATE_FILE"

// WorkerStateFile returns the state file path if this process was started as a worker.
func WorkerStateFile() (string, bool) {
	path := os.Getenv(EnvStateFile)
	return path, path != ""
}

type Config struct {
	// Command is the program and arguments used to start a worker.
	Command []string
	// Env is added to the supervisor's own environment for each worker.
	Env []string
	// StateFile is where workers keep their counters. It is removed before the first worker starts.
	StateFile string
	// Suite must be the same suite the worker runs; it is used to name tests that killed a worker.
	Suite suite.Suite
	// Sink receives failures of tests that killed a worker.
	Sink   report.Sink
	Logger logging.Logger
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts workers until one of them finishes the run, and returns its exit code. A worker
// has finished the run only if it saved its counters as finished; any other exit, including one
// with a code from the exit protocol, is a death of the test it was running.
//
// An error is returned, with exitcodes.RuntimeError, if a worker cannot be started, the state
// file cannot be read, or a worker dies without a test to blame for it.
func Run(ctx context.Context, cfg Config) (int, error) {
	if len(cfg.Command) == 0 {
		return exitcodes.RuntimeError, errors.New("no worker command")
	}
	sink := report.OrNull(cfg.Sink)
	logger := logging.OrNull(cfg.Logger)
	store := state.NewFileStore(cfg.StateFile)
	if err := store.Clear(); err != nil {
		return exitcodes.RuntimeError, err
	}

	for worker := 1; ; worker++ {
		before, err := store.Load()
		if err != nil {
			return exitcodes.RuntimeError, err
		}
		logger.Printf("Starting worker %d at %s: %s", worker, before, commandLine(cfg.Command))
		code, status, err := runWorker(ctx, cfg)
		if err != nil {
			return exitcodes.RuntimeError, err
		}

		after, err := store.Load()
		if err != nil {
			return exitcodes.RuntimeError, err
		}
		if err := after.Validate(cfg.Suite.Len()); err != nil {
			return exitcodes.RuntimeError, err
		}
		if after.Finished {
			if !exitcodes.IsProtocol(code) {
				return exitcodes.RuntimeError, fmt.Errorf("test worker exited (%s) after finishing the run", status)
			}
			logger.Printf("Worker %d finished with exit code %d", worker, code)
			return code, nil
		}
		if after.Cursor == before.Cursor {
			return exitcodes.RuntimeError, fmt.Errorf("test worker exited (%s) before attempting test %d", status, after.Cursor)
		}
		if after.Passed == after.Cursor {
			return exitcodes.RuntimeError, fmt.Errorf("test worker exited (%s) after test %d had passed", status, after.Cursor-1)
		}

		index := after.Cursor - 1
		rec := fault.Record{
			Index:      index,
			Kind:       fault.Aborted,
			Diagnostic: fmt.Sprintf("test process exited: %s", status),
		}
		sink.TestFailed(rec, cfg.Suite.At(index).Name)
		logger.Printf("Worker %d died in test %d (%s); resuming at %d", worker, index, status, after.Cursor)
	}
}

// runWorker runs one worker to completion. It returns the exit code and a description of how
// the worker exited.
func runWorker(ctx context.Context, cfg Config) (int, string, error) {
	cmd := exec.CommandContext(ctx, cfg.Command[0], cfg.Command[1:]...)
	cmd.Env = append(append(os.Environ(), cfg.Env...), EnvStateFile+"="+cfg.StateFile)
	cmd.Stdout = cfg.Stdout
	cmd.Stderr = cfg.Stderr
	err := cmd.Run()
	if err == nil {
		return exitcodes.Success, cmd.ProcessState.String(), nil
	}
	if ctx.Err() != nil {
		return exitcodes.RuntimeError, "", ctx.Err()
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return exitcodes.RuntimeError, "", fmt.Errorf("could not start test worker: %w", err)
	}
	return exitErr.ExitCode(), exitErr.Error(), nil
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

func commandLine(args []string) string {
	var b commandBuilder
	b.add(args...)
	return b.String()
}
