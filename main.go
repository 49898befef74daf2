package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/launchdarkly/resumable-test-runner/examplesuite"
	"github.com/launchdarkly/resumable-test-runner/exitcodes"
	"github.com/launchdarkly/resumable-test-runner/logging"
	"github.com/launchdarkly/resumable-test-runner/report"
	"github.com/launchdarkly/resumable-test-runner/runner"
	"github.com/launchdarkly/resumable-test-runner/state"
	"github.com/launchdarkly/resumable-test-runner/suite"
	"github.com/launchdarkly/resumable-test-runner/supervisor"

	"github.com/fatih/color"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(exitcodes.RuntimeError)
	}
	testSuite, _ := examplesuite.Lookup(params.suiteName)

	debugLogger := logging.NullLogger()
	var debugBuffer *logging.Buffer
	switch {
	case params.debugAll:
		debugLogger = log.New(os.Stderr, "", log.LstdFlags)
	case params.debug:
		debugBuffer = &logging.Buffer{}
		debugLogger = debugBuffer
	}

	style := report.ColorStyler()
	if params.noColor {
		color.NoColor = true
		style = report.PlainStyler()
	}
	sinks := []report.Sink{report.NewConsole(os.Stdout, style)}
	var jsonReport *report.JSONFile
	if params.jsonReport != "" {
		jsonReport = report.NewJSONFile(params.jsonReport)
		sinks = append(sinks, jsonReport)
	}
	runnerConfig := runner.Config{
		Sink:      report.Multi(sinks...),
		EnvFaults: params.envFaults,
		Exit: func(code int) {
			if jsonReport != nil && jsonReport.Err() != nil {
				fmt.Fprintf(os.Stderr, "Report error: %s\n", jsonReport.Err())
			}
			dumpDebugOutput(debugBuffer, code, os.Stderr)
			os.Exit(code)
		},
		Logger: debugLogger,
	}

	if stateFile, ok := supervisor.WorkerStateFile(); ok {
		code, err := supervisor.RunWorker(testSuite, runnerConfig, stateFile)
		dumpDebugOutput(debugBuffer, code, os.Stderr)
		exitWithError(code, err)
	}

	if params.isolate {
		code, err := runSupervisor(params, testSuite, runnerConfig, debugLogger)
		if err == nil && jsonReport != nil {
			err = jsonReport.Err()
		}
		if err != nil {
			dumpDebugOutput(debugBuffer, exitcodes.RuntimeError, os.Stderr)
		} else {
			dumpDebugOutput(debugBuffer, code, os.Stderr)
		}
		exitWithError(code, err)
	}

	if params.stateFile != "" {
		runnerConfig.Store = state.NewFileStore(params.stateFile)
	}
	r, err := runner.New(runnerConfig)
	if err != nil {
		exitWithError(exitcodes.RuntimeError, err)
	}
	res, err := r.Run(testSuite)
	if err != nil {
		dumpDebugOutput(debugBuffer, exitcodes.RuntimeError, os.Stderr)
	}
	exitWithError(res.ExitCode, err)
}

// dumpDebugOutput shows the buffered debug output of a run that did not succeed. Each worker
// process of an isolated run dumps its own output; the supervisor's output includes the deaths
// of workers that could not.
func dumpDebugOutput(buf *logging.Buffer, code int, dest io.Writer) {
	if buf == nil || code == exitcodes.Success {
		return
	}
	buf.Transcript().Dump(dest, "DEBUG ")
}

func runSupervisor(params commandParams, testSuite suite.Suite, cfg runner.Config, logger logging.Logger) (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return exitcodes.RuntimeError, err
	}
	stateFile := params.stateFile
	if stateFile == "" {
		dir, err := os.MkdirTemp("", "resumable-test-runner")
		if err != nil {
			return exitcodes.RuntimeError, err
		}
		defer os.RemoveAll(dir)
		stateFile = filepath.Join(dir, "state.json")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return supervisor.Run(ctx, supervisor.Config{
		Command:   append([]string{exe}, os.Args[1:]...),
		StateFile: stateFile,
		Suite:     testSuite,
		Sink:      cfg.Sink,
		Logger:    logger,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	})
}

func exitWithError(code int, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Test runner error: %s\n", err)
		if code == exitcodes.Success {
			code = exitcodes.RuntimeError
		}
	}
	os.Exit(code)
}
