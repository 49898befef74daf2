package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/launchdarkly/resumable-test-runner/examplesuite"
	"github.com/launchdarkly/resumable-test-runner/runner"
)

type commandParams struct {
	suiteName  string
	isolate    bool
	stateFile  string
	envFaults  runner.EnvFaultPolicy
	noColor    bool
	jsonReport string
	debug      bool
	debugAll   bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.suiteName, "suite", examplesuite.DefaultSuite,
		"suite to run ("+strings.Join(examplesuite.Names(), ", ")+")")
	fs.BoolVar(&c.isolate, "isolate", false, "run tests in worker processes so that a test which exits the process does not end the run")
	fs.StringVar(&c.stateFile, "state-file", "", "file for the execution counters; a run started with an existing file continues from it")
	fs.Var(&c.envFaults, "env-faults", `what to do after an environment fault: "fatal" or "resume"`)
	fs.BoolVar(&c.noColor, "no-color", false, "disable colored output")
	fs.StringVar(&c.jsonReport, "json-report", "", "also write a JSON report to this file")
	fs.BoolVar(&c.debug, "debug", false, "show debug logging if the run does not succeed")
	fs.BoolVar(&c.debugAll, "debug-all", false, "show all debug logging as it happens")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if _, ok := examplesuite.Lookup(c.suiteName); !ok {
		fmt.Fprintf(os.Stderr, "unknown suite %q\n", c.suiteName)
		fs.Usage()
		return false
	}
	return true
}
