package main

import (
	"testing"

	"github.com/launchdarkly/resumable-test-runner/runner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadParamsDefaults(t *testing.T) {
	var c commandParams
	require.True(t, c.Read([]string{"runner"}))
	assert.Equal(t, "default", c.suiteName)
	assert.Equal(t, runner.FatalOnEnvFault, c.envFaults)
	assert.False(t, c.isolate)
}

func TestReadParams(t *testing.T) {
	var c commandParams
	require.True(t, c.Read([]string{"runner", "-suite", "process-kill", "-isolate", "-env-faults", "resume",
		"-state-file", "/tmp/state.json", "-json-report", "/tmp/report.json", "-no-color", "-debug", "-debug-all"}))
	assert.Equal(t, commandParams{
		suiteName:  "process-kill",
		isolate:    true,
		stateFile:  "/tmp/state.json",
		envFaults:  runner.ResumeOnEnvFault,
		noColor:    true,
		jsonReport: "/tmp/report.json",
		debug:      true,
		debugAll:   true,
	}, c)
}

func TestReadParamsUnknownSuite(t *testing.T) {
	var c commandParams
	assert.False(t, c.Read([]string{"runner", "-suite", "missing"}))
}
