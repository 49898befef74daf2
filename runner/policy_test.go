package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvFaultPolicySet(t *testing.T) {
	var p EnvFaultPolicy
	require.NoError(t, p.Set("resume"))
	assert.Equal(t, ResumeOnEnvFault, p)
	require.NoError(t, p.Set("fatal"))
	assert.Equal(t, FatalOnEnvFault, p)
	assert.Error(t, p.Set("retry"))
}

func TestEnvFaultPolicyString(t *testing.T) {
	assert.Equal(t, "fatal", FatalOnEnvFault.String())
	assert.Equal(t, "resume", ResumeOnEnvFault.String())
	assert.Equal(t, "EnvFaultPolicy(5)", EnvFaultPolicy(5).String())
}

func TestDefaultPolicyIsFatal(t *testing.T) {
	assert.Equal(t, FatalOnEnvFault, Config{}.EnvFaults)
}
