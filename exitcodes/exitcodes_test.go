package exitcodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodesAreDistinct(t *testing.T) {
	codes := map[int]bool{}
	for _, c := range []int{Success, TestFailure, EnvironmentFault, RuntimeError} {
		assert.False(t, codes[c], "duplicate exit code %d", c)
		codes[c] = true
	}
	assert.False(t, codes[2], "2 is what the Go runtime uses for a crash")
}

func TestIsProtocol(t *testing.T) {
	assert.True(t, IsProtocol(Success))
	assert.True(t, IsProtocol(TestFailure))
	assert.True(t, IsProtocol(EnvironmentFault))
	assert.False(t, IsProtocol(RuntimeError))
	assert.False(t, IsProtocol(2))
	assert.False(t, IsProtocol(-1))
}
