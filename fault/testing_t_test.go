package fault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireEqualThroughT(t *testing.T) {
	rec := Capture(0, func() {
		require.Equal(T{}, 5, 2+2, "This test should fail")
	})
	require.NotNil(t, rec)
	assert.Equal(t, Assertion, rec.Kind)
	assert.Contains(t, rec.Diagnostic, "This test should fail")
	assert.Contains(t, rec.Diagnostic, "expected: 5")
}

func TestAssertThroughTStopsTheTest(t *testing.T) {
	reachedEnd := false
	rec := Capture(0, func() {
		assert.True(T{}, false, "This boolean assertion should fail")
		reachedEnd = true
	})
	require.NotNil(t, rec)
	assert.Equal(t, Assertion, rec.Kind)
	assert.Contains(t, rec.Diagnostic, "This boolean assertion should fail")
	assert.False(t, reachedEnd)
}

func TestPassingAssertionsThroughT(t *testing.T) {
	assert.Nil(t, Capture(0, func() {
		require.Equal(T{}, 4, 2+2)
		assert.NotEqual(T{}, 1, 2)
	}))
}

func TestFailNowThroughT(t *testing.T) {
	rec := Capture(0, func() { T{}.FailNow() })
	require.NotNil(t, rec)
	assert.Equal(t, "test failed with no failure message", rec.Diagnostic)
}
