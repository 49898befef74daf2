package fault

import (
	"fmt"
	"strings"
)

// T lets test bodies use the testify assert and require packages. Any failed assertion ends
// the test immediately, even one made with assert rather than require, because a test that
// has failed cannot keep running here.
//
//	require.Equal(fault.T{}, 4, 2+2)
type T struct{}

func (T) Errorf(format string, args ...interface{}) {
	panic(&Failure{Kind: Assertion, Message: strings.TrimSpace(fmt.Sprintf(format, args...))})
}

func (T) FailNow() {
	panic(&Failure{Kind: Assertion, Message: "test failed with no failure message"})
}

func (T) Helper() {}
