package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/launchdarkly/resumable-test-runner/fault"
)

// Console writes human-readable report lines:
//
//	Running 3 tests
//	[0] addition...	[ok]
//	[1] failing assertion...	[failed]
//	  Error: 2+2==5
//	[2] subtraction...	[ok]
//
//	test result: FAILED. attempted=3, passed=2, failed=1
//
// The "started" half of a line is written before the test runs, so if the process dies inside
// a test the last thing on the console names that test.
type Console struct {
	out   io.Writer
	style Styler
}

func NewConsole(out io.Writer, style Styler) *Console {
	return &Console{out: out, style: style.withDefaults()}
}

func (c *Console) SuiteStarted(size int) {
	fmt.Fprintln(c.out, c.style.Header("Running %d tests", size))
}

func (c *Console) TestStarted(index int, name string) {
	fmt.Fprintf(c.out, "[%d] %s...\t", index, name)
}

func (c *Console) TestPassed(index int, name string) {
	fmt.Fprintln(c.out, c.style.OK("[ok]"))
}

func (c *Console) TestFailed(rec fault.Record, name string) {
	if rec.Kind == fault.Environment {
		fmt.Fprintln(c.out, c.style.Fatal("[%s]", rec.Kind))
	} else {
		fmt.Fprintln(c.out, c.style.Failed("[failed]"))
	}
	for i, line := range strings.Split(strings.TrimRight(rec.Diagnostic, "\n"), "\n") {
		if i == 0 {
			fmt.Fprintf(c.out, "  Error: %s\n", line)
		} else {
			fmt.Fprintf(c.out, "  %s\n", line)
		}
	}
}

func (c *Console) Summary(s Summary) {
	fmt.Fprintln(c.out)
	if s.Fatal != nil {
		fmt.Fprintln(c.out, c.style.Fatal("run terminated by %s in test %d", s.Fatal.Kind, s.Fatal.Index))
	}
	var status string
	if s.OK() {
		status = c.style.OK("ok")
	} else {
		status = c.style.Failed("FAILED")
	}
	fmt.Fprintf(c.out, "test result: %s. %s\n", status, s)
}
