package report

import (
	"fmt"

	"github.com/fatih/color"
)

// Styler decorates the status words of console output.
type Styler struct {
	OK     func(format string, args ...interface{}) string
	Failed func(format string, args ...interface{}) string
	Fatal  func(format string, args ...interface{}) string
	Header func(format string, args ...interface{}) string
}

// ColorStyler uses terminal colors. fatih/color turns itself off when output is not a terminal.
func ColorStyler() Styler {
	return Styler{
		OK:     color.New(color.FgGreen).SprintfFunc(),
		Failed: color.New(color.FgRed).SprintfFunc(),
		Fatal:  color.New(color.FgRed, color.Bold).SprintfFunc(),
		Header: color.New(color.FgCyan).SprintfFunc(),
	}
}

// PlainStyler leaves text unchanged.
func PlainStyler() Styler {
	return Styler{OK: fmt.Sprintf, Failed: fmt.Sprintf, Fatal: fmt.Sprintf, Header: fmt.Sprintf}
}

func (s Styler) withDefaults() Styler {
	if s.OK == nil {
		s.OK = fmt.Sprintf
	}
	if s.Failed == nil {
		s.Failed = fmt.Sprintf
	}
	if s.Fatal == nil {
		s.Fatal = fmt.Sprintf
	}
	if s.Header == nil {
		s.Header = fmt.Sprintf
	}
	return s
}
