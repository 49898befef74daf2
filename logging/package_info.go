// Package logging contains the debug logging types shared by the runner and the supervisor.
//
// Debug output is separate from test reporting: report lines go to a report.Sink, while
// messages written here describe what the engine itself is doing (state transitions,
// worker processes) and are only shown when debug output is enabled.
package logging
