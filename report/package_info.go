// Package report contains the sinks that receive the progress of a test run: a console sink
// that prints styled text, a JSON file sink, and a capturing sink for tests.
//
// The runner only ever talks to the Sink interface, so the way results are presented is
// decided by whoever wires the runner together.
package report
