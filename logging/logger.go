package logging

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Logger is the debug logging interface used by the runner and supervisor. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...interface{})
}

type discard struct{}

func (discard) Printf(string, ...interface{}) {}

// NullLogger returns a Logger that drops every message.
func NullLogger() Logger { return discard{} }

// OrNull returns l, or a logger that discards everything if l is nil.
func OrNull(l Logger) Logger {
	if l == nil {
		return discard{}
	}
	return l
}

// Entry is one message held by a Buffer.
type Entry struct {
	Time time.Time
	Text string
}

// Transcript is the debug output of a run, oldest message first.
type Transcript []Entry

func (t Transcript) Messages() []string {
	ret := make([]string, 0, len(t))
	for _, e := range t {
		ret = append(ret, e.Text)
	}
	return ret
}

// Dump writes one line per message, each starting with prefix and the time of day.
func (t Transcript) Dump(dest io.Writer, prefix string) {
	for _, e := range t {
		fmt.Fprintf(dest, "%s%s %s\n", prefix, e.Time.Format("15:04:05.000"), e.Text)
	}
}

// Buffer is a Logger that keeps its messages in memory, for debug output that is only worth
// showing once it is known that the run went wrong.
type Buffer struct {
	entries Transcript
	lock    sync.Mutex
}

func (b *Buffer) Printf(format string, args ...interface{}) {
	e := Entry{Time: time.Now(), Text: fmt.Sprintf(format, args...)}
	b.lock.Lock()
	b.entries = append(b.entries, e)
	b.lock.Unlock()
}

// Transcript returns a copy of everything logged so far.
func (b *Buffer) Transcript() Transcript {
	b.lock.Lock()
	defer b.lock.Unlock()
	return append(Transcript(nil), b.entries...)
}
