package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/launchdarkly/resumable-test-runner/fault"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// JSONReport is the document written by JSONFile.
type JSONReport struct {
	Size    int          `json:"size"`
	Tests   []JSONTest   `json:"tests"`
	Summary *JSONSummary `json:"summary,omitempty"`
}

type JSONTest struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	Result     string `json:"result"`
	Kind       string `json:"kind,omitempty"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

type JSONSummary struct {
	Attempted  int                 `json:"attempted"`
	Passed     int                 `json:"passed"`
	Failed     int                 `json:"failed"`
	OK         bool                `json:"ok"`
	FatalIndex ldvalue.OptionalInt `json:"fatalIndex"`
}

const (
	resultOK     = "ok"
	resultFailed = "failed"
)

// JSONFile keeps a JSON report file up to date as events arrive. The file is re-read before
// every update, so a run that is continued by a new process keeps adding to the same report
// instead of starting over; only SuiteStarted, which happens once per run, starts a new file.
//
// Sink methods cannot return errors, so the first error is kept and returned by Err.
type JSONFile struct {
	path string
	err  error
	lock sync.Mutex
}

func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

func (j *JSONFile) Err() error {
	j.lock.Lock()
	defer j.lock.Unlock()
	return j.err
}

func (j *JSONFile) SuiteStarted(size int) {
	j.update(func(r *JSONReport) {
		*r = JSONReport{Size: size, Tests: []JSONTest{}}
	})
}

func (j *JSONFile) TestStarted(index int, name string) {}

func (j *JSONFile) TestPassed(index int, name string) {
	j.update(func(r *JSONReport) {
		r.Tests = append(r.Tests, JSONTest{Index: index, Name: name, Result: resultOK})
	})
}

func (j *JSONFile) TestFailed(rec fault.Record, name string) {
	j.update(func(r *JSONReport) {
		r.Tests = append(r.Tests, JSONTest{
			Index:      rec.Index,
			Name:       name,
			Result:     resultFailed,
			Kind:       rec.Kind.String(),
			Diagnostic: rec.Diagnostic,
		})
	})
}

func (j *JSONFile) Summary(s Summary) {
	j.update(func(r *JSONReport) {
		js := &JSONSummary{Attempted: s.Attempted, Passed: s.Passed, Failed: s.Failed, OK: s.OK()}
		if s.Fatal != nil {
			js.FatalIndex = ldvalue.NewOptionalInt(s.Fatal.Index)
		}
		r.Summary = js
	})
}

// update rewrites the whole report for each event. The file is read back every time rather
// than kept in memory because in an isolated run each worker process, and the supervisor, has
// its own JSONFile for the same path, and each continues the report the previous one left.
func (j *JSONFile) update(fn func(*JSONReport)) {
	j.lock.Lock()
	defer j.lock.Unlock()
	if j.err != nil {
		return
	}
	r, err := ReadJSONReport(j.path)
	if err == nil {
		fn(&r)
		err = j.write(r)
	}
	j.err = err
}

func (j *JSONFile) write(r JSONReport) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(j.path), filepath.Base(j.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}
	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), j.path)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("could not write report %s: %w", j.path, err)
	}
	return nil
}

// ReadJSONReport reads a report written by JSONFile. A missing file is an empty report.
func ReadJSONReport(path string) (JSONReport, error) {
	var r JSONReport
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return r, nil
		}
		return r, fmt.Errorf("could not read report: %w", err)
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("malformed report %s: %w", path, err)
	}
	return r, nil
}
