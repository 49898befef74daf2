package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store persists counters so that a run can be continued by a new process.
type Store interface {
	Load() (Counters, error)
	Save(Counters) error
}

// MemoryStore keeps the last saved counters in memory.
type MemoryStore struct {
	counters Counters
	lock     sync.Mutex
}

func (m *MemoryStore) Load() (Counters, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.counters, nil
}

func (m *MemoryStore) Save(c Counters) error {
	m.lock.Lock()
	m.counters = c
	m.lock.Unlock()
	return nil
}

// FileStore saves counters as JSON in a file. Each Save writes a temporary file in the same
// directory and renames it over the target, so a reader only ever sees a complete record.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Path() string {
	return f.path
}

// Load returns the saved counters, or zero counters if nothing has been saved yet.
func (f *FileStore) Load() (Counters, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Counters{}, nil
		}
		return Counters{}, fmt.Errorf("could not read state file: %w", err)
	}
	var c Counters
	if err := json.Unmarshal(data, &c); err != nil {
		return Counters{}, fmt.Errorf("malformed state file %s: %w", f.path, err)
	}
	return c, nil
}

func (f *FileStore) Save(c Counters) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return writeFileAtomic(f.path, data)
}

// Clear removes the state file so that the next Load starts from zero.
func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not remove state file: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create temporary state file: %w", err)
	}
	tmpName := tmp.Name()
	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("could not write state file %s: %w", path, err)
	}
	return nil
}
