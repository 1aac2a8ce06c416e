// Package storage persists the task collection as a single JSON file in
// the data directory. It is the persistence adapter behind the task
// store: load once at startup, save after every mutation.
//
// The file holds a UTF-8 JSON array of task records. Older files may
// lack the createdAt/completedAt fields; those are normalized at load
// time. A malformed file never aborts startup: the loader falls back to
// the .bak copy if one parses, otherwise moves the broken file aside and
// starts empty, reporting what happened through the returned error.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"linkday/internal/fsutil"
	"linkday/internal/task"
)

const (
	// TasksFile is the fixed name of the data file.
	TasksFile = "tasks.json"

	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600
)

// Store reads and writes the task collection under a data directory.
type Store struct {
	dataDir string
	now     func() time.Time // injectable clock for deterministic tests
}

// New creates the data directory if needed and seeds an empty data file
// on first run.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &Store{dataDir: dataDir, now: time.Now}
	if _, err := os.Stat(s.path()); os.IsNotExist(err) {
		if err := s.Save(nil); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// SetNowFunc overrides the clock used to default missing timestamps.
// Passing nil resets it to time.Now.
func (s *Store) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// DataDir returns the path to the data directory.
func (s *Store) DataDir() string {
	return s.dataDir
}

func (s *Store) path() string {
	return filepath.Join(s.dataDir, TasksFile)
}

// Load reads the task collection. The returned slice is always usable,
// even when an error is returned: a parse failure yields the recovered
// or empty collection plus an error describing the recovery for the
// caller to log.
func (s *Store) Load() ([]task.Task, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return []task.Task{}, nil
		}
		return []task.Task{}, fmt.Errorf("read %s: %w", TasksFile, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s.recover(fmt.Errorf("%s is empty", TasksFile))
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return s.recover(fmt.Errorf("parse %s: %w", TasksFile, err))
	}
	if tasks == nil {
		// A lone "null" parses fine; keep the contract of a usable slice.
		tasks = []task.Task{}
	}
	return s.normalize(tasks), nil
}

// Save writes the full collection atomically, keeping a .bak of the
// previous contents.
func (s *Store) Save(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s: %w", TasksFile, err)
	}

	fsutil.KeepBackup(s.path(), dataFilePerm)
	if err := fsutil.WriteAtomic(s.path(), data, dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", TasksFile, err)
	}
	return nil
}

// recover handles an unreadable data file: prefer the .bak copy, move
// the broken file aside either way, and reset the file to whatever was
// recovered. The cause is folded into the returned error; the collection
// itself is always valid.
func (s *Store) recover(cause error) ([]task.Task, error) {
	path := s.path()
	asidePath := fmt.Sprintf("%s.corrupt.%s", path, s.now().Format("20060102-150405"))

	if bakData, err := os.ReadFile(path + ".bak"); err == nil {
		var tasks []task.Task
		if err := json.Unmarshal(bakData, &tasks); err == nil {
			_ = os.Rename(path, asidePath)
			tasks = s.normalize(tasks)
			_ = s.Save(tasks)
			return tasks, fmt.Errorf("%s (recovered from %s.bak)", cause.Error(), TasksFile)
		}
	}

	_ = os.Rename(path, asidePath)
	_ = s.Save(nil)
	return []task.Task{}, fmt.Errorf("%s (reset; original moved to %s)", cause.Error(), asidePath)
}

// normalize repairs records written by older schema versions: a missing
// createdAt defaults to now, and the completed flag and completedAt
// timestamp are forced to agree.
func (s *Store) normalize(tasks []task.Task) []task.Task {
	now := s.now()
	for i := range tasks {
		t := &tasks[i]
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		if !t.Completed {
			t.CompletedAt = nil
		} else if t.CompletedAt == nil {
			at := t.CreatedAt
			t.CompletedAt = &at
		}
		if t.Order < 0 {
			t.Order = 0
		}
	}
	return tasks
}
