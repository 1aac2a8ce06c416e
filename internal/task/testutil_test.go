package task

import (
	"errors"
	"testing"
	"time"
)

// memPersister is an in-memory Persister for tests. It records every
// saved snapshot and can be made to fail.
type memPersister struct {
	loadTasks []Task
	loadErr   error
	saveErr   error
	saved     [][]Task
}

func (m *memPersister) Load() ([]Task, error) {
	return m.loadTasks, m.loadErr
}

func (m *memPersister) Save(tasks []Task) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	snapshot := make([]Task, len(tasks))
	copy(snapshot, tasks)
	m.saved = append(m.saved, snapshot)
	return nil
}

// lastSaved returns the most recent snapshot handed to the persister.
func (m *memPersister) lastSaved(t *testing.T) []Task {
	t.Helper()
	if len(m.saved) == 0 {
		t.Fatal("nothing was saved")
	}
	return m.saved[len(m.saved)-1]
}

// newTestStore creates a Store backed by a memPersister, with a
// deterministic clock that advances one second per reading.
func newTestStore(t *testing.T) (*Store, *memPersister) {
	t.Helper()
	mem := &memPersister{}
	store, err := NewStore(mem)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	base := time.Date(2025, 6, 13, 9, 0, 0, 0, time.Local)
	tick := 0
	store.SetNowFunc(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	})
	return store, mem
}

// mustAdd adds a task or fails the test.
func mustAdd(t *testing.T, s *Store, text, day string) Task {
	t.Helper()
	created, err := s.AddTask(text, day)
	if err != nil {
		t.Fatalf("AddTask(%q, %q) error = %v", text, day, err)
	}
	return *created
}

// checkInvariants verifies the cross-record invariants: dense per-day
// ordering of incomplete tasks, unique ids, acyclic links with at most
// one successor per target, and completion/timestamp agreement.
func checkInvariants(t *testing.T, s *Store) {
	t.Helper()
	tasks := s.Tasks()

	ids := make(map[string]bool)
	byDay := make(map[string][]int)
	successors := make(map[string]string)
	for _, task := range tasks {
		if ids[task.ID] {
			t.Fatalf("duplicate id %s", task.ID)
		}
		ids[task.ID] = true

		if !task.Completed {
			byDay[task.Day] = append(byDay[task.Day], task.Order)
		}
		if task.LinkedTo != nil {
			if prev, ok := successors[*task.LinkedTo]; ok {
				t.Fatalf("target %s has two successors: %s and %s", *task.LinkedTo, prev, task.ID)
			}
			successors[*task.LinkedTo] = task.ID
			if task.StartTime != nil {
				t.Fatalf("linked task %s still has a start time", task.ID)
			}
		}
		if task.Completed != (task.CompletedAt != nil) {
			t.Fatalf("task %s: completed=%v but completedAt=%v", task.ID, task.Completed, task.CompletedAt)
		}
	}

	for _, task := range tasks {
		steps := 0
		cur := task
		for cur.LinkedTo != nil {
			next, ok := s.Get(*cur.LinkedTo)
			if !ok {
				t.Fatalf("task %s links to missing task %s", cur.ID, *cur.LinkedTo)
			}
			cur = next
			if steps++; steps > len(tasks) {
				t.Fatalf("cycle reachable from task %s", task.ID)
			}
		}
	}

	// Only days untouched by gaps need to be dense; callers that expect
	// density after a link assert it separately. Here we only require
	// uniqueness of order values per day.
	for day, orders := range byDay {
		seen := make(map[int]bool)
		for _, o := range orders {
			if o < 0 {
				t.Fatalf("day %s has negative order %d", day, o)
			}
			if seen[o] {
				t.Fatalf("day %s has duplicate order %d", day, o)
			}
			seen[o] = true
		}
	}
}

// isValidation reports whether err is a ValidationError.
func isValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
