package task

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Persister is the storage boundary: it loads the task collection once at
// startup and receives the full collection after every mutation. The
// mechanism behind it (disk, remote, test fake) is irrelevant here.
type Persister interface {
	Load() ([]Task, error)
	Save(tasks []Task) error
}

// Store owns the in-memory task collection and its invariants. All access
// goes through its methods; the mutex serializes mutators so the
// cross-record ordering and chain invariants hold even when operations
// arrive from multiple goroutines (the TUI runs storage commands off the
// event loop).
//
// Persistence failures are surfaced as errors but never roll back the
// in-memory mutation: for the rest of the session memory is the source of
// truth.
type Store struct {
	mu      sync.Mutex
	tasks   []*Task
	persist Persister
	now     func() time.Time
	onError func(error)
}

// NewStore loads the collection from p. If loading fails the store still
// starts with whatever p could recover (typically empty); the error is
// returned so the caller can log it, not to abort startup.
func NewStore(p Persister) (*Store, error) {
	s := &Store{persist: p, now: time.Now}

	loaded, err := p.Load()
	for i := range loaded {
		t := loaded[i]
		s.tasks = append(s.tasks, &t)
	}
	if err != nil {
		return s, fmt.Errorf("load tasks: %w", err)
	}
	return s, nil
}

// SetNowFunc overrides the clock used for timestamps. Passing nil resets
// it to time.Now.
func (s *Store) SetNowFunc(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// SetErrorSink installs a callback invoked whenever a mutation fails to
// persist. The error is still returned from the mutator; the sink exists
// so a single place (stderr, a log file) sees every persistence failure
// even when callers only show the latest one.
func (s *Store) SetErrorSink(sink func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onError = sink
}

// Now returns the current time according to the store clock.
func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now()
}

// AddTask creates a task for the given day. The new task is appended at
// the end of the day's incomplete ordering.
func (s *Store) AddTask(text, day string) (*Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Reason: "task text is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	id, err := newID(now)
	if err != nil {
		return nil, err
	}

	t := &Task{
		ID:        id,
		Text:      text,
		Day:       day,
		Order:     s.incompleteCountLocked(day),
		CreatedAt: now,
	}
	s.tasks = append(s.tasks, t)

	out := *t
	return &out, s.saveLocked()
}

// ToggleComplete flips a task's completion state, stamping or clearing
// CompletedAt. Unknown ids are a no-op. Completion deliberately leaves the
// day's order values gapped; only a link operation renumbers a day.
func (s *Store) ToggleComplete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findLocked(id)
	if t == nil {
		return nil
	}

	if t.Completed {
		t.Completed = false
		t.CompletedAt = nil
	} else {
		t.Completed = true
		at := s.now()
		t.CompletedAt = &at
	}
	return s.saveLocked()
}

// DeleteTask removes a task. Any task chained after the deleted one has
// its link cleared so the chain graph stays valid. Unknown ids are a
// no-op.
func (s *Store) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, t := range s.tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	for _, t := range s.tasks {
		if t.LinkedTo != nil && *t.LinkedTo == id {
			t.LinkedTo = nil
		}
	}
	return s.saveLocked()
}

// UpdateText replaces a task's text. Unknown ids are a no-op.
func (s *Store) UpdateText(id, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return &ValidationError{Reason: "task text is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findLocked(id)
	if t == nil {
		return nil
	}
	t.Text = text
	return s.saveLocked()
}

// SetStartTime sets or clears (empty string) a task's wall-clock start
// time. Linking clears it again; the two are exclusive in practice but
// only the link operation enforces that.
func (s *Store) SetStartTime(id, hhmm string) error {
	hhmm = strings.TrimSpace(hhmm)
	if hhmm != "" {
		if _, err := time.Parse("15:04", hhmm); err != nil {
			return &ValidationError{Reason: fmt.Sprintf("invalid time %q: expected HH:MM", hhmm)}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findLocked(id)
	if t == nil {
		return nil
	}
	if hhmm == "" {
		t.StartTime = nil
	} else {
		t.StartTime = &hhmm
	}
	return s.saveLocked()
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findLocked(id)
	if t == nil {
		return Task{}, false
	}
	return *t, true
}

// Tasks returns a copy of the full collection in insertion order.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *Store) findLocked(id string) *Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *Store) incompleteCountLocked(day string) int {
	n := 0
	for _, t := range s.tasks {
		if t.Day == day && !t.Completed {
			n++
		}
	}
	return n
}

// incompleteByOrderLocked returns the day's incomplete tasks sorted by
// their order values.
func (s *Store) incompleteByOrderLocked(day string) []*Task {
	var bucket []*Task
	for _, t := range s.tasks {
		if t.Day == day && !t.Completed {
			bucket = append(bucket, t)
		}
	}
	sort.SliceStable(bucket, func(i, j int) bool {
		return bucket[i].Order < bucket[j].Order
	})
	return bucket
}

func (s *Store) snapshotLocked() []Task {
	out := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = *t
	}
	return out
}

func (s *Store) saveLocked() error {
	if err := s.persist.Save(s.snapshotLocked()); err != nil {
		err = fmt.Errorf("save tasks: %w", err)
		if s.onError != nil {
			s.onError(err)
		}
		return err
	}
	return nil
}
