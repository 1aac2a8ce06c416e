// Package task implements the linkday core: the task collection with
// day-scoped ordering, chain linking between tasks, hashtag extraction,
// and the read-only projections the UI renders from.
package task

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Task is a single tracked item. Tasks are owned by the Store; callers
// always receive copies.
type Task struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Day         string     `json:"day"`       // calendar day key, YYYY-MM-DD
	Order       int        `json:"order"`     // position among incomplete tasks of the same day
	StartTime   *string    `json:"startTime"` // optional wall-clock HH:MM; cleared on link
	LinkedTo    *string    `json:"linkedTo"`  // id of the task this one is chained after
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

// Linked reports whether the task is chained after another task.
func (t *Task) Linked() bool {
	return t.LinkedTo != nil
}

// DayKey formats a time as the calendar-day key tasks are bucketed by.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Tab selects which completion state a filtered listing shows.
type Tab string

const (
	TabActive    Tab = "active"
	TabCompleted Tab = "completed"
	TabTimeline  Tab = "timeline"
)

// ValidationError reports rejected user input (empty task text). The
// mutation did not happen; the caller keeps the prior input so the user
// can correct it.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func newID(now time.Time) (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return fmt.Sprintf("t_%d_%s", now.UnixMilli(), hex.EncodeToString(b[:])), nil
}
