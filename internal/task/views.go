package task

// Read-only projections consumed by the presentation layer. Everything
// here returns copies; the UI never reaches into the collection itself.

import (
	"fmt"
	"sort"
	"time"
)

// FilteredTasks returns the tasks for one day matching the tab's
// completion state, optionally narrowed to tasks carrying at least one of
// the filter hashtags, sorted ascending by order.
func (s *Store) FilteredTasks(day string, tab Tab, tags []string) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	wantCompleted := tab != TabActive

	var out []Task
	for _, t := range s.tasks {
		if t.Day != day || t.Completed != wantCompleted {
			continue
		}
		if !hasAnyTag(t, tags) {
			continue
		}
		out = append(out, *t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// TimelineGroup is one calendar day of the completion timeline.
type TimelineGroup struct {
	Date  string // YYYY-MM-DD of the completions
	Label string // long-form display date
	Tasks []Task // most recently completed first
}

// TimelineGroups returns completed tasks grouped by the calendar date of
// their completion, most recent group first and most recently completed
// task first within each group. Tasks without a completion timestamp are
// excluded.
func (s *Store) TimelineGroups(tags []string) []TimelineGroup {
	s.mu.Lock()
	defer s.mu.Unlock()

	var done []Task
	for _, t := range s.tasks {
		if !t.Completed || t.CompletedAt == nil {
			continue
		}
		if !hasAnyTag(t, tags) {
			continue
		}
		done = append(done, *t)
	}
	sort.SliceStable(done, func(i, j int) bool {
		return done[i].CompletedAt.After(*done[j].CompletedAt)
	})

	var groups []TimelineGroup
	for _, t := range done {
		date := DayKey(*t.CompletedAt)
		if n := len(groups); n > 0 && groups[n-1].Date == date {
			groups[n-1].Tasks = append(groups[n-1].Tasks, t)
			continue
		}
		groups = append(groups, TimelineGroup{
			Date:  date,
			Label: t.CompletedAt.Format("Monday, January 2, 2006"),
			Tasks: []Task{t},
		})
	}
	return groups
}

// WeekDay is one entry of the seven-day strip.
type WeekDay struct {
	Date  string // YYYY-MM-DD
	Label string
}

// WeekDays returns seven entries starting at ref: "Today (Jun 13)",
// "Tomorrow (Jun 14)", then weekday names.
func WeekDays(ref time.Time) []WeekDay {
	days := make([]WeekDay, 7)
	for i := range days {
		d := ref.AddDate(0, 0, i)
		md := d.Format("Jan 2")
		var label string
		switch i {
		case 0:
			label = fmt.Sprintf("Today (%s)", md)
		case 1:
			label = fmt.Sprintf("Tomorrow (%s)", md)
		default:
			label = fmt.Sprintf("%s (%s)", d.Format("Monday"), md)
		}
		days[i] = WeekDay{Date: DayKey(d), Label: label}
	}
	return days
}

// RelativeDateLabel renders a timestamp relative to now by comparing
// calendar dates, not elapsed time: "Today", "Yesterday", "N days ago" up
// to a week, then a short month-day form.
func RelativeDateLabel(ts, now time.Time) string {
	days := calendarDaysBetween(ts, now)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days >= 2 && days <= 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return ts.Format("Jan 2")
	}
}

// calendarDaysBetween counts whole calendar days from a to b, ignoring
// the time of day. Dates are compared in UTC so DST transitions cannot
// skew the count.
func calendarDaysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}
