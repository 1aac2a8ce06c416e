package reports

import (
	"strings"
	"testing"
	"time"

	"linkday/internal/task"
)

// nullPersister satisfies task.Persister without touching disk.
type nullPersister struct{}

func (nullPersister) Load() ([]task.Task, error)  { return nil, nil }
func (nullPersister) Save(tasks []task.Task) error { return nil }

const day = "2025-06-13"

func newTestStore(t *testing.T) *task.Store {
	t.Helper()
	s, err := task.NewStore(nullPersister{})
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	base := time.Date(2025, 6, 13, 9, 0, 0, 0, time.UTC)
	calls := 0
	s.SetNowFunc(func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	})
	return s
}

func mustAdd(t *testing.T, s *task.Store, text, d string) task.Task {
	t.Helper()
	created, err := s.AddTask(text, d)
	if err != nil {
		t.Fatalf("AddTask(%q) error: %v", text, err)
	}
	return *created
}

func TestGenerateDaily(t *testing.T) {
	s := newTestStore(t)
	a := mustAdd(t, s, "Draft outline #work", day)
	b := mustAdd(t, s, "Write report #work", day)
	c := mustAdd(t, s, "Buy milk #errand", day)
	mustAdd(t, s, "Other day task", "2025-06-14")

	if err := s.Link(b.ID, a.ID); err != nil {
		t.Fatalf("Link() error: %v", err)
	}
	if err := s.ToggleComplete(c.ID); err != nil {
		t.Fatalf("ToggleComplete() error: %v", err)
	}

	report := NewGenerator(s).GenerateDaily(day)

	if report.Day != day {
		t.Errorf("Day = %q, want %q", report.Day, day)
	}
	if report.Tasks.PendingCount != 2 {
		t.Errorf("PendingCount = %d, want 2", report.Tasks.PendingCount)
	}
	if report.Tasks.CompletedCount != 1 {
		t.Errorf("CompletedCount = %d, want 1", report.Tasks.CompletedCount)
	}

	if len(report.Chains) != 1 {
		t.Fatalf("expected 1 chain, got %d", len(report.Chains))
	}
	chain := report.Chains[0]
	if len(chain.Tasks) != 2 || chain.Tasks[0].ID != a.ID || chain.Tasks[1].ID != b.ID {
		t.Errorf("chain = %+v, want [%s %s]", chain.Tasks, a.ID, b.ID)
	}

	if len(report.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %v", report.Tags)
	}
	if report.Tags[0].Tag != "#work" || report.Tags[0].Count != 2 {
		t.Errorf("top tag = %+v, want #work x2", report.Tags[0])
	}
	if report.Tags[1].Tag != "#errand" || report.Tags[1].Count != 1 {
		t.Errorf("second tag = %+v, want #errand x1", report.Tags[1])
	}
}

func TestGenerateDaily_EmptyDay(t *testing.T) {
	s := newTestStore(t)
	report := NewGenerator(s).GenerateDaily("2025-01-01")

	if report.Tasks.PendingCount != 0 || report.Tasks.CompletedCount != 0 {
		t.Errorf("expected empty report, got %+v", report.Tasks)
	}
	if len(report.Chains) != 0 {
		t.Errorf("expected no chains, got %d", len(report.Chains))
	}
}

func TestGenerateDaily_ChainsReportedOnce(t *testing.T) {
	s := newTestStore(t)
	a := mustAdd(t, s, "first", day)
	b := mustAdd(t, s, "second", day)
	c := mustAdd(t, s, "third", day)

	if err := s.Link(b.ID, a.ID); err != nil {
		t.Fatalf("Link() error: %v", err)
	}
	if err := s.Link(c.ID, b.ID); err != nil {
		t.Fatalf("Link() error: %v", err)
	}

	report := NewGenerator(s).GenerateDaily(day)
	if len(report.Chains) != 1 {
		t.Fatalf("expected 1 chain, got %d", len(report.Chains))
	}
	ids := report.Chains[0].Tasks
	if len(ids) != 3 || ids[0].ID != a.ID || ids[1].ID != b.ID || ids[2].ID != c.ID {
		t.Errorf("chain members = %+v, want a, b, c in order", ids)
	}
}

func TestGenerateTimeline(t *testing.T) {
	s := newTestStore(t)
	a := mustAdd(t, s, "done first #work", day)
	b := mustAdd(t, s, "done second", day)
	mustAdd(t, s, "still open", day)

	if err := s.ToggleComplete(a.ID); err != nil {
		t.Fatalf("ToggleComplete() error: %v", err)
	}
	if err := s.ToggleComplete(b.ID); err != nil {
		t.Fatalf("ToggleComplete() error: %v", err)
	}

	report := NewGenerator(s).GenerateTimeline(nil)
	if report.TotalCompleted != 2 {
		t.Errorf("TotalCompleted = %d, want 2", report.TotalCompleted)
	}
	if len(report.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(report.Groups))
	}
	group := report.Groups[0]
	if group.Date != day {
		t.Errorf("group date = %q, want %q", group.Date, day)
	}
	// Most recent completion first within the group.
	if group.Tasks[0].ID != b.ID || group.Tasks[1].ID != a.ID {
		t.Errorf("group order wrong: %v then %v", group.Tasks[0].ID, group.Tasks[1].ID)
	}

	filtered := NewGenerator(s).GenerateTimeline([]string{"#work"})
	if filtered.TotalCompleted != 1 {
		t.Errorf("filtered TotalCompleted = %d, want 1", filtered.TotalCompleted)
	}
}

func TestFormatDailyMarkdown(t *testing.T) {
	s := newTestStore(t)
	a := mustAdd(t, s, "Draft outline", day)
	b := mustAdd(t, s, "Write report #work", day)
	if err := s.SetStartTime(a.ID, "09:30"); err != nil {
		t.Fatalf("SetStartTime() error: %v", err)
	}
	if err := s.Link(b.ID, a.ID); err != nil {
		t.Fatalf("Link() error: %v", err)
	}

	out := FormatDailyMarkdown(NewGenerator(s).GenerateDaily(day))

	for _, want := range []string{
		"# Day Report: " + day,
		"- [ ] Draft outline (09:30)",
		"- [ ] Write report #work",
		"Draft outline -> Write report #work",
		"- #work (1)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n%s", want, out)
		}
	}
}

func TestFormatTimelineMarkdown(t *testing.T) {
	s := newTestStore(t)
	a := mustAdd(t, s, "ship it", day)
	if err := s.ToggleComplete(a.ID); err != nil {
		t.Fatalf("ToggleComplete() error: %v", err)
	}

	out := FormatTimelineMarkdown(NewGenerator(s).GenerateTimeline(nil))

	if !strings.Contains(out, "# Timeline (1 completed)") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "Friday, June 13, 2025") {
		t.Errorf("missing day label:\n%s", out)
	}
	if !strings.Contains(out, "- ship it (") {
		t.Errorf("missing entry:\n%s", out)
	}
}

func TestFormatDailyJSON(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "solo task", day)

	data, err := FormatDailyJSON(NewGenerator(s).GenerateDaily(day))
	if err != nil {
		t.Fatalf("FormatDailyJSON() error: %v", err)
	}
	if !strings.Contains(string(data), `"pending_count": 1`) {
		t.Errorf("JSON missing pending_count:\n%s", data)
	}
}
