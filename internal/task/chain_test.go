package task

import (
	"reflect"
	"testing"
)

// taskOrders maps id -> order for the current collection state.
func taskOrders(s *Store) map[string]int {
	orders := make(map[string]int)
	for _, t := range s.Tasks() {
		orders[t.ID] = t.Order
	}
	return orders
}

func TestLink_ResequencesAfterTarget(t *testing.T) {
	store, _ := newTestStore(t)

	a := mustAdd(t, store, "Write report #work", day)
	b := mustAdd(t, store, "Review #work", day)
	if err := store.SetStartTime(b.ID, "15:00"); err != nil {
		t.Fatalf("SetStartTime() error = %v", err)
	}

	if err := store.Link(b.ID, a.ID); err != nil {
		t.Fatalf("Link() error = %v", err)
	}

	gotA, _ := store.Get(a.ID)
	gotB, _ := store.Get(b.ID)
	if gotA.Order != 0 || gotB.Order != 1 {
		t.Errorf("orders = %d, %d, want A=0, B=1", gotA.Order, gotB.Order)
	}
	if gotB.LinkedTo == nil || *gotB.LinkedTo != a.ID {
		t.Error("B must be linked to A")
	}
	if gotB.StartTime != nil {
		t.Error("linking must clear the source's start time")
	}

	listed := store.FilteredTasks(day, TabActive, nil)
	if len(listed) != 2 || listed[0].ID != a.ID || listed[1].ID != b.ID {
		t.Errorf("FilteredTasks order = %v, want [A, B]", idsOf(listed))
	}
	checkInvariants(t, store)
}

func TestLink_MovesSourceNextToTarget(t *testing.T) {
	store, _ := newTestStore(t)

	a := mustAdd(t, store, "a", day)
	b := mustAdd(t, store, "b", day)
	c := mustAdd(t, store, "c", day)
	d := mustAdd(t, store, "d", day)

	// Chain d after a: expected sequence a, d, b, c.
	if err := store.Link(d.ID, a.ID); err != nil {
		t.Fatalf("Link() error = %v", err)
	}

	listed := store.FilteredTasks(day, TabActive, nil)
	want := []string{a.ID, d.ID, b.ID, c.ID}
	if got := idsOf(listed); !reflect.DeepEqual(got, want) {
		t.Errorf("sequence = %v, want %v", got, want)
	}
	for i, task := range listed {
		if task.Order != i {
			t.Errorf("task %d has order %d, want dense renumbering", i, task.Order)
		}
	}
	checkInvariants(t, store)
}

func TestLink_RenormalizesCompletionGaps(t *testing.T) {
	store, _ := newTestStore(t)

	a := mustAdd(t, store, "a", day)
	b := mustAdd(t, store, "b", day)
	c := mustAdd(t, store, "c", day)

	// Completing b leaves orders 0 and 2; the next link in this day
	// renumbers densely.
	if err := store.ToggleComplete(b.ID); err != nil {
		t.Fatalf("ToggleComplete() error = %v", err)
	}
	if err := store.Link(c.ID, a.ID); err != nil {
		t.Fatalf("Link() error = %v", err)
	}

	gotA, _ := store.Get(a.ID)
	gotC, _ := store.Get(c.ID)
	if gotA.Order != 0 || gotC.Order != 1 {
		t.Errorf("orders = %d, %d, want dense 0, 1", gotA.Order, gotC.Order)
	}
	gotB, _ := store.Get(b.ID)
	if !gotB.Completed {
		t.Error("completed task must be untouched by resequencing")
	}
}

func TestLink_SelfIsNoop(t *testing.T) {
	store, _ := newTestStore(t)
	a := mustAdd(t, store, "a", day)

	if err := store.Link(a.ID, a.ID); err != nil {
		t.Fatalf("Link(self) error = %v", err)
	}
	got, _ := store.Get(a.ID)
	if got.LinkedTo != nil {
		t.Error("self-link must be rejected")
	}
}

func TestLink_UnknownIdsAreNoops(t *testing.T) {
	store, mem := newTestStore(t)
	a := mustAdd(t, store, "a", day)
	saves := len(mem.saved)

	if err := store.Link(a.ID, "missing"); err != nil {
		t.Fatalf("Link(a, missing) error = %v", err)
	}
	if err := store.Link("missing", a.ID); err != nil {
		t.Fatalf("Link(missing, a) error = %v", err)
	}
	if len(mem.saved) != saves {
		t.Error("rejected links must not persist")
	}
}

func TestLink_SecondSuccessorRejected(t *testing.T) {
	store, _ := newTestStore(t)
	a := mustAdd(t, store, "a", day)
	b := mustAdd(t, store, "b", day)
	c := mustAdd(t, store, "c", day)

	if err := store.Link(b.ID, a.ID); err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	before := taskOrders(store)

	// a already has successor b; c must be rejected with no state change.
	if err := store.Link(c.ID, a.ID); err != nil {
		t.Fatalf("Link() error = %v", err)
	}

	gotC, _ := store.Get(c.ID)
	if gotC.LinkedTo != nil {
		t.Error("double link must be rejected")
	}
	if after := taskOrders(store); !reflect.DeepEqual(before, after) {
		t.Errorf("orders changed by rejected link: %v -> %v", before, after)
	}
}

func TestLink_Relink_SameTargetIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	a := mustAdd(t, store, "a", day)
	b := mustAdd(t, store, "b", day)

	if err := store.Link(b.ID, a.ID); err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	if err := store.Link(b.ID, a.ID); err != nil {
		t.Fatalf("Link() again error = %v", err)
	}

	gotB, _ := store.Get(b.ID)
	if gotB.LinkedTo == nil || *gotB.LinkedTo != a.ID {
		t.Error("relinking to the same target must keep the link")
	}
	checkInvariants(t, store)
}

func TestLink_CycleRejected(t *testing.T) {
	store, _ := newTestStore(t)
	a := mustAdd(t, store, "a", day)
	b := mustAdd(t, store, "b", day)

	if err := store.Link(a.ID, b.ID); err != nil {
		t.Fatalf("Link(a, b) error = %v", err)
	}
	before := taskOrders(store)

	// b -> a would close a cycle; the graph must be unchanged.
	if err := store.Link(b.ID, a.ID); err != nil {
		t.Fatalf("Link(b, a) error = %v", err)
	}

	gotA, _ := store.Get(a.ID)
	gotB, _ := store.Get(b.ID)
	if gotB.LinkedTo != nil {
		t.Error("cycle-closing link must be rejected")
	}
	if gotA.LinkedTo == nil || *gotA.LinkedTo != b.ID {
		t.Error("existing link must survive the rejected attempt")
	}
	if after := taskOrders(store); !reflect.DeepEqual(before, after) {
		t.Errorf("orders changed by rejected link: %v -> %v", before, after)
	}
}

func TestLink_LongerCycleRejected(t *testing.T) {
	store, _ := newTestStore(t)
	a := mustAdd(t, store, "a", day)
	b := mustAdd(t, store, "b", day)
	c := mustAdd(t, store, "c", day)

	if err := store.Link(b.ID, a.ID); err != nil {
		t.Fatalf("Link(b, a) error = %v", err)
	}
	if err := store.Link(c.ID, b.ID); err != nil {
		t.Fatalf("Link(c, b) error = %v", err)
	}
	// a -> c would close a three-task cycle.
	if err := store.Link(a.ID, c.ID); err != nil {
		t.Fatalf("Link(a, c) error = %v", err)
	}

	gotA, _ := store.Get(a.ID)
	if gotA.LinkedTo != nil {
		t.Error("three-task cycle must be rejected")
	}
	checkInvariants(t, store)
}

func TestLink_AdoptsTargetsDay(t *testing.T) {
	store, _ := newTestStore(t)
	a := mustAdd(t, store, "a", day)
	other := mustAdd(t, store, "elsewhere", "2025-06-14")

	if err := store.Link(other.ID, a.ID); err != nil {
		t.Fatalf("Link() error = %v", err)
	}

	got, _ := store.Get(other.ID)
	if got.Day != day {
		t.Errorf("Day = %q, want %q (chain lives in one bucket)", got.Day, day)
	}
	listed := store.FilteredTasks(day, TabActive, nil)
	want := []string{a.ID, other.ID}
	if gotIDs := idsOf(listed); !reflect.DeepEqual(gotIDs, want) {
		t.Errorf("sequence = %v, want %v", gotIDs, want)
	}
}

func TestUnlink(t *testing.T) {
	store, _ := newTestStore(t)
	a := mustAdd(t, store, "a", day)
	b := mustAdd(t, store, "b", day)

	if err := store.Link(b.ID, a.ID); err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	before := taskOrders(store)

	if err := store.Unlink(b.ID); err != nil {
		t.Fatalf("Unlink() error = %v", err)
	}

	gotB, _ := store.Get(b.ID)
	if gotB.LinkedTo != nil {
		t.Error("Unlink must clear the link")
	}
	// Unlink never renumbers.
	if after := taskOrders(store); !reflect.DeepEqual(before, after) {
		t.Errorf("orders changed by unlink: %v -> %v", before, after)
	}
}

func TestUnlink_UnknownAndUnlinkedAreNoops(t *testing.T) {
	store, mem := newTestStore(t)
	a := mustAdd(t, store, "a", day)
	saves := len(mem.saved)

	if err := store.Unlink("missing"); err != nil {
		t.Fatalf("Unlink(missing) error = %v", err)
	}
	if err := store.Unlink(a.ID); err != nil {
		t.Fatalf("Unlink(unlinked) error = %v", err)
	}
	if len(mem.saved) != saves {
		t.Error("no-op unlinks must not persist")
	}
}

func TestResolveChain(t *testing.T) {
	store, _ := newTestStore(t)
	a := mustAdd(t, store, "a", day)
	b := mustAdd(t, store, "b", day)
	c := mustAdd(t, store, "c", day)

	if err := store.Link(b.ID, a.ID); err != nil {
		t.Fatalf("Link(b, a) error = %v", err)
	}
	if err := store.Link(c.ID, b.ID); err != nil {
		t.Fatalf("Link(c, b) error = %v", err)
	}

	chain := store.ResolveChain(c.ID)
	want := []string{a.ID, b.ID, c.ID}
	if got := idsOf(chain); !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveChain(c) = %v, want head-first %v", got, want)
	}

	// A chain of one is just the task itself.
	solo := store.ResolveChain(a.ID)
	if len(solo) != 1 || solo[0].ID != a.ID {
		t.Errorf("ResolveChain(a) = %v, want [a]", idsOf(solo))
	}

	if got := store.ResolveChain("missing"); len(got) != 0 {
		t.Errorf("ResolveChain(missing) = %v, want empty", idsOf(got))
	}
}

func TestResolveChain_GuardsAgainstDamagedData(t *testing.T) {
	// A cycle can only exist in a hand-edited or damaged data file; the
	// walk must still terminate.
	x := "t_x"
	y := "t_y"
	mem := &memPersister{loadTasks: []Task{
		{ID: x, Text: "x", Day: day, LinkedTo: &y},
		{ID: y, Text: "y", Day: day, LinkedTo: &x},
	}}
	store, err := NewStore(mem)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	chain := store.ResolveChain(x)
	if len(chain) != 2 {
		t.Errorf("len(chain) = %d, want 2 (each id visited once)", len(chain))
	}
}

func TestSuccessor(t *testing.T) {
	store, _ := newTestStore(t)
	a := mustAdd(t, store, "a", day)
	b := mustAdd(t, store, "b", day)

	if _, ok := store.Successor(a.ID); ok {
		t.Error("no successor expected before linking")
	}

	if err := store.Link(b.ID, a.ID); err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	succ, ok := store.Successor(a.ID)
	if !ok || succ.ID != b.ID {
		t.Errorf("Successor(a) = %v, %v, want b", succ.ID, ok)
	}
}

func idsOf(tasks []Task) []string {
	if len(tasks) == 0 {
		return nil
	}
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}
