package task

// Chain linking. Each task points at most at one predecessor via LinkedTo
// and each task accepts at most one successor, so the links form simple
// paths through the incomplete tasks of a day.

// Link chains source after target. The guards below each cause a silent
// no-op with no state change: these cases come from UI races (the target
// was just deleted, a second drag landed on an already-taken slot), not
// from programmer error.
//
// On success the source loses its start time, adopts the target's day,
// and the day's incomplete tasks are renumbered densely with the source
// placed immediately after the target. This is what keeps a chain
// visually contiguous regardless of original insertion order, and it is
// the only operation that re-normalizes a day's ordering.
func (s *Store) Link(sourceID, targetID string) error {
	if sourceID == targetID {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	src := s.findLocked(sourceID)
	tgt := s.findLocked(targetID)
	if src == nil || tgt == nil {
		return nil
	}

	// A target accepts only one successor.
	for _, t := range s.tasks {
		if t.ID != sourceID && t.LinkedTo != nil && *t.LinkedTo == targetID {
			return nil
		}
	}

	// Walking the chain forward from the target must not reach the
	// source, otherwise the link would close a cycle.
	steps := 0
	for cur := tgt; cur != nil && cur.LinkedTo != nil; {
		next := *cur.LinkedTo
		if next == sourceID {
			return nil
		}
		cur = s.findLocked(next)
		if steps++; steps > len(s.tasks) {
			break
		}
	}

	id := targetID
	src.LinkedTo = &id
	src.StartTime = nil

	// A chain lives in a single day bucket; pull the source into the
	// target's day before renumbering. The source's previous day keeps
	// its gap until that day's next link, same as completion gaps.
	src.Day = tgt.Day

	s.resequenceAfterLocked(src, tgt)
	return s.saveLocked()
}

// resequenceAfterLocked rebuilds the dense 0..k-1 ordering of the
// target's day with src placed right after tgt. Completed tasks and other
// days are untouched.
func (s *Store) resequenceAfterLocked(src, tgt *Task) {
	bucket := s.incompleteByOrderLocked(tgt.Day)

	seq := make([]*Task, 0, len(bucket))
	for _, t := range bucket {
		if t.ID == src.ID {
			continue
		}
		seq = append(seq, t)
		if t.ID == tgt.ID && !src.Completed {
			seq = append(seq, src)
		}
	}
	// Target completed (or missing from the incomplete ordering): the
	// source still needs a slot, at the end.
	if !src.Completed && !containsTask(seq, src.ID) {
		seq = append(seq, src)
	}

	for i, t := range seq {
		t.Order = i
	}
}

func containsTask(tasks []*Task, id string) bool {
	for _, t := range tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Unlink clears a task's chain link. The task keeps its current order
// value; unlink never renumbers. Unknown ids are a no-op.
func (s *Store) Unlink(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findLocked(id)
	if t == nil || t.LinkedTo == nil {
		return nil
	}
	t.LinkedTo = nil
	return s.saveLocked()
}

// ResolveChain returns the full predecessor chain ending at id,
// head-first. Starting at id it follows LinkedTo toward the head and then
// reverses. A repeated id stops the walk; the link guards should make
// that impossible, but a damaged data file must not hang the caller.
func (s *Store) ResolveChain(id string) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var reversed []Task
	for cur := s.findLocked(id); cur != nil && !seen[cur.ID]; {
		seen[cur.ID] = true
		reversed = append(reversed, *cur)
		if cur.LinkedTo == nil {
			break
		}
		cur = s.findLocked(*cur.LinkedTo)
	}

	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	return reversed
}

// Successor returns a copy of the task chained after id, if any. The
// single-successor invariant makes the lookup unambiguous.
func (s *Store) Successor(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		if t.LinkedTo != nil && *t.LinkedTo == id {
			return *t, true
		}
	}
	return Task{}, false
}
