// Package reports provides report generation for the linkday app.
package reports

import (
	"sort"
	"time"

	"linkday/internal/task"
)

// Generator creates reports from a task store.
type Generator struct {
	store *task.Store
}

// NewGenerator creates a new report generator.
func NewGenerator(store *task.Store) *Generator {
	return &Generator{store: store}
}

// GenerateDaily generates a report for one day bucket (YYYY-MM-DD).
func (g *Generator) GenerateDaily(day string) *DailyReport {
	pending := g.store.FilteredTasks(day, task.TabActive, nil)
	completed := g.store.FilteredTasks(day, task.TabCompleted, nil)

	return &DailyReport{
		Day: day,
		Tasks: TaskSummary{
			Pending:        pending,
			Completed:      completed,
			PendingCount:   len(pending),
			CompletedCount: len(completed),
		},
		Chains:      g.dayChains(day),
		Tags:        tagCounts(append(append([]task.Task{}, pending...), completed...)),
		GeneratedAt: time.Now(),
	}
}

// GenerateTimeline generates the full completion history, optionally
// narrowed to tasks carrying one of the given hashtags.
func (g *Generator) GenerateTimeline(tags []string) *TimelineReport {
	groups := g.store.TimelineGroups(tags)

	out := make([]TimelineGroup, 0, len(groups))
	total := 0
	for _, grp := range groups {
		out = append(out, TimelineGroup{
			Date:  grp.Date,
			Label: grp.Label,
			Tasks: grp.Tasks,
		})
		total += len(grp.Tasks)
	}

	return &TimelineReport{
		Groups:         out,
		TotalCompleted: total,
		GeneratedAt:    time.Now(),
	}
}

// dayChains collects the link chains whose tasks live in the given day.
// Each chain is reported head first.
func (g *Generator) dayChains(day string) []Chain {
	all := g.store.Tasks()

	// Targets of some link cannot start a walk; walking from every
	// unreferenced linked task yields each chain exactly once.
	referenced := make(map[string]bool)
	for _, t := range all {
		if t.LinkedTo != nil {
			referenced[*t.LinkedTo] = true
		}
	}

	var chains []Chain
	for _, t := range all {
		if t.Day != day || t.LinkedTo == nil || referenced[t.ID] {
			continue
		}
		run := g.store.ResolveChain(t.ID)
		if len(run) < 2 {
			continue
		}
		chain := Chain{Tasks: make([]ChainEntry, 0, len(run))}
		for _, member := range run {
			chain.Tasks = append(chain.Tasks, ChainEntry{
				ID:        member.ID,
				Text:      member.Text,
				Completed: member.Completed,
			})
		}
		chains = append(chains, chain)
	}

	sort.Slice(chains, func(i, j int) bool {
		return chains[i].Tasks[0].ID < chains[j].Tasks[0].ID
	})
	return chains
}

// tagCounts tallies hashtag occurrences across the given tasks,
// most frequent first, ties broken alphabetically.
func tagCounts(tasks []task.Task) []TagCount {
	counts := make(map[string]int)
	for _, t := range tasks {
		for _, tag := range task.ExtractTags(t.Text) {
			counts[tag]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}
