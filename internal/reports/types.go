// Package reports provides report generation for the linkday app.
// Reports aggregate the task list into day and timeline summaries.
package reports

import (
	"time"

	"linkday/internal/task"
)

// DailyReport contains aggregated data for a single day bucket.
type DailyReport struct {
	Day         string      `json:"day"`
	Tasks       TaskSummary `json:"tasks"`
	Chains      []Chain     `json:"chains"`
	Tags        []TagCount  `json:"tags"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// TaskSummary contains task statistics for a day.
type TaskSummary struct {
	Pending        []task.Task `json:"pending"`
	Completed      []task.Task `json:"completed"`
	PendingCount   int         `json:"pending_count"`
	CompletedCount int         `json:"completed_count"`
}

// Chain is an ordered run of linked tasks, head first.
type Chain struct {
	Tasks []ChainEntry `json:"tasks"`
}

// ChainEntry identifies one task inside a chain.
type ChainEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// TagCount represents how often a hashtag appears in a day's tasks.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TimelineReport contains the completion history, newest day first.
type TimelineReport struct {
	Groups         []TimelineGroup `json:"groups"`
	TotalCompleted int             `json:"total_completed"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// TimelineGroup is one calendar day of completions.
type TimelineGroup struct {
	Date  string      `json:"date"`
	Label string      `json:"label"`
	Tasks []task.Task `json:"tasks"`
}
