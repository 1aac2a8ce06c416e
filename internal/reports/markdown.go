// Package reports provides report generation for the linkday app.
package reports

import (
	"fmt"
	"strings"
)

// FormatDailyMarkdown renders a daily report as human-readable Markdown.
func FormatDailyMarkdown(report *DailyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Day Report: %s\n\n", report.Day)

	fmt.Fprintf(&b, "## Tasks (%d pending, %d done)\n\n",
		report.Tasks.PendingCount, report.Tasks.CompletedCount)

	if report.Tasks.PendingCount == 0 && report.Tasks.CompletedCount == 0 {
		b.WriteString("Nothing planned for this day.\n")
	}

	for _, t := range report.Tasks.Pending {
		line := "- [ ] " + t.Text
		if t.StartTime != nil {
			line += " (" + *t.StartTime + ")"
		}
		b.WriteString(line + "\n")
	}
	for _, t := range report.Tasks.Completed {
		b.WriteString("- [x] " + t.Text + "\n")
	}

	if len(report.Chains) > 0 {
		b.WriteString("\n## Chains\n\n")
		for _, chain := range report.Chains {
			parts := make([]string, 0, len(chain.Tasks))
			for _, entry := range chain.Tasks {
				text := entry.Text
				if entry.Completed {
					text = "~~" + text + "~~"
				}
				parts = append(parts, text)
			}
			b.WriteString("- " + strings.Join(parts, " -> ") + "\n")
		}
	}

	if len(report.Tags) > 0 {
		b.WriteString("\n## Tags\n\n")
		for _, tc := range report.Tags {
			fmt.Fprintf(&b, "- %s (%d)\n", tc.Tag, tc.Count)
		}
	}

	fmt.Fprintf(&b, "\n---\nGenerated at %s\n",
		report.GeneratedAt.Format("2006-01-02 15:04"))

	return b.String()
}

// FormatTimelineMarkdown renders a timeline report as Markdown,
// newest day first.
func FormatTimelineMarkdown(report *TimelineReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Timeline (%d completed)\n", report.TotalCompleted)

	if len(report.Groups) == 0 {
		b.WriteString("\nNo completed tasks yet.\n")
	}

	for _, group := range report.Groups {
		fmt.Fprintf(&b, "\n## %s\n\n", group.Label)
		for _, t := range group.Tasks {
			line := "- " + t.Text
			if t.CompletedAt != nil {
				line += " (" + t.CompletedAt.Format("15:04") + ")"
			}
			b.WriteString(line + "\n")
		}
	}

	fmt.Fprintf(&b, "\n---\nGenerated at %s\n",
		report.GeneratedAt.Format("2006-01-02 15:04"))

	return b.String()
}
