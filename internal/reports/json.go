// Package reports provides report generation for the linkday app.
package reports

import (
	"encoding/json"
)

// FormatDailyJSON formats a daily report as JSON.
func FormatDailyJSON(report *DailyReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// FormatTimelineJSON formats a timeline report as JSON.
func FormatTimelineJSON(report *TimelineReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
