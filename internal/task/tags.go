package task

import (
	"regexp"
	"sort"
	"strings"
)

// A hashtag is "#" followed by word characters, including non-ASCII
// letters, so "#вкратце" and "#週次" count the same as "#grocery".
var tagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

// ExtractTags returns the distinct hashtags in text, lower-cased, with
// the "#" prefix kept. Order follows first appearance; callers that need
// a stable display order sort the result.
func ExtractTags(text string) []string {
	matches := tagPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tag := strings.ToLower(m)
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// AllTags returns the union of hashtags across all tasks, deduplicated
// and lexicographically sorted. Used to populate the filter row.
func AllTags(tasks []Task) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, t := range tasks {
		for _, tag := range ExtractTags(t.Text) {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}

// hasAnyTag reports whether the task's text carries at least one of the
// given tags. An empty filter matches everything.
func hasAnyTag(t *Task, filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	for _, tag := range ExtractTags(t.Text) {
		for _, want := range filter {
			if tag == want {
				return true
			}
		}
	}
	return false
}
