// Package ui provides the terminal user interface for the linkday app.
// This file defines message types for store operations using the Bubble Tea
// command pattern. Store mutations run as commands to keep the event loop
// non-blocking even when a save touches disk.
package ui

import (
	"linkday/internal/task"
)

// taskAddedMsg is sent when a new task is created.
type taskAddedMsg struct {
	task *task.Task
	err  error
}

// taskToggledMsg is sent when a task's completion is flipped.
type taskToggledMsg struct {
	id  string
	err error
}

// taskDeletedMsg is sent when a task is removed.
type taskDeletedMsg struct {
	id  string
	err error
}

// textUpdatedMsg is sent when a task's text is edited.
type textUpdatedMsg struct {
	id  string
	err error
}

// startTimeSetMsg is sent when a start time is set or cleared.
type startTimeSetMsg struct {
	id  string
	err error
}

// linkedMsg is sent when a link attempt finishes. A rejected link
// (cycle, taken successor) completes without error and without effect.
type linkedMsg struct {
	sourceID string
	targetID string
	err      error
}

// unlinkedMsg is sent when a task's outgoing link is cleared.
type unlinkedMsg struct {
	id  string
	err error
}
