// Package ui provides the terminal user interface for the linkday app.
// This file contains tea.Cmd factories that wrap store operations. Each
// command returns a corresponding message type defined in messages.go.
package ui

import (
	"linkday/internal/task"

	tea "github.com/charmbracelet/bubbletea"
)

// addTaskCmd returns a command that creates a new task in the given day.
func addTaskCmd(store *task.Store, text, day string) tea.Cmd {
	return func() tea.Msg {
		created, err := store.AddTask(text, day)
		return taskAddedMsg{task: created, err: err}
	}
}

// toggleTaskCmd returns a command that flips a task's completion state.
func toggleTaskCmd(store *task.Store, id string) tea.Cmd {
	return func() tea.Msg {
		err := store.ToggleComplete(id)
		return taskToggledMsg{id: id, err: err}
	}
}

// deleteTaskCmd returns a command that removes a task.
func deleteTaskCmd(store *task.Store, id string) tea.Cmd {
	return func() tea.Msg {
		err := store.DeleteTask(id)
		return taskDeletedMsg{id: id, err: err}
	}
}

// updateTextCmd returns a command that rewrites a task's text.
func updateTextCmd(store *task.Store, id, text string) tea.Cmd {
	return func() tea.Msg {
		err := store.UpdateText(id, text)
		return textUpdatedMsg{id: id, err: err}
	}
}

// setStartTimeCmd returns a command that sets or clears a start time.
// An empty hhmm clears it.
func setStartTimeCmd(store *task.Store, id, hhmm string) tea.Cmd {
	return func() tea.Msg {
		err := store.SetStartTime(id, hhmm)
		return startTimeSetMsg{id: id, err: err}
	}
}

// linkTaskCmd returns a command that chains source directly after target.
func linkTaskCmd(store *task.Store, sourceID, targetID string) tea.Cmd {
	return func() tea.Msg {
		err := store.Link(sourceID, targetID)
		return linkedMsg{sourceID: sourceID, targetID: targetID, err: err}
	}
}

// unlinkTaskCmd returns a command that clears a task's outgoing link.
func unlinkTaskCmd(store *task.Store, id string) tea.Cmd {
	return func() tea.Msg {
		err := store.Unlink(id)
		return unlinkedMsg{id: id, err: err}
	}
}
