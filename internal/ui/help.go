package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// helpView renders the full-screen help overlay.
func (a *App) helpView() string {
	overlayWidth := 56
	if a.width > 0 {
		overlayWidth = min(56, max(24, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorAccent).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorAccent).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder

	b.WriteString(titleStyle.Render("linkday - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Views"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("Tab") + descStyle.Render("Cycle Active / Done / Timeline") + "\n")
	b.WriteString(keyStyle.Render("h / l") + descStyle.Render("Previous / next day") + "\n")
	b.WriteString(keyStyle.Render("f / F") + descStyle.Render("Cycle / clear hashtag filter") + "\n")

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Tasks"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("a") + descStyle.Render("Add task") + "\n")
	b.WriteString(keyStyle.Render("e") + descStyle.Render("Edit task text") + "\n")
	b.WriteString(keyStyle.Render("d / Space") + descStyle.Render("Toggle done") + "\n")
	b.WriteString(keyStyle.Render("x") + descStyle.Render("Delete task") + "\n")
	b.WriteString(keyStyle.Render("t") + descStyle.Render("Set start time (HH:MM)") + "\n")
	b.WriteString(keyStyle.Render("j / k") + descStyle.Render("Navigate up/down") + "\n")

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Chains"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("L") + descStyle.Render("Link task after another") + "\n")
	b.WriteString(keyStyle.Render("U") + descStyle.Render("Remove a task's link") + "\n")

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Input Mode"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("Enter") + descStyle.Render("Save") + "\n")
	b.WriteString(keyStyle.Render("Esc") + descStyle.Render("Cancel") + "\n")

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press ? or Esc to close"))

	content := overlayStyle.Render(b.String())

	return lipgloss.Place(
		max(a.width, overlayWidth),
		max(a.height, 1),
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
