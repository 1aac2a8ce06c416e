package ui

import (
	"linkday/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all application styles, initialized with theme configuration.
type Styles struct {
	// Colors
	ColorPrimary   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color

	// Title bar
	TitleStyle lipgloss.Style
	DateStyle  lipgloss.Style

	// Week strip
	DayStyle         lipgloss.Style
	DaySelectedStyle lipgloss.Style

	// Tab bar
	TabActiveStyle   lipgloss.Style
	TabInactiveStyle lipgloss.Style

	// Task rows
	TaskDoneStyle       lipgloss.Style
	TaskPendingStyle    lipgloss.Style
	TaskSelectedStyle   lipgloss.Style
	TaskCheckboxDone    string
	TaskCheckboxPending string

	// Chain and detail decorations
	ChainStyle lipgloss.Style
	TimeStyle  lipgloss.Style
	TagStyle   lipgloss.Style

	// Timeline
	TimelineLabelStyle lipgloss.Style

	// Filter row
	FilterStyle lipgloss.Style

	// Status line
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style

	// Input
	InputPromptStyle lipgloss.Style

	// Help
	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from the given config.
func NewStyles(cfg *config.Config) *Styles {
	return NewStylesFromTheme(&cfg.Theme)
}

// NewStylesFromTheme creates a new Styles instance from a ThemeConfig.
// If a theme color is empty, it uses the appropriate default.
func NewStylesFromTheme(theme *config.ThemeConfig) *Styles {
	s := &Styles{}

	s.ColorPrimary = colorOrDefault(theme.Primary, "#7C3AED")
	s.ColorAccent = colorOrDefault(theme.Accent, "#10B981")
	s.ColorMuted = colorOrDefault(theme.Muted, "#6B7280")
	s.ColorDanger = colorOrDefault(theme.Danger, "#EF4444")
	s.ColorText = colorOrDefault(theme.Text, "#F9FAFB")
	s.ColorTextMuted = lipgloss.Color("#9CA3AF")

	s.initComponentStyles()

	return s
}

// colorOrDefault returns the lipgloss.Color from hex string, or default if empty.
func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

// initComponentStyles initializes all component styles based on the palette.
func (s *Styles) initComponentStyles() {
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorText).
		Background(s.ColorPrimary).
		Padding(0, 1)

	s.DateStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.DayStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Padding(0, 1)

	s.DaySelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorText).
		Background(s.ColorPrimary).
		Padding(0, 1)

	s.TabActiveStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary)

	s.TabInactiveStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.TaskDoneStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted).
		Strikethrough(true)

	s.TaskPendingStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.TaskSelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorText).
		Background(s.ColorPrimary)

	s.TaskCheckboxDone = "[x]"
	s.TaskCheckboxPending = "[ ]"

	s.ChainStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent)

	s.TimeStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent)

	s.TagStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary)

	s.TimelineLabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorAccent)

	s.FilterStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger)

	s.InputPromptStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorAccent)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent)
}
