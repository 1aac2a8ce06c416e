// Package ui provides the terminal user interface for the linkday app.
// This file contains the main App model which owns the week strip, the
// tab bar, and the task list, and routes messages using the Bubble Tea
// architecture.
package ui

import (
	"fmt"
	"regexp"
	"strings"

	"linkday/internal/config"
	"linkday/internal/task"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// inputMode tracks which interaction mode the app is in.
type inputMode int

const (
	modeNormal inputMode = iota
	modeAdd
	modeEdit
	modeTime
	modeLink
	modeConfirmDelete
)

// tagPattern mirrors the hashtag syntax used by the task package,
// for display highlighting only.
var tagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys             *config.KeysConfig
	ConfirmDeletions bool
	HighlightTags    bool
}

// App is the main application model.
type App struct {
	store  *task.Store
	styles *Styles
	config *AppConfig

	keys      GlobalKeyMap
	listKeys  ListKeyMap
	inputKeys InputKeyMap

	week   []task.WeekDay
	dayIdx int
	tab    task.Tab

	rows     []task.Task
	timeline []task.TimelineGroup
	cursor   int

	filter    []string
	filterIdx int // index into AllTags, -1 when no filter is active

	mode         inputMode
	input        textinput.Model
	editID       string
	linkSourceID string
	deleteID     string
	deleteText   string

	width     int
	height    int
	status    string
	statusErr bool
	showHelp  bool
	quitting  bool
}

// NewApp creates a new application model around an already-loaded store.
func NewApp(store *task.Store, styles *Styles, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = &AppConfig{
			Keys:             &config.KeysConfig{},
			ConfirmDeletions: true,
			HighlightTags:    true,
		}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}

	ti := textinput.New()
	ti.Placeholder = "What needs doing? #tags welcome"
	ti.CharLimit = 200
	ti.Width = 40

	app := &App{
		store:     store,
		styles:    styles,
		config:    cfg,
		keys:      NewGlobalKeyMap(cfg.Keys),
		listKeys:  NewListKeyMap(cfg.Keys),
		inputKeys: NewInputKeyMap(cfg.Keys),
		week:      task.WeekDays(store.Now()),
		tab:       task.TabActive,
		filterIdx: -1,
		input:     ti,
	}
	app.refresh()

	return app
}

// SetStatus sets the status line message.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
}

// Day returns the currently selected day key (YYYY-MM-DD).
func (a *App) Day() string {
	return a.week[a.dayIdx].Date
}

// refresh re-reads the visible rows from the store.
func (a *App) refresh() {
	if a.tab == task.TabTimeline {
		a.timeline = a.store.TimelineGroups(a.filter)
		a.rows = nil
	} else {
		a.rows = a.store.FilteredTasks(a.Day(), a.tab, a.filter)
		a.timeline = nil
	}
	if a.cursor >= len(a.rows) {
		a.cursor = max(0, len(a.rows)-1)
	}
}

// Init starts the cursor blink for text inputs.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = max(10, msg.Width-8)
		return a, nil

	case taskAddedMsg:
		if msg.err != nil {
			a.SetStatus(msg.err.Error(), true)
		} else {
			a.SetStatus("Added.", false)
		}
		a.refresh()
		return a, nil

	case taskToggledMsg, taskDeletedMsg, textUpdatedMsg, startTimeSetMsg, unlinkedMsg:
		if err := msgErr(msg); err != nil {
			a.SetStatus(err.Error(), true)
		}
		a.refresh()
		return a, nil

	case linkedMsg:
		if msg.err != nil {
			a.SetStatus(msg.err.Error(), true)
		} else if src, ok := a.store.Get(msg.sourceID); ok && src.LinkedTo != nil && *src.LinkedTo == msg.targetID {
			a.SetStatus("Linked.", false)
		} else {
			a.SetStatus("Link not possible.", true)
		}
		a.refresh()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// msgErr pulls the error out of the simple result messages.
func msgErr(msg tea.Msg) error {
	switch m := msg.(type) {
	case taskToggledMsg:
		return m.err
	case taskDeletedMsg:
		return m.err
	case textUpdatedMsg:
		return m.err
	case startTimeSetMsg:
		return m.err
	case unlinkedMsg:
		return m.err
	}
	return nil
}

// handleKey routes a key press based on the current mode.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case modeAdd, modeEdit, modeTime:
		return a.handleInputKey(msg)
	case modeLink:
		return a.handleLinkKey(msg)
	case modeConfirmDelete:
		return a.handleConfirmKey(msg)
	}

	if a.showHelp {
		switch {
		case key.Matches(msg, a.keys.Help), key.Matches(msg, a.inputKeys.Cancel):
			a.showHelp = false
		case key.Matches(msg, a.keys.Quit):
			a.quitting = true
			return a, tea.Quit
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true

	case key.Matches(msg, a.keys.NextTab):
		a.tab = nextTab(a.tab)
		a.cursor = 0
		a.SetStatus("", false)
		a.refresh()

	case key.Matches(msg, a.keys.PrevDay):
		if a.dayIdx > 0 {
			a.dayIdx--
			a.cursor = 0
			a.refresh()
		}

	case key.Matches(msg, a.keys.NextDay):
		if a.dayIdx < len(a.week)-1 {
			a.dayIdx++
			a.cursor = 0
			a.refresh()
		}

	case key.Matches(msg, a.listKeys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.listKeys.Down):
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.listKeys.Add):
		if a.tab != task.TabTimeline {
			a.mode = modeAdd
			a.input.Placeholder = "What needs doing? #tags welcome"
			a.input.Reset()
			a.input.Focus()
		}

	case key.Matches(msg, a.listKeys.Edit):
		if t, ok := a.current(); ok {
			a.mode = modeEdit
			a.editID = t.ID
			a.input.Placeholder = ""
			a.input.SetValue(t.Text)
			a.input.CursorEnd()
			a.input.Focus()
		}

	case key.Matches(msg, a.listKeys.Toggle):
		if t, ok := a.current(); ok {
			return a, toggleTaskCmd(a.store, t.ID)
		}

	case key.Matches(msg, a.listKeys.Delete):
		if t, ok := a.current(); ok {
			if a.config.ConfirmDeletions {
				a.mode = modeConfirmDelete
				a.deleteID = t.ID
				a.deleteText = t.Text
			} else {
				return a, deleteTaskCmd(a.store, t.ID)
			}
		}

	case key.Matches(msg, a.listKeys.Link):
		if t, ok := a.current(); ok && len(a.rows) > 1 {
			a.mode = modeLink
			a.linkSourceID = t.ID
		}

	case key.Matches(msg, a.listKeys.Unlink):
		if t, ok := a.current(); ok {
			return a, unlinkTaskCmd(a.store, t.ID)
		}

	case key.Matches(msg, a.listKeys.SetTime):
		if t, ok := a.current(); ok {
			a.mode = modeTime
			a.editID = t.ID
			a.input.Placeholder = "HH:MM (empty clears)"
			if t.StartTime != nil {
				a.input.SetValue(*t.StartTime)
			} else {
				a.input.Reset()
			}
			a.input.CursorEnd()
			a.input.Focus()
		}

	case key.Matches(msg, a.listKeys.Filter):
		a.cycleFilter()

	case key.Matches(msg, a.listKeys.ClearFilter):
		a.filter = nil
		a.filterIdx = -1
		a.refresh()
	}

	return a, nil
}

// handleInputKey handles keys while a text input is active.
func (a *App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.inputKeys.Confirm):
		value := strings.TrimSpace(a.input.Value())
		mode := a.mode
		a.mode = modeNormal
		a.input.Blur()
		a.input.Reset()

		switch mode {
		case modeAdd:
			if value == "" {
				return a, nil
			}
			return a, addTaskCmd(a.store, value, a.Day())
		case modeEdit:
			if value == "" {
				return a, nil
			}
			return a, updateTextCmd(a.store, a.editID, value)
		case modeTime:
			return a, setStartTimeCmd(a.store, a.editID, value)
		}
		return a, nil

	case key.Matches(msg, a.inputKeys.Cancel):
		a.mode = modeNormal
		a.input.Blur()
		a.input.Reset()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// handleLinkKey handles keys while picking a link target.
func (a *App) handleLinkKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.inputKeys.Confirm):
		a.mode = modeNormal
		if t, ok := a.current(); ok && t.ID != a.linkSourceID {
			return a, linkTaskCmd(a.store, a.linkSourceID, t.ID)
		}
		return a, nil

	case key.Matches(msg, a.inputKeys.Cancel), key.Matches(msg, a.listKeys.Link):
		a.mode = modeNormal
		return a, nil

	case key.Matches(msg, a.listKeys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.listKeys.Down):
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}
	}

	return a, nil
}

// handleConfirmKey handles the delete confirmation prompt.
func (a *App) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.mode = modeNormal
	id := a.deleteID
	a.deleteID = ""
	a.deleteText = ""

	switch msg.String() {
	case "y", "Y", "enter":
		return a, deleteTaskCmd(a.store, id)
	}
	return a, nil
}

// cycleFilter advances the hashtag filter through every known tag and
// back to no filter.
func (a *App) cycleFilter() {
	tags := task.AllTags(a.store.Tasks())
	if len(tags) == 0 {
		a.SetStatus("No hashtags yet.", false)
		return
	}

	a.filterIdx++
	if a.filterIdx >= len(tags) {
		a.filterIdx = -1
		a.filter = nil
	} else {
		a.filter = []string{tags[a.filterIdx]}
	}
	a.cursor = 0
	a.refresh()
}

// current returns the task under the cursor, if any.
func (a *App) current() (task.Task, bool) {
	if a.tab == task.TabTimeline || len(a.rows) == 0 {
		return task.Task{}, false
	}
	return a.rows[a.cursor], true
}

// nextTab cycles Active -> Done -> Timeline -> Active.
func nextTab(t task.Tab) task.Tab {
	switch t {
	case task.TabActive:
		return task.TabCompleted
	case task.TabCompleted:
		return task.TabTimeline
	default:
		return task.TabActive
	}
}

// View renders the whole application.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if a.showHelp {
		return a.helpView()
	}

	width := a.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder

	// Title bar
	title := a.styles.TitleStyle.Render("linkday")
	date := a.styles.DateStyle.Render(a.week[a.dayIdx].Label)
	b.WriteString(title + " " + date)
	b.WriteString("\n")

	// Week strip
	b.WriteString(a.weekStripView())
	b.WriteString("\n")

	// Tab bar
	b.WriteString(a.tabBarView())
	b.WriteString("\n\n")

	// Filter row
	if len(a.filter) > 0 {
		b.WriteString(a.styles.FilterStyle.Render("filter: "+strings.Join(a.filter, " ")) +
			a.styles.HelpStyle.Render("  (F clears)"))
		b.WriteString("\n")
	}

	// Body
	if a.tab == task.TabTimeline {
		b.WriteString(a.timelineView(width))
	} else {
		b.WriteString(a.listView(width))
	}

	// Input line
	if a.mode == modeAdd || a.mode == modeEdit || a.mode == modeTime {
		prompt := "+ "
		if a.mode == modeEdit {
			prompt = "edit "
		} else if a.mode == modeTime {
			prompt = "time "
		}
		b.WriteString("\n" + a.styles.InputPromptStyle.Render(prompt) + a.input.View() + "\n")
	}

	// Status / prompt line
	b.WriteString("\n")
	switch {
	case a.mode == modeLink:
		b.WriteString(a.styles.FilterStyle.Render("Link: pick the task to follow, enter confirms, esc cancels"))
	case a.mode == modeConfirmDelete:
		b.WriteString(a.styles.ErrorStyle.Render(fmt.Sprintf("Delete %q? (y/n)", a.deleteText)))
	case a.status != "":
		if a.statusErr {
			b.WriteString(a.styles.ErrorStyle.Render(a.status))
		} else {
			b.WriteString(a.styles.StatusStyle.Render(a.status))
		}
	}
	b.WriteString("\n")

	// Help hint
	b.WriteString(a.styles.HelpStyle.Render("a add  L link  t time  f filter  tab views  ? help  q quit"))
	b.WriteString("\n")

	return b.String()
}

// weekStripView renders the seven-day selector.
func (a *App) weekStripView() string {
	parts := make([]string, 0, len(a.week))
	for i, d := range a.week {
		if i == a.dayIdx {
			parts = append(parts, a.styles.DaySelectedStyle.Render(d.Label))
		} else {
			parts = append(parts, a.styles.DayStyle.Render(d.Label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// tabBarView renders the Active / Done / Timeline tabs.
func (a *App) tabBarView() string {
	render := func(label string, tab task.Tab) string {
		if a.tab == tab {
			return a.styles.TabActiveStyle.Render("[" + label + "]")
		}
		return a.styles.TabInactiveStyle.Render(" " + label + " ")
	}
	return render("Active", task.TabActive) + " " +
		render("Done", task.TabCompleted) + " " +
		render("Timeline", task.TabTimeline)
}

// listView renders the task rows for the Active and Done tabs.
func (a *App) listView(width int) string {
	if len(a.rows) == 0 {
		empty := "No tasks for this day. Press 'a' to add one."
		if a.tab == task.TabCompleted {
			empty = "Nothing done for this day yet."
		}
		if len(a.filter) > 0 {
			empty = "No tasks match the filter."
		}
		return a.styles.HelpStyle.Italic(true).Render("  "+empty) + "\n"
	}

	var b strings.Builder
	for i, t := range a.rows {
		b.WriteString(a.taskRow(t, i == a.cursor, width))
		b.WriteString("\n")
	}
	return b.String()
}

// taskRow renders one task line.
func (a *App) taskRow(t task.Task, selected bool, width int) string {
	checkbox := a.styles.TaskCheckboxPending
	if t.Completed {
		checkbox = a.styles.TaskCheckboxDone
	}

	timePart := ""
	if t.StartTime != nil {
		timePart = *t.StartTime + " "
	}

	chainPart := ""
	if succ, ok := a.store.Successor(t.ID); ok {
		chainPart = " -> " + runewidth.Truncate(succ.Text, 20, "..")
	}

	avail := width - 4 - len(checkbox) - len(timePart) - runewidth.StringWidth(chainPart)
	if avail < 5 {
		avail = 5
	}
	text := runewidth.Truncate(t.Text, avail, "..")

	if selected {
		marker := "> "
		if a.mode == modeLink && t.ID == a.linkSourceID {
			marker = "+ "
		}
		return a.styles.TaskSelectedStyle.Render(marker + checkbox + " " + timePart + text + chainPart)
	}

	var styledText string
	switch {
	case t.Completed:
		styledText = a.styles.TaskDoneStyle.Render(text)
	case a.config.HighlightTags:
		styledText = a.renderWithTags(text)
	default:
		styledText = a.styles.TaskPendingStyle.Render(text)
	}

	line := "  " + checkbox + " "
	if timePart != "" {
		line += a.styles.TimeStyle.Render(timePart)
	}
	line += styledText
	if chainPart != "" {
		line += a.styles.ChainStyle.Render(chainPart)
	}
	return line
}

// renderWithTags styles hashtag spans inside pending task text.
func (a *App) renderWithTags(text string) string {
	var b strings.Builder
	last := 0
	for _, loc := range tagPattern.FindAllStringIndex(text, -1) {
		b.WriteString(a.styles.TaskPendingStyle.Render(text[last:loc[0]]))
		b.WriteString(a.styles.TagStyle.Render(text[loc[0]:loc[1]]))
		last = loc[1]
	}
	b.WriteString(a.styles.TaskPendingStyle.Render(text[last:]))
	return b.String()
}

// timelineView renders the completion history grouped by day.
func (a *App) timelineView(width int) string {
	if len(a.timeline) == 0 {
		return a.styles.HelpStyle.Italic(true).Render("  Nothing completed yet.") + "\n"
	}

	var b strings.Builder
	for _, group := range a.timeline {
		b.WriteString(a.styles.TimelineLabelStyle.Render(group.Label))
		b.WriteString("\n")
		for _, t := range group.Tasks {
			stamp := ""
			if t.CompletedAt != nil {
				stamp = t.CompletedAt.Format("15:04") + " "
			}
			text := runewidth.Truncate(t.Text, max(5, width-10), "..")
			b.WriteString("  " + a.styles.TimeStyle.Render(stamp) + a.styles.TaskDoneStyle.Render(text))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Run starts the Bubble Tea program with the given store, styles, and config.
func Run(store *task.Store, styles *Styles, cfg *AppConfig) error {
	app := NewApp(store, styles, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
