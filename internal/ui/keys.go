// Package ui provides the terminal user interface for the linkday app.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text generation, and customization.
package ui

import (
	"strings"

	"linkday/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// GlobalKeyMap defines keys available throughout the application.
type GlobalKeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	NextTab key.Binding
	PrevDay key.Binding
	NextDay key.Binding
}

// DefaultGlobalKeyMap returns the default global key bindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return NewGlobalKeyMap(&config.KeysConfig{})
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Quit, "q", "ctrl+c")...),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Help, "?")...),
			key.WithHelp("?", "help"),
		),
		NextTab: key.NewBinding(
			key.WithKeys(parseKeys(cfg.NextTab, "tab")...),
			key.WithHelp("tab", "next tab"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys(parseKeys(cfg.PrevDay, "h", "left")...),
			key.WithHelp("h", "previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys(parseKeys(cfg.NextDay, "l", "right")...),
			key.WithHelp("l", "next day"),
		),
	}
}

// ListKeyMap defines keys for working with the task list.
type ListKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Add         key.Binding
	Edit        key.Binding
	Toggle      key.Binding
	Delete      key.Binding
	Link        key.Binding
	Unlink      key.Binding
	SetTime     key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
}

// DefaultListKeyMap returns the default list key bindings.
func DefaultListKeyMap() ListKeyMap {
	return NewListKeyMap(&config.KeysConfig{})
}

// NewListKeyMap creates list key bindings from config.
func NewListKeyMap(cfg *config.KeysConfig) ListKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return ListKeyMap{
		Up: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Up, "k", "up")...),
			key.WithHelp("k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Down, "j", "down")...),
			key.WithHelp("j", "down"),
		),
		Add: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Add, "a")...),
			key.WithHelp("a", "add task"),
		),
		Edit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Edit, "e")...),
			key.WithHelp("e", "edit task"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Toggle, "d", "enter", " ")...),
			key.WithHelp("d", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Delete, "x")...),
			key.WithHelp("x", "delete task"),
		),
		Link: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Link, "L")...),
			key.WithHelp("L", "link after"),
		),
		Unlink: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Unlink, "U")...),
			key.WithHelp("U", "unlink"),
		),
		SetTime: key.NewBinding(
			key.WithKeys(parseKeys(cfg.SetTime, "t")...),
			key.WithHelp("t", "set start time"),
		),
		Filter: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Filter, "f")...),
			key.WithHelp("f", "cycle tag filter"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ClearFilter, "F")...),
			key.WithHelp("F", "clear filter"),
		),
	}
}

// InputKeyMap defines keys for text input modes.
type InputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultInputKeyMap returns the default input key bindings.
func DefaultInputKeyMap() InputKeyMap {
	return NewInputKeyMap(&config.KeysConfig{})
}

// NewInputKeyMap creates input key bindings from config.
func NewInputKeyMap(cfg *config.KeysConfig) InputKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return InputKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Confirm, "enter")...),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Cancel, "esc")...),
			key.WithHelp("esc", "cancel"),
		),
	}
}
