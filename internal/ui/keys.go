// Package ui implements the full-screen terminal interface for taskmaster.
// This file defines key bindings using the Bubble Tea key package for
// type-safe matching and user customization through the config file.
package ui

import (
	"strings"

	"taskmaster/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// parseKeys splits a comma-separated string into individual keys. If the
// input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	parts := strings.Split(customKeys, ",")
	result := make([]string, 0, len(parts))
	for _, k := range parts {
		trimmed := strings.TrimSpace(k)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultKeys
	}
	return result
}

// KeyMap defines the key bindings for the task list in normal mode.
type KeyMap struct {
	Quit        key.Binding
	Help        key.Binding
	Up          key.Binding
	Down        key.Binding
	Top         key.Binding
	Bottom      key.Binding
	New         key.Binding
	Edit        key.Binding
	Delete      key.Binding
	Toggle      key.Binding
	Priority    key.Binding
	DueDate     key.Binding
	Archive     key.Binding
	Search      key.Binding
	CycleFilter key.Binding
	CycleSort   key.Binding
	ReverseSort key.Binding
}

// DefaultKeyMap returns the built-in key bindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(&config.KeysConfig{})
}

// NewKeyMap creates key bindings from config.
func NewKeyMap(cfg *config.KeysConfig) KeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Quit, "q", "ctrl+c")...),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Help, "?")...),
			key.WithHelp("?", "help"),
		),
		Up: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Up, "k", "up")...),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Down, "j", "down")...),
			key.WithHelp("j/↓", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Top, "g")...),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Bottom, "G")...),
			key.WithHelp("G", "bottom"),
		),
		New: key.NewBinding(
			key.WithKeys(parseKeys(cfg.New, "n")...),
			key.WithHelp("n", "new task"),
		),
		Edit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Edit, "e", "enter")...),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Delete, "d")...),
			key.WithHelp("d", "delete"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Toggle, " ")...),
			key.WithHelp("space", "toggle done"),
		),
		Priority: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Priority, "p")...),
			key.WithHelp("p", "priority"),
		),
		DueDate: key.NewBinding(
			key.WithKeys(parseKeys(cfg.DueDate, "u")...),
			key.WithHelp("u", "due date"),
		),
		Archive: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Archive, "m")...),
			key.WithHelp("m", "archive done"),
		),
		Search: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Search, "s", "/")...),
			key.WithHelp("s", "search"),
		),
		CycleFilter: key.NewBinding(
			key.WithKeys(parseKeys(cfg.CycleFilter, "tab")...),
			key.WithHelp("tab", "filter"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys(parseKeys(cfg.CycleSort, "r")...),
			key.WithHelp("r", "sort"),
		),
		ReverseSort: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ReverseSort, "R")...),
			key.WithHelp("R", "reverse sort"),
		),
	}
}

// InputKeyMap defines keys for text input mode.
type InputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
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
