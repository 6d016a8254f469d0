// Package ui implements the full-screen terminal interface for taskmaster.
// This file contains the App model: a single task list driven by the
// Bubble Tea architecture, with modal input states for adding, editing,
// searching, and deadline entry.
package ui

import (
	"fmt"
	"strings"
	"time"

	"taskmaster/internal/config"
	"taskmaster/internal/engine"
	"taskmaster/internal/task"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// appMode is the input state of the interface. Exactly one is active.
type appMode int

const (
	modeNormal appMode = iota
	modeAdd
	modeEdit
	modeSearch
	modeDate
	modePriority
	modeConfirmDelete
	modeHelp
)

// AppConfig holds user configuration for app behavior.
type AppConfig struct {
	Keys             *config.KeysConfig
	ConfirmDeletions bool
}

// priorityOptions is the order of the priority selection overlay.
var priorityOptions = []task.Priority{task.PriorityLow, task.PriorityMedium, task.PriorityHigh}

// App is the Bubble Tea model for the task list.
type App struct {
	store  *engine.Store
	styles *Styles

	keys      KeyMap
	inputKeys InputKeyMap

	confirmDeletions bool

	mode       appMode
	cursor     int
	input      textinput.Model
	targetID   string // task addressed by edit/date/priority/delete modes
	targetText string // its description, for overlay bodies
	prioCursor int

	width  int
	height int

	status      string
	statusErr   bool
	statusUntil time.Time

	quitting bool
}

// NewApp creates the application model around an already-loaded store.
func NewApp(store *engine.Store, styles *Styles, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = &AppConfig{Keys: &config.KeysConfig{}, ConfirmDeletions: true}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}

	ti := textinput.New()
	ti.CharLimit = task.MaxDescriptionLen
	ti.Width = 40

	return &App{
		store:            store,
		styles:           styles,
		keys:             NewKeyMap(cfg.Keys),
		inputKeys:        NewInputKeyMap(cfg.Keys),
		confirmDeletions: cfg.ConfirmDeletions,
		input:            ti,
	}
}

// tickMsg drives status message expiry.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the status expiry ticker.
func (a *App) Init() tea.Cmd {
	return tickCmd()
}

// SetStatus sets a transient status message shown in the footer.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 3 * time.Second
	if isErr {
		ttl = 6 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = max(10, a.width-8)
		return a, nil

	case tickMsg:
		if a.status != "" && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
		}
		return a, tickCmd()

	case tea.MouseMsg:
		return a, a.handleMouse(msg)

	case tea.KeyMsg:
		switch a.mode {
		case modeAdd, modeEdit, modeDate:
			return a, a.handleInputKey(msg)
		case modeSearch:
			return a, a.handleSearchKey(msg)
		case modePriority:
			return a, a.handlePriorityKey(msg)
		case modeConfirmDelete:
			return a, a.handleConfirmKey(msg)
		case modeHelp:
			a.mode = modeNormal
			return a, nil
		default:
			return a, a.handleNormalKey(msg)
		}
	}

	return a, nil
}

// view returns the current filtered view with the cursor clamped to it.
func (a *App) view() []*task.Task {
	view := a.store.FilteredView()
	if len(view) == 0 {
		a.cursor = 0
	} else if a.cursor >= len(view) {
		a.cursor = len(view) - 1
	}
	return view
}

// selected returns the task under the cursor, or nil when the view is empty.
func (a *App) selected() *task.Task {
	view := a.view()
	if len(view) == 0 {
		return nil
	}
	return view[a.cursor]
}

func (a *App) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.mode = modeHelp

	case key.Matches(msg, a.keys.Down):
		if view := a.view(); len(view) > 0 {
			a.cursor = min(a.cursor+1, len(view)-1)
		}

	case key.Matches(msg, a.keys.Up):
		a.cursor = max(a.cursor-1, 0)

	case key.Matches(msg, a.keys.Top):
		a.cursor = 0

	case key.Matches(msg, a.keys.Bottom):
		if view := a.view(); len(view) > 0 {
			a.cursor = len(view) - 1
		}

	case key.Matches(msg, a.keys.New):
		a.mode = modeAdd
		a.input.Reset()
		a.input.Placeholder = "What needs to be done?"
		a.input.Focus()
		return textinput.Blink

	case key.Matches(msg, a.keys.Edit):
		if t := a.selected(); t != nil {
			a.mode = modeEdit
			a.targetID = t.ID
			a.input.Reset()
			a.input.Placeholder = ""
			a.input.SetValue(t.Description)
			a.input.CursorEnd()
			a.input.Focus()
			return textinput.Blink
		}

	case key.Matches(msg, a.keys.Delete):
		if t := a.selected(); t != nil {
			if a.confirmDeletions {
				a.mode = modeConfirmDelete
				a.targetID = t.ID
				a.targetText = truncateText(t.Description, 60)
			} else {
				return a.deleteTask(t.ID)
			}
		}

	case key.Matches(msg, a.keys.Toggle):
		if t := a.selected(); t != nil {
			toggled, err := a.store.Toggle(t.ID)
			if toggled == nil {
				return nil
			}
			label := "Task reopened"
			if toggled.Status == task.StatusDone {
				label = "Task completed"
			}
			a.reportMutation(label, err)
		}

	case key.Matches(msg, a.keys.Priority):
		if t := a.selected(); t != nil {
			a.mode = modePriority
			a.targetID = t.ID
			a.targetText = truncateText(t.Description, 60)
			a.prioCursor = 0
			for i, p := range priorityOptions {
				if p == t.Priority {
					a.prioCursor = i
				}
			}
		}

	case key.Matches(msg, a.keys.DueDate):
		if t := a.selected(); t != nil {
			a.mode = modeDate
			a.targetID = t.ID
			a.input.Reset()
			a.input.Placeholder = "YYYY-MM-DD or 'none'"
			a.input.Focus()
			return textinput.Blink
		}

	case key.Matches(msg, a.keys.Search):
		a.mode = modeSearch
		a.input.Reset()
		a.input.Placeholder = "search"
		a.input.SetValue(a.store.Search())
		a.input.CursorEnd()
		a.input.Focus()
		a.cursor = 0
		return textinput.Blink

	case key.Matches(msg, a.keys.CycleFilter):
		f := a.store.CycleFilter()
		a.cursor = 0
		a.SetStatus("Filter: "+f.String(), false)

	case key.Matches(msg, a.keys.CycleSort):
		f := a.store.CycleSort()
		a.cursor = 0
		a.SetStatus("Sort: "+f.String(), false)

	case key.Matches(msg, a.keys.ReverseSort):
		order := "asc"
		if a.store.ToggleSortDirection() {
			order = "desc"
		}
		a.cursor = 0
		a.SetStatus("Order: "+order, false)

	case key.Matches(msg, a.keys.Archive):
		n, err := a.store.ArchiveDone()
		a.cursor = 0
		if n == 0 {
			a.SetStatus("No done tasks to archive", false)
		} else {
			a.reportMutation(fmt.Sprintf("Archived %d task(s)", n), err)
		}
	}

	return nil
}

// handleInputKey drives the add, edit, and due-date text prompts.
func (a *App) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.inputKeys.Confirm):
		mode := a.mode
		value := a.input.Value()
		a.closeInput()
		switch mode {
		case modeAdd:
			if strings.TrimSpace(value) == "" {
				return nil
			}
			return a.addTask(value)
		case modeEdit:
			return a.editTask(a.targetID, value)
		case modeDate:
			return a.setDeadline(a.targetID, value)
		}
		return nil

	case key.Matches(msg, a.inputKeys.Cancel):
		a.closeInput()
		return nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return cmd
}

// handleSearchKey updates the live search query on every keystroke.
func (a *App) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.inputKeys.Confirm):
		// Keep the query active, leave search entry mode.
		a.closeInput()
		return nil

	case key.Matches(msg, a.inputKeys.Cancel):
		a.store.ClearSearch()
		a.cursor = 0
		a.closeInput()
		return nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.store.SetSearch(a.input.Value())
	a.cursor = 0
	return cmd
}

func (a *App) handlePriorityKey(msg tea.KeyMsg) tea.Cmd {
	// Low, Medium, High, Cancel
	last := len(priorityOptions)
	switch {
	case key.Matches(msg, a.keys.Up):
		a.prioCursor = max(a.prioCursor-1, 0)

	case key.Matches(msg, a.keys.Down):
		a.prioCursor = min(a.prioCursor+1, last)

	case key.Matches(msg, a.inputKeys.Confirm):
		idx := a.prioCursor
		a.mode = modeNormal
		if idx >= last {
			return nil
		}
		p := priorityOptions[idx]
		ok, err := a.store.Reprioritize(a.targetID, p)
		if ok || err != nil {
			a.reportMutation("Priority: "+p.String(), err)
		}

	case key.Matches(msg, a.inputKeys.Cancel), key.Matches(msg, a.keys.Quit):
		a.mode = modeNormal
	}
	return nil
}

func (a *App) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y", "enter":
		id := a.targetID
		a.mode = modeNormal
		return a.deleteTask(id)
	case "n", "N", "esc", "q":
		a.mode = modeNormal
		a.SetStatus("Canceled", false)
	}
	return nil
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if a.mode != modeNormal {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.cursor = max(a.cursor-1, 0)
	case tea.MouseButtonWheelDown:
		if view := a.view(); len(view) > 0 {
			a.cursor = min(a.cursor+1, len(view)-1)
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		view := a.view()
		if len(view) == 0 {
			return nil
		}
		start, _ := a.listWindow(len(view))
		row := msg.Y - listTop
		if row < 0 {
			return nil
		}
		idx := start + row
		if idx >= 0 && idx < len(view) {
			a.cursor = idx
		}
	}
	return nil
}

func (a *App) closeInput() {
	a.mode = modeNormal
	a.input.Blur()
	a.input.Reset()
}

// addTask creates a task; blank input silently cancels, like the prompt
// being dismissed.
func (a *App) addTask(text string) tea.Cmd {
	t, err := a.store.Add(text)
	if err != nil && t == nil {
		a.SetStatus(err.Error(), true)
		return nil
	}
	a.cursor = 0
	a.reportMutation("Added: "+truncateText(t.Description, 20), err)
	return nil
}

func (a *App) editTask(id, text string) tea.Cmd {
	ok, err := a.store.Edit(id, text)
	if err != nil && !engine.IsPersistenceError(err) {
		a.SetStatus(err.Error(), true)
		return nil
	}
	if ok || err != nil {
		a.reportMutation("Task updated", err)
	}
	return nil
}

func (a *App) deleteTask(id string) tea.Cmd {
	ok, err := a.store.Delete(id)
	if ok || err != nil {
		a.reportMutation("Task deleted", err)
	}
	a.view() // reclamp cursor against the shrunken view
	return nil
}

// setDeadline parses the date prompt: "none" clears, otherwise YYYY-MM-DD
// sets the deadline to end of that day.
func (a *App) setDeadline(id, value string) tea.Cmd {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if strings.EqualFold(value, "none") {
		ok, err := a.store.SetDeadline(id, nil)
		if ok || err != nil {
			a.reportMutation("Due date cleared", err)
		}
		return nil
	}

	day, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		a.SetStatus("Invalid date (use YYYY-MM-DD)", true)
		return nil
	}
	due := day.Add(23*time.Hour + 59*time.Minute)
	ok, err := a.store.SetDeadline(id, &due)
	if ok || err != nil {
		a.reportMutation("Due: "+due.Format("2006-01-02"), err)
	}
	return nil
}

// reportMutation surfaces the outcome of a store mutation: a save failure
// is a warning (the in-memory change stands), anything else is success.
func (a *App) reportMutation(success string, err error) {
	if err == nil {
		a.SetStatus(success, false)
		return
	}
	if engine.IsPersistenceError(err) {
		a.SetStatus("Save failed: "+err.Error(), true)
		return
	}
	a.SetStatus(err.Error(), true)
}

func truncateText(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Run starts the Bubble Tea program. A non-empty loadWarning (for example a
// malformed data file moved aside at startup) is surfaced as the initial
// status message.
func Run(store *engine.Store, styles *Styles, cfg *AppConfig, loadWarning string) error {
	app := NewApp(store, styles, cfg)
	if loadWarning != "" {
		app.SetStatus(loadWarning, true)
		app.statusUntil = time.Now().Add(15 * time.Second)
	}
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
