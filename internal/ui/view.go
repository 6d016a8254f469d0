package ui

import (
	"fmt"
	"strings"

	"taskmaster/internal/task"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// listTop is the row where the task list starts: title, blank, view info,
// progress, divider.
const listTop = 5

// View renders the entire interface.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.mode {
	case modeHelp:
		return a.renderHelpOverlay()
	case modePriority:
		return a.renderPriorityOverlay()
	case modeConfirmDelete:
		return a.renderConfirmOverlay()
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())

	view := a.view()
	b.WriteString(a.renderTasks(view))

	b.WriteString("\n")
	if a.mode == modeAdd || a.mode == modeEdit || a.mode == modeDate || a.mode == modeSearch {
		b.WriteString(a.renderInputLine())
	} else {
		b.WriteString(a.renderFooter())
	}

	return b.String()
}

// renderHeader draws the title bar with stats, the view state line, and
// the completion progress bar.
func (a *App) renderHeader() string {
	var b strings.Builder

	title := a.styles.TitleStyle.Render("▸ taskmaster")

	stats := a.store.Stats()
	statsText := fmt.Sprintf("%d total · %d pending · %d done", stats.Total, stats.Pending, stats.Done)
	if stats.Overdue > 0 {
		statsText += fmt.Sprintf(" · %d overdue", stats.Overdue)
	}
	statsView := a.styles.StatsStyle.Render(statsText)

	gap := a.width - lipgloss.Width(title) - lipgloss.Width(statsView) - 2
	if gap < 1 {
		gap = 1
	}
	b.WriteString(title)
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(statsView)
	b.WriteString("\n\n")

	// View state line
	arrow := "↑"
	if a.store.SortReversed() {
		arrow = "↓"
	}
	info := fmt.Sprintf("view: %s  ·  sort: %s %s", a.store.Filter(), a.store.SortField(), arrow)
	if q := a.store.Search(); q != "" {
		info += "  ·  search: " + q
	}
	b.WriteString(" " + a.styles.ViewInfoStyle.Render(info))
	b.WriteString("\n")

	// Completion bar
	if stats.Total > 0 {
		barWidth := min(40, max(10, a.width-30))
		filled := (stats.Done * barWidth) / stats.Total
		pct := (stats.Done * 100) / stats.Total
		bar := a.styles.ProgressStyle.Render(strings.Repeat("━", filled)) +
			a.styles.DividerStyle.Render(strings.Repeat("─", barWidth-filled))
		b.WriteString(fmt.Sprintf(" %s %s %s",
			a.styles.ProgressStyle.Render("Completion"),
			bar,
			a.styles.ProgressStyle.Render(fmt.Sprintf("%d%%", pct))))
	}
	b.WriteString("\n")

	divWidth := max(10, a.width-2)
	b.WriteString(" " + a.styles.DividerStyle.Render(strings.Repeat("─", divWidth)))
	b.WriteString("\n")

	return b.String()
}

// listWindow returns the [start, end) slice of the view that fits on
// screen, keeping the cursor visible.
func (a *App) listWindow(n int) (int, int) {
	visible := a.height - listTop - 3
	if visible < 3 {
		visible = 3
	}
	start := 0
	if a.cursor >= visible {
		start = a.cursor - visible + 1
	}
	end := min(start+visible, n)
	return start, end
}

func (a *App) renderTasks(view []*task.Task) string {
	if len(view) == 0 {
		return "\n " + a.styles.ViewInfoStyle.Render("No tasks found") + "\n"
	}

	var b strings.Builder
	start, end := a.listWindow(len(view))

	for i := start; i < end; i++ {
		t := view[i]
		selected := i == a.cursor && a.mode == modeNormal

		marker := " "
		if selected {
			marker = a.styles.SelectionMarker
		}

		checkbox := a.styles.CheckboxPending
		if t.Status == task.StatusDone {
			checkbox = a.styles.CheckboxDone
		}

		badge := a.renderPriorityBadge(t.Priority)
		due := a.renderDueIndicator(t)
		dueWidth := lipgloss.Width(due)

		// marker(1) + space + checkbox(1) + space + badge(3) + space
		fixed := 8
		if dueWidth > 0 {
			fixed += dueWidth + 1
		}
		textWidth := max(5, a.width-2-fixed)
		desc := runewidth.Truncate(t.Description, textWidth, "…")

		var descView string
		switch {
		case t.Status == task.StatusDone:
			descView = a.styles.TaskDoneStyle.Render(desc)
		case selected:
			descView = a.styles.TaskSelectedStyle.Render(desc)
		default:
			descView = a.styles.TaskPendingStyle.Render(desc)
		}

		line := fmt.Sprintf(" %s %s %s %s", marker, checkbox, badge, descView)
		if dueWidth > 0 {
			pad := textWidth - runewidth.StringWidth(desc) + 1
			if pad < 1 {
				pad = 1
			}
			line += strings.Repeat(" ", pad) + due
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

// renderPriorityBadge returns the exclamation-mark badge, one mark per
// priority ordinal, padded to a fixed width of three cells.
func (a *App) renderPriorityBadge(p task.Priority) string {
	marks := strings.Repeat("!", int(p))
	pad := strings.Repeat(" ", 3-int(p))
	switch p {
	case task.PriorityHigh:
		return a.styles.PriorityHighStyle.Render(marks) + pad
	case task.PriorityMedium:
		return a.styles.PriorityMediumStyle.Render(marks) + pad
	default:
		return a.styles.PriorityLowStyle.Render(marks) + pad
	}
}

// renderDueIndicator returns the colored due-date column for a task, empty
// when no deadline is set.
func (a *App) renderDueIndicator(t *task.Task) string {
	if t.DueDate == nil {
		return ""
	}
	date := t.DueDate.Format("Jan 02")
	switch a.store.Bucket(t) {
	case task.BucketOverdue:
		return a.styles.DueOverdueStyle.Render("OVERDUE " + date)
	case task.BucketSoon:
		return a.styles.DueSoonStyle.Render(date)
	default:
		return a.styles.DueNormalStyle.Render(date)
	}
}

func (a *App) renderInputLine() string {
	var prompt string
	switch a.mode {
	case modeAdd:
		prompt = "New task: "
	case modeEdit:
		prompt = "Edit: "
	case modeDate:
		prompt = "Due date: "
	case modeSearch:
		prompt = "Search: "
	}
	return " " + a.styles.InputPromptStyle.Render(prompt) + a.input.View()
}

func (a *App) renderFooter() string {
	if a.status != "" {
		if a.statusErr {
			return " " + a.styles.ErrorStyle.Render(a.status)
		}
		return " " + a.styles.StatusStyle.Render(a.status)
	}

	return " " + a.styles.RenderHelp(
		"n", "new",
		"space", "toggle",
		"e", "edit",
		"d", "del",
		"p", "prio",
		"u", "due",
		"s", "search",
		"r", "sort",
		"tab", "filter",
		"m", "archive",
		"?", "help",
		"q", "quit",
	)
}

func (a *App) renderPriorityOverlay() string {
	var b strings.Builder
	b.WriteString(a.styles.OverlayTitleStyle.Render("Select priority"))
	b.WriteString("\n\n")
	b.WriteString(a.styles.OverlayBodyStyle.Render(a.targetText))
	b.WriteString("\n\n")

	labels := []string{"Low", "Medium", "High", "Cancel"}
	for i, label := range labels {
		marker := "  "
		style := a.styles.OverlayHintStyle
		if i == a.prioCursor {
			marker = a.styles.SelectionMarker + " "
			style = a.styles.OverlayBodyStyle
		}
		b.WriteString(marker + style.Render(label))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(a.styles.OverlayHintStyle.Render("[enter] select    [esc] cancel"))

	return a.placeOverlay(a.styles.OverlayStyle.Render(b.String()))
}

func (a *App) renderConfirmOverlay() string {
	var b strings.Builder
	b.WriteString(a.styles.ErrorStyle.Render("Delete task?"))
	b.WriteString("\n\n")
	b.WriteString(a.styles.OverlayBodyStyle.Render(a.targetText))
	b.WriteString("\n\n")
	b.WriteString(a.styles.OverlayHintStyle.Render("[y/enter] delete    [n/esc] cancel"))

	return a.placeOverlay(a.styles.OverlayDangerStyle.Render(b.String()))
}

func (a *App) renderHelpOverlay() string {
	rows := [][2]string{
		{"n", "new task"},
		{"e / enter", "edit task"},
		{"space", "toggle done"},
		{"d", "delete task"},
		{"p", "set priority"},
		{"u", "set due date (YYYY-MM-DD, 'none' clears)"},
		{"s / /", "search"},
		{"tab", "cycle filter (all/pending/done)"},
		{"r", "cycle sort (created/priority/alpha)"},
		{"R", "reverse sort order"},
		{"m", "archive done tasks"},
		{"j/k ↓/↑", "move"},
		{"g / G", "top / bottom"},
		{"?", "help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(a.styles.OverlayTitleStyle.Render("Keyboard shortcuts"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			a.styles.HelpKeyStyle.Render(fmt.Sprintf("%-10s", row[0])),
			a.styles.HelpStyle.Render(row[1])))
	}
	b.WriteString("\n")
	b.WriteString(a.styles.OverlayHintStyle.Render("press any key to close"))

	return a.placeOverlay(a.styles.OverlayStyle.Render(b.String()))
}

func (a *App) placeOverlay(content string) string {
	if a.width <= 0 || a.height <= 0 {
		return content
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}
