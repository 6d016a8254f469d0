package ui

import (
	"taskmaster/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all application styles, initialized from theme configuration.
type Styles struct {
	// Colors
	ColorPrimary   lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorText      lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorSuccess   lipgloss.Color

	// Header
	TitleStyle    lipgloss.Style
	StatsStyle    lipgloss.Style
	ViewInfoStyle lipgloss.Style
	ProgressStyle lipgloss.Style
	DividerStyle  lipgloss.Style

	// Task rows
	SelectionMarker     string
	TaskPendingStyle    lipgloss.Style
	TaskDoneStyle       lipgloss.Style
	TaskSelectedStyle   lipgloss.Style
	CheckboxDone        string
	CheckboxPending     string
	PriorityHighStyle   lipgloss.Style
	PriorityMediumStyle lipgloss.Style
	PriorityLowStyle    lipgloss.Style
	DueOverdueStyle     lipgloss.Style
	DueSoonStyle        lipgloss.Style
	DueNormalStyle      lipgloss.Style

	// Overlays
	OverlayStyle       lipgloss.Style
	OverlayDangerStyle lipgloss.Style
	OverlayTitleStyle  lipgloss.Style
	OverlayBodyStyle   lipgloss.Style
	OverlayHintStyle   lipgloss.Style

	// Footer
	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style
	StatusStyle  lipgloss.Style
	ErrorStyle   lipgloss.Style

	// Input
	InputPromptStyle lipgloss.Style
}

// NewStyles creates a Styles instance from the given theme. Empty theme
// colors fall back to the defaults.
func NewStyles(theme *config.ThemeConfig) *Styles {
	s := &Styles{}

	s.ColorPrimary = colorOrDefault(theme.Primary, "#D97757")
	s.ColorMuted = colorOrDefault(theme.Muted, "#6B7280")
	s.ColorText = colorOrDefault(theme.Text, "#F9FAFB")
	s.ColorDanger = colorOrDefault(theme.Danger, "#EF4444")
	s.ColorWarning = colorOrDefault(theme.Warning, "#F59E0B")
	s.ColorSuccess = colorOrDefault(theme.Success, "#10B981")

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorText).
		Background(s.ColorPrimary).
		Padding(0, 1)

	s.StatsStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted)

	s.ViewInfoStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted)

	s.ProgressStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary)

	s.DividerStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted)

	s.SelectionMarker = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true).
		Render("▸")

	s.TaskPendingStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.TaskDoneStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted).
		Strikethrough(true)

	s.TaskSelectedStyle = lipgloss.NewStyle().
		Foreground(s.ColorText).
		Bold(true)

	s.CheckboxDone = lipgloss.NewStyle().Foreground(s.ColorSuccess).Render("✔")
	s.CheckboxPending = lipgloss.NewStyle().Foreground(s.ColorMuted).Render("○")

	s.PriorityHighStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	s.PriorityMediumStyle = lipgloss.NewStyle().
		Foreground(s.ColorWarning)

	s.PriorityLowStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted)

	s.DueOverdueStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	s.DueSoonStyle = lipgloss.NewStyle().
		Foreground(s.ColorWarning)

	s.DueNormalStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted)

	s.OverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorPrimary).
		Padding(1, 2)

	s.OverlayDangerStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorDanger).
		Padding(1, 2)

	s.OverlayTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary).
		MarginBottom(1)

	s.OverlayBodyStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.OverlayHintStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Italic(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	s.InputPromptStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	return s
}

// colorOrDefault returns the lipgloss.Color from a hex string, or the
// default if empty.
func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

// RenderHelp renders alternating key/description pairs for the footer.
func (s *Styles) RenderHelp(keys ...string) string {
	var result string
	for i := 0; i+1 < len(keys); i += 2 {
		if i > 0 {
			result += "  "
		}
		result += s.HelpKeyStyle.Render("["+keys[i]+"]") + " " + s.HelpStyle.Render(keys[i+1])
	}
	return result
}
