// ABOUTME: Compact stat block widget for the dashboard
// ABOUTME: Shows an icon, title, headline value, and subtitle in a bordered box

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/moto-admin/internal/tui/icons"
	"github.com/mattn/go-runewidth"
)

// StatBlockConfig holds configuration for a stat block
type StatBlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultStatBlockConfig returns sensible defaults
func DefaultStatBlockConfig() StatBlockConfig {
	return StatBlockConfig{
		Width:       24,
		BorderColor: lipgloss.Color("#6B7280"),
		TitleColor:  lipgloss.Color("#7C3AED"),
		ValueColor:  lipgloss.Color("#F9FAFB"),
	}
}

// StatBlock renders a headline number with the title set into the top border
func StatBlock(icon icons.Icon, title, value, subtitle string, config StatBlockConfig) string {
	if config.Width <= 0 {
		config.Width = 24
	}
	inner := config.Width - 4

	titleStr := runewidth.Truncate(fmt.Sprintf("%s %s", icon.String(), title), inner-1, "…")
	border := lipgloss.NewStyle().Foreground(config.BorderColor)
	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor)
	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	subStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	line := func(text string, style lipgloss.Style) string {
		text = runewidth.Truncate(text, inner, "…")
		padding := strings.Repeat(" ", max(0, inner-runewidth.StringWidth(text)))
		return border.Render("│  ") + style.Render(text) + padding + border.Render("│")
	}

	top := border.Render("┌─ ") + titleStyle.Render(titleStr) + border.Render(" "+strings.Repeat("─", max(0, inner-runewidth.StringWidth(titleStr)-1))+"┐")
	bottom := border.Render("└" + strings.Repeat("─", config.Width-2) + "┘")

	return strings.Join([]string{top, line(value, valueStyle), line(subtitle, subStyle), bottom}, "\n")
}
