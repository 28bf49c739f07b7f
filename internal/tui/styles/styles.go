// ABOUTME: Shared lipgloss styles for consistent console appearance
// ABOUTME: Defines colors, borders, and text styles used across components

package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light

	// Colors - Extended palette
	Accent  = lipgloss.Color("#8B5CF6") // Lighter purple for highlights
	Surface = lipgloss.Color("#374151") // Rules and separators
	Dim     = lipgloss.Color("#4B5563") // Disabled controls
	Subtle  = lipgloss.Color("#9CA3AF") // Column headers

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	// Panels
	ActivePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Sidebar navigation
	NavItem = lipgloss.NewStyle().
		Foreground(Muted).
		PaddingLeft(1)

	NavActive = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			PaddingLeft(1)

	// Value style for emphasized data
	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	// Label style for field names in detail views and cards
	LabelStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Bold(true)

	// Table parts
	TableHeader = lipgloss.NewStyle().
			Foreground(Subtle).
			Bold(true)

	Rule = lipgloss.NewStyle().
		Foreground(Surface)

	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Button = lipgloss.NewStyle().
		Foreground(Accent)

	Disabled = lipgloss.NewStyle().
			Foreground(Dim)

	Faint = lipgloss.NewStyle().
		Foreground(Muted)

	// Error text
	ErrorText = lipgloss.NewStyle().
			Foreground(Danger)
)
