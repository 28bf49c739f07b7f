// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Maps order, payment, membership, and review states to colored badges

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/moto-admin/internal/tui/icons"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

func colors(level StatusLevel) (bg, fg lipgloss.Color) {
	switch level {
	case StatusOK:
		return BadgeOKBg, BadgeOKFg
	case StatusWarning:
		return BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		return BadgeCritBg, BadgeCritFg
	case StatusInfo:
		return BadgeInfoBg, BadgeInfoFg
	default:
		return BadgeNeutralBg, BadgeNeutralFg
	}
}

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	bg, fg := colors(level)
	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// Foreground is the text style for a level without a background
func Foreground(level StatusLevel) lipgloss.Style {
	bg, _ := colors(level)
	return lipgloss.NewStyle().Foreground(bg)
}

// StatusIcon returns the appropriate icon for a status level
func StatusIcon(level StatusLevel) string {
	switch level {
	case StatusOK:
		return Foreground(level).Render(icons.CheckOK.String())
	case StatusWarning:
		return Foreground(level).Render(icons.Warning.String())
	case StatusCritical:
		return Foreground(level).Render(icons.Critical.String())
	case StatusInfo:
		return Foreground(level).Render(icons.Info.String())
	default:
		return Foreground(level).Render("•")
	}
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	return fmt.Sprintf("%s %s", StatusIcon(level), Foreground(level).Render(text))
}

// LevelFor classifies a backend status string. Unknown values are neutral.
func LevelFor(status string) StatusLevel {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "delivered", "completed", "paid", "approved", "active", "succeeded", "premium":
		return StatusOK
	case "pending", "processing", "unpaid":
		return StatusWarning
	case "cancelled", "canceled", "failed", "rejected", "refunded":
		return StatusCritical
	case "shipped", "confirmed", "new":
		return StatusInfo
	default:
		return StatusNeutral
	}
}

// StatusStyle is the foreground style for a backend status string
func StatusStyle(status string) lipgloss.Style {
	return Foreground(LevelFor(status))
}

// YesNo renders a verification flag
func YesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}
