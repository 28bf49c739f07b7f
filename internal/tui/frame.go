// ABOUTME: Header, footer, and sidebar chrome around the active page
// ABOUTME: The frame always spans the full terminal width

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/markalston/moto-admin/internal/tui/icons"
	"github.com/markalston/moto-admin/internal/tui/pages"
	"github.com/markalston/moto-admin/internal/tui/styles"
)

// Layout constants
const (
	minTerminalWidth = 40
	sidebarWidth     = 20
	frameLines       = 3 // header, toast line, footer
)

type navItem struct {
	route pages.Route
	label string
	icon  icons.Icon
}

var nav = []navItem{
	{pages.RouteDashboard, "Dashboard", icons.Dashboard},
	{pages.RouteUsers, "Users", icons.Users},
	{pages.RouteOrders, "Orders", icons.Orders},
	{pages.RouteProducts, "Products", icons.Products},
	{pages.RouteBrands, "Brands", icons.Brands},
	{pages.RouteManufacturers, "Manufacturers", icons.Models},
	{pages.RouteCategories, "Categories", icons.Categories},
	{pages.RouteFeedback, "Feedback", icons.Feedback},
	{pages.RouteAmbassadors, "Ambassadors", icons.Ambassadors},
	{pages.RoutePartners, "Partners", icons.Partners},
}

// navIndex returns the sidebar entry that owns route, -1 for none
func navIndex(route pages.Route) int {
	switch route {
	case pages.RouteUser:
		route = pages.RouteUsers
	case pages.RouteOrder:
		route = pages.RouteOrders
	}
	for i, item := range nav {
		if item.route == route {
			return i
		}
	}
	return -1
}

// navKey is the digit that jumps to entry i
func navKey(i int) string {
	return fmt.Sprint((i + 1) % 10)
}

func (a *App) frameWidth() int {
	return max(a.width, minTerminalWidth)
}

// sidebarShown hides the sidebar on narrow terminals so tables keep their room
func (a *App) sidebarShown() bool {
	return a.width >= a.opts.CompactWidth
}

func (a *App) contentWidth() int {
	if a.sidebarShown() {
		return a.frameWidth() - sidebarWidth - 1
	}
	return a.frameWidth()
}

func (a *App) contentHeight() int {
	return max(a.height-frameLines, 1)
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftRendered := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("Moto Admin"))

	rightText := ""
	if u := a.gw.Session().User(); u != nil && !a.onLogin() {
		who := u.Email
		if who == "" {
			who = u.FullName
		}
		rightText = " " + contextStyle.Render(who)
		if exp, ok := a.gw.Session().TokenExpiry(); ok {
			rightText += styles.Faint.Render(" · expires " + humanize.Time(exp))
		}
		rightText += " "
	}

	fillWidth := max(width-4-lipgloss.Width(leftRendered)-lipgloss.Width(rightText), 0)
	header := "╭─" + leftRendered + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts for the current screen
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch {
	case a.onLogin():
		shortcuts = []string{"Enter Sign in", "ctrl+c Quit"}
	case a.dialog != nil:
		shortcuts = []string{"Tab Next", "Enter Confirm", "Esc Cancel"}
	case a.page != nil:
		shortcuts = append(shortcuts, a.page.Help()...)
		shortcuts = append(shortcuts, "Tab Menu", "L Logout", "q Quit")
	default:
		shortcuts = []string{"q Quit"}
	}

	var styled, plain []string
	used := 4
	for _, s := range shortcuts {
		if used+lipgloss.Width(s)+2 > width {
			break
		}
		used += lipgloss.Width(s) + 2
		plain = append(plain, s)
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styled = append(styled, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styled = append(styled, s)
		}
	}

	leftText := " " + strings.Join(styled, "  ")
	leftPlain := " " + strings.Join(plain, "  ")
	fillWidth := max(width-4-lipgloss.Width(leftPlain), 0)
	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + "─╯"
	return borderStyle.Render(footer)
}

// renderSidebar lists the sections with their jump keys
func (a *App) renderSidebar(height int) string {
	active := navIndex(a.Location().Route)
	lines := make([]string, 0, len(nav))
	for i, item := range nav {
		text := fmt.Sprintf("%s %s %s", navKey(i), item.icon.String(), item.label)
		style := styles.NavItem
		if i == active {
			style = styles.NavActive
		}
		lines = append(lines, style.Width(sidebarWidth).MaxWidth(sidebarWidth).Render(text))
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", sidebarWidth))
	}

	sep := styles.Rule.Render(strings.TrimSuffix(strings.Repeat("│\n", height), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(lines, "\n"), sep)
}

// clip keeps the first n lines of s
func clip(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	if a.toast.Visible() {
		sb.WriteString(" " + a.toast.View())
	}
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}
