// ABOUTME: Dashboard screen with headline statistics and the latest orders
// ABOUTME: Stat blocks wrap to two rows on narrow terminals

package pages

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/moto-admin/internal/api"
	"github.com/markalston/moto-admin/internal/tui/datatable"
	"github.com/markalston/moto-admin/internal/tui/icons"
	"github.com/markalston/moto-admin/internal/tui/styles"
	"github.com/markalston/moto-admin/internal/tui/widgets"
)

// Dashboard is the landing screen
type Dashboard struct {
	client *api.Client
	data   *loader[api.Dashboard]
	recent *datatable.Table[api.Order]
	width  int
}

// NewDashboard creates the dashboard page
func NewDashboard(c *api.Client, opts Options) *Dashboard {
	d := &Dashboard{client: c}
	d.data = newLoader(c.Dashboard.Statistics)

	cols := orderColumns()
	recent := make([]datatable.Column[api.Order], 0, len(cols))
	for _, col := range cols {
		// the dashboard keeps the short order summary
		if col.Key == "email" || col.Key == "payment_status" {
			continue
		}
		recent = append(recent, col)
	}
	d.recent = datatable.New(recent).
		WithEmptyMessage("No recent orders").
		WithBreakpoints(opts.CompactWidth, opts.WideWidth).
		OnRowClick(func(o api.Order) tea.Cmd { return Navigate(RouteOrder, o.ID) })
	return d
}

func (d *Dashboard) Init() tea.Cmd {
	return d.data.start()
}

func (d *Dashboard) Title() string {
	return "Dashboard"
}

func (d *Dashboard) Capturing() bool {
	return false
}

func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.recent.SetWidth(width)
}

func (d *Dashboard) Help() []string {
	return []string{"↑↓ Select", "Enter Open order", "s Status", "r Refresh"}
}

// Recent exposes the recent orders table
func (d *Dashboard) Recent() *datatable.Table[api.Order] {
	return d.recent
}

func (d *Dashboard) Update(msg tea.Msg) tea.Cmd {
	if changed, cmd := d.data.update(msg); changed || cmd != nil {
		if changed {
			d.recent.SetRecords(d.data.value.RecentOrders)
		}
		return cmd
	}

	switch msg := msg.(type) {
	case MutationMsg:
		if msg.Err != nil {
			return msg.Outcome()
		}
		return tea.Batch(msg.Outcome(), d.data.start())

	case tea.MouseMsg:
		msg.Y -= lipgloss.Height(d.top())
		return d.recent.Update(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return d.data.start()
		case "s":
			if o, ok := d.recent.Selected(); ok {
				return statusDialog(d.client, o)
			}
			return nil
		}
		return d.recent.Update(msg)
	}
	return nil
}

// top is everything above the recent orders table
func (d *Dashboard) top() string {
	var b strings.Builder
	b.WriteString(styles.ValueStyle.Render("Dashboard"))
	if s := d.data.status(); s != "" {
		b.WriteString("   " + s)
	}
	b.WriteString("\n\n")
	b.WriteString(d.blocks())
	b.WriteString("\n\n")
	b.WriteString(styles.Selected.Render("Recent Orders"))
	return b.String()
}

func (d *Dashboard) blocks() string {
	cfg := widgets.DefaultStatBlockConfig()
	stats := d.data.value.Statistics
	value := func(s string) string {
		if !d.data.loaded {
			return "-"
		}
		return s
	}

	blocks := []string{
		widgets.StatBlock(icons.Users, "Users", value(Count(stats.TotalUsers)), "registered", cfg),
		widgets.StatBlock(icons.Orders, "Orders", value(Count(stats.TotalOrders)), "all time", cfg),
		widgets.StatBlock(icons.CheckOK, "Revenue", value(Money(stats.TotalRevenue)), "all time", cfg),
		widgets.StatBlock(icons.Products, "Products", value(Count(stats.TotalProducts)), "parts and merch", cfg),
	}

	perRow := len(blocks)
	if d.width > 0 {
		perRow = max(1, min(len(blocks), (d.width+1)/(cfg.Width+1)))
	}
	var rows []string
	for i := 0; i < len(blocks); i += perRow {
		end := min(i+perRow, len(blocks))
		row := make([]string, 0, 2*(end-i))
		for j, blk := range blocks[i:end] {
			if j > 0 {
				row = append(row, " ")
			}
			row = append(row, blk)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}

func (d *Dashboard) View() string {
	return d.top() + "\n" + d.recent.View()
}

var _ Page = (*Dashboard)(nil)

