// ABOUTME: Dashboard command showing headline statistics
// ABOUTME: Prints the totals followed by the most recent orders

package cmd

import (
	"context"
	"io"

	"github.com/markalston/moto-admin/internal/tui/pages"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show store totals and recent orders",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
		return runDashboard(ctx, w, e)
	}),
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(ctx context.Context, w io.Writer, e *env) int {
	if !requireSession(ctx, w, e) {
		return exitSession
	}
	d, err := e.client.Dashboard.Statistics(ctx)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, map[string]any{"statistics": d.Statistics, "recent_orders": orEmpty(d.RecentOrders)})
		return exitOK
	}

	s := d.Statistics
	printFields(w, []field{
		{"Users", pages.Count(s.TotalUsers)},
		{"Orders", pages.Count(s.TotalOrders)},
		{"Revenue", pages.Money(s.TotalRevenue)},
		{"Products", pages.Count(s.TotalProducts)},
	})
	heading(w, "Recent orders")
	return list(w, orderColumns(), d.RecentOrders, nil, "orders")
}

// orEmpty keeps JSON output an array when there are no records
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
