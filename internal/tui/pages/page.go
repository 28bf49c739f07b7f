// ABOUTME: Routed console screens and the messages they exchange with the shell
// ABOUTME: Pages fetch through the api client and report navigation as messages

package pages

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/markalston/moto-admin/internal/api"
	"github.com/markalston/moto-admin/internal/gateway"
	"github.com/markalston/moto-admin/internal/tui/toast"
	"github.com/shopspring/decimal"
)

// Route names a console screen
type Route string

const (
	RouteLogin         Route = "login"
	RouteDashboard     Route = "dashboard"
	RouteUsers         Route = "users"
	RouteUser          Route = "user"
	RouteOrders        Route = "orders"
	RouteOrder         Route = "order"
	RouteProducts      Route = "products"
	RouteBrands        Route = "brands"
	RouteManufacturers Route = "manufacturers"
	RouteCategories    Route = "categories"
	RouteFeedback      Route = "feedback"
	RouteAmbassadors   Route = "ambassadors"
	RoutePartners      Route = "partners"
)

// Location is a route plus the record it shows, if any
type Location struct {
	Route Route
	ID    api.ID
}

func (l Location) String() string {
	if l.ID == "" {
		return string(l.Route)
	}
	return string(l.Route) + "/" + string(l.ID)
}

// NavigateMsg pushes a new location onto the history
type NavigateMsg struct {
	To Location
}

// BackMsg pops the history
type BackMsg struct{}

// Navigate returns a command that opens loc
func Navigate(route Route, id api.ID) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{To: Location{Route: route, ID: id}}
	}
}

// Back returns a command that returns to the previous location
func Back() tea.Cmd {
	return func() tea.Msg { return BackMsg{} }
}

// Page is one routed screen
type Page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	Title() string
	Help() []string
	// Capturing reports whether the page is taking text input and needs every key
	Capturing() bool
}

// Options are the presentation settings shared by every page
type Options struct {
	PageSize     int
	CompactWidth int
	WideWidth    int
}

// Mutate runs a write and reports its outcome as a toast. On success the
// current page is asked to reload.
func Mutate(success string, run func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return MutationMsg{Success: success, Err: run(context.Background())}
	}
}

// MutationMsg is the outcome of a write started from a page
type MutationMsg struct {
	Success string
	Err     error
}

// Outcome turns a mutation result into the toast to show. Session failures
// show nothing because the guard takes over.
func (m MutationMsg) Outcome() tea.Cmd {
	if m.Err == nil {
		return toast.Notify(toast.Success, m.Success)
	}
	if gateway.IsUnauthorized(m.Err) {
		return nil
	}
	return toast.Notify(toast.Error, ErrorText(m.Err))
}

// ErrorText is the user-facing text for a failed call
func ErrorText(err error) string {
	var gwErr *gateway.Error
	if errors.As(err, &gwErr) {
		return gwErr.Message
	}
	return err.Error()
}

// Money formats an amount with two decimals and thousands separators
func Money(d decimal.Decimal) string {
	return "$" + humanize.FormatFloat("#,###.##", d.Round(2).InexactFloat64())
}

// Count formats a whole number with thousands separators
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// When formats a timestamp as a date, blank when unknown
func When(t api.Timestamp) string {
	return t.Date()
}

// Ago formats a timestamp relative to now
func Ago(t api.Timestamp) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t.Time)
}

// label title-cases a backend status for display
func label(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "_", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}
