// ABOUTME: Root bubbletea model for the admin console
// ABOUTME: Routes between pages, gates them behind the session guard, and hosts dialogs

package tui

import (
	"context"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/moto-admin/internal/api"
	"github.com/markalston/moto-admin/internal/gateway"
	"github.com/markalston/moto-admin/internal/tui/forms"
	"github.com/markalston/moto-admin/internal/tui/guard"
	"github.com/markalston/moto-admin/internal/tui/pages"
	"github.com/markalston/moto-admin/internal/tui/toast"
)

const maxHistory = 50

const (
	noticeExpired   = "Your session has expired. Please sign in again."
	noticeSignedOut = "You have been signed out."
)

// loginResultMsg is the outcome of a sign-in started from the login screen
type loginResultMsg struct {
	email string
	err   error
}

// App is the root model for the console
type App struct {
	client *api.Client
	gw     *gateway.Gateway
	opts   pages.Options

	guard  *guard.Guard
	login  *forms.Login
	dialog *forms.Dialog
	toast  *toast.Model

	history []pages.Location
	from    *pages.Location // where to return after signing in
	notice  string

	page      pages.Page
	built     pages.Location
	suspended bool // page dropped while the session is re-checked

	width  int
	height int
}

// New creates the console starting at the dashboard
func New(client *api.Client, opts pages.Options) *App {
	gw := client.Gateway()
	return &App{
		client:  client,
		gw:      gw,
		opts:    opts,
		guard:   guard.New(gw, gw.Session()),
		login:   forms.NewLogin(),
		toast:   toast.New(toast.DefaultTTL),
		history: []pages.Location{{Route: pages.RouteDashboard}},
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.guard.Init(), a.sync())
}

// Close releases the guard's subscriptions
func (a *App) Close() {
	a.guard.Close()
}

// Location is the route currently on top of the history
func (a *App) Location() pages.Location {
	return a.history[len(a.history)-1]
}

// History returns a copy of the navigation stack, oldest first
func (a *App) History() []pages.Location {
	return append([]pages.Location(nil), a.history...)
}

// Page returns the page being shown, nil on the login screen or while checking
func (a *App) Page() pages.Page {
	return a.page
}

func (a *App) onLogin() bool {
	return a.Location().Route == pages.RouteLogin
}

func (a *App) push(loc pages.Location) {
	if loc == a.Location() {
		return
	}
	a.history = append(a.history, loc)
	if len(a.history) > maxHistory {
		a.history = a.history[len(a.history)-maxHistory:]
	}
}

// replace swaps the top of the history so back never returns to it
func (a *App) replace(loc pages.Location) {
	a.history[len(a.history)-1] = loc
}

func (a *App) back() {
	if len(a.history) > 1 {
		a.history = a.history[:len(a.history)-1]
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	return a, tea.Batch(cmd, a.sync())
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	guardCmd := a.guard.Update(msg)
	a.toast.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.page != nil {
			a.page.SetSize(a.contentWidth(), a.contentHeight())
		}
		return tea.Batch(guardCmd, a.forward(msg))

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		return tea.Batch(guardCmd, a.updateKeys(msg))

	case tea.MouseMsg:
		return a.updateMouse(msg)

	case toast.Msg:
		return a.toast.Show(msg.Level, msg.Text)

	case forms.OpenMsg:
		if a.onLogin() {
			return nil
		}
		a.dialog = msg.Dialog
		return a.dialog.Init()

	case forms.ClosedMsg:
		a.dialog = nil
		return nil

	case forms.LoginSubmitMsg:
		return a.signIn(msg)

	case loginResultMsg:
		if msg.err != nil {
			slog.Info("Sign in failed", "error", msg.err)
			return a.login.Failed(pages.ErrorText(msg.err))
		}
		a.guard.Authenticated()
		return toast.Notify(toast.Success, "Signed in as "+msg.email)

	case pages.NavigateMsg:
		a.dialog = nil
		a.push(msg.To)
		return nil

	case pages.BackMsg:
		a.back()
		return nil
	}

	return tea.Batch(guardCmd, a.forward(msg))
}

// forward hands a message to whichever component is live
func (a *App) forward(msg tea.Msg) tea.Cmd {
	if a.onLogin() {
		return a.login.Update(msg)
	}
	var cmds []tea.Cmd
	if a.dialog != nil {
		cmds = append(cmds, a.dialog.Update(msg))
	}
	if a.page != nil {
		cmds = append(cmds, a.page.Update(msg))
	}
	return tea.Batch(cmds...)
}

func (a *App) updateKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case a.onLogin():
		return a.login.Update(msg)
	case a.dialog != nil:
		return a.dialog.Update(msg)
	case a.page == nil:
		if msg.String() == "q" {
			return tea.Quit
		}
		return nil
	case a.page.Capturing():
		return a.page.Update(msg)
	}

	key := msg.String()
	switch key {
	case "q":
		return tea.Quit
	case "esc", "backspace":
		a.back()
		return nil
	case "tab", "shift+tab":
		step := 1
		if key == "shift+tab" {
			step = len(nav) - 1
		}
		i := (max(navIndex(a.Location().Route), 0) + step) % len(nav)
		a.push(pages.Location{Route: nav[i].route})
		return nil
	case "L":
		return a.signOut()
	}
	for i, item := range nav {
		if key == navKey(i) {
			a.push(pages.Location{Route: item.route})
			return nil
		}
	}
	return a.page.Update(msg)
}

func (a *App) updateMouse(msg tea.MouseMsg) tea.Cmd {
	if a.onLogin() || a.dialog != nil || a.page == nil {
		return nil
	}
	msg.Y--
	if msg.Y < 0 {
		return nil
	}
	if a.sidebarShown() {
		if msg.X < sidebarWidth {
			if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y < len(nav) {
				a.push(pages.Location{Route: nav[msg.Y].route})
			}
			return nil
		}
		msg.X -= sidebarWidth + 1
	}
	return a.page.Update(msg)
}

func (a *App) signIn(msg forms.LoginSubmitMsg) tea.Cmd {
	gw := a.gw
	return func() tea.Msg {
		_, err := gw.Login(context.Background(), msg.Email, msg.Password)
		return loginResultMsg{email: msg.Email, err: err}
	}
}

func (a *App) signOut() tea.Cmd {
	if err := a.gw.Logout(context.Background()); err != nil {
		slog.Warn("Failed to clear session", "error", err)
	}
	a.notice = noticeSignedOut
	return a.guard.Check()
}

// sync reconciles the shown screen with the guard's decision
func (a *App) sync() tea.Cmd {
	switch {
	case a.guard.NeedsLogin() && !a.onLogin():
		from := a.Location()
		a.from = &from
		notice := a.notice
		if notice == "" && (a.page != nil || a.suspended) {
			notice = noticeExpired
		}
		a.notice = ""
		a.drop()
		a.suspended = false
		a.replace(pages.Location{Route: pages.RouteLogin})
		return a.login.Reset(notice)

	case a.guard.State() == guard.Unknown && !a.onLogin():
		if a.page != nil {
			a.suspended = true
		}
		a.drop()
		return nil

	case a.guard.State() == guard.Authenticated && a.onLogin():
		to := pages.Location{Route: pages.RouteDashboard}
		if a.from != nil {
			to = *a.from
			a.from = nil
		}
		a.replace(to)
	}

	if a.guard.State() != guard.Authenticated || a.onLogin() {
		return nil
	}
	if a.page != nil && a.built == a.Location() {
		return nil
	}

	loc := a.Location()
	a.page = a.build(loc)
	a.built = loc
	a.suspended = false
	a.page.SetSize(a.contentWidth(), a.contentHeight())
	return a.page.Init()
}

// drop discards the protected page and any dialog opened over it
func (a *App) drop() {
	a.dialog = nil
	a.page = nil
	a.built = pages.Location{}
}

func (a *App) build(loc pages.Location) pages.Page {
	c, opts := a.client, a.opts
	switch loc.Route {
	case pages.RouteUsers:
		return pages.NewUsers(c, opts)
	case pages.RouteUser:
		return pages.NewUserDetail(c, loc.ID, opts)
	case pages.RouteOrders:
		return pages.NewOrders(c, opts)
	case pages.RouteOrder:
		return pages.NewOrderDetail(c, loc.ID, opts)
	case pages.RouteProducts:
		return pages.NewProducts(c, opts)
	case pages.RouteBrands:
		return pages.NewBrands(c.Brands, "brand", opts)
	case pages.RouteManufacturers:
		return pages.NewBrands(c.Manufacturers, "manufacturer", opts)
	case pages.RouteCategories:
		return pages.NewCategories(c, opts)
	case pages.RouteFeedback:
		return pages.NewFeedback(c, opts)
	case pages.RouteAmbassadors:
		return pages.NewAmbassadors(c, opts)
	case pages.RoutePartners:
		return pages.NewPartners(c, opts)
	default:
		return pages.NewDashboard(c, opts)
	}
}

// View implements tea.Model
func (a *App) View() string {
	h := a.contentHeight()
	var body string

	switch {
	case a.onLogin():
		body = lipgloss.Place(a.frameWidth(), h, lipgloss.Center, lipgloss.Center, a.login.View())
	case a.page == nil:
		body = lipgloss.Place(a.frameWidth(), h, lipgloss.Center, lipgloss.Center, a.guard.View())
	default:
		var content string
		if a.dialog != nil {
			content = lipgloss.Place(a.contentWidth(), h, lipgloss.Center, lipgloss.Center, a.dialog.View())
		} else {
			content = clip(a.page.View(), h)
		}
		content = lipgloss.NewStyle().Width(a.contentWidth()).Height(h).Render(content)
		if a.sidebarShown() {
			body = lipgloss.JoinHorizontal(lipgloss.Top, a.renderSidebar(h), content)
		} else {
			body = content
		}
	}

	return a.wrapWithFrame(strings.TrimRight(body, "\n"))
}

// Run starts the console and blocks until it exits
func Run(client *api.Client, opts pages.Options) error {
	app := New(client, opts)
	defer app.Close()

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

var _ tea.Model = (*App)(nil)
