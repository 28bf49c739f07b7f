// ABOUTME: Integration tests for the console shell
// ABOUTME: Drives the App against an httptest backend, running commands the way the program loop does

package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/markalston/moto-admin/internal/api"
	"github.com/markalston/moto-admin/internal/gateway"
	"github.com/markalston/moto-admin/internal/session"
	"github.com/markalston/moto-admin/internal/tui/forms"
	"github.com/markalston/moto-admin/internal/tui/pages"
)

const (
	dashboardBody = `{"statistics":{"total_users":3,"total_orders":2,"total_revenue":"50","total_products":4},"recent_orders":[]}`
	ordersBody    = `{"orders":[{"id":7,"order_number":"A-7","status":"paid"}],"pagination":{"page":1,"limit":20,"total":1,"pages":1}}`
)

// fakeBackend accepts token "fresh" everywhere; token "stale" is rejected on orders
type fakeBackend struct {
	mu    sync.Mutex
	calls map[string]int
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + r.URL.Path
	f.mu.Lock()
	f.calls[route]++
	f.mu.Unlock()

	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	w.Header().Set("Content-Type", "application/json")

	switch route {
	case "POST /auth/login-admin":
		var creds struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"message":"ok","token":"fresh","user":{"id":"1","email":"` + creds.Email + `","is_admin":1}}`))
	case "GET /admin/dashboard":
		_, _ = w.Write([]byte(dashboardBody))
	case "GET /admin/orders", "GET /admin/users":
		if token == "stale" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"Invalid token"}`))
			return
		}
		_, _ = w.Write([]byte(ordersBody))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	}
}

func (f *fakeBackend) count(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[route]
}

// harness runs every command on its own goroutine and feeds results back
// into the App on the test goroutine. Commands that block stay pending.
type harness struct {
	t       *testing.T
	app     *App
	mgr     *session.Manager
	backend *fakeBackend
	pending []chan tea.Msg
	quit    bool
}

func newHarness(t *testing.T, token string) *harness {
	t.Helper()
	backend := &fakeBackend{calls: map[string]int{}}
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	mgr := session.NewManager(session.NewMemoryStore(), nil)
	if token != "" {
		if err := mgr.Establish(context.Background(), token, &session.User{ID: "1", Email: "admin@example.com"}); err != nil {
			t.Fatal(err)
		}
	}
	gw := gateway.New(mgr, gateway.Options{BaseURL: server.URL, Timeout: 2 * time.Second})
	client := api.New(gw, time.Minute)
	t.Cleanup(client.Close)

	app := New(client, pages.Options{PageSize: 20, CompactWidth: 80, WideWidth: 120})
	t.Cleanup(app.Close)

	h := &harness{t: t, app: app, mgr: mgr, backend: backend}
	h.send(tea.WindowSizeMsg{Width: 130, Height: 40})
	h.exec(app.Init())
	h.settle()
	return h
}

func (h *harness) exec(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	h.pending = append(h.pending, ch)
}

func (h *harness) handle(msg tea.Msg) {
	switch msg := msg.(type) {
	case nil, spinner.TickMsg:
		return
	case tea.BatchMsg:
		for _, c := range msg {
			h.exec(c)
		}
		return
	case tea.QuitMsg:
		h.quit = true
		return
	}
	_, cmd := h.app.Update(msg)
	h.exec(cmd)
}

// settle processes results until nothing new arrives for a short while
func (h *harness) settle() {
	idle := 0
	for idle < 4 {
		progressed := false
		still := h.pending[:0]
		var ready []tea.Msg
		for _, ch := range h.pending {
			select {
			case msg := <-ch:
				ready = append(ready, msg)
				progressed = true
			default:
				still = append(still, ch)
			}
		}
		h.pending = still
		for _, msg := range ready {
			h.handle(msg)
		}
		if progressed {
			idle = 0
			continue
		}
		idle++
		time.Sleep(25 * time.Millisecond)
	}
}

func (h *harness) send(msg tea.Msg) {
	h.handle(msg)
	h.settle()
}

func (h *harness) key(s string) {
	var msg tea.KeyMsg
	switch s {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	h.send(msg)
}

func routes(locs []pages.Location) []pages.Route {
	out := make([]pages.Route, len(locs))
	for i, l := range locs {
		out[i] = l.Route
	}
	return out
}

func equalRoutes(a, b []pages.Route) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStartsAtLoginWithoutSession(t *testing.T) {
	h := newHarness(t, "")

	if got := h.app.Location().Route; got != pages.RouteLogin {
		t.Fatalf("route = %s, want login", got)
	}
	if n := len(h.app.History()); n != 1 {
		t.Errorf("history length = %d, want 1", n)
	}
	if n := h.backend.count("GET /admin/dashboard"); n != 0 {
		t.Errorf("validation sent %d requests without a token", n)
	}
	if strings.Contains(h.app.View(), noticeExpired) {
		t.Error("first visit shows the expiry notice")
	}
}

func TestLoginOpensDashboard(t *testing.T) {
	h := newHarness(t, "")

	h.send(forms.LoginSubmitMsg{Email: "admin@example.com", Password: "secret"})

	if got := h.app.Location().Route; got != pages.RouteDashboard {
		t.Fatalf("route = %s, want dashboard", got)
	}
	if h.app.Page() == nil || h.app.Page().Title() != "Dashboard" {
		t.Fatalf("page = %v", h.app.Page())
	}
	if !h.mgr.HasToken(context.Background()) {
		t.Error("token not stored")
	}
	if !h.app.toast.Visible() || !strings.Contains(h.app.toast.Text(), "admin@example.com") {
		t.Errorf("toast = %q", h.app.toast.Text())
	}
}

func TestLoginFailureStaysOnLogin(t *testing.T) {
	h := newHarness(t, "")

	h.send(forms.LoginSubmitMsg{Email: "admin@example.com", Password: "wrong"})

	if got := h.app.Location().Route; got != pages.RouteLogin {
		t.Fatalf("route = %s, want login", got)
	}
	if !strings.Contains(h.app.View(), "Invalid credentials") {
		t.Errorf("view missing server error:\n%s", h.app.View())
	}
}

func TestForbiddenRedirectsToLoginAndBack(t *testing.T) {
	h := newHarness(t, "stale")
	if got := h.app.Location().Route; got != pages.RouteDashboard {
		t.Fatalf("route = %s, want dashboard", got)
	}

	h.send(pages.NavigateMsg{To: pages.Location{Route: pages.RouteOrders}})

	if got := routes(h.app.History()); !equalRoutes(got, []pages.Route{pages.RouteDashboard, pages.RouteLogin}) {
		t.Fatalf("history = %v, want [dashboard login]", got)
	}
	if h.mgr.HasToken(context.Background()) {
		t.Error("rejected token still stored")
	}
	if !strings.Contains(h.app.View(), noticeExpired) {
		t.Errorf("login screen missing expiry notice:\n%s", h.app.View())
	}

	h.send(forms.LoginSubmitMsg{Email: "admin@example.com", Password: "secret"})

	if got := routes(h.app.History()); !equalRoutes(got, []pages.Route{pages.RouteDashboard, pages.RouteOrders}) {
		t.Fatalf("history = %v, want [dashboard orders]", got)
	}
	if h.app.Page() == nil || h.app.Page().Title() != "Orders" {
		t.Fatalf("page = %v", h.app.Page())
	}
	if !strings.Contains(h.app.View(), "A-7") {
		t.Errorf("orders not shown after sign in:\n%s", h.app.View())
	}
}

func TestNavigationAndHistory(t *testing.T) {
	h := newHarness(t, "fresh")

	h.key("2")
	h.key("3")
	if got := routes(h.app.History()); !equalRoutes(got, []pages.Route{pages.RouteDashboard, pages.RouteUsers, pages.RouteOrders}) {
		t.Fatalf("history = %v", got)
	}
	if h.app.Page().Title() != "Orders" {
		t.Errorf("page = %s", h.app.Page().Title())
	}

	h.key("esc")
	if got := h.app.Location().Route; got != pages.RouteUsers {
		t.Errorf("after back route = %s, want users", got)
	}

	h.key("tab")
	if got := h.app.Location().Route; got != pages.RouteOrders {
		t.Errorf("after tab route = %s, want orders", got)
	}

	h.send(pages.NavigateMsg{To: pages.Location{Route: pages.RouteOrder, ID: "7"}})
	if got := h.app.Location(); got.Route != pages.RouteOrder || got.ID != "7" {
		t.Errorf("location = %v", got)
	}
	if i := navIndex(pages.RouteOrder); nav[i].route != pages.RouteOrders {
		t.Errorf("order detail highlights %s", nav[i].route)
	}
}

func TestLogoutKey(t *testing.T) {
	h := newHarness(t, "fresh")

	h.key("L")

	if got := h.app.Location().Route; got != pages.RouteLogin {
		t.Fatalf("route = %s, want login", got)
	}
	if h.mgr.HasToken(context.Background()) {
		t.Error("token survived logout")
	}
	if !strings.Contains(h.app.View(), noticeSignedOut) {
		t.Errorf("missing sign out notice:\n%s", h.app.View())
	}
}

func TestDialogTakesKeys(t *testing.T) {
	h := newHarness(t, "fresh")
	h.key("3")
	h.key("s")
	if h.app.dialog == nil {
		t.Fatal("status dialog not open")
	}

	h.key("q")
	if h.quit {
		t.Error("q quit while a dialog was open")
	}

	h.key("esc")
	if h.app.dialog != nil {
		t.Error("esc did not close the dialog")
	}
	if got := h.app.Location().Route; got != pages.RouteOrders {
		t.Errorf("esc in dialog navigated to %s", got)
	}
}

func TestSidebarClick(t *testing.T) {
	h := newHarness(t, "fresh")

	h.send(tea.MouseMsg{X: 3, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	if got := h.app.Location().Route; got != nav[2].route {
		t.Errorf("route = %s, want %s", got, nav[2].route)
	}
}

func TestViewFitsSmallTerminal(t *testing.T) {
	h := newHarness(t, "fresh")
	h.send(tea.WindowSizeMsg{Width: 50, Height: 20})

	out := h.app.View()
	if !strings.Contains(out, "Moto Admin") {
		t.Errorf("header missing:\n%s", out)
	}
	if h.app.sidebarShown() {
		t.Error("sidebar shown below the compact width")
	}
}

func TestRecheckHidesProtectedPage(t *testing.T) {
	h := newHarness(t, "fresh")
	h.key("3")
	if !strings.Contains(h.app.View(), "A-7") {
		t.Fatalf("orders not shown:\n%s", h.app.View())
	}

	// Another process changed the session; the probe has not answered yet
	probe := h.app.guard.Check()
	h.app.sync()

	if h.app.Page() != nil {
		t.Fatalf("page kept while checking: %s", h.app.Page().Title())
	}
	view := h.app.View()
	if strings.Contains(view, "A-7") {
		t.Errorf("orders rendered while checking:\n%s", view)
	}
	if !strings.Contains(view, "Checking session") {
		t.Errorf("missing loading indicator:\n%s", view)
	}
	h.key("j")
	if h.app.Page() != nil {
		t.Error("key input rebuilt the page before the check finished")
	}

	h.exec(probe)
	h.settle()

	if got := h.app.Location().Route; got != pages.RouteOrders {
		t.Fatalf("route = %s, want orders", got)
	}
	if h.app.Page() == nil || !strings.Contains(h.app.View(), "A-7") {
		t.Errorf("orders not restored after the check:\n%s", h.app.View())
	}
}

func TestRecheckEndingInLogoutShowsExpiry(t *testing.T) {
	h := newHarness(t, "fresh")
	h.key("3")

	probe := h.app.guard.Check()
	h.app.sync()
	if h.app.Page() != nil {
		t.Fatal("page kept while checking")
	}

	if err := h.mgr.Clear(context.Background()); err != nil {
		t.Fatal(err)
	}
	h.exec(probe)
	h.settle()

	if got := h.app.Location().Route; got != pages.RouteLogin {
		t.Fatalf("route = %s, want login", got)
	}
	if !strings.Contains(h.app.View(), noticeExpired) {
		t.Errorf("login screen missing expiry notice:\n%s", h.app.View())
	}
}
