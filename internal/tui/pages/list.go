// ABOUTME: Generic paginated list screen backed by a datatable
// ABOUTME: Owns filter and page state and drops responses from superseded requests

package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/markalston/moto-admin/internal/api"
	"github.com/markalston/moto-admin/internal/gateway"
	"github.com/markalston/moto-admin/internal/pagination"
	"github.com/markalston/moto-admin/internal/tui/datatable"
	"github.com/markalston/moto-admin/internal/tui/styles"
)

// tableTop is the number of lines above the table in a list view
const tableTop = 3

// Query is what a list asks its fetcher for
type Query struct {
	Page   int
	Limit  int
	Filter string
	Search string
}

// Params converts the page and limit into request parameters
func (q Query) Params() pagination.Params {
	return pagination.Params{Page: q.Page, Limit: q.Limit}
}

// KeyAction binds a key to the highlighted record
type KeyAction[T any] struct {
	Key  string
	Help string
	Run  func(T) tea.Cmd
}

// ListConfig describes one list screen
type ListConfig[T any] struct {
	Title        string
	Columns      []datatable.Column[T]
	Fetch        func(ctx context.Context, q Query) (api.Page[T], error)
	EmptyMessage string

	// Filters are cycled with f; the empty value means no filter
	FilterLabel string
	Filters     []string

	// SearchLabel enables free-text search with /
	SearchLabel string

	OnSelect func(T) tea.Cmd
	Keys     []KeyAction[T]
	Create   func() tea.Cmd
}

type listLoadedMsg[T any] struct {
	owner *ListPage[T]
	gen   int
	page  api.Page[T]
	err   error
}

// ListPage is a routed list screen
type ListPage[T any] struct {
	cfg     ListConfig[T]
	table   *datatable.Table[T]
	search  textinput.Model
	spinner spinner.Model

	searching bool
	filter    int
	page      int
	limit     int
	gen       int
	loading   bool
	err       error
	loaded    bool
}

// NewList creates a list page
func NewList[T any](cfg ListConfig[T], opts Options) *ListPage[T] {
	p := &ListPage[T]{cfg: cfg, page: 1, limit: opts.PageSize}

	p.table = datatable.New(cfg.Columns).
		WithEmptyMessage(cfg.EmptyMessage).
		WithBreakpoints(opts.CompactWidth, opts.WideWidth).
		OnPageChange(func(n int) tea.Cmd {
			p.page = n
			return p.load()
		})
	if cfg.OnSelect != nil {
		p.table.OnRowClick(cfg.OnSelect)
	}

	p.search = textinput.New()
	p.search.Prompt = "/ "
	p.search.Placeholder = cfg.SearchLabel
	p.search.CharLimit = 100

	p.spinner = spinner.New()
	p.spinner.Spinner = spinner.MiniDot
	p.spinner.Style = styles.Selected
	return p
}

func (p *ListPage[T]) Init() tea.Cmd {
	return p.load()
}

func (p *ListPage[T]) Title() string {
	return p.cfg.Title
}

func (p *ListPage[T]) Capturing() bool {
	return p.searching
}

func (p *ListPage[T]) SetSize(width, height int) {
	p.table.SetWidth(width)
	p.search.Width = max(width-10, 10)
}

// Table exposes the underlying table
func (p *ListPage[T]) Table() *datatable.Table[T] {
	return p.table
}

// Loading reports whether a request is in flight
func (p *ListPage[T]) Loading() bool {
	return p.loading
}

// Err returns the last load failure
func (p *ListPage[T]) Err() error {
	return p.err
}

// Reload fetches the current page again
func (p *ListPage[T]) Reload() tea.Cmd {
	return p.load()
}

func (p *ListPage[T]) currentFilter() string {
	if len(p.cfg.Filters) == 0 {
		return ""
	}
	return p.cfg.Filters[p.filter]
}

// load starts a fetch; only the latest one started is applied
func (p *ListPage[T]) load() tea.Cmd {
	p.gen++
	p.loading = true
	p.err = nil

	gen := p.gen
	q := Query{Page: p.page, Limit: p.limit, Filter: p.currentFilter(), Search: strings.TrimSpace(p.search.Value())}
	fetch := p.cfg.Fetch
	return tea.Batch(p.spinner.Tick, func() tea.Msg {
		page, err := fetch(context.Background(), q)
		return listLoadedMsg[T]{owner: p, gen: gen, page: page, err: err}
	})
}

func (p *ListPage[T]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case listLoadedMsg[T]:
		if msg.owner != p || msg.gen != p.gen {
			return nil
		}
		p.loading = false
		p.loaded = true
		if msg.err != nil {
			p.err = msg.err
			return nil
		}
		p.table.SetRecords(msg.page.Items)
		meta := msg.page.Meta
		p.table.SetMeta(&meta)
		if meta.Page > 0 {
			p.page = meta.Page
		}
		return nil

	case MutationMsg:
		if msg.Err != nil {
			return msg.Outcome()
		}
		return tea.Batch(msg.Outcome(), p.load())

	case spinner.TickMsg:
		if !p.loading {
			return nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return cmd

	case tea.MouseMsg:
		msg.Y -= tableTop
		return p.table.Update(msg)

	case tea.KeyMsg:
		if p.searching {
			return p.updateSearch(msg)
		}
		return p.updateKeys(msg)
	}
	return nil
}

func (p *ListPage[T]) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		p.searching = false
		p.search.Blur()
		p.page = 1
		return p.load()
	case "esc":
		p.searching = false
		p.search.Blur()
		if p.search.Value() == "" {
			return nil
		}
		p.search.SetValue("")
		p.page = 1
		return p.load()
	}
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	return cmd
}

func (p *ListPage[T]) updateKeys(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "r":
		return p.load()
	case "f":
		if len(p.cfg.Filters) == 0 {
			return nil
		}
		p.filter = (p.filter + 1) % len(p.cfg.Filters)
		p.page = 1
		return p.load()
	case "/":
		if p.cfg.SearchLabel == "" {
			return nil
		}
		p.searching = true
		return p.search.Focus()
	case "c":
		if p.cfg.Create != nil {
			return p.cfg.Create()
		}
		return nil
	}

	for _, k := range p.cfg.Keys {
		if k.Key != key {
			continue
		}
		if rec, ok := p.table.Selected(); ok {
			return k.Run(rec)
		}
		return nil
	}
	return p.table.Update(msg)
}

func (p *ListPage[T]) Help() []string {
	help := []string{"↑↓ Select"}
	if p.cfg.OnSelect != nil {
		help = append(help, "Enter Open")
	}
	if p.table.ShowsPagination() {
		help = append(help, "←→ Page")
	}
	if len(p.cfg.Filters) > 0 {
		help = append(help, "f "+p.cfg.FilterLabel)
	}
	if p.cfg.SearchLabel != "" {
		help = append(help, "/ Search")
	}
	if p.cfg.Create != nil {
		help = append(help, "c New")
	}
	for _, k := range p.cfg.Keys {
		help = append(help, k.Key+" "+k.Help)
	}
	return append(help, "r Refresh")
}

func (p *ListPage[T]) View() string {
	var b strings.Builder
	b.WriteString(styles.ValueStyle.Render(p.cfg.Title))
	b.WriteString("\n")
	b.WriteString(p.statusLine())
	b.WriteString("\n\n")

	if p.err != nil && !p.loaded {
		b.WriteString(styles.ErrorText.Render("  " + ErrorText(p.err)))
		return b.String()
	}
	b.WriteString(p.table.View())
	return b.String()
}

func (p *ListPage[T]) statusLine() string {
	var parts []string
	if len(p.cfg.Filters) > 0 {
		value := p.currentFilter()
		if value == "" {
			value = "all"
		}
		parts = append(parts, styles.LabelStyle.Render(p.cfg.FilterLabel+":")+" "+label(value))
	}
	switch {
	case p.searching:
		parts = append(parts, p.search.View())
	case p.search.Value() != "":
		parts = append(parts, styles.LabelStyle.Render(p.cfg.SearchLabel+":")+" "+p.search.Value())
	}
	switch {
	case p.loading:
		parts = append(parts, p.spinner.View()+" "+styles.Faint.Render("Loading..."))
	case p.err != nil:
		if gateway.IsUnauthorized(p.err) {
			parts = append(parts, styles.ErrorText.Render("Session expired"))
		} else {
			parts = append(parts, styles.ErrorText.Render(fmt.Sprintf("Failed to load: %s", ErrorText(p.err))))
		}
	}
	return strings.Join(parts, "   ")
}

// single wraps an unpaginated list as a one-page result
func single[T any](items []T, err error) (api.Page[T], error) {
	if err != nil {
		return api.Page[T]{}, err
	}
	n := len(items)
	meta := pagination.Meta{Page: 1, Limit: n, Total: n}
	if n > 0 {
		meta.Pages = 1
	}
	return api.Page[T]{Items: items, Meta: meta}, nil
}
