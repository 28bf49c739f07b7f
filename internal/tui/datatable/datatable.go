// ABOUTME: Generic paginated table with wide, medium, and compact card layouts
// ABOUTME: Pure view over parent-supplied records and pagination; hit-tests clicks

package datatable

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/markalston/moto-admin/internal/pagination"
	"github.com/markalston/moto-admin/internal/tui/styles"
	"github.com/mattn/go-runewidth"
	"github.com/tidwall/gjson"
)

const (
	// DefaultEmptyMessage is shown when there are no records
	DefaultEmptyMessage = "No data available"

	// ActionsKey is the column key whose empty cells are dropped from cards
	ActionsKey = "actions"

	defaultCompactWidth = 80
	defaultWideWidth    = 120

	gutter   = 2
	colGap   = 2
	minWidth = 3

	prevLabel        = "[‹ Previous]"
	nextLabel        = "[Next ›]"
	compactPrevLabel = "[‹]"
	compactNextLabel = "[›]"
)

var (
	headerStyle   = styles.TableHeader
	ruleStyle     = styles.Rule
	selectedStyle = styles.Selected
	actionStyle   = styles.Button
	disabledStyle = styles.Disabled
	mutedStyle    = styles.Faint
	labelStyle    = styles.LabelStyle
)

// Layout is the arrangement chosen for a given width
type Layout int

const (
	Compact Layout = iota
	Medium
	Wide
)

func (l Layout) String() string {
	switch l {
	case Compact:
		return "compact"
	case Medium:
		return "medium"
	default:
		return "wide"
	}
}

// Action is an interactive element inside a cell. Activating it never counts as a row click.
type Action struct {
	Label string
	Run   func() tea.Cmd
}

// Cell is the rendered content of one column for one record
type Cell struct {
	Text    string
	Style   lipgloss.Style
	Actions []Action
}

// Text is a plain cell
func Text(s string) Cell {
	return Cell{Text: s}
}

// Styled is a cell with a lipgloss style applied to its text
func Styled(s string, style lipgloss.Style) Cell {
	return Cell{Text: s, Style: style}
}

// Actions is a cell made only of interactive elements
func Actions(actions ...Action) Cell {
	return Cell{Actions: actions}
}

// Empty reports whether the cell has nothing to show
func (c Cell) Empty() bool {
	return strings.TrimSpace(c.Text) == "" && len(c.Actions) == 0
}

// Column describes one field of the records
type Column[T any] struct {
	Key           string
	Label         string
	Render        func(value any, rec T) Cell
	HideOnCompact bool
	HideOnMedium  bool
	MaxWidth      int
}

// Identified records supply a stable row key; others are keyed by position
type Identified interface {
	RowID() string
}

// Coerce turns anything that is not a []T into an empty sequence
func Coerce[T any](v any) []T {
	if recs, ok := v.([]T); ok && recs != nil {
		return recs
	}
	return []T{}
}

type zoneKind int

const (
	zoneRow zoneKind = iota
	zoneAction
	zonePrev
	zoneNext
)

// zone is a clickable region of the last layout, one line tall
type zone struct {
	kind     zoneKind
	y        int
	x0, x1   int
	row      int
	run      func() tea.Cmd
	disabled bool
}

func (z zone) contains(x, y int) bool {
	return y == z.y && x >= z.x0 && x < z.x1
}

// Table renders records and pagination controls. It never changes its own
// pagination; page changes are reported through OnPageChange.
type Table[T any] struct {
	columns      []Column[T]
	records      []T
	fields       []gjson.Result
	meta         *pagination.Meta
	emptyMessage string
	compactWidth int
	wideWidth    int
	width        int
	selected     int
	onRowClick   func(T) tea.Cmd
	onPageChange func(int) tea.Cmd
}

// New creates a table over the given columns
func New[T any](columns []Column[T]) *Table[T] {
	return &Table[T]{
		columns:      columns,
		records:      []T{},
		emptyMessage: DefaultEmptyMessage,
		compactWidth: defaultCompactWidth,
		wideWidth:    defaultWideWidth,
		width:        defaultWideWidth,
	}
}

// WithEmptyMessage overrides the empty-state text
func (t *Table[T]) WithEmptyMessage(msg string) *Table[T] {
	if msg != "" {
		t.emptyMessage = msg
	}
	return t
}

// WithBreakpoints sets the widths below which cards and the medium table are used
func (t *Table[T]) WithBreakpoints(compact, wide int) *Table[T] {
	if compact > 0 {
		t.compactWidth = compact
	}
	if wide >= t.compactWidth {
		t.wideWidth = wide
	}
	return t
}

// OnRowClick sets the callback for activating a row
func (t *Table[T]) OnRowClick(fn func(T) tea.Cmd) *Table[T] {
	t.onRowClick = fn
	return t
}

// OnPageChange sets the callback for the pagination controls
func (t *Table[T]) OnPageChange(fn func(int) tea.Cmd) *Table[T] {
	t.onPageChange = fn
	return t
}

// SetRecords replaces the records. Anything but a []T is treated as empty.
func (t *Table[T]) SetRecords(v any) {
	t.records = Coerce[T](v)
	t.fields = make([]gjson.Result, len(t.records))
	for i, rec := range t.records {
		if data, err := json.Marshal(rec); err == nil {
			t.fields[i] = gjson.ParseBytes(data)
		}
	}
	if t.selected >= len(t.records) {
		t.selected = max(len(t.records)-1, 0)
	}
}

// SetMeta replaces the pagination metadata; nil hides the controls
func (t *Table[T]) SetMeta(meta *pagination.Meta) {
	if meta == nil {
		t.meta = nil
		return
	}
	m := *meta
	t.meta = &m
}

// SetWidth records the available width
func (t *Table[T]) SetWidth(width int) {
	t.width = width
}

// Records returns the current records
func (t *Table[T]) Records() []T {
	return t.records
}

// Meta returns a copy of the pagination metadata
func (t *Table[T]) Meta() (pagination.Meta, bool) {
	if t.meta == nil {
		return pagination.Meta{}, false
	}
	return *t.meta, true
}

// Selected returns the highlighted record
func (t *Table[T]) Selected() (T, bool) {
	var zero T
	if t.selected < 0 || t.selected >= len(t.records) {
		return zero, false
	}
	return t.records[t.selected], true
}

// RowKey is the record's RowID when it has one, otherwise its position
func (t *Table[T]) RowKey(i int) string {
	if i < 0 || i >= len(t.records) {
		return ""
	}
	if id, ok := any(t.records[i]).(Identified); ok && id.RowID() != "" {
		return id.RowID()
	}
	return strconv.Itoa(i)
}

// LayoutFor returns the layout used at width
func (t *Table[T]) LayoutFor(width int) Layout {
	switch {
	case width < t.compactWidth:
		return Compact
	case width < t.wideWidth:
		return Medium
	default:
		return Wide
	}
}

// ShowsPagination reports whether pagination controls are rendered
func (t *Table[T]) ShowsPagination() bool {
	return t.meta != nil && t.meta.Pages > 1
}

// Update handles keyboard and mouse input
func (t *Table[T]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if t.selected > 0 {
				t.selected--
			}
		case "down", "j":
			if t.selected < len(t.records)-1 {
				t.selected++
			}
		case "enter":
			return t.ActivateRow(t.selected)
		case "left", "p", "pgup":
			return t.PrevPage()
		case "right", "n", "pgdown":
			return t.NextPage()
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return t.Click(msg.X, msg.Y)
		}
	}
	return nil
}

// ActivateRow invokes the row callback for record i
func (t *Table[T]) ActivateRow(i int) tea.Cmd {
	if t.onRowClick == nil || i < 0 || i >= len(t.records) {
		return nil
	}
	t.selected = i
	return t.onRowClick(t.records[i])
}

// PrevPage requests the previous page when one exists
func (t *Table[T]) PrevPage() tea.Cmd {
	if !t.ShowsPagination() || !t.meta.HasPrev() || t.onPageChange == nil {
		return nil
	}
	return t.onPageChange(t.meta.Page - 1)
}

// NextPage requests the next page when one exists
func (t *Table[T]) NextPage() tea.Cmd {
	if !t.ShowsPagination() || !t.meta.HasNext() || t.onPageChange == nil {
		return nil
	}
	return t.onPageChange(t.meta.Page + 1)
}

// Click activates whatever is at (x, y) of the current view. Interactive
// elements take precedence over the row surface beneath them.
func (t *Table[T]) Click(x, y int) tea.Cmd {
	_, zones := t.layout(t.width)
	for _, z := range zones {
		if z.kind == zoneRow || !z.contains(x, y) {
			continue
		}
		switch z.kind {
		case zoneAction:
			if z.run != nil {
				return z.run()
			}
			return nil
		case zonePrev:
			if z.disabled {
				return nil
			}
			return t.PrevPage()
		case zoneNext:
			if z.disabled {
				return nil
			}
			return t.NextPage()
		}
	}
	for _, z := range zones {
		if z.kind == zoneRow && z.contains(x, y) {
			return t.ActivateRow(z.row)
		}
	}
	return nil
}

// View renders at the current width
func (t *Table[T]) View() string {
	return t.Render(t.width)
}

// Render renders at an explicit width
func (t *Table[T]) Render(width int) string {
	lines, _ := t.layout(width)
	return strings.Join(lines, "\n")
}

func (t *Table[T]) layout(width int) ([]string, []zone) {
	if width <= 0 {
		width = t.wideWidth
	}
	var lines []string
	var zones []zone

	l := t.LayoutFor(width)
	if l == Compact {
		lines, zones = t.cards(width)
	} else {
		lines, zones = t.table(width, l)
	}

	if t.ShowsPagination() {
		lines = append(lines, "")
		line, pz := t.controls(len(lines), l)
		lines = append(lines, line)
		zones = append(zones, pz...)
	}
	return lines, zones
}

func (t *Table[T]) visible(l Layout) []Column[T] {
	var cols []Column[T]
	for _, c := range t.columns {
		if (l == Compact && c.HideOnCompact) || (l == Medium && c.HideOnMedium) {
			continue
		}
		cols = append(cols, c)
	}
	return cols
}

func (t *Table[T]) value(i int, key string) any {
	if i >= len(t.fields) {
		return nil
	}
	return t.fields[i].Get(escapeKey(key)).Value()
}

func (t *Table[T]) cell(i int, col Column[T]) Cell {
	v := t.value(i, col.Key)
	if col.Render != nil {
		return col.Render(v, t.records[i])
	}
	return Text(Display(v))
}

func (t *Table[T]) table(width int, l Layout) ([]string, []zone) {
	cols := t.visible(l)
	cells := make([][]Cell, len(t.records))
	widths := make([]int, len(cols))
	for c, col := range cols {
		widths[c] = runewidth.StringWidth(col.Label)
	}
	for i := range t.records {
		cells[i] = make([]Cell, len(cols))
		for c, col := range cols {
			cell := t.cell(i, col)
			cells[i][c] = cell
			widths[c] = max(widths[c], cellWidth(cell))
		}
	}
	for c, col := range cols {
		if col.MaxWidth > 0 && widths[c] > col.MaxWidth {
			widths[c] = max(col.MaxWidth, minWidth)
		}
	}
	fit(widths, width-gutter-colGap*max(len(cols)-1, 0))

	total := gutter
	for _, w := range widths {
		total += w
	}
	total += colGap * max(len(cols)-1, 0)

	var header strings.Builder
	header.WriteString(strings.Repeat(" ", gutter))
	for c, col := range cols {
		if c > 0 {
			header.WriteString(strings.Repeat(" ", colGap))
		}
		header.WriteString(headerStyle.Render(pad(runewidth.Truncate(col.Label, widths[c], "…"), widths[c])))
	}
	lines := []string{header.String(), ruleStyle.Render(strings.Repeat("─", min(total, width)))}

	if len(t.records) == 0 {
		lines = append(lines, strings.Repeat(" ", gutter)+mutedStyle.Render(t.emptyMessage))
		return lines, nil
	}

	var zones []zone
	for i := range t.records {
		y := len(lines)
		var row strings.Builder
		row.WriteString(t.marker(i))
		x := gutter
		for c := range cols {
			if c > 0 {
				row.WriteString(strings.Repeat(" ", colGap))
				x += colGap
			}
			text, spans := renderCell(cells[i][c], widths[c])
			row.WriteString(text)
			for _, s := range spans {
				zones = append(zones, zone{kind: zoneAction, y: y, x0: x + s.x0, x1: x + s.x1, row: i, run: s.run})
			}
			x += widths[c]
		}
		zones = append(zones, zone{kind: zoneRow, y: y, x0: 0, x1: max(total, width), row: i})
		lines = append(lines, row.String())
	}
	return lines, zones
}

func (t *Table[T]) cards(width int) ([]string, []zone) {
	if len(t.records) == 0 {
		return []string{strings.Repeat(" ", gutter) + mutedStyle.Render(t.emptyMessage)}, nil
	}

	cols := t.visible(Compact)
	labelWidth := 0
	for _, col := range cols {
		labelWidth = max(labelWidth, runewidth.StringWidth(col.Label)+2)
	}
	valueWidth := max(width-gutter-labelWidth, minWidth)

	var lines []string
	var zones []zone
	for i := range t.records {
		if i > 0 {
			lines = append(lines, ruleStyle.Render(strings.Repeat("─", max(width, 1))))
		}
		for _, col := range cols {
			cell := t.cell(i, col)
			if col.Key == ActionsKey && len(cell.Actions) == 0 && (cell.Empty() || strings.TrimSpace(cell.Text) == "-") {
				continue
			}
			if cell.Empty() {
				cell.Text = "-"
			}

			y := len(lines)
			label := pad(strings.ToUpper(col.Label)+": ", labelWidth)
			text, spans := renderCell(cell, valueWidth)
			x := gutter + labelWidth
			for _, s := range spans {
				zones = append(zones, zone{kind: zoneAction, y: y, x0: x + s.x0, x1: x + s.x1, row: i, run: s.run})
			}
			zones = append(zones, zone{kind: zoneRow, y: y, x0: 0, x1: width, row: i})
			lines = append(lines, t.marker(i)+labelStyle.Render(label)+text)
		}
	}
	return lines, zones
}

func (t *Table[T]) controls(y int, l Layout) (string, []zone) {
	m := *t.meta
	info := fmt.Sprintf("Page %d of %d", m.Page, m.Pages)
	if l != Compact {
		info += fmt.Sprintf(" (%s total items)", humanize.Comma(int64(m.Total)))
	}
	prev, next := prevLabel, nextLabel
	if l == Compact {
		prev, next = compactPrevLabel, compactNextLabel
	}

	prevOff, nextOff := !m.HasPrev(), !m.HasNext()
	x := gutter + runewidth.StringWidth(info) + colGap
	prevZone := zone{kind: zonePrev, y: y, x0: x, x1: x + runewidth.StringWidth(prev), disabled: prevOff}
	x = prevZone.x1 + 1
	nextZone := zone{kind: zoneNext, y: y, x0: x, x1: x + runewidth.StringWidth(next), disabled: nextOff}

	line := strings.Repeat(" ", gutter) + mutedStyle.Render(info) + strings.Repeat(" ", colGap) +
		buttonStyle(prevOff).Render(prev) + " " + buttonStyle(nextOff).Render(next)
	return line, []zone{prevZone, nextZone}
}

func (t *Table[T]) marker(i int) string {
	if i == t.selected && t.onRowClick != nil {
		return selectedStyle.Render("▸ ")
	}
	return strings.Repeat(" ", gutter)
}

func buttonStyle(disabled bool) lipgloss.Style {
	if disabled {
		return disabledStyle
	}
	return actionStyle
}

type span struct {
	x0, x1 int
	run    func() tea.Cmd
}

// renderCell lays the cell text and its action buttons into exactly w columns
func renderCell(c Cell, w int) (string, []span) {
	type part struct {
		text   string
		style  lipgloss.Style
		action bool
		run    func() tea.Cmd
	}
	var parts []part
	if c.Text != "" {
		parts = append(parts, part{text: c.Text, style: c.Style})
	}
	for _, a := range c.Actions {
		parts = append(parts, part{text: "[" + a.Label + "]", style: actionStyle, action: true, run: a.Run})
	}

	var out strings.Builder
	var spans []span
	pos := 0
	for k, p := range parts {
		if k > 0 {
			if pos+1 >= w {
				break
			}
			out.WriteString(" ")
			pos++
		}
		remaining := w - pos
		if remaining <= 0 {
			break
		}
		text := p.text
		if runewidth.StringWidth(text) > remaining {
			text = runewidth.Truncate(text, remaining, "…")
		}
		tw := runewidth.StringWidth(text)
		if p.action {
			spans = append(spans, span{x0: pos, x1: pos + tw, run: p.run})
		}
		out.WriteString(p.style.Render(text))
		pos += tw
	}
	if pos < w {
		out.WriteString(strings.Repeat(" ", w-pos))
	}
	return out.String(), spans
}

func cellWidth(c Cell) int {
	w := runewidth.StringWidth(c.Text)
	for _, a := range c.Actions {
		if w > 0 {
			w++
		}
		w += runewidth.StringWidth(a.Label) + 2
	}
	return w
}

// fit shrinks the widest columns until the total fits avail
func fit(widths []int, avail int) {
	sum := 0
	for _, w := range widths {
		sum += w
	}
	for sum > avail {
		widest := -1
		for i, w := range widths {
			if w > minWidth && (widest < 0 || w > widths[widest]) {
				widest = i
			}
		}
		if widest < 0 {
			return
		}
		widths[widest]--
		sum--
	}
}

func pad(s string, w int) string {
	if n := runewidth.StringWidth(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

// Display formats a raw field value for a cell without a custom renderer
func Display(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}

var keyEscaper = strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`)

func escapeKey(key string) string {
	return keyEscaper.Replace(key)
}
