// ABOUTME: Human and JSON output helpers shared by every command
// ABOUTME: Tables use the datatable renderer sized to the terminal

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/markalston/moto-admin/internal/gateway"
	"github.com/markalston/moto-admin/internal/pagination"
	"github.com/markalston/moto-admin/internal/tui/datatable"
	"github.com/markalston/moto-admin/internal/tui/widgets"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const defaultTermWidth = 120

var (
	okLabel   = color.New(color.FgGreen, color.Bold).SprintFunc()
	errLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	warnLabel = color.New(color.FgYellow, color.Bold).SprintFunc()
	keyLabel  = color.New(color.Faint).SprintFunc()
)

// termWidth returns the stdout width, or a default when not a terminal
func termWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultTermWidth
}

func printJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(data))
}

// fail reports err and returns its exit code
func fail(w io.Writer, err error) int {
	code := exitCodeFor(err)
	msg := err.Error()
	if code == exitSession {
		msg += `. Run "moto-admin login" first.`
	}

	if IsJSONOutput() {
		out := map[string]any{"error": err.Error(), "exit_code": code}
		var gerr *gateway.Error
		if errors.As(err, &gerr) && gerr.Status != 0 {
			out["status"] = gerr.Status
		}
		printJSON(w, out)
		return code
	}
	fmt.Fprintf(w, "%s %s\n", errLabel("Error:"), msg)
	return code
}

// done reports a completed write
func done(w io.Writer, msg string, v any) int {
	if IsJSONOutput() {
		if v == nil {
			v = map[string]any{"ok": true, "message": msg}
		}
		printJSON(w, v)
		return exitOK
	}
	fmt.Fprintf(w, "%s %s\n", okLabel("✓"), msg)
	return exitOK
}

// list prints records as a table, or as JSON with their pagination
func list[T any](w io.Writer, cols []datatable.Column[T], items []T, meta *pagination.Meta, plural string) int {
	if IsJSONOutput() {
		out := map[string]any{plural: orEmpty(items)}
		if meta != nil {
			out["pagination"] = meta
		}
		printJSON(w, out)
		return exitOK
	}

	table := datatable.New(cols).WithEmptyMessage("No " + plural + " found")
	table.SetRecords(items)
	table.SetMeta(meta)
	fmt.Fprintln(w, table.Render(termWidth()))
	return exitOK
}

// field is one labelled line of a detail view
type field struct {
	label string
	value string
}

// printFields aligns labels the way status output does
func printFields(w io.Writer, fields []field) {
	width := 0
	for _, f := range fields {
		width = max(width, runewidth.StringWidth(f.label))
	}
	for _, f := range fields {
		value := f.value
		if value == "" {
			value = keyLabel("-")
		}
		fmt.Fprintf(w, "%s %s\n", runewidth.FillRight(f.label+":", width+1), value)
	}
}

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", color.New(color.Bold).Sprint(title))
}

// statusText colors a backend status by severity
func statusText(s string) string {
	switch widgets.LevelFor(s) {
	case widgets.StatusOK:
		return okLabel(s)
	case widgets.StatusWarning:
		return warnLabel(s)
	case widgets.StatusCritical:
		return errLabel(s)
	}
	return s
}
