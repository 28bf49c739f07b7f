// ABOUTME: Login screen shown when the session is missing or invalidated
// ABOUTME: Emits the entered credentials; the console performs the request

package forms

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/moto-admin/internal/tui/icons"
	"github.com/markalston/moto-admin/internal/tui/styles"
)

// LoginSubmitMsg carries the credentials entered on the login screen
type LoginSubmitMsg struct {
	Email    string
	Password string
}

// Login is the sign-in screen
type Login struct {
	form       *huh.Form
	email      string
	password   string
	err        string
	notice     string
	submitting bool
}

// NewLogin creates an empty login screen
func NewLogin() *Login {
	l := &Login{}
	l.form = l.build()
	return l
}

func (l *Login) build() *huh.Form {
	l.password = ""
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Email").
			Placeholder("admin@example.com").
			Value(&l.email).
			Validate(notBlank("email")),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&l.password).
			Validate(notBlank("password")),
	)).WithTheme(Theme())
}

func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Reset rebuilds the form and shows notice above it, keeping the email
func (l *Login) Reset(notice string) tea.Cmd {
	l.notice = notice
	l.err = ""
	l.submitting = false
	l.form = l.build()
	return l.form.Init()
}

// Failed shows the server's error text and lets the user try again
func (l *Login) Failed(msg string) tea.Cmd {
	cmd := l.Reset(l.notice)
	l.err = msg
	return cmd
}

// Submitting reports whether a login request is in flight
func (l *Login) Submitting() bool {
	return l.submitting
}

func (l *Login) Update(msg tea.Msg) tea.Cmd {
	if l.submitting {
		return nil
	}
	model, cmd := l.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		l.form = f
	}

	switch l.form.State {
	case huh.StateCompleted:
		l.submitting = true
		l.err = ""
		creds := LoginSubmitMsg{Email: strings.TrimSpace(l.email), Password: l.password}
		return func() tea.Msg { return creds }
	case huh.StateAborted:
		return l.Reset(l.notice)
	}
	return cmd
}

func (l *Login) View() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(icons.Lock.String() + " Admin sign in"))
	b.WriteString("\n")
	if l.notice != "" {
		b.WriteString(styles.StatusWarning.Render(l.notice) + "\n\n")
	}
	if l.submitting {
		b.WriteString(styles.Faint.Render("Signing in..."))
	} else {
		b.WriteString(l.form.View())
	}
	if l.err != "" {
		b.WriteString("\n" + styles.ErrorText.Render(l.err))
	}
	return lipgloss.NewStyle().Width(60).Render(b.String())
}
