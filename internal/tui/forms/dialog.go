// ABOUTME: Modal huh forms for editing backend records from the console
// ABOUTME: A dialog owns the keyboard until it is submitted or dismissed

package forms

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/markalston/moto-admin/internal/api"
	"github.com/markalston/moto-admin/internal/tui/styles"
)

// OpenMsg asks the console to show a dialog
type OpenMsg struct {
	Dialog *Dialog
}

// ClosedMsg is sent when a dialog is submitted or dismissed
type ClosedMsg struct{}

// Open returns a command that shows d
func Open(d *Dialog) tea.Cmd {
	return func() tea.Msg {
		return OpenMsg{Dialog: d}
	}
}

func closed() tea.Msg {
	return ClosedMsg{}
}

// Dialog wraps a huh form with the action to run on submission
type Dialog struct {
	title  string
	form   *huh.Form
	submit func() tea.Cmd
	done   bool
}

// NewDialog creates a dialog. submit runs once, after the form completes.
func NewDialog(title string, form *huh.Form, submit func() tea.Cmd) *Dialog {
	return &Dialog{
		title:  title,
		form:   form.WithTheme(Theme()).WithShowHelp(true),
		submit: submit,
	}
}

// Title returns the dialog heading
func (d *Dialog) Title() string {
	return d.title
}

// Done reports whether the dialog has finished
func (d *Dialog) Done() bool {
	return d.done
}

func (d *Dialog) Init() tea.Cmd {
	return d.form.Init()
}

// Update forwards input to the form. esc dismisses without submitting.
func (d *Dialog) Update(msg tea.Msg) tea.Cmd {
	if d.done {
		return nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		d.done = true
		return closed
	}

	model, cmd := d.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		d.form = f
	}

	switch d.form.State {
	case huh.StateCompleted:
		d.done = true
		if d.submit == nil {
			return closed
		}
		return tea.Batch(closed, d.submit())
	case huh.StateAborted:
		d.done = true
		return closed
	}
	return cmd
}

func (d *Dialog) View() string {
	return styles.ActivePanel.Render(styles.Title.Render(d.title) + "\n" + d.form.View())
}

// Submit runs the submission directly, for callers that already hold the values
func (d *Dialog) Submit() tea.Cmd {
	if d.done || d.submit == nil {
		return nil
	}
	d.done = true
	return tea.Batch(closed, d.submit())
}

func options(values ...string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(values))
	for _, v := range values {
		opts = append(opts, huh.NewOption(strings.ToUpper(v[:1])+v[1:], v))
	}
	return opts
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func nonNegativeInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return errors.New("must be a whole number of zero or more")
	}
	return nil
}

// OrderStatus edits an order's fulfillment status and tracking number
func OrderStatus(o api.Order, submit func(api.StatusUpdate) tea.Cmd) *Dialog {
	in := &api.StatusUpdate{Status: o.Status, TrackingNumber: o.TrackingNumber}
	if in.Status == "" {
		in.Status = api.OrderStatuses[0]
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Status").
			Options(options(api.OrderStatuses...)...).
			Value(&in.Status),
		huh.NewInput().
			Title("Tracking number").
			Placeholder("optional").
			Value(&in.TrackingNumber),
	))
	return NewDialog("Update order "+orderLabel(o), form, func() tea.Cmd {
		in.TrackingNumber = strings.TrimSpace(in.TrackingNumber)
		return submit(*in)
	})
}

// AmbassadorReview approves or rejects an ambassador application
func AmbassadorReview(a api.Ambassador, submit func(api.AmbassadorReview) tea.Cmd) *Dialog {
	in := &api.AmbassadorReview{Status: a.Status, AdminNotes: a.AdminNotes}
	if in.Status == "" {
		in.Status = api.AmbassadorStatuses[0]
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Status").
			Options(options(api.AmbassadorStatuses...)...).
			Value(&in.Status),
		huh.NewText().
			Title("Admin notes").
			Value(&in.AdminNotes),
	))
	return NewDialog("Review "+a.FullName, form, func() tea.Cmd {
		return submit(*in)
	})
}

// Membership changes a user's membership tier and points
func Membership(u api.User, submit func(api.MembershipUpdate) tea.Cmd) *Dialog {
	tier := u.MembershipType
	points := strconv.Itoa(u.MembershipPoints)
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Membership type").
			Value(&tier).
			Validate(notBlank("membership type")),
		huh.NewInput().
			Title("Points").
			Value(&points).
			Validate(nonNegativeInt),
	))
	return NewDialog("Membership for "+u.FullName, form, func() tea.Cmd {
		in := api.MembershipUpdate{MembershipType: strings.TrimSpace(tier)}
		if n, err := strconv.Atoi(strings.TrimSpace(points)); err == nil {
			in.MembershipPoints = &n
		}
		return submit(in)
	})
}

// FeedbackStatus records triage progress on a feedback entry
func FeedbackStatus(f api.Feedback, submit func(api.FeedbackUpdate) tea.Cmd) *Dialog {
	status := f.Status
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Status").
			Placeholder("e.g. reviewed").
			Value(&status).
			Validate(notBlank("status")),
	))
	return NewDialog("Feedback from "+f.FullName, form, func() tea.Cmd {
		return submit(api.FeedbackUpdate{Status: strings.TrimSpace(status)})
	})
}

// Brand creates or edits a brand or manufacturer. A nil existing record means create.
func Brand(kind string, existing *api.Brand, submit func(api.BrandInput) tea.Cmd) *Dialog {
	in := &api.BrandInput{}
	title := "New " + kind
	if existing != nil {
		in.Name, in.Description, in.LogoURL = existing.Name, existing.Description, existing.LogoURL
		title = "Edit " + existing.Name
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").Value(&in.Name).Validate(notBlank("name")),
		huh.NewInput().Title("Description").Value(&in.Description),
		huh.NewInput().Title("Logo URL").Placeholder("optional").Value(&in.LogoURL),
		huh.NewInput().Title("Logo file").Placeholder("path to an image, optional").Value(&in.LogoFile),
	))
	return NewDialog(title, form, func() tea.Cmd {
		in.Name = strings.TrimSpace(in.Name)
		in.LogoFile = strings.TrimSpace(in.LogoFile)
		return submit(*in)
	})
}

// Category creates or edits a category. A nil existing record means create.
func Category(existing *api.Category, submit func(api.CategoryInput) tea.Cmd) *Dialog {
	in := &api.CategoryInput{}
	title := "New category"
	if existing != nil {
		in.Name, in.Description, in.ImageURL = existing.Name, existing.Description, existing.ImageURL
		title = "Edit " + existing.Name
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").Value(&in.Name).Validate(notBlank("name")),
		huh.NewInput().Title("Description").Value(&in.Description),
		huh.NewInput().Title("Image URL").Placeholder("optional").Value(&in.ImageURL),
	))
	return NewDialog(title, form, func() tea.Cmd {
		in.Name = strings.TrimSpace(in.Name)
		return submit(*in)
	})
}

// Partner creates or edits a partner. Editing keeps the current logo unless a new file is given.
func Partner(existing *api.Partner, submit func(api.PartnerInput) tea.Cmd) *Dialog {
	in := &api.PartnerInput{IsActive: true}
	title := "New partner"
	if existing != nil {
		*in = api.EditOf(*existing)
		title = "Edit " + existing.Name
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").Value(&in.Name).Validate(notBlank("name")),
		huh.NewInput().Title("Description").Value(&in.Description),
		huh.NewInput().Title("Website").Placeholder("https://").Value(&in.WebsiteURL),
		huh.NewInput().Title("Contact email").Value(&in.ContactEmail),
		huh.NewInput().Title("Logo file").Placeholder("path to an image, optional").Value(&in.LogoFile),
		huh.NewConfirm().Title("Active").Value(&in.IsActive),
	))
	return NewDialog(title, form, func() tea.Cmd {
		in.Name = strings.TrimSpace(in.Name)
		in.LogoFile = strings.TrimSpace(in.LogoFile)
		return submit(*in)
	})
}

// Confirm asks before a destructive action
func Confirm(title string, run func() tea.Cmd) *Dialog {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&ok),
	))
	return NewDialog("Confirm", form, func() tea.Cmd {
		if !ok {
			return nil
		}
		return run()
	})
}

func orderLabel(o api.Order) string {
	if o.OrderNumber != "" {
		return "#" + o.OrderNumber
	}
	return string(o.ID)
}
