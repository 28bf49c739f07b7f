// ABOUTME: Tests for modal dialogs and the login screen
// ABOUTME: Drives dialogs through Submit and esc rather than simulated typing

package forms

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/markalston/moto-admin/internal/api"
)

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func hasClosed(msgs []tea.Msg) bool {
	for _, m := range msgs {
		if _, ok := m.(ClosedMsg); ok {
			return true
		}
	}
	return false
}

func TestDialogEscDismisses(t *testing.T) {
	submitted := 0
	d := Confirm("Delete brand?", func() tea.Cmd {
		submitted++
		return nil
	})

	msgs := collect(d.Update(tea.KeyMsg{Type: tea.KeyEsc}))
	if !hasClosed(msgs) {
		t.Error("expected ClosedMsg on esc")
	}
	if !d.Done() {
		t.Error("expected dialog to be done")
	}
	if submitted != 0 {
		t.Errorf("esc must not submit, got %d", submitted)
	}
	if cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("finished dialog should ignore input")
	}
}

func TestConfirmRequiresYes(t *testing.T) {
	ran := 0
	d := Confirm("Delete brand?", func() tea.Cmd {
		ran++
		return nil
	})

	collect(d.Submit())
	if ran != 0 {
		t.Errorf("unconfirmed dialog ran its action %d times", ran)
	}
}

func TestOrderStatusSubmitsCurrentValues(t *testing.T) {
	var got []api.StatusUpdate
	d := OrderStatus(api.Order{ID: "o1", OrderNumber: "1001", Status: "paid", TrackingNumber: " TRK1 "}, func(in api.StatusUpdate) tea.Cmd {
		got = append(got, in)
		return nil
	})

	if !strings.Contains(d.Title(), "#1001") {
		t.Errorf("unexpected title %q", d.Title())
	}

	msgs := collect(d.Submit())
	if !hasClosed(msgs) {
		t.Error("expected ClosedMsg after submit")
	}
	if len(got) != 1 || got[0].Status != "paid" || got[0].TrackingNumber != "TRK1" {
		t.Errorf("unexpected submission %+v", got)
	}

	collect(d.Submit())
	if len(got) != 1 {
		t.Errorf("dialog submitted twice")
	}
}

func TestMembershipParsesPoints(t *testing.T) {
	var got api.MembershipUpdate
	d := Membership(api.User{FullName: "Ada", MembershipType: "gold", MembershipPoints: 120}, func(in api.MembershipUpdate) tea.Cmd {
		got = in
		return nil
	})
	collect(d.Submit())

	if got.MembershipType != "gold" || got.MembershipPoints == nil || *got.MembershipPoints != 120 {
		t.Errorf("unexpected submission %+v", got)
	}
}

func TestPartnerEditKeepsLogo(t *testing.T) {
	var got api.PartnerInput
	d := Partner(&api.Partner{ID: "p1", Name: "Moto Co", LogoURL: "/uploads/logo.png"}, func(in api.PartnerInput) tea.Cmd {
		got = in
		return nil
	})
	collect(d.Submit())

	if got.LogoURL != "/uploads/logo.png" || got.LogoFile != "" {
		t.Errorf("expected existing logo to be kept, got %+v", got)
	}
}

func TestNotBlank(t *testing.T) {
	check := notBlank("email")
	if err := check("  "); err == nil || err.Error() != "email is required" {
		t.Errorf("unexpected error %v", err)
	}
	if err := check("a@b.c"); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestNonNegativeInt(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"", false},
		{"0", false},
		{" 12 ", false},
		{"-1", true},
		{"ten", true},
	}

	for _, tc := range tests {
		if err := nonNegativeInt(tc.in); (err != nil) != tc.wantErr {
			t.Errorf("nonNegativeInt(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
	}
}

func TestLoginFailedKeepsEmail(t *testing.T) {
	l := NewLogin()
	l.email = "ada@example.com"
	l.password = "wrong"
	l.submitting = true

	l.Failed("Invalid credentials")

	if l.Submitting() {
		t.Error("expected login to accept input again")
	}
	if l.email != "ada@example.com" || l.password != "" {
		t.Errorf("expected email kept and password cleared, got %q / %q", l.email, l.password)
	}
	if !strings.Contains(l.View(), "Invalid credentials") {
		t.Errorf("expected error in view:\n%s", l.View())
	}
}

func TestLoginNotice(t *testing.T) {
	l := NewLogin()
	l.Reset("Your session has expired. Please sign in again.")

	if !strings.Contains(l.View(), "session has expired") {
		t.Errorf("expected notice in view:\n%s", l.View())
	}
}
