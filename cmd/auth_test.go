// ABOUTME: Tests for the login, logout, whoami, and validate commands
// ABOUTME: Drives the commands against a fake backend and a temporary session file

package cmd

import (
	"context"
	"io"
	"strings"
	"testing"
)

const loginOK = `{"message":"ok","token":"tok-1","user":{"id":7,"full_name":"Ada Admin","email":"ada@example.com","is_admin":1}}`

func login(email, password string) runFunc {
	return func(ctx context.Context, w io.Writer, e *env, _ []string) int {
		return runLogin(ctx, w, e, email, password)
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		status    int
		body      string
		wantCode  int
		wantOut   string
		wantToken string
	}{
		{"success", "ada@example.com", "secret", 200, loginOK, exitOK, "Signed in as Ada Admin", "tok-1"},
		{"rejected", "ada@example.com", "wrong", 401, `{"error":"Invalid credentials"}`, exitSession, "Invalid credentials", ""},
		{"missing token", "ada@example.com", "secret", 200, `{"message":"ok"}`, exitBackend, "did not include a token", ""},
		{"bad email", "not-an-email", "secret", 200, loginOK, exitUsage, "valid address", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := newTestEnv(t)
			te.backend.on("POST /auth/login-admin", tt.status, tt.body)

			out, code := runCmd(login(tt.email, tt.password))
			if code != tt.wantCode {
				t.Errorf("expected exit code %d, got %d (%s)", tt.wantCode, code, out)
			}
			if !strings.Contains(out, tt.wantOut) {
				t.Errorf("expected output to contain %q, got %q", tt.wantOut, out)
			}
			if got := te.token(t); got != tt.wantToken {
				t.Errorf("expected stored token %q, got %q", tt.wantToken, got)
			}
		})
	}
}

func TestLogin_InvalidEmailSendsNothing(t *testing.T) {
	te := newTestEnv(t)
	te.backend.on("POST /auth/login-admin", 200, loginOK)

	runCmd(login("", "secret"))
	if n := len(te.backend.requests("POST /auth/login-admin")); n != 0 {
		t.Errorf("expected no login request, got %d", n)
	}
}

func TestLogin_FailureKeepsExistingSession(t *testing.T) {
	te := newTestEnv(t)
	te.signIn(t, "old-token")
	te.backend.on("POST /auth/login-admin", 401, `{"error":"Invalid credentials"}`)

	runCmd(login("ada@example.com", "wrong"))
	if got := te.token(t); got != "old-token" {
		t.Errorf("expected the previous session to survive, got token %q", got)
	}
}

func TestCredentials_FlagsAndEnv(t *testing.T) {
	t.Setenv("MOTO_ADMIN_PASSWORD", "from-env")

	email, password, err := credentials("ada@example.com", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email != "ada@example.com" || password != "from-env" {
		t.Errorf("got %q / %q", email, password)
	}
}

func TestLogout(t *testing.T) {
	te := newTestEnv(t)
	te.signIn(t, "tok")

	out, code := runCmd(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
		return runLogout(ctx, w, e)
	})
	if code != exitOK {
		t.Errorf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(out, "Signed out") {
		t.Errorf("unexpected output %q", out)
	}
	if got := te.token(t); got != "" {
		t.Errorf("expected session cleared, got %q", got)
	}

	// idempotent
	if _, code := runCmd(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
		return runLogout(ctx, w, e)
	}); code != exitOK {
		t.Errorf("expected second logout to succeed, got %d", code)
	}
}

func TestWhoami(t *testing.T) {
	whoamiFn := func(ctx context.Context, w io.Writer, e *env, _ []string) int {
		return runWhoami(ctx, w, e)
	}

	t.Run("logged out", func(t *testing.T) {
		newTestEnv(t)
		out, code := runCmd(whoamiFn)
		if code != exitSession {
			t.Errorf("expected exit code %d, got %d", exitSession, code)
		}
		if !strings.Contains(out, "Not logged in") {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("logged in", func(t *testing.T) {
		te := newTestEnv(t)
		te.signIn(t, "tok")
		out, code := runCmd(whoamiFn)
		if code != exitOK {
			t.Errorf("expected exit code 0, got %d", code)
		}
		for _, want := range []string{"Ada Admin", "ada@example.com", "Token expires"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output, got %q", want, out)
			}
		}
		if n := len(te.backend.calls); n != 0 {
			t.Errorf("whoami should not contact the backend, got %d requests", n)
		}
	})

	t.Run("json", func(t *testing.T) {
		te := newTestEnv(t)
		te.signIn(t, "tok")
		jsonOutput = true
		out, _ := runCmd(whoamiFn)
		v := decodeJSON(t, out)
		if v["logged_in"] != true {
			t.Errorf("expected logged_in true, got %v", v["logged_in"])
		}
	})
}

func TestValidate(t *testing.T) {
	validateFn := func(ctx context.Context, w io.Writer, e *env, _ []string) int {
		return runValidate(ctx, w, e)
	}
	tests := []struct {
		name     string
		token    string
		status   int
		wantCode int
		wantOut  string
	}{
		{"valid", "tok", 200, exitOK, "session is valid"},
		{"rejected", "tok", 401, exitUsage, "not valid"},
		{"no token", "", 200, exitUsage, "not valid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := newTestEnv(t)
			if tt.token != "" {
				te.signIn(t, tt.token)
			}
			te.backend.on("GET /admin/dashboard", tt.status, `{"statistics":{},"recent_orders":[]}`)

			out, code := runCmd(validateFn)
			if code != tt.wantCode {
				t.Errorf("expected exit code %d, got %d", tt.wantCode, code)
			}
			if !strings.Contains(out, tt.wantOut) {
				t.Errorf("expected %q in output, got %q", tt.wantOut, out)
			}
			if tt.token == "" && len(te.backend.calls) != 0 {
				t.Error("expected no request without a token")
			}
		})
	}
}
