// ABOUTME: Session commands: login, logout, whoami, and validate
// ABOUTME: Login prompts with a form when credentials are not given as flags

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/markalston/moto-admin/internal/session"
	"github.com/markalston/moto-admin/internal/tui/forms"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in as an administrator",
	Long: `Sign in and store the session token for later commands.

Without --email or --password the missing values are prompted for.
The password can also be given in MOTO_ADMIN_PASSWORD.`,
	Args: cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
		email, password, err := credentials(loginEmail, loginPassword)
		if err != nil {
			return fail(w, usageError{err})
		}
		return runLogin(ctx, w, e, email, password)
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
		return runLogout(ctx, w, e)
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored session without contacting the backend",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
		return runWhoami(ctx, w, e)
	}),
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the stored token is still accepted",
	Long: `Ask the backend whether the stored token is still valid.

Exit codes:
  0 - Token accepted
  1 - No token, or the token was rejected`,
	Args: cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
		return runValidate(ctx, w, e)
	}),
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, validateCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Admin email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Admin password (prefer the prompt or MOTO_ADMIN_PASSWORD)")
}

// credentials fills in whatever the flags left out, prompting on a terminal
func credentials(email, password string) (string, string, error) {
	if password == "" {
		password = os.Getenv("MOTO_ADMIN_PASSWORD")
	}
	if email != "" && password != "" {
		return email, password, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", "", errors.New("--email and --password are required when not running in a terminal")
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Email").Value(&email),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
	)).WithTheme(forms.Theme())
	if err := form.Run(); err != nil {
		return "", "", err
	}
	return strings.TrimSpace(email), password, nil
}

func runLogin(ctx context.Context, w io.Writer, e *env, email, password string) int {
	result, err := e.gw.Login(ctx, email, password)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, map[string]any{"ok": true, "user": result.User})
		return exitOK
	}
	name := result.User.FullName
	if name == "" {
		name = result.User.Email
	}
	return done(w, "Signed in as "+name, nil)
}

func runLogout(ctx context.Context, w io.Writer, e *env) int {
	if err := e.gw.Logout(ctx); err != nil {
		return fail(w, err)
	}
	return done(w, "Signed out", nil)
}

// whoami is the local view of the stored session
type whoami struct {
	LoggedIn  bool          `json:"logged_in"`
	User      *session.User `json:"user,omitempty"`
	ExpiresAt string        `json:"expires_at,omitempty"`
	Expired   bool          `json:"expired"`
}

func runWhoami(ctx context.Context, w io.Writer, e *env) int {
	info := whoami{LoggedIn: e.session.HasToken(ctx), User: e.session.User()}
	exp, hasExp := e.session.TokenExpiry()
	if hasExp {
		info.ExpiresAt = exp.Format(time.RFC3339)
		info.Expired = exp.Before(time.Now())
	}

	if IsJSONOutput() {
		printJSON(w, info)
	} else if !info.LoggedIn {
		fmt.Fprintln(w, "Not logged in")
	} else {
		var fields []field
		if u := info.User; u != nil {
			fields = append(fields, field{"Name", u.FullName}, field{"Email", u.Email}, field{"User ID", u.ID})
		}
		expiry := "unknown"
		if hasExp {
			expiry = fmt.Sprintf("%s (%s)", exp.Local().Format("2006-01-02 15:04"), humanize.Time(exp))
			if info.Expired {
				expiry = warnLabel(expiry)
			}
		}
		store := e.cfg.SessionFile
		if e.cfg.SessionRedis != "" {
			store = "redis"
		}
		fields = append(fields, field{"Token expires", expiry}, field{"Session", store})
		printFields(w, fields)
	}

	if !info.LoggedIn {
		return exitSession
	}
	return exitOK
}

func runValidate(ctx context.Context, w io.Writer, e *env) int {
	ok := e.gw.ValidateToken(ctx)
	if IsJSONOutput() {
		printJSON(w, map[string]any{"valid": ok})
	} else if ok {
		fmt.Fprintf(w, "%s session is valid\n", okLabel("✓"))
	} else {
		fmt.Fprintf(w, "%s session is not valid\n", errLabel("✗"))
	}
	if !ok {
		return exitUsage
	}
	return exitOK
}
