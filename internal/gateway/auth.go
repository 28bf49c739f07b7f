// ABOUTME: Authentication entry points built on the gateway
// ABOUTME: Login, logout, local token presence, and server-side token validation

package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/markalston/moto-admin/internal/session"
)

const (
	loginPath    = "/auth/login-admin"
	validatePath = "/admin/dashboard"
)

// ErrMalformedLogin is returned when a successful login response lacks a token
var ErrMalformedLogin = errors.New("login response did not include a token")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Credentials are the admin login inputs
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is the backend's answer to a successful login
type LoginResult struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    session.User `json:"user"`
}

// Login exchanges credentials for a token and persists the session.
// A failed login leaves the stored session untouched.
func (g *Gateway) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	creds := Credentials{Email: strings.TrimSpace(email), Password: password}
	if err := validate.Struct(creds); err != nil {
		return nil, credentialError(err)
	}

	env := g.Do(ctx, Request{
		Method:    http.MethodPost,
		Path:      loginPath,
		Body:      JSON(creds),
		Anonymous: true,
		Fallback:  "Login failed",
	})
	if err := env.AsError(); err != nil {
		return nil, err
	}

	var result LoginResult
	if err := json.Unmarshal(env.Payload, &result); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	if result.Token == "" {
		return nil, ErrMalformedLogin
	}

	user := result.User
	if err := g.session.Establish(ctx, result.Token, &user); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return &result, nil
}

// Logout drops the local session. It is idempotent.
func (g *Gateway) Logout(ctx context.Context) error {
	return g.session.Clear(ctx)
}

// IsAuthenticated reports whether a token is stored locally. It does not contact the backend.
func (g *Gateway) IsAuthenticated(ctx context.Context) bool {
	return g.session.HasToken(ctx)
}

// ValidateToken asks the backend whether the stored token is still accepted.
// Without a token it returns false and sends nothing. Concurrent callers share one
// probe, which outlives the cancellation of whichever caller started it.
func (g *Gateway) ValidateToken(ctx context.Context) bool {
	if !g.session.HasToken(ctx) {
		return false
	}

	probeCtx := context.WithoutCancel(ctx)
	v, _, _ := g.probe.Do("validate", func() (any, error) {
		env := g.Do(probeCtx, Request{Method: http.MethodGet, Path: validatePath})
		if !env.OK() {
			return false, nil
		}
		g.session.MarkValid()
		return true, nil
	})
	ok, _ := v.(bool)
	return ok
}

// CredentialError rejects login input before any request is sent
type CredentialError string

func (e CredentialError) Error() string { return string(e) }

func credentialError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	switch fe := verrs[0]; {
	case fe.Field() == "Email" && fe.Tag() == "required":
		return CredentialError("email is required")
	case fe.Field() == "Email":
		return CredentialError("email must be a valid address")
	case fe.Field() == "Password":
		return CredentialError("password is required")
	default:
		return CredentialError(strings.ToLower(fe.Field()) + " is invalid")
	}
}
