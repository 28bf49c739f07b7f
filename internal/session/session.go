// ABOUTME: Session data model for the admin console
// ABOUTME: Defines the persisted snapshot, cached profile, and validity states

package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Validity is the client's belief about whether the stored token is accepted by the backend
type Validity int

const (
	Unknown Validity = iota
	Valid
	Invalid
)

// String returns the string representation of a Validity
func (v Validity) String() string {
	switch v {
	case Unknown:
		return "unknown"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// User is the display-only profile returned by the login endpoint
type User struct {
	ID       string `json:"id" yaml:"id"`
	FullName string `json:"full_name" yaml:"full_name"`
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone,omitempty" yaml:"phone,omitempty"`
	IsAdmin  int    `json:"is_admin" yaml:"is_admin"`
}

// UnmarshalJSON accepts the id as a JSON string or number
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	var raw struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*u = User(raw.plain)
	u.ID = ""
	if len(raw.ID) == 0 || string(raw.ID) == "null" {
		return nil
	}
	if raw.ID[0] == '"' {
		return json.Unmarshal(raw.ID, &u.ID)
	}
	u.ID = string(raw.ID)
	return nil
}

// Snapshot is what durable storage holds
type Snapshot struct {
	Token string `yaml:"token,omitempty" json:"token,omitempty"`
	User  *User  `yaml:"user,omitempty" json:"user,omitempty"`
}

// Empty reports whether the snapshot carries no credential
func (s Snapshot) Empty() bool {
	return s.Token == ""
}

// Store is durable client-side session storage.
// Watch delivers a notification whenever another process changes the stored session;
// the store's own writes do not notify.
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
	Clear(ctx context.Context) error
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// TokenExpiry returns the exp claim of a JWT token without verifying it.
// The value is for display only.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
