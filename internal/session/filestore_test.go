// ABOUTME: Tests for the YAML file session store
// ABOUTME: Covers persistence, permissions, corrupt files, and change polling

package session

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "moto-admin", "session.yaml")
	s := NewFileStore(path, 0)

	snap, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error loading missing file: %v", err)
	}
	if !snap.Empty() {
		t.Error("expected empty snapshot for missing file")
	}

	want := Snapshot{Token: "abc", User: &User{ID: "u1", FullName: "Ada", Email: "ada@example.com", IsAdmin: 1}}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("unexpected error saving: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error loading: %v", err)
	}
	if got.Token != "abc" || got.User == nil || got.User.Email != "ada@example.com" {
		t.Errorf("round trip mismatch: %+v", got)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("expected mode 0600, got %o", info.Mode().Perm())
		}
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("unexpected error clearing: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("second clear should be a no-op, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected session file removed")
	}
}

func TestFileStore_CorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	if err := os.WriteFile(path, []byte("token: [unterminated"), 0600); err != nil {
		t.Fatal(err)
	}

	snap, err := NewFileStore(path, 0).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !snap.Empty() {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
}

func TestFileStore_WatchIgnoresOwnWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), "session.yaml")
	s := NewFileStore(path, 20*time.Millisecond)
	ch, err := s.Watch(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Save(ctx, Snapshot{Token: "mine"}); err != nil {
		t.Fatal(err)
	}
	select {
	case <-ch:
		t.Fatal("own write must not notify")
	case <-time.After(150 * time.Millisecond):
	}

	// Another process logs out
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("expected notification for external change")
	}
}

func TestFileStore_WatchSeesExternalLogoutWithoutOwnWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), "session.yaml")
	if err := NewFileStore(path, 0).Save(ctx, Snapshot{Token: "tok"}); err != nil {
		t.Fatal(err)
	}

	console := NewFileStore(path, 20*time.Millisecond)
	if snap, err := console.Load(ctx); err != nil || snap.Token != "tok" {
		t.Fatalf("expected stored session, got %+v, %v", snap, err)
	}
	ch, err := console.Watch(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if err := NewFileStore(path, 0).Clear(ctx); err != nil {
		t.Fatal(err)
	}
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected notification for logout from another process")
	}
}

func TestFileStore_WatchIgnoresOwnClear(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), "session.yaml")
	s := NewFileStore(path, 20*time.Millisecond)
	if err := s.Save(ctx, Snapshot{Token: "tok"}); err != nil {
		t.Fatal(err)
	}
	ch, err := s.Watch(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	select {
	case <-ch:
		t.Fatal("own clear must not notify")
	case <-time.After(150 * time.Millisecond):
	}
}
