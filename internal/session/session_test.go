package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ai-stock-trading/dashboard/internal/model"
)

func TestStateExpiredAt(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		state   State
		now     time.Time
		expired bool
	}{
		{"no token", State{}, issued, true},
		{"fresh", State{Token: "t", IssuedAt: issued}, issued.Add(time.Minute), false},
		{"just under", State{Token: "t", IssuedAt: issued}, issued.Add(TokenExpiry - time.Second), false},
		{"exact boundary", State{Token: "t", IssuedAt: issued}, issued.Add(TokenExpiry), true},
		{"past", State{Token: "t", IssuedAt: issued}, issued.Add(25 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.ExpiredAt(tt.now); got != tt.expired {
				t.Errorf("ExpiredAt() = %v, want %v", got, tt.expired)
			}
		})
	}
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store := NewStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("load on missing file: %v", err)
	}
	if !store.Expired() {
		t.Fatalf("empty store must read as expired")
	}

	if err := store.Set("token-123", model.RoleAdmin); err != nil {
		t.Fatalf("set: %v", err)
	}

	reloaded := NewStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Token() != "token-123" {
		t.Errorf("token = %q, want token-123", reloaded.Token())
	}
	if reloaded.Role() != model.RoleAdmin {
		t.Errorf("role = %q, want %q", reloaded.Role(), model.RoleAdmin)
	}
	if reloaded.Expired() {
		t.Errorf("fresh session must not be expired")
	}
}

func TestStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store := NewStore(path)
	if err := store.Set("token-123", model.RoleUser); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if store.Token() != "" || store.Role() != "" {
		t.Errorf("clear must drop every session field")
	}
	if !store.Expired() {
		t.Errorf("cleared store must read as expired")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("session file must be removed, stat err = %v", err)
	}

	// Clearing twice must not fail on the missing file.
	if err := store.Clear(); err != nil {
		t.Errorf("second clear: %v", err)
	}
}
