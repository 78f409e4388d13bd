package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreBestRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if got, err := s.Best(ctx, DefaultKey); err != nil || got != 0 {
		t.Fatalf("Best on empty store = %d, %v; want 0, nil", got, err)
	}

	if err := s.SaveBest(ctx, DefaultKey, 7); err != nil {
		t.Fatalf("SaveBest: %v", err)
	}
	if got, _ := s.Best(ctx, DefaultKey); got != 7 {
		t.Errorf("Best = %d, want 7", got)
	}

	// Lower scores never overwrite.
	if err := s.SaveBest(ctx, DefaultKey, 3); err != nil {
		t.Fatalf("SaveBest: %v", err)
	}
	if got, _ := s.Best(ctx, DefaultKey); got != 7 {
		t.Errorf("Best after lower save = %d, want 7", got)
	}

	if err := s.SaveBest(ctx, DefaultKey, 12); err != nil {
		t.Fatalf("SaveBest: %v", err)
	}
	if got, _ := s.Best(ctx, DefaultKey); got != 12 {
		t.Errorf("Best after higher save = %d, want 12", got)
	}
}

func TestStoreKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	s.SaveBest(ctx, KeyFor("alice"), 4)
	s.SaveBest(ctx, KeyFor("bob"), 9)

	if got, _ := s.Best(ctx, KeyFor("alice")); got != 4 {
		t.Errorf("alice = %d, want 4", got)
	}
	if got, _ := s.Best(ctx, KeyFor("bob")); got != 9 {
		t.Errorf("bob = %d, want 9", got)
	}
	if got, _ := s.Best(ctx, DefaultKey); got != 0 {
		t.Errorf("default = %d, want 0", got)
	}
}

func TestStoreUnparseableReadsZero(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, err := s.db.Exec(`INSERT INTO scores (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`, DefaultKey, "lots"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if got, err := s.Best(ctx, DefaultKey); err != nil || got != 0 {
		t.Fatalf("Best = %d, %v; want 0, nil", got, err)
	}

	// A real score replaces the corrupt value.
	if err := s.SaveBest(ctx, DefaultKey, 2); err != nil {
		t.Fatalf("SaveBest: %v", err)
	}
	if got, _ := s.Best(ctx, DefaultKey); got != 2 {
		t.Errorf("Best = %d, want 2", got)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scores.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.SaveBest(ctx, DefaultKey, 21)
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if got, _ := s.Best(ctx, DefaultKey); got != 21 {
		t.Errorf("Best after reopen = %d, want 21", got)
	}
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	m.Set(DefaultKey, "-3")
	if got, _ := m.Best(ctx, DefaultKey); got != 0 {
		t.Errorf("negative value = %d, want 0", got)
	}
	m.SaveBest(ctx, DefaultKey, 5)
	m.SaveBest(ctx, DefaultKey, 1)
	if got, _ := m.Best(ctx, DefaultKey); got != 5 {
		t.Errorf("Best = %d, want 5", got)
	}
}

func TestKeyFor(t *testing.T) {
	tests := map[string]string{
		"":      "bestScore",
		"  ":    "bestScore",
		"alice": "bestScore:alice",
	}
	for user, want := range tests {
		if got := KeyFor(user); got != want {
			t.Errorf("KeyFor(%q) = %q, want %q", user, got, want)
		}
	}
}
