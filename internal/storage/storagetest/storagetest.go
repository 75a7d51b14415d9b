// Package storagetest holds behavior checks shared by every storage.Provider implementation.
package storagetest

import (
	"errors"
	"testing"

	"github.com/julianstephens/arise/internal/storage"
)

// RunProviderTests exercises the key-value contract against a freshly
// initialized provider returned by newStore.
func RunProviderTests(t *testing.T, newStore func(t *testing.T) storage.Provider) {
	t.Helper()

	t.Run("missing key", func(t *testing.T) {
		s := newStore(t)
		v, ok, err := s.Get("absent")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if ok || v != "" {
			t.Errorf("Get(absent) = (%q, %v), want (\"\", false)", v, ok)
		}
	})

	t.Run("set and get", func(t *testing.T) {
		s := newStore(t)
		if err := s.Set("systemCurrency", "1000"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		v, ok, err := s.Get("systemCurrency")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !ok || v != "1000" {
			t.Errorf("Get() = (%q, %v), want (\"1000\", true)", v, ok)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		s := newStore(t)
		_ = s.Set("productivityXp", "10")
		if err := s.Set("productivityXp", `{"nested":[1,2,3]}`); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		v, _, _ := s.Get("productivityXp")
		if v != `{"nested":[1,2,3]}` {
			t.Errorf("Get() after overwrite = %q", v)
		}
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		_ = s.Set("todos", "[]")
		if err := s.Delete("todos"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, ok, _ := s.Get("todos"); ok {
			t.Error("key still present after Delete()")
		}
		if err := s.Delete("never-set"); err != nil {
			t.Errorf("Delete() of absent key error = %v", err)
		}
	})

	t.Run("keys sorted", func(t *testing.T) {
		s := newStore(t)
		for _, k := range []string{"zeta", "alpha", "mid"} {
			if err := s.Set(k, "x"); err != nil {
				t.Fatalf("Set(%s) error = %v", k, err)
			}
		}
		keys, err := s.Keys()
		if err != nil {
			t.Fatalf("Keys() error = %v", err)
		}
		want := []string{"alpha", "mid", "zeta"}
		if len(keys) != len(want) {
			t.Fatalf("Keys() = %v, want %v", keys, want)
		}
		for i := range want {
			if keys[i] != want[i] {
				t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
			}
		}
	})
}

// RequireNotLoaded asserts a provider rejects access before Init or Load.
func RequireNotLoaded(t *testing.T, s storage.Provider) {
	t.Helper()
	if _, _, err := s.Get("k"); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("Get() before load error = %v, want ErrNotLoaded", err)
	}
	if err := s.Set("k", "v"); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("Set() before load error = %v, want ErrNotLoaded", err)
	}
}
