package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/storage"
	"github.com/julianstephens/arise/internal/storage/sqlite"
)

func newSQLiteStore(t *testing.T, values map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arise.db")
	s := sqlite.NewStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	for k, v := range values {
		if err := s.Set(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func readSQLite(t *testing.T, path, key string) string {
	t.Helper()
	s := sqlite.NewStore(path)
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer s.Close()
	v, _, err := s.Get(key)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func fixedClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		now := t
		t = t.Add(time.Minute)
		return now
	}
}

func TestCreateAndRestoreSQLite(t *testing.T) {
	path := newSQLiteStore(t, map[string]string{constants.KeyCurrency: "1000"})
	mgr := NewManager(path)
	mgr.now = fixedClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if filepath.Base(backupPath) != "arise-20260310-0900.db" {
		t.Errorf("backup name = %s", filepath.Base(backupPath))
	}
	if readSQLite(t, backupPath, constants.KeyCurrency) != "1000" {
		t.Error("backup does not contain the store data")
	}

	s := sqlite.NewStore(path)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(constants.KeyCurrency, "5"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	snapshot, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}
	if got := readSQLite(t, path, constants.KeyCurrency); got != "1000" {
		t.Errorf("restored currency = %q, want 1000", got)
	}
	if snapshot == "" || readSQLite(t, snapshot, constants.KeyCurrency) != "5" {
		t.Errorf("pre-restore snapshot %q should hold the replaced state", snapshot)
	}
}

func TestCreateAndRestoreJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arise.json")
	s := storage.NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(constants.KeyUsername, "Jinwoo"); err != nil {
		t.Fatal(err)
	}

	mgr := NewManager(path)
	if mgr.Kind() != KindJSON {
		t.Fatalf("Kind() = %v, want KindJSON", mgr.Kind())
	}
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if !strings.HasSuffix(backupPath, ".json") {
		t.Errorf("backup path = %s, want .json suffix", backupPath)
	}

	if err := s.Set(constants.KeyUsername, "Someone Else"); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}

	reloaded := storage.NewJSONStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	if v, _, _ := reloaded.Get(constants.KeyUsername); v != "Jinwoo" {
		t.Errorf("restored username = %q, want Jinwoo", v)
	}
}

func TestRotation(t *testing.T) {
	path := newSQLiteStore(t, nil)
	mgr := NewManager(path)
	mgr.now = fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	for i := 0; i < constants.MaxBackups+3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup() #%d error = %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("len(backups) = %d, want %d", len(backups), constants.MaxBackups)
	}
	newest := time.Date(2026, 1, 1, 0, constants.MaxBackups+2, 0, 0, time.UTC)
	if !backups[0].Timestamp.Equal(newest) {
		t.Errorf("newest = %v, want %v", backups[0].Timestamp, newest)
	}
}

func TestUniqueNamesWithinAMinute(t *testing.T) {
	path := newSQLiteStore(t, nil)
	mgr := NewManager(path)
	at := time.Date(2026, 3, 10, 9, 0, 30, 0, time.UTC)
	mgr.now = func() time.Time { return at }

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		p, err := mgr.CreateBackup()
		if err != nil {
			t.Fatal(err)
		}
		if seen[p] {
			t.Fatalf("duplicate backup path %s", p)
		}
		seen[p] = true
	}
	backups, _ := mgr.ListBackups()
	if len(backups) != 3 {
		t.Errorf("ListBackups() = %d entries, want 3", len(backups))
	}
}

func TestParseStamp(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"20260310-0900", true},
		{"20260310-090030", true},
		{"20260310-090030-2", true},
		{"20260310", false},
		{"notastamp", false},
	}
	for _, tt := range tests {
		if _, ok := parseStamp(tt.in); ok != tt.ok {
			t.Errorf("parseStamp(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
	}
}

func TestRestoreRejectsInvalidBackup(t *testing.T) {
	path := newSQLiteStore(t, nil)
	mgr := NewManager(path)

	bogus := filepath.Join(t.TempDir(), "arise-20260101-0000.db")
	if err := os.WriteFile(bogus, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(bogus); err == nil {
		t.Error("expected an error restoring a non-database file")
	}
	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("expected an error for a missing backup")
	}
}

func TestSupported(t *testing.T) {
	tests := map[string]bool{
		"/home/me/.config/arise/arise.db": true,
		"state.json":                      true,
		"memory:":                         false,
		"diskv:///tmp/arise":              false,
		"postgres://localhost/arise":      false,
		"keyring":                         false,
	}
	for uri, want := range tests {
		if got := Supported(uri); got != want {
			t.Errorf("Supported(%q) = %v, want %v", uri, got, want)
		}
	}
}
