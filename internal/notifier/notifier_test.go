package notifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/engine"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func stubConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := userConfigDirFunc
	t.Cleanup(func() { userConfigDirFunc = old })
	userConfigDirFunc = func() (string, error) { return dir, nil }
	return dir
}

func stubProcess(t *testing.T, executable string) {
	t.Helper()
	old := findProcessFunc
	t.Cleanup(func() { findProcessFunc = old })
	findProcessFunc = func(pid int) (ps.Process, error) {
		if executable == "" {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: executable}, nil
	}
}

func TestGetTrayAppConfigDir(t *testing.T) {
	base := stubConfigDir(t)

	expectedDefault := filepath.Join(base, constants.TrayAppIdentifier)
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != expectedDefault {
		t.Errorf("expected %s, got %s", expectedDefault, dir)
	}

	if err := os.MkdirAll(expectedDefault, 0755); err != nil {
		t.Fatal(err)
	}
	customDir := "/custom/arise/dir"
	settingsJSON := fmt.Sprintf(`{"settings": {"lockfile_dir": "%s"}}`, customDir)
	if err := os.WriteFile(filepath.Join(expectedDefault, "settings.json"), []byte(settingsJSON), 0644); err != nil {
		t.Fatal(err)
	}

	dir, err = GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != customDir {
		t.Errorf("expected %s, got %s", customDir, dir)
	}
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		executable string
		wantErr    string
	}{
		{"old two-part format", "8080|12345", constants.TrayAppExecutable, "malformed"},
		{"garbage", "invalid", constants.TrayAppExecutable, "malformed"},
		{"empty secret", "8080|12345|", constants.TrayAppExecutable, "secret"},
		{"empty port", "|12345|s3cret", constants.TrayAppExecutable, "port"},
		{"port out of range", "99999|12345|s3cret", constants.TrayAppExecutable, "range"},
		{"bad pid", "8080|abc|s3cret", constants.TrayAppExecutable, "process ID"},
		{"process gone", "8080|12345|s3cret", "", "not running"},
		{"wrong executable", "8080|12345|s3cret", "other-app", "is not"},
		{"valid", "8080|12345|s3cret", constants.TrayAppExecutable, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubProcess(t, tt.executable)
			lockfile := filepath.Join(t.TempDir(), constants.NotifierLockfileName)
			if err := os.WriteFile(lockfile, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			port, secret, err := findAndValidateTrayProcess(lockfile)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if port != "8080" || secret != "s3cret" {
				t.Errorf("got (%s, %s), want (8080, s3cret)", port, secret)
			}
		})
	}

	t.Run("missing lockfile", func(t *testing.T) {
		_, _, err := findAndValidateTrayProcess(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrTrayNotRunning) {
			t.Errorf("error = %v, want ErrTrayNotRunning", err)
		}
	})
}

type trayServer struct {
	*httptest.Server
	mu       sync.Mutex
	received []WebhookPayload
}

func newTrayServer(t *testing.T, secret string) *trayServer {
	t.Helper()
	ts := &trayServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("X-Arise-Secret") != secret {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Unauthorized"))
			return
		}
		var payload WebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if payload.Text == "fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		ts.mu.Lock()
		ts.received = append(ts.received, payload)
		ts.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func (ts *trayServer) port() string {
	parts := strings.Split(ts.URL, ":")
	return parts[len(parts)-1]
}

func TestPost(t *testing.T) {
	ts := newTrayServer(t, "test-secret")
	n := New(true)

	tests := []struct {
		name    string
		secret  string
		text    string
		wantErr bool
	}{
		{"success", "test-secret", "hello", false},
		{"missing secret", "", "hello", true},
		{"wrong secret", "wrong-secret", "hello", true},
		{"server error", "test-secret", "fail", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := n.post(ts.port(), tt.secret, WebhookPayload{Text: tt.text})
			if (err != nil) != tt.wantErr {
				t.Errorf("post() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNotifyEvents(t *testing.T) {
	ts := newTrayServer(t, "s3cret")
	base := stubConfigDir(t)
	stubProcess(t, constants.TrayAppExecutable)

	lockDir := filepath.Join(base, constants.TrayAppIdentifier)
	if err := os.MkdirAll(lockDir, 0755); err != nil {
		t.Fatal(err)
	}
	lock := fmt.Sprintf("%s|%d|s3cret", ts.port(), os.Getpid())
	if err := os.WriteFile(filepath.Join(lockDir, constants.NotifierLockfileName), []byte(lock), 0644); err != nil {
		t.Fatal(err)
	}

	events := []engine.Event{
		{Kind: engine.EventLevelUp, Message: "Level up! You are now level 2."},
		{Kind: engine.EventDailyReset},
		{Kind: engine.EventAriseFailed, Message: "The Gate remains closed... Try again, Hunter!"},
	}

	New(false).NotifyEvents(events)
	if len(ts.received) != 0 {
		t.Fatalf("disabled notifier sent %d payloads", len(ts.received))
	}

	New(true).NotifyEvents(events)
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if len(ts.received) != 2 {
		t.Fatalf("received %d payloads, want 2 (events without a message are skipped)", len(ts.received))
	}
	if ts.received[0].Kind != string(engine.EventLevelUp) || ts.received[1].Kind != string(engine.EventAriseFailed) {
		t.Errorf("received = %+v", ts.received)
	}
	if ts.received[0].DurationMs != constants.NotificationDurationMs {
		t.Errorf("DurationMs = %d", ts.received[0].DurationMs)
	}
}

func TestNotifyWithoutTray(t *testing.T) {
	stubConfigDir(t)
	if err := New(true).Notify("hello"); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("Notify() error = %v, want ErrTrayNotRunning", err)
	}
}

func TestReachable(t *testing.T) {
	dir := stubConfigDir(t)
	if err := Reachable(); !errors.Is(err, ErrTrayNotRunning) {
		t.Fatalf("Reachable() without lockfile = %v, want ErrTrayNotRunning", err)
	}

	trayDir := filepath.Join(dir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayDir, 0o755); err != nil {
		t.Fatal(err)
	}
	lock := filepath.Join(trayDir, constants.NotifierLockfileName)
	if err := os.WriteFile(lock, []byte("4821|77|s3cret"), 0o600); err != nil {
		t.Fatal(err)
	}
	stubProcess(t, constants.TrayAppExecutable)
	if err := Reachable(); err != nil {
		t.Errorf("Reachable() = %v, want nil", err)
	}
}
