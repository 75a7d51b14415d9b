package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/arise/internal/config"
	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/engine"
	"github.com/julianstephens/arise/internal/notifier"
	"github.com/julianstephens/arise/internal/storage"
)

func newTestContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	store := storage.NewMemoryStore()
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	out := &bytes.Buffer{}
	cfg := config.Default()
	cfg.Timezone = "UTC"
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	return &Context{
		Store:    store,
		StoreURI: "memory:",
		Config:   cfg,
		Notifier: notifier.New(false),
		Options:  engine.Options{Now: func() time.Time { return now }},
		Out:      out,
	}, out
}

func TestEngineIsCached(t *testing.T) {
	ctx, _ := newTestContext(t)
	a, err := ctx.Engine()
	if err != nil {
		t.Fatalf("Engine() error = %v", err)
	}
	b, _ := ctx.Engine()
	if a != b {
		t.Error("Engine() loaded twice")
	}
	if a.Location() != time.UTC {
		t.Errorf("Location() = %v, want UTC", a.Location())
	}

	ctx.Reload()
	c, _ := ctx.Engine()
	if c == a {
		t.Error("Reload() kept the cached engine")
	}
}

func TestEngineBadTimezone(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.Config.Timezone = "Not/AZone"
	if _, err := ctx.Engine(); err == nil {
		t.Error("expected error for an unknown timezone")
	}
}

func TestEngineReportsRolloverNotQualification(t *testing.T) {
	ctx, out := newTestContext(t)
	if err := ctx.Store.Set(constants.KeyLastResetDate, "2024-03-09"); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Engine(); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if got == "" {
		t.Fatal("expected the daily reset to be reported")
	}
	if strings.Contains(got, "qualifications") {
		t.Errorf("qualification prompt printed on load: %q", got)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"yes", true},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			ctx, _ := newTestContext(t)
			ctx.In = strings.NewReader(tt.input)
			got, err := ctx.Confirm("Continue?")
			if err != nil {
				t.Fatalf("Confirm() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestXPFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{36000, "36,000"},
		{1100.5, "1,100.5"},
	}
	for _, tt := range tests {
		if got := XP(tt.in); got != tt.want {
			t.Errorf("XP(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := Coins(1050); got != "1,050" {
		t.Errorf("Coins(1050) = %q", got)
	}
}
