package system

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/arise/internal/cli/clitest"
	"github.com/julianstephens/arise/internal/notifier"
)

func TestNotifyCmd_DisabledNotifications(t *testing.T) {
	env := clitest.New(t)
	env.Ctx.Config.NotificationsEnabled = false

	if err := (&NotifyCmd{Text: "hi", DryRun: true}).Run(env.Ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(env.Output(), "disabled") {
		t.Error("expected the disabled notice")
	}
}

func TestNotifyCmd_DryRun(t *testing.T) {
	env := clitest.New(t)
	env.Ctx.Config.NotificationsEnabled = true

	if err := (&NotifyCmd{Text: "Level up!", DryRun: true}).Run(env.Ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := env.Output(); got != "[DryRun] Level up!\n" {
		t.Errorf("output = %q", got)
	}
}

func TestNotifyCmd_TrayMissing(t *testing.T) {
	env := clitest.New(t)
	env.Ctx.Config.NotificationsEnabled = true
	env.Ctx.Notifier = notifier.New(true)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	err := (&NotifyCmd{Text: "hello"}).Run(env.Ctx)
	if !errors.Is(err, notifier.ErrTrayNotRunning) {
		t.Errorf("Run() error = %v, want ErrTrayNotRunning", err)
	}
}
