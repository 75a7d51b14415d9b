package system

import (
	"fmt"

	"github.com/julianstephens/arise/internal/cli"
	"github.com/julianstephens/arise/internal/notifier"
)

type NotifyCmd struct {
	Text   string `help:"Notification text." default:"Arise!"`
	DryRun bool   `help:"Print the notification to stdout instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if !ctx.Config.NotificationsEnabled {
		if c.DryRun {
			ctx.Println("Notifications are disabled in settings.")
		}
		return nil
	}
	if c.DryRun {
		ctx.Println("[DryRun] " + c.Text)
		return nil
	}

	n := ctx.Notifier
	if n == nil {
		n = notifier.New(true)
	}
	if err := n.Notify(c.Text); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
