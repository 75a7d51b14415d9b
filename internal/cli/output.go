package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/julianstephens/arise/internal/engine"
)

var (
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	accentColor  = color.New(color.FgCyan, color.Bold)
)

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) Success(format string, args ...any) {
	successColor.Fprintf(c.out(), "✓ "+format+"\n", args...)
}

func (c *Context) Failure(format string, args ...any) {
	failureColor.Fprintf(c.out(), "❌ "+format+"\n", args...)
}

func (c *Context) Warn(format string, args ...any) {
	warnColor.Fprintf(c.out(), "⚠ "+format+"\n", args...)
}

// Table returns a uitable configured the way every listing renders.
func (c *Context) Table(header ...any) *uitable.Table {
	t := uitable.New()
	t.MaxColWidth = 60
	t.Wrap = true
	if len(header) > 0 {
		t.AddRow(header...)
	}
	return t
}

func (c *Context) PrintTable(t *uitable.Table) {
	fmt.Fprintln(c.out(), t)
}

// Report prints each event and forwards it to the tray notifier.
func (c *Context) Report(events []engine.Event) {
	for _, ev := range events {
		if ev.Message == "" {
			continue
		}
		switch ev.Kind {
		case engine.EventAriseFailed:
			failureColor.Fprintln(c.out(), ev.Message)
		case engine.EventDailyReset:
			warnColor.Fprintln(c.out(), ev.Message)
		default:
			accentColor.Fprintln(c.out(), ev.Message)
		}
	}
	c.Notifier.NotifyEvents(events)
}

// Confirm asks a yes/no question on the context's input.
func (c *Context) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(c.out(), "%s [y/N]: ", prompt)
	response, err := bufio.NewReader(c.in()).ReadString('\n')
	if err != nil && response == "" {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// Coins renders a currency amount with thousands separators.
func Coins(n int) string {
	return humanize.Comma(int64(n))
}

// XP renders an XP total, keeping one decimal only when it has a fraction.
func XP(xp float64) string {
	if xp == float64(int64(xp)) {
		return humanize.Comma(int64(xp))
	}
	return humanize.CommafWithDigits(xp, 1)
}
