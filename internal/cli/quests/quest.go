package quests

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/arise/internal/cli"
	"github.com/julianstephens/arise/internal/engine"
	"github.com/julianstephens/arise/internal/models"
)

type QuestCmd struct {
	List     QuestListCmd     `cmd:"" help:"List today's daily gates." default:"1"`
	Progress QuestProgressCmd `cmd:"" help:"Record progress on a daily gate."`
}

func progressLabel(q models.Quest) string {
	if q.Unit == "seconds" {
		return fmt.Sprintf("%s / %s", engine.FormatDuration(q.Progress), engine.FormatDuration(q.Target))
	}
	return fmt.Sprintf("%d / %d", q.Progress, q.Target)
}

type QuestListCmd struct{}

func (c *QuestListCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}

	ctx.Printf("Daily gates for %s\n\n", e.Today())
	table := ctx.Table("ID", "GATE", "PROGRESS", "REWARD", "STATUS")
	for _, q := range e.Quests() {
		status := fmt.Sprintf("%.0f%%", q.Percent())
		if q.Completed {
			status = "cleared"
		}
		table.AddRow(q.ID, q.Title+" - "+q.Description, progressLabel(q),
			fmt.Sprintf("%d XP, %d coins", q.Reward.XP, q.Reward.Coins), status)
	}
	ctx.PrintTable(table)
	ctx.Printf("\nArise tokens: %d\n", e.Tokens())
	return nil
}

type QuestProgressCmd struct {
	ID     int    `arg:"" help:"Gate ID from 'arise quest list'."`
	Amount string `arg:"" help:"Amount to add (seconds for the study gate)."`
}

func (c *QuestProgressCmd) Run(ctx *cli.Context) error {
	amount, err := strconv.ParseInt(c.Amount, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: must be a whole number", c.Amount)
	}
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	events, err := e.UpdateQuestProgress(c.ID, amount)
	if err != nil {
		return err
	}
	for _, q := range e.Quests() {
		if q.ID == c.ID {
			ctx.Printf("%s: %s\n", q.Title, progressLabel(q))
		}
	}
	ctx.Report(events)
	return nil
}
