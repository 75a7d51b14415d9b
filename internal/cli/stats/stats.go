package stats

import (
	"github.com/julianstephens/arise/internal/cli"
	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/engine"
	"github.com/julianstephens/arise/internal/models"
	"github.com/julianstephens/arise/internal/tui"
	"github.com/julianstephens/arise/internal/utils"
)

const barWidth = 30

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	s := e.Snapshot()

	name := s.Profile.Username
	if name == "" {
		name = "Hunter"
	}
	ctx.Printf("%s  Level %d  %s\n", name, s.Level, tui.RankBadge(s.Rank))
	ctx.Printf("%s %.0f%%\n", tui.ProgressBar(s.XPPercent, barWidth), s.XPPercent)
	ctx.Printf("XP %s (%s to next level)\n\n", cli.XP(s.XP), cli.XP(engine.XPToNextLevel(s.XP)))

	table := ctx.Table("ACTIVITY", "TODAY", "ALL TIME")
	for _, a := range models.Activities {
		table.AddRow(a.Label(), engine.FormatDuration(s.Daily.Get(a)), engine.FormatDuration(s.AllTime.Get(a)))
	}
	ctx.PrintTable(table)

	ctx.Printf("\nProductivity today: %d%%\n", engine.Productivity(s.Daily))
	ctx.Printf("Coins: %s  Arise tokens: %d  Shadows: %d/%d\n", cli.Coins(s.Currency), s.Tokens, len(s.Shadows), s.Slots)
	if active := s.Timer.Active; active != "" {
		ctx.Printf("%s timer running: %s\n", active.Label(), engine.FormatDuration(s.Timer.Elapsed))
	}
	return nil
}

type HeatmapCmd struct {
	Month string `arg:"" optional:"" help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *HeatmapCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}

	ref := c.Month
	if ref == "" {
		ref = e.Today()[:len(constants.MonthFormat)]
	}
	month, err := utils.ParseMonth(ref, e.Location())
	if err != nil {
		return err
	}

	cells := e.HeatmapMonth(month)
	ctx.Println(tui.RenderHeatmap(month, cells, e.Today()))

	var total int64
	active := 0
	for _, cell := range cells {
		total += cell.StudyTime
		if cell.StudyTime > 0 {
			active++
		}
	}
	ctx.Printf("\nStudied %s across %d %s.\n", engine.FormatDuration(total), active, plural(active, "day", "days"))
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
