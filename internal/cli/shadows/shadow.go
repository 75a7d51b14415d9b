package shadows

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/julianstephens/arise/internal/cli"
	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/engine"
	"github.com/julianstephens/arise/internal/models"
)

type AriseCmd struct{}

func (c *AriseCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	events, err := e.AttemptArise()
	if err != nil {
		return err
	}
	ctx.Report(events)
	ctx.Printf("Arise tokens left: %d\n", e.Tokens())
	return nil
}

type ShadowCmd struct {
	List    ShadowListCmd    `cmd:"" help:"List your shadow army." default:"1"`
	Level   ShadowLevelCmd   `cmd:"" help:"Spend coins to level up a shadow."`
	Remove  ShadowRemoveCmd  `cmd:"" help:"Release a shadow, freeing its slot."`
	Catalog ShadowCatalogCmd `cmd:"" help:"List every shadow that can be arisen."`
}

type ShopCmd struct {
	Slot ShopSlotCmd `cmd:"" help:"Purchase one more shadow slot."`
}

func formatBuffs(b models.Buffs) string {
	var parts []string
	for _, k := range models.BuffKinds {
		if v, ok := b[k]; ok && v > 0 {
			parts = append(parts, fmt.Sprintf("+%.1f%% %s", v*100, k))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

// resolve finds a roster entry by 1-based position, archetype key, name or id.
func resolve(e *engine.Engine, ref string) (int, models.Shadow, error) {
	roster := e.Roster()
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(roster) {
			return -1, models.Shadow{}, engine.ErrShadowNotFound
		}
		return n - 1, roster[n-1], nil
	}
	for i, s := range roster {
		if s.ID == ref || strings.EqualFold(s.Key, ref) || strings.EqualFold(s.Name, ref) {
			return i, s, nil
		}
	}
	return -1, models.Shadow{}, engine.ErrShadowNotFound
}

type ShadowListCmd struct{}

func (c *ShadowListCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	roster := e.Roster()
	ctx.Printf("Shadow army: %d / %d slots\n\n", len(roster), e.Slots())
	if len(roster) == 0 {
		ctx.Println("No shadows yet. Clear a daily gate and run 'arise arise'.")
		return nil
	}

	table := ctx.Table("#", "SHADOW", "RANK", "RARITY", "LEVEL", "BUFFS", "NEXT LEVEL")
	for i, s := range roster {
		next := "max"
		if s.Level < constants.ShadowMaxLevel {
			next = cli.Coins(engine.LevelUpCost(s.Level)) + " coins"
		}
		table.AddRow(i+1, s.Name, s.Rank, s.Rarity, s.Level, formatBuffs(s.Buffs()), next)
	}
	ctx.PrintTable(table)
	ctx.Printf("\nTotal buffs: %s\n", formatBuffs(e.TotalBuffs()))
	return nil
}

type ShadowLevelCmd struct {
	Shadow string `arg:"" help:"Roster position, name or id."`
}

func (c *ShadowLevelCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	_, s, err := resolve(e, c.Shadow)
	if err != nil {
		return err
	}
	cost := engine.LevelUpCost(s.Level)
	leveled, err := e.LevelUpShadow(s.ID)
	if err != nil {
		return err
	}
	ctx.Success("%s reached level %d (-%s coins, %s left)", leveled.Name, leveled.Level, cli.Coins(cost), cli.Coins(e.Currency()))
	return nil
}

type ShadowRemoveCmd struct {
	Shadow string `arg:"" help:"Roster position, name or id."`
	Yes    bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ShadowRemoveCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	i, s, err := resolve(e, c.Shadow)
	if err != nil {
		return err
	}
	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Release %s (level %d)? There is no refund.", s.Name, s.Level))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}
	removed, err := e.RemoveShadow(i)
	if err != nil {
		return err
	}
	ctx.Success("%s has been released", removed.Name)
	return nil
}

type ShadowCatalogCmd struct{}

func (c *ShadowCatalogCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	owned := map[string]bool{}
	for _, s := range e.Roster() {
		owned[s.Key] = true
	}

	catalog := make([]models.Archetype, len(engine.Catalog))
	copy(catalog, engine.Catalog)
	sort.SliceStable(catalog, func(i, j int) bool {
		return catalog[i].Rarity.Weight() > catalog[j].Rarity.Weight()
	})

	table := ctx.Table("SHADOW", "RANK", "RARITY", "CHANCE", "BASE BUFFS", "OWNED")
	for _, a := range catalog {
		mark := ""
		if owned[a.Key] {
			mark = "✓"
		}
		table.AddRow(a.Name, a.Rank, a.Rarity, fmt.Sprintf("%.1f%%", e.DrawChance(a.Key)*100), formatBuffs(a.BaseBuffs), mark)
	}
	ctx.PrintTable(table)
	ctx.Printf("\nEach arise makes up to %d attempts at %.0f%% each.\n", constants.AriseMaxAttempts, constants.AriseSuccessChance*100)
	return nil
}

type ShopSlotCmd struct{}

func (c *ShopSlotCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	cost := e.SlotCost()
	slots, err := e.PurchaseSlot()
	if err != nil {
		return fmt.Errorf("%w: a slot costs %s coins, you have %s", err, cli.Coins(cost), cli.Coins(e.Currency()))
	}
	ctx.Success("Purchased slot %d for %s coins (%s left, next slot %s)", slots, cli.Coins(cost), cli.Coins(e.Currency()), cli.Coins(e.SlotCost()))
	return nil
}
