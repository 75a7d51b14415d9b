package profile

import (
	"strings"

	"github.com/julianstephens/arise/internal/cli"
	"github.com/julianstephens/arise/internal/engine"
	"github.com/julianstephens/arise/internal/tui"
	"github.com/julianstephens/arise/internal/utils"
)

type ProfileCmd struct {
	Show   ProfileShowCmd   `cmd:"" help:"Show your hunter profile." default:"1"`
	Name   ProfileNameCmd   `cmd:"" help:"Change your username."`
	Avatar ProfileAvatarCmd `cmd:"" help:"Set the profile picture reference (path or URL)."`
}

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	p := e.Profile()

	table := ctx.Table("FIELD", "VALUE")
	table.AddRow("Username", p.Username)
	table.AddRow("Level", e.Level())
	table.AddRow("Rank", tui.RankBadge(e.Rank()))
	avatar := p.ProfilePicture
	if avatar == "" {
		avatar = "-"
	}
	table.AddRow("Picture", avatar)
	ctx.PrintTable(table)

	if e.NeedsAcceptance() {
		ctx.Printf("\n%s\n", engine.QualificationMessage)
		ctx.Println("Run 'arise accept' to become a Player.")
	}
	return nil
}

type ProfileNameCmd struct {
	Name []string `arg:"" help:"New username."`
}

func (c *ProfileNameCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	if err := e.SetUsername(strings.Join(c.Name, " ")); err != nil {
		return err
	}
	ctx.Success("Username set to %q", e.Profile().Username)
	return nil
}

type ProfileAvatarCmd struct {
	Ref   string `arg:"" optional:"" help:"Image path or URL. Omit with --clear to remove it."`
	Clear bool   `help:"Remove the profile picture."`
}

func (c *ProfileAvatarCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	if c.Clear {
		e.SetProfilePicture("")
		ctx.Success("Profile picture cleared")
		return nil
	}

	ref := strings.TrimSpace(c.Ref)
	if ref == "" {
		return engine.ErrEmptyText
	}
	if !strings.Contains(ref, "://") {
		if ref, err = utils.ExpandPath(ref); err != nil {
			return err
		}
	}
	e.SetProfilePicture(ref)
	ctx.Success("Profile picture set to %s", ref)
	return nil
}

type AcceptCmd struct{}

func (c *AcceptCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	if !e.NeedsAcceptance() {
		ctx.Println("You are already a Player.")
		return nil
	}
	e.Accept()
	ctx.Success("You are now a Player. Arise!")
	return nil
}
