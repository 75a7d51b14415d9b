package main

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/arise/internal/cli"
	"github.com/julianstephens/arise/internal/cli/backups"
	"github.com/julianstephens/arise/internal/cli/profile"
	"github.com/julianstephens/arise/internal/cli/quests"
	"github.com/julianstephens/arise/internal/cli/settings"
	"github.com/julianstephens/arise/internal/cli/shadows"
	"github.com/julianstephens/arise/internal/cli/stats"
	"github.com/julianstephens/arise/internal/cli/system"
	"github.com/julianstephens/arise/internal/cli/timers"
	"github.com/julianstephens/arise/internal/cli/todos"
	"github.com/julianstephens/arise/internal/config"
	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/errors"
	"github.com/julianstephens/arise/internal/logger"
	"github.com/julianstephens/arise/internal/notifier"
	"github.com/julianstephens/arise/internal/scheduler"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path. Defaults to $ARISE_CONFIG or ~/.config/arise/config.toml." type:"string"`
	Store   string `help:"Store URI for this run (SQLite path, .json file, diskv://DIR, postgres://..., keyring). Overrides the config file and $ARISE_STORE."`
	Debug   bool   `help:"Log at debug level."`

	Init     system.InitCmd    `cmd:"" help:"Initialize arise storage."`
	Migrate  system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	DebugCmd system.DebugCmd   `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Report whether the OS keyring is usable."`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
	Tui     system.TuiCmd      `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Timer   timers.TimerCmd    `cmd:"" help:"Start, stop and inspect activity timers."`
	Time    timers.TimeCmd     `cmd:"" help:"Credit time tracked elsewhere."`
	Quest   quests.QuestCmd    `cmd:"" help:"Show and update daily gates."`
	Arise   shadows.AriseCmd   `cmd:"" help:"Spend an arise token to summon a shadow."`
	Shadow  shadows.ShadowCmd  `cmd:"" help:"Manage the shadow army."`
	Shop    shadows.ShopCmd    `cmd:"" help:"Buy upgrades with coins."`
	Stats   stats.StatsCmd     `cmd:"" help:"Show level, XP and today's totals."`
	Heatmap stats.HeatmapCmd   `cmd:"" help:"Show the monthly study heatmap."`
	Todo    todos.TodoCmd      `cmd:"" help:"Manage the todo list."`
	Profile profile.ProfileCmd `cmd:"" help:"Show or edit the player profile."`
	Accept  profile.AcceptCmd  `cmd:"" help:"Accept the Player qualification."`
	Backup  struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
	Settings settings.SettingsCmd `cmd:"" name:"config" help:"Manage application settings."`
	Notify   system.NotifyCmd     `cmd:"" hidden:"" help:"Send a notification (used internally)."`
}

// noLoad lists the commands that open the store themselves or never touch it.
var noLoad = map[string]bool{
	"init":    true,
	"keyring": true,
	"config":  true,
	"doctor":  true,
	"notify":  true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A leveling system for focused study time"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	command := strings.Fields(ctx.Command())
	top := "tui"
	if len(command) > 0 {
		top = command[0]
	}

	configPath, err := config.Path(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		errors.Fatal(err)
	}
	cfg.ApplyOverrides(CLI.Store, CLI.Debug)

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: filepath.Dir(configPath),
		FileOnly:  top == "tui",
	}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	store, err := cli.OpenStore(cfg.Store)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:      store,
		StoreURI:   cfg.Store,
		Config:     cfg,
		ConfigPath: configPath,
		Scheduler:  scheduler.New(),
		Notifier:   notifier.New(cfg.NotificationsEnabled),
	}

	if !noLoad[top] {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
		defer store.Close()
	}

	logger.Debug("Running command", "command", ctx.Command(), "store", store.GetConfigPath())
	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}
