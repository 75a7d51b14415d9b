package system

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/arise/internal/backup"
	"github.com/julianstephens/arise/internal/cli"
	"github.com/julianstephens/arise/internal/config"
	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/keyring"
	"github.com/julianstephens/arise/internal/notifier"
	"github.com/julianstephens/arise/internal/storage/sqlite"
	"github.com/julianstephens/arise/internal/utils"
	"github.com/julianstephens/arise/internal/validation"
)

// errSkipped marks a check that does not apply to the current store.
var errSkipped = errors.New("not applicable")

type DoctorCmd struct {
	Fix bool `help:"Reset persisted values that cannot be decoded to their defaults."`
}

type schemaVersioner interface {
	SchemaVersion() (current, latest int, err error)
}

type check struct {
	name     string
	warnOnly bool
	needsDB  bool
	opensDB  bool
	run      func(*cli.Context) error
}

func (cmd *DoctorCmd) checks() []check {
	return []check{
		{name: "Store reachable", opensDB: true, run: checkStoreReachable},
		{name: "Schema version", needsDB: true, run: checkSchemaVersion},
		{name: "Config file", run: checkConfig},
		{name: "Clock/timezone", run: checkClockTimezone},
		{name: "Persisted state", needsDB: true, run: cmd.checkValidation},
		{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
		{name: "OS keyring", warnOnly: true, run: checkKeyring},
		{name: "Tray notifier", warnOnly: true, run: checkTray},
	}
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false

	for _, c := range cmd.checks() {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (store not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Success("%s: OK", c.name)
			if c.opensDB {
				dbReachable = true
			}
		case errors.Is(err, errSkipped):
			ctx.Printf("⊘ %s: SKIPPED (%v)\n", c.name, err)
		case c.warnOnly:
			ctx.Warn("%s: WARNING", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Failure("%s: FAIL", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	// For SQLite, also try a simple query
	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	if _, err := ctx.Store.Keys(); err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sv, ok := ctx.Store.(schemaVersioner)
	if !ok {
		return fmt.Errorf("%w: store has no schema", errSkipped)
	}
	current, latest, err := sv.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'arise migrate')", current, latest)
	}
	return nil
}

func checkConfig(ctx *cli.Context) error {
	if ctx.ConfigPath == "" {
		return fmt.Errorf("%w: no config file in use", errSkipped)
	}
	if _, err := os.Stat(ctx.ConfigPath); err != nil {
		return fmt.Errorf("config file missing: %w", err)
	}
	_, err := config.LoadOrCreate(ctx.ConfigPath)
	return err
}

func checkClockTimezone(ctx *cli.Context) error {
	if !utils.ValidateTimezone(ctx.Config.Timezone) {
		return fmt.Errorf("unknown timezone %q", ctx.Config.Timezone)
	}

	now := time.Now()
	if ctx.Options.Now != nil {
		now = ctx.Options.Now()
	}
	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func (cmd *DoctorCmd) checkValidation(ctx *cli.Context) error {
	result, err := validation.New().ValidateState(ctx.Store)
	if err != nil {
		return err
	}
	if !result.HasConflicts() {
		return nil
	}

	if cmd.Fix {
		for _, action := range validation.AutoFix(result.Conflicts, ctx.Store.Delete) {
			ctx.Printf("   %s\n", action.Action)
		}
		result, err = validation.New().ValidateState(ctx.Store)
		if err != nil {
			return err
		}
		if !result.HasConflicts() {
			return nil
		}
	}

	ctx.Printf("%s", result.FormatReport())
	return fmt.Errorf("%d conflict(s) found", len(result.Conflicts))
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !backup.Supported(ctx.StoreURI) {
		return fmt.Errorf("%w: store is not a local file", errSkipped)
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'arise backup create'")
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if ctx.StoreURI != constants.StoreKeyring {
		return fmt.Errorf("%w: store does not use the keyring", errSkipped)
	}
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkTray(ctx *cli.Context) error {
	if !ctx.Config.NotificationsEnabled {
		return fmt.Errorf("%w: notifications disabled", errSkipped)
	}
	return notifier.Reachable()
}
