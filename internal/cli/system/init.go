package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/arise/internal/cli"
	"github.com/julianstephens/arise/internal/constants"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing store before initialization."`
	Source string `help:"Store URI to copy every key from (SQLite path, .json, diskv://, postgres://)."`
}

// removable reports whether --force may delete the store: only local
// files and diskv directories qualify.
func removable(uri string) bool {
	switch {
	case uri == constants.StoreKeyring,
		strings.HasPrefix(uri, constants.SchemeMemory),
		strings.HasPrefix(uri, constants.SchemePostgres),
		strings.HasPrefix(uri, constants.SchemePostgresQL):
		return false
	}
	return true
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if !removable(ctx.StoreURI) {
			return fmt.Errorf("--force is only supported for file and diskv stores")
		}
		storePath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source
		if c.Source != "" && samePath(c.Source, storePath) {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", storePath)
		}
		if _, err := os.Stat(storePath); err == nil {
			// Close first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.RemoveAll(storePath); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			ctx.Printf("Deleted existing store at: %s\n", storePath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized arise storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Migrating data from: %s\n", c.Source)
		n, err := c.migrateData(ctx)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Printf("  Migrated %d keys\n", n)
		ctx.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context) (int, error) {
	source, err := cli.OpenStore(c.Source)
	if err != nil {
		return 0, err
	}
	if err := source.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source store: %w", err)
	}
	defer source.Close()

	return cli.CopyKeys(source, ctx.Store)
}
