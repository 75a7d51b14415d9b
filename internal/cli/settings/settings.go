package settings

import (
	"fmt"

	"github.com/julianstephens/arise/internal/cli"
	"github.com/julianstephens/arise/internal/config"
	"github.com/julianstephens/arise/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Store                *string `help:"Store URI (SQLite path, .json file, diskv://DIR, postgres://..., keyring)."`
	Timezone             *string `help:"IANA timezone that decides when the day resets, or Local."`
	NotificationsEnabled *bool   `help:"Enable or disable tray notifications."`
	AutoBackup           *bool   `help:"Back up file stores automatically when the dashboard starts."`
	Debug                *bool   `help:"Log at debug level by default."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	// Read the file again: ctx.Config carries the flag and env overrides.
	cfg, err := config.LoadOrCreate(ctx.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if c.List {
		ctx.Printf("Current Settings (%s):\n", ctx.ConfigPath)
		ctx.Printf("  Store:                 %s\n", cfg.Store)
		ctx.Printf("  Timezone:              %s\n", cfg.Timezone)
		ctx.Printf("  Notifications Enabled: %v\n", cfg.NotificationsEnabled)
		ctx.Printf("  Auto Backup:           %v\n", cfg.AutoBackup)
		ctx.Printf("  Debug:                 %v\n", cfg.Debug)
		return nil
	}

	updated := false
	if c.Store != nil {
		if *c.Store == "" {
			return fmt.Errorf("store cannot be empty")
		}
		cfg.Store = *c.Store
		updated = true
	}
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
		cfg.Timezone = *c.Timezone
		updated = true
	}
	if c.NotificationsEnabled != nil {
		cfg.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.AutoBackup != nil {
		cfg.AutoBackup = *c.AutoBackup
		updated = true
	}
	if c.Debug != nil {
		cfg.Debug = *c.Debug
		updated = true
	}

	if updated {
		if err := config.Save(ctx.ConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("Settings updated successfully.")
	} else {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
