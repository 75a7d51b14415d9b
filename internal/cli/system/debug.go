package system

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/julianstephens/arise/internal/cli"
	"github.com/julianstephens/arise/internal/logger"
)

type DebugCmd struct {
	Path *DebugPathCmd `cmd:"" help:"Show store, config and log paths."`
	Dump *DebugDumpCmd `cmd:"" help:"Dump every persisted key as JSON."`
	Get  *DebugGetCmd  `cmd:"" help:"Print the raw value of one key."`
}

type DebugPathCmd struct{}

func (cmd *DebugPathCmd) Run(ctx *cli.Context) error {
	// Output in machine-readable format
	output := map[string]string{
		"store":  ctx.Store.GetConfigPath(),
		"config": ctx.ConfigPath,
		"log":    logger.Path(),
	}
	return printJSON(ctx, output)
}

type DebugDumpCmd struct{}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	keys, err := ctx.Store.Keys()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	sort.Strings(keys)

	dump := make(map[string]any, len(keys))
	for _, key := range keys {
		value, ok, err := ctx.Store.Get(key)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", key, err)
		}
		if !ok {
			continue
		}
		// Nest JSON values so the dump stays readable.
		var decoded any
		if json.Unmarshal([]byte(value), &decoded) == nil {
			dump[key] = decoded
		} else {
			dump[key] = value
		}
	}
	return printJSON(ctx, dump)
}

type DebugGetCmd struct {
	Key string `arg:"" help:"Storage key, e.g. shadowArmy."`
}

func (cmd *DebugGetCmd) Run(ctx *cli.Context) error {
	value, ok, err := ctx.Store.Get(cmd.Key)
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", cmd.Key, err)
	}
	if !ok {
		return fmt.Errorf("key not found: %s", cmd.Key)
	}
	ctx.Println(value)
	return nil
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}
