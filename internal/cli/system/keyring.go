package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/arise/internal/cli"
	"github.com/julianstephens/arise/internal/constants"
	apperrors "github.com/julianstephens/arise/internal/errors"
	"github.com/julianstephens/arise/internal/keyring"
	"github.com/julianstephens/arise/internal/storage"
	"github.com/julianstephens/arise/internal/storage/postgres"
)

var errNoKeyringEntry = apperrors.WithHint(keyring.ErrNotFound, "store one with 'arise keyring set <connection string>'")

// KeyringSetCmd keeps the PostgreSQL connection string, password included,
// in the OS keyring so the config file can just say store = "keyring".
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string (URL or key=value DSN)."`
	Check            bool   `help:"Connect once before saving."`
}

func isConnString(s string) bool {
	return strings.HasPrefix(s, constants.SchemePostgres) ||
		strings.HasPrefix(s, constants.SchemePostgresQL) ||
		strings.Contains(s, "host=")
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !isConnString(cmd.ConnectionString) {
		return errors.New("not a PostgreSQL connection string")
	}

	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return fmt.Errorf("invalid connection string: %w", err)
	}

	if cmd.Check {
		if err := checkConnection(cmd.ConnectionString); err != nil {
			return err
		}
		ctx.Success("Connected to " + maskPassword(cmd.ConnectionString))
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	ctx.Success("Connection string saved to the OS keyring")
	if ctx.StoreURI != constants.StoreKeyring {
		ctx.Println("  Use it with --store keyring, or set store = \"keyring\" in the config file")
	}
	return nil
}

// checkConnection reports connection failures only. A reachable database
// that has not been initialized yet is fine.
func checkConnection(connStr string) error {
	store := postgres.New(connStr)
	defer store.Close()
	if err := store.Load(); err != nil && !errors.Is(err, storage.ErrNotInitialized) {
		return fmt.Errorf("could not connect: %w", err)
	}
	return nil
}

type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return errNoKeyringEntry
	}
	if err != nil {
		return fmt.Errorf("failed to read keyring: %w", err)
	}
	ctx.Println(maskPassword(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return errNoKeyringEntry
	}
	if err != nil {
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}

	ctx.Success("Connection string removed from the OS keyring")
	if ctx.StoreURI == constants.StoreKeyring {
		ctx.Warn("The configured store is \"keyring\"; arise cannot open it until a new connection string is set.")
	}
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Failure("OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	ctx.Success("OS keyring is available")

	connStr, err := keyring.GetConnectionString()
	switch {
	case err == nil:
		ctx.Success("Connection string stored: " + maskPassword(connStr))
	case errors.Is(err, keyring.ErrNotFound):
		ctx.Println("ℹ No connection string stored")
	default:
		return fmt.Errorf("failed to read keyring: %w", err)
	}

	if ctx.StoreURI == constants.StoreKeyring {
		ctx.Println("ℹ The configured store reads its connection string from here")
	}
	return nil
}

// maskPassword hides the password of a URL or key=value connection string.
func maskPassword(connStr string) string {
	if strings.HasPrefix(connStr, constants.SchemePostgres) || strings.HasPrefix(connStr, constants.SchemePostgresQL) {
		scheme, rest, _ := strings.Cut(connStr, "://")
		at := strings.LastIndex(rest, "@")
		if at < 0 {
			return connStr
		}
		user, _, hasPassword := strings.Cut(rest[:at], ":")
		if !hasPassword {
			return connStr
		}
		return scheme + "://" + user + ":****" + rest[at:]
	}

	fields := strings.Fields(connStr)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
