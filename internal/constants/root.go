package constants

import "time"

const (
	AppName            = "arise"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/arise"
	DefaultConfigPath  = "~/.config/arise/config.toml"
	DefaultStorePath   = "~/.config/arise/arise.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat identifies a calendar month (YYYY-MM)
	MonthFormat = "2006-01"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Scheduler constants
	TickInterval    = time.Second
	DayPollInterval = time.Minute

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "arise-"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "arise-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.arise"
	TrayAppExecutable      = "arise-tray"

	// Store URI schemes
	SchemeDiskv      = "diskv://"
	SchemePostgres   = "postgres://"
	SchemePostgresQL = "postgresql://"
	SchemeMemory     = "memory:"
	StoreKeyring     = "keyring"
)
