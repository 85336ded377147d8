package constants

import "time"

const (
	AppName            = "habitual"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/habitual"
	DefaultConfigPath  = "~/.config/habitual/habitual.db"
	DefaultConfigFile  = "~/.config/habitual/config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Storage backends
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitual-"
	BackupFileSuffix = ".db"

	// Session lock constants
	SessionLockfileName = "habitual-session.lock"
	SessionRetryDelay   = 100 * time.Millisecond

	// Dashboard defaults
	DefaultChartDays = 14
	DefaultTarget    = 30.0
	DefaultAmount    = 30.0
)
