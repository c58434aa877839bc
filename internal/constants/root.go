package constants

import "time"

const (
	AppName            = "habitual"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitual/habitual.db"
	DefaultUserID      = "local"
	// DBFromKeyring as the db setting reads the PostgreSQL connection string
	// from HABITUAL_DB_CONNECTION or the OS keyring.
	DBFromKeyring = "keyring"
	Version            = "v0.1.0"

	// DateFormat is the calendar-day key format used throughout the application (YYYY-MM-DD).
	// Day keys are always derived in UTC.
	DateFormat = "2006-01-02"

	// TimestampFormat is how instants are persisted in SQLite. Values are always
	// written in UTC so that text comparison matches chronological order.
	TimestampFormat = time.RFC3339

	// Day is the length of a UTC calendar day.
	Day = 24 * time.Hour

	// Reporting defaults
	DefaultWindowDays  = 30
	DefaultConcurrency = 8

	// Due windows
	WeeklyIntervalDays  = 7
	MonthlyIntervalDays = 30 // fixed approximation, not calendar-month aware

	// Environment variables
	EnvConfigPath = "HABITUAL_CONFIG_PATH"
	EnvDB         = "HABITUAL_DB"
	EnvUser       = "HABITUAL_USER"
	EnvWindowDays = "HABITUAL_WINDOW_DAYS"
	EnvDebug      = "HABITUAL_DEBUG"
	EnvDBConn     = "HABITUAL_DB_CONNECTION"
)
