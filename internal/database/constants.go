package database

// Connection pool defaults.
const (
	// DefaultMinConnections is the minimum number of connections kept warm.
	DefaultMinConnections = 2
)

// Error messages for database setup.
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToSetDialect      = "failed to set migration dialect"
	ErrMsgFailedToApplyMigrations = "failed to apply migrations"
)
