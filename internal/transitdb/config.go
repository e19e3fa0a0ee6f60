package transitdb

import "log/slog"

// Config holds configuration options for the store Client.
type Config struct {
	// DBPath is the SQLite database path; ":memory:" for an ephemeral store.
	DBPath string
	Logger *slog.Logger
}

func NewConfig(dbPath string, logger *slog.Logger) Config {
	if logger == nil {
		logger = slog.Default()
	}
	return Config{
		DBPath: dbPath,
		Logger: logger,
	}
}
