package database

// Config holds configuration for the run-history database.
type Config struct {
	// Path is the sqlite database file. ":memory:" is valid for tests.
	Path string `mapstructure:"path" default:"database/runs.db"`
	// TimeoutSeconds is the connection/ping timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
