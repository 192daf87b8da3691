// Package config provides configuration management for gnviews.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode
//   - Views: definitions_dir, functions_dir, max_identifier_length
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNVIEWS_ prefix with underscores for nesting:
//
//	GNVIEWS_DATABASE_HOST=localhost
//	GNVIEWS_DATABASE_PORT=5432
//	GNVIEWS_VIEWS_DEFINITIONS_DIR=db/views
//	GNVIEWS_LOG_LEVEL=info
//	GNVIEWS_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete gnviews configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Views contains settings for view definitions and generated names.
	Views ViewsConfig `mapstructure:"views" yaml:"views"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber limits concurrent catalog reads during dump.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// ViewsConfig contains settings of view definitions.
type ViewsConfig struct {
	// DefinitionsDir keeps versioned definition files named
	// <name>_v<NN>.sql. Relative paths are resolved from the working
	// directory.
	DefinitionsDir string `mapstructure:"definitions_dir" yaml:"definitions_dir"`

	// FunctionsDir keeps versioned function definitions, named the same
	// way. Each file holds a complete CREATE FUNCTION statement.
	FunctionsDir string `mapstructure:"functions_dir" yaml:"functions_dir"`

	// MaxIdentifierLength bounds generated temporary names. PostgreSQL
	// truncates identifiers longer than 63 bytes.
	MaxIdentifierLength int `mapstructure:"max_identifier_length" yaml:"max_identifier_length"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "gnviews",
			SSLMode:  "disable",
		},
		Views: ViewsConfig{
			DefinitionsDir:      "db/views",
			FunctionsDir:        "db/functions",
			MaxIdentifierLength: 63,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
