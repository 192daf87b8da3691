package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gnames/gnviews/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "gnviews"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "gnviews", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "gnviews", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Database defaults
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "postgres", cfg.Database.Password)
		assert.Equal(t, "gnviews", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)

		// Views defaults
		assert.Equal(t, "db/views", cfg.Views.DefinitionsDir)
		assert.Equal(t, "db/functions", cfg.Views.FunctionsDir)
		assert.Equal(t, 63, cfg.Views.MaxIdentifierLength)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		// JobsNumber defaults to CPU count
		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	})
}

func TestOptionDatabaseHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid host",
			input:    "db.example.com",
			expected: "db.example.com",
		},
		{
			name:     "trims whitespace",
			input:    "  db.example.com  ",
			expected: "db.example.com",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "localhost", // Should keep default
		},
		{
			name:     "ignores whitespace-only",
			input:    "   ",
			expected: "localhost", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseHost(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Host)
		})
	}
}

func TestOptionDatabasePort(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{
			name:     "sets valid port",
			input:    5433,
			expected: 5433,
		},
		{
			name:     "ignores zero",
			input:    0,
			expected: 5432, // Should keep default
		},
		{
			name:     "ignores negative",
			input:    -100,
			expected: 5432, // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabasePort(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Port)
		})
	}
}

func TestOptionDatabaseSSLMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid ssl mode - require",
			input:    "require",
			expected: "require",
		},
		{
			name:     "sets valid ssl mode - verify-full",
			input:    "verify-full",
			expected: "verify-full",
		},
		{
			name:     "normalizes to lowercase",
			input:    "REQUIRE",
			expected: "require",
		},
		{
			name:     "ignores invalid value",
			input:    "invalid",
			expected: "disable", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseSSLMode(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.SSLMode)
		})
	}
}

func TestOptionLog(t *testing.T) {
	tests := []struct {
		name  string
		opt   config.Option
		field func(*config.Config) string
		res   string
	}{
		{
			name:  "level debug",
			opt:   config.OptLogLevel("debug"),
			field: func(c *config.Config) string { return c.Log.Level },
			res:   "debug",
		},
		{
			name:  "invalid level",
			opt:   config.OptLogLevel("verbose"),
			field: func(c *config.Config) string { return c.Log.Level },
			res:   "info",
		},
		{
			name:  "format text",
			opt:   config.OptLogFormat("TEXT"),
			field: func(c *config.Config) string { return c.Log.Format },
			res:   "text",
		},
		{
			name:  "destination stderr",
			opt:   config.OptLogDestination("stderr"),
			field: func(c *config.Config) string { return c.Log.Destination },
			res:   "stderr",
		},
		{
			name:  "invalid destination",
			opt:   config.OptLogDestination("syslog"),
			field: func(c *config.Config) string { return c.Log.Destination },
			res:   "file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt})
			assert.Equal(t, tt.res, tt.field(cfg))
		})
	}
}

func TestOptionViews(t *testing.T) {
	t.Run("definitions dir", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{config.OptViewsDefinitionsDir(" sql/views ")})
		assert.Equal(t, "sql/views", cfg.Views.DefinitionsDir)

		cfg.Update([]config.Option{config.OptViewsDefinitionsDir("")})
		assert.Equal(t, "sql/views", cfg.Views.DefinitionsDir)
	})

	t.Run("functions dir", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{config.OptViewsFunctionsDir(" sql/functions ")})
		assert.Equal(t, "sql/functions", cfg.Views.FunctionsDir)

		cfg.Update([]config.Option{config.OptViewsFunctionsDir("  ")})
		assert.Equal(t, "sql/functions", cfg.Views.FunctionsDir)
	})

	t.Run("max identifier length", func(t *testing.T) {
		tests := []struct {
			input, expected int
		}{
			{40, 40},
			{0, 63},
			{-1, 63},
			{64, 63},
		}
		for _, v := range tests {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptViewsMaxIdentifierLength(v.input)})
			assert.Equal(t, v.expected, cfg.Views.MaxIdentifierLength, v.input)
		}
	})
}

func TestOptionJobsNumber(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptJobsNumber(3)})
	assert.Equal(t, 3, cfg.JobsNumber)

	cfg.Update([]config.Option{config.OptJobsNumber(0)})
	assert.Equal(t, 3, cfg.JobsNumber)
}

func TestMultipleOptions(t *testing.T) {
	t.Run("applies multiple options in order", func(t *testing.T) {
		cfg := config.New()

		opts := []config.Option{
			config.OptDatabaseHost("custom.host.com"),
			config.OptDatabasePort(5433),
			config.OptDatabaseUser("myuser"),
			config.OptLogLevel("debug"),
			config.OptJobsNumber(16),
		}

		cfg.Update(opts)

		assert.Equal(t, "custom.host.com", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "myuser", cfg.Database.User)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, 16, cfg.JobsNumber)

		// Unchanged fields keep defaults
		assert.Equal(t, "postgres", cfg.Database.Password)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		cfg := config.New()

		opts := []config.Option{
			config.OptDatabaseHost("first.host.com"),
			config.OptDatabaseHost("second.host.com"),
		}

		cfg.Update(opts)

		assert.Equal(t, "second.host.com", cfg.Database.Host)
	})
}

func TestToOptions(t *testing.T) {
	t.Run("converts config to options correctly", func(t *testing.T) {
		original := config.New()
		opts := []config.Option{
			config.OptDatabaseHost("test.host.com"),
			config.OptDatabasePort(5433),
			config.OptDatabaseUser("testuser"),
			config.OptDatabasePassword("testpass"),
			config.OptDatabaseDatabase("testdb"),
			config.OptDatabaseSSLMode("require"),
			config.OptViewsDefinitionsDir("sql/views"),
			config.OptViewsFunctionsDir("sql/functions"),
			config.OptViewsMaxIdentifierLength(50),
			config.OptLogLevel("debug"),
			config.OptLogFormat("text"),
			config.OptLogDestination("stdout"),
			config.OptJobsNumber(8),
		}
		original.Update(opts)

		// Convert to options and apply to new config
		convertedOpts := original.ToOptions()
		newCfg := config.New()
		newCfg.Update(convertedOpts)

		assert.Equal(t, original.Database, newCfg.Database)
		assert.Equal(t, original.Views, newCfg.Views)
		assert.Equal(t, original.Log, newCfg.Log)
		assert.Equal(t, original.JobsNumber, newCfg.JobsNumber)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/custom/home"),
		})

		opts := cfg.ToOptions()
		newCfg := config.New()
		newCfg.Update(opts)

		assert.Equal(t, "", newCfg.HomeDir)
	})
}
