// Package ioconfig loads configuration from config.yaml and environment
// variables. This is an impure package that handles file system reads.
package ioconfig

import (
	"os"
	"strings"

	"github.com/gnames/gnviews/internal/iofs"
	"github.com/gnames/gnviews/pkg/config"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by gnviews.
const EnvPrefix = "GNVIEWS"

// Load reads ~/.config/gnviews/config.yaml under homeDir and environment
// variables, and returns a config with defaults for everything not set.
// A missing config file is not an error.
// Precedence: env vars > config file > defaults.
func Load(homeDir string) (*config.Config, error) {
	cfgPath := config.ConfigFilePath(homeDir)
	v := viper.New()
	v.SetConfigType("yaml")

	initEnvVars(v)

	if _, err := os.Stat(cfgPath); err == nil {
		v.SetConfigFile(cfgPath)
		if err = v.ReadInConfig(); err != nil {
			return nil, iofs.ReadConfigError(cfgPath, err)
		}
	}

	var fromViper config.Config
	if err := v.Unmarshal(&fromViper); err != nil {
		return nil, iofs.ReadConfigError(cfgPath, err)
	}

	res := config.New()
	res.Update(fromViper.ToOptions())
	return res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	_ = v.BindEnv("database.host", EnvPrefix+"_DATABASE_HOST")
	_ = v.BindEnv("database.port", EnvPrefix+"_DATABASE_PORT")
	_ = v.BindEnv("database.user", EnvPrefix+"_DATABASE_USER")
	_ = v.BindEnv("database.password", EnvPrefix+"_DATABASE_PASSWORD")
	_ = v.BindEnv("database.database", EnvPrefix+"_DATABASE_DATABASE")
	_ = v.BindEnv("database.ssl_mode", EnvPrefix+"_DATABASE_SSL_MODE")

	// Views configuration
	_ = v.BindEnv("views.definitions_dir", EnvPrefix+"_VIEWS_DEFINITIONS_DIR")
	_ = v.BindEnv("views.functions_dir", EnvPrefix+"_VIEWS_FUNCTIONS_DIR")
	_ = v.BindEnv("views.max_identifier_length",
		EnvPrefix+"_VIEWS_MAX_IDENTIFIER_LENGTH")

	// Log configuration
	_ = v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL")
	_ = v.BindEnv("log.format", EnvPrefix+"_LOG_FORMAT")
	_ = v.BindEnv("log.destination", EnvPrefix+"_LOG_DESTINATION")

	// General configuration
	_ = v.BindEnv("jobs_number", EnvPrefix+"_JOBS_NUMBER")

	v.AutomaticEnv()
}
