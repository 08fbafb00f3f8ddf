// Package config resolves runtime settings from flags, POA_* environment
// variables, an optional .env file and an optional config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "POA"

// Setting keys. Flags use the same names.
const (
	KeyConfig    = "config"
	KeyDB        = "db"
	KeyActor     = "actor"
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
)

type Config struct {
	DB        string
	Actor     string
	LogLevel  string
	LogFormat string
}

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"console": true, "json": true}
)

// DefaultDBPath is ~/.poa/poa.db, or poa.db when the home directory is
// unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "poa.db"
	}
	return filepath.Join(home, ".poa", "poa.db")
}

func defaultActor() string {
	for _, k := range []string{"USER", "USERNAME"} {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return "poa"
}

// BindFlags registers the global flags on fs and binds them to v.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	fs.String(KeyConfig, "", "config file (yaml, json or toml)")
	fs.String(KeyDB, DefaultDBPath(), "SQLite database path")
	fs.String(KeyActor, defaultActor(), "name recorded in load audit entries")
	fs.String(KeyLogLevel, "warn", "log level: debug, info, warn or error")
	fs.String(KeyLogFormat, "console", "log format: console or json")

	for _, key := range []string{KeyDB, KeyActor, KeyLogLevel, KeyLogFormat} {
		if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
			return fmt.Errorf("binding flag %s: %w", key, err)
		}
	}
	return nil
}

// Load resolves the configuration. Precedence is flag, environment, config
// file, then flag default. A missing .env file is not an error.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		DB:        v.GetString(KeyDB),
		Actor:     v.GetString(KeyActor),
		LogLevel:  strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat: strings.ToLower(v.GetString(KeyLogFormat)),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.DB == "" {
		errs = append(errs, errors.New("db path is required"))
	}
	if !validLevels[c.LogLevel] {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.LogLevel))
	}
	if !validFormats[c.LogFormat] {
		errs = append(errs, fmt.Errorf("invalid log format %q", c.LogFormat))
	}
	return errors.Join(errs...)
}
