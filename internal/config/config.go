// Package config resolves runtime settings from flags, an optional config
// file in the working directory, and GAMEPADTEST_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	AppName       = "GamepadTest"
	configName    = "gamepadtest"
	envPrefix     = "GAMEPADTEST"
	defaultDB     = "gamecontrollerdb.txt"
	anyDevice     = -1
	frameInterval = 16 * time.Millisecond
)

type Config struct {
	// MappingDB is the gamecontrollerdb.txt path. A missing file is not fatal.
	MappingDB string
	// Device selects which enumerated gamepad to track; -1 takes the first.
	Device   int
	LogLevel string
	LogFile  string
	// MirrorAddr enables the WebSocket mirror when non-empty.
	MirrorAddr string
	Interval   time.Duration
	// ConfigFile is the file viper read, if any.
	ConfigFile string
}

// Load parses args (without the program name) and merges the other sources.
// Flags win over the environment, which wins over the config file.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	fs.String("mapping-db", defaultDB, "path to an SDL gamecontrollerdb.txt mapping database")
	fs.Int("device", anyDevice, "index of the gamepad to track (-1 = first connected)")
	fs.String("log-level", "info", "log level: trace, debug, info, warn, error")
	fs.String("log-file", "", "also write logs to this file")
	fs.String("mirror-addr", "", "serve a browser mirror of the overlay on this address, e.g. :8080")
	fs.Duration("interval", frameInterval, "frame interval")
	fs.String("config", "", "config file (default ./gamepadtest.{yaml,toml,json})")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{
		MappingDB:  v.GetString("mapping-db"),
		Device:     v.GetInt("device"),
		LogLevel:   v.GetString("log-level"),
		LogFile:    v.GetString("log-file"),
		MirrorAddr: v.GetString("mirror-addr"),
		Interval:   v.GetDuration("interval"),
		ConfigFile: v.ConfigFileUsed(),
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %s", cfg.Interval)
	}
	if cfg.Device < anyDevice {
		return nil, fmt.Errorf("device must be -1 or a gamepad index, got %d", cfg.Device)
	}
	return cfg, nil
}
