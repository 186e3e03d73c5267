// Package config resolves where guide keeps its data and which adapters it
// wires. Values come from the environment, then ~/.guide/config.toml, then
// defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	homeDir    = ".guide"

	StorageDriverKey   = "storage.driver"
	SessionPathKey     = "session.path"
	PreferencesPathKey = "preferences.path"
	DatabasePathKey    = "database.path"
	JournalPathKey     = "journal.path"
	CachePathKey       = "cache.path"
	CatalogPathKey     = "catalog.path"
	NotifyModeKey      = "notify.mode"
)

const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

type NotifyMode string

const (
	NotifyAuto    NotifyMode = "auto"
	NotifyDesktop NotifyMode = "desktop"
	NotifyStderr  NotifyMode = "stderr"
	NotifyOff     NotifyMode = "off"
)

// Env is the process environment guide reads.
type Env struct {
	Home    string `env:"GUIDE_HOME"`
	Catalog string `env:"GUIDE_CATALOG"`
	Notify  string `env:"GUIDE_NOTIFY"`
	Storage string `env:"GUIDE_STORAGE"`
	Log     bool   `env:"GUIDE_LOG"`
	Trace   bool   `env:"GUIDE_TRACE"`
}

func LoadEnv() (Env, error) {
	parsed, err := env.ParseAs[Env]()
	if err != nil {
		return Env{}, fmt.Errorf("parse environment: %w", err)
	}
	return parsed, nil
}

type Config struct {
	Home            string
	StorageDriver   string
	SessionPath     string
	PreferencesPath string
	DatabasePath    string
	JournalPath     string
	CachePath       string
	// CatalogPath is empty when the embedded catalog is used.
	CatalogPath string
	Notify      NotifyMode
	Log         bool
	Trace       bool
}

func Load(cfg *viper.Viper, e Env) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	// HOME can change between loads within one process.
	homedir.DisableCache = true

	home, err := resolveHome(e.Home)
	if err != nil {
		return Config{}, err
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(home)
	cfg.SetDefault(StorageDriverKey, DriverFile)
	cfg.SetDefault(SessionPathKey, filepath.Join(home, "session.json"))
	cfg.SetDefault(PreferencesPathKey, filepath.Join(home, "preferences.json"))
	cfg.SetDefault(DatabasePathKey, filepath.Join(home, "guide.db"))
	cfg.SetDefault(JournalPathKey, filepath.Join(home, "journal"))
	cfg.SetDefault(CachePathKey, filepath.Join(home, "cache"))
	cfg.SetDefault(CatalogPathKey, "")
	cfg.SetDefault(NotifyModeKey, string(NotifyAuto))

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	if e.Catalog != "" {
		cfg.Set(CatalogPathKey, e.Catalog)
	}
	if e.Storage != "" {
		cfg.Set(StorageDriverKey, e.Storage)
	}
	if e.Notify != "" {
		cfg.Set(NotifyModeKey, e.Notify)
	}

	out := Config{Home: home, Log: e.Log, Trace: e.Trace}

	out.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.GetString(StorageDriverKey)))
	if out.StorageDriver != DriverFile && out.StorageDriver != DriverSQLite {
		return Config{}, fmt.Errorf("unknown storage driver %q (want %s or %s)", out.StorageDriver, DriverFile, DriverSQLite)
	}

	out.Notify = NotifyMode(strings.ToLower(strings.TrimSpace(cfg.GetString(NotifyModeKey))))
	switch out.Notify {
	case NotifyAuto, NotifyDesktop, NotifyStderr, NotifyOff:
	default:
		return Config{}, fmt.Errorf("unknown notify mode %q", out.Notify)
	}

	paths := []struct {
		key  string
		dest *string
	}{
		{SessionPathKey, &out.SessionPath},
		{PreferencesPathKey, &out.PreferencesPath},
		{DatabasePathKey, &out.DatabasePath},
		{JournalPathKey, &out.JournalPath},
		{CachePathKey, &out.CachePath},
		{CatalogPathKey, &out.CatalogPath},
	}
	for _, p := range paths {
		raw := cfg.GetString(p.key)
		if raw == "" {
			continue
		}
		resolved, err := normalizePath(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", p.key, err)
		}
		*p.dest = resolved
	}

	return out, nil
}

func resolveHome(raw string) (string, error) {
	if raw != "" {
		return normalizePath(raw)
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(userHome, homeDir), nil
}

func normalizePath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand path %q: %w", path, err)
	}
	absPath, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", path, err)
	}
	return filepath.Clean(absPath), nil
}
