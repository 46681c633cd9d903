// Package config loads settings from ~/.worldsaver/config.toml, a .env file
// and WS_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".worldsaver"
	envPrefix  = "WS"
)

const (
	KeyNarrationBaseURL   = "narration.base_url"
	KeyNarrationTimeout   = "narration.timeout"
	KeyNarrationOffline   = "narration.offline"
	KeyGameWinThreshold   = "game.win_threshold"
	KeyGameLoseThreshold  = "game.lose_threshold"
	KeyGameContextWindow  = "game.context_window"
	KeyStreamCadence      = "stream.cadence"
	KeyStreamClosingDelay = "stream.closing_delay"
	KeyStoreBackend       = "store.backend"
	KeyStorePath          = "store.path"
	KeyRecordsPath        = "records.path"
	KeyLogLevel           = "log.level"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendChain  = "chain"
)

type Config struct {
	Narration NarrationConfig
	Game      GameConfig
	Stream    StreamConfig
	Store     StoreConfig
	Records   RecordsConfig
	LogLevel  string
}

type NarrationConfig struct {
	BaseURL string
	Timeout time.Duration
	Offline bool
}

type GameConfig struct {
	WinThreshold  int
	LoseThreshold int
	ContextWindow int
}

type StreamConfig struct {
	Cadence      time.Duration
	ClosingDelay time.Duration
}

type StoreConfig struct {
	Backend string
	Path    string
}

type RecordsConfig struct {
	Path string
}

// New returns a viper instance with defaults, environment binding and the
// config file search path set up. homeDir anchors the default paths.
func New(homeDir string) *viper.Viper {
	v := viper.New()
	base := filepath.Join(homeDir, configDir)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(base)

	v.SetDefault(KeyNarrationBaseURL, "http://localhost:5000")
	v.SetDefault(KeyNarrationTimeout, 30*time.Second)
	v.SetDefault(KeyNarrationOffline, false)
	v.SetDefault(KeyGameWinThreshold, 15)
	v.SetDefault(KeyGameLoseThreshold, -5)
	v.SetDefault(KeyGameContextWindow, 999)
	v.SetDefault(KeyStreamCadence, 16*time.Millisecond)
	v.SetDefault(KeyStreamClosingDelay, 350*time.Millisecond)
	v.SetDefault(KeyStoreBackend, BackendFile)
	v.SetDefault(KeyStorePath, filepath.Join(base, "state"))
	v.SetDefault(KeyRecordsPath, filepath.Join(base, "records.toml"))
	v.SetDefault(KeyLogLevel, "warn")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadDotEnv loads .env files into the process environment. Missing files are
// skipped and existing variables are never overridden.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat env file: %w", err)
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	}

	return nil
}

// Load reads the config file if there is one and returns validated settings.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Narration: NarrationConfig{
			BaseURL: strings.TrimSpace(v.GetString(KeyNarrationBaseURL)),
			Timeout: v.GetDuration(KeyNarrationTimeout),
			Offline: v.GetBool(KeyNarrationOffline),
		},
		Game: GameConfig{
			WinThreshold:  v.GetInt(KeyGameWinThreshold),
			LoseThreshold: v.GetInt(KeyGameLoseThreshold),
			ContextWindow: v.GetInt(KeyGameContextWindow),
		},
		Stream: StreamConfig{
			Cadence:      v.GetDuration(KeyStreamCadence),
			ClosingDelay: v.GetDuration(KeyStreamClosingDelay),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString(KeyStoreBackend))),
			Path:    v.GetString(KeyStorePath),
		},
		Records:  RecordsConfig{Path: v.GetString(KeyRecordsPath)},
		LogLevel: v.GetString(KeyLogLevel),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.Narration.BaseURL == "" && !c.Narration.Offline {
		errs = append(errs, fmt.Errorf("%s cannot be empty", KeyNarrationBaseURL))
	}
	if c.Narration.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyNarrationTimeout))
	}
	if c.Game.WinThreshold <= c.Game.LoseThreshold {
		errs = append(errs, fmt.Errorf("%s must be greater than %s", KeyGameWinThreshold, KeyGameLoseThreshold))
	}
	if c.Game.ContextWindow < 1 {
		errs = append(errs, fmt.Errorf("%s must be > 0", KeyGameContextWindow))
	}
	if c.Stream.Cadence < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyStreamCadence))
	}
	if c.Stream.ClosingDelay < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyStreamClosingDelay))
	}
	switch c.Store.Backend {
	case BackendFile, BackendSQLite, BackendChain:
	default:
		errs = append(errs, fmt.Errorf("%s %q is not one of file, sqlite, chain", KeyStoreBackend, c.Store.Backend))
	}
	if c.Store.Path == "" {
		errs = append(errs, fmt.Errorf("%s cannot be empty", KeyStorePath))
	}
	if c.Records.Path == "" {
		errs = append(errs, fmt.Errorf("%s cannot be empty", KeyRecordsPath))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ParseLevel maps a log.level value to a slog level.
func ParseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelWarn, fmt.Errorf("%s %q: %w", KeyLogLevel, raw, err)
	}
	return level, nil
}
