package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/ericogr/fight-tracker/internal/constants"
)

const (
	defaultAddress         = ":8080"
	defaultSQLitePath      = "./data/tracker.db"
	defaultLogLevel        = "info"
	defaultShutdownTimeout = 10 * time.Second
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address" yaml:"address"`
		// Seconds to wait for in-flight requests on shutdown.
		ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds"`
	} `json:"server" yaml:"server"`
	Storage *struct {
		Driver      string `json:"driver" yaml:"driver"`
		SQLitePath  string `json:"sqlite_path" yaml:"sqlite_path"`
		PostgresURL string `json:"postgres_url" yaml:"postgres_url"`
	} `json:"storage" yaml:"storage"`
	Log *struct {
		Level string `json:"level" yaml:"level"`
	} `json:"log" yaml:"log"`
}

// envOverrides are applied on top of the file so deployments can switch
// storage without editing it.
type envOverrides struct {
	Address         string        `env:"TRACKER_ADDR"`
	Driver          string        `env:"TRACKER_STORAGE_DRIVER"`
	SQLitePath      string        `env:"TRACKER_SQLITE_PATH"`
	PostgresURL     string        `env:"TRACKER_POSTGRES_URL"`
	LogLevel        string        `env:"TRACKER_LOG_LEVEL"`
	ShutdownTimeout time.Duration `env:"TRACKER_SHUTDOWN_TIMEOUT"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Driver      string
	SQLitePath  string
	PostgresURL string
}

// LoadedConfig contains the server address, storage selection and log level.
type LoadedConfig struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	Storage         StorageConfig
	LogLevel        string
}

// Defaults returns the configuration used when no file is present.
func Defaults() *LoadedConfig {
	return &LoadedConfig{
		ServerAddress:   defaultAddress,
		ShutdownTimeout: defaultShutdownTimeout,
		Storage: StorageConfig{
			Driver:     constants.DriverSQLite,
			SQLitePath: defaultSQLitePath,
		},
		LogLevel: defaultLogLevel,
	}
}

// LoadConfig reads the configuration file at path (JSON, or YAML when the
// extension is .yaml/.yml), then applies TRACKER_* environment overrides.
// A missing file is not an error: defaults are used instead.
func LoadConfig(path string) (*LoadedConfig, error) {
	cfg := Defaults()

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		var rc rawConfig
		if err := decode(path, b, &rc); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		applyFile(cfg, &rc)
	}

	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	applyEnv(cfg, &ov)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func decode(path string, b []byte, rc *rawConfig) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, rc)
	default:
		return json.Unmarshal(b, rc)
	}
}

func applyFile(cfg *LoadedConfig, rc *rawConfig) {
	if rc.Server != nil {
		if rc.Server.Address != "" {
			cfg.ServerAddress = rc.Server.Address
		}
		if rc.Server.ShutdownTimeoutSeconds > 0 {
			cfg.ShutdownTimeout = time.Duration(rc.Server.ShutdownTimeoutSeconds) * time.Second
		}
	}
	if rc.Storage != nil {
		if rc.Storage.Driver != "" {
			cfg.Storage.Driver = rc.Storage.Driver
		}
		if rc.Storage.SQLitePath != "" {
			cfg.Storage.SQLitePath = rc.Storage.SQLitePath
		}
		if rc.Storage.PostgresURL != "" {
			cfg.Storage.PostgresURL = rc.Storage.PostgresURL
		}
	}
	if rc.Log != nil && rc.Log.Level != "" {
		cfg.LogLevel = rc.Log.Level
	}
}

func applyEnv(cfg *LoadedConfig, ov *envOverrides) {
	if ov.Address != "" {
		cfg.ServerAddress = ov.Address
	}
	if ov.Driver != "" {
		cfg.Storage.Driver = ov.Driver
	}
	if ov.SQLitePath != "" {
		cfg.Storage.SQLitePath = ov.SQLitePath
	}
	if ov.PostgresURL != "" {
		cfg.Storage.PostgresURL = ov.PostgresURL
	}
	if ov.LogLevel != "" {
		cfg.LogLevel = ov.LogLevel
	}
	if ov.ShutdownTimeout > 0 {
		cfg.ShutdownTimeout = ov.ShutdownTimeout
	}
}

func (c *LoadedConfig) validate() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case constants.DriverSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			return errors.New("storage.sqlite_path is required for the sqlite driver")
		}
	case constants.DriverPostgres:
		if strings.TrimSpace(c.Storage.PostgresURL) == "" {
			return errors.New("storage.postgres_url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q (use %q or %q)", c.Storage.Driver, constants.DriverSQLite, constants.DriverPostgres)
	}
	return nil
}
