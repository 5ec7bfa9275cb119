// Package config loads the YAML configuration and applies environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvConfig = "TADA_CONFIG"
	EnvData   = "TADA_DATA"
	EnvDriver = "TADA_DRIVER"
)

// Config holds all settings.
type Config struct {
	Storage Storage `yaml:"storage"`
	UI      UI      `yaml:"ui"`
	Logging Logging `yaml:"logging"`
}

// Storage selects where the list lives.
type Storage struct {
	Driver string `yaml:"driver"` // json, sqlite, redis, memory
	Path   string `yaml:"path"`   // file for json/sqlite
	Key    string `yaml:"key"`
	Redis  Redis  `yaml:"redis"`
}

// Redis configures the redis driver.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// UI tunes presentation.
type UI struct {
	Theme  string `yaml:"theme"`  // classic, neon, mono
	Filter string `yaml:"filter"` // view shown at startup
}

// Logging configures the zap logger.
type Logging struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"` // "-" logs to stderr
}

// Dir is the per-user directory for data, config and logs (~/.tada).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".tada"), nil
}

// DefaultPath is where the config file is looked up.
func DefaultPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the built-in configuration rooted at dir.
func Default(dir string) *Config {
	return &Config{
		Storage: Storage{
			Driver: DriverJSON,
			Path:   filepath.Join(dir, "todos.json"),
			Key:    "todo-20211207",
			Redis:  Redis{Addr: "localhost:6379"},
		},
		UI: UI{
			Theme:  "classic",
			Filter: "all",
		},
		Logging: Logging{
			Level: "info",
			Path:  filepath.Join(dir, "tada.log"),
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path, dir string) (*Config, error) {
	cfg := Default(dir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.fillPaths(dir)
	return cfg, nil
}

// fillPaths picks a file name matching the driver when the file left path empty.
func (c *Config) fillPaths(dir string) {
	if c.Storage.Path == "" {
		c.Storage.Path = DataPath(dir, c.Storage.Driver)
	}
}

// DataPath is the default storage file for a driver.
func DataPath(dir, driver string) string {
	if driver == DriverSQLite {
		return filepath.Join(dir, "todos.db")
	}
	return filepath.Join(dir, "todos.json")
}

// ApplyEnv overlays TADA_DRIVER and TADA_DATA.
func (c *Config) ApplyEnv(dir string) {
	if v := strings.TrimSpace(os.Getenv(EnvDriver)); v != "" {
		c.SetDriver(v, dir)
	}
	if v := strings.TrimSpace(os.Getenv(EnvData)); v != "" {
		c.Storage.Path = v
	}
}

// SetDriver switches the storage driver. A path still pointing at the old
// driver's default file follows the switch.
func (c *Config) SetDriver(driver, dir string) {
	driver = strings.ToLower(strings.TrimSpace(driver))
	if c.Storage.Path == DataPath(dir, c.Storage.Driver) {
		c.Storage.Path = DataPath(dir, driver)
	}
	c.Storage.Driver = driver
}

// Validate rejects unknown drivers and themes.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverJSON, DriverSQLite, DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver)
	}
	switch strings.ToLower(c.UI.Theme) {
	case "", "classic", "neon", "mono":
	default:
		return fmt.Errorf("ui.theme: unknown theme %q", c.UI.Theme)
	}
	return nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}
