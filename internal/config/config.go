// ABOUTME: Habits configuration management with backend selection.
// ABOUTME: Handles settings, timezone, coach endpoint, and the storage backend factory.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/habits/internal/kv"
	"github.com/harperreed/habits/internal/storage"
)

// Backend names accepted in the config file.
const (
	BackendSQLite   = "sqlite"
	BackendMarkdown = "markdown"
	BackendKV       = "kv"
)

// Config stores habits tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "markdown" or "kv".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts habits.db here, markdown puts habits/ and state.yaml here,
	// kv puts its badger files under kv/. Supports ~ expansion.
	DataDir string `json:"data_dir,omitempty"`

	// Timezone is an IANA name deciding when "today" rolls over. Empty or
	// "Local" means the system zone.
	Timezone string `json:"timezone,omitempty"`

	// AIBaseURL and AIModel select the OpenAI-compatible coach endpoint.
	AIBaseURL string `json:"ai_base_url,omitempty"`
	AIModel   string `json:"ai_model,omitempty"`

	// Debug raises the log level and mirrors logs to stderr.
	Debug bool `json:"debug,omitempty"`

	// DBPath overrides the SQLite file location. Set from the --db flag only.
	DBPath string `json:"-"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// SQLitePath returns the database file used by the sqlite backend.
func (c *Config) SQLitePath() string {
	if c.DBPath != "" {
		return ExpandPath(c.DBPath)
	}
	return filepath.Join(c.GetDataDir(), storage.AppName+".db")
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured
// backend. logger may be nil.
func (c *Config) OpenStorage(logger *log.Logger) (storage.Repository, error) {
	return OpenBackend(c.GetBackend(), c.GetDataDir(), c.SQLitePath(), logger)
}

// OpenBackend opens a named backend rooted at dataDir.
func OpenBackend(backend, dataDir, sqlitePath string, logger *log.Logger) (storage.Repository, error) {
	switch backend {
	case BackendSQLite:
		if sqlitePath == "" {
			sqlitePath = filepath.Join(dataDir, storage.AppName+".db")
		}
		return storage.Open(sqlitePath)
	case BackendMarkdown:
		return storage.NewMarkdownStore(dataDir)
	case BackendKV:
		return kv.Open(filepath.Join(dataDir, "kv"), logger)
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, storage.AppName, "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
