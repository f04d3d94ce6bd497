package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/miuchi/chaticons/internal/paths"
)

// Store backends for run history.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Config holds the chaticons.json settings. Every field has a usable
// default so the tool runs without any config file at all.
type Config struct {
	// OutputDir is where generated assets are written. Relative paths are
	// resolved against the working directory.
	OutputDir string `json:"output_dir,omitempty"`
	// Log enables run history recording.
	Log bool `json:"log,omitempty"`
	// Store selects the history backend: "file" or "sqlite".
	Store string `json:"store,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		OutputDir: paths.DefaultOutputDir,
		Store:     StoreFile,
	}
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	*c = Default()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// Load reads and parses a config file. It tries, in order:
//  1. explicitPath (if non-empty)
//  2. chaticons.json next to the running binary
//  3. ~/.config/chaticons/chaticons.json
//
// If no file is found the defaults are returned; an explicit path that
// cannot be read is an error.
func Load(explicitPath string) (Config, error) {
	if explicitPath != "" {
		return readConfig(explicitPath)
	}

	// Next to binary
	exe, err := os.Executable()
	if err == nil {
		p := filepath.Join(filepath.Dir(exe), paths.ConfigFileName)
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}

	// User config directory
	home, err := os.UserHomeDir()
	if err == nil {
		var p string
		if runtime.GOOS == "windows" {
			p = filepath.Join(home, "AppData", "Roaming", paths.AppDirName, paths.ConfigFileName)
		} else {
			p = filepath.Join(home, ".config", paths.AppDirName, paths.ConfigFileName)
		}
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}

	return Default(), nil
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	switch c.Store {
	case StoreFile, StoreSQLite:
		return nil
	default:
		return fmt.Errorf("unknown store %q (want %q or %q)", c.Store, StoreFile, StoreSQLite)
	}
}
