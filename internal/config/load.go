package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/qjebbs/go-jsons"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Environment variables that override file configuration.
const (
	EnvAPIURL  = "DRIVE_API_URL"
	EnvDataDir = "DRIVE_DATA_DIR"
	EnvTheme   = "DRIVE_THEME"
)

// Load reads the global config file and any project-local config files in
// workingDir, merging them in order of precedence, then applies environment
// overrides. A .env file in workingDir is loaded first; it never overrides
// variables that are already set.
func Load(workingDir, dataDir string, debug bool) (*Config, error) {
	if err := loadDotEnv(workingDir); err != nil {
		slog.Warn("Failed to load .env file", "error", err)
	}

	paths := append([]string{GlobalConfig()}, lookupConfigs(workingDir)...)
	cfg, err := loadFromPaths(paths)
	if err != nil {
		return nil, err
	}

	if dataDir == "" {
		dataDir = os.Getenv(EnvDataDir)
	}
	cfg.setDefaults(workingDir, dataDir)
	cfg.applyEnv()
	if debug {
		cfg.Options.Debug = true
	}
	return cfg, nil
}

// LoadReader decodes a single JSON configuration.
func LoadReader(r io.Reader) (*Config, error) {
	var cfg Config
	if err := json.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if u := strings.TrimSpace(os.Getenv(EnvAPIURL)); u != "" {
		c.API.URL = u
	}
	switch os.Getenv(EnvTheme) {
	case ThemeDark, ThemeLight:
		c.Options.Theme = os.Getenv(EnvTheme)
	}
}

func loadDotEnv(dir string) error {
	if dir == "" {
		return nil
	}
	path := filepath.Join(dir, ".env")
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if fi.IsDir() {
		return nil
	}
	return godotenv.Load(path)
}

// ConfigPaths lists the config files that exist for workingDir, in order
// of increasing precedence.
func ConfigPaths(workingDir string) []string {
	var paths []string
	if HasGlobalConfig() {
		paths = append(paths, GlobalConfig())
	}
	return append(paths, lookupConfigs(workingDir)...)
}

func lookupConfigs(workingDir string) []string {
	if workingDir == "" {
		return nil
	}
	var found []string
	for _, name := range defaultContextPaths {
		path := filepath.Join(workingDir, name)
		if _, err := os.Stat(path); err == nil {
			found = append(found, path)
		}
	}
	return found
}

func loadFromPaths(paths []string) (*Config, error) {
	var readers []io.Reader
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if len(bytes.TrimSpace(data)) == 0 {
			continue
		}
		if !json.Valid(data) {
			return nil, fmt.Errorf("invalid JSON in config file %s", path)
		}
		readers = append(readers, bytes.NewReader(data))
	}
	return loadFromReaders(readers)
}

func loadFromReaders(readers []io.Reader) (*Config, error) {
	if len(readers) == 0 {
		return &Config{}, nil
	}
	merged, err := jsons.Merge(readers)
	if err != nil {
		return nil, fmt.Errorf("failed to merge configuration readers: %w", err)
	}
	return LoadReader(bytes.NewReader(merged))
}

// SetConfigField writes a single dotted key (e.g. "options.theme") to the
// global config file, creating it when missing.
func SetConfigField(key string, value any) error {
	return setField(GlobalConfig(), key, value)
}

// GetConfigField reads a single dotted key from the global config file.
func GetConfigField(key string) (string, bool, error) {
	data, err := os.ReadFile(GlobalConfig())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read config file: %w", err)
	}
	res := gjson.GetBytes(data, key)
	return res.String(), res.Exists(), nil
}

func setField(path, key string, value any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		data = []byte("{}")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("{}")
	}
	newData, err := sjson.SetBytes(data, key, value)
	if err != nil {
		return fmt.Errorf("failed to set config field %s: %w", key, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, newData, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
