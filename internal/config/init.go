package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Init loads the configuration and makes sure the data directory exists.
func Init(workingDir, dataDir string, debug bool) (*Config, error) {
	cfg, err := Load(workingDir, dataDir, debug)
	if err != nil {
		return nil, err
	}
	if err := EnsureDataDir(cfg.Options.DataDirectory); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EnsureDataDir creates dir with private permissions and drops a
// .gitignore in it so a project-local data directory is never committed.
func EnsureDataDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %q %w", dir, err)
	}

	gitIgnorePath := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(gitIgnorePath); os.IsNotExist(err) {
		if err := os.WriteFile(gitIgnorePath, []byte("*\n"), 0o644); err != nil {
			return fmt.Errorf("failed to create .gitignore file: %q %w", gitIgnorePath, err)
		}
	}

	return nil
}

// HasGlobalConfig reports whether the user has a global config file.
func HasGlobalConfig() bool {
	_, err := os.Stat(GlobalConfig())
	return err == nil
}
