package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

const (
	appName = "drive"

	// DefaultAPIURL is used when neither the config files nor the
	// environment name a backend.
	DefaultAPIURL = "http://localhost:5000/api"

	defaultTimeout = 60
	defaultRetries = 3

	ThemeDark  = "dark"
	ThemeLight = "light"

	LayoutGrid = "grid"
	LayoutList = "list"
)

// Project-local config files, in order of increasing precedence.
var defaultContextPaths = []string{
	".drive.json",
	"drive.json",
}

// Command names an action that can be rebound in the keymaps section.
type Command string

const (
	CommandQuit         Command = "quit"
	CommandHelp         Command = "help"
	CommandRefresh      Command = "refresh"
	CommandSearch       Command = "search"
	CommandNewFolder    Command = "new_folder"
	CommandUpload       Command = "upload"
	CommandSettings     Command = "settings"
	CommandToggleLayout Command = "toggle_layout"
	CommandLogout       Command = "logout"
)

// KeyMaps maps commands to key strings such as "ctrl+u".
type KeyMaps map[Command]string

type API struct {
	// URL is the API root, e.g. https://drive.example.com/api.
	URL string `json:"url,omitempty" jsonschema:"description=Base URL of the storage backend API,format=uri,default=http://localhost:5000/api"`
	// Timeout in seconds for a JSON request. Transfers only wait this long
	// for response headers.
	Timeout int `json:"timeout,omitempty" jsonschema:"description=Request timeout in seconds,default=60"`
	// Retries for idempotent requests.
	Retries *int `json:"retries,omitempty" jsonschema:"description=Retries for idempotent requests on gateway errors,default=3"`
}

// RequestTimeout returns the per request timeout.
func (a API) RequestTimeout() time.Duration {
	if a.Timeout <= 0 {
		return defaultTimeout * time.Second
	}
	return time.Duration(a.Timeout) * time.Second
}

// RetryCount returns how many times idempotent requests are retried.
func (a API) RetryCount() uint64 {
	if a.Retries == nil || *a.Retries < 0 {
		return defaultRetries
	}
	return uint64(*a.Retries)
}

type Options struct {
	DataDirectory string `json:"data_directory,omitempty" jsonschema:"description=Directory for logs and the saved session"`
	DownloadDir   string `json:"download_directory,omitempty" jsonschema:"description=Where downloads are written,default=."`
	Debug         bool   `json:"debug,omitempty" jsonschema:"description=Enable debug logging"`
	Theme         string `json:"theme,omitempty" jsonschema:"description=Color theme,enum=dark,enum=light,default=dark"`
	Layout        string `json:"layout,omitempty" jsonschema:"description=File listing layout,enum=grid,enum=list,default=grid"`
	FuzzySearch   bool   `json:"fuzzy_search,omitempty" jsonschema:"description=Rank search results fuzzily instead of substring matching"`
	// DisableSessionPersistence keeps the login in memory only.
	DisableSessionPersistence bool `json:"disable_session_persistence,omitempty" jsonschema:"description=Do not save the login token to the data directory"`
}

// Config holds the client configuration.
type Config struct {
	Schema  string   `json:"$schema,omitempty"`
	API     API      `json:"api,omitempty" jsonschema:"description=Backend connection settings"`
	Options *Options `json:"options,omitempty" jsonschema:"description=General options"`
	KeyMaps KeyMaps  `json:"keymaps,omitempty" jsonschema:"description=Custom key bindings"`

	workingDir string
}

// WorkingDir returns the directory the configuration was loaded for.
func (c *Config) WorkingDir() string {
	return c.workingDir
}

// SessionFile is where the login is persisted between runs.
func (c *Config) SessionFile() string {
	return filepath.Join(c.Options.DataDirectory, "session.json")
}

// LogFile is the rotating log written by the interactive UI.
func (c *Config) LogFile() string {
	return filepath.Join(c.Options.DataDirectory, "logs", appName+".log")
}

func (c *Config) setDefaults(workingDir, dataDir string) {
	c.workingDir = workingDir
	if c.Options == nil {
		c.Options = &Options{}
	}
	if dataDir != "" {
		c.Options.DataDirectory = dataDir
	}
	if c.Options.DataDirectory == "" {
		c.Options.DataDirectory = defaultDataDirectory()
	}
	if c.Options.DownloadDir == "" {
		c.Options.DownloadDir = "."
	}
	if c.Options.Theme != ThemeLight {
		c.Options.Theme = ThemeDark
	}
	if c.Options.Layout != LayoutList {
		c.Options.Layout = LayoutGrid
	}
	if c.API.URL == "" {
		c.API.URL = DefaultAPIURL
	}
	if c.KeyMaps == nil {
		c.KeyMaps = KeyMaps{}
	}
}

// GlobalConfig returns the path to the main config file for the user.
func GlobalConfig() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, appName, appName+".json")
	}
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
		return filepath.Join(localAppData, appName, appName+".json")
	}
	return filepath.Join(homeDir(), ".config", appName, appName+".json")
}

func defaultDataDirectory() string {
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, appName)
	}
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
		return filepath.Join(localAppData, appName, "data")
	}
	return filepath.Join(homeDir(), ".local", "share", appName)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return home
}
