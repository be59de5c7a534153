package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths contains the standard per-user paths for vibe data.
type Paths struct {
	Data   string // ~/.local/share/vibe
	Config string // ~/.config/vibe
	Cache  string // ~/.cache/vibe
	State  string // ~/.local/state/vibe
}

// GetPaths returns the standard paths for vibe data.
func GetPaths() *Paths {
	return &Paths{
		Data:   filepath.Join(getEnvOrDefault("XDG_DATA_HOME", defaultDataHome()), "vibe"),
		Config: filepath.Join(getEnvOrDefault("XDG_CONFIG_HOME", defaultConfigHome()), "vibe"),
		Cache:  filepath.Join(getEnvOrDefault("XDG_CACHE_HOME", defaultCacheHome()), "vibe"),
		State:  filepath.Join(getEnvOrDefault("XDG_STATE_HOME", defaultStateHome()), "vibe"),
	}
}

// EnsurePaths creates all required directories.
func (p *Paths) EnsurePaths() error {
	for _, dir := range []string{p.Data, p.Config, p.Cache, p.State} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// FilePath returns the path to the config file.
func (p *Paths) FilePath() string {
	return filepath.Join(p.Config, "vibe.json")
}

// PhrasesPath returns the path to the optional user phrase pack.
func (p *Paths) PhrasesPath() string {
	return filepath.Join(p.Config, "phrases.yaml")
}

// StoragePath returns the path to the invocation history storage
// directory. History is state, not data; it can be deleted without
// losing anything the user made.
func (p *Paths) StoragePath() string {
	return filepath.Join(p.State, "storage")
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func defaultDataHome() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("APPDATA")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share")
}

func defaultConfigHome() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("APPDATA")
	}
	return filepath.Join(os.Getenv("HOME"), ".config")
}

func defaultCacheHome() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "cache")
	}
	return filepath.Join(os.Getenv("HOME"), ".cache")
}

func defaultStateHome() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("APPDATA")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "state")
}
