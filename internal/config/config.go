package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/jsonc"

	"github.com/vibe-cli/vibe/internal/logging"
)

// Config is the persisted state of the tool. It lives in a single JSON
// file under the user config directory and is rewritten wholesale on
// every mutation.
type Config struct {
	Version         string               `json:"version"`
	CreatedAt       string               `json:"created_at"`
	System          SystemInfo           `json:"system"`
	PackageManagers map[string]string    `json:"package_managers"`
	MCPServers      map[string]MCPServer `json:"mcpServers"`
	Telemetry       Telemetry            `json:"telemetry"`
}

// SystemInfo records the environment the config file was generated on.
type SystemInfo struct {
	OS    string `json:"os"`
	Arch  string `json:"arch"`
	Shell string `json:"shell"`
}

// MCPServer describes how to launch one MCP server process.
type MCPServer struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// Telemetry controls the opt-in usage reporting. Disabled unless the
// user turns it on.
type Telemetry struct {
	Enabled  bool   `json:"enabled"`
	Endpoint string `json:"endpoint,omitempty"`
}

// Defaults builds a fresh config for first use. version is the CLI
// version that created the file; sys and tools come from probing the
// environment and may be zero when probing is unavailable.
func Defaults(version string, sys SystemInfo, tools map[string]string) *Config {
	if tools == nil {
		tools = map[string]string{}
	}
	return &Config{
		Version:         version,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
		System:          sys,
		PackageManagers: tools,
		MCPServers:      map[string]MCPServer{},
		Telemetry:       Telemetry{Enabled: false},
	}
}

// Store reads and writes the config file. Defaults supplies the config
// to materialize when the file is missing or unreadable; a nil Defaults
// falls back to an empty config.
type Store struct {
	path     string
	defaults func() *Config
}

// NewStore returns a store bound to path. defaults may be nil.
func NewStore(path string, defaults func() *Config) *Store {
	return &Store{path: path, defaults: defaults}
}

// Path returns the file the store operates on.
func (s *Store) Path() string {
	return s.path
}

// Load reads the config file, tolerating comments and trailing commas.
// A missing or corrupt file is replaced with defaults and never
// surfaces as an error; only a failure to write the replacement does.
func (s *Store) Load() (*Config, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn().Err(err).Str("path", s.path).Msg("config unreadable, regenerating")
		}
		return s.regenerate()
	}

	cfg, err := decode(data)
	if err != nil {
		logging.Warn().Err(err).Str("path", s.path).Msg("config corrupt, regenerating")
		return s.regenerate()
	}
	normalize(cfg)
	return cfg, nil
}

func (s *Store) regenerate() (*Config, error) {
	cfg := s.newDefaults()
	if err := s.Save(cfg); err != nil {
		return nil, fmt.Errorf("regenerate config: %w", err)
	}
	return cfg, nil
}

func (s *Store) newDefaults() *Config {
	if s.defaults != nil {
		if cfg := s.defaults(); cfg != nil {
			normalize(cfg)
			return cfg
		}
	}
	cfg := &Config{}
	normalize(cfg)
	return cfg
}

// Save rewrites the whole file. The created_at stamp is refreshed on
// every write, matching the behavior users already rely on to see when
// the file last changed.
func (s *Store) Save(cfg *Config) error {
	normalize(cfg)
	cfg.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return s.writeRaw(data)
}

// Reset replaces the file with an empty object, discarding every
// stored value.
func (s *Store) Reset() error {
	return s.writeRaw([]byte("{}"))
}

func (s *Store) writeRaw(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// raw returns the current file contents as plain JSON, materializing
// defaults first when the file is missing or corrupt.
func (s *Store) raw() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err == nil {
		clean := jsonc.ToJSON(data)
		if json.Valid(clean) {
			return clean, nil
		}
	}
	if _, err := s.Load(); err != nil {
		return nil, err
	}
	data, err = os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return jsonc.ToJSON(data), nil
}

func decode(data []byte) (*Config, error) {
	clean := jsonc.ToJSON(data)
	if !json.Valid(clean) {
		return nil, errors.New("invalid JSON")
	}
	var cfg Config
	if err := json.Unmarshal(interpolate(clean), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalize(cfg *Config) {
	if cfg.PackageManagers == nil {
		cfg.PackageManagers = map[string]string{}
	}
	if cfg.MCPServers == nil {
		cfg.MCPServers = map[string]MCPServer{}
	}
}

var envInterpolation = regexp.MustCompile(`\{env:([^}]+)\}`)

// interpolate expands {env:VAR} placeholders so MCP server entries can
// reference secrets without storing them in the file. Expansion happens
// on load only; the file on disk keeps the placeholder.
func interpolate(data []byte) []byte {
	return envInterpolation.ReplaceAllFunc(data, func(match []byte) []byte {
		name := envInterpolation.FindSubmatch(match)[1]
		value := os.Getenv(string(name))
		escaped, err := json.Marshal(value)
		if err != nil {
			return match
		}
		// Marshal produces a quoted string; drop the quotes since the
		// placeholder sits inside an existing JSON string.
		return escaped[1 : len(escaped)-1]
	})
}

// SetMCPServer adds or replaces a named server entry.
func (s *Store) SetMCPServer(name string, server MCPServer) error {
	cfg, err := s.Load()
	if err != nil {
		return err
	}
	cfg.MCPServers[name] = server
	return s.Save(cfg)
}

// RemoveMCPServer deletes a named server entry. It reports whether the
// entry existed.
func (s *Store) RemoveMCPServer(name string) (bool, error) {
	cfg, err := s.Load()
	if err != nil {
		return false, err
	}
	if _, ok := cfg.MCPServers[name]; !ok {
		return false, nil
	}
	delete(cfg.MCPServers, name)
	return true, s.Save(cfg)
}

// ParseMCPArgs splits a command line into the command and its
// arguments for an MCP server entry.
func ParseMCPArgs(fields []string) (string, []string, error) {
	if len(fields) == 0 || strings.TrimSpace(fields[0]) == "" {
		return "", nil, errors.New("mcp server needs a command")
	}
	return fields[0], fields[1:], nil
}
