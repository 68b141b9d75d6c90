package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppName is used for the config directory and default file names.
const AppName = "wayfinder"

// Config is the user configuration, loaded once at startup.
type Config struct {
	// CommandAliases maps short command names to canonical ones, e.g. rm -> delete.
	CommandAliases map[string]string `yaml:"command_aliases"`
	// Hide lists name patterns left out of directory listings.
	Hide []string `yaml:"hide"`
	// LogFile receives diagnostic logs. Empty disables logging.
	LogFile string `yaml:"log_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		CommandAliases: map[string]string{
			"rm": "delete",
			"cp": "copy",
			"mv": "move",
		},
	}
}

// DefaultPath returns <user config dir>/wayfinder/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, "config.yaml"), nil
}

// LoadFile reads the configuration at path and merges it over the defaults.
// A missing file yields the defaults with no error. A file that cannot be
// read or parsed also yields the defaults, together with the error so the
// caller can report it; startup never has to abort.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var raw Config
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	for alias, command := range raw.CommandAliases {
		alias = strings.ToLower(strings.TrimSpace(alias))
		command = strings.ToLower(strings.TrimSpace(command))
		if alias == "" || command == "" {
			continue
		}
		cfg.CommandAliases[alias] = command
	}
	cfg.Hide = append(cfg.Hide, raw.Hide...)
	if raw.LogFile != "" {
		cfg.LogFile = expandHome(raw.LogFile)
	}
	return cfg, nil
}

// Aliases returns an immutable view of the alias table.
func (c *Config) Aliases() Aliases {
	return NewAliases(c.CommandAliases)
}

// Aliases is a read-only command alias table.
type Aliases struct {
	table map[string]string
}

// NewAliases copies table so later changes to it do not leak in.
func NewAliases(table map[string]string) Aliases {
	return Aliases{table: maps.Clone(table)}
}

// Resolve lowercases cmd and maps it through the table. Unknown names are
// returned lowercased.
func (a Aliases) Resolve(cmd string) string {
	key := strings.ToLower(cmd)
	if canonical, ok := a.table[key]; ok {
		return canonical
	}
	return key
}

// Len reports the number of aliases.
func (a Aliases) Len() int {
	return len(a.table)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
