package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/willibrandon/dbjump/internal/jumperr"
)

// Config represents the root configuration structure
type Config struct {
	Settings  Settings  `mapstructure:"settings" toml:"settings" json:"settings" yaml:"settings"`
	Databases []Profile `mapstructure:"database" toml:"database" json:"database" yaml:"database"`

	// path is the file the configuration was read from.
	path string
}

// Settings holds dbjump's own preferences.
type Settings struct {
	// Launch selects how the client tool is started: auto, exec or spawn.
	Launch string `mapstructure:"launch" toml:"launch" json:"launch" yaml:"launch"`
	// History records connections in history.db next to the config file.
	History  bool   `mapstructure:"history" toml:"history" json:"history" yaml:"history"`
	LogLevel string `mapstructure:"log_level" toml:"log_level" json:"log_level" yaml:"log_level"`
	// LogFile defaults to dbjump.log next to the config file.
	LogFile string `mapstructure:"log_file" toml:"log_file,omitempty" json:"log_file,omitempty" yaml:"log_file,omitempty"`
}

// Path returns the file this configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Dir returns the directory holding the configuration file.
func (c *Config) Dir() string {
	return filepath.Dir(c.path)
}

// FindByAlias returns the profile with the given alias.
func (c *Config) FindByAlias(alias string) (*Profile, error) {
	for i := range c.Databases {
		if c.Databases[i].Alias == alias {
			return &c.Databases[i], nil
		}
	}
	return nil, jumperr.AliasNotFound(alias)
}

// Aliases returns all aliases in declaration order.
func (c *Config) Aliases() []string {
	aliases := make([]string, 0, len(c.Databases))
	for _, db := range c.Databases {
		aliases = append(aliases, db.Alias)
	}
	return aliases
}

// Load reads and decodes the configuration file at path.
// The file is not validated; call Validate for that.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, jumperr.ConfigNotFound(fmt.Sprintf("%s. Run 'dbjump init' to create it.", path))
		}
		return nil, jumperr.IO(err)
	}

	v := viper.New()

	// Environment variable support
	v.SetEnvPrefix("DBJUMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	applyDefaults(v, filepath.Dir(path))

	v.SetConfigFile(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".yaml", ".yml", ".json":
		// viper infers the type from the extension
	default:
		v.SetConfigType("toml")
	}

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, jumperr.IO(err)
		}
		return nil, jumperr.ConfigParse(err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, jumperr.ConfigParse(err)
	}
	cfg.path = path

	if err := cfg.normalize(); err != nil {
		return nil, jumperr.ConfigParse(err)
	}

	return &cfg, nil
}

// normalize canonicalizes engine tags and rejects records the decoder accepted
// but that cannot describe a profile.
func (c *Config) normalize() error {
	for i := range c.Databases {
		db := &c.Databases[i]
		if db.Engine == "" {
			return fmt.Errorf("database[%d] %q: missing field `engine`", i, db.Alias)
		}
		engine, err := ParseEngine(string(db.Engine))
		if err != nil {
			return fmt.Errorf("database[%d] %q: %w", i, db.Alias, err)
		}
		db.Engine = engine
	}

	c.Settings.Launch = strings.ToLower(strings.TrimSpace(c.Settings.Launch))
	switch c.Settings.Launch {
	case "auto", "exec", "spawn":
	default:
		return fmt.Errorf("settings.launch must be one of: auto, exec, spawn, got %q", c.Settings.Launch)
	}

	c.Settings.LogLevel = strings.ToLower(strings.TrimSpace(c.Settings.LogLevel))
	switch c.Settings.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("settings.log_level must be one of: debug, info, warn, error, got %q", c.Settings.LogLevel)
	}

	c.Settings.LogFile = expandPath(c.Settings.LogFile)
	return nil
}

// applyDefaults sets default configuration values
func applyDefaults(v *viper.Viper, dir string) {
	v.SetDefault("settings.launch", "auto")
	v.SetDefault("settings.history", true)
	v.SetDefault("settings.log_level", "info")
	v.SetDefault("settings.log_file", filepath.Join(dir, logFileName))
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
