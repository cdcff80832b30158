package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/willibrandon/dbjump/internal/jumperr"
)

const (
	// EnvConfigPath overrides the configuration file location.
	EnvConfigPath = "DBJUMP_CONFIG"

	defaultConfigName = "config.toml"
	configDirName     = "dbjump"
	logFileName       = "dbjump.log"
)

// DefaultLogFile is the log location for the config file at configPath.
func DefaultLogFile(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), logFileName)
}

// ResolvePath returns the configuration file location.
// Precedence: override (the --config flag), then DBJUMP_CONFIG, then
// ~/.config/dbjump/config.toml.
func ResolvePath(override string) (string, error) {
	if override != "" {
		return expandPath(override), nil
	}
	if path := os.Getenv(EnvConfigPath); path != "" {
		return expandPath(path), nil
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", jumperr.Config("Cannot determine home directory")
	}
	return filepath.Join(home, ".config", configDirName, defaultConfigName), nil
}

// EnsureDir creates the directory holding path with owner-only access.
// An existing directory is left untouched.
func EnsureDir(path string) (string, error) {
	if path == "" {
		return "", jumperr.Config("Invalid config path")
	}
	dir := filepath.Dir(path)

	if _, err := os.Stat(dir); err == nil {
		return dir, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", jumperr.IO(err)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", jumperr.IO(err)
	}
	// MkdirAll is subject to the umask.
	if err := os.Chmod(dir, 0o700); err != nil {
		return "", jumperr.IO(err)
	}
	return dir, nil
}

// InitFile writes the commented starter configuration to path.
// It refuses to replace an existing file unless force is set.
func InitFile(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return jumperr.Config("Configuration file already exists at %s. Use --force to overwrite.", path)
	}

	if _, err := EnsureDir(path); err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return jumperr.IO(err)
	}
	// WriteFile keeps the mode of a file it overwrites.
	if err := os.Chmod(path, 0o600); err != nil {
		return jumperr.IO(err)
	}
	return nil
}

const configTemplate = `# dbjump configuration file
# Add your database connections below
#
# Note: All connection parameters (host, port, user, password) are optional.
# If not specified, the database CLI tool will use its default values.

# [settings]
# launch = "auto"        # auto, exec or spawn
# history = true         # remember recently used aliases
# log_level = "info"     # debug, info, warn or error

# Example ClickHouse connection (with all parameters):
# [[database]]
# alias = "prod-clickhouse"
# engine = "clickhouse"
# host = "192.168.1.100"
# port = 9000
# user = "admin"
# password = "secret123"
# database = "default"  # optional
# options = ["--multiline"]  # optional

# Example ClickHouse connection (using defaults):
# [[database]]
# alias = "local-clickhouse"
# engine = "clickhouse"
# # Will use clickhouse defaults: localhost:9000, user=default

# Example PostgreSQL connection:
# [[database]]
# alias = "dev-postgres"
# engine = "postgresql"
# host = "localhost"
# port = 5432
# user = "postgres"
# password = "devpass"
# database = "myapp"  # optional
# options = []  # optional

# Example PostgreSQL connection with the password read from a command:
# [[database]]
# alias = "prod-postgres"
# engine = "postgresql"
# host = "db.internal"
# user = "readonly"
# password_command = "pass show db/prod"
# confirm = true  # show the connection and ask before connecting

# Example MySQL connection (database is passed as the last argument):
# [[database]]
# alias = "dev-mysql"
# engine = "mysql"
# host = "127.0.0.1"
# port = 3306
# user = "root"
# database = "app"
# tool = "mariadb"  # optional, use another client binary

# Example MongoDB connection:
# [[database]]
# alias = "dev-mongo"
# engine = "mongodb"
# host = "localhost"
# port = 27017
# user = "admin"
# ask_password = true  # prompt for the password
# database = "app"
`
