package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/dbjump/internal/jumperr"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[[database]]
alias = "test-db"
engine = "clickhouse"
host = "localhost"
port = 9000
user = "default"
password = "secret"
database = "mydb"
options = ["--multiline"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Databases, 1)

	db := cfg.Databases[0]
	assert.Equal(t, "test-db", db.Alias)
	assert.Equal(t, EngineClickHouse, db.Engine)
	require.NotNil(t, db.Host)
	assert.Equal(t, "localhost", *db.Host)
	require.NotNil(t, db.Port)
	assert.Equal(t, 9000, *db.Port)
	require.NotNil(t, db.Password)
	assert.Equal(t, "secret", *db.Password)
	assert.Equal(t, []string{"--multiline"}, db.Options)
	assert.Equal(t, path, cfg.Path())
}

func TestLoad_Minimal(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[[database]]
alias = "minimal-db"
engine = "clickhouse"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Databases, 1)

	db := cfg.Databases[0]
	assert.Nil(t, db.Host)
	assert.Nil(t, db.Port)
	assert.Nil(t, db.User)
	assert.Nil(t, db.Password)
	assert.Nil(t, db.Database)
	assert.Empty(t, db.Options)
}

func TestLoad_SettingsDefaults(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[[database]]
alias = "a"
engine = "mysql"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Settings.Launch)
	assert.True(t, cfg.Settings.History)
	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "dbjump.log"), cfg.Settings.LogFile)
}

func TestLoad_SettingsEnvOverride(t *testing.T) {
	t.Setenv("DBJUMP_SETTINGS_LAUNCH", "spawn")
	t.Setenv("DBJUMP_SETTINGS_HISTORY", "false")

	path := writeConfig(t, "config.toml", `
[settings]
launch = "exec"

[[database]]
alias = "a"
engine = "mysql"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "spawn", cfg.Settings.Launch)
	assert.False(t, cfg.Settings.History)
}

func TestLoad_EngineAliases(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[[database]]
alias = "pg"
engine = "postgres"

[[database]]
alias = "maria"
engine = "MariaDB"

[[database]]
alias = "mongo"
engine = "mongo"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, EnginePostgreSQL, cfg.Databases[0].Engine)
	assert.Equal(t, EngineMySQL, cfg.Databases[1].Engine)
	assert.Equal(t, EngineMongoDB, cfg.Databases[2].Engine)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
database:
  - alias: yaml-db
    engine: postgresql
    port: 5433
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Databases, 1)
	assert.Equal(t, 5433, *cfg.Databases[0].Port)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		kind    jumperr.Kind
	}{
		{"unknown engine", "[[database]]\nalias = \"x\"\nengine = \"oracle\"\n", jumperr.KindConfigParse},
		{"missing engine", "[[database]]\nalias = \"x\"\n", jumperr.KindConfigParse},
		{"malformed toml", "[[database]\nalias = ", jumperr.KindConfigParse},
		{"bad launch setting", "[settings]\nlaunch = \"fork\"\n", jumperr.KindConfigParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "config.toml", tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Equal(t, tt.kind, jumperr.KindOf(err))
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, jumperr.ErrConfigNotFound))
	assert.Contains(t, err.Error(), "dbjump init")
}

func TestConfig_FindByAlias(t *testing.T) {
	cfg := &Config{Databases: []Profile{
		{Alias: "a", Engine: EngineMySQL},
		{Alias: "b", Engine: EnginePostgreSQL},
	}}

	db, err := cfg.FindByAlias("b")
	require.NoError(t, err)
	assert.Equal(t, EnginePostgreSQL, db.Engine)

	_, err = cfg.FindByAlias("c")
	assert.True(t, errors.Is(err, jumperr.ErrAliasNotFound))

	assert.Equal(t, []string{"a", "b"}, cfg.Aliases())
}

func TestProfile_FormatInfo(t *testing.T) {
	p := &Profile{
		Alias:    "prod",
		Engine:   EnginePostgreSQL,
		Host:     Str("db.example.com"),
		Port:     Int(5432),
		User:     Str("admin"),
		Password: Str("hunter2"),
		Options:  []string{"--no-psqlrc", "-q"},
	}

	hidden := p.FormatInfo(true)
	assert.Contains(t, hidden, "  Engine: PostgreSQL")
	assert.Contains(t, hidden, "  Password: ***")
	assert.NotContains(t, hidden, "hunter2")
	assert.Contains(t, hidden, "  Options: --no-psqlrc -q")
	assert.NotContains(t, hidden, "Database:")

	shown := p.FormatInfo(false)
	assert.Contains(t, shown, "  Password: hunter2")
}

func TestProfile_MaskedDoesNotAlias(t *testing.T) {
	p := &Profile{Alias: "a", Engine: EngineMySQL, Password: Str("secret"), Options: []string{"-v"}}
	m := p.Masked()

	assert.Equal(t, PasswordMask, *m.Password)
	assert.Equal(t, "secret", *p.Password)

	m.Options[0] = "changed"
	assert.Equal(t, "-v", p.Options[0])
}

func TestMarshal_HidesPasswords(t *testing.T) {
	cfg := &Config{
		Settings: Settings{Launch: "auto", History: true, LogLevel: "info"},
		Databases: []Profile{
			{Alias: "a", Engine: EngineClickHouse, Password: Str("topsecret"), Port: Int(9000)},
		},
	}

	out, err := Marshal(cfg, true)
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "[[database]]")
	assert.Contains(t, text, "***")
	assert.NotContains(t, text, "topsecret")
	assert.Equal(t, "topsecret", *cfg.Databases[0].Password)

	out, err = Marshal(cfg, false)
	require.NoError(t, err)
	assert.Contains(t, string(out), "topsecret")
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom.toml")
	path, err := ResolvePath("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.toml", path)

	path, err = ResolvePath("/flag.toml")
	require.NoError(t, err)
	assert.Equal(t, "/flag.toml", path)

	t.Setenv(EnvConfigPath, "")

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	path, err = ResolvePath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "dbjump", "config.toml"), path)
}

func TestInitFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dbjump")
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, InitFile(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# dbjump configuration file"))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		dirInfo, err := os.Stat(dir)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())
	}

	err = InitFile(path, false)
	require.Error(t, err)
	assert.Equal(t, jumperr.KindConfig, jumperr.KindOf(err))
	assert.Contains(t, err.Error(), "--force")

	require.NoError(t, os.WriteFile(path, []byte("changed"), 0o644))
	require.NoError(t, InitFile(path, true))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", string(data))

	// The template parses and contains no active profiles.
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Databases)
	require.NoError(t, Validate(cfg))
}
