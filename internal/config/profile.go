package config

import (
	"fmt"
	"strings"
)

// Engine identifies the database engine a profile connects to.
type Engine string

const (
	EngineClickHouse Engine = "clickhouse"
	EnginePostgreSQL Engine = "postgresql"
	EngineMySQL      Engine = "mysql"
	EngineMongoDB    Engine = "mongodb"
)

// engineAliases maps accepted spellings to canonical engine tags.
var engineAliases = map[string]Engine{
	"clickhouse": EngineClickHouse,
	"ch":         EngineClickHouse,
	"postgresql": EnginePostgreSQL,
	"postgres":   EnginePostgreSQL,
	"pg":         EnginePostgreSQL,
	"psql":       EnginePostgreSQL,
	"mysql":      EngineMySQL,
	"mariadb":    EngineMySQL,
	"mongodb":    EngineMongoDB,
	"mongo":      EngineMongoDB,
}

// Engines returns every supported engine in display order.
func Engines() []Engine {
	return []Engine{EngineClickHouse, EnginePostgreSQL, EngineMySQL, EngineMongoDB}
}

// ParseEngine resolves an engine tag or one of its aliases.
func ParseEngine(s string) (Engine, error) {
	if e, ok := engineAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return e, nil
	}
	return "", fmt.Errorf("unknown engine %q (expected one of: clickhouse, postgresql, mysql, mongodb)", s)
}

// DisplayName returns the engine's product name.
func (e Engine) DisplayName() string {
	switch e {
	case EngineClickHouse:
		return "ClickHouse"
	case EnginePostgreSQL:
		return "PostgreSQL"
	case EngineMySQL:
		return "MySQL"
	case EngineMongoDB:
		return "MongoDB"
	default:
		return string(e)
	}
}

// Profile is one named database connection.
// Pointer fields are optional: nil means "let the client tool use its default",
// while a set-but-empty value is a configuration error.
type Profile struct {
	Alias           string   `mapstructure:"alias" toml:"alias" json:"alias" yaml:"alias"`
	Engine          Engine   `mapstructure:"engine" toml:"engine" json:"engine" yaml:"engine"`
	Host            *string  `mapstructure:"host" toml:"host,omitempty" json:"host,omitempty" yaml:"host,omitempty"`
	Port            *int     `mapstructure:"port" toml:"port,omitempty" json:"port,omitempty" yaml:"port,omitempty"`
	User            *string  `mapstructure:"user" toml:"user,omitempty" json:"user,omitempty" yaml:"user,omitempty"`
	Password        *string  `mapstructure:"password" toml:"password,omitempty" json:"password,omitempty" yaml:"password,omitempty"`
	PasswordCommand *string  `mapstructure:"password_command" toml:"password_command,omitempty" json:"password_command,omitempty" yaml:"password_command,omitempty"`
	AskPassword     bool     `mapstructure:"ask_password" toml:"ask_password,omitempty" json:"ask_password,omitempty" yaml:"ask_password,omitempty"`
	Database        *string  `mapstructure:"database" toml:"database,omitempty" json:"database,omitempty" yaml:"database,omitempty"`
	Options         []string `mapstructure:"options" toml:"options,omitempty" json:"options" yaml:"options,omitempty"`
	Tool            *string  `mapstructure:"tool" toml:"tool,omitempty" json:"tool,omitempty" yaml:"tool,omitempty"`
	Confirm         bool     `mapstructure:"confirm" toml:"confirm,omitempty" json:"confirm,omitempty" yaml:"confirm,omitempty"`
}

// PasswordMask replaces secrets wherever a profile is displayed.
const PasswordMask = "***"

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	c := *p
	c.Host = cloneString(p.Host)
	c.User = cloneString(p.User)
	c.Password = cloneString(p.Password)
	c.PasswordCommand = cloneString(p.PasswordCommand)
	c.Database = cloneString(p.Database)
	c.Tool = cloneString(p.Tool)
	if p.Port != nil {
		port := *p.Port
		c.Port = &port
	}
	if p.Options != nil {
		c.Options = append([]string(nil), p.Options...)
	}
	return &c
}

// Masked returns a copy whose password, if present, is replaced by PasswordMask.
func (p *Profile) Masked() *Profile {
	c := p.Clone()
	if c.Password != nil {
		mask := PasswordMask
		c.Password = &mask
	}
	return c
}

// HasConnectionParams reports whether any of host, port, user, password or database is set.
func (p *Profile) HasConnectionParams() bool {
	return p.Host != nil || p.Port != nil || p.User != nil || p.Password != nil || p.Database != nil
}

// FormatInfo renders the profile as indented "Key: value" lines.
func (p *Profile) FormatInfo(hidePassword bool) string {
	lines := []string{
		fmt.Sprintf("  Alias: %s", p.Alias),
		fmt.Sprintf("  Engine: %s", p.Engine.DisplayName()),
	}

	if p.Host != nil {
		lines = append(lines, fmt.Sprintf("  Host: %s", *p.Host))
	}
	if p.Port != nil {
		lines = append(lines, fmt.Sprintf("  Port: %d", *p.Port))
	}
	if p.User != nil {
		lines = append(lines, fmt.Sprintf("  User: %s", *p.User))
	}
	if p.Password != nil {
		display := *p.Password
		if hidePassword {
			display = PasswordMask
		}
		lines = append(lines, fmt.Sprintf("  Password: %s", display))
	}
	if p.PasswordCommand != nil {
		lines = append(lines, fmt.Sprintf("  Password command: %s", *p.PasswordCommand))
	}
	if p.AskPassword {
		lines = append(lines, "  Password: (prompt)")
	}
	if p.Database != nil {
		lines = append(lines, fmt.Sprintf("  Database: %s", *p.Database))
	}
	if len(p.Options) > 0 {
		lines = append(lines, fmt.Sprintf("  Options: %s", strings.Join(p.Options, " ")))
	}
	if p.Tool != nil {
		lines = append(lines, fmt.Sprintf("  Tool: %s", *p.Tool))
	}

	return strings.Join(lines, "\n")
}

// Str returns a pointer to s. Handy for building profiles in code and tests.
func Str(s string) *string {
	return &s
}

// Int returns a pointer to n.
func Int(n int) *int {
	return &n
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
