package config

import (
	"regexp"

	"github.com/willibrandon/dbjump/internal/jumperr"
)

// aliasRegex validates aliases (ASCII letters, digits, hyphens, underscores).
var aliasRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// IsValidAlias reports whether alias may be used as a profile name.
func IsValidAlias(alias string) bool {
	return aliasRegex.MatchString(alias)
}

// Validate checks every profile and returns the first problem found.
// Uniqueness is checked across the whole batch.
func Validate(cfg *Config) error {
	aliases := make(map[string]bool, len(cfg.Databases))

	for i := range cfg.Databases {
		db := &cfg.Databases[i]

		if aliases[db.Alias] {
			return jumperr.DuplicateAlias(db.Alias)
		}
		aliases[db.Alias] = true

		if err := ValidateProfile(db); err != nil {
			return err
		}
	}

	return nil
}

// ValidateProfile checks a single profile in isolation.
func ValidateProfile(db *Profile) error {
	if !IsValidAlias(db.Alias) {
		return jumperr.InvalidAlias(db.Alias)
	}

	if _, err := ParseEngine(string(db.Engine)); err != nil {
		return jumperr.ConfigParse(err)
	}

	fields := []struct {
		name  string
		value *string
	}{
		{"host", db.Host},
		{"user", db.User},
		{"password", db.Password},
		{"password_command", db.PasswordCommand},
		{"database", db.Database},
		{"tool", db.Tool},
	}
	for _, f := range fields {
		if f.value != nil && *f.value == "" {
			return jumperr.MissingField("%s for alias '%s' cannot be empty", f.name, db.Alias)
		}
	}

	if db.Port != nil && (*db.Port < 1 || *db.Port > 65535) {
		return jumperr.InvalidPort(*db.Port)
	}

	sources := 0
	if db.Password != nil {
		sources++
	}
	if db.PasswordCommand != nil {
		sources++
	}
	if db.AskPassword {
		sources++
	}
	if sources > 1 {
		return jumperr.Config("alias '%s' sets more than one of password, password_command and ask_password", db.Alias)
	}

	return nil
}
