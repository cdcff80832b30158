package config

import (
	"github.com/pelletier/go-toml/v2"
)

// Marshal renders the configuration as TOML.
// With hidePasswords set every literal password is replaced by PasswordMask.
func Marshal(cfg *Config, hidePasswords bool) ([]byte, error) {
	out := Config{
		Settings:  cfg.Settings,
		Databases: DisplayProfiles(cfg.Databases, hidePasswords),
	}
	return toml.Marshal(out)
}

// DisplayProfiles returns copies of profiles suitable for printing.
func DisplayProfiles(profiles []Profile, hidePasswords bool) []Profile {
	out := make([]Profile, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		if hidePasswords {
			p = p.Masked()
		} else {
			p = p.Clone()
		}
		out = append(out, *p)
	}
	return out
}
