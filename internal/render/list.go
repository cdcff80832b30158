// Package render formats profiles and configuration for the terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/xlab/treeprint"
	"gopkg.in/yaml.v3"

	"github.com/willibrandon/dbjump/internal/config"
	"github.com/willibrandon/dbjump/internal/connector"
)

// Format is an output format for profile listings.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
	FormatTree  Format = "tree"
)

// Formats lists every supported listing format.
func Formats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML), string(FormatTable), string(FormatTree)}
}

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if strings.EqualFold(s, f) {
			return Format(f), nil
		}
	}
	return "", fmt.Errorf("invalid format %q (expected one of: %s)", s, strings.Join(Formats(), ", "))
}

// List writes profiles in the given format. Passwords are masked unless
// showPasswords is set. The text format prints bare aliases for scripts.
func List(w io.Writer, profiles []config.Profile, format Format, showPasswords bool) error {
	display := config.DisplayProfiles(profiles, !showPasswords)

	switch format {
	case FormatText:
		for _, p := range display {
			if _, err := fmt.Fprintln(w, p.Alias); err != nil {
				return err
			}
		}
		return nil

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(display)

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(display); err != nil {
			return err
		}
		return enc.Close()

	case FormatTable:
		_, err := fmt.Fprintln(w, Table(display))
		return err

	case FormatTree:
		_, err := fmt.Fprint(w, Tree(display))
		return err

	default:
		return fmt.Errorf("invalid format %q", format)
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Table renders profiles as a bordered table.
func Table(profiles []config.Profile) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ALIAS", "ENGINE", "HOST", "PORT", "USER", "DATABASE", "TOOL").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for i := range profiles {
		p := &profiles[i]
		port := ""
		if p.Port != nil {
			port = strconv.Itoa(*p.Port)
		}
		t.Row(p.Alias, string(p.Engine), deref(p.Host), port, deref(p.User), deref(p.Database), toolFor(p))
	}

	return t.String()
}

// Tree renders profiles grouped by engine.
func Tree(profiles []config.Profile) string {
	tree := treeprint.NewWithRoot("databases")

	for _, engine := range config.Engines() {
		var branch treeprint.Tree
		for i := range profiles {
			p := &profiles[i]
			if p.Engine != engine {
				continue
			}
			if branch == nil {
				branch = tree.AddBranch(engine.DisplayName())
			}
			branch.AddNode(fmt.Sprintf("%s  %s", p.Alias, Endpoint(p)))
		}
	}

	return tree.String()
}

// Endpoint summarizes where a profile points, e.g. "admin@db:5432/app".
func Endpoint(p *config.Profile) string {
	var b strings.Builder
	if p.User != nil {
		b.WriteString(*p.User)
		b.WriteByte('@')
	}
	if p.Host != nil {
		b.WriteString(*p.Host)
	} else {
		b.WriteString("(default host)")
	}
	if p.Port != nil {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(*p.Port))
	}
	if p.Database != nil {
		b.WriteByte('/')
		b.WriteString(*p.Database)
	}
	return b.String()
}

func toolFor(p *config.Profile) string {
	if p.Tool != nil {
		return *p.Tool
	}
	return connector.For(p.Engine).ToolName()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
