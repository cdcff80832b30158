// Package connector turns database profiles into client tool invocations.
package connector

import (
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/willibrandon/dbjump/internal/config"
	"github.com/willibrandon/dbjump/internal/jumperr"
)

// Connector builds the command line for one database engine.
type Connector interface {
	// BuildCommand resolves the client binary and builds its invocation.
	// It fails with a ToolNotFound error before constructing anything
	// if the binary is not on PATH.
	BuildCommand(p *config.Profile) (*Command, error)

	// ToolName is the executable the engine uses by default.
	ToolName() string

	// FormatPreview renders the profile for display. The password is always masked.
	FormatPreview(p *config.Profile) string
}

// Command is a fully formed client invocation.
type Command struct {
	// Path is the resolved executable.
	Path string
	// Name is argv[0].
	Name string
	// Args excludes argv[0].
	Args []string
	// Env holds KEY=value overrides applied on top of the inherited environment.
	Env []string

	// masked maps an index into Args to the form String shows instead.
	masked map[int]string
}

// Argv returns argv[0] followed by the arguments.
func (c *Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Name)
	return append(argv, c.Args...)
}

// WithArgs returns a copy of c with extra appended to its arguments.
func (c *Command) WithArgs(extra ...string) *Command {
	out := *c
	out.Args = append(append([]string(nil), c.Args...), extra...)
	out.Env = append([]string(nil), c.Env...)
	return &out
}

// Environ returns base with the command's overrides applied.
// Overridden keys are removed from base so each key appears once.
func (c *Command) Environ(base []string) []string {
	if len(c.Env) == 0 {
		return base
	}

	override := make(map[string]bool, len(c.Env))
	for _, kv := range c.Env {
		override[envKey(kv)] = true
	}

	env := make([]string, 0, len(base)+len(c.Env))
	for _, kv := range base {
		if !override[envKey(kv)] {
			env = append(env, kv)
		}
	}
	return append(env, c.Env...)
}

// LookupEnv returns the value of an override set on the command.
func (c *Command) LookupEnv(key string) (string, bool) {
	for _, kv := range c.Env {
		if k, v, ok := strings.Cut(kv, "="); ok && k == key {
			return v, true
		}
	}
	return "", false
}

func envKey(kv string) string {
	k, _, _ := strings.Cut(kv, "=")
	return k
}

// resolveTool picks the profile's tool override or the default and finds it on PATH.
func resolveTool(p *config.Profile, defaultTool string) (name, path string, err error) {
	name = defaultTool
	if p.Tool != nil {
		name = *p.Tool
	}

	path, err = exec.LookPath(name)
	if err != nil {
		return "", "", jumperr.ToolNotFound(name)
	}
	return name, path, nil
}

// toolBase returns the executable name without directory or extension.
func toolBase(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
