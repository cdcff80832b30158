// Package launcher hands the terminal over to a database client.
package launcher

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/willibrandon/dbjump/internal/connector"
	"github.com/willibrandon/dbjump/internal/jumperr"
	"github.com/willibrandon/dbjump/internal/logger"
)

// Strategy selects how the client process is started.
type Strategy int

const (
	// Replace swaps the current process image for the client (exec).
	// On success Launch never returns.
	Replace Strategy = iota
	// Spawn runs the client as a child and waits for it.
	Spawn
)

func (s Strategy) String() string {
	if s == Replace {
		return "exec"
	}
	return "spawn"
}

// DefaultStrategy is Replace where the platform supports it, Spawn elsewhere.
func DefaultStrategy() Strategy {
	if canReplace {
		return Replace
	}
	return Spawn
}

// ParseStrategy maps the settings.launch value to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "auto":
		return DefaultStrategy(), nil
	case "exec":
		if !canReplace {
			return Spawn, jumperr.Config("launch = \"exec\" is not supported on this platform")
		}
		return Replace, nil
	case "spawn":
		return Spawn, nil
	default:
		return Spawn, jumperr.Config("unknown launch strategy %q", s)
	}
}

type options struct {
	strategy Strategy
	before   []func()
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	environ  []string
}

// Option configures Launch.
type Option func(*options)

// WithStrategy overrides the platform default.
func WithStrategy(s Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// BeforeLaunch registers f to run right before the client starts,
// e.g. to flush logs that would otherwise be lost on exec.
func BeforeLaunch(f func()) Option {
	return func(o *options) { o.before = append(o.before, f) }
}

// WithStdio replaces the inherited stdio for spawned clients.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(o *options) {
		o.stdin, o.stdout, o.stderr = stdin, stdout, stderr
	}
}

// WithEnviron sets the base environment the command's overrides apply to.
func WithEnviron(env []string) Option {
	return func(o *options) { o.environ = env }
}

// Launch appends passthrough to cmd's arguments and starts the client.
// With Replace it only returns on failure. With Spawn it blocks until the
// client exits and reports a non-zero status as an execution error.
func Launch(cmd *connector.Command, passthrough []string, opts ...Option) error {
	o := &options{
		strategy: DefaultStrategy(),
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.environ == nil {
		o.environ = os.Environ()
	}

	full := cmd.WithArgs(passthrough...)
	env := full.Environ(o.environ)

	logger.Info("launching client",
		"tool", full.Name,
		"path", full.Path,
		"args", len(full.Args),
		"strategy", o.strategy.String(),
	)

	for _, f := range o.before {
		f()
	}

	if o.strategy == Replace {
		if err := replaceProcess(full.Path, full.Argv(), env); err != nil {
			return jumperr.Execution(err)
		}
		// replaceProcess only returns on error.
		return nil
	}

	return spawn(full, env, o)
}

func spawn(cmd *connector.Command, env []string, o *options) error {
	c := exec.Command(cmd.Path, cmd.Args...)
	c.Args[0] = cmd.Name
	c.Env = env
	c.Stdin = o.stdin
	c.Stdout = o.stdout
	c.Stderr = o.stderr

	err := c.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// ExitCode is -1 when the child was killed by a signal.
		return jumperr.Exited(exitErr.ExitCode())
	}
	return jumperr.Execution(fmt.Errorf("%s: %w", cmd.Name, err))
}
