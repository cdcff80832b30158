// Package secret fills in profile passwords that are not stored in the config file.
package secret

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"golang.org/x/term"

	"github.com/willibrandon/dbjump/internal/config"
	"github.com/willibrandon/dbjump/internal/jumperr"
	"github.com/willibrandon/dbjump/internal/logger"
)

// DefaultTimeout bounds how long a password_command may run.
const DefaultTimeout = 5 * time.Second

// Resolver obtains passwords from password_command or an interactive prompt.
type Resolver struct {
	Timeout time.Duration
	// Prompt reads a password without echo. Defaults to the controlling terminal.
	Prompt func(prompt string) (string, error)
}

// NewResolver returns a Resolver using the terminal for prompts.
func NewResolver() *Resolver {
	return &Resolver{
		Timeout: DefaultTimeout,
		Prompt:  promptForPassword,
	}
}

// Resolve returns p unchanged when it needs no secret lookup, otherwise a copy
// with Password set from password_command or the prompt.
func (r *Resolver) Resolve(ctx context.Context, p *config.Profile) (*config.Profile, error) {
	switch {
	case p.PasswordCommand != nil:
		password, err := r.executePasswordCommand(ctx, *p.PasswordCommand)
		if err != nil {
			return nil, jumperr.Config("password command for alias '%s' failed: %v", p.Alias, err)
		}
		logger.Debug("password resolved from command", "alias", p.Alias)
		return withPassword(p, password), nil

	case p.AskPassword:
		password, err := r.Prompt(fmt.Sprintf("Password for %s: ", p.Alias))
		if err != nil {
			return nil, jumperr.Config("interactive password prompt failed: %v", err)
		}
		return withPassword(p, password), nil

	default:
		return p, nil
	}
}

func withPassword(p *config.Profile, password string) *config.Profile {
	out := p.Clone()
	out.Password = &password
	out.PasswordCommand = nil
	out.AskPassword = false
	return out
}

// executePasswordCommand runs command with the resolver's timeout and returns its trimmed stdout.
func (r *Resolver) executePasswordCommand(ctx context.Context, command string) (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	parts, err := shellquote.Split(command)
	if err != nil {
		return "", fmt.Errorf("parse command: %w", err)
	}
	if len(parts) == 0 {
		return "", errors.New("empty password command")
	}

	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("command timed out after %v", timeout)
		}
		return "", fmt.Errorf("command failed: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}

	password := strings.TrimSpace(stdout.String())
	if password == "" {
		return "", errors.New("command returned empty password")
	}

	return password, nil
}

// promptForPassword prompts on stderr and reads from the terminal without echo.
func promptForPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	passwordBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	password := string(passwordBytes)
	if password == "" {
		return "", errors.New("empty password entered")
	}

	return password, nil
}
