package secret

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/willibrandon/dbjump/internal/config"
	"github.com/willibrandon/dbjump/internal/jumperr"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses unix shell commands")
	}
}

func TestResolve_LiteralPasswordUnchanged(t *testing.T) {
	p := &config.Profile{Alias: "a", Engine: config.EnginePostgreSQL, Password: config.Str("pw")}

	got, err := NewResolver().Resolve(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != p {
		t.Error("expected the same profile back")
	}
}

func TestResolve_PasswordCommand(t *testing.T) {
	skipOnWindows(t)

	p := &config.Profile{
		Alias:           "a",
		Engine:          config.EnginePostgreSQL,
		PasswordCommand: config.Str(`printf '  from command \n'`),
	}

	got, err := NewResolver().Resolve(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Password == nil || *got.Password != "from command" {
		t.Fatalf("unexpected password: %v", got.Password)
	}
	if got.PasswordCommand != nil {
		t.Error("expected password_command to be cleared on the copy")
	}
	if p.Password != nil {
		t.Error("original profile must not be modified")
	}
}

func TestResolve_PasswordCommandErrors(t *testing.T) {
	skipOnWindows(t)

	tests := []struct {
		name    string
		command string
		want    string
	}{
		{"empty output", "true", "empty password"},
		{"failure", "sh -c 'echo nope >&2; exit 1'", "nope"},
		{"timeout", "sleep 5", "timed out"},
		{"unbalanced quotes", "echo 'oops", "parse command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver()
			r.Timeout = 200 * time.Millisecond

			p := &config.Profile{Alias: "a", Engine: config.EngineMySQL, PasswordCommand: config.Str(tt.command)}
			_, err := r.Resolve(context.Background(), p)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, jumperr.ErrConfig) {
				t.Errorf("expected config error, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestResolve_Prompt(t *testing.T) {
	var asked string
	r := &Resolver{Prompt: func(prompt string) (string, error) {
		asked = prompt
		return "typed", nil
	}}

	p := &config.Profile{Alias: "prod", Engine: config.EngineMongoDB, AskPassword: true}
	got, err := r.Resolve(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got.Password != "typed" || got.AskPassword {
		t.Errorf("unexpected profile: %+v", got)
	}
	if asked != "Password for prod: " {
		t.Errorf("unexpected prompt %q", asked)
	}

	r.Prompt = func(string) (string, error) { return "", errors.New("no tty") }
	if _, err := r.Resolve(context.Background(), p); err == nil {
		t.Error("expected prompt failure to surface")
	}
}
