package jumperr

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"same kind", AliasNotFound("prod"), ErrAliasNotFound, true},
		{"different kind", AliasNotFound("prod"), ErrDuplicateAlias, false},
		{"wrapped", fmt.Errorf("connect: %w", ToolNotFound("psql")), ErrToolNotFound, true},
		{"exit code", Exited(3), ErrExecution, true},
		{"plain error", errors.New("boom"), ErrIO, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestError_Messages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ToolNotFound("mongosh"), "CLI tool 'mongosh' not found in PATH. Please install it first."},
		{DuplicateAlias("db1"), "Duplicate alias 'db1' found in configuration"},
		{InvalidPort(0), "Invalid port number: 0"},
		{Exited(2), "Failed to execute command: command exited with code 2"},
		{MissingField("host for alias '%s' cannot be empty", "x"), "Missing required field: host for alias 'x' cannot be empty"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("load: %w", IO(fs.ErrPermission))
	if got := KindOf(err); got != KindIO {
		t.Errorf("KindOf() = %v, want %v", got, KindIO)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("expected wrapped fs.ErrPermission to be reachable")
	}
	if got := KindOf(errors.New("other")); got != KindUnknown {
		t.Errorf("KindOf(plain) = %v, want unknown", got)
	}

	var e *Error
	if !errors.As(Exited(-1), &e) || e.Code != -1 {
		t.Errorf("expected exit code -1, got %+v", e)
	}
}
