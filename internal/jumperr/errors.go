// Package jumperr defines the closed set of errors dbjump reports to the user.
package jumperr

import (
	"errors"
	"fmt"
)

// Kind identifies one class of failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfigNotFound
	KindConfigParse
	KindAliasNotFound
	KindDuplicateAlias
	KindInvalidAlias
	KindInvalidPort
	KindMissingField
	KindToolNotFound
	KindExecution
	KindIO
	KindConfig
)

// String returns a short machine-friendly name for the kind.
func (k Kind) String() string {
	switch k {
	case KindConfigNotFound:
		return "config_not_found"
	case KindConfigParse:
		return "config_parse"
	case KindAliasNotFound:
		return "alias_not_found"
	case KindDuplicateAlias:
		return "duplicate_alias"
	case KindInvalidAlias:
		return "invalid_alias"
	case KindInvalidPort:
		return "invalid_port"
	case KindMissingField:
		return "missing_field"
	case KindToolNotFound:
		return "tool_not_found"
	case KindExecution:
		return "execution"
	case KindIO:
		return "io"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Error is a dbjump error of a known kind.
type Error struct {
	Kind   Kind
	Detail string
	// Code is the exit code of a spawned tool, or -1 when it was killed by a signal.
	// Only meaningful for KindExecution errors created by Exited.
	Code int
	Err  error
}

// Sentinels for errors.Is comparisons.
var (
	ErrConfigNotFound = &Error{Kind: KindConfigNotFound}
	ErrConfigParse    = &Error{Kind: KindConfigParse}
	ErrAliasNotFound  = &Error{Kind: KindAliasNotFound}
	ErrDuplicateAlias = &Error{Kind: KindDuplicateAlias}
	ErrInvalidAlias   = &Error{Kind: KindInvalidAlias}
	ErrInvalidPort    = &Error{Kind: KindInvalidPort}
	ErrMissingField   = &Error{Kind: KindMissingField}
	ErrToolNotFound   = &Error{Kind: KindToolNotFound}
	ErrExecution      = &Error{Kind: KindExecution}
	ErrIO             = &Error{Kind: KindIO}
	ErrConfig         = &Error{Kind: KindConfig}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindConfigNotFound:
		return fmt.Sprintf("Configuration file not found at %s", e.Detail)
	case KindConfigParse:
		return fmt.Sprintf("Failed to parse configuration: %s", e.Detail)
	case KindAliasNotFound:
		return fmt.Sprintf("Database alias '%s' not found", e.Detail)
	case KindDuplicateAlias:
		return fmt.Sprintf("Duplicate alias '%s' found in configuration", e.Detail)
	case KindInvalidAlias:
		return fmt.Sprintf("Invalid alias '%s': must contain only letters, numbers, hyphens, and underscores", e.Detail)
	case KindInvalidPort:
		return fmt.Sprintf("Invalid port number: %s", e.Detail)
	case KindMissingField:
		return fmt.Sprintf("Missing required field: %s", e.Detail)
	case KindToolNotFound:
		return fmt.Sprintf("CLI tool '%s' not found in PATH. Please install it first.", e.Detail)
	case KindExecution:
		return fmt.Sprintf("Failed to execute command: %s", e.Detail)
	case KindIO:
		return fmt.Sprintf("IO error: %s", e.Detail)
	case KindConfig:
		return fmt.Sprintf("Configuration error: %s", e.Detail)
	default:
		return e.Detail
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func ConfigNotFound(path string) error { return newf(KindConfigNotFound, "%s", path) }

func ConfigParse(err error) error {
	return &Error{Kind: KindConfigParse, Detail: err.Error(), Err: err}
}

func AliasNotFound(alias string) error  { return newf(KindAliasNotFound, "%s", alias) }
func DuplicateAlias(alias string) error { return newf(KindDuplicateAlias, "%s", alias) }
func InvalidAlias(alias string) error   { return newf(KindInvalidAlias, "%s", alias) }
func InvalidPort(port int) error        { return newf(KindInvalidPort, "%d", port) }

func MissingField(format string, args ...any) error {
	return newf(KindMissingField, format, args...)
}

func ToolNotFound(tool string) error { return newf(KindToolNotFound, "%s", tool) }

// Execution wraps an OS-level failure to start the tool.
func Execution(err error) error {
	return &Error{Kind: KindExecution, Detail: err.Error(), Err: err}
}

// Exited reports a spawned tool that finished unsuccessfully.
func Exited(code int) error {
	return &Error{Kind: KindExecution, Detail: fmt.Sprintf("command exited with code %d", code), Code: code}
}

func IO(err error) error {
	return &Error{Kind: KindIO, Detail: err.Error(), Err: err}
}

func Config(format string, args ...any) error {
	return newf(KindConfig, format, args...)
}
