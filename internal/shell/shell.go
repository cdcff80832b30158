// Package shell generates init scripts that add a quick-connect function to
// interactive shells.
package shell

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

// DefaultCommand is the function name installed when --cmd is not given.
const DefaultCommand = "j"

var (
	commandNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)
	plainPathRegex   = regexp.MustCompile(`^[A-Za-z0-9_./-]+$`)
)

// Shells lists the supported shells.
func Shells() []string {
	return []string{"zsh", "bash", "fish"}
}

// Init returns the init script for shell defining a function named cmdName.
// bin is the dbjump executable the function calls.
func Init(shell, cmdName, bin string) (string, error) {
	if cmdName == "" {
		cmdName = DefaultCommand
	}
	if !commandNameRegex.MatchString(cmdName) {
		return "", fmt.Errorf("invalid command name %q: must start with a letter or underscore and contain only letters, numbers, underscores, or hyphens", cmdName)
	}
	if bin == "" {
		bin = "dbjump"
	}

	src, ok := scripts[strings.ToLower(shell)]
	if !ok {
		return "", fmt.Errorf("unsupported shell %q (expected one of: %s)", shell, strings.Join(Shells(), ", "))
	}

	tmpl, err := template.New(shell).Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse %s template: %w", shell, err)
	}

	var buf bytes.Buffer
	data := struct{ Cmd, Bin string }{Cmd: cmdName, Bin: quote(bin)}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", shell, err)
	}
	return buf.String(), nil
}

// quote single-quotes bin for POSIX shells and fish.
func quote(s string) string {
	if plainPathRegex.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

var scripts = map[string]string{
	"zsh":  zshInit,
	"bash": bashInit,
	"fish": fishInit,
}

const zshInit = `# dbjump shell integration for zsh
# Add to ~/.zshrc:  eval "$(dbjump shell-init zsh)"

{{.Cmd}}() {
  if [[ $# -eq 0 ]]; then
    command {{.Bin}} pick
  else
    command {{.Bin}} connect "$@"
  fi
}

_dbjump_{{.Cmd}}_complete() {
  local -a aliases
  aliases=(${(f)"$(command {{.Bin}} list 2>/dev/null)"})
  _describe 'database alias' aliases
}

if (( $+functions[compdef] )); then
  compdef _dbjump_{{.Cmd}}_complete {{.Cmd}}
fi
`

const bashInit = `# dbjump shell integration for bash
# Add to ~/.bashrc:  eval "$(dbjump shell-init bash)"

{{.Cmd}}() {
  if [ $# -eq 0 ]; then
    command {{.Bin}} pick
  else
    command {{.Bin}} connect "$@"
  fi
}

_dbjump_{{.Cmd}}_complete() {
  if [ "$COMP_CWORD" -eq 1 ]; then
    local IFS=$'\n'
    COMPREPLY=($(compgen -W "$(command {{.Bin}} list 2>/dev/null)" -- "${COMP_WORDS[1]}"))
  fi
}

complete -F _dbjump_{{.Cmd}}_complete {{.Cmd}}
`

const fishInit = `# dbjump shell integration for fish
# Add to ~/.config/fish/config.fish:  {{.Bin}} shell-init fish | source

function {{.Cmd}} --description 'Jump to a database'
    if test (count $argv) -eq 0
        command {{.Bin}} pick
    else
        command {{.Bin}} connect $argv
    end
end

complete -c {{.Cmd}} -f -n '__fish_is_first_arg' -a "(command {{.Bin}} list 2>/dev/null)"
`
