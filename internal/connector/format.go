package connector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/mitchellh/go-wordwrap"

	"github.com/willibrandon/dbjump/internal/config"
)

// previewWidth is where long option lists wrap in previews.
const previewWidth = 60

// String renders the command as a shell line with every secret masked.
func (c *Command) String() string {
	parts := make([]string, 0, len(c.Env)+1)
	for _, kv := range c.Env {
		parts = append(parts, envKey(kv)+"="+config.PasswordMask)
	}

	// Masked arguments carry a shell-safe token so quoting leaves the mask
	// itself alone.
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Name)
	for i, arg := range c.Args {
		if display, ok := c.masked[i]; ok {
			arg = display
		}
		argv = append(argv, arg)
	}
	line := strings.ReplaceAll(shellquote.Join(argv...), maskToken, config.PasswordMask)

	return strings.Join(append(parts, line), " ")
}

const maskToken = "DBJUMPMASKEDSECRET"

// formatPreview is shared by all connectors. tool is the binary the profile will run.
func formatPreview(p *config.Profile, tool string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s)\n", p.Alias, p.Engine.DisplayName())

	row := func(key, value string) {
		fmt.Fprintf(&b, "  %-10s %s\n", key+":", value)
	}

	if p.Host != nil {
		row("Host", *p.Host)
	}
	if p.Port != nil {
		row("Port", strconv.Itoa(*p.Port))
	}
	if p.User != nil {
		row("User", *p.User)
	}
	if p.Password != nil || p.PasswordCommand != nil || p.AskPassword {
		row("Password", config.PasswordMask)
	}
	if p.Database != nil {
		row("Database", *p.Database)
	}
	if len(p.Options) > 0 {
		wrapped := wordwrap.WrapString(strings.Join(p.Options, " "), previewWidth)
		row("Options", strings.ReplaceAll(wrapped, "\n", "\n"+strings.Repeat(" ", 13)))
	}
	row("Tool", tool)

	return strings.TrimRight(b.String(), "\n")
}

// previewTool is the binary shown in previews: the override or the default.
func previewTool(p *config.Profile, defaultTool string) string {
	if p.Tool != nil {
		return *p.Tool
	}
	return defaultTool
}
