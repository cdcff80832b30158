package connector

import (
	"strconv"

	"github.com/willibrandon/dbjump/internal/config"
)

// ClickHouse connects with "clickhouse client".
type ClickHouse struct{}

func (ClickHouse) ToolName() string { return "clickhouse" }

func (c ClickHouse) BuildCommand(p *config.Profile) (*Command, error) {
	name, path, err := resolveTool(p, c.ToolName())
	if err != nil {
		return nil, err
	}

	cmd := &Command{Path: path, Name: name}

	// The unified binary needs the client subcommand; clickhouse-client does not.
	if toolBase(name) == c.ToolName() {
		cmd.Args = append(cmd.Args, "client")
	}

	if p.Host != nil {
		cmd.Args = append(cmd.Args, "-h", *p.Host)
	}
	if p.Port != nil {
		cmd.Args = append(cmd.Args, "--port", strconv.Itoa(*p.Port))
	}
	if p.User != nil {
		cmd.Args = append(cmd.Args, "-u", *p.User)
	}
	// Passwords go through the environment so they never show up in ps.
	if p.Password != nil {
		cmd.Env = append(cmd.Env, "CLICKHOUSE_PASSWORD="+*p.Password)
	}
	if p.Database != nil {
		cmd.Args = append(cmd.Args, "--database", *p.Database)
	}

	cmd.Args = append(cmd.Args, p.Options...)
	return cmd, nil
}

func (c ClickHouse) FormatPreview(p *config.Profile) string {
	return formatPreview(p, previewTool(p, c.ToolName()))
}
