package connector

import (
	"strconv"

	"github.com/willibrandon/dbjump/internal/config"
)

// PostgreSQL connects with psql.
type PostgreSQL struct{}

func (PostgreSQL) ToolName() string { return "psql" }

func (c PostgreSQL) BuildCommand(p *config.Profile) (*Command, error) {
	name, path, err := resolveTool(p, c.ToolName())
	if err != nil {
		return nil, err
	}

	cmd := &Command{Path: path, Name: name}

	if p.Password != nil {
		cmd.Env = append(cmd.Env, "PGPASSWORD="+*p.Password)
	}
	if p.Host != nil {
		cmd.Args = append(cmd.Args, "-h", *p.Host)
	}
	if p.Port != nil {
		cmd.Args = append(cmd.Args, "-p", strconv.Itoa(*p.Port))
	}
	if p.User != nil {
		cmd.Args = append(cmd.Args, "-U", *p.User)
	}
	if p.Database != nil {
		cmd.Args = append(cmd.Args, "-d", *p.Database)
	}

	cmd.Args = append(cmd.Args, p.Options...)
	return cmd, nil
}

func (c PostgreSQL) FormatPreview(p *config.Profile) string {
	return formatPreview(p, previewTool(p, c.ToolName()))
}
