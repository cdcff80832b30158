package connector

import (
	"strconv"

	"github.com/willibrandon/dbjump/internal/config"
)

// MySQL connects with the mysql client. The database name is positional.
type MySQL struct{}

func (MySQL) ToolName() string { return "mysql" }

func (c MySQL) BuildCommand(p *config.Profile) (*Command, error) {
	name, path, err := resolveTool(p, c.ToolName())
	if err != nil {
		return nil, err
	}

	cmd := &Command{Path: path, Name: name}

	// The password travels in MYSQL_PWD so it never appears in argv.
	if p.Password != nil {
		cmd.Env = append(cmd.Env, "MYSQL_PWD="+*p.Password)
	}
	if p.Host != nil {
		cmd.Args = append(cmd.Args, "-h", *p.Host)
	}
	if p.Port != nil {
		cmd.Args = append(cmd.Args, "-P", strconv.Itoa(*p.Port))
	}
	if p.User != nil {
		cmd.Args = append(cmd.Args, "-u", *p.User)
	}
	// Must stay the last argument before the options.
	if p.Database != nil {
		cmd.Args = append(cmd.Args, *p.Database)
	}

	cmd.Args = append(cmd.Args, p.Options...)
	return cmd, nil
}

func (c MySQL) FormatPreview(p *config.Profile) string {
	return formatPreview(p, previewTool(p, c.ToolName()))
}
