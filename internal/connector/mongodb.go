package connector

import (
	"strconv"
	"strings"

	"github.com/willibrandon/dbjump/internal/config"
)

// MongoDB connects with mongosh, passing everything in a connection URI.
type MongoDB struct{}

func (MongoDB) ToolName() string { return "mongosh" }

func (c MongoDB) BuildCommand(p *config.Profile) (*Command, error) {
	name, path, err := resolveTool(p, c.ToolName())
	if err != nil {
		return nil, err
	}

	cmd := &Command{Path: path, Name: name}

	if uri, ok := ConnectionURI(p); ok {
		if p.Password != nil && p.User != nil {
			hidden := p.Clone()
			hidden.Password = config.Str(maskToken)
			display, _ := ConnectionURI(hidden)
			cmd.masked = map[int]string{len(cmd.Args): display}
		}
		cmd.Args = append(cmd.Args, uri)
	}

	cmd.Args = append(cmd.Args, p.Options...)
	return cmd, nil
}

func (c MongoDB) FormatPreview(p *config.Profile) string {
	return formatPreview(p, previewTool(p, c.ToolName()))
}

// ConnectionURI builds mongodb://[user[:password]@]host[:port][/database].
// It returns false when the profile sets no connection parameters, in which
// case mongosh should run with its compiled-in defaults.
func ConnectionURI(p *config.Profile) (string, bool) {
	if !p.HasConnectionParams() {
		return "", false
	}

	var b strings.Builder
	b.WriteString("mongodb://")

	if p.User != nil {
		b.WriteString(uriEncode(*p.User))
		if p.Password != nil {
			b.WriteByte(':')
			b.WriteString(uriEncode(*p.Password))
		}
		b.WriteByte('@')
	}

	host := "localhost"
	if p.Host != nil {
		host = *p.Host
	}
	b.WriteString(host)

	if p.Port != nil {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(*p.Port))
	}

	if p.Database != nil {
		b.WriteByte('/')
		b.WriteString(*p.Database)
	}

	return b.String(), true
}

// uriEncode percent-encodes the URI delimiters : / ? # [ ] @ and the percent sign.
func uriEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case ':', '/', '?', '#', '[', ']', '@', '%':
			b.WriteByte('%')
			b.WriteByte("0123456789ABCDEF"[c>>4])
			b.WriteByte("0123456789ABCDEF"[c&0x0F])
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
