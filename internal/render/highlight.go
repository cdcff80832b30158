package render

import (
	"bytes"

	"github.com/alecthomas/chroma/v2/quick"
)

// HighlightTOML applies syntax highlighting to TOML using Chroma.
// Returns original string if highlighting fails.
func HighlightTOML(src string) string {
	if src == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, src, "toml", "terminal256", "monokai"); err != nil {
		return src
	}

	return buf.String()
}
