package render

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// Color formatters for status output
var (
	Success = color.New(color.FgGreen).SprintFunc()
	Warning = color.New(color.FgHiYellow).SprintFunc()
	Failure = color.New(color.FgHiRed).SprintFunc()
	Muted   = color.New(color.FgHiBlack).SprintFunc()
	Bold    = color.New(color.Bold).SprintFunc()
)

// FileSummary describes a file as "1.2 kB, modified 3 hours ago".
func FileSummary(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "unreadable"
	}
	return fmt.Sprintf("%s, modified %s", humanize.Bytes(uint64(info.Size())), humanize.Time(info.ModTime()))
}

// Ago formats t relative to now, e.g. "5 minutes ago".
func Ago(t time.Time) string {
	return humanize.Time(t)
}
