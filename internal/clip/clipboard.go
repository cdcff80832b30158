// Package clip copies text to the system clipboard.
package clip

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"golang.design/x/clipboard"
)

// Writer copies text to the clipboard with graceful degradation between the
// native clipboard and platform copy tools.
type Writer struct {
	tool      []string
	errMsg    string
	writeFunc func([]byte) error
}

var (
	nativeOnce sync.Once
	nativeErr  error
)

type backend int

const (
	backendNone backend = iota
	backendTool
	backendNative
)

// NewWriter picks a clipboard backend and returns a Writer.
func NewWriter() *Writer {
	w := &Writer{}
	w.tool, w.errMsg = findTool(exec.LookPath)

	initNative := func() error {
		nativeOnce.Do(func() { nativeErr = clipboard.Init() })
		return nativeErr
	}

	switch chooseBackend(runtime.GOOS, w.tool, initNative) {
	case backendTool:
		w.writeFunc = w.runTool
	case backendNative:
		w.writeFunc = func(b []byte) error {
			clipboard.Write(clipboard.FmtText, b)
			return nil
		}
	}
	return w
}

// chooseBackend picks how text reaches the clipboard. On X11 and Wayland the
// native selection only lives as long as this process, so copy tools go first
// there and native is the last resort.
func chooseBackend(goos string, tool []string, initNative func() error) backend {
	ownsSelection := goos != "darwin" && goos != "windows"
	if ownsSelection && tool != nil {
		return backendTool
	}
	if initNative() == nil {
		return backendNative
	}
	if tool != nil {
		return backendTool
	}
	return backendNone
}

// findTool picks the platform copy command. lookPath is injectable for tests.
func findTool(lookPath func(string) (string, error)) ([]string, string) {
	has := func(name string) bool {
		_, err := lookPath(name)
		return err == nil
	}

	switch runtime.GOOS {
	case "darwin":
		if has("pbcopy") {
			return []string{"pbcopy"}, ""
		}
		return nil, "pbcopy not found"

	case "linux", "freebsd", "openbsd", "netbsd":
		if has("wl-copy") {
			return []string{"wl-copy"}, ""
		}
		if has("xclip") {
			return []string{"xclip", "-selection", "clipboard"}, ""
		}
		if has("xsel") {
			return []string{"xsel", "--clipboard", "--input"}, ""
		}
		return nil, "clipboard tool not found (install xclip, xsel, or wl-copy)"

	case "windows":
		if has("clip") {
			return []string{"clip"}, ""
		}
		return nil, "clip.exe not found"

	default:
		return nil, fmt.Sprintf("unsupported platform: %s", runtime.GOOS)
	}
}

// IsAvailable returns whether clipboard operations are supported.
func (w *Writer) IsAvailable() bool {
	return w.writeFunc != nil
}

// Error returns the reason clipboard is unavailable.
func (w *Writer) Error() string {
	return w.errMsg
}

// Write copies text to the system clipboard.
func (w *Writer) Write(text string) error {
	if w.writeFunc == nil {
		return fmt.Errorf("clipboard unavailable: %s", w.errMsg)
	}
	return w.writeFunc([]byte(text))
}

func (w *Writer) runTool(b []byte) error {
	if len(w.tool) == 0 {
		return errors.New("no clipboard tool")
	}
	cmd := exec.Command(w.tool[0], w.tool[1:]...)
	cmd.Stdin = strings.NewReader(string(b))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", w.tool[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}
