//go:build windows

package ptytest

import (
	"errors"
	"fmt"
	"os/exec"
	"syscall"

	"github.com/charmbracelet/x/conpty"
	"golang.org/x/sys/windows"
)

// windowsPTY implements PTY using Windows ConPTY via charmbracelet/x/conpty.
type windowsPTY struct {
	cpty   *conpty.ConPty
	handle uintptr
}

func startPTY(cmd *exec.Cmd) (PTY, error) {
	return startPTYWithSize(cmd, &DefaultSize)
}

func startPTYWithSize(cmd *exec.Cmd, size *Winsize) (PTY, error) {
	cpty, err := conpty.New(int(size.Cols), int(size.Rows), 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create ConPTY: %w", err)
	}

	args := cmd.Args
	if len(args) == 0 {
		args = []string{cmd.Path}
	}

	procAttr := &syscall.ProcAttr{
		Dir: cmd.Dir,
		Env: cmd.Env,
	}
	_, handle, err := cpty.Spawn(cmd.Path, args, procAttr)
	if err != nil {
		cpty.Close()
		return nil, fmt.Errorf("failed to spawn process: %w", err)
	}

	return &windowsPTY{cpty: cpty, handle: handle}, nil
}

// waitPTY waits on the process handle. The exec.Cmd was never started here,
// so cmd.Wait cannot be used.
func waitPTY(_ *exec.Cmd, p PTY) (int, error) {
	wp, ok := p.(*windowsPTY)
	if !ok {
		return -1, errors.New("not a ConPTY")
	}

	h := windows.Handle(wp.handle)
	defer windows.CloseHandle(h)

	if _, err := windows.WaitForSingleObject(h, windows.INFINITE); err != nil {
		return -1, fmt.Errorf("failed to wait for process: %w", err)
	}
	var code uint32
	if err := windows.GetExitCodeProcess(h, &code); err != nil {
		return -1, fmt.Errorf("failed to read exit code: %w", err)
	}
	return int(code), nil
}

func (p *windowsPTY) Read(b []byte) (int, error) {
	return p.cpty.Read(b)
}

func (p *windowsPTY) Write(b []byte) (int, error) {
	return p.cpty.Write(b)
}

func (p *windowsPTY) Close() error {
	return p.cpty.Close()
}

func (p *windowsPTY) Setsize(size *Winsize) error {
	return p.cpty.Resize(int(size.Cols), int(size.Rows))
}
