//go:build !windows

package ptytest

import (
	"errors"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// unixPTY wraps creack/pty for Unix systems.
type unixPTY struct {
	ptmx *os.File
}

func startPTY(cmd *exec.Cmd) (PTY, error) {
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: DefaultSize.Rows, Cols: DefaultSize.Cols})
	if err != nil {
		return nil, err
	}
	return &unixPTY{ptmx: ptmx}, nil
}

func waitPTY(cmd *exec.Cmd, _ PTY) (int, error) {
	err := cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}

func (p *unixPTY) Read(b []byte) (int, error) {
	return p.ptmx.Read(b)
}

func (p *unixPTY) Write(b []byte) (int, error) {
	return p.ptmx.Write(b)
}

func (p *unixPTY) Close() error {
	return p.ptmx.Close()
}

func (p *unixPTY) Setsize(size *Winsize) error {
	return pty.Setsize(p.ptmx, &pty.Winsize{
		Rows: size.Rows,
		Cols: size.Cols,
	})
}
