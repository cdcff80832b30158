// Package ptytest runs commands on a pseudo-terminal for integration tests.
package ptytest

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/hinshun/vt10x"
)

// Winsize describes the terminal size.
type Winsize struct {
	Rows uint16
	Cols uint16
}

// DefaultSize is the size new terminals start with.
var DefaultSize = Winsize{Rows: 24, Cols: 100}

// PTY represents a pseudo-terminal that can be used to run commands.
type PTY interface {
	io.ReadWriteCloser

	// Setsize sets the terminal size.
	Setsize(size *Winsize) error
}

// Start starts a command in a new PTY and returns the PTY.
// The caller is responsible for closing the PTY and waiting for the command.
func Start(cmd *exec.Cmd) (PTY, error) {
	return startPTY(cmd)
}

// Wait blocks until the command started on p exits and returns its exit code.
func Wait(cmd *exec.Cmd, p PTY) (int, error) {
	return waitPTY(cmd, p)
}

// Console collects everything written to a PTY so tests can wait for output.
// The stream is also fed to a terminal emulator for full-screen programs.
type Console struct {
	PTY

	mu   sync.Mutex
	buf  bytes.Buffer
	term vt10x.Terminal
	done chan struct{}
}

// Attach starts draining p in the background.
func Attach(p PTY) *Console {
	c := &Console{
		PTY:  p,
		term: vt10x.New(vt10x.WithSize(int(DefaultSize.Cols), int(DefaultSize.Rows))),
		done: make(chan struct{}),
	}
	go func() {
		defer close(c.done)
		chunk := make([]byte, 4096)
		for {
			n, err := p.Read(chunk)
			if n > 0 {
				c.mu.Lock()
				c.buf.Write(chunk[:n])
				_, _ = c.term.Write(chunk[:n])
				c.mu.Unlock()
			}
			if err != nil {
				return
			}
		}
	}()
	return c
}

// Output returns everything read so far.
func (c *Console) Output() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

// WaitFor blocks until the output contains want or timeout elapses.
func (c *Console) WaitFor(want string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(c.Output(), want) {
			return nil
		}
		select {
		case <-c.done:
			if strings.Contains(c.Output(), want) {
				return nil
			}
			return fmt.Errorf("terminal closed before %q appeared; output:\n%s", want, c.Output())
		case <-time.After(20 * time.Millisecond):
		}
	}
	return fmt.Errorf("timed out waiting for %q; output:\n%s", want, c.Output())
}

// Screen returns the emulated terminal's visible text.
func (c *Console) Screen() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.term.String()
}

// WaitForScreen blocks until the visible screen contains want.
func (c *Console) WaitForScreen(want string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(c.Screen(), want) {
			return nil
		}
		time.Sleep(20 * time.Millisecond)
	}
	return fmt.Errorf("timed out waiting for %q on screen:\n%s", want, c.Screen())
}

// Drained is closed once the terminal reaches EOF.
func (c *Console) Drained() <-chan struct{} {
	return c.done
}
