package launcher

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/dbjump/internal/connector"
	"github.com/willibrandon/dbjump/internal/jumperr"
)

const helperEnv = "DBJUMP_LAUNCHER_HELPER"

// TestMain lets the test binary act as a process that execs into a fake client.
func TestMain(m *testing.M) {
	if script := os.Getenv(helperEnv); script != "" {
		fmt.Fprintf(os.Stderr, "pid=%d\n", os.Getpid())
		cmd := &connector.Command{Path: script, Name: "fakedb", Args: []string{"-h", "db"}}
		err := Launch(cmd, []string{"--extra"}, WithStrategy(Replace))
		fmt.Fprintf(os.Stderr, "launch returned: %v\n", err)
		os.Exit(99)
	}
	os.Exit(m.Run())
}

// writeScript creates an executable shell script in a temp dir.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts require unix")
	}
	path := filepath.Join(t.TempDir(), "fakedb")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestLaunch_SpawnPassesArgsAndEnv(t *testing.T) {
	script := writeScript(t, `echo "argv0=$0"
for a in "$@"; do echo "arg=$a"; done
echo "pw=$PGPASSWORD"
echo "keep=$KEEP_ME"
`)

	cmd := &connector.Command{
		Path: script,
		Name: script,
		Args: []string{"-h", "localhost"},
		Env:  []string{"PGPASSWORD=secret"},
	}

	var stdout, stderr bytes.Buffer
	err := Launch(cmd, []string{"-c", "select 1"},
		WithStrategy(Spawn),
		WithStdio(strings.NewReader(""), &stdout, &stderr),
		WithEnviron([]string{"KEEP_ME=yes", "PGPASSWORD=old", "PATH=" + os.Getenv("PATH")}),
	)
	require.NoError(t, err, stderr.String())

	assert.Equal(t, strings.Join([]string{
		"argv0=" + script,
		"arg=-h",
		"arg=localhost",
		"arg=-c",
		"arg=select 1",
		"pw=secret",
		"keep=yes",
	}, "\n")+"\n", stdout.String())

	// Passthrough must not leak into the original command.
	assert.Equal(t, []string{"-h", "localhost"}, cmd.Args)
}

func TestLaunch_SpawnExitCode(t *testing.T) {
	script := writeScript(t, "exit 3\n")
	cmd := &connector.Command{Path: script, Name: "fakedb"}

	err := Launch(cmd, nil, WithStrategy(Spawn), WithStdio(nil, nil, nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, jumperr.ErrExecution))

	var e *jumperr.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, 3, e.Code)
	assert.Contains(t, err.Error(), "code 3")
}

func TestLaunch_SpawnSignal(t *testing.T) {
	script := writeScript(t, "kill -9 $$\n")
	cmd := &connector.Command{Path: script, Name: "fakedb"}

	err := Launch(cmd, nil, WithStrategy(Spawn), WithStdio(nil, nil, nil))
	var e *jumperr.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, jumperr.KindExecution, e.Kind)
	assert.Equal(t, -1, e.Code)
}

func TestLaunch_SpawnMissingBinary(t *testing.T) {
	cmd := &connector.Command{Path: filepath.Join(t.TempDir(), "gone"), Name: "gone"}

	err := Launch(cmd, nil, WithStrategy(Spawn), WithStdio(nil, nil, nil))
	require.Error(t, err)
	assert.Equal(t, jumperr.KindExecution, jumperr.KindOf(err))
}

func TestLaunch_BeforeHooksRun(t *testing.T) {
	script := writeScript(t, "exit 0\n")
	cmd := &connector.Command{Path: script, Name: "fakedb"}

	var calls []string
	err := Launch(cmd, nil,
		WithStrategy(Spawn),
		WithStdio(nil, nil, nil),
		BeforeLaunch(func() { calls = append(calls, "first") }),
		BeforeLaunch(func() { calls = append(calls, "second") }),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestLaunch_ReplaceKeepsPID(t *testing.T) {
	if !canReplace {
		t.Skip("process replacement not supported")
	}
	script := writeScript(t, `echo "pid=$$"
echo "argv0=$0 args=$*"
exit 7
`)

	helper := exec.Command(os.Args[0], "-test.run=^$")
	helper.Env = append(os.Environ(), helperEnv+"="+script)
	var stdout, stderr bytes.Buffer
	helper.Stdout = &stdout
	helper.Stderr = &stderr

	err := helper.Run()
	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "stderr: %s", stderr.String())

	// The exit status is the script's, not the helper's fallback of 99.
	assert.Equal(t, 7, exitErr.ExitCode(), "stderr: %s", stderr.String())
	assert.NotContains(t, stderr.String(), "launch returned")

	var helperPID, scriptPID int
	for _, line := range strings.Split(stderr.String(), "\n") {
		if v, ok := strings.CutPrefix(line, "pid="); ok {
			helperPID, _ = strconv.Atoi(v)
		}
	}
	for _, line := range strings.Split(stdout.String(), "\n") {
		if v, ok := strings.CutPrefix(line, "pid="); ok {
			scriptPID, _ = strconv.Atoi(v)
		}
	}
	require.NotZero(t, helperPID)
	assert.Equal(t, helperPID, scriptPID)
	assert.Contains(t, stdout.String(), "args=-h db --extra")
}

func TestLaunch_ReplaceFailure(t *testing.T) {
	if !canReplace {
		t.Skip("process replacement not supported")
	}
	cmd := &connector.Command{Path: filepath.Join(t.TempDir(), "removed"), Name: "removed"}

	err := Launch(cmd, nil, WithStrategy(Replace))
	require.Error(t, err)
	assert.Equal(t, jumperr.KindExecution, jumperr.KindOf(err))
	assert.Contains(t, err.Error(), "no such file")
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("spawn")
	require.NoError(t, err)
	assert.Equal(t, Spawn, s)

	s, err = ParseStrategy("auto")
	require.NoError(t, err)
	assert.Equal(t, DefaultStrategy(), s)

	_, err = ParseStrategy("fork")
	assert.Error(t, err)

	if canReplace {
		s, err = ParseStrategy("exec")
		require.NoError(t, err)
		assert.Equal(t, Replace, s)
	}
}
