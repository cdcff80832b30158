package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

var (
	buildOnce sync.Once
	binPath   string
	buildErr  error
	buildOut  []byte
)

// moduleRoot returns the repository root based on this file's location.
func moduleRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..")
}

// exeName adds the platform's executable suffix.
func exeName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

// dbjumpBinary builds cmd/dbjump once per test run.
func dbjumpBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "dbjump-it-")
		if err != nil {
			buildErr = err
			return
		}
		binPath = filepath.Join(dir, exeName("dbjump"))
		cmd := exec.Command("go", "build", "-o", binPath, "./cmd/dbjump")
		cmd.Dir = moduleRoot()
		buildOut, buildErr = cmd.CombinedOutput()
	})
	if buildErr != nil {
		t.Fatalf("Failed to build dbjump: %v\n%s", buildErr, buildOut)
	}
	return binPath
}

// writeConfig writes a private config file and returns its path.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

// buildFakeClient compiles testdata/fakeclient into dir under the given name.
func buildFakeClient(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, exeName(name))
	cmd := exec.Command("go", "build", "-o", path, "./tests/integration/testdata/fakeclient")
	cmd.Dir = moduleRoot()
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build fake client: %v\n%s", err, out)
	}
	return path
}

// envWithPath returns the current environment with dir prepended to PATH.
// PATH appears exactly once, whatever its case.
func envWithPath(dir string) []string {
	var env []string
	path := ""
	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		if strings.EqualFold(k, "PATH") {
			path = v
			continue
		}
		env = append(env, kv)
	}
	return append(env, "PATH="+dir+string(os.PathListSeparator)+path)
}

// writeScript creates an executable fake client in dir.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script clients require a unix shell")
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("Failed to write script: %v", err)
	}
	return path
}
