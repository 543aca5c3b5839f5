package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := testEnv(t)
	t.Setenv(envLogLevel, "")

	cfg := loadConfig()

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"configDir", cfg.configDir, dir},
		{"socketPath", cfg.socketPath, filepath.Join(dir, "socket")},
		{"cachePath", cfg.cachePath, filepath.Join(dir, "cache")},
		{"libraryPath", cfg.libraryPath, filepath.Join(dir, "lib.pl")},
		{"logLevel", cfg.logLevel, defaultLogLevel},
		{"logFile", cfg.logFile, ""},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
}

func TestLoadConfigEnvironment(t *testing.T) {
	testEnv(t)
	t.Setenv(envSocket, "/run/cmus.sock")
	t.Setenv(envCache, "/var/cache/cmus")
	t.Setenv(envLibrary, "/srv/lib.pl")
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envLogFile, "/tmp/cmusctl.log")

	cfg := loadConfig()

	if cfg.socketPath != "/run/cmus.sock" {
		t.Errorf("socketPath = %q", cfg.socketPath)
	}
	if cfg.cachePath != "/var/cache/cmus" {
		t.Errorf("cachePath = %q", cfg.cachePath)
	}
	if cfg.libraryPath != "/srv/lib.pl" {
		t.Errorf("libraryPath = %q", cfg.libraryPath)
	}
	if cfg.logLevel != "debug" {
		t.Errorf("logLevel = %q", cfg.logLevel)
	}
	if cfg.logFile != "/tmp/cmusctl.log" {
		t.Errorf("logFile = %q", cfg.logFile)
	}
}

func TestFlagOverridesEnvironment(t *testing.T) {
	testEnv(t)
	ms := startMockServer(t, nil)
	t.Setenv(envSocket, "/nonexistent/socket")

	_, stderr, code := runCLI(t, "--socket", ms.socketPath, "next")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if got := ms.commands(); len(got) != 1 || got[0] != "player-next" {
		t.Errorf("server received %q", got)
	}
}

func TestEnvironmentSocketUsed(t *testing.T) {
	testEnv(t)
	ms := startMockServer(t, nil)
	t.Setenv(envSocket, ms.socketPath)

	_, stderr, code := runCLI(t, "stop")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if got := ms.commands(); len(got) != 1 || got[0] != "player-stop" {
		t.Errorf("server received %q", got)
	}
}

func TestLogFileWritten(t *testing.T) {
	dir := testEnv(t)
	logPath := filepath.Join(dir, "logs", "cmusctl.log")

	_, stderr, code := runCLI(t, "--log-level", "debug", "--log-file", logPath, "cache", "list")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	data := readFile(t, logPath)
	if !strings.Contains(data, `"msg":"configured"`) {
		t.Errorf("log file missing configured entry:\n%s", data)
	}
}
