// =============================================================================
// daemon.go - Player Socket Discovery
// =============================================================================
//
// cmus creates its control socket at startup and removes it on exit, so
// the socket's presence is a cheap "is the player running" test. This file
// checks for it and can poll until it appears, which lets scripts start
// cmus in the background and then wait before sending commands.
//
// =============================================================================

package main

import (
	"fmt"
	"os"
	"time"
)

const (
	// defaultWaitTimeout is how long `cmusctl wait` polls by default.
	defaultWaitTimeout = 4 * time.Second

	// socketPollInterval is the delay between socket checks.
	socketPollInterval = 100 * time.Millisecond
)

// socketExists reports whether path exists and is a Unix socket.
func socketExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Type() == os.ModeSocket
}

// GO CONCEPT: Polling with a Deadline
// -----------------------------------
// time.Now().Add(d) gives an absolute deadline; looping while
// time.Now().Before(deadline) makes the total wait independent of how long
// each check takes. time.Sleep between checks keeps the loop from spinning.

// waitForSocket polls until a socket exists at path or timeout elapses.
func waitForSocket(path string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for {
		if socketExists(path) {
			return nil
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("timeout waiting for socket %s", path)
		}
		time.Sleep(socketPollInterval)
	}
}

// homeDir returns the user's home directory, or "" if unknown.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
