// Package cmusprotocol implements the cmus remote control protocol for
// clients talking to a running cmus over its local Unix socket.
//
// Protocol Format:
//
//	Request (client -> cmus):  <command>\n
//	Acknowledgment:            one byte, read after every non-query command
//	Status reply:              one read of up to 4096 bytes of
//	                           line-oriented "key value" text
//
// Example Session:
//
//	CLI: player-pause
//	SRV: \n
//	CLI: status
//	SRV: status paused
//	     file /music/a.flac
//	     duration 245
//	     tag artist Foo
//	     set vol_left 40
package cmusprotocol

import (
	"os"
	"path/filepath"
	"time"
)

// Protocol constants.
const (
	// Terminator is appended to every command before it is written.
	Terminator = "\n"

	// QueryBufferSize is the size of the single read performed for a
	// status query. Replies larger than this are truncated.
	QueryBufferSize = 4096

	// AckSize is the number of bytes read back after a non-query command.
	AckSize = 1

	// SocketName is the file name of the control socket inside the
	// configuration directory.
	SocketName = "socket"

	// ConfigDirName is the per-user configuration directory under $HOME.
	ConfigDirName = ".cmus"

	// ConfigDirEnv overrides the configuration directory when set.
	ConfigDirEnv = "CMUS_HOME"

	// ConnectionTimeout bounds establishing the socket connection. Reads
	// and writes on an established connection have no deadline.
	ConnectionTimeout = 5 * time.Second

	// maxAttempts is the first try plus exactly one reconnect+retry.
	maxAttempts = 2
)

// ConfigDir returns the cmus configuration directory: $CMUS_HOME when set,
// otherwise ~/.cmus.
func ConfigDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ConfigDirName
	}
	return filepath.Join(home, ConfigDirName)
}

// DefaultSocketPath returns <config-dir>/socket.
func DefaultSocketPath() string {
	return filepath.Join(ConfigDir(), SocketName)
}
