// =============================================================================
// main.go - cmusctl Entry Point
// =============================================================================
//
// cmusctl is a command-line client for a running cmus. It talks to the
// player over the control socket (status, transport, settings, queueing)
// and reads the player's on-disk track cache and library list directly.
//
// Usage:
//
//	cmusctl status                        Show what is playing
//	cmusctl pause                         Toggle pause
//	cmusctl play-file /music/a.flac       Queue a file and skip to it
//	cmusctl cache lookup /music/a.flac    Show cached tags for a file
//	cmusctl shell                         Interactive session
//	cmusctl --socket /tmp/cmus.sock next  Use a specific socket
//
// Configuration comes from flags, then CMUSCTL_* environment variables
// (optionally loaded from a .env file), then defaults under ~/.cmus.
//
// =============================================================================

// GO CONCEPT: Exit Codes and main()
// ---------------------------------
// main() cannot return a value. Calling os.Exit inside deeply nested code
// skips deferred functions, so the work happens in run(), which returns an
// exit code and lets every defer fire. main() only translates that code
// into a process exit. Tests call run() directly with their own writers.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Version Information
// =============================================================================

const (
	// version is the current cmusctl release.
	version = "0.3.0"

	// appName is the application name.
	appName = "cmusctl"
)

// fullTitle returns the application name with version.
func fullTitle() string {
	return fmt.Sprintf("%s v%s", appName, version)
}

// welcomeBanner returns the banner displayed when the shell starts.
func welcomeBanner() string {
	return fmt.Sprintf(`%s - cmus remote control

Type '.help' for available commands.
Type '.quit' to exit.
`, fullTitle())
}

// =============================================================================
// Errors
// =============================================================================

// errCommandFailed marks a control call that cmus did not acknowledge.
// It maps to exit status 1.
var errCommandFailed = errors.New("command failed")

// printError prints an error message to w.
func printError(w io.Writer, message string) {
	fmt.Fprintf(w, "Error: %s\n", message)
}

// =============================================================================
// Main
// =============================================================================

// run executes one cmusctl invocation and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := newApp(loadConfig(), stdout, stderr)
	defer a.close()

	root := newRootCommand(a)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		printError(stderr, err.Error())
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
