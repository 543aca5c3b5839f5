// =============================================================================
// config.go - Environment and Defaults
// =============================================================================
//
// Settings are resolved in three layers, lowest priority first:
//
//	defaults         ~/.cmus (or $CMUS_HOME) for socket, cache and library
//	environment      CMUSCTL_* variables, optionally from a .env file
//	flags            --socket, --cache, --library, --log-level, --log-file
//
// loadConfig handles the first two. The flags are registered with the
// environment values as their defaults, so a flag that is not given keeps
// whatever the environment said.
//
// =============================================================================

package main

import (
	"os"

	"github.com/cmuskit/cmuskit/cmuscache"
	"github.com/cmuskit/cmuskit/cmusprotocol"
	"github.com/joho/godotenv"
)

// Environment variables read by loadConfig.
const (
	envSocket   = "CMUSCTL_SOCKET"
	envCache    = "CMUSCTL_CACHE"
	envLibrary  = "CMUSCTL_LIBRARY"
	envLogLevel = "CMUSCTL_LOG_LEVEL"
	envLogFile  = "CMUSCTL_LOG_FILE"

	defaultLogLevel = "warn"
)

// config holds the resolved settings for one invocation.
type config struct {
	configDir   string
	socketPath  string
	cachePath   string
	libraryPath string
	logLevel    string
	logFile     string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// loadConfig loads configuration from the environment (via an optional .env
// file in the working directory) and fills in defaults.
func loadConfig() *config {
	// godotenv.Load does not override variables that are already set, and a
	// missing .env is the normal case.
	_ = godotenv.Load()

	dir := cmusprotocol.ConfigDir()
	return &config{
		configDir:   dir,
		socketPath:  getEnv(envSocket, cmusprotocol.DefaultSocketPath()),
		cachePath:   getEnv(envCache, cmuscache.DefaultPath(dir)),
		libraryPath: getEnv(envLibrary, cmuscache.DefaultLibraryPath(dir)),
		logLevel:    getEnv(envLogLevel, defaultLogLevel),
		logFile:     os.Getenv(envLogFile),
	}
}
