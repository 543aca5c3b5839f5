package main

import (
	"fmt"
	"io"

	"github.com/cmuskit/cmuskit/cmuscache"
	"github.com/cmuskit/cmuskit/cmusprotocol"
	"go.uber.org/zap"
)

// app carries the state shared by every command of one invocation. In
// shell mode the same app serves every line, so the connection and logger
// are set up once.
type app struct {
	cfg    *config
	stdout io.Writer
	stderr io.Writer

	log    *zap.Logger
	conn   *cmusprotocol.Conn
	ctl    *cmusprotocol.Controller
	status *cmusprotocol.StatusReader

	// inShell is set while the interactive shell is running.
	inShell bool
}

func newApp(cfg *config, stdout, stderr io.Writer) *app {
	return &app{cfg: cfg, stdout: stdout, stderr: stderr}
}

// init builds the logger and the (lazily connecting) control client. It is
// a no-op once done.
func (a *app) init() error {
	if a.log != nil {
		return nil
	}

	log, err := newLogger(a.cfg.logLevel, a.cfg.logFile, a.stderr)
	if err != nil {
		return err
	}
	a.log = log

	a.conn = cmusprotocol.NewConn(a.cfg.socketPath, cmusprotocol.WithLogger(log.Named("conn")))
	a.ctl = cmusprotocol.NewController(a.conn, cmusprotocol.WithControllerLogger(log.Named("control")))
	a.status = cmusprotocol.NewStatusReader(a.conn, cmusprotocol.WithStatusLogger(log.Named("status")))

	log.Debug("configured",
		zap.String("socket", a.cfg.socketPath),
		zap.String("cache", a.cfg.cachePath),
		zap.String("library", a.cfg.libraryPath))
	return nil
}

// close releases the connection and flushes the logger.
func (a *app) close() {
	if a.conn != nil {
		a.conn.Close()
	}
	if a.log != nil {
		a.log.Sync()
	}
}

// check turns a control result into an error for the command runner. A
// failed call is explained with the transport error, or with a hint when
// cmus does not appear to be running.
func (a *app) check(name string, ok bool) error {
	if ok {
		return nil
	}
	if !socketExists(a.cfg.socketPath) {
		return fmt.Errorf("%s: %w: cmus is not running (no socket at %s)", name, errCommandFailed, a.cfg.socketPath)
	}
	if err := a.conn.LastError(); err != nil {
		return fmt.Errorf("%s: %w: %v", name, errCommandFailed, err)
	}
	return fmt.Errorf("%s: %w", name, errCommandFailed)
}

// cacheOptions returns the options for opening the cache with logging.
func (a *app) cacheOptions() []cmuscache.Option {
	return []cmuscache.Option{cmuscache.WithLogger(a.log.Named("cache"))}
}
