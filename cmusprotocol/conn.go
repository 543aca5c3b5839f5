package cmusprotocol

import (
	"io"
	"net"
	"time"

	"go.uber.org/zap"
)

// ConnState is the state of the control socket connection.
type ConnState int

const (
	// StateDisconnected means no transport handle is held.
	StateDisconnected ConnState = iota
	// StateConnected means a transport handle is open.
	StateConnected
)

// String returns the state name.
func (s ConnState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// DialFunc opens a transport to the socket at path.
type DialFunc func(path string) (net.Conn, error)

// Conn owns the connection to the cmus control socket.
//
// It connects lazily on the first Send. When a dial, write or read fails
// the connection drops to StateDisconnected, reconnects exactly once and
// retries the command. A second failure is reported through the reply
// value, never as a panic.
//
// Thread Safety:
// Conn carries no locking. A single Conn is meant to be shared by one
// StatusReader and one Controller driven from the same goroutine; callers
// that need concurrent access must serialize it themselves.
type Conn struct {
	path        string
	state       ConnState
	conn        net.Conn
	dial        DialFunc
	dialTimeout time.Duration
	lastErr     error
	log         *zap.Logger
}

// ConnOption configures a Conn.
type ConnOption func(*Conn)

// WithLogger sets the logger used for connection diagnostics.
func WithLogger(log *zap.Logger) ConnOption {
	return func(c *Conn) {
		if log != nil {
			c.log = log
		}
	}
}

// WithDialer replaces the function used to open the socket.
func WithDialer(dial DialFunc) ConnOption {
	return func(c *Conn) {
		if dial != nil {
			c.dial = dial
		}
	}
}

// WithDialTimeout bounds establishing the connection.
func WithDialTimeout(d time.Duration) ConnOption {
	return func(c *Conn) {
		c.dialTimeout = d
	}
}

// NewConn creates a connection to the socket at path. Nothing is dialed
// until the first Send.
func NewConn(path string, opts ...ConnOption) *Conn {
	c := &Conn{
		path:        path,
		state:       StateDisconnected,
		dialTimeout: ConnectionTimeout,
		log:         zap.NewNop(),
	}
	c.dial = c.dialUnix
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SocketPath returns the path this connection dials.
func (c *Conn) SocketPath() string {
	return c.path
}

// State returns the current connection state.
func (c *Conn) State() ConnState {
	return c.state
}

// LastError returns the transport error from the most recent failed
// attempt, or nil if the last Send succeeded.
func (c *Conn) LastError() error {
	return c.lastErr
}

// Send writes command followed by a newline and reads the reply in the
// given mode. On failure it returns Reply{} (OK false, empty Text).
func (c *Conn) Send(command string, mode Mode) Reply {
	line := command + Terminator

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		reply, err := c.exchange(line, mode)
		if err == nil {
			c.lastErr = nil
			return reply
		}

		c.drop(err)
		if attempt < maxAttempts {
			c.log.Debug("transport failure, reconnecting",
				zap.String("command", command),
				zap.Stringer("mode", mode),
				zap.Error(err))
			continue
		}
		c.log.Warn("command failed after reconnect",
			zap.String("command", command),
			zap.Stringer("mode", mode),
			zap.Error(err))
	}

	return failedReply()
}

// Ack sends command in ModeAck and reports whether the ack byte arrived.
func (c *Conn) Ack(command string) bool {
	return c.Send(command, ModeAck).OK
}

// Query sends command in ModeQuery and returns the raw reply text.
func (c *Conn) Query(command string) string {
	return c.Send(command, ModeQuery).Text
}

// Close releases the transport handle. It is safe to call more than once.
// A later Send dials again.
func (c *Conn) Close() error {
	if c.conn == nil {
		c.state = StateDisconnected
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.state = StateDisconnected
	return err
}

// exchange performs one attempt: connect if needed, write, read.
func (c *Conn) exchange(line string, mode Mode) (Reply, error) {
	if c.state == StateDisconnected {
		if err := c.connect(); err != nil {
			return Reply{}, err
		}
	}

	if _, err := io.WriteString(c.conn, line); err != nil {
		return Reply{}, newTransportError("write", c.path, err)
	}

	if mode == ModeQuery {
		buf := make([]byte, QueryBufferSize)
		n, err := c.conn.Read(buf)
		if n == 0 {
			if err == nil {
				err = ErrEmptyReply
			}
			return Reply{}, newTransportError("read", c.path, err)
		}
		return Reply{OK: true, Text: string(buf[:n])}, nil
	}

	var ack [AckSize]byte
	if _, err := io.ReadFull(c.conn, ack[:]); err != nil {
		return Reply{}, newTransportError("read", c.path, err)
	}
	return Reply{OK: true}, nil
}

func (c *Conn) connect() error {
	conn, err := c.dial(c.path)
	if err != nil {
		return newTransportError("dial", c.path, err)
	}
	c.conn = conn
	c.state = StateConnected
	c.log.Debug("connected", zap.String("socket", c.path))
	return nil
}

// drop records err and returns to StateDisconnected.
func (c *Conn) drop(err error) {
	c.lastErr = err
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.state = StateDisconnected
}

func (c *Conn) dialUnix(path string) (net.Conn, error) {
	d := net.Dialer{Timeout: c.dialTimeout}
	return d.Dial("unix", path)
}
