package cmusprotocol

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// mockServer is a lightweight stand-in for the cmus control socket.
//
// It listens on a Unix domain socket and answers each received command
// line with whatever the handler returns. A handler returning closeConn
// makes the server drop the connection without replying.
type mockServer struct {
	listener   net.Listener
	socketPath string
	handler    func(cmd string) string

	mu          sync.Mutex
	connections []net.Conn
	received    []string
	accepted    int

	wg sync.WaitGroup
}

// closeConn tells the mock server to hang up instead of replying.
const closeConn = "\x00close"

// startMockServer creates and starts a mock server on a temporary Unix
// socket. It is stopped automatically when the test finishes.
//
// If handler is nil, defaultMockHandler is used.
func startMockServer(t *testing.T, handler func(cmd string) string) *mockServer {
	t.Helper()

	// Short path under /tmp: Unix socket paths are limited to ~104 bytes
	// on some platforms and t.TempDir() can exceed that.
	tmpDir, err := os.MkdirTemp("/tmp", "cmus-test-")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })
	socketPath := filepath.Join(tmpDir, SocketName)

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		t.Fatalf("failed to create mock server socket: %v", err)
	}

	if handler == nil {
		handler = defaultMockHandler
	}

	ms := &mockServer{
		listener:   listener,
		socketPath: socketPath,
		handler:    handler,
	}

	ms.wg.Add(1)
	go ms.acceptLoop()

	t.Cleanup(ms.stop)

	return ms
}

func (ms *mockServer) acceptLoop() {
	defer ms.wg.Done()

	for {
		conn, err := ms.listener.Accept()
		if err != nil {
			return
		}

		ms.mu.Lock()
		ms.connections = append(ms.connections, conn)
		ms.accepted++
		ms.mu.Unlock()

		ms.wg.Add(1)
		go ms.handleConnection(conn)
	}
}

func (ms *mockServer) handleConnection(conn net.Conn) {
	defer ms.wg.Done()
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		cmd := scanner.Text()

		ms.mu.Lock()
		ms.received = append(ms.received, cmd)
		ms.mu.Unlock()

		response := ms.handler(cmd)
		if response == closeConn {
			return
		}
		fmt.Fprint(conn, response)
	}
}

// commands returns a copy of every command line received so far.
func (ms *mockServer) commands() []string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	out := make([]string, len(ms.received))
	copy(out, ms.received)
	return out
}

// acceptCount returns how many connections the server has accepted.
func (ms *mockServer) acceptCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.accepted
}

// dropConnections closes every open client connection without stopping
// the listener, simulating a daemon restart.
func (ms *mockServer) dropConnections() {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for _, conn := range ms.connections {
		conn.Close()
	}
	ms.connections = nil
}

func (ms *mockServer) stop() {
	ms.listener.Close()
	ms.dropConnections()
	ms.wg.Wait()
	os.Remove(ms.socketPath)
}

// defaultMockHandler answers status with a fixed snapshot and everything
// else with an ack byte.
func defaultMockHandler(cmd string) string {
	if cmd == TokenStatus {
		return mockStatusReply
	}
	return "\n"
}

const mockStatusReply = "status playing\n" +
	"file /music/foo/bar.flac\n" +
	"duration 245\n" +
	"position 10\n" +
	"tag artist Foo\n" +
	"tag title Bar\n" +
	"set vol_left 40\n" +
	"set vol_right 60\n"
