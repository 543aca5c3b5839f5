// =============================================================================
// mockserver_test.go - Mock cmus Control Socket for CLI Tests
// =============================================================================
//
// A minimal stand-in for a running cmus. It listens on a Unix socket,
// records every command line, and answers "status" with a fixed snapshot
// and every other command with the one-byte acknowledgment. A handler
// returning closeConn makes it hang up instead.
//
// =============================================================================

package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cmuskit/cmuskit/cmusprotocol"
)

type mockServer struct {
	listener   net.Listener
	socketPath string
	handler    func(cmd string) string

	mu          sync.Mutex
	connections []net.Conn
	received    []string

	wg sync.WaitGroup
}

// closeConn tells the mock server to hang up instead of replying.
const closeConn = "\x00close"

// startMockServer starts a mock server on a fresh socket under /tmp. It is
// stopped automatically when the test finishes. A nil handler means
// defaultMockHandler.
func startMockServer(t *testing.T, handler func(cmd string) string) *mockServer {
	t.Helper()

	// Unix socket paths are short; t.TempDir() can be too long.
	tmpDir, err := os.MkdirTemp("/tmp", "cmusctl-test-")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })
	socketPath := filepath.Join(tmpDir, cmusprotocol.SocketName)

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

func (ms *mockServer) stop() {
	ms.listener.Close()
	ms.mu.Lock()
	for _, conn := range ms.connections {
		conn.Close()
	}
	ms.connections = nil
	ms.mu.Unlock()
	ms.wg.Wait()
	os.Remove(ms.socketPath)
}

// defaultMockHandler answers status with mockStatusReply and everything
// else with an ack byte.
func defaultMockHandler(cmd string) string {
	if cmd == cmusprotocol.TokenStatus {
		return mockStatusReply
	}
	return "\n"
}

const mockStatusReply = "status playing\n" +
	"file /music/foo/bar.flac\n" +
	"duration 245\n" +
	"position 10\n" +
	"tag artist Foo\n" +
	"tag album Baz\n" +
	"tag title Bar\n" +
	"set vol_left 40\n" +
	"set vol_right 60\n" +
	"set shuffle true\n"
