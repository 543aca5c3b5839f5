// Package cmusprotocol provides a Go client for the cmus remote control
// protocol, the text protocol cmus serves on its Unix domain socket.
//
// # Protocol Overview
//
// Requests are single lines terminated by a newline. The status command is
// answered with one read of up to 4096 bytes of line-oriented text; every
// other command is answered with a single acknowledgment byte.
//
//	player-play | player-pause | player-stop | player-next | player-prev
//	set <key>=<value>
//	toggle <key>
//	add -Q <path>
//	view sorted
//	/<artist> <album> <title>
//	win-activate
//	status
//
// # Basic Usage
//
// One Conn is shared by a StatusReader and a Controller:
//
//	conn := cmusprotocol.NewConn(cmusprotocol.DefaultSocketPath())
//	defer conn.Close()
//
//	status := cmusprotocol.NewStatusReader(conn)
//	control := cmusprotocol.NewController(conn)
//
//	st, warnings := status.Fetch()
//	if st.State == cmusprotocol.StatePlaying {
//	    control.Pause()
//	}
//	for _, w := range warnings {
//	    log.Println(w)
//	}
//
// # Failure Handling
//
// Transport failures are expected outcomes, not errors. A failed command
// reconnects once and retries; if that also fails the method returns false
// (or an empty status) and Conn.LastError reports why.
//
// # Thread Safety
//
// Conn, StatusReader and Controller are not safe for concurrent use.
// Route all calls for one Conn through a single goroutine.
package cmusprotocol
