package cmusprotocol

// Mode selects how the reply to a command is read.
type Mode int

const (
	// ModeAck reads exactly one acknowledgment byte.
	ModeAck Mode = iota
	// ModeQuery performs one read of up to QueryBufferSize bytes.
	ModeQuery
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeAck:
		return "ack"
	case ModeQuery:
		return "query"
	default:
		return "unknown"
	}
}

// Reply is the outcome of a Send.
type Reply struct {
	OK   bool
	Text string // Raw reply text for ModeQuery; empty for ModeAck
}

// failedReply is the mode-appropriate failure value: false for ModeAck
// and an empty string for ModeQuery.
func failedReply() Reply {
	return Reply{}
}

// Sender sends a command and returns its reply. *Conn implements it.
type Sender interface {
	Send(command string, mode Mode) Reply
}
