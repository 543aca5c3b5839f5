package cmusprotocol

import (
	"fmt"
)

// CommandType represents the type of protocol command.
type CommandType int

const (
	// Player control
	CmdPlay CommandType = iota
	CmdPause
	CmdStop
	CmdNext
	CmdPrev

	// Status query
	CmdStatus

	// Settings
	CmdSet
	CmdToggle

	// Queue and library browsing
	CmdAddQuiet
	CmdViewSorted
	CmdSearch
	CmdWinActivate

	// Passthrough
	CmdRaw
)

// Fixed command tokens.
const (
	TokenPlay        = "player-play"
	TokenPause       = "player-pause"
	TokenStop        = "player-stop"
	TokenNext        = "player-next"
	TokenPrev        = "player-prev"
	TokenStatus      = "status"
	TokenSet         = "set"
	TokenToggle      = "toggle"
	TokenAddQuiet    = "add -Q"
	TokenViewSorted  = "view sorted"
	TokenSearch      = "/"
	TokenWinActivate = "win-activate"
)

// Command represents a protocol command with its arguments.
// Use the constructor functions (NewPlayCommand, NewSetCommand, etc.)
// to create Command instances.
type Command struct {
	Type CommandType

	// Fields used by various commands (only relevant fields are populated)
	Key    string // For set, toggle
	Value  string // For set
	Path   string // For add -Q
	Artist string // For search
	Album  string // For search
	Title  string // For search
	Text   string // For raw
}

// NewPlayCommand creates a player-play command.
func NewPlayCommand() Command {
	return Command{Type: CmdPlay}
}

// NewPauseCommand creates a player-pause command.
func NewPauseCommand() Command {
	return Command{Type: CmdPause}
}

// NewStopCommand creates a player-stop command.
func NewStopCommand() Command {
	return Command{Type: CmdStop}
}

// NewNextCommand creates a player-next command.
func NewNextCommand() Command {
	return Command{Type: CmdNext}
}

// NewPrevCommand creates a player-prev command.
func NewPrevCommand() Command {
	return Command{Type: CmdPrev}
}

// NewStatusCommand creates a status query.
func NewStatusCommand() Command {
	return Command{Type: CmdStatus}
}

// NewSetCommand creates a command assigning value to the option key.
func NewSetCommand(key, value string) Command {
	return Command{Type: CmdSet, Key: key, Value: value}
}

// NewToggleCommand creates a command flipping the boolean option key.
func NewToggleCommand(key string) Command {
	return Command{Type: CmdToggle, Key: key}
}

// NewAddQuietCommand creates a command that enqueues path without
// reporting errors in the cmus UI.
func NewAddQuietCommand(path string) Command {
	return Command{Type: CmdAddQuiet, Path: path}
}

// NewViewSortedCommand creates a command switching to the sorted library view.
func NewViewSortedCommand() Command {
	return Command{Type: CmdViewSorted}
}

// NewSearchCommand creates a search for artist, album and title in the
// current view. The values are interpolated verbatim; characters that are
// meaningful to the cmus search syntax are not escaped.
func NewSearchCommand(artist, album, title string) Command {
	return Command{Type: CmdSearch, Artist: artist, Album: album, Title: title}
}

// NewWinActivateCommand creates a command activating the selected row.
func NewWinActivateCommand() Command {
	return Command{Type: CmdWinActivate}
}

// NewRawCommand creates a command that sends text unchanged.
func NewRawCommand(text string) Command {
	return Command{Type: CmdRaw, Text: text}
}

// Mode returns the reply mode for the command: ModeQuery for status,
// ModeAck for everything else.
func (c Command) Mode() Mode {
	if c.Type == CmdStatus {
		return ModeQuery
	}
	return ModeAck
}

// Format returns the command text without the line terminator.
func (c Command) Format() string {
	switch c.Type {
	case CmdPlay:
		return TokenPlay
	case CmdPause:
		return TokenPause
	case CmdStop:
		return TokenStop
	case CmdNext:
		return TokenNext
	case CmdPrev:
		return TokenPrev
	case CmdStatus:
		return TokenStatus
	case CmdSet:
		return fmt.Sprintf("%s %s=%s", TokenSet, c.Key, c.Value)
	case CmdToggle:
		return fmt.Sprintf("%s %s", TokenToggle, c.Key)
	case CmdAddQuiet:
		return fmt.Sprintf("%s %s", TokenAddQuiet, c.Path)
	case CmdViewSorted:
		return TokenViewSorted
	case CmdSearch:
		return fmt.Sprintf("%s%s %s %s", TokenSearch, c.Artist, c.Album, c.Title)
	case CmdWinActivate:
		return TokenWinActivate
	case CmdRaw:
		return c.Text
	default:
		return c.Text
	}
}
