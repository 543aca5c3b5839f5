package cmusprotocol

import (
	"strings"
)

// MaxLineLength is the longest command line the parser accepts.
const MaxLineLength = QueryBufferSize

// CommandParser parses protocol command text into Commands.
type CommandParser struct{}

// NewCommandParser creates a new command parser.
func NewCommandParser() *CommandParser {
	return &CommandParser{}
}

// Parse parses a command line into a Command. Lines that do not match a
// known command are returned as CmdRaw so they can still be passed through.
func (p *CommandParser) Parse(line string) (Command, error) {
	commandLine := strings.TrimSpace(line)
	if commandLine == "" {
		return Command{}, newCommandError(line, "empty command")
	}
	if len(commandLine) > MaxLineLength {
		return Command{}, newCommandError(commandLine[:32]+"...", "line too long")
	}

	if strings.HasPrefix(commandLine, TokenAddQuiet+" ") {
		path := strings.TrimSpace(commandLine[len(TokenAddQuiet):])
		return NewAddQuietCommand(path), nil
	}
	if commandLine == TokenViewSorted {
		return NewViewSortedCommand(), nil
	}

	parts := strings.SplitN(commandLine, " ", 2)
	args := ""
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}

	switch parts[0] {
	case TokenPlay:
		return NewPlayCommand(), nil
	case TokenPause:
		return NewPauseCommand(), nil
	case TokenStop:
		return NewStopCommand(), nil
	case TokenNext:
		return NewNextCommand(), nil
	case TokenPrev:
		return NewPrevCommand(), nil
	case TokenStatus:
		return NewStatusCommand(), nil
	case TokenWinActivate:
		return NewWinActivateCommand(), nil
	case TokenSet:
		return p.parseSet(commandLine, args)
	case TokenToggle:
		if args == "" {
			return Command{}, newCommandError(commandLine, "toggle requires an option name")
		}
		return NewToggleCommand(args), nil
	default:
		return NewRawCommand(commandLine), nil
	}
}

func (p *CommandParser) parseSet(line, args string) (Command, error) {
	key, value, ok := strings.Cut(args, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return Command{}, newCommandError(line, "set requires key=value")
	}
	return NewSetCommand(key, strings.TrimSpace(value)), nil
}
