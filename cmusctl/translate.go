// =============================================================================
// translate.go - Shell Line Translation
// =============================================================================
//
// Turns a shell input line into either cmusctl arguments or a raw cmus
// protocol line. Lines are split shell-style so paths with spaces can be
// quoted:
//
//	play-file "/music/Some Artist/01 Intro.flac"
//
// A few shorthands expand before dispatch:
//
//	shuffle             toggle shuffle
//	repeat              toggle repeat
//	vol 50              vol 50%        (protocol)
//	add <path>          add -Q <path>  (protocol)
//
// =============================================================================

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cmuskit/cmuskit/cmusprotocol"
	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// shellAction is the result of translating a line: either args for the
// command tree or a protocol line to send.
type shellAction struct {
	args     []string
	protocol string
}

// toggleShorthands are option names that may be typed alone to toggle them.
var toggleShorthands = map[string]bool{
	"shuffle":        true,
	"repeat":         true,
	"repeat_current": true,
	"continue":       true,
	"follow":         true,
}

// isSubcommand returns a predicate matching the names and aliases of
// root's direct subcommands, plus "help".
func isSubcommand(root *cobra.Command) func(string) bool {
	names := map[string]bool{"help": true}
	for _, c := range root.Commands() {
		names[c.Name()] = true
		for _, alias := range c.Aliases {
			names[alias] = true
		}
	}
	return func(word string) bool { return names[word] }
}

// translateShellLine converts a trimmed, non-empty shell line. Only lines
// for the command tree are split into arguments; protocol lines keep their
// text as typed.
func translateShellLine(line string, known func(string) bool) (shellAction, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return shellAction{}, fmt.Errorf("empty command")
	}

	word := strings.ToLower(fields[0])
	rest := strings.TrimSpace(line[len(fields[0]):])

	switch {
	case word == "shell":
		return shellAction{}, fmt.Errorf("already in the shell")

	case toggleShorthands[word] && len(fields) == 1:
		return shellAction{args: []string{"toggle", word}}, nil

	case word == "vol" && len(fields) == 2:
		if _, err := strconv.Atoi(fields[1]); err == nil {
			return shellAction{protocol: "vol " + fields[1] + "%"}, nil
		}
		return shellAction{protocol: line}, nil

	case word == "add" && rest != "":
		return shellAction{protocol: cmusprotocol.TokenAddQuiet + " " + rest}, nil

	case word == "raw":
		if rest == "" {
			return shellAction{}, fmt.Errorf("raw requires a command")
		}
		return shellAction{protocol: rest}, nil

	case known(word):
		args, err := splitArgs(line)
		if err != nil {
			return shellAction{}, err
		}
		args[0] = word
		return shellAction{args: args}, nil

	default:
		return shellAction{protocol: line}, nil
	}
}

// splitArgs splits line into words with POSIX shell quoting: single
// quotes keep everything literally, and a backslash escapes the next
// character outside them. Unquoted shell operators (; & | < >) are
// rejected rather than silently ending the line. Environment variables
// and backticks are not expanded.
func splitArgs(line string) ([]string, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(line)
	if err != nil {
		return nil, errors.Wrapf(err, "split %q", line)
	}
	if parser.Position >= 0 {
		return nil, errors.Errorf("split %q: unquoted shell operator", line)
	}
	return args, nil
}
