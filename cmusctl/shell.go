// =============================================================================
// shell.go - Interactive Session
// =============================================================================
//
// The shell reads one line at a time and routes it three ways:
//
//	.quit .exit .help [topic]   handled by the shell itself
//	status, next, cache list    run through the cmusctl command tree
//	anything else               parsed as a cmus protocol command and sent
//
// One connection serves the whole session; it is opened on the first
// command that needs it and reopened transparently if cmus restarts.
//
// =============================================================================

package main

import (
	"fmt"
	"strings"

	"github.com/cmuskit/cmuskit/cmusprotocol"
)

// shellPrompt is printed before every input line.
const shellPrompt = "cmus> "

// lineReader supplies input lines to the shell. LineEditor implements it.
type lineReader interface {
	GetLine(prompt string) (string, error)
}

// GO CONCEPT: Small Interfaces
// ----------------------------
// runShell needs only GetLine, so it asks for an interface with just that
// method. The real LineEditor satisfies it implicitly (Go has no
// "implements" keyword), and tests pass a scripted fake instead of
// wiring up a terminal.

// runShell runs the read-dispatch loop until .quit or end of input.
// a must already be initialized.
func runShell(a *app, in lineReader) {
	a.inShell = true
	defer func() { a.inShell = false }()

	parser := cmusprotocol.NewCommandParser()

	for {
		line, err := in.GetLine(shellPrompt)
		if err != nil {
			// EOF (Ctrl-D) or interrupt
			fmt.Fprintln(a.stdout)
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := runDotCommand(a, line); quit {
				return
			}
			continue
		}

		if err := executeShellLine(a, parser, line); err != nil {
			printError(a.stderr, err.Error())
		}
	}
}

// runDotCommand handles a shell-only command and reports whether the
// shell should exit.
func runDotCommand(a *app, line string) bool {
	word, topic, _ := strings.Cut(line, " ")
	switch strings.ToLower(word) {
	case ".quit", ".exit":
		return true
	case ".help":
		printHelp(a, strings.TrimSpace(topic))
	default:
		printError(a.stderr, fmt.Sprintf("Unknown command %s. Type .help for available commands.", word))
	}
	return false
}

// executeShellLine runs one non-dot line.
func executeShellLine(a *app, parser *cmusprotocol.CommandParser, line string) error {
	root := newRootCommand(a)

	action, err := translateShellLine(line, isSubcommand(root))
	if err != nil {
		return err
	}

	if action.protocol != "" {
		cmd, err := parser.Parse(action.protocol)
		if err != nil {
			return err
		}
		return a.check(cmd.Format(), a.ctl.Send(cmd))
	}

	root.SetArgs(action.args)
	return root.Execute()
}
