// =============================================================================
// lineeditor.go - Line Editing for the Shell
// =============================================================================
//
// When stdin is a terminal the shell gets readline-style editing and a
// persistent history in ~/.cmusctl_history:
//
//	Up/Down      history          Ctrl-A/E   start/end of line
//	Ctrl-R       reverse search   Ctrl-K     kill to end of line
//	Ctrl-D       exit on empty    Ctrl-W     delete word
//
// When stdin is a pipe, or TERM is "dumb", lines are read plainly with a
// bufio.Scanner so scripts can feed the shell:
//
//	printf 'status\nnext\n' | cmusctl shell
//
// =============================================================================

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"golang.org/x/term"
)

const (
	// historyFileName is stored in the user's home directory.
	historyFileName = ".cmusctl_history"

	// historySize is the number of entries kept.
	historySize = 500
)

// LineEditor reads shell input with or without line editing.
type LineEditor struct {
	interactive bool

	// rl is set in interactive mode.
	rl *readline.Instance

	// scanner and out are used in non-interactive mode.
	scanner *bufio.Scanner
	out     io.Writer
}

// GO CONCEPT: Detecting a Terminal
// --------------------------------
// term.IsTerminal asks the OS whether a file descriptor is a TTY. Only a
// TTY can be switched to raw mode for key-by-key editing; a pipe or file
// must be read line by line. os.Stdin.Fd() returns the uintptr descriptor,
// which term.IsTerminal takes as an int.

// NewLineEditor creates an editor for os.Stdin, falling back to plain
// reads if readline cannot start.
func NewLineEditor() *LineEditor {
	isInteractive := term.IsTerminal(int(os.Stdin.Fd())) &&
		os.Getenv("TERM") != "dumb"

	if !isInteractive {
		return newPlainEditor()
	}

	rl, err := readline.NewFromConfig(&readline.Config{
		HistoryFile:            historyPath(),
		HistoryLimit:           historySize,
		DisableAutoSaveHistory: true,
		Prompt:                 "",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: readline init failed (%v), using basic input\n", err)
		return newPlainEditor()
	}

	return &LineEditor{
		interactive: true,
		rl:          rl,
	}
}

// historyPath returns the history file location, or "" to keep history in
// memory only when the home directory is unknown.
func historyPath() string {
	home := homeDir()
	if home == "" {
		return ""
	}
	return filepath.Join(home, historyFileName)
}

func newPlainEditor() *LineEditor {
	return &LineEditor{
		scanner: bufio.NewScanner(os.Stdin),
		out:     os.Stdout,
	}
}

// GetLine prints prompt and reads one line without its newline. It
// returns io.EOF at end of input or on Ctrl-C.
func (le *LineEditor) GetLine(prompt string) (string, error) {
	if le.interactive {
		return le.getInteractiveLine(prompt)
	}
	return le.getNonInteractiveLine(prompt)
}

func (le *LineEditor) getInteractiveLine(prompt string) (string, error) {
	le.rl.SetPrompt(prompt)

	line, err := le.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt {
			return "", io.EOF
		}
		return "", err
	}

	// Blank lines are not worth recalling.
	if trimmed := strings.TrimSpace(line); trimmed != "" {
		le.rl.SaveToHistory(trimmed)
	}
	return line, nil
}

func (le *LineEditor) getNonInteractiveLine(prompt string) (string, error) {
	fmt.Fprint(le.out, prompt)

	if !le.scanner.Scan() {
		if err := le.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return le.scanner.Text(), nil
}

// Close restores the terminal and flushes history. It is safe to call
// more than once.
func (le *LineEditor) Close() {
	if le.rl != nil {
		le.rl.Close()
		le.rl = nil
	}
}

// IsInteractive reports whether line editing is active.
func (le *LineEditor) IsInteractive() bool {
	return le.interactive
}
