// =============================================================================
// help.go - Shell Help
// =============================================================================
//
// .help with no topic prints an overview of the shell. .help <topic> looks
// the topic up in three places, in order:
//
//  1. shell dot-commands and shorthands (shellHelp)
//  2. cmus protocol commands that can be typed directly (protocolHelp)
//  3. cmusctl subcommands, answered by cobra's own help
//
// =============================================================================

package main

import (
	"fmt"
	"strings"
)

// shellHelp documents commands the shell handles itself.
var shellHelp = map[string]string{
	"help": `.help [topic]
  Show the overview, or help for one command.
  Examples: .help, .help status, .help set`,

	"quit": `.quit (also .exit)
  Leave the shell. Ctrl-D does the same.`,

	"shuffle": `shuffle | repeat | repeat_current | continue | follow
  Toggle the named option. Same as: toggle <option>`,

	"vol": `vol <n>
  Set the volume to n percent. Other forms (vol +10%, vol -5%) are sent
  to cmus as typed.`,

	"add": `add <path>
  Add a file to the play queue without playing it (add -Q <path>).`,
}

// protocolHelp documents cmus commands that may be typed as-is.
var protocolHelp = map[string]string{
	"player-play":  "player-play\n  Start playback.",
	"player-pause": "player-pause\n  Toggle pause.",
	"player-stop":  "player-stop\n  Stop playback.",
	"player-next":  "player-next\n  Skip to the next track.",
	"player-prev":  "player-prev\n  Go back to the previous track.",
	"view":         "view <name>\n  Switch cmus to a view, e.g. view sorted.",
	"win-activate": "win-activate\n  Activate the selected row in the current view.",
	"/": `/<text>
  Search the current view, e.g. /Artist Album Title.`,
}

// helpAliases maps alternative topic spellings to their entries.
var helpAliases = map[string]string{
	"exit":           "quit",
	"repeat":         "shuffle",
	"repeat_current": "shuffle",
	"continue":       "shuffle",
	"follow":         "shuffle",
}

// printHelp prints the overview or help for one topic.
func printHelp(a *app, topic string) {
	if topic == "" {
		printHelpOverview(a)
		return
	}

	key := strings.ToLower(strings.TrimPrefix(topic, "."))
	if alias, ok := helpAliases[key]; ok {
		key = alias
	}

	if text, ok := shellHelp[key]; ok {
		fmt.Fprintln(a.stdout, text)
		return
	}
	if text, ok := protocolHelp[key]; ok {
		fmt.Fprintln(a.stdout, text)
		return
	}
	if strings.HasPrefix(key, "/") {
		fmt.Fprintln(a.stdout, protocolHelp["/"])
		return
	}

	root := newRootCommand(a)
	if isSubcommand(root)(key) {
		root.SetArgs([]string{"help", key})
		if err := root.Execute(); err != nil {
			printError(a.stderr, err.Error())
		}
		return
	}

	printError(a.stderr, fmt.Sprintf("No help for '%s'. Type .help to see available commands.", topic))
}

// printHelpOverview prints the shell overview followed by the subcommands.
func printHelpOverview(a *app) {
	fmt.Fprint(a.stdout, `Shell Commands:
  .help [topic]     Show help (or help for a specific command)
  .quit             Exit the shell

Shorthands:
  shuffle, repeat   Toggle the option
  vol <n>           Set volume to n%
  add <path>        Queue a file without playing it

cmusctl Commands:
`)

	root := newRootCommand(a)
	for _, c := range root.Commands() {
		if c.Name() == "shell" || !c.IsAvailableCommand() {
			continue
		}
		fmt.Fprintf(a.stdout, "  %-17s %s\n", c.Name(), c.Short)
	}

	fmt.Fprint(a.stdout, `
Anything else is sent to cmus as a protocol command, for example:
  player-pause, set softvol=true, view sorted, /Artist Album Title
`)
}
