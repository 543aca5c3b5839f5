// =============================================================================
// commands.go - Command Tree
// =============================================================================
//
// Every cmusctl operation is a cobra command. The same tree serves both
// one-shot invocations and the interactive shell, which builds a fresh
// tree for each line it reads.
//
//	status | play | pause | stop | next | prev
//	set <key> <value> | toggle <key> | raw <text...>
//	play-file <path> | play-lib --artist A --album B --title C
//	wait [--timeout d]
//	cache list | lookup <path> | verify [path...] | watch
//	library check [path...]
//	shell
//
// =============================================================================

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/cmuskit/cmuskit/cmuscache"
	"github.com/cmuskit/cmuskit/cmusprotocol"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// addConfigFlags registers the settings flags on fs, bound to cfg. The
// current cfg values become the flag defaults.
func addConfigFlags(fs *pflag.FlagSet, cfg *config) {
	fs.StringVar(&cfg.socketPath, "socket", cfg.socketPath, "cmus control socket")
	fs.StringVar(&cfg.cachePath, "cache", cfg.cachePath, "cmus track cache file")
	fs.StringVar(&cfg.libraryPath, "library", cfg.libraryPath, "cmus library playlist")
	fs.StringVar(&cfg.logLevel, "log-level", cfg.logLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.logFile, "log-file", cfg.logFile, "also write JSON logs to this file, rotated")
}

// newRootCommand builds the full command tree around a.
func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Control a running cmus and inspect its track cache",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	addConfigFlags(root.PersistentFlags(), a.cfg)

	root.AddCommand(
		newStatusCommand(a),
		newTransportCommand(a, "play", "Start playback", nil, (*cmusprotocol.Controller).Play),
		newTransportCommand(a, "pause", "Toggle pause", nil, (*cmusprotocol.Controller).Pause),
		newTransportCommand(a, "stop", "Stop playback", nil, (*cmusprotocol.Controller).Stop),
		newTransportCommand(a, "next", "Skip to the next track", []string{"n"}, (*cmusprotocol.Controller).Next),
		newTransportCommand(a, "prev", "Go back to the previous track", []string{"p"}, (*cmusprotocol.Controller).Prev),
		newSetCommand(a),
		newToggleCommand(a),
		newRawCommand(a),
		newPlayFileCommand(a),
		newPlayLibCommand(a),
		newWaitCommand(a),
		newCacheCommand(a),
		newLibraryCommand(a),
		newShellCommand(a),
	)
	return root
}

// =============================================================================
// Player Commands
// =============================================================================

func newStatusCommand(a *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the player state and current track",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if raw {
				text := a.conn.Query(cmusprotocol.TokenStatus)
				if err := a.check("status", a.conn.LastError() == nil); err != nil {
					return err
				}
				fmt.Fprint(a.stdout, text)
				return nil
			}

			st, warnings := a.status.Fetch()
			if err := a.check("status", a.conn.LastError() == nil); err != nil {
				return err
			}
			for _, w := range warnings {
				a.log.Warn("status line skipped",
					zap.Int("line", w.Line),
					zap.String("text", w.Text),
					zap.String("reason", w.Reason))
			}
			printStatus(a.stdout, st)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the reply text unparsed")
	return cmd
}

// newTransportCommand builds a no-argument command around a Controller
// method.
func newTransportCommand(a *app, use, short string, aliases []string, call func(*cmusprotocol.Controller) bool) *cobra.Command {
	return &cobra.Command{
		Use:     use,
		Aliases: aliases,
		Short:   short,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check(use, call(a.ctl))
		},
	}
}

func newSetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a player option (set key=value)",
		Long: "Set a player option. The value may be given as a second argument\n" +
			"or joined to the key with '=': `set shuffle true` or `set shuffle=true`.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value, ok := args[0], "", len(args) == 2
			if ok {
				value = args[1]
			} else {
				key, value, ok = strings.Cut(args[0], "=")
			}
			if !ok || key == "" {
				return fmt.Errorf("set requires a key and a value")
			}
			return a.check("set", a.ctl.Set(key, value))
		},
	}
}

func newToggleCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <key>",
		Short: "Toggle a boolean player option",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check("toggle", a.ctl.Toggle(args[0]))
		},
	}
}

func newRawCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "raw [--] <text...>",
		Short: "Send a command line to cmus unchanged",
		Long: "Send a command line to cmus unchanged. Put -- before commands that\n" +
			"carry their own dash options: `cmusctl raw -- add -Q /music/a.flac`.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check("raw", a.ctl.Raw(strings.Join(args, " ")))
		},
	}
}

func newPlayFileCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play-file <path>",
		Short: "Queue a file and skip to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			return a.check("play-file", a.ctl.PlayFile(path))
		},
	}
}

// metadataFlags holds the --artist, --album and --title values.
type metadataFlags struct {
	fs                   *pflag.FlagSet
	artist, album, title string
}

// addMetadataFlags registers the metadata flags on fs.
func addMetadataFlags(fs *pflag.FlagSet) *metadataFlags {
	m := &metadataFlags{fs: fs}
	fs.StringVar(&m.artist, "artist", "", "artist tag")
	fs.StringVar(&m.album, "album", "", "album tag")
	fs.StringVar(&m.title, "title", "", "title tag")
	return m
}

// fields returns the metadata that was given on the command line. Flags
// left out are absent from the map rather than empty.
func (m *metadataFlags) fields() map[string]string {
	out := map[string]string{}
	for key, value := range map[string]string{"artist": m.artist, "album": m.album, "title": m.title} {
		if m.fs.Changed(key) {
			out[key] = value
		}
	}
	return out
}

func newPlayLibCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play-lib --artist A --album B --title C",
		Short: "Find a library track by its tags and play it",
		Args:  cobra.NoArgs,
	}
	meta := addMetadataFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		fields := meta.fields()
		if err := cmusprotocol.ValidateMetadata(fields); err != nil {
			return err
		}
		return a.check("play-lib", a.ctl.PlayByMetadata(fields))
	}
	return cmd
}

func newWaitCommand(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Wait until the cmus control socket appears",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return waitForSocket(a.cfg.socketPath, timeout)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", defaultWaitTimeout, "how long to wait")
	return cmd
}

// =============================================================================
// Cache Commands
// =============================================================================

func newCacheCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Read the cmus track cache",
	}
	cmd.AddCommand(
		newCacheListCommand(a),
		newCacheLookupCommand(a),
		newCacheVerifyCommand(a),
		newCacheWatchCommand(a),
	)
	return cmd
}

func newCacheListCommand(a *app) *cobra.Command {
	var sorted bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached tracks (duration, artist, album, title, path)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sorted {
				idx, err := cmuscache.Load(a.cfg.cachePath, a.cacheOptions()...)
				if err != nil {
					return err
				}
				for _, rec := range idx.Records() {
					printRecordLine(a.stdout, rec)
				}
				return nil
			}

			c, err := cmuscache.Open(a.cfg.cachePath, a.cacheOptions()...)
			if err != nil {
				return err
			}
			defer c.Close()
			for rec, err := range c.All() {
				if err != nil {
					return err
				}
				printRecordLine(a.stdout, rec)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&sorted, "sorted", false, "one line per path, sorted, last record wins")
	return cmd
}

func newCacheLookupCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <path>",
		Short: "Show the cached record for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := cmuscache.Load(a.cfg.cachePath, a.cacheOptions()...)
			if err != nil {
				return err
			}
			rec, ok := idx.Lookup(args[0])
			if !ok {
				return fmt.Errorf("not in cache: %s", args[0])
			}
			printRecord(a.stdout, rec)
			return nil
		},
	}
}

func newCacheVerifyCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [path...]",
		Short: "Compare cached tags with the tags in the audio files",
		Long: "Compare cached tags with the tags read from each audio file.\n" +
			"With no arguments every cached file is checked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := cmuscache.Load(a.cfg.cachePath, a.cacheOptions()...)
			if err != nil {
				return err
			}
			paths := args
			if len(paths) == 0 {
				paths = idx.Paths()
			}

			bad := 0
			for _, path := range paths {
				rec, ok := idx.Lookup(path)
				if !ok {
					fmt.Fprintf(a.stdout, "%s: not in cache\n", path)
					bad++
					continue
				}
				diffs, err := cmuscache.VerifyFile(rec)
				if err != nil {
					a.log.Warn("cannot read tags", zap.String("path", path), zap.Error(err))
					bad++
					continue
				}
				if len(diffs) == 0 {
					fmt.Fprintf(a.stdout, "%s: ok\n", path)
					continue
				}
				bad++
				for _, d := range diffs {
					fmt.Fprintf(a.stdout, "%s: %s cached=%q file=%q\n", path, d.Key, d.Cached, d.File)
				}
			}
			if bad > 0 {
				return fmt.Errorf("%d of %d files out of date or unreadable", bad, len(paths))
			}
			return nil
		},
	}
}

func newCacheWatchCommand(a *app) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Report each time cmus rewrites the cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchCache(ctx, a, debounce)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", cmuscache.DefaultDebounce, "quiet period before rescanning")
	return cmd
}

// watchCache prints a line per rebuilt index until ctx is done.
func watchCache(ctx context.Context, a *app, debounce time.Duration) error {
	return cmuscache.Watch(ctx, a.cfg.cachePath, func(idx *cmuscache.Index, err error) {
		if err != nil {
			a.log.Error("cache rebuild failed", zap.Error(err))
			return
		}
		fmt.Fprintf(a.stdout, "%s %d tracks\n", time.Now().Format(time.TimeOnly), idx.Len())
	},
		cmuscache.WithDebounce(debounce),
		cmuscache.WithWatchLogger(a.log.Named("watch")))
}

// =============================================================================
// Library Commands
// =============================================================================

func newLibraryCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Read the cmus library playlist",
	}
	cmd.AddCommand(newLibraryCheckCommand(a))
	return cmd
}

func newLibraryCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [path...]",
		Short: "Report library membership and cache coverage",
		Long: "For each path, report whether it is in the library and in the cache.\n" +
			"With no arguments, list library entries that have no cache record.",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := cmuscache.ReadLibrary(a.cfg.libraryPath)
			if err != nil {
				return err
			}
			idx, err := cmuscache.Load(a.cfg.cachePath, a.cacheOptions()...)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				uncached := lib.Uncached(idx)
				for _, p := range uncached {
					fmt.Fprintln(a.stdout, p)
				}
				a.log.Info("library checked",
					zap.Int("entries", lib.Len()),
					zap.Int("uncached", len(uncached)))
				return nil
			}

			for _, p := range args {
				fmt.Fprintf(a.stdout, "%s\tlibrary=%s\tcache=%s\n", p, yesNo(lib.Contains(p)), yesNo(idx.Contains(p)))
			}
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// =============================================================================
// Shell
// =============================================================================

func newShellCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.inShell {
				return fmt.Errorf("already in the shell")
			}
			editor := NewLineEditor()
			defer editor.Close()

			fmt.Fprint(a.stdout, welcomeBanner())
			runShell(a, editor)
			return nil
		},
	}
}
