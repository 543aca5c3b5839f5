package cmusprotocol

import (
	"errors"
	"path/filepath"
	"testing"
)

// TestProtocolConstants verifies the wire constants cmus expects.
func TestProtocolConstants(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"Terminator", Terminator, "\n"},
		{"SocketName", SocketName, "socket"},
		{"ConfigDirName", ConfigDirName, ".cmus"},
		{"TokenPlay", TokenPlay, "player-play"},
		{"TokenAddQuiet", TokenAddQuiet, "add -Q"},
		{"TokenWinActivate", TokenWinActivate, "win-activate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, want %q", tt.got, tt.expected)
			}
		})
	}

	if QueryBufferSize != 4096 {
		t.Errorf("QueryBufferSize = %d, want 4096", QueryBufferSize)
	}
	if AckSize != 1 {
		t.Errorf("AckSize = %d, want 1", AckSize)
	}
}

func TestDefaultSocketPathUsesCmusHome(t *testing.T) {
	t.Setenv(ConfigDirEnv, "/srv/cmus")

	if got := ConfigDir(); got != "/srv/cmus" {
		t.Errorf("ConfigDir() = %q, want /srv/cmus", got)
	}
	if got := DefaultSocketPath(); got != "/srv/cmus/socket" {
		t.Errorf("DefaultSocketPath() = %q, want /srv/cmus/socket", got)
	}
}

func TestDefaultSocketPathFallsBackToHome(t *testing.T) {
	t.Setenv(ConfigDirEnv, "")
	t.Setenv("HOME", "/home/listener")

	want := filepath.Join("/home/listener", ".cmus", "socket")
	if got := DefaultSocketPath(); got != want {
		t.Errorf("DefaultSocketPath() = %q, want %q", got, want)
	}
}

// TestCommandFormatting verifies command formatting matches the protocol.
func TestCommandFormatting(t *testing.T) {
	tests := []struct {
		name     string
		cmd      Command
		expected string
	}{
		{"Play", NewPlayCommand(), "player-play"},
		{"Pause", NewPauseCommand(), "player-pause"},
		{"Stop", NewStopCommand(), "player-stop"},
		{"Next", NewNextCommand(), "player-next"},
		{"Prev", NewPrevCommand(), "player-prev"},
		{"Status", NewStatusCommand(), "status"},
		{"Set", NewSetCommand("shuffle", "true"), "set shuffle=true"},
		{"Toggle", NewToggleCommand("repeat"), "toggle repeat"},
		{"AddQuiet", NewAddQuietCommand("/music/a b.flac"), "add -Q /music/a b.flac"},
		{"ViewSorted", NewViewSortedCommand(), "view sorted"},
		{"Search", NewSearchCommand("Foo", "Baz", "Bar"), "/Foo Baz Bar"},
		{"Search unescaped", NewSearchCommand("A/B", "*", "?"), "/A/B * ?"},
		{"WinActivate", NewWinActivateCommand(), "win-activate"},
		{"Raw", NewRawCommand("vol +10%"), "vol +10%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cmd.Format()
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}


func TestCommandMode(t *testing.T) {
	if NewStatusCommand().Mode() != ModeQuery {
		t.Error("status should use ModeQuery")
	}
	for _, cmd := range []Command{NewPlayCommand(), NewSetCommand("a", "b"), NewRawCommand("x")} {
		if cmd.Mode() != ModeAck {
			t.Errorf("%q should use ModeAck", cmd.Format())
		}
	}
}

// TestCommandParsing verifies command parsing works correctly.
func TestCommandParsing(t *testing.T) {
	parser := NewCommandParser()

	tests := []struct {
		name     string
		input    string
		expected Command
	}{
		{"Play", "player-play", NewPlayCommand()},
		{"Pause padded", "  player-pause  ", NewPauseCommand()},
		{"Stop", "player-stop", NewStopCommand()},
		{"Next", "player-next", NewNextCommand()},
		{"Prev", "player-prev", NewPrevCommand()},
		{"Status", "status", NewStatusCommand()},
		{"Set", "set shuffle=true", NewSetCommand("shuffle", "true")},
		{"Set empty value", "set lib_sort=", NewSetCommand("lib_sort", "")},
		{"Toggle", "toggle repeat", NewToggleCommand("repeat")},
		{"AddQuiet", "add -Q /music/a b.flac", NewAddQuietCommand("/music/a b.flac")},
		{"ViewSorted", "view sorted", NewViewSortedCommand()},
		{"WinActivate", "win-activate", NewWinActivateCommand()},
		{"Raw", "vol +10%", NewRawCommand("vol +10%")},
		{"Raw view", "view 2", NewRawCommand("view 2")},
		{"Search is raw", "/Foo Baz Bar", NewRawCommand("/Foo Baz Bar")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCommandParsingErrors(t *testing.T) {
	parser := NewCommandParser()

	for _, input := range []string{"", "   ", "set shuffle", "set =x", "toggle", "toggle   "} {
		t.Run(input, func(t *testing.T) {
			_, err := parser.Parse(input)
			if err == nil {
				t.Fatalf("Parse(%q) should fail", input)
			}
			if !errors.Is(err, ErrInvalidCommand) {
				t.Errorf("error should match ErrInvalidCommand, got %v", err)
			}
			var cmdErr *CommandError
			if !errors.As(err, &cmdErr) {
				t.Errorf("error should be *CommandError, got %T", err)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	parser := NewCommandParser()
	cmds := []Command{
		NewPlayCommand(),
		NewSetCommand("continue", "false"),
		NewToggleCommand("shuffle"),
		NewAddQuietCommand("/x/y.ogg"),
		NewViewSortedCommand(),
		NewWinActivateCommand(),
	}
	for _, cmd := range cmds {
		got, err := parser.Parse(cmd.Format())
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", cmd.Format(), err)
		}
		if got != cmd {
			t.Errorf("Parse(%q) = %+v, want %+v", cmd.Format(), got, cmd)
		}
	}
}

func TestModeAndStateStrings(t *testing.T) {
	if ModeAck.String() != "ack" || ModeQuery.String() != "query" {
		t.Errorf("mode strings: %q %q", ModeAck, ModeQuery)
	}
	if StateDisconnected.String() != "disconnected" || StateConnected.String() != "connected" {
		t.Errorf("state strings: %q %q", StateDisconnected, StateConnected)
	}
}

func TestErrorMessages(t *testing.T) {
	cause := errors.New("broken pipe")
	err := newTransportError("write", "/tmp/s", cause)
	if err.Error() != "write /tmp/s: broken pipe" {
		t.Errorf("TransportError.Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("TransportError should unwrap to its cause")
	}

	verr := &ValidationError{Missing: []string{"album", "title"}}
	if verr.Error() != "missing metadata: album, title" {
		t.Errorf("ValidationError.Error() = %q", verr.Error())
	}
}
