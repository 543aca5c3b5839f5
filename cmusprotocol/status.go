package cmusprotocol

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// PlayerState is the playback state reported by the status command.
type PlayerState int

const (
	// StateStopped is the default when no status line is present.
	StateStopped PlayerState = iota
	// StatePlaying means a track is playing.
	StatePlaying
	// StatePaused means playback is paused.
	StatePaused
)

// String returns the protocol spelling of the state.
func (s PlayerState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "stopped"
	}
}

// ParsePlayerState maps the protocol spelling to a PlayerState.
func ParsePlayerState(s string) (PlayerState, bool) {
	switch s {
	case "playing":
		return StatePlaying, true
	case "paused":
		return StatePaused, true
	case "stopped":
		return StateStopped, true
	default:
		return StateStopped, false
	}
}

// Line prefixes in a status reply.
const (
	tagPrefix = "tag"
	setPrefix = "set"
)

// Status is one snapshot of player state. It is rebuilt from scratch on
// every fetch.
type Status struct {
	State  PlayerState
	File   string
	Stream string

	// Optional integer fields; nil when absent or unparsable.
	Duration    *int
	Position    *int
	TrackNumber *int // tag tracknumber
	VolumeLeft  *int // set vol_left
	VolumeRight *int // set vol_right
	Volume      *int // (vol_left + vol_right) / 2

	// Fields holds every top-level scalar line as raw trimmed text.
	Fields   map[string]string
	Tags     map[string]string
	Settings map[string]string
}

// NewStatus returns the default snapshot: stopped, with empty maps.
func NewStatus() Status {
	return Status{
		State:    StateStopped,
		Fields:   map[string]string{},
		Tags:     map[string]string{},
		Settings: map[string]string{},
	}
}

// Tag returns the tag value for key and whether it is present.
func (s Status) Tag(key string) (string, bool) {
	v, ok := s.Tags[key]
	return v, ok
}

// Setting returns the setting value for key and whether it is present.
func (s Status) Setting(key string) (string, bool) {
	v, ok := s.Settings[key]
	return v, ok
}

// ParseWarning describes a status line that was skipped or only partly
// understood. Warnings never abort a fetch.
type ParseWarning struct {
	Line   int // 1-based line number in the reply
	Text   string
	Reason string
}

// String formats the warning for display.
func (w ParseWarning) String() string {
	return fmt.Sprintf("line %d: %s: %q", w.Line, w.Reason, w.Text)
}

// ParseStatus parses the text of a status reply.
//
// Each non-empty line is "tag <key> <value>", "set <key> <value>" or
// "<key> <value>". Lines with fewer than two tokens are skipped with a
// warning. Empty tag and set values are discarded. An empty reply yields
// the default snapshot.
func ParseStatus(text string) (Status, []ParseWarning) {
	st := NewStatus()
	var warnings []ParseWarning

	warn := func(n int, line, reason string) {
		warnings = append(warnings, ParseWarning{Line: n, Text: line, Reason: reason})
	}

	for i, line := range strings.Split(text, "\n") {
		n := i + 1
		if line == "" {
			continue
		}

		first, rest, ok := strings.Cut(line, " ")
		if !ok {
			warn(n, line, "missing value")
			continue
		}

		switch first {
		case tagPrefix, setPrefix:
			key, value, ok := strings.Cut(rest, " ")
			if !ok {
				warn(n, line, "missing value")
				continue
			}
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			if first == tagPrefix {
				st.Tags[key] = value
			} else {
				st.Settings[key] = value
			}
		default:
			st.Fields[first] = strings.TrimSpace(rest)
		}
	}

	if v, ok := st.Fields["status"]; ok {
		state, known := ParsePlayerState(v)
		if !known {
			warn(0, "status "+v, "unknown player state")
		}
		st.State = state
	}
	st.File = st.Fields["file"]
	st.Stream = st.Fields["stream"]

	st.Duration = coerceInt(st.Fields, "duration", "duration", warn)
	st.Position = coerceInt(st.Fields, "position", "position", warn)
	st.TrackNumber = coerceInt(st.Tags, "tracknumber", "tag tracknumber", warn)
	st.VolumeLeft = coerceInt(st.Settings, "vol_left", "set vol_left", warn)
	st.VolumeRight = coerceInt(st.Settings, "vol_right", "set vol_right", warn)

	if st.VolumeLeft != nil && st.VolumeRight != nil {
		vol := (*st.VolumeLeft + *st.VolumeRight) / 2
		st.Volume = &vol
		st.Settings["vol"] = strconv.Itoa(vol)
	}

	return st, warnings
}

func coerceInt(m map[string]string, key, label string, warn func(int, string, string)) *int {
	raw, ok := m[key]
	if !ok {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		warn(0, label+" "+raw, "not an integer")
		return nil
	}
	return &v
}

// StatusReader fetches status snapshots over a shared connection.
type StatusReader struct {
	sender Sender
	log    *zap.Logger
}

// StatusOption configures a StatusReader.
type StatusOption func(*StatusReader)

// WithStatusLogger sets the logger used to report parse warnings.
func WithStatusLogger(log *zap.Logger) StatusOption {
	return func(r *StatusReader) {
		if log != nil {
			r.log = log
		}
	}
}

// NewStatusReader creates a StatusReader that sends through s.
func NewStatusReader(s Sender, opts ...StatusOption) *StatusReader {
	r := &StatusReader{sender: s, log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fetch sends the status command and parses the reply. A failed transport
// produces the default snapshot.
func (r *StatusReader) Fetch() (Status, []ParseWarning) {
	cmd := NewStatusCommand()
	reply := r.sender.Send(cmd.Format(), cmd.Mode())

	st, warnings := ParseStatus(reply.Text)
	for _, w := range warnings {
		r.log.Debug("status parse warning",
			zap.Int("line", w.Line),
			zap.String("text", w.Text),
			zap.String("reason", w.Reason))
	}
	return st, warnings
}
