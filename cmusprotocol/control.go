package cmusprotocol

import (
	"go.uber.org/zap"
)

// Metadata keys required by PlayByMetadata.
var requiredMetadata = []string{"artist", "album", "title"}

// Controller issues playback and settings commands over a shared
// connection. Every method returns whether the final command was
// acknowledged.
type Controller struct {
	sender Sender
	log    *zap.Logger
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithControllerLogger sets the logger used by the controller.
func WithControllerLogger(log *zap.Logger) ControllerOption {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// NewController creates a Controller that sends through s.
func NewController(s Sender, opts ...ControllerOption) *Controller {
	c := &Controller{sender: s, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send sends cmd in its reply mode and reports whether it succeeded.
func (c *Controller) Send(cmd Command) bool {
	return c.sender.Send(cmd.Format(), cmd.Mode()).OK
}

// Play starts playback.
func (c *Controller) Play() bool {
	return c.Send(NewPlayCommand())
}

// Pause toggles pause.
func (c *Controller) Pause() bool {
	return c.Send(NewPauseCommand())
}

// Stop stops playback.
func (c *Controller) Stop() bool {
	return c.Send(NewStopCommand())
}

// Next skips to the next track.
func (c *Controller) Next() bool {
	return c.Send(NewNextCommand())
}

// Prev goes back to the previous track.
func (c *Controller) Prev() bool {
	return c.Send(NewPrevCommand())
}

// Set assigns value to the option key.
func (c *Controller) Set(key, value string) bool {
	return c.Send(NewSetCommand(key, value))
}

// Toggle flips the boolean option key.
func (c *Controller) Toggle(key string) bool {
	return c.Send(NewToggleCommand(key))
}

// Raw sends text unchanged in ModeAck.
func (c *Controller) Raw(text string) bool {
	return c.Send(NewRawCommand(text))
}

// PlayFile enqueues path and skips to it. It returns the result of the
// skip; if the enqueue fails nothing else is sent.
func (c *Controller) PlayFile(path string) bool {
	if !c.Send(NewAddQuietCommand(path)) {
		c.log.Debug("enqueue failed", zap.String("path", path))
		return false
	}
	return c.Next()
}

// ValidateMetadata checks that fields carries artist, album and title.
func ValidateMetadata(fields map[string]string) error {
	var missing []string
	for _, key := range requiredMetadata {
		if _, ok := fields[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// PlayByMetadata locates a library entry by artist, album and title and
// plays it: it switches to the sorted view, searches, and activates the
// selection.
//
// Missing keys fail immediately without sending anything. Otherwise the
// result is that of the final activate command only; a failed view switch
// or search is logged but does not change the result.
func (c *Controller) PlayByMetadata(fields map[string]string) bool {
	if err := ValidateMetadata(fields); err != nil {
		c.log.Debug("play by metadata rejected", zap.Error(err))
		return false
	}

	if !c.Send(NewViewSortedCommand()) {
		c.log.Warn("view switch failed")
	}
	search := NewSearchCommand(fields["artist"], fields["album"], fields["title"])
	if !c.Send(search) {
		c.log.Warn("search failed", zap.String("search", search.Format()))
	}
	return c.Send(NewWinActivateCommand())
}
