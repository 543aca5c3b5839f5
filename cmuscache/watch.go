package cmuscache

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultDebounce is how long Watch waits for writes to settle before
// rescanning.
const DefaultDebounce = 250 * time.Millisecond

type watchConfig struct {
	debounce  time.Duration
	log       *zap.Logger
	cacheOpts []Option
}

// WatchOption configures Watch.
type WatchOption func(*watchConfig)

// WithDebounce sets the quiet period before a rebuild.
func WithDebounce(d time.Duration) WatchOption {
	return func(c *watchConfig) {
		c.debounce = d
	}
}

// WithWatchLogger sets the logger for the watcher and the caches it opens.
func WithWatchLogger(log *zap.Logger) WatchOption {
	return func(c *watchConfig) {
		if log != nil {
			c.log = log
			c.cacheOpts = append(c.cacheOpts, WithLogger(log))
		}
	}
}

// Watch builds an Index for the cache at path, passes it to fn, and then
// rebuilds from a fresh scan whenever the file is created, written or
// renamed into place. fn receives the error instead when a rebuild fails.
//
// Watch blocks until ctx is done. fn runs on the calling goroutine.
func Watch(ctx context.Context, path string, fn func(*Index, error), opts ...WatchOption) error {
	cfg := watchConfig{debounce: DefaultDebounce, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer watcher.Close()

	// Watch the directory: cmus replaces the cache by renaming a new file
	// over it, which drops a watch on the file itself.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "watch %s", dir)
	}

	target := filepath.Clean(path)
	rebuild := func() {
		idx, err := Load(path, cfg.cacheOpts...)
		fn(idx, err)
	}
	rebuild()

	// pending fires once the file has been quiet for the debounce period.
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			cfg.log.Debug("cache changed", zap.String("event", event.Op.String()))
			pending = time.After(cfg.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cfg.log.Warn("watcher error", zap.Error(err))

		case <-pending:
			pending = nil
			rebuild()
		}
	}
}
