package cmuscache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type watchResult struct {
	idx *Index
	err error
}

func TestWatchRebuildsOnReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	first := &cacheBuilder{}
	first.add(fixtureRecord{path: "/one"})
	require.NoError(t, os.WriteFile(path, first.bytes(), 0o644))

	results := make(chan watchResult, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(idx *Index, err error) {
			results <- watchResult{idx, err}
		}, WithDebounce(20*time.Millisecond), WithWatchLogger(zaptest.NewLogger(t)))
	}()

	select {
	case r := <-results:
		require.NoError(t, r.err)
		assert.Equal(t, 1, r.idx.Len())
	case <-time.After(5 * time.Second):
		t.Fatal("no initial index")
	}

	// Replace the file the way cmus does: write aside, then rename over.
	second := &cacheBuilder{}
	second.add(fixtureRecord{path: "/one"})
	second.add(fixtureRecord{path: "/two"})
	tmp := filepath.Join(dir, "cache.tmp")
	require.NoError(t, os.WriteFile(tmp, second.bytes(), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case r := <-results:
			require.NoError(t, r.err)
			if r.idx.Len() != 2 {
				continue
			}
			assert.True(t, r.idx.Contains("/two"))
			cancel()
			select {
			case err := <-done:
				assert.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Fatal("Watch did not return after cancel")
			}
			return
		case <-deadline:
			cancel()
			t.Fatal("no rebuilt index")
		}
	}
}

func TestWatchReportsBadFile(t *testing.T) {
	path := writeFile(t, FileName, []byte("NOTACACHE"))

	results := make(chan watchResult, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, path, func(idx *Index, err error) {
		select {
		case results <- watchResult{idx, err}:
		default:
		}
	})

	select {
	case r := <-results:
		assert.Nil(t, r.idx)
		assert.ErrorIs(t, r.err, ErrBadMagic)
	case <-time.After(5 * time.Second):
		t.Fatal("no result")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", FileName)
	err := Watch(context.Background(), path, func(*Index, error) {})
	assert.Error(t, err)
}
