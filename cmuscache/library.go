package cmuscache

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// LibraryFileName is the library playlist inside the configuration
// directory: one absolute path per line.
const LibraryFileName = "lib.pl"

// maxLibraryLine bounds a single path line.
const maxLibraryLine = 1 << 20

// Library is the ordered list of paths in the cmus library playlist.
type Library struct {
	paths   []string
	members map[string]struct{}
}

// DefaultLibraryPath returns <config-dir>/lib.pl.
func DefaultLibraryPath(configDir string) string {
	return filepath.Join(configDir, LibraryFileName)
}

// ReadLibrary reads the playlist at path. Blank lines are skipped. A
// missing file yields an empty library.
func ReadLibrary(path string) (*Library, error) {
	lib := &Library{members: make(map[string]struct{})}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return lib, nil
		}
		return nil, errors.Wrapf(err, "open library %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLibraryLine)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lib.paths = append(lib.paths, line)
		lib.members[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read library %s", path)
	}
	return lib, nil
}

// Contains reports whether path is in the library.
func (l *Library) Contains(path string) bool {
	_, ok := l.members[path]
	return ok
}

// Paths returns the library paths in file order.
func (l *Library) Paths() []string {
	out := make([]string, len(l.paths))
	copy(out, l.paths)
	return out
}

// Len returns the number of lines read.
func (l *Library) Len() int {
	return len(l.paths)
}

// Uncached returns, in library order, the paths that have no record in idx.
func (l *Library) Uncached(idx *Index) []string {
	var out []string
	for _, p := range l.paths {
		if !idx.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}
