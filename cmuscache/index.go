package cmuscache

import (
	"sort"
)

// Index maps file paths to records. It is built by one full scan and never
// changes afterwards; a fresh view of the file needs a fresh scan.
type Index struct {
	records map[string]Record
}

func newIndex() *Index {
	return &Index{records: make(map[string]Record)}
}

// add stores rec, replacing any earlier record for the same path.
func (idx *Index) add(rec Record) {
	idx.records[rec.Path] = rec
}

// Lookup returns the record for path.
func (idx *Index) Lookup(path string) (Record, bool) {
	rec, ok := idx.records[path]
	return rec, ok
}

// Contains reports whether path has a record.
func (idx *Index) Contains(path string) bool {
	_, ok := idx.records[path]
	return ok
}

// Len returns the number of distinct paths.
func (idx *Index) Len() int {
	return len(idx.records)
}

// Paths returns every indexed path in sorted order.
func (idx *Index) Paths() []string {
	paths := make([]string, 0, len(idx.records))
	for p := range idx.records {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Records returns every record sorted by path.
func (idx *Index) Records() []Record {
	out := make([]Record, 0, len(idx.records))
	for _, p := range idx.Paths() {
		out = append(out, idx.records[p])
	}
	return out
}
