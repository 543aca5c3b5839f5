package cmuscache

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixtureRecord describes one record for cacheBuilder. A non-zero size
// overrides the computed record length.
type fixtureRecord struct {
	path     string
	duration int32
	mtime    int32
	tags     [][2]string
	size     int32
}

// cacheBuilder writes cache files the way cmus lays them out.
type cacheBuilder struct {
	flags   uint32
	records []fixtureRecord
	trailer []byte
	// noPadLast leaves the last record unpadded.
	noPadLast bool
}

func (b *cacheBuilder) add(r fixtureRecord) *cacheBuilder {
	b.records = append(b.records, r)
	return b
}

func (b *cacheBuilder) align() int {
	if b.flags&FlagAlign8 != 0 {
		return 8
	}
	return 4
}

func encodeRecord(r fixtureRecord) []byte {
	body := append([]byte(r.path), 0)
	for _, kv := range r.tags {
		body = append(body, kv[0]...)
		body = append(body, 0)
		body = append(body, kv[1]...)
		body = append(body, 0)
	}

	size := int32(recordHeaderSize + len(body))
	if r.size != 0 {
		size = r.size
	}

	buf := make([]byte, recordHeaderSize, recordHeaderSize+len(body))
	binary.NativeEndian.PutUint32(buf[0:4], uint32(size))
	binary.NativeEndian.PutUint32(buf[4:8], uint32(r.duration))
	binary.NativeEndian.PutUint32(buf[8:12], uint32(r.mtime))
	return append(buf, body...)
}

func (b *cacheBuilder) bytes() []byte {
	out := []byte(Magic)
	out = binary.LittleEndian.AppendUint32(out, b.flags)

	align := b.align()
	for i, r := range b.records {
		out = append(out, encodeRecord(r)...)
		if b.noPadLast && i == len(b.records)-1 {
			break
		}
		for (len(out)-HeaderSize)%align != 0 {
			out = append(out, 0)
		}
	}
	return append(out, b.trailer...)
}

// write stores the cache in a fresh temporary directory and returns its path.
func (b *cacheBuilder) write(t *testing.T) string {
	t.Helper()
	return writeFile(t, FileName, b.bytes())
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// scan collects every record and the final error.
func scan(t *testing.T, c *Cache) ([]Record, error) {
	t.Helper()
	var recs []Record
	it := c.Iter()
	for it.Next() {
		recs = append(recs, it.Record())
	}
	return recs, it.Err()
}
