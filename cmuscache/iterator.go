package cmuscache

import (
	"bytes"
	"encoding/binary"
	"iter"
)

// Iterator walks the records of a Cache in file order.
//
//	it := cache.Iter()
//	for it.Next() {
//	    rec := it.Record()
//	    ...
//	}
//	if err := it.Err(); err != nil {
//	    ...
//	}
type Iterator struct {
	cache *Cache
	off   int64
	rec   Record
	err   error
	done  bool
}

// Iter starts a new scan at the first record. Every call restarts from the
// byte after the header.
func (c *Cache) Iter() *Iterator {
	return &Iterator{cache: c, off: HeaderSize}
}

// All returns the records as a range-over-func sequence. A decode error is
// yielded once, as the last element, with a zero Record.
func (c *Cache) All() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		it := c.Iter()
		for it.Next() {
			if !yield(it.Record(), nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			yield(Record{}, err)
		}
	}
}

// Next decodes the next record. It returns false at the end of the data or
// after a decode error; check Err to tell them apart.
//
// The scan ends cleanly when fewer than a record header's worth of bytes
// remain, or when the padded end of the record just returned lies beyond
// the end of the file.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}

	data := it.cache.data
	start := it.off
	if start+recordHeaderSize > int64(len(data)) {
		it.done = true
		return false
	}

	rec, err := decodeRecord(data, start)
	if err != nil {
		it.err = err
		it.done = true
		return false
	}

	next := start + paddedSize(int64(rec.Size), it.cache.header.Alignment())
	if next > int64(len(data)) {
		it.done = true
	} else {
		it.off = next
	}

	it.rec = rec
	return true
}

// Record returns the record decoded by the last successful Next.
func (it *Iterator) Record() Record {
	return it.rec
}

// Offset returns where the next record would start.
func (it *Iterator) Offset() int64 {
	return it.off
}

// Err returns the error that stopped the scan, if any.
func (it *Iterator) Err() error {
	return it.err
}

// paddedSize rounds size up to a multiple of align (a power of two).
func paddedSize(size, align int64) int64 {
	return (size + align - 1) &^ (align - 1)
}

// decodeRecord decodes the record at start.
//
// The three header integers are read in native byte order whatever the
// header flags say.
func decodeRecord(data []byte, start int64) (Record, error) {
	hdr := data[start : start+recordHeaderSize]
	rec := Record{
		Offset:   start,
		Size:     int32(binary.NativeEndian.Uint32(hdr[0:4])),
		Duration: int32(binary.NativeEndian.Uint32(hdr[4:8])),
		Mtime:    int32(binary.NativeEndian.Uint32(hdr[8:12])),
		Tags:     map[string]string{},
	}

	if rec.Size < minRecordSize {
		return Record{}, newCorruptRecordError(start, "declared size %d", rec.Size)
	}
	end := start + int64(rec.Size)
	if end > int64(len(data)) {
		return Record{}, newCorruptRecordError(start, "declared size %d overruns file of %d bytes", rec.Size, len(data))
	}

	path, pos, ok := cstring(data, start+recordHeaderSize, end)
	if !ok {
		return Record{}, newCorruptRecordError(start, "unterminated path")
	}
	rec.Path = path

	for pos < end {
		var key, value string
		key, pos, _ = cstring(data, pos, end)
		value, pos, _ = cstring(data, pos, end)
		rec.Tags[key] = value
		if key == TrackNumberKey {
			rec.TrackNumber = parseTrackNumber(value)
		}
	}

	return rec, nil
}

// cstring reads a NUL-terminated string starting at pos without reading
// past limit. A string that reaches limit unterminated is cut there.
func cstring(data []byte, pos, limit int64) (string, int64, bool) {
	if pos >= limit {
		return "", limit, false
	}
	i := bytes.IndexByte(data[pos:limit], 0)
	if i < 0 {
		return string(data[pos:limit]), limit, false
	}
	return string(data[pos : pos+int64(i)]), pos + int64(i) + 1, true
}
