// Package cmuscache reads the track metadata cache that cmus keeps in
// <config-dir>/cache.
//
// # File Layout
//
//	offset 0  magic   "CTC\x01"
//	offset 4  flags   uint32, little-endian
//	                  bit 0: records padded to 8 bytes instead of 4
//	                  bit 1: writer was big-endian (not honored)
//	offset 8  records
//
// Each record is three int32s in native byte order (size, duration,
// mtime), a NUL-terminated path, then NUL-terminated key/value pairs up to
// size bytes from the start of the record, then padding to the next
// multiple of the alignment.
//
// # Basic Usage
//
//	cache, err := cmuscache.Open(cmuscache.DefaultPath(dir))
//	if err != nil {
//	    return err
//	}
//	defer cache.Close()
//
//	idx, err := cache.BuildIndex()
//	if err != nil {
//	    return err
//	}
//	if rec, ok := idx.Lookup("/music/a.flac"); ok {
//	    fmt.Println(rec.Artist(), rec.Title(), rec.Duration)
//	}
//
// The cache is read-only and is not locked against cmus writing it; a scan
// that races with a rewrite may see garbage record boundaries.
package cmuscache
