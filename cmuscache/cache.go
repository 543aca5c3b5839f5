package cmuscache

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// File layout constants.
const (
	// Magic is the four-byte signature at offset 0.
	Magic = "CTC\x01"

	// HeaderSize is the size of magic plus flags.
	HeaderSize = 8

	// recordHeaderSize is size, duration and mtime as three int32s.
	recordHeaderSize = 12

	// minRecordSize is a record header plus an empty, terminated path.
	minRecordSize = recordHeaderSize + 1

	// FileName is the cache file name inside the configuration directory.
	FileName = "cache"
)

// Header flag bits.
const (
	// FlagAlign8 pads records to 8 bytes instead of 4.
	FlagAlign8 uint32 = 1 << 0

	// FlagBigEndian marks the writer as big-endian. The decoder does not
	// honor it: record integers are always read in native byte order.
	FlagBigEndian uint32 = 1 << 1
)

// Header is the fixed eight-byte cache header.
type Header struct {
	Magic [4]byte
	Flags uint32 // little-endian on disk
}

// Alignment returns the record padding modulus, 4 or 8.
func (h Header) Alignment() int64 {
	if h.Flags&FlagAlign8 != 0 {
		return 8
	}
	return 4
}

// BigEndian reports the declared byte order flag.
func (h Header) BigEndian() bool {
	return h.Flags&FlagBigEndian != 0
}

// DefaultPath returns <config-dir>/cache for the given cmus configuration
// directory.
func DefaultPath(configDir string) string {
	return filepath.Join(configDir, FileName)
}

// Cache is an opened cache file. It decodes records on demand; nothing is
// read until Iter, All or BuildIndex is called.
type Cache struct {
	path   string
	data   []byte
	mapped bool
	header Header
	log    *zap.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger used for scan diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(c *Cache) {
		if log != nil {
			c.log = log
		}
	}
}

// Open maps the cache file at path read-only and validates its header.
//
// A missing file is not an error: cmus has not written a cache yet, so the
// returned Cache holds no records. A file that does not start with Magic
// fails with a *FormatError wrapping ErrBadMagic.
func Open(path string, opts ...Option) (*Cache, error) {
	c := newCache(path, opts)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.log.Debug("cache file absent", zap.String("path", path))
			return c, nil
		}
		return nil, errors.Wrapf(err, "open cache %s", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "stat cache %s", path)
	}
	if info.Size() < HeaderSize {
		return nil, &FormatError{Reason: fmt.Sprintf("%d bytes", info.Size()), Err: ErrShortFile}
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap cache %s", path)
	}
	if err := c.load(data); err != nil {
		unix.Munmap(data)
		return nil, err
	}
	c.mapped = true
	return c, nil
}

// Parse wraps an in-memory copy of a cache file.
func Parse(data []byte, opts ...Option) (*Cache, error) {
	c := newCache("", opts)
	if len(data) < HeaderSize {
		return nil, &FormatError{Reason: fmt.Sprintf("%d bytes", len(data)), Err: ErrShortFile}
	}
	if err := c.load(data); err != nil {
		return nil, err
	}
	return c, nil
}

func newCache(path string, opts []Option) *Cache {
	c := &Cache{path: path, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) load(data []byte) error {
	var h Header
	copy(h.Magic[:], data[:4])
	if string(h.Magic[:]) != Magic {
		return &FormatError{Reason: fmt.Sprintf("%q", h.Magic[:]), Err: ErrBadMagic}
	}
	h.Flags = binary.LittleEndian.Uint32(data[4:8])

	c.data = data
	c.header = h
	if h.BigEndian() {
		c.log.Debug("big-endian flag set; decoding in native order", zap.String("path", c.path))
	}
	return nil
}

// Path returns the file the cache was opened from.
func (c *Cache) Path() string {
	return c.path
}

// Header returns the decoded file header. It is zero for a missing file.
func (c *Cache) Header() Header {
	return c.header
}

// Empty reports whether the cache holds no record data, as for a missing
// file.
func (c *Cache) Empty() bool {
	return len(c.data) <= HeaderSize
}

// Size returns the file size in bytes.
func (c *Cache) Size() int64 {
	return int64(len(c.data))
}

// Close unmaps the file. Iterators created earlier stop yielding records.
func (c *Cache) Close() error {
	data := c.data
	c.data = nil
	if !c.mapped || data == nil {
		return nil
	}
	c.mapped = false
	return errors.Wrap(unix.Munmap(data), "munmap cache")
}

// BuildIndex scans every record and returns the resulting Index. When a
// path occurs more than once, the last record scanned wins.
func (c *Cache) BuildIndex() (*Index, error) {
	idx := newIndex()
	it := c.Iter()
	scanned := 0
	for it.Next() {
		idx.add(it.Record())
		scanned++
	}
	if err := it.Err(); err != nil {
		return nil, err
	}

	c.log.Debug("cache indexed",
		zap.String("path", c.path),
		zap.Int("records", scanned),
		zap.Int("unique", idx.Len()))
	return idx, nil
}

// Load opens the cache at path, builds its index and closes it again.
func Load(path string, opts ...Option) (*Index, error) {
	c, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return c.BuildIndex()
}
