package cmuscache

import (
	"strconv"
	"strings"
)

// TrackNumberKey is the only tag whose value is also decoded as an integer.
const TrackNumberKey = "tracknumber"

// Record is one decoded track entry. Records are built once per decode and
// must be treated as read-only; Tags is shared with the Index that holds
// the record.
type Record struct {
	Path     string
	Offset   int64 // Byte offset of the record in the cache file
	Size     int32 // Declared length, header through last tag, without padding
	Duration int32 // Seconds
	Mtime    int32 // Seconds since the epoch

	// Tags holds every key/value pair of the record as stored, including
	// the raw tracknumber text.
	Tags map[string]string

	// TrackNumber is tracknumber parsed as an integer, 0 when absent or
	// not a number.
	TrackNumber int
}

// Tag returns the value stored for key, or "" when absent.
func (r Record) Tag(key string) string {
	return r.Tags[key]
}

// Artist returns the artist tag.
func (r Record) Artist() string { return r.Tags["artist"] }

// Album returns the album tag.
func (r Record) Album() string { return r.Tags["album"] }

// Title returns the title tag.
func (r Record) Title() string { return r.Tags["title"] }

// parseTrackNumber coerces a tracknumber value, defaulting to 0. Surrounding
// whitespace is ignored.
func parseTrackNumber(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}
