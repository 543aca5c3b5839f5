package cmuscache

import (
	"os"
	"strconv"

	"github.com/dhowden/tag"
	"github.com/pkg/errors"
)

// TagDiff is one tag whose cached value differs from the audio file.
type TagDiff struct {
	Key    string
	Cached string
	File   string
}

// CompareTags compares the cached artist, album, title, albumartist, genre
// and tracknumber of rec with the tags read from the audio file. Keys that
// are empty on both sides are not reported.
func CompareTags(rec Record, m tag.Metadata) []TagDiff {
	track, _ := m.Track()
	fileTrack := ""
	if track > 0 {
		fileTrack = strconv.Itoa(track)
	}
	cachedTrack := ""
	if rec.TrackNumber > 0 {
		cachedTrack = strconv.Itoa(rec.TrackNumber)
	}

	pairs := []TagDiff{
		{Key: "artist", Cached: rec.Tag("artist"), File: m.Artist()},
		{Key: "album", Cached: rec.Tag("album"), File: m.Album()},
		{Key: "title", Cached: rec.Tag("title"), File: m.Title()},
		{Key: "albumartist", Cached: rec.Tag("albumartist"), File: m.AlbumArtist()},
		{Key: "genre", Cached: rec.Tag("genre"), File: m.Genre()},
		{Key: TrackNumberKey, Cached: cachedTrack, File: fileTrack},
	}

	var diffs []TagDiff
	for _, p := range pairs {
		if p.Cached != p.File {
			diffs = append(diffs, p)
		}
	}
	return diffs
}

// VerifyFile reads the tags of the audio file at rec.Path and compares
// them with the cached record.
func VerifyFile(rec Record) ([]TagDiff, error) {
	f, err := os.Open(rec.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", rec.Path)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read tags from %s", rec.Path)
	}
	return CompareTags(rec, m), nil
}
