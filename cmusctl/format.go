package main

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/cmuskit/cmuskit/cmuscache"
	"github.com/cmuskit/cmuskit/cmusprotocol"
)

// formatSeconds renders a track length as m:ss, or h:mm:ss from one hour.
func formatSeconds(secs int) string {
	if secs < 0 {
		secs = 0
	}
	h, m, s := secs/3600, secs/60%60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// optional formats an optional integer, or "-" when absent.
func optional(p *int, format func(int) string) string {
	if p == nil {
		return "-"
	}
	return format(*p)
}

// printStatus writes a status snapshot as aligned "key: value" lines.
func printStatus(w io.Writer, st cmusprotocol.Status) {
	fmt.Fprintf(w, "status:   %s\n", st.State)
	if st.File != "" {
		fmt.Fprintf(w, "file:     %s\n", st.File)
	}
	if st.Stream != "" {
		fmt.Fprintf(w, "stream:   %s\n", st.Stream)
	}
	fmt.Fprintf(w, "position: %s / %s\n",
		optional(st.Position, formatSeconds),
		optional(st.Duration, formatSeconds))

	for _, key := range []string{"artist", "album", "title"} {
		if v, ok := st.Tag(key); ok {
			fmt.Fprintf(w, "%-9s %s\n", key+":", v)
		}
	}
	if st.TrackNumber != nil {
		fmt.Fprintf(w, "track:    %d\n", *st.TrackNumber)
	}
	fmt.Fprintf(w, "volume:   %s\n", optional(st.Volume, func(v int) string {
		return fmt.Sprintf("%d%%", v)
	}))

	for _, key := range []string{"shuffle", "repeat", "repeat_current"} {
		if v, ok := st.Setting(key); ok {
			fmt.Fprintf(w, "%-9s %s\n", key+":", v)
		}
	}
}

// printRecord writes one cache record with its tags in key order.
func printRecord(w io.Writer, rec cmuscache.Record) {
	fmt.Fprintf(w, "path:     %s\n", rec.Path)
	fmt.Fprintf(w, "duration: %s\n", formatSeconds(int(rec.Duration)))
	fmt.Fprintf(w, "mtime:    %s\n", time.Unix(int64(rec.Mtime), 0).UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "offset:   %d\n", rec.Offset)

	keys := make([]string, 0, len(rec.Tags))
	for k := range rec.Tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-12s %s\n", k, rec.Tags[k])
	}
}

// printRecordLine writes one tab-separated summary line per record.
func printRecordLine(w io.Writer, rec cmuscache.Record) {
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		formatSeconds(int(rec.Duration)), rec.Artist(), rec.Album(), rec.Title(), rec.Path)
}
