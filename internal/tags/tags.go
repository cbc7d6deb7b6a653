// Package tags reads audio stream properties (duration, bitrate) and basic
// text tags from music files. Each supported audio format has its own Reader,
// selected by file extension.
package tags

import (
	"strconv"
	"strings"
	"time"
)

// File extensions with a dedicated reader.
const (
	ExtMP3 = ".mp3"
	ExtOGG = ".ogg"
	ExtAPE = ".ape"
	ExtMPC = ".mpc"
	ExtWMA = ".wma"
)

// AudioInfo contains audio stream properties (not tags).
type AudioInfo struct {
	Duration time.Duration
	Bitrate  int // bits per second
}

// Text contains the text tags used to fill in tracks whose file name could
// not be parsed.
type Text struct {
	Title       string
	Artist      string
	TrackNumber int
}

// Empty reports whether no field was found.
func (t Text) Empty() bool {
	return t.Title == "" && t.Artist == "" && t.TrackNumber == 0
}

// taglibTags wraps a taglib result map with helper methods.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string if not found.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// parseTrackNumber parses a track number string like "5" or "5/10".
func parseTrackNumber(s string) (num, total int) {
	if s == "" {
		return 0, 0
	}
	parts := strings.SplitN(s, "/", 2)
	num, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	if len(parts) == 2 {
		total, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return num, total
}
