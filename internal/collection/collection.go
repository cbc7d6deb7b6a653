// Package collection turns an on-disk music tree laid out as
// letter/artist/album[/disc] into a typed in-memory model.
//
// The walk is tolerant: malformed file names, unknown file types and irregular
// album layouts are reported to a diag.Sink and the scan carries on. Only an
// unreadable root directory is returned as an error.
package collection

import (
	"sort"
	"time"
)

// Track is one audio file. Artist and Name are empty when the file name did
// not match any naming pattern.
type Track struct {
	TrackNo int
	Artist  string
	Name    string
	FileExt string // lower-case, with leading dot
	Path    string
	Size    int64

	// Filled in by the tag enricher.
	Length  time.Duration
	Bitrate int // bits per second
}

// CD is one disc of an album. Flat albums get a single synthetic CD with
// CDNo 0.
type CD struct {
	CDNo      int
	Path      string
	Tracks    []*Track // sorted by file name
	MetaFiles []string
}

// Album is one album directory. Year is empty unless the directory name
// follows the "YYYY - Name" convention.
type Album struct {
	Name      string
	Year      string
	Path      string
	CDs       []*CD
	MetaFiles []string
}

// TrackCount returns the number of tracks over all CDs.
func (a *Album) TrackCount() int {
	n := 0
	for _, cd := range a.CDs {
		n += len(cd.Tracks)
	}
	return n
}

// Artist is one artist directory. MetaFiles holds base names only.
type Artist struct {
	Name      string
	Path      string
	Albums    []*Album
	MetaFiles []string
}

// Library is the root of the model, keyed by artist directory name.
type Library struct {
	Root    string
	Artists map[string]*Artist
}

// NewLibrary returns an empty library rooted at root.
func NewLibrary(root string) *Library {
	return &Library{Root: root, Artists: make(map[string]*Artist)}
}

// ArtistNames returns the artist names in sorted order.
func (l *Library) ArtistNames() []string {
	names := make([]string, 0, len(l.Artists))
	for name := range l.Artists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EachTrack calls fn for every track in artist-name order, then album,
// CD and track order.
func (l *Library) EachTrack(fn func(t *Track)) {
	for _, name := range l.ArtistNames() {
		for _, album := range l.Artists[name].Albums {
			for _, cd := range album.CDs {
				for _, t := range cd.Tracks {
					fn(t)
				}
			}
		}
	}
}
