// Package report renders library statistics for the terminal or for other
// programs.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/llehouerou/musicshelf/internal/collection"
	"github.com/llehouerou/musicshelf/internal/config"
	"github.com/llehouerou/musicshelf/internal/diag"
	"github.com/llehouerou/musicshelf/internal/stats"
)

// Options controls what is rendered.
type Options struct {
	Format      string           // one of the config.Format* values; "" means text
	Tree        bool             // include the artist/album listing
	Diagnostics map[diag.Kind]int // event counts, omitted when empty
}

// Document is the machine-readable form of a report.
type Document struct {
	Root        string            `json:"root" yaml:"root"`
	Stats       stats.Report      `json:"stats" yaml:"stats"`
	Diagnostics map[diag.Kind]int `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Artists     []ArtistEntry     `json:"artists,omitempty" yaml:"artists,omitempty"`
}

// ArtistEntry summarizes one artist for the tree listing.
type ArtistEntry struct {
	Name   string       `json:"name" yaml:"name"`
	Albums []AlbumEntry `json:"albums" yaml:"albums"`
}

// AlbumEntry summarizes one album for the tree listing.
type AlbumEntry struct {
	Name   string `json:"name" yaml:"name"`
	Year   string `json:"year,omitempty" yaml:"year,omitempty"`
	CDs    int    `json:"cds" yaml:"cds"`
	Tracks int    `json:"tracks" yaml:"tracks"`
}

// Render writes the report for lib in the requested format.
func Render(w io.Writer, lib *collection.Library, rep stats.Report, opts Options) error {
	switch opts.Format {
	case config.FormatText, "":
		return renderText(w, lib, rep, opts)
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newDocument(lib, rep, opts))
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newDocument(lib, rep, opts)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", opts.Format)
}

func newDocument(lib *collection.Library, rep stats.Report, opts Options) Document {
	doc := Document{Root: lib.Root, Stats: rep}
	if len(opts.Diagnostics) > 0 {
		doc.Diagnostics = opts.Diagnostics
	}
	if opts.Tree {
		doc.Artists = tree(lib)
	}
	return doc
}

func tree(lib *collection.Library) []ArtistEntry {
	entries := make([]ArtistEntry, 0, len(lib.Artists))
	for _, name := range lib.ArtistNames() {
		artist := lib.Artists[name]
		entry := ArtistEntry{Name: name, Albums: make([]AlbumEntry, 0, len(artist.Albums))}
		for _, a := range artist.Albums {
			entry.Albums = append(entry.Albums, AlbumEntry{
				Name:   a.Name,
				Year:   a.Year,
				CDs:    len(a.CDs),
				Tracks: a.TrackCount(),
			})
		}
		entries = append(entries, entry)
	}
	return entries
}
