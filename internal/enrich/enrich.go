// Package enrich fills in track durations and bitrates by reading each audio
// file through the tag reader registered for its extension.
package enrich

import (
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/musicshelf/internal/collection"
	"github.com/llehouerou/musicshelf/internal/diag"
	"github.com/llehouerou/musicshelf/internal/tags"
)

// NoTextTags is the MissingTrackInfo detail for a backfill that found a
// readable file without any title, artist or track number.
const NoTextTags = "no text tags"

// Options configures an Enricher. Zero values select the defaults.
type Options struct {
	// Readers maps lower-case extensions to readers. Defaults to
	// tags.DefaultReaders().
	Readers map[string]tags.Reader

	// Backfill reads text tags for tracks whose file name could not be
	// parsed and fills Artist, Name and TrackNo from them.
	Backfill bool

	// ReadText reads text tags. Defaults to tags.ReadText.
	ReadText func(path string) (tags.Text, error)

	// Workers bounds the number of files read concurrently. Values below 2
	// read sequentially.
	Workers int
}

// Enricher mutates tracks in place. Every failure is per-track and reported
// to the sink; Enrich never fails as a whole.
type Enricher struct {
	readers  map[string]tags.Reader
	backfill bool
	readText func(path string) (tags.Text, error)
	workers  int
	sink     diag.Sink
}

// New creates an Enricher.
func New(opts Options, sink diag.Sink) *Enricher {
	e := &Enricher{
		readers:  opts.Readers,
		backfill: opts.Backfill,
		readText: opts.ReadText,
		workers:  opts.Workers,
		sink:     sink,
	}
	if e.readers == nil {
		e.readers = tags.DefaultReaders()
	}
	if e.readText == nil {
		e.readText = tags.ReadText
	}
	return e
}

// Enrich reads audio properties for every track of lib. Each worker owns the
// track it is given, so tracks are never written concurrently.
func (e *Enricher) Enrich(lib *collection.Library) {
	var tracks []*collection.Track
	lib.EachTrack(func(t *collection.Track) {
		tracks = append(tracks, t)
	})

	if e.workers < 2 {
		for _, t := range tracks {
			e.enrichTrack(t)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(e.workers)
	for _, t := range tracks {
		g.Go(func() error {
			e.enrichTrack(t)
			return nil
		})
	}
	_ = g.Wait()
}

func (e *Enricher) enrichTrack(t *collection.Track) {
	reader, known := tags.ReaderFor(e.readers, t.FileExt)
	info, err := reader.ReadAudioInfo(t.Path)
	if err != nil {
		t.Length, t.Bitrate = 0, 0
		e.sink.Report(diag.Event{Kind: diag.KindTagReadFailure, Path: t.Path, Err: err})
	} else {
		t.Length, t.Bitrate = info.Duration, info.Bitrate
		if known && (info.Duration <= 0 || info.Bitrate <= 0) {
			e.sink.Report(diag.Event{Kind: diag.KindMissingTrackInfo, Path: t.Path})
		}
	}

	if e.backfill && t.Artist == "" && t.Name == "" {
		e.backfillText(t)
	}
}

// backfillText copies text tags into a track whose file name did not parse.
func (e *Enricher) backfillText(t *collection.Track) {
	text, err := e.readText(t.Path)
	if err != nil {
		e.sink.Report(diag.Event{Kind: diag.KindTagReadFailure, Path: t.Path, Detail: "text tags", Err: err})
		return
	}
	if text.Empty() {
		e.sink.Report(diag.Event{Kind: diag.KindMissingTrackInfo, Path: t.Path, Detail: NoTextTags})
		return
	}
	t.Artist = text.Artist
	t.Name = text.Title
	if t.TrackNo == 0 {
		t.TrackNo = text.TrackNumber
	}
}
