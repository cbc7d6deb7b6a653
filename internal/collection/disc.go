package collection

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/llehouerou/musicshelf/internal/diag"
)

// ScanDisc reads one track-bearing directory into a CD. Audio files become
// tracks, metadata files are collected and anything else is reported and
// dropped. CDNo is left at 0; the caller derives it from the directory name.
func ScanDisc(dir string, conv Conventions, sink diag.Sink) (*CD, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []fs.DirEntry
	for _, e := range entries {
		if isDir(dir, e) {
			if !conv.Skip(e.Name()) {
				sink.Report(diag.Event{Kind: diag.KindUnhandledFile, Path: filepath.Join(dir, e.Name()), Detail: "directory inside disc"})
			}
			continue
		}
		files = append(files, e)
	}
	cd := &CD{Path: dir}
	cd.Tracks, cd.MetaFiles = scanFiles(dir, files, conv, sink)
	checkArtists(dir, cd.Tracks, sink)
	return cd, nil
}

// scanFiles classifies files in name order. os.ReadDir already sorts, but
// callers may pass filtered subsets so the order is enforced here too.
func scanFiles(dir string, files []fs.DirEntry, conv Conventions, sink diag.Sink) (tracks []*Track, meta []string) {
	sorted := make([]fs.DirEntry, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name() < sorted[j].Name() })

	for _, e := range sorted {
		name := e.Name()
		path := filepath.Join(dir, name)
		switch {
		case conv.IsAudio(name):
			t := newTrack(path, name, sink)
			t.Size = fileSize(path, e)
			tracks = append(tracks, t)
		case conv.IsMeta(name):
			meta = append(meta, path)
		default:
			sink.Report(diag.Event{Kind: diag.KindUnknownFileType, Path: path, Detail: fileExt(name)})
		}
	}
	return tracks, meta
}

// newTrack builds a track from the file name, falling back to an empty
// track carrying only the real extension when no naming rule matches.
func newTrack(path, name string, sink diag.Sink) *Track {
	p, ok := ParseFilename(name)
	if !ok {
		sink.Report(diag.Event{Kind: diag.KindUnrecognizedFilename, Path: path})
		return &Track{FileExt: fileExt(name), Path: path}
	}
	return &Track{
		TrackNo: p.TrackNo,
		Artist:  p.Artist,
		Name:    p.Title,
		FileExt: p.Ext,
		Path:    path,
	}
}

// checkArtists reports discs whose parsed tracks name more than one artist.
// Tracks without a parsed artist are not counted.
func checkArtists(dir string, tracks []*Track, sink diag.Sink) {
	seen := make(map[string]bool)
	var artists []string
	for _, t := range tracks {
		if t.Artist == "" || seen[t.Artist] {
			continue
		}
		seen[t.Artist] = true
		artists = append(artists, t.Artist)
	}
	if len(artists) > 1 {
		sort.Strings(artists)
		sink.Report(diag.Event{Kind: diag.KindMultiArtistDisc, Path: dir, Detail: strings.Join(artists, ", ")})
	}
}

// fileSize returns the size of the file behind e, following symlinks. It is 0
// if the file vanished since the listing or the link is dangling.
func fileSize(path string, e fs.DirEntry) int64 {
	var info fs.FileInfo
	var err error
	if e.Type()&fs.ModeSymlink != 0 {
		info, err = os.Stat(path)
	} else {
		info, err = e.Info()
	}
	if err != nil {
		return 0
	}
	return info.Size()
}

// isDir follows symlinks so linked album or disc directories are walked.
func isDir(parent string, e fs.DirEntry) bool {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.IsDir()
	}
	info, err := os.Stat(filepath.Join(parent, e.Name()))
	return err == nil && info.IsDir()
}
