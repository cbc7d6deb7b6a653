package collection

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/llehouerou/musicshelf/internal/diag"
)

// Structure anomaly details.
const (
	AnomalyEmptyAlbum      = "no audio and no subdirectory"
	AnomalyAudioAndDir     = "audio and subdirectory both present"
	AnomalyDuplicateArtist = "artist present in several letter buckets"
)

var (
	reDiscName  = regexp.MustCompile(`(?i)^cd\s?(\d)`)
	reAlbumYear = regexp.MustCompile(`^(\d{4}) - (.+)$`)
)

type walker struct {
	conv Conventions
	sink diag.Sink
	lib  *Library
}

// Walk scans root as letter/artist/album[/disc] and returns the library.
// Everything below the root is best-effort: problems are reported to sink
// and the walk continues. Only an unreadable root is returned as an error.
func Walk(root string, conv Conventions, sink diag.Sink) (*Library, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read library root: %w", err)
	}
	w := &walker{conv: conv, sink: sink, lib: NewLibrary(root)}
	for _, e := range entries {
		path := filepath.Join(root, e.Name())
		if !isDir(root, e) {
			w.unhandled(path, "file at library root")
			continue
		}
		if conv.Skip(e.Name()) {
			continue
		}
		w.walkLetter(path)
	}
	return w.lib, nil
}

func (w *walker) walkLetter(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.unreadable(dir, err)
		return
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if !isDir(dir, e) {
			w.unhandled(path, "file in letter bucket")
			continue
		}
		if w.conv.Skip(e.Name()) {
			continue
		}
		w.walkArtist(path, e.Name())
	}
}

func (w *walker) walkArtist(dir, name string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.unreadable(dir, err)
		return
	}

	artist, exists := w.lib.Artists[name]
	if exists {
		w.sink.Report(diag.Event{Kind: diag.KindStructureAnomaly, Path: dir, Detail: AnomalyDuplicateArtist})
	} else {
		artist = &Artist{Name: name, Path: dir}
		w.lib.Artists[name] = artist
	}

	for _, e := range entries {
		if !isDir(dir, e) || w.conv.Skip(e.Name()) {
			continue
		}
		if album := w.scanAlbum(filepath.Join(dir, e.Name())); album != nil {
			artist.Albums = append(artist.Albums, album)
		}
	}

	for _, e := range entries {
		if isDir(dir, e) {
			continue
		}
		if w.conv.IsMeta(e.Name()) {
			artist.MetaFiles = append(artist.MetaFiles, e.Name())
			continue
		}
		w.unhandled(filepath.Join(dir, e.Name()), "file in artist directory")
	}
}

// scanAlbum reads one album directory. Albums with disc subdirectories get one
// CD per subdirectory; flat albums get a single synthetic CD. Audio files lying
// next to disc subdirectories are kept in an extra CD numbered 0 instead of
// being dropped.
func (w *walker) scanAlbum(dir string) *Album {
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.unreadable(dir, err)
		return nil
	}

	album := &Album{Path: dir}
	album.Name, album.Year = splitAlbumName(filepath.Base(dir))

	var foundAudio, foundDir bool
	var files []os.DirEntry
	for _, e := range entries {
		if isDir(dir, e) {
			if !w.conv.Skip(e.Name()) {
				foundDir = true
			}
			continue
		}
		files = append(files, e)
		if w.conv.IsAudio(e.Name()) {
			foundAudio = true
		}
	}
	switch {
	case !foundAudio && !foundDir:
		w.sink.Report(diag.Event{Kind: diag.KindStructureAnomaly, Path: dir, Detail: AnomalyEmptyAlbum})
	case foundAudio && foundDir:
		w.sink.Report(diag.Event{Kind: diag.KindStructureAnomaly, Path: dir, Detail: AnomalyAudioAndDir})
	}

	if !foundDir {
		cd := &CD{Path: dir}
		cd.Tracks, album.MetaFiles = scanFiles(dir, files, w.conv, w.sink)
		checkArtists(dir, cd.Tracks, w.sink)
		album.CDs = []*CD{cd}
		return album
	}

	var loose []os.DirEntry
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		switch {
		case isDir(dir, e):
			if w.conv.Skip(e.Name()) {
				continue
			}
			cd, err := ScanDisc(path, w.conv, w.sink)
			if err != nil {
				w.unreadable(path, err)
				continue
			}
			cd.CDNo = w.discNumber(path, e.Name())
			album.CDs = append(album.CDs, cd)
		case w.conv.IsMeta(e.Name()):
			album.MetaFiles = append(album.MetaFiles, path)
		case w.conv.IsAudio(e.Name()):
			loose = append(loose, e)
		default:
			w.sink.Report(diag.Event{Kind: diag.KindUnknownFileType, Path: path, Detail: "unknown meta file"})
		}
	}
	if len(loose) > 0 {
		cd := &CD{Path: dir}
		cd.Tracks, _ = scanFiles(dir, loose, w.conv, w.sink)
		checkArtists(dir, cd.Tracks, w.sink)
		album.CDs = append(album.CDs, cd)
	}
	return album
}

// discNumber derives the CD number from a "cd N" directory name, reporting
// and returning 0 when the name does not follow the convention.
func (w *walker) discNumber(path, name string) int {
	m := reDiscName.FindStringSubmatch(name)
	if m == nil {
		w.sink.Report(diag.Event{Kind: diag.KindUnrecognizedDiscName, Path: path})
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

func (w *walker) unhandled(path, detail string) {
	w.sink.Report(diag.Event{Kind: diag.KindUnhandledFile, Path: path, Detail: detail})
}

func (w *walker) unreadable(path string, err error) {
	w.sink.Report(diag.Event{Kind: diag.KindUnhandledFile, Path: path, Detail: "unreadable directory", Err: err})
}

// splitAlbumName splits "YYYY - Name" into name and year. Other names are
// returned whole with an empty year.
func splitAlbumName(dirName string) (name, year string) {
	if m := reAlbumYear.FindStringSubmatch(dirName); m != nil {
		return m[2], m[1]
	}
	return dirName, ""
}
