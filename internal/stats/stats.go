// Package stats computes aggregate figures over a scanned library.
package stats

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/llehouerou/musicshelf/internal/collection"
)

const (
	bytesPerMB = 1 << 20
	bytesPerGB = 1 << 30
)

// Report holds the statistics of a library.
type Report struct {
	ArtistCount int `json:"artist_count" yaml:"artist_count"`
	AlbumCount  int `json:"album_count" yaml:"album_count"`
	CDCount     int `json:"cd_count" yaml:"cd_count"`
	TrackCount  int `json:"track_count" yaml:"track_count"`

	// FilesByExtension counts tracks and meta files at every level.
	FilesByExtension map[string]int `json:"files_by_extension" yaml:"files_by_extension"`

	// CDsPerAlbum maps a disc count to the number of albums having it.
	CDsPerAlbum map[int]int `json:"cds_per_album" yaml:"cds_per_album"`

	// Duration is nil when no track has a known length.
	Duration *DurationStats `json:"duration,omitempty" yaml:"duration,omitempty"`

	// Size is nil for a library without tracks.
	Size *SizeStats `json:"size,omitempty" yaml:"size,omitempty"`

	// BitrateHistogram maps kbps to the number of tracks, for bitrates that
	// are a positive multiple of 1000 bits/s.
	BitrateHistogram map[int]int `json:"bitrate_histogram" yaml:"bitrate_histogram"`

	// HomogeneousBitrates maps a bitrate in bits/s to the number of albums
	// whose tracks all share it. Albums with several distinct bitrates are
	// counted in HeterogeneousAlbums; albums without any known bitrate are in
	// neither.
	HomogeneousBitrates map[int]int `json:"homogeneous_bitrates" yaml:"homogeneous_bitrates"`
	HeterogeneousAlbums int         `json:"heterogeneous_albums" yaml:"heterogeneous_albums"`
}

// DurationStats is computed over tracks with a positive length.
type DurationStats struct {
	TotalHours  float64 `json:"total_hours" yaml:"total_hours"`
	MinSeconds  float64 `json:"min_seconds" yaml:"min_seconds"`
	MaxMinutes  float64 `json:"max_minutes" yaml:"max_minutes"`
	MeanMinutes float64 `json:"mean_minutes" yaml:"mean_minutes"`
}

// SizeStats is computed over all tracks. Units are binary (1 MB = 2^20 bytes).
type SizeStats struct {
	TotalBytes int64   `json:"total_bytes" yaml:"total_bytes"`
	TotalGB    float64 `json:"total_gb" yaml:"total_gb"`
	MinMB      float64 `json:"min_mb" yaml:"min_mb"`
	MaxMB      float64 `json:"max_mb" yaml:"max_mb"`
	MeanMB     float64 `json:"mean_mb" yaml:"mean_mb"`
}

// Compute walks lib once and returns its statistics. lib is not modified.
func Compute(lib *collection.Library) Report {
	r := Report{
		ArtistCount:         len(lib.Artists),
		FilesByExtension:    make(map[string]int),
		CDsPerAlbum:         make(map[int]int),
		BitrateHistogram:    make(map[int]int),
		HomogeneousBitrates: make(map[int]int),
	}

	var lengths durationAcc
	var sizes sizeAcc

	for _, name := range lib.ArtistNames() {
		artist := lib.Artists[name]
		r.AlbumCount += len(artist.Albums)
		r.countMeta(artist.MetaFiles)

		for _, album := range artist.Albums {
			r.CDsPerAlbum[len(album.CDs)]++
			r.CDCount += len(album.CDs)
			r.countMeta(album.MetaFiles)

			bitrates := make(map[int]bool)
			for _, cd := range album.CDs {
				r.countMeta(cd.MetaFiles)
				for _, t := range cd.Tracks {
					r.TrackCount++
					r.FilesByExtension[t.FileExt]++
					lengths.add(t.Length)
					sizes.add(t.Size)
					if t.Bitrate > 0 {
						bitrates[t.Bitrate] = true
						if t.Bitrate%1000 == 0 {
							r.BitrateHistogram[t.Bitrate/1000]++
						}
					}
				}
			}

			switch {
			case len(bitrates) == 1:
				for br := range bitrates {
					r.HomogeneousBitrates[br]++
				}
			case len(bitrates) > 1:
				r.HeterogeneousAlbums++
			}
		}
	}

	r.Duration = lengths.stats()
	r.Size = sizes.stats()
	return r
}

func (r *Report) countMeta(paths []string) {
	for _, p := range paths {
		r.FilesByExtension[strings.ToLower(filepath.Ext(p))]++
	}
}

type durationAcc struct {
	n              int
	total          time.Duration
	minLen, maxLen time.Duration
}

func (a *durationAcc) add(d time.Duration) {
	if d <= 0 {
		return
	}
	if a.n == 0 || d < a.minLen {
		a.minLen = d
	}
	if d > a.maxLen {
		a.maxLen = d
	}
	a.total += d
	a.n++
}

func (a *durationAcc) stats() *DurationStats {
	if a.n == 0 {
		return nil
	}
	return &DurationStats{
		TotalHours:  a.total.Hours(),
		MinSeconds:  a.minLen.Seconds(),
		MaxMinutes:  a.maxLen.Minutes(),
		MeanMinutes: a.total.Minutes() / float64(a.n),
	}
}

type sizeAcc struct {
	n                int
	total            int64
	minSize, maxSize int64
}

func (a *sizeAcc) add(size int64) {
	if a.n == 0 || size < a.minSize {
		a.minSize = size
	}
	if size > a.maxSize {
		a.maxSize = size
	}
	a.total += size
	a.n++
}

func (a *sizeAcc) stats() *SizeStats {
	if a.n == 0 {
		return nil
	}
	return &SizeStats{
		TotalBytes: a.total,
		TotalGB:    float64(a.total) / bytesPerGB,
		MinMB:      float64(a.minSize) / bytesPerMB,
		MaxMB:      float64(a.maxSize) / bytesPerMB,
		MeanMB:     float64(a.total) / float64(a.n) / bytesPerMB,
	}
}
