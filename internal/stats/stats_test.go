package stats

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/musicshelf/internal/collection"
	"github.com/llehouerou/musicshelf/internal/diag"
)

func track(ext string, size int64, length time.Duration, bitrate int) *collection.Track {
	return &collection.Track{FileExt: ext, Size: size, Length: length, Bitrate: bitrate}
}

func album(meta []string, cds ...*collection.CD) *collection.Album {
	return &collection.Album{Name: "Album", CDs: cds, MetaFiles: meta}
}

func cd(meta []string, tracks ...*collection.Track) *collection.CD {
	return &collection.CD{Tracks: tracks, MetaFiles: meta}
}

// sampleLibrary has three artists, four albums and mixed bitrates:
//   - Alpha/One: two CDs, all tracks 320 kbps (homogeneous)
//   - Alpha/Two: 192 kbps and 128 kbps (heterogeneous)
//   - Beta/Three: no bitrate known (neither bucket)
//   - Gamma/Four: 128 kbps and 0 (homogeneous, zero ignored)
func sampleLibrary() *collection.Library {
	lib := collection.NewLibrary("/music")
	lib.Artists["Alpha"] = &collection.Artist{
		Name:      "Alpha",
		MetaFiles: []string{"alpha.jpg", "bio.TXT"},
		Albums: []*collection.Album{
			album([]string{"/m/a/one/cover.jpg"},
				cd([]string{"/m/a/one/cd1/disc.jpg"},
					track(".mp3", 4*bytesPerMB, 4*time.Minute, 320000),
					track(".mp3", 6*bytesPerMB, 6*time.Minute, 320000),
				),
				cd(nil,
					track(".mp3", 2*bytesPerMB, 30*time.Second, 320000),
				),
			),
			album(nil,
				cd(nil,
					track(".ogg", 5*bytesPerMB, 5*time.Minute, 192000),
					track(".ogg", 3*bytesPerMB, 3*time.Minute, 128000),
				),
			),
		},
	}
	lib.Artists["Beta"] = &collection.Artist{
		Name: "Beta",
		Albums: []*collection.Album{
			album([]string{"/m/b/three/info.nfo", "/m/b/three/sfv.sfv"},
				cd(nil, track(".ape", 30*bytesPerMB, 0, 0)),
			),
		},
	}
	lib.Artists["Gamma"] = &collection.Artist{
		Name: "Gamma",
		Albums: []*collection.Album{
			album(nil,
				cd(nil,
					track(".mpc", bytesPerMB, 2*time.Minute, 128000),
					track(".mpc", bytesPerMB, 0, 0),
				),
			),
		},
	}
	return lib
}

func TestComputeCounts(t *testing.T) {
	r := Compute(sampleLibrary())

	assert.Equal(t, 3, r.ArtistCount)
	assert.Equal(t, 4, r.AlbumCount)
	assert.Equal(t, 5, r.CDCount)
	assert.Equal(t, 8, r.TrackCount)
	assert.Equal(t, map[int]int{1: 3, 2: 1}, r.CDsPerAlbum)
	assert.Equal(t, map[string]int{
		".mp3": 3,
		".ogg": 2,
		".ape": 1,
		".mpc": 2,
		".jpg": 3,
		".txt": 1,
		".nfo": 1,
		".sfv": 1,
	}, r.FilesByExtension)
}

func TestComputeHistogramsSumToTotals(t *testing.T) {
	lib := sampleLibrary()
	r := Compute(lib)

	albums := 0
	for _, n := range r.CDsPerAlbum {
		albums += n
	}
	assert.Equal(t, r.AlbumCount, albums)

	files := 0
	for _, n := range r.FilesByExtension {
		files += n
	}
	meta := 0
	for _, a := range lib.Artists {
		meta += len(a.MetaFiles)
		for _, al := range a.Albums {
			meta += len(al.MetaFiles)
			for _, c := range al.CDs {
				meta += len(c.MetaFiles)
			}
		}
	}
	assert.Equal(t, r.TrackCount+meta, files)
}

func TestComputeBitrates(t *testing.T) {
	r := Compute(sampleLibrary())

	assert.Equal(t, map[int]int{320: 3, 192: 1, 128: 2}, r.BitrateHistogram)
	assert.Equal(t, map[int]int{320000: 1, 128000: 1}, r.HomogeneousBitrates)
	assert.Equal(t, 1, r.HeterogeneousAlbums)

	// Beta/Three has no positive bitrate and sits in neither bucket.
	classified := r.HeterogeneousAlbums
	for _, n := range r.HomogeneousBitrates {
		classified += n
	}
	assert.Equal(t, r.AlbumCount-1, classified)
}

func TestComputeBitrateClassificationIsExhaustive(t *testing.T) {
	lib := collection.NewLibrary("/music")
	lib.Artists["A"] = &collection.Artist{Albums: []*collection.Album{
		album(nil, cd(nil, track(".mp3", 1, time.Second, 128000), track(".mp3", 1, time.Second, 128000))),
		album(nil, cd(nil, track(".mp3", 1, time.Second, 128000)), cd(nil, track(".mp3", 1, time.Second, 256000))),
		album(nil, cd(nil, track(".mp3", 1, time.Second, 192500))),
	}}
	r := Compute(lib)

	classified := r.HeterogeneousAlbums
	for _, n := range r.HomogeneousBitrates {
		classified += n
	}
	assert.Equal(t, r.AlbumCount, classified)
	assert.Equal(t, map[int]int{128000: 1, 192500: 1}, r.HomogeneousBitrates)
	assert.Equal(t, 1, r.HeterogeneousAlbums)
	assert.NotContains(t, r.BitrateHistogram, 192, "non-multiples of 1000 are not histogrammed")
}

func TestComputeDurationAndSize(t *testing.T) {
	r := Compute(sampleLibrary())

	require.NotNil(t, r.Duration)
	// 4m + 6m + 30s + 5m + 3m + 2m = 20m30s over 6 tracks with a length.
	assert.InDelta(t, 20.5/60, r.Duration.TotalHours, 1e-9)
	assert.InDelta(t, 30.0, r.Duration.MinSeconds, 1e-9)
	assert.InDelta(t, 6.0, r.Duration.MaxMinutes, 1e-9)
	assert.InDelta(t, 20.5/6, r.Duration.MeanMinutes, 1e-9)

	require.NotNil(t, r.Size)
	// 4+6+2+5+3+30+1+1 = 52 MB over 8 tracks.
	assert.Equal(t, int64(52*bytesPerMB), r.Size.TotalBytes)
	assert.InDelta(t, 52.0/1024, r.Size.TotalGB, 1e-9)
	assert.InDelta(t, 1.0, r.Size.MinMB, 1e-9)
	assert.InDelta(t, 30.0, r.Size.MaxMB, 1e-9)
	assert.InDelta(t, 6.5, r.Size.MeanMB, 1e-9)
}

func TestComputeWithoutLengths(t *testing.T) {
	lib := collection.NewLibrary("/music")
	lib.Artists["A"] = &collection.Artist{Albums: []*collection.Album{
		album(nil, cd(nil, track(".mp3", 100, 0, 0))),
	}}
	r := Compute(lib)

	assert.Nil(t, r.Duration)
	require.NotNil(t, r.Size)
	assert.Empty(t, r.BitrateHistogram)
	assert.Empty(t, r.HomogeneousBitrates)
	assert.Zero(t, r.HeterogeneousAlbums)
}

func TestComputeEmptyLibrary(t *testing.T) {
	r := Compute(collection.NewLibrary("/music"))

	assert.Zero(t, r.ArtistCount)
	assert.Zero(t, r.AlbumCount)
	assert.Zero(t, r.TrackCount)
	assert.Nil(t, r.Duration)
	assert.Nil(t, r.Size)
	assert.Empty(t, r.FilesByExtension)
	assert.Empty(t, r.CDsPerAlbum)
}

func TestComputeAlbumWithoutTracks(t *testing.T) {
	lib := collection.NewLibrary("/music")
	lib.Artists["A"] = &collection.Artist{Albums: []*collection.Album{album(nil, cd(nil))}}
	r := Compute(lib)

	assert.Equal(t, 1, r.AlbumCount)
	assert.Equal(t, map[int]int{1: 1}, r.CDsPerAlbum)
	assert.Nil(t, r.Size)
}

func TestComputeDoesNotModifyLibrary(t *testing.T) {
	lib := sampleLibrary()
	before := Compute(lib)
	after := Compute(lib)
	assert.Equal(t, before, after)
	assert.Len(t, lib.Artists["Alpha"].Albums[0].CDs, 2)
}

func TestComputeScannedTree(t *testing.T) {
	root := t.TempDir()
	albumDir := filepath.Join(root, "A", "A Band", "2001 - Greatest Hits")
	require.NoError(t, os.MkdirAll(albumDir, 0o755))
	for _, name := range []string{"A Band - 01 - Intro.mp3", "A Band - 02 - Outro.mp3", "cover.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(albumDir, name), []byte("data"), 0o600))
	}

	lib, err := collection.Walk(root, collection.DefaultConventions(), diag.Discard)
	require.NoError(t, err)
	r := Compute(lib)

	assert.Equal(t, map[string]int{".mp3": 2, ".jpg": 1}, r.FilesByExtension)
	assert.Equal(t, 1, r.ArtistCount)
	assert.Equal(t, 1, r.AlbumCount)
	assert.Equal(t, map[int]int{1: 1}, r.CDsPerAlbum)
	assert.Nil(t, r.Duration)
	require.NotNil(t, r.Size)
	assert.Equal(t, int64(8), r.Size.TotalBytes)
}
