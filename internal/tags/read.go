package tags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

// ReadText reads title, artist and track number from a music file.
func ReadText(path string) (Text, error) {
	f, err := os.Open(path)
	if err != nil {
		return Text{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ExtMP3 {
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			return readMP3TextWithID3v2(path)
		}
		// APE and Musepack carry APEv2 tags, which dhowden/tag does not parse
		return readTextWithTaglib(path)
	}

	track, _ := m.Track()
	return Text{
		Title:       m.Title(),
		Artist:      m.Artist(),
		TrackNumber: track,
	}, nil
}

// readTextWithTaglib reads text tags through TagLib.
func readTextWithTaglib(path string) (Text, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return Text{}, err
	}
	tags := taglibTags(rawTags)

	track, _ := parseTrackNumber(tags.get(taglib.TrackNumber))
	return Text{
		Title:       tags.get(taglib.Title),
		Artist:      tags.get(taglib.Artist, taglib.AlbumArtist),
		TrackNumber: track,
	}, nil
}
