package tags

import (
	"github.com/bogem/id3v2/v2"
)

// readMP3TextWithID3v2 reads MP3 text tags using only the id3v2 library.
// This is used as a fallback when dhowden/tag fails.
func readMP3TextWithID3v2(path string) (Text, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return Text{}, err
	}
	defer id3tag.Close()

	artist := id3tag.Artist()
	if artist == "" {
		artist = getID3TextFrame(id3tag, "TPE2") // Album artist frame
	}

	track, _ := parseTrackNumber(getID3TextFrame(id3tag, "TRCK"))

	return Text{
		Title:       id3tag.Title(),
		Artist:      artist,
		TrackNumber: track,
	}, nil
}

// getID3TextFrame reads a text frame value from an ID3v2 tag.
func getID3TextFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}
