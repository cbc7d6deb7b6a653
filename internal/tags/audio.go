package tags

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/llehouerou/go-mp3"
	"go.senan.xyz/taglib"
)

// readTaglibAudioInfo reads stream properties through TagLib, which handles
// every supported container. TagLib reports bitrate in kbps.
func readTaglibAudioInfo(path string) (AudioInfo, error) {
	props, err := taglib.ReadProperties(path)
	if err != nil {
		return AudioInfo{}, err
	}
	return AudioInfo{
		Duration: props.Length,
		Bitrate:  int(props.Bitrate) * 1000,
	}, nil
}

// readMP3AudioInfo reads MP3 properties through TagLib and falls back to
// counting decoded samples when TagLib cannot work out the length (e.g. VBR
// files without a Xing header).
func readMP3AudioInfo(path string) (AudioInfo, error) {
	info, err := readTaglibAudioInfo(path)
	if err != nil {
		return AudioInfo{}, err
	}
	if info.Duration > 0 {
		return info, nil
	}
	duration, err := decodeMP3Duration(path)
	if err != nil {
		// TagLib gave us a usable (if partial) answer; keep it.
		return info, nil //nolint:nilerr // fallback is best-effort
	}
	info.Duration = duration
	return info, nil
}

// decodeMP3Duration derives the duration from the decoder's sample count.
func decodeMP3Duration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return 0, fmt.Errorf("mp3: %w", err)
	}

	sampleRate := decoder.SampleRate()
	if sampleRate == 0 {
		return 0, errors.New("mp3: invalid sample rate")
	}

	sampleCount := max(decoder.SampleCount(), 0)

	return time.Duration(float64(sampleCount) / float64(sampleRate) * float64(time.Second)), nil
}
