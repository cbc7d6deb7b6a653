package tags

import "strings"

// Reader reads audio stream properties for one audio format.
type Reader interface {
	ReadAudioInfo(path string) (AudioInfo, error)
}

// ReaderFunc adapts a function to the Reader interface.
type ReaderFunc func(path string) (AudioInfo, error)

func (f ReaderFunc) ReadAudioInfo(path string) (AudioInfo, error) {
	return f(path)
}

// Noop returns zero values without touching the file. It serves
// extensions that have no dedicated reader.
var Noop Reader = ReaderFunc(func(string) (AudioInfo, error) {
	return AudioInfo{}, nil
})

// DefaultReaders returns the extension -> reader table. The returned map is
// fresh and may be modified by the caller.
func DefaultReaders() map[string]Reader {
	taglibReader := ReaderFunc(readTaglibAudioInfo)
	return map[string]Reader{
		ExtMP3: ReaderFunc(readMP3AudioInfo),
		ExtOGG: taglibReader,
		ExtAPE: taglibReader,
		ExtMPC: taglibReader,
		ExtWMA: taglibReader,
	}
}

// ReaderFor looks ext up in readers (case-insensitive). Unknown extensions
// get Noop and ok is false.
func ReaderFor(readers map[string]Reader, ext string) (Reader, bool) {
	if r, ok := readers[strings.ToLower(ext)]; ok {
		return r, true
	}
	return Noop, false
}
