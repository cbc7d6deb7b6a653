package collection

import (
	"path/filepath"
	"strings"
)

// Default audio and metadata extensions (lower-case, with leading dot).
var (
	DefaultAudioExtensions = []string{".mp3", ".mpc", ".ape", ".ogg"}
	DefaultMetaExtensions  = []string{
		".tif", ".jpg", ".gif", ".bmp", ".nfo",
		".txt", ".htm", ".doc", ".sfv", ".m3u",
	}
	DefaultSkipDirs = []string{".AppleDouble"}
)

// Conventions holds the closed extension sets used to classify files and the
// artist directory names that are filesystem artifacts rather than artists.
type Conventions struct {
	audio map[string]bool
	meta  map[string]bool
	skip  map[string]bool
}

// DefaultConventions returns the conventions of a standard collection.
func DefaultConventions() Conventions {
	return NewConventions(DefaultAudioExtensions, DefaultMetaExtensions, DefaultSkipDirs)
}

// NewConventions builds conventions from extension lists. Extensions are
// normalized with NormalizeExt, so "wma" and ".WMA" both become ".wma".
func NewConventions(audio, meta, skipDirs []string) Conventions {
	c := Conventions{
		audio: make(map[string]bool, len(audio)),
		meta:  make(map[string]bool, len(meta)),
		skip:  make(map[string]bool, len(skipDirs)),
	}
	for _, ext := range audio {
		if n := NormalizeExt(ext); n != "" {
			c.audio[n] = true
		}
	}
	for _, ext := range meta {
		if n := NormalizeExt(ext); n != "" {
			c.meta[n] = true
		}
	}
	for _, d := range skipDirs {
		c.skip[d] = true
	}
	return c
}

// NormalizeExt lower-cases ext and adds the leading dot if missing.
// Returns "" for an empty or dot-only input.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return ""
	}
	return "." + ext
}

// IsAudio reports whether name has an audio extension (case-insensitive).
func (c Conventions) IsAudio(name string) bool {
	return c.audio[fileExt(name)]
}

// IsMeta reports whether name has a metadata extension (case-insensitive).
func (c Conventions) IsMeta(name string) bool {
	return c.meta[fileExt(name)]
}

// Skip reports whether an artist directory name must be ignored.
func (c Conventions) Skip(dirName string) bool {
	return c.skip[dirName]
}

// fileExt returns the lower-cased extension of name.
func fileExt(name string) string {
	return strings.ToLower(filepath.Ext(name))
}
