package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/musicshelf/internal/collection"
)

const appName = "musicshelf"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type Config struct {
	Root     string `koanf:"root"`     // collection root (letter buckets live here)
	Enrich   bool   `koanf:"enrich"`   // read durations and bitrates
	Backfill bool   `koanf:"backfill"` // fill unparsed tracks from text tags
	Workers  int    `koanf:"workers"`  // concurrent tag reads (1 = sequential)
	Format   string `koanf:"format"`   // "text", "json" or "yaml"
	Tree     bool   `koanf:"tree"`     // list artists and albums in text output
	Quiet    bool   `koanf:"quiet"`    // no per-event warnings, summary only

	// Classification overrides; empty means the collection defaults.
	AudioExtensions []string `koanf:"audio_extensions"`
	MetaExtensions  []string `koanf:"meta_extensions"`
	SkipDirs        []string `koanf:"skip_dirs"`
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		Enrich:   true,
		Backfill: true,
		Workers:  1,
		Format:   FormatText,
	}
}

func Load() (*Config, error) {
	return LoadFiles(getConfigPaths())
}

// LoadFiles merges the existing files among paths (last wins) over the
// defaults.
func LoadFiles(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Root = expandPath(cfg.Root)
	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/musicshelf/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./musicshelf.toml (pwd, highest priority)
		appName + ".toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Conventions returns the file classification rules with overrides applied.
func (c *Config) Conventions() collection.Conventions {
	audio := c.AudioExtensions
	if len(audio) == 0 {
		audio = collection.DefaultAudioExtensions
	}
	meta := c.MetaExtensions
	if len(meta) == 0 {
		meta = collection.DefaultMetaExtensions
	}
	skip := c.SkipDirs
	if len(skip) == 0 {
		skip = collection.DefaultSkipDirs
	}
	return collection.NewConventions(audio, meta, skip)
}

// GetWorkers returns the worker count clamped to [1, 32].
func (c *Config) GetWorkers() int {
	switch {
	case c.Workers < 1:
		return 1
	case c.Workers > 32:
		return 32
	}
	return c.Workers
}

// ValidFormat reports whether Format names a supported output format.
func (c *Config) ValidFormat() bool {
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
		return true
	}
	return false
}
