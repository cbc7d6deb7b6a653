package diag

import (
	"bytes"
	"errors"
	"log"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventString(t *testing.T) {
	tests := []struct {
		name     string
		event    Event
		expected string
	}{
		{
			name:     "kind and path",
			event:    Event{Kind: KindUnknownFileType, Path: "/m/A/x.exe"},
			expected: "unknown filetype: /m/A/x.exe",
		},
		{
			name:     "with detail",
			event:    Event{Kind: KindStructureAnomaly, Path: "/m/A/B/C", Detail: "no audio and no subdirectory"},
			expected: "directory structure anomaly (no audio and no subdirectory): /m/A/B/C",
		},
		{
			name:     "with error",
			event:    Event{Kind: KindTagReadFailure, Path: "/m/x.mp3", Err: errors.New("corrupt")},
			expected: "tag read failure: /m/x.mp3: corrupt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.String())
		})
	}
}

func TestCollector(t *testing.T) {
	var c Collector
	c.Report(Event{Kind: KindUnhandledFile, Path: "a"})
	c.Report(Event{Kind: KindUnknownFileType, Path: "b"})
	c.Report(Event{Kind: KindUnhandledFile, Path: "c"})

	events := c.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "a", events[0].Path)
	assert.Equal(t, "c", events[2].Path)

	unhandled := c.ByKind(KindUnhandledFile)
	require.Len(t, unhandled, 2)
	assert.Equal(t, "c", unhandled[1].Path)

	assert.Equal(t, map[Kind]int{KindUnhandledFile: 2, KindUnknownFileType: 1}, c.Counts())
	assert.Empty(t, c.ByKind(KindMultiArtistDisc))
}

func TestCollectorConcurrent(t *testing.T) {
	var c Collector
	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			c.Report(Event{Kind: KindMissingTrackInfo})
		})
	}
	wg.Wait()
	assert.Len(t, c.Events(), 50)
}

func TestLogSinkAndTee(t *testing.T) {
	var buf bytes.Buffer
	var c Collector
	sink := Tee(LogSink{Logger: log.New(&buf, "", 0)}, &c, Discard)

	sink.Report(Event{Kind: KindUnrecognizedDiscName, Path: "/m/A/B/C/Disc One"})

	assert.Equal(t, "warning: wrong cd name: /m/A/B/C/Disc One\n", buf.String())
	assert.Len(t, c.Events(), 1)
}
