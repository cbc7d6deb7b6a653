// Package diag carries non-fatal scan diagnostics from the collection walker,
// the tag enricher and the CLI to whoever is listening. Events never enter the
// library model.
package diag

import (
	"log"
	"sync"
)

// Kind classifies a diagnostic event.
type Kind string

const (
	KindUnrecognizedFilename Kind = "unrecognized filename"
	KindUnknownFileType      Kind = "unknown filetype"
	KindStructureAnomaly     Kind = "directory structure anomaly"
	KindUnrecognizedDiscName Kind = "wrong cd name"
	KindMultiArtistDisc      Kind = "multiple artists in one disc"
	KindTagReadFailure       Kind = "tag read failure"
	KindMissingTrackInfo     Kind = "missing track info"
	KindUnhandledFile        Kind = "unhandled file"
)

// Kinds lists every event kind in reporting order.
var Kinds = []Kind{
	KindUnrecognizedFilename,
	KindUnknownFileType,
	KindStructureAnomaly,
	KindUnrecognizedDiscName,
	KindMultiArtistDisc,
	KindTagReadFailure,
	KindMissingTrackInfo,
	KindUnhandledFile,
}

// Event is a single diagnostic. Path identifies the file or directory the
// event is about; Detail refines the kind (e.g. which anomaly).
type Event struct {
	Kind   Kind
	Path   string
	Detail string
	Err    error
}

func (e Event) String() string {
	s := string(e.Kind)
	if e.Detail != "" {
		s += " (" + e.Detail + ")"
	}
	s += ": " + e.Path
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Sink receives diagnostic events. Implementations must be safe for
// concurrent use since the enricher may report from several workers.
type Sink interface {
	Report(e Event)
}

// Discard drops every event.
var Discard Sink = discard{}

type discard struct{}

func (discard) Report(Event) {}

// Collector keeps every reported event in arrival order.
type Collector struct {
	mu     sync.Mutex
	events []Event
}

func (c *Collector) Report(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

// Events returns a copy of the collected events.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// ByKind returns the collected events of the given kind.
func (c *Collector) ByKind(k Kind) []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Event
	for _, e := range c.events {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// Counts returns the number of events per kind.
func (c *Collector) Counts() map[Kind]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	counts := make(map[Kind]int)
	for _, e := range c.events {
		counts[e.Kind]++
	}
	return counts
}

// LogSink writes each event as one warning line.
type LogSink struct {
	Logger *log.Logger
}

func (s LogSink) Report(e Event) {
	s.Logger.Print("warning: " + e.String())
}

// Tee fans events out to several sinks.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

type tee []Sink

func (t tee) Report(e Event) {
	for _, s := range t {
		s.Report(e)
	}
}
