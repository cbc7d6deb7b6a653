package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/musicshelf/internal/collection"
	"github.com/llehouerou/musicshelf/internal/diag"
	"github.com/llehouerou/musicshelf/internal/stats"
)

const labelWidth = 14

type textStyles struct {
	heading lipgloss.Style
	label   lipgloss.Style
	dim     lipgloss.Style
}

func newTextStyles(w io.Writer) textStyles {
	r := lipgloss.NewRenderer(w)
	return textStyles{
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label:   r.NewStyle().Width(labelWidth).Foreground(lipgloss.Color("245")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// textWriter writes lines until the first write error, which it keeps.
type textWriter struct {
	w   io.Writer
	s   textStyles
	err error
}

func (t *textWriter) line(s string) {
	if t.err != nil {
		return
	}
	_, t.err = io.WriteString(t.w, s+"\n")
}

func (t *textWriter) heading(s string) {
	t.line("")
	t.line(t.s.heading.Render(s))
}

func (t *textWriter) row(label, value string) {
	t.line("  " + t.s.label.Render(label) + value)
}

func renderText(w io.Writer, lib *collection.Library, rep stats.Report, opts Options) error {
	t := &textWriter{w: w, s: newTextStyles(w)}

	t.line(t.s.heading.Render("Library") + " " + lib.Root)
	t.row("Artists", humanize.Comma(int64(rep.ArtistCount)))
	t.row("Albums", humanize.Comma(int64(rep.AlbumCount)))
	t.row("CDs", humanize.Comma(int64(rep.CDCount)))
	t.row("Tracks", humanize.Comma(int64(rep.TrackCount)))

	if len(rep.FilesByExtension) > 0 {
		t.heading("Files by extension")
		for _, ext := range sortedKeys(rep.FilesByExtension) {
			t.row(ext, humanize.Comma(int64(rep.FilesByExtension[ext])))
		}
	}

	if len(rep.CDsPerAlbum) > 0 {
		t.heading("CDs per album")
		for _, n := range sortedInts(rep.CDsPerAlbum) {
			t.row(pluralize(n, "CD"), humanize.Comma(int64(rep.CDsPerAlbum[n])))
		}
	}

	t.heading("Duration")
	if d := rep.Duration; d != nil {
		t.row("Total", fmt.Sprintf("%.1f h", d.TotalHours))
		t.row("Shortest", fmt.Sprintf("%.0f s", d.MinSeconds))
		t.row("Longest", fmt.Sprintf("%.1f min", d.MaxMinutes))
		t.row("Average", fmt.Sprintf("%.1f min", d.MeanMinutes))
	} else {
		t.line("  " + t.s.dim.Render("no track length known"))
	}

	t.heading("Size")
	if s := rep.Size; s != nil {
		t.row("Total", fmt.Sprintf("%.2f GB (%s)", s.TotalGB, humanize.IBytes(uint64(s.TotalBytes)))) //nolint:gosec // sizes are never negative
		t.row("Smallest", fmt.Sprintf("%.1f MB", s.MinMB))
		t.row("Largest", fmt.Sprintf("%.1f MB", s.MaxMB))
		t.row("Average", fmt.Sprintf("%.1f MB", s.MeanMB))
	} else {
		t.line("  " + t.s.dim.Render("no tracks"))
	}

	if len(rep.BitrateHistogram) > 0 {
		t.heading("Tracks by bitrate")
		for _, kbps := range sortedInts(rep.BitrateHistogram) {
			t.row(strconv.Itoa(kbps)+" kbps", humanize.Comma(int64(rep.BitrateHistogram[kbps])))
		}
	}

	if len(rep.HomogeneousBitrates) > 0 || rep.HeterogeneousAlbums > 0 {
		t.heading("Albums by bitrate")
		for _, br := range sortedInts(rep.HomogeneousBitrates) {
			t.row(formatBitrate(br), humanize.Comma(int64(rep.HomogeneousBitrates[br])))
		}
		t.row("mixed", humanize.Comma(int64(rep.HeterogeneousAlbums)))
	}

	if len(opts.Diagnostics) > 0 {
		t.heading("Warnings")
		for _, k := range diag.Kinds {
			if n := opts.Diagnostics[k]; n > 0 {
				t.line("  " + fmt.Sprintf("%-30s %s", string(k), humanize.Comma(int64(n))))
			}
		}
	}

	if opts.Tree {
		t.heading("Artists")
		for _, a := range tree(lib) {
			t.line("  " + a.Name)
			for _, al := range a.Albums {
				t.line("    " + albumLine(al))
			}
		}
	}

	return t.err
}

func albumLine(a AlbumEntry) string {
	var b strings.Builder
	if a.Year != "" {
		b.WriteString("[" + a.Year + "] ")
	}
	b.WriteString(a.Name)
	fmt.Fprintf(&b, " (%s, %s)", pluralize(a.CDs, "CD"), pluralize(a.Tracks, "track"))
	return b.String()
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}

// formatBitrate shows whole kbps values without decimals.
func formatBitrate(bps int) string {
	if bps%1000 == 0 {
		return strconv.Itoa(bps/1000) + " kbps"
	}
	return fmt.Sprintf("%.1f kbps", float64(bps)/1000)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedInts(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
