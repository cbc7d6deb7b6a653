// Command musicshelf scans a letter/artist/album music collection and prints
// statistics about it, warning about everything that does not follow the
// naming conventions.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/llehouerou/musicshelf/internal/collection"
	"github.com/llehouerou/musicshelf/internal/config"
	"github.com/llehouerou/musicshelf/internal/diag"
	"github.com/llehouerou/musicshelf/internal/enrich"
	"github.com/llehouerou/musicshelf/internal/errmsg"
	"github.com/llehouerou/musicshelf/internal/report"
	"github.com/llehouerou/musicshelf/internal/stats"
)

var errNoRoot = errors.New("no library root given (use -root, a config file or an argument)")

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpLoadConfig, err))
		os.Exit(1)
	}
	os.Exit(run(cfg, os.Args[1:], os.Stdout, os.Stderr))
}

// run applies the command line over cfg, scans the library and writes the
// report to stdout. It returns the process exit code.
func run(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	if err := applyFlags(cfg, args, stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, errmsg.Format(errmsg.OpParseFlags, err))
		return 2
	}

	collector := &diag.Collector{}
	var sink diag.Sink = collector
	if !cfg.Quiet {
		sink = diag.Tee(diag.LogSink{Logger: log.New(stderr, "", 0)}, collector)
	}

	lib, err := collection.Walk(cfg.Root, cfg.Conventions(), sink)
	if err != nil {
		fmt.Fprintln(stderr, errmsg.FormatWith(errmsg.OpScanLibrary, cfg.Root, err))
		return 1
	}

	if cfg.Enrich {
		enrich.New(enrich.Options{
			Backfill: cfg.Backfill,
			Workers:  cfg.GetWorkers(),
		}, sink).Enrich(lib)
	}

	err = report.Render(stdout, lib, stats.Compute(lib), report.Options{
		Format:      cfg.Format,
		Tree:        cfg.Tree,
		Diagnostics: collector.Counts(),
	})
	if err != nil {
		fmt.Fprintln(stderr, errmsg.Format(errmsg.OpRenderReport, err))
		return 1
	}
	return 0
}

// applyFlags overrides cfg with command-line values. A single positional
// argument is taken as the library root.
func applyFlags(cfg *config.Config, args []string, output io.Writer) error {
	fs := flag.NewFlagSet("musicshelf", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(output, "usage: musicshelf [flags] [root]")
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.Root, "root", cfg.Root, "collection root directory")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format: text, json or yaml")
	fs.BoolVar(&cfg.Tree, "tree", cfg.Tree, "list artists and albums")
	fs.BoolVar(&cfg.Enrich, "enrich", cfg.Enrich, "read track durations and bitrates")
	fs.BoolVar(&cfg.Backfill, "backfill", cfg.Backfill, "fill unparsed track names from tags")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent tag reads")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "only print the warning summary")

	if err := fs.Parse(args); err != nil {
		return err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		cfg.Root = fs.Arg(0)
	default:
		return fmt.Errorf("expected at most one root, got %d", fs.NArg())
	}

	if cfg.Root == "" {
		return errNoRoot
	}
	if !cfg.ValidFormat() {
		return fmt.Errorf("unknown output format %q", cfg.Format)
	}
	return nil
}
