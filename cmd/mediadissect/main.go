// Command mediadissect prints the metadata structure of media files:
// ID3v2 tags with their frame trees, or ISOBMFF box trees.
//
// Usage:
//
//	mediadissect [flags] <file> [<file>...]
//
// By default both structure and decoded contents are shown. Use --header
// for structure only, --data for contents only, --verbose to include
// sample-table bookkeeping boxes, and --dump for hex dumps of payloads.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/simonhull/mediadissect"
)

func main() {
	var (
		showHeader = flag.Bool("header", false, "show structure only, no decoded contents")
		showData   = flag.Bool("data", false, "show decoded contents only")
		showAll    = flag.Bool("all", false, "show structure and decoded contents (default)")
		verbose    = flag.Bool("verbose", false, "include technical boxes (mdat, free, sample tables)")
		dump       = flag.Bool("dump", false, "hex dump raw frame and box payloads")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <file> [<file>...]\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	cfg := renderConfig{
		header: *showHeader || *showAll,
		data:   *showData || *showAll,
		dump:   *dump,
	}
	if !*showHeader && !*showData && !*showAll {
		cfg.header, cfg.data = true, true
	}

	var opts []mediadissect.Option
	if *verbose {
		opts = append(opts, mediadissect.WithTechnicalLeaves())
	}
	if *dump {
		opts = append(opts, mediadissect.WithRawData())
	}

	exitCode := 0
	for _, path := range flag.Args() {
		result, err := mediadissect.Open(path, opts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			exitCode = 1
			continue
		}
		renderResult(os.Stdout, result, cfg)
	}
	os.Exit(exitCode)
}
