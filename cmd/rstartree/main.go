// Command rstartree is a demo harness around the rtree package: it builds
// a tree from either randomly generated or stream-file data, runs random
// (or cross-checked) window queries against it, and reports timings.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/psimatis/rstartree-go/bench"
	"github.com/psimatis/rstartree-go/config"
	"github.com/psimatis/rstartree-go/generate"
	"github.com/psimatis/rstartree-go/report"
	"github.com/psimatis/rstartree-go/rtree"
	"github.com/psimatis/rstartree-go/server"
	"github.com/psimatis/rstartree-go/streamfile"
	"github.com/psimatis/rstartree-go/validate"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log := logrus.StandardLogger()

	// A first pass parses only --config, so its value is known before the
	// rest of the flags are declared with config-derived defaults.
	peek := flag.NewFlagSet("rstartree-config-peek", flag.ContinueOnError)
	peek.SetOutput(new(discard))
	peekConfig := peek.String("config", "", "")
	// The other flags are unknown to this pass, so parsing resumes past
	// each argument it stops at until the arguments are used up.
	for rest := args; len(rest) > 0; {
		err := peek.Parse(rest)
		next := peek.Args()
		if len(next) > 0 && (err == nil || len(next) == len(rest)) {
			next = next[1:]
		}
		rest = next
	}
	defaults, err := config.Load(*peekConfig)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fs := flag.NewFlagSet("rstartree", flag.ContinueOnError)
	fs.String("config", *peekConfig, "path to a TOML config file overriding the flag defaults")

	numData := fs.Int("n", defaults.NumData, "number of points (long form --numData)")
	fs.IntVar(numData, "numData", defaults.NumData, "number of points")
	numQueries := fs.Int("q", defaults.NumQueries, "number of queries (long form --numQueries)")
	fs.IntVar(numQueries, "numQueries", defaults.NumQueries, "number of queries")
	dimension := fs.Int("d", defaults.Dimension, "dimensionality (long form --dimension)")
	fs.IntVar(dimension, "dimension", defaults.Dimension, "dimensionality")
	capacity := fs.Int("c", defaults.Capacity, "maxEntries (long form --capacity)")
	fs.IntVar(capacity, "capacity", defaults.Capacity, "maxEntries")
	validateFlag := fs.Bool("v", defaults.Validate, "enable linear-scan cross-check (long form --validate)")
	fs.BoolVar(validateFlag, "validate", defaults.Validate, "enable linear-scan cross-check")
	streamPath := fs.String("s", defaults.StreamPath, "stream-file path (long form --stream)")
	fs.StringVar(streamPath, "stream", defaults.StreamPath, "stream-file path")
	compareFlag := fs.Bool("compare", defaults.Compare, "also run the workload through rtreego for comparison")
	serveAddr := fs.String("serve", defaults.Serve, "TELNET listen address, e.g. :3456; empty disables serving")
	seedLabel := fs.String("seed", defaults.Seed, "label hashed into a deterministic random seed; empty uses the current time")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: rstartree [flags]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	var seed int64
	if *seedLabel != "" {
		seed = generate.SeedFrom(*seedLabel)
	} else {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	var data []rtree.Rectangle
	if *streamPath != "" {
		f, err := os.Open(*streamPath)
		if err != nil {
			log.Errorf("opening stream file: %v", err)
			return 1
		}
		defer f.Close()
		data, err = streamfile.Read(f)
		if err != nil {
			log.Errorf("reading stream file: %v", err)
			return 1
		}
	} else {
		data = generate.Points(rnd, *numData, *dimension, 1_000_000)
	}

	tr := rtree.New(*capacity, *dimension)
	insertStart := time.Now()
	tr.BatchInsert(data)
	insertElapsed := time.Since(insertStart)
	report.Timing(os.Stdout, "build", insertElapsed)

	queries := generate.Windows(rnd, *numQueries, *dimension, 1_000_000, 50_000)
	queryResult := bench.RangeQueries(tr, queries)
	report.Timing(os.Stdout, "queries", queryResult.Elapsed)
	fmt.Fprintf(os.Stdout, "total hits: %d\n", queryResult.Hits)

	report.Stats(os.Stdout, tr.Stats())

	if !tr.HealthCheck() {
		log.Error("health check found invariant violations")
		return 1
	}

	if *validateFlag {
		mismatches := validate.Queries(tr, data, queries)
		report.Validation(os.Stdout, mismatches)
		if len(mismatches) > 0 {
			return 1
		}
	}

	if *compareFlag {
		cmp := bench.Compare(data, queries, *capacity, *dimension)
		report.Timing(os.Stdout, "ours insert", cmp.OursInsert)
		report.Timing(os.Stdout, "rtreego insert", cmp.TheirsInsert)
		report.Timing(os.Stdout, "ours query", cmp.OursQuery.Elapsed)
		report.Timing(os.Stdout, "rtreego query", cmp.TheirsQuery.Elapsed)
	}

	if *serveAddr != "" {
		handler := server.NewHandler(tr, log)
		log.Infof("serving on %s", *serveAddr)
		if err := server.ListenAndServe(*serveAddr, handler); err != nil {
			log.Errorf("serve: %v", err)
			return 1
		}
	}

	return 0
}

// discard is a minimal io.Writer sink used to silence the config-peeking
// flag set's usage output, which must not be shown to the user.
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
