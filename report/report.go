// Package report pretty-prints tree statistics and validation results to a
// terminal, colourising output when stdout is an interactive terminal and
// falling back to plain text otherwise.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/psimatis/rstartree-go/rtree"
	"github.com/psimatis/rstartree-go/validate"
)

var (
	label = color.New(color.FgCyan)
	ok    = color.New(color.FgGreen, color.Bold)
	bad   = color.New(color.FgRed, color.Bold)
)

// LineWidth returns the terminal's usable line width for wrapping, mirroring
// the heuristic a console-aware formatter uses: fall back to 65 columns
// when stdout isn't a terminal or its width can't be determined.
func LineWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 65
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return 65
	}
	return w
}

// Stats writes a tree's Stats to w, one labelled field per line.
func Stats(w io.Writer, s rtree.Stats) {
	field := func(name string, value interface{}) {
		label.Fprintf(w, "%-18s", name)
		fmt.Fprintf(w, "%v\n", value)
	}
	field("total nodes", s.TotalNodes)
	field("leaf nodes", s.LeafNodes)
	field("internal nodes", s.InternalNodes)
	field("data entries", s.TotalDataEntries)
	field("height", s.Height)
	field("size (bytes)", s.SizeBytes)
	field("node visits", s.TotalNodeVisits)
	field("leaf visits", s.LeafNodeVisits)
	field("internal visits", s.InternalNodeVisits)
}

// Timing writes a labelled elapsed-time line to w.
func Timing(w io.Writer, name string, d time.Duration) {
	label.Fprintf(w, "%-18s", name)
	fmt.Fprintf(w, "%v\n", d)
}

// Validation writes a pass/fail summary of a validation run to w, with
// per-mismatch detail when any were found.
func Validation(w io.Writer, mismatches []validate.Mismatch) {
	if len(mismatches) == 0 {
		ok.Fprintln(w, "validation: all queries matched the linear scan")
		return
	}
	bad.Fprintf(w, "validation: %d of the queries mismatched\n", len(mismatches))
	for _, m := range mismatches {
		fmt.Fprintf(w, "  missing=%v extra=%v query=%v\n", m.MissingIDs, m.ExtraIDs, m.Query)
	}
}
