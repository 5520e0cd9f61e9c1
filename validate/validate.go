// Package validate brute-force cross-checks a tree's range-query results
// against a plain linear scan over the same dataset.
package validate

import (
	"github.com/psimatis/rstartree-go/rtree"
)

// Mismatch describes a single query whose tree result disagreed with the
// linear-scan oracle.
type Mismatch struct {
	Query      rtree.Rectangle
	MissingIDs []int
	ExtraIDs   []int
}

// Queries runs every query in queries against both tr and a linear scan of
// data, returning one Mismatch per query that disagreed. An empty result
// means every query in queries matched the oracle exactly.
func Queries(tr *rtree.Tree, data, queries []rtree.Rectangle) []Mismatch {
	var mismatches []Mismatch
	for _, q := range queries {
		got := idSet(tr.RangeQuery(q))
		want := idSet(linearScan(data, q))

		missing := difference(want, got)
		extra := difference(got, want)
		if len(missing) == 0 && len(extra) == 0 {
			continue
		}
		mismatches = append(mismatches, Mismatch{Query: q, MissingIDs: missing, ExtraIDs: extra})
	}
	return mismatches
}

func linearScan(data []rtree.Rectangle, q rtree.Rectangle) []rtree.Rectangle {
	var hits []rtree.Rectangle
	for _, d := range data {
		if q.Intersects(d) {
			hits = append(hits, d)
		}
	}
	return hits
}

func idSet(rects []rtree.Rectangle) map[int]bool {
	set := make(map[int]bool, len(rects))
	for _, r := range rects {
		set[r.ID()] = true
	}
	return set
}

func difference(a, b map[int]bool) []int {
	var out []int
	for id := range a {
		if !b[id] {
			out = append(out, id)
		}
	}
	return out
}
