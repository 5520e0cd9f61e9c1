// Package bench times the tree's construction and query paths, and
// optionally runs the same workload through github.com/dhconnelly/rtreego
// as a third-party comparison point.
package bench

import (
	"time"

	"github.com/dhconnelly/rtreego"

	"github.com/psimatis/rstartree-go/rtree"
)

// Result holds the elapsed time and hit count for one timed phase.
type Result struct {
	Elapsed time.Duration
	Hits    int
}

// InsertOneByOne times a sequential Insert of every rectangle in data into
// a freshly constructed tree and returns the populated tree alongside the
// elapsed time.
func InsertOneByOne(data []rtree.Rectangle, maxEntries, dimensions int) (*rtree.Tree, time.Duration) {
	tr := rtree.New(maxEntries, dimensions)
	start := time.Now()
	for _, r := range data {
		tr.Insert(r)
	}
	return tr, time.Since(start)
}

// BulkLoad times building a fresh tree from data via BulkLoad.
func BulkLoad(data []rtree.Rectangle, maxEntries, dimensions int) (*rtree.Tree, time.Duration) {
	tr := rtree.New(maxEntries, dimensions)
	start := time.Now()
	tr.BulkLoad(data)
	return tr, time.Since(start)
}

// RangeQueries times running every query in queries against tr and reports
// the total number of hits across all of them.
func RangeQueries(tr *rtree.Tree, queries []rtree.Rectangle) Result {
	start := time.Now()
	hits := 0
	for _, q := range queries {
		hits += len(tr.RangeQuery(q))
	}
	return Result{Elapsed: time.Since(start), Hits: hits}
}

// spatial adapts a rtree.Rectangle to rtreego.Spatial so the comparison
// tree can index the exact same data.
type spatial struct {
	rect rtree.Rectangle
}

func (s spatial) Bounds() rtreego.Rect {
	lo := s.rect.Lo()
	hi := s.rect.Hi()
	lengths := make([]float64, len(lo))
	point := make(rtreego.Point, len(lo))
	for i := range lo {
		point[i] = float64(lo[i])
		length := float64(hi[i] - lo[i])
		if length <= 0 {
			// rtreego rejects zero-length sides; point rectangles get a
			// negligible epsilon extent so they remain indexable.
			length = 1e-9
		}
		lengths[i] = length
	}
	bounds, err := rtreego.NewRect(point, lengths)
	if err != nil {
		return rtreego.Rect{}
	}
	return bounds
}

// CompareResult holds the timings of an equivalent workload run against
// both this module's tree and rtreego's.
type CompareResult struct {
	OursInsert, TheirsInsert time.Duration
	OursQuery, TheirsQuery   Result
}

// Compare builds a tree and an rtreego.Rtree from the same data, runs the
// same queries against both, and returns the timing comparison.
func Compare(data, queries []rtree.Rectangle, maxEntries, dimensions int) CompareResult {
	var result CompareResult

	_, result.OursInsert = InsertOneByOne(data, maxEntries, dimensions)
	ourTree, _ := InsertOneByOne(data, maxEntries, dimensions)
	result.OursQuery = RangeQueries(ourTree, queries)

	minChildren := maxEntries / 2
	if minChildren < 1 {
		minChildren = 1
	}

	start := time.Now()
	theirTree := rtreego.NewTree(dimensions, minChildren, maxEntries)
	for _, r := range data {
		theirTree.Insert(spatial{rect: r})
	}
	result.TheirsInsert = time.Since(start)

	start = time.Now()
	hits := 0
	for _, q := range queries {
		lo := q.Lo()
		hi := q.Hi()
		lengths := make([]float64, len(lo))
		point := make(rtreego.Point, len(lo))
		for i := range lo {
			point[i] = float64(lo[i])
			length := float64(hi[i] - lo[i])
			if length <= 0 {
				length = 1e-9
			}
			lengths[i] = length
		}
		bounds, err := rtreego.NewRect(point, lengths)
		if err != nil {
			continue
		}
		hits += len(theirTree.SearchIntersect(bounds))
	}
	result.TheirsQuery = Result{Elapsed: time.Since(start), Hits: hits}

	return result
}
