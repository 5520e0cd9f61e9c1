package rtree

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomRect(rnd *rand.Rand, id int, extent float32) Rectangle {
	x := rnd.Float32() * 100
	y := rnd.Float32() * 100
	w := rnd.Float32() * extent
	h := rnd.Float32() * extent
	return NewRectangle(id, []float32{x, y}, []float32{x + w, y + h})
}

// linearScan is the brute-force reference oracle every range query result
// must agree with, regardless of how the tree happens to be structured.
func linearScan(rects []Rectangle, q Rectangle) []int {
	ids := []int{}
	for _, r := range rects {
		if q.Intersects(r) {
			ids = append(ids, r.ID())
		}
	}
	sort.Ints(ids)
	return ids
}

func idsOf(rects []Rectangle) []int {
	ids := make([]int, len(rects))
	for i, r := range rects {
		ids[i] = r.ID()
	}
	sort.Ints(ids)
	return ids
}

func TestInsertThenRangeQueryMatchesLinearScan(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	tr := New(8, 2)

	var all []Rectangle
	for i := 0; i < 500; i++ {
		r := randomRect(rnd, i, 3)
		all = append(all, r)
		tr.Insert(r)
	}
	require.True(t, tr.HealthCheck())

	for q := 0; q < 20; q++ {
		query := randomRect(rnd, NoID, 20)
		got := idsOf(tr.RangeQuery(query))
		want := linearScan(all, query)
		assert.Equal(t, want, got)
	}
}

func TestRangeQueryOfEmptyTreeIsEmpty(t *testing.T) {
	tr := New(8, 2)
	got := tr.RangeQuery(NewRectangle(NoID, []float32{-1e6, -1e6}, []float32{1e6, 1e6}))
	assert.Empty(t, got)
}

func TestRangeQueryEncompassingEverythingReturnsAll(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	tr := New(4, 2)
	var all []Rectangle
	for i := 0; i < 100; i++ {
		r := randomRect(rnd, i, 2)
		all = append(all, r)
		tr.Insert(r)
	}
	everything := NewRectangle(NoID, []float32{-1e6, -1e6}, []float32{1e6, 1e6})
	assert.Equal(t, idsOf(all), idsOf(tr.RangeQuery(everything)))
}

func TestSingleEntryTreeHasHeightOne(t *testing.T) {
	tr := New(4, 2)
	tr.Insert(NewPoint(1, []float32{0, 0}))
	s := tr.Stats()
	assert.Equal(t, 1, s.Height)
	assert.Equal(t, 1, s.TotalDataEntries)
	assert.Equal(t, 1, s.LeafNodes)
	assert.Equal(t, 0, s.InternalNodes)
}

func TestHealthCheckHoldsAcrossOverflowAndSplits(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for maxEntries := 2; maxEntries <= 16; maxEntries *= 2 {
		tr := New(maxEntries, 2)
		for i := 0; i < 300; i++ {
			tr.Insert(randomRect(rnd, i, 5))
			require.True(t, tr.HealthCheck(), "maxEntries=%d after %d inserts", maxEntries, i+1)
		}
	}
}

func TestBatchInsertOnEmptyTreeDelegatesToBulkLoad(t *testing.T) {
	rnd := rand.New(rand.NewSource(4))
	var rects []Rectangle
	for i := 0; i < 200; i++ {
		rects = append(rects, randomRect(rnd, i, 3))
	}

	tr := New(8, 2)
	tr.BatchInsert(rects)

	require.True(t, tr.HealthCheck())
	assert.Equal(t, idsOf(rects), idsOf(tr.RangeQuery(NewRectangle(NoID, []float32{-1e6, -1e6}, []float32{1e6, 1e6}))))
}

func TestBatchInsertIntoNonEmptyTree(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	tr := New(8, 2)

	var first, second []Rectangle
	for i := 0; i < 50; i++ {
		r := randomRect(rnd, i, 3)
		first = append(first, r)
		tr.Insert(r)
	}
	for i := 50; i < 250; i++ {
		second = append(second, randomRect(rnd, i, 3))
	}
	tr.BatchInsert(second)

	require.True(t, tr.HealthCheck())
	want := idsOf(append(append([]Rectangle(nil), first...), second...))
	got := idsOf(tr.RangeQuery(NewRectangle(NoID, []float32{-1e6, -1e6}, []float32{1e6, 1e6})))
	assert.Equal(t, want, got)
}

func TestBulkLoadMatchesLinearScan(t *testing.T) {
	rnd := rand.New(rand.NewSource(6))
	var rects []Rectangle
	for i := 0; i < 1000; i++ {
		rects = append(rects, randomRect(rnd, i, 4))
	}

	tr := New(16, 2)
	tr.BulkLoad(rects)
	require.True(t, tr.HealthCheck())

	for q := 0; q < 20; q++ {
		query := randomRect(rnd, NoID, 15)
		got := idsOf(tr.RangeQuery(query))
		want := linearScan(rects, query)
		assert.Equal(t, want, got)
	}
}

func TestBulkLoadOfEmptySliceYieldsEmptyTree(t *testing.T) {
	tr := New(8, 2)
	tr.Insert(NewPoint(1, []float32{0, 0}))
	tr.BulkLoad(nil)
	assert.Empty(t, tr.RangeQuery(NewRectangle(NoID, []float32{-1e6, -1e6}, []float32{1e6, 1e6})))
}

func TestStatsNodeCountsAreConsistent(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	tr := New(4, 2)
	for i := 0; i < 400; i++ {
		tr.Insert(randomRect(rnd, i, 3))
	}
	s := tr.Stats()
	assert.Equal(t, s.LeafNodes+s.InternalNodes, s.TotalNodes)
	assert.Equal(t, 400, s.TotalDataEntries)
	assert.Greater(t, s.SizeBytes, int64(0))
}

func TestStatsVisitCountersAccumulate(t *testing.T) {
	rnd := rand.New(rand.NewSource(8))
	tr := New(4, 2)
	for i := 0; i < 100; i++ {
		tr.Insert(randomRect(rnd, i, 3))
	}
	before := tr.Stats().TotalNodeVisits
	tr.RangeQuery(NewRectangle(NoID, []float32{-1e6, -1e6}, []float32{1e6, 1e6}))
	after := tr.Stats().TotalNodeVisits
	assert.Greater(t, after, before)
}

func TestEveryNodeRespectsMinEntriesExceptRoot(t *testing.T) {
	rnd := rand.New(rand.NewSource(9))
	tr := New(6, 2)
	for i := 0; i < 500; i++ {
		tr.Insert(randomRect(rnd, i, 3))
	}

	var walk func(n *node, isRoot bool)
	walk = func(n *node, isRoot bool) {
		if !isRoot {
			assert.GreaterOrEqual(t, len(n.entries), tr.minEntries)
		}
		assert.LessOrEqual(t, len(n.entries), tr.maxEntries)
		for _, c := range n.children {
			walk(c, false)
		}
	}
	walk(tr.root, true)
}

func TestNewRaisesDegenerateMaxEntries(t *testing.T) {
	tr := New(1, 2)
	assert.Equal(t, 2, tr.MaxEntries())
}
