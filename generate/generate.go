// Package generate produces synthetic rectangle workloads for the
// benchmark and validation harnesses: uniformly random points, random
// query windows, and a reproducible seed derived from a human-supplied
// string.
package generate

import (
	"math/rand"

	"github.com/OneOfOne/xxhash"
	"github.com/psimatis/rstartree-go/rtree"
)

// SeedFrom hashes label into a deterministic int64 seed, so a run can be
// reproduced exactly by passing the same label again instead of a raw
// numeric seed.
func SeedFrom(label string) int64 {
	return int64(xxhash.ChecksumString64(label))
}

// Points returns n random point rectangles with sequential IDs starting at
// 0, each coordinate uniform in [0, extent) across dimensions dimensions.
func Points(rnd *rand.Rand, n, dimensions int, extent float64) []rtree.Rectangle {
	rects := make([]rtree.Rectangle, n)
	for i := 0; i < n; i++ {
		coords := make([]float32, dimensions)
		for d := 0; d < dimensions; d++ {
			coords[d] = float32(rnd.Float64() * extent)
		}
		rects[i] = rtree.NewPoint(i, coords)
	}
	return rects
}

// Windows returns n random axis-aligned query rectangles, each with side
// length uniform in [0, maxSide) and a low corner placed so the window
// fits within [0, extent) in every dimension.
func Windows(rnd *rand.Rand, n, dimensions int, extent, maxSide float64) []rtree.Rectangle {
	windows := make([]rtree.Rectangle, n)
	for i := 0; i < n; i++ {
		lo := make([]float32, dimensions)
		hi := make([]float32, dimensions)
		for d := 0; d < dimensions; d++ {
			side := rnd.Float64() * maxSide
			start := rnd.Float64() * (extent - side)
			lo[d] = float32(start)
			hi[d] = float32(start + side)
		}
		windows[i] = rtree.NewRectangle(rtree.NoID, lo, hi)
	}
	return windows
}
