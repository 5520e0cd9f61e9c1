package rtree

import (
	"math"
	"sort"
)

// splitNode partitions an overflowing node's entries (and children, if
// internal) into two groups meeting minEntries on both sides, minimising
// overlap area between the two resulting MBRs with summed area as
// tie-break. node keeps the first group; a new sibling holds the rest.
// Splitting the root allocates a new root; splitting any other node
// appends the sibling to the parent and may cascade the split upward.
func (t *Tree) splitNode(n *node) {
	if len(n.entries) == 0 {
		t.log.Warn("rtree: splitNode called on an empty node")
		return
	}

	axis, index := t.chooseSplit(n)
	order := sortedIndicesByAxis(n.entries, axis)

	entries := make([]Rectangle, len(order))
	var children []*node
	if !n.isLeaf {
		children = make([]*node, len(order))
	}
	for i, idx := range order {
		entries[i] = n.entries[idx]
		if !n.isLeaf {
			children[i] = n.children[idx]
		}
	}

	sibling := &node{isLeaf: n.isLeaf}
	sibling.entries = append([]Rectangle(nil), entries[index:]...)
	n.entries = append([]Rectangle(nil), entries[:index]...)

	if !n.isLeaf {
		sibling.children = append([]*node(nil), children[index:]...)
		n.children = append([]*node(nil), children[:index]...)
		for _, c := range sibling.children {
			c.parent = sibling
		}
	}

	if n.parent == nil {
		newRoot := &node{
			isLeaf:   false,
			children: []*node{n, sibling},
			entries:  []Rectangle{t.unionAll(n.entries), t.unionAll(sibling.entries)},
		}
		n.parent = newRoot
		sibling.parent = newRoot
		t.root = newRoot
		return
	}

	parent := n.parent
	idx := childIndex(parent, n)
	if idx == -1 {
		t.log.Warn("rtree: splitNode could not find node in its parent's children")
		return
	}
	parent.entries[idx] = t.unionAll(n.entries)
	parent.children = append(parent.children, sibling)
	parent.entries = append(parent.entries, t.unionAll(sibling.entries))
	sibling.parent = parent

	t.updateRectangles(parent)

	if len(parent.entries) > t.maxEntries {
		t.splitNode(parent)
	}
}

// chooseSplit finds the (axis, index) pair minimising overlap area between
// the two halves, with summed area as tie-break, scanning every axis and
// every valid cut point in [minEntries, n-minEntries].
func (t *Tree) chooseSplit(n *node) (axis, index int) {
	total := len(n.entries)
	bestOverlap := float32(math.MaxFloat32)
	bestArea := float32(math.MaxFloat32)
	axis, index = 0, t.minEntries

	for a := 0; a < t.dimensions; a++ {
		order := sortedIndicesByAxis(n.entries, a)
		sorted := make([]Rectangle, total)
		for i, idx := range order {
			sorted[i] = n.entries[idx]
		}

		for k := t.minEntries; k <= total-t.minEntries; k++ {
			left := t.unionAll(sorted[:k])
			right := t.unionAll(sorted[k:])
			overlap := left.OverlapArea(right)
			area := left.Area() + right.Area()

			if overlap < bestOverlap || (overlap == bestOverlap && area < bestArea) {
				bestOverlap = overlap
				bestArea = area
				axis = a
				index = k
			}
		}
	}
	return axis, index
}

// sortedIndicesByAxis returns a permutation of 0..len(entries)-1 ordering
// entries by their low coordinate along axis. The sort is stable so that
// ties resolve in input order, as permitted (but not required) by the
// split specification.
func sortedIndicesByAxis(entries []Rectangle, axis int) []int {
	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return entries[order[i]].lo[axis] < entries[order[j]].lo[axis]
	})
	return order
}
