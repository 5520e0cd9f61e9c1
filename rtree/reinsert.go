package rtree

import "sort"

// reinsertFraction is the fraction of an overflowing node's farthest
// entries that get a second chance to find a better home before the node
// is split, per the R*-tree forced reinsertion policy.
const reinsertFraction = 0.3

// reinsert implements forced reinsertion for the leaf node n, which has
// just overflowed past maxEntries. It lifts the farthest reinsertFraction
// of n's entries (by distance from n's MBR centre), removes them, and
// reinserts each from the root with reinsertion disabled so the operation
// cannot recurse indefinitely. If n is still overfull afterwards, it is
// split.
func (t *Tree) reinsert(n *node) {
	count := int(float64(len(n.entries)) * reinsertFraction)
	if count == 0 {
		t.splitNode(n)
		return
	}

	centre := t.unionAll(n.entries).Centre()

	order := make([]int, len(n.entries))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		di := squaredDistance(n.entries[order[i]].Centre(), centre)
		dj := squaredDistance(n.entries[order[j]].Centre(), centre)
		return di > dj
	})

	lift := make(map[int]bool, count)
	for _, idx := range order[:count] {
		lift[idx] = true
	}

	lifted := make([]Rectangle, 0, count)
	remaining := make([]Rectangle, 0, len(n.entries)-count)
	for i, e := range n.entries {
		if lift[i] {
			lifted = append(lifted, e)
		} else {
			remaining = append(remaining, e)
		}
	}
	n.entries = remaining
	t.updateRectangles(n)

	for _, e := range lifted {
		t.insert(t.root, e, false)
	}

	if len(n.entries) > t.maxEntries {
		t.splitNode(n)
	}
}
