package rtree

// Stats summarizes a tree's shape and cumulative query workload, mirroring
// the reference implementation's tree-info diagnostics.
type Stats struct {
	TotalNodes      int
	LeafNodes       int
	InternalNodes   int
	TotalDataEntries int
	Height          int

	TotalNodeVisits    uint64
	LeafNodeVisits     uint64
	InternalNodeVisits uint64

	SizeBytes int64
}

// Stats walks the tree once to compute its current shape and combines it
// with the cumulative visit counters accrued by RangeQuery since the tree
// was created (Insert, BatchInsert and BulkLoad do not count visits).
func (t *Tree) Stats() Stats {
	s := Stats{
		TotalNodeVisits:    t.totalVisits,
		LeafNodeVisits:     t.leafVisits,
		InternalNodeVisits: t.internalVisits,
	}
	s.Height = t.walkStats(t.root, 1, &s)
	s.SizeBytes = t.SizeBytes()
	return s
}

func (t *Tree) walkStats(n *node, depth int, s *Stats) int {
	s.TotalNodes++
	if n.isLeaf {
		s.LeafNodes++
		s.TotalDataEntries += len(n.entries)
		return depth
	}
	s.InternalNodes++

	maxHeight := depth
	for _, c := range n.children {
		h := t.walkStats(c, depth+1, s)
		if h > maxHeight {
			maxHeight = h
		}
	}
	return maxHeight
}

// nodeOverheadBytes approximates the fixed per-node bookkeeping cost: the
// isLeaf flag, the parent pointer, and the backing slice headers for
// entries and children.
const nodeOverheadBytes = 1 + 8 + 24 + 24

// SizeBytes estimates the tree's resident memory footprint in bytes. Each
// node contributes a fixed overhead; every entry contributes two
// float32-per-dimension coordinate vectors, but only on internal nodes,
// matching the reference implementation's accounting (leaf entries are
// counted as payload, not index overhead); each child pointer on an
// internal node contributes a further 8 bytes.
func (t *Tree) SizeBytes() int64 {
	var total int64
	var walk func(n *node)
	walk = func(n *node) {
		total += nodeOverheadBytes
		if n.isLeaf {
			return
		}
		total += int64(len(n.entries)) * int64(2*t.dimensions*4)
		total += int64(len(n.children)) * 8
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)
	return total
}
