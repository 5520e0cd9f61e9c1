package rtree

import "sort"

// BatchInsert inserts every rectangle in rects, preserving all tree
// invariants. It sorts a copy of rects; the caller's slice keeps its order.
//
// When the tree is currently empty, BatchInsert delegates to BulkLoad,
// which is asymptotically better for building from scratch. Otherwise the
// input is sorted by its first-axis low coordinate, chunked into groups of
// at most maxEntries, and each chunk is attached to the tree as a
// ready-made leaf rather than inserted record by record.
func (t *Tree) BatchInsert(rects []Rectangle) {
	if len(rects) == 0 {
		return
	}
	if t.isEmpty() {
		t.BulkLoad(rects)
		return
	}

	sorted := append([]Rectangle(nil), rects...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].lo[0] < sorted[j].lo[0]
	})

	for i := 0; i < len(sorted); i += t.maxEntries {
		end := i + t.maxEntries
		if end > len(sorted) {
			end = len(sorted)
		}
		chunk := append([]Rectangle(nil), sorted[i:end]...)
		t.attachLeaf(newLeafWith(chunk))
	}
}

// attachLeaf grafts a pre-built leaf node into the tree as a whole,
// avoiding a per-record descent for each of its entries.
func (t *Tree) attachLeaf(leaf *node) {
	if t.root.isLeaf {
		// The root is still a plain data leaf (the tree so far has only
		// ever received single inserts). Demote it into a child of a
		// freshly created internal root alongside the new chunk.
		oldRoot := t.root
		newRoot := &node{isLeaf: false}
		oldRoot.parent = newRoot
		leaf.parent = newRoot
		newRoot.children = []*node{oldRoot, leaf}
		newRoot.entries = []Rectangle{t.unionAll(oldRoot.entries), t.unionAll(leaf.entries)}
		t.root = newRoot
		return
	}
	t.insertLeafInto(t.root, leaf)
}

func (t *Tree) insertLeafInto(n *node, leaf *node) {
	if len(n.children) == 0 || n.children[0].isLeaf {
		n.children = append(n.children, leaf)
		n.entries = append(n.entries, t.unionAll(leaf.entries))
		leaf.parent = n
		t.updateRectangles(n)
		if len(n.entries) > t.maxEntries {
			t.splitNode(n)
		}
		return
	}

	mbr := t.unionAll(leaf.entries)
	subtree := t.chooseSubtree(n, mbr)
	if subtree == nil {
		t.log.Warn("rtree: insertLeafInto found no valid subtree")
		return
	}
	t.insertLeafInto(subtree, leaf)
}
