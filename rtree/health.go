package rtree

import "github.com/sirupsen/logrus"

// HealthCheck validates the tree's structural invariants: every internal
// entry's rectangle must contain the union of its child's own entries
// (equal bounds pass; exact equality is not required), and every child's
// parent pointer must point back at its actual parent. Violations are
// logged with the node depth (root = 1) and entry index as fields, and
// cause HealthCheck to return false; it never panics on a malformed tree.
func (t *Tree) HealthCheck() bool {
	if t.root == nil {
		t.log.Warn("rtree: health check found a nil root")
		return false
	}
	return t.checkNode(t.root, 1)
}

func (t *Tree) checkNode(n *node, depth int) bool {
	if n.isLeaf {
		return true
	}

	ok := true
	for i, c := range n.children {
		fields := logrus.Fields{"depth": depth, "index": i}
		if c.parent != n {
			t.log.WithFields(fields).Warn("rtree: child has a parent pointer that does not match its actual parent")
			ok = false
		}

		childMBR := t.unionAll(c.entries)
		if !n.entries[i].contains(childMBR) {
			t.log.WithFields(fields).Warn("rtree: entry does not encompass its child's combined MBR")
			ok = false
		}

		if !t.checkNode(c, depth+1) {
			ok = false
		}
	}
	return ok
}
