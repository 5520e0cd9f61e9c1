package rtree

import "github.com/sirupsen/logrus"

// Tree is an in-memory, height-balanced R*-tree. Its zero value is not
// usable; construct one with New. A Tree is single-threaded: it holds no
// locks and every method runs synchronously to completion. Callers that
// share one Tree across goroutines (see package server) must serialize
// access themselves.
type Tree struct {
	root       *node
	maxEntries int
	minEntries int
	dimensions int

	log *logrus.Logger

	totalVisits    uint64
	leafVisits     uint64
	internalVisits uint64
}

// New constructs an empty Tree with the given fan-out and dimensionality.
// maxEntries below 2 is raised to 2, the smallest fan-out a split can
// honour. minEntries is derived as maxEntries/2, matching the reference
// implementation.
func New(maxEntries, dimensions int) *Tree {
	if maxEntries < 2 {
		maxEntries = 2
	}
	return &Tree{
		root:       newLeaf(),
		maxEntries: maxEntries,
		minEntries: maxEntries / 2,
		dimensions: dimensions,
		log:        logrus.StandardLogger(),
	}
}

// SetLogger overrides the logger used for defensive diagnostics and health
// check violations. Passing nil restores the standard logger.
func (t *Tree) SetLogger(log *logrus.Logger) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	t.log = log
}

// Dimensions reports the dimensionality the tree was constructed with.
func (t *Tree) Dimensions() int { return t.dimensions }

// MaxEntries reports the configured fan-out.
func (t *Tree) MaxEntries() int { return t.maxEntries }

// MinEntries reports the derived minimum fan-out.
func (t *Tree) MinEntries() int { return t.minEntries }

func (t *Tree) isEmpty() bool {
	return t.root.isLeaf && len(t.root.entries) == 0
}

func (t *Tree) unionAll(rects []Rectangle) Rectangle {
	return UnionAll(rects, t.dimensions)
}

// Insert adds a single entry to the tree, descending to the best leaf,
// appending it, then propagating MBR updates upward and resolving any
// overflow via forced reinsertion (once per top-level Insert call) or node
// splitting.
func (t *Tree) Insert(entry Rectangle) {
	t.insert(t.root, entry, true)
}

// insert implements the recursive descent shared by the public Insert and
// by forced reinsertion's re-descent of lifted entries. allowReinsertion is
// threaded straight through the call stack rather than tracked per level:
// a single top-level Insert only ever walks one root-to-leaf path, so at
// most one node can be the first to overflow, and the per-level and
// single-flag formulations of "once per level" coincide.
func (t *Tree) insert(n *node, entry Rectangle, allowReinsertion bool) {
	if n == nil {
		t.log.Warn("rtree: insert called with a nil node")
		return
	}

	if n.isLeaf {
		n.entries = append(n.entries, entry)
		t.updateRectangles(n)

		if len(n.entries) > t.maxEntries {
			if allowReinsertion {
				t.reinsert(n)
			} else {
				t.splitNode(n)
			}
		}
		return
	}

	subtree := t.chooseSubtree(n, entry)
	if subtree == nil {
		t.log.Warn("rtree: chooseSubtree found no valid child")
		return
	}
	t.insert(subtree, entry, allowReinsertion)
}

// chooseSubtree selects, among n's children, the one whose MBR needs the
// least area increase to absorb rect; ties are broken by smaller current
// area. It is used both for a single record's rectangle (plain Insert) and
// for an already-combined chunk MBR (batch insert).
func (t *Tree) chooseSubtree(n *node, rect Rectangle) *node {
	if len(n.entries) == 0 {
		return nil
	}
	best := 0
	bestIncrease := n.entries[0].AreaIncrease(rect)
	bestArea := n.entries[0].Area()
	for i := 1; i < len(n.entries); i++ {
		increase := n.entries[i].AreaIncrease(rect)
		area := n.entries[i].Area()
		if increase < bestIncrease || (increase == bestIncrease && area < bestArea) {
			best = i
			bestIncrease = increase
			bestArea = area
		}
	}
	return n.children[best]
}

// updateRectangles walks from n up to the root, recomputing each ancestor's
// entry-for-this-child as the union of the child's own entries (which, for
// an internal node, are themselves already-maintained child MBRs).
func (t *Tree) updateRectangles(n *node) {
	for n != nil && n.parent != nil {
		parent := n.parent
		idx := childIndex(parent, n)
		if idx == -1 {
			t.log.Warn("rtree: node missing from its parent's children during MBR propagation")
			return
		}
		parent.entries[idx] = t.unionAll(n.entries)
		n = parent
	}
}
