package rtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectangleArea(t *testing.T) {
	r := NewRectangle(1, []float32{0, 0}, []float32{4, 3})
	assert.Equal(t, float32(12), r.Area())
}

func TestRectanglePointHasZeroArea(t *testing.T) {
	p := NewPoint(1, []float32{5, 5})
	assert.Equal(t, float32(0), p.Area())
}

func TestUnionIsCommutative(t *testing.T) {
	a := NewRectangle(1, []float32{0, 0}, []float32{2, 2})
	b := NewRectangle(2, []float32{1, 1}, []float32{3, 5})

	assert.Equal(t, a.Union(b).Lo(), b.Union(a).Lo())
	assert.Equal(t, a.Union(b).Hi(), b.Union(a).Hi())
}

func TestUnionEnclosesBoth(t *testing.T) {
	a := NewRectangle(1, []float32{0, 0}, []float32{2, 2})
	b := NewRectangle(2, []float32{5, -1}, []float32{6, 0})
	u := a.Union(b)

	assert.True(t, u.contains(a))
	assert.True(t, u.contains(b))
}

func TestUnionAllOfEmptyIsIdentity(t *testing.T) {
	id := UnionAll(nil, 2)
	assert.Equal(t, NoID, id.ID())
	assert.Equal(t, identity(2), id)
}

func TestUnionAllIdentityIsNeutral(t *testing.T) {
	a := NewRectangle(1, []float32{0, 0}, []float32{2, 2})
	id := identity(2)
	assert.Equal(t, a.Lo(), a.Union(id).Lo())
	assert.Equal(t, a.Hi(), a.Union(id).Hi())
}

func TestIntersectsTouchingBoundary(t *testing.T) {
	a := NewRectangle(1, []float32{0, 0}, []float32{1, 1})
	b := NewRectangle(2, []float32{1, 0}, []float32{2, 1})
	assert.True(t, a.Intersects(b))
	assert.Equal(t, float32(0), a.OverlapArea(b))
}

func TestIntersectsDisjoint(t *testing.T) {
	a := NewRectangle(1, []float32{0, 0}, []float32{1, 1})
	b := NewRectangle(2, []float32{2, 2}, []float32{3, 3})
	assert.False(t, a.Intersects(b))
}

func TestOverlapAreaOfIdenticalRectangleIsItsArea(t *testing.T) {
	a := NewRectangle(1, []float32{0, 0}, []float32{4, 4})
	assert.Equal(t, a.Area(), a.OverlapArea(a))
}

func TestAreaIncreaseOfSelfIsZero(t *testing.T) {
	a := NewRectangle(1, []float32{0, 0}, []float32{4, 4})
	assert.Equal(t, float32(0), a.AreaIncrease(a))
}

func TestCentreOfSymmetricRectangle(t *testing.T) {
	a := NewRectangle(1, []float32{-2, -2}, []float32{2, 2})
	assert.Equal(t, []float32{0, 0}, a.Centre())
}
