package gamemath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegularPolygonIsClosedAndConvex(t *testing.T) {
	center := V(300, 300)
	for sides := 3; sides <= 5; sides++ {
		verts := RegularPolygon(center, 260, sides)
		require.Len(t, verts, sides)

		edges := Edges(verts)
		require.Len(t, edges, sides)
		for i, e := range edges {
			next := edges[(i+1)%sides]
			assert.Equal(t, e.B, next.A, "edge %d must end where edge %d starts", i, (i+1)%sides)
			assert.InDelta(t, edges[0].Length, e.Length, 1e-9)

			// Every turn goes the same way for a convex polygon.
			d1 := e.B.Sub(e.A)
			d2 := next.B.Sub(next.A)
			assert.Greater(t, d1.Cross(d2), 0.0)

			assert.Greater(t, e.Distance(center), 0.0, "normal of edge %d must point inward", i)
		}
	}
}

func TestRegularPolygonFirstVertexIsTop(t *testing.T) {
	verts := RegularPolygon(V(0, 0), 10, 4)
	assert.InDelta(t, 0, verts[0].X, 1e-9)
	assert.InDelta(t, -10, verts[0].Y, 1e-9)
}

func TestReflectPreservesLength(t *testing.T) {
	v := V(3, -4)
	n := V(1, 1).Normalize()
	r := v.Reflect(n)
	assert.InDelta(t, v.Len(), r.Len(), 1e-9)
	assert.InDelta(t, -v.Dot(n), r.Dot(n), 1e-9)
}

func TestEdgeProject(t *testing.T) {
	e := NewEdge(V(0, 0), V(10, 0))
	assert.InDelta(t, 0.25, e.Project(V(2.5, 7)), 1e-9)
	assert.InDelta(t, -0.5, e.Project(V(-5, 0)), 1e-9)
	assert.Equal(t, V(5, 0), e.Midpoint())
}

func TestWithLenOnZeroVector(t *testing.T) {
	assert.Equal(t, Vec2{}, Vec2{}.WithLen(5))
	assert.InDelta(t, 5, V(0.1, 0.2).WithLen(5).Len(), 1e-9)
}

func TestMoveToward(t *testing.T) {
	assert.Equal(t, 5.0, MoveToward(3, 5, 4))
	assert.Equal(t, 1.0, MoveToward(3, -5, 2))
	assert.Equal(t, 2.0, MoveToward(2, 2, 1))
	assert.Equal(t, math.Pi, Clamp(math.Pi, 0, 4))
}
