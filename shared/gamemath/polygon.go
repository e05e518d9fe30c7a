package gamemath

import "math"

// RegularPolygon returns the vertices of a regular polygon. Vertex i sits at
// angle i*2π/sides - π/2, so vertex 0 is straight up and the winding is
// clockwise on screen.
func RegularPolygon(center Vec2, radius float64, sides int) []Vec2 {
	verts := make([]Vec2, sides)
	for i := range sides {
		angle := float64(i)*2*math.Pi/float64(sides) - math.Pi/2
		verts[i] = center.Add(FromAngle(angle, radius))
	}
	return verts
}

// Edge is one side of a polygon, from A to B.
type Edge struct {
	A, B   Vec2
	Normal Vec2 // Unit normal pointing into the polygon
	Length float64
}

// NewEdge builds the edge a→b with the normal (-dy, dx)/len.
func NewEdge(a, b Vec2) Edge {
	d := b.Sub(a)
	l := d.Len()
	var n Vec2
	if l > 0 {
		n = Vec2{-d.Y / l, d.X / l}
	}
	return Edge{A: a, B: b, Normal: n, Length: l}
}

// Edges closes verts into a loop of edges; edge i runs from vertex i to i+1.
func Edges(verts []Vec2) []Edge {
	edges := make([]Edge, len(verts))
	for i := range verts {
		edges[i] = NewEdge(verts[i], verts[(i+1)%len(verts)])
	}
	return edges
}

// Distance is the signed distance of p from the edge line, positive inside.
func (e Edge) Distance(p Vec2) float64 {
	return p.Sub(e.A).Dot(e.Normal)
}

// Project returns the parameter t of p projected onto the edge; t in [0,1]
// lies within the segment.
func (e Edge) Project(p Vec2) float64 {
	if e.Length == 0 {
		return 0
	}
	d := e.B.Sub(e.A)
	return p.Sub(e.A).Dot(d) / (e.Length * e.Length)
}

// PointAt returns the point at parameter t along the edge.
func (e Edge) PointAt(t float64) Vec2 {
	return Lerp(e.A, e.B, t)
}

func (e Edge) Midpoint() Vec2 {
	return e.PointAt(0.5)
}
