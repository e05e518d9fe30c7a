package gamemath

import "math"

// Vec2 is a 2D vector in screen space (y grows downward).
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product.
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns the unit vector, or the zero vector for zero input.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// WithLen rescales v to length l, keeping its direction.
func (v Vec2) WithLen(l float64) Vec2 {
	return v.Normalize().Scale(l)
}

// Reflect mirrors v about the unit normal n: v - 2(v·n)n.
func (v Vec2) Reflect(n Vec2) Vec2 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// Lerp interpolates between a and b by t.
func Lerp(a, b Vec2, t float64) Vec2 {
	return a.Add(b.Sub(a).Scale(t))
}

// FromAngle returns a vector of length l pointing at angle (radians).
func FromAngle(angle, l float64) Vec2 {
	return Vec2{math.Cos(angle) * l, math.Sin(angle) * l}
}
