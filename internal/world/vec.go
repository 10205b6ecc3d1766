package world

import "math"

// Vec2 is a point or direction on the lane plane. Height is never modelled.
type Vec2 struct {
	X float64 // lateral, across the lane
	Z float64 // depth, ally base (negative) to enemy base (positive)
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Z - o.Z} }

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Z * k} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Z) }

// Dist returns the planar distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Normalize returns v scaled to unit length, or the zero vector when v is zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Z / l}
}

// MoveToward steps from v toward target by at most step, never overshooting.
func (v Vec2) MoveToward(target Vec2, step float64) Vec2 {
	delta := target.Sub(v)
	dist := delta.Len()
	if dist <= step || dist == 0 {
		return target
	}
	return v.Add(delta.Scale(step / dist))
}
