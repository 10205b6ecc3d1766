package ui

import (
	"math"

	"github.com/samdwyer/wavemaster/internal/world"
)

// Viewport maps a rectangle of world space onto a rectangle of cells.
// Lane depth (Z) runs left to right, lateral offset (X) top to bottom.
type Viewport struct {
	HalfX, HalfZ float64

	Left, Top     int
	Width, Height int
}

// ToScreen returns the cell showing p. ok is false when p lies outside the
// viewport.
func (v Viewport) ToScreen(p world.Vec2) (col, row int, ok bool) {
	if v.Width < 2 || v.Height < 2 || v.HalfX <= 0 || v.HalfZ <= 0 {
		return 0, 0, false
	}
	fz := (p.Z + v.HalfZ) / (2 * v.HalfZ)
	fx := (p.X + v.HalfX) / (2 * v.HalfX)
	if fz < 0 || fz > 1 || fx < 0 || fx > 1 {
		return 0, 0, false
	}
	col = v.Left + int(math.Round(fz*float64(v.Width-1)))
	row = v.Top + int(math.Round(fx*float64(v.Height-1)))
	return col, row, true
}

// ToWorld returns the world point at the centre of a cell. ok is false for
// cells outside the viewport.
func (v Viewport) ToWorld(col, row int) (p world.Vec2, ok bool) {
	if v.Width < 2 || v.Height < 2 {
		return world.Vec2{}, false
	}
	if col < v.Left || col >= v.Left+v.Width || row < v.Top || row >= v.Top+v.Height {
		return world.Vec2{}, false
	}
	fz := float64(col-v.Left) / float64(v.Width-1)
	fx := float64(row-v.Top) / float64(v.Height-1)
	return world.Vec2{
		X: fx*2*v.HalfX - v.HalfX,
		Z: fz*2*v.HalfZ - v.HalfZ,
	}, true
}
