// Package world provides lane geometry and planar math.
package world

// Lane describes the fixed geometry of the single lane.
type Lane struct {
	HalfLength  float64 // Z runs from -HalfLength (ally base) to +HalfLength (enemy base)
	HalfWidth   float64 // X runs from -HalfWidth to +HalfWidth
	AllyTowerZ  float64
	EnemyTowerZ float64
	AllySpawnZ  float64
	EnemySpawnZ float64
}

// DefaultLane is the lane every mode plays on.
var DefaultLane = Lane{
	HalfLength:  40,
	HalfWidth:   10,
	AllyTowerZ:  -35,
	EnemyTowerZ: 35,
	AllySpawnZ:  -45,
	EnemySpawnZ: 45,
}

// Clamp returns p limited to the lane bounds.
func (l Lane) Clamp(p Vec2) Vec2 {
	return Vec2{
		X: clamp(p.X, -l.HalfWidth, l.HalfWidth),
		Z: clamp(p.Z, -l.HalfLength, l.HalfLength),
	}
}

// Contains returns true if p lies inside the lane bounds.
func (l Lane) Contains(p Vec2) bool {
	return p.X >= -l.HalfWidth && p.X <= l.HalfWidth &&
		p.Z >= -l.HalfLength && p.Z <= l.HalfLength
}

// Normalized maps a depth to [-1, 1], ally tower side to enemy tower side.
func (l Lane) Normalized(z float64) float64 {
	if l.HalfLength == 0 {
		return 0
	}
	return clamp(z/l.HalfLength, -1, 1)
}

// AllyBase returns the ally base point; enemy units march on it when nothing blocks them.
func (l Lane) AllyBase() Vec2 { return Vec2{Z: -l.HalfLength} }

// EnemyBase returns the enemy base point, the ally units' fallback destination.
func (l Lane) EnemyBase() Vec2 { return Vec2{Z: l.HalfLength} }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
