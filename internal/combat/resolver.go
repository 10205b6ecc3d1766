// Package combat provides hit resolution and kill-reward accounting.
package combat

import (
	"github.com/google/uuid"

	"github.com/samdwyer/wavemaster/internal/world"
)

// Combatant is the interface for any entity that can be hit.
type Combatant interface {
	IsAlive() bool
	Health() int
	MaxHealth() int

	// TakeDamage applies damage and reports the damage actually dealt and
	// whether this hit caused the death. killed is true at most once per
	// combatant; damage to a dead combatant deals nothing.
	TakeDamage(amount int) (dealt int, killed bool)
}

// Target is a combatant on the lane that pays a bounty when last-hit.
type Target interface {
	Combatant
	ID() uuid.UUID
	Position() world.Vec2
	Bounty() (gold, xp int)
}

// HitResult contains the outcome of one hit.
type HitResult struct {
	Damage int
	Killed bool
}

// Strike applies damage to target. A nil or dead target is a silent no-op.
func Strike(target Combatant, damage int) HitResult {
	if target == nil || !target.IsAlive() || damage <= 0 {
		return HitResult{}
	}
	dealt, killed := target.TakeDamage(damage)
	return HitResult{Damage: dealt, Killed: killed}
}

// InRange reports whether target is alive and within reach of origin.
func InRange(origin world.Vec2, target Target, reach float64) bool {
	if target == nil || !target.IsAlive() {
		return false
	}
	return origin.Dist(target.Position()) <= reach
}

// Within returns the alive targets whose distance to center is at most radius,
// preserving input order.
func Within[T Target](center world.Vec2, radius float64, targets []T) []T {
	var hits []T
	for _, t := range targets {
		if InRange(center, t, radius) {
			hits = append(hits, t)
		}
	}
	return hits
}

// LowestHealth returns the alive target with the least health, first-found on
// ties, and false when there is none.
func LowestHealth[T Target](targets []T) (T, bool) {
	var lowest T
	found := false
	for _, t := range targets {
		if !t.IsAlive() {
			continue
		}
		if !found || t.Health() < lowest.Health() {
			lowest = t
			found = true
		}
	}
	return lowest, found
}
