package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/wavemaster/internal/combat"
	"github.com/samdwyer/wavemaster/internal/gamedata"
	"github.com/samdwyer/wavemaster/internal/world"
)

// Unit is one minion on the lane.
type Unit struct {
	id        uuid.UUID
	team      Team
	archetype gamedata.Archetype
	def       *gamedata.ArchetypeDef

	health int
	pos    world.Vec2
	state  UnitState

	nextAttack     time.Duration // session time at which the attack is ready again
	attackingTower bool

	dead       bool
	diedAt     time.Duration
	diedAtSeen bool
}

// NewUnit creates a full-health unit of the given archetype at pos.
func NewUnit(team Team, archetype gamedata.Archetype, def *gamedata.ArchetypeDef, pos world.Vec2) *Unit {
	return &Unit{
		id:        uuid.New(),
		team:      team,
		archetype: archetype,
		def:       def,
		health:    def.MaxHealth,
		pos:       pos,
		state:     StateSeeking,
	}
}

var _ combat.Target = (*Unit)(nil)

// ID returns the unit's unique identifier.
func (u *Unit) ID() uuid.UUID { return u.id }

// Team returns the side the unit fights for.
func (u *Unit) Team() Team { return u.team }

// Archetype returns the unit's stat profile.
func (u *Unit) Archetype() gamedata.Archetype { return u.archetype }

// Def returns the fixed stats of the unit's archetype.
func (u *Unit) Def() *gamedata.ArchetypeDef { return u.def }

// Position returns the unit's lane position.
func (u *Unit) Position() world.Vec2 { return u.pos }

// SetPosition places the unit. Used by scenario setup.
func (u *Unit) SetPosition(p world.Vec2) { u.pos = p }

// State returns the current AI state.
func (u *Unit) State() UnitState { return u.state }

// IsAlive returns true until the unit has been killed. A nil unit is dead.
func (u *Unit) IsAlive() bool { return u != nil && !u.dead }

// Health returns current health, never below zero.
func (u *Unit) Health() int { return u.health }

// MaxHealth returns the archetype's maximum health.
func (u *Unit) MaxHealth() int { return u.def.MaxHealth }

// Bounty returns the gold and xp paid for the last hit on this unit.
func (u *Unit) Bounty() (gold, xp int) { return u.def.Gold, u.def.XP }

// AttackingTower reports whether the unit has reached the opposing tower.
func (u *Unit) AttackingTower() bool { return u.attackingTower }

// SetAttackingTower flags the unit as having reached the opposing tower.
// The flag is terminal.
func (u *Unit) SetAttackingTower() { u.attackingTower = true }

// TakeDamage reduces health, clamped at zero. The hit that takes health to
// zero reports killed; damage to a dead unit does nothing.
func (u *Unit) TakeDamage(amount int) (dealt int, killed bool) {
	if u.dead || amount <= 0 {
		return 0, false
	}
	dealt = min(amount, u.health)
	u.health -= dealt
	if u.health <= 0 {
		u.health = 0
		u.dead = true
		u.state = StateDead
		return dealt, true
	}
	return dealt, false
}

// Expire reports whether a dead unit has lingered for at least grace.
// The first call after death stamps the death time.
func (u *Unit) Expire(now, grace time.Duration) bool {
	if !u.dead {
		return false
	}
	if !u.diedAtSeen {
		u.diedAt = now
		u.diedAtSeen = true
	}
	return now-u.diedAt >= grace
}
