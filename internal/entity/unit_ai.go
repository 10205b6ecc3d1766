package entity

import (
	"time"

	"github.com/samdwyer/wavemaster/internal/combat"
	"github.com/samdwyer/wavemaster/internal/world"
)

// UnitState is a step of the minion AI state machine.
type UnitState int

const (
	StateSeeking UnitState = iota
	StateAdvancing
	StateAttacking
	StateDead
)

// String returns the state name.
func (s UnitState) String() string {
	switch s {
	case StateSeeking:
		return "seeking"
	case StateAdvancing:
		return "advancing"
	case StateAttacking:
		return "attacking"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Nearest returns the closest alive unit to from, or nil. Ties go to the
// unit found first.
func Nearest(from world.Vec2, units []*Unit) *Unit {
	var best *Unit
	bestDist := 0.0
	for _, u := range units {
		if !u.IsAlive() {
			continue
		}
		d := from.Dist(u.pos)
		if best == nil || d < bestDist {
			best = u
			bestDist = d
		}
	}
	return best
}

// Update runs one AI step against the opposing collection. The returned hit
// is non-zero when the unit struck its target this tick.
func (u *Unit) Update(opponents []*Unit, lane world.Lane, now, dt time.Duration) combat.HitResult {
	if u.dead {
		u.state = StateDead
		return combat.HitResult{}
	}

	u.state = StateSeeking
	step := u.def.MoveSpeed * dt.Seconds()

	target := Nearest(u.pos, opponents)
	if target == nil {
		u.state = StateAdvancing
		u.pos = u.pos.MoveToward(u.base(lane), step)
		return combat.HitResult{}
	}

	if u.pos.Dist(target.pos) > u.def.AttackRange {
		u.state = StateAdvancing
		u.pos = u.pos.MoveToward(target.pos, step)
		return combat.HitResult{}
	}

	u.state = StateAttacking
	if now < u.nextAttack {
		return combat.HitResult{}
	}
	u.nextAttack = now + u.def.AttackInterval()
	return combat.Strike(target, u.def.Damage)
}

// base returns the point the unit marches on when no opponent is alive.
func (u *Unit) base(lane world.Lane) world.Vec2 {
	if u.team == TeamAlly {
		return lane.EnemyBase()
	}
	return lane.AllyBase()
}
