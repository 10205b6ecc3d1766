package entity

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/wavemaster/internal/combat"
	"github.com/samdwyer/wavemaster/internal/gamedata"
	"github.com/samdwyer/wavemaster/internal/world"
)

// moveEpsilon is the distance at which a move order counts as reached.
const moveEpsilon = 0.3

// Stats is a snapshot of the champion's progress counters.
type Stats struct {
	Gold     int
	XP       int
	LastHits int
	Combo    int
	MaxCombo int
}

// CooldownStatus describes one ability's cooldown for display.
type CooldownStatus struct {
	Slot      gamedata.Slot
	Ready     bool
	Remaining time.Duration
	Fraction  float64 // 0 just used, 1 ready
	Percent   float64
}

// Champion is the player-controlled unit.
type Champion struct {
	def       *gamedata.ChampionDef
	abilities *gamedata.AbilityTable
	lane      world.Lane
	ledger    *combat.Ledger

	pos      world.Vec2
	order    world.Vec2
	hasOrder bool
	targetID uuid.UUID

	lastAttack time.Duration
	attacked   bool

	lastCast [len(gamedata.Slots)]time.Duration
	cast     [len(gamedata.Slots)]bool

	sprinting bool
	sprintEnd time.Duration
	speedMult float64
}

// NewChampion creates a champion at its start position with every ability ready.
func NewChampion(def *gamedata.ChampionDef, abilities *gamedata.AbilityTable, lane world.Lane) *Champion {
	c := &Champion{
		def:       def,
		abilities: abilities,
		lane:      lane,
		ledger:    combat.NewLedger(def.ComboThreshold, def.ComboBonusGold),
	}
	c.Reset()
	return c
}

// Position returns the champion's lane position.
func (c *Champion) Position() world.Vec2 { return c.pos }

// SetPosition teleports the champion, clamped to the lane, and cancels any
// move order.
func (c *Champion) SetPosition(p world.Vec2) {
	c.pos = c.lane.Clamp(p)
	c.hasOrder = false
}

// MoveOrder returns the pending move destination, if any.
func (c *Champion) MoveOrder() (world.Vec2, bool) { return c.order, c.hasOrder }

// Sprinting reports whether the sprint effect is active.
func (c *Champion) Sprinting() bool { return c.sprinting }

// AttackRange returns the basic attack reach.
func (c *Champion) AttackRange() float64 { return c.def.AttackRange }

// Def returns the champion's base stats.
func (c *Champion) Def() *gamedata.ChampionDef { return c.def }

// IssueMoveOrder sets a destination, clamped to the lane bounds.
func (c *Champion) IssueMoveOrder(p world.Vec2) {
	c.order = c.lane.Clamp(p)
	c.hasOrder = true
}

// Update ends an expired sprint and advances the champion along its move order.
func (c *Champion) Update(dt, now time.Duration) {
	if c.sprinting && now > c.sprintEnd {
		c.sprinting = false
	}
	if !c.hasOrder {
		return
	}

	dist := c.pos.Dist(c.order)
	if dist < moveEpsilon {
		c.hasOrder = false
		return
	}

	speed := c.def.MoveSpeed
	if c.sprinting {
		speed *= c.speedMult
	}
	step := math.Min(dist, speed*dt.Seconds())
	c.pos = c.lane.Clamp(c.pos.MoveToward(c.order, step))

	if c.pos.Dist(c.order) < moveEpsilon {
		c.hasOrder = false
	}
}

// SetTarget selects the unit the champion focuses. The reference is weak: it
// is resolved by ID against the live collection every time it is used.
func (c *Champion) SetTarget(id uuid.UUID) { c.targetID = id }

// TargetID returns the selected unit's ID, or uuid.Nil.
func (c *Champion) TargetID() uuid.UUID { return c.targetID }

// ResolveTarget finds the selected unit among units. A selection that is
// missing or dead is cleared.
func (c *Champion) ResolveTarget(units []*Unit) *Unit {
	if c.targetID == uuid.Nil {
		return nil
	}
	for _, u := range units {
		if u.id == c.targetID && u.IsAlive() {
			return u
		}
	}
	c.targetID = uuid.Nil
	return nil
}

// TryAttack performs a basic attack. It does nothing when the target is nil
// or dead, out of range, or the attack is on cooldown. killed is true when
// the attack landed the last hit, with reward holding what it paid.
func (c *Champion) TryAttack(target combat.Target, now time.Duration) (reward combat.Reward, killed bool) {
	if !combat.InRange(c.pos, target, c.def.AttackRange) {
		return combat.Reward{}, false
	}
	if c.attacked && now-c.lastAttack < c.def.AttackCooldown() {
		return combat.Reward{}, false
	}

	c.lastAttack = now
	c.attacked = true
	return c.hit(target, c.def.AttackDamage)
}

func (c *Champion) hit(target combat.Target, damage int) (combat.Reward, bool) {
	if res := combat.Strike(target, damage); res.Killed {
		return c.ledger.Credit(target), true
	}
	return combat.Reward{}, false
}

// CastAbility uses the ability in slot against enemies. It returns false when
// the slot is unknown or the ability is on cooldown. A successful cast always
// consumes the cooldown, even when nothing was in reach.
func (c *Champion) CastAbility(slot gamedata.Slot, now time.Duration, enemies []*Unit) ([]combat.Reward, bool) {
	def := c.abilities.Get(slot)
	if def == nil {
		return nil, false
	}
	if c.cast[slot] && now-c.lastCast[slot] < def.Cooldown() {
		return nil, false
	}
	c.lastCast[slot] = now
	c.cast[slot] = true

	var rewards []combat.Reward
	switch def.Effect {
	case gamedata.EffectStrike:
		target := c.ResolveTarget(enemies)
		if target != nil && combat.InRange(c.pos, target, def.Range) {
			if r, ok := c.hit(target, def.Damage); ok {
				rewards = append(rewards, r)
			}
		}
	case gamedata.EffectBurst:
		for _, u := range combat.Within(c.pos, def.Range, enemies) {
			if r, ok := c.hit(u, def.Damage); ok {
				rewards = append(rewards, r)
			}
		}
	case gamedata.EffectSprint:
		c.sprinting = true
		c.sprintEnd = now + def.Duration()
		c.speedMult = def.SpeedMultiplier
	}
	return rewards, true
}

// Cooldowns reports the cooldown of every ability slot at now.
func (c *Champion) Cooldowns(now time.Duration) [len(gamedata.Slots)]CooldownStatus {
	var out [len(gamedata.Slots)]CooldownStatus
	for i, slot := range gamedata.Slots {
		out[i] = CooldownStatus{Slot: slot, Ready: true, Fraction: 1, Percent: 100}
		def := c.abilities.Get(slot)
		if def == nil || !c.cast[slot] || def.Cooldown() <= 0 {
			continue
		}

		elapsed := now - c.lastCast[slot]
		remaining := max(0, def.Cooldown()-elapsed)
		fraction := math.Min(1, float64(elapsed)/float64(def.Cooldown()))
		out[i] = CooldownStatus{
			Slot:      slot,
			Ready:     remaining == 0,
			Remaining: remaining,
			Fraction:  fraction,
			Percent:   fraction * 100,
		}
	}
	return out
}

// Stats returns a snapshot of the progress counters.
func (c *Champion) Stats() Stats {
	return Stats{
		Gold:     c.ledger.Gold,
		XP:       c.ledger.XP,
		LastHits: c.ledger.LastHits,
		Combo:    c.ledger.Combo,
		MaxCombo: c.ledger.MaxCombo,
	}
}

// ResetCombo ends the current kill streak.
func (c *Champion) ResetCombo() { c.ledger.ResetCombo() }

// Reset zeroes progress, readies every ability and returns the champion to
// its start position with no order, target or sprint.
func (c *Champion) Reset() {
	c.ledger.Reset()
	c.pos = c.lane.Clamp(world.Vec2{X: c.def.StartX, Z: c.def.StartZ})
	c.hasOrder = false
	c.targetID = uuid.Nil
	c.attacked = false
	c.cast = [len(gamedata.Slots)]bool{}
	c.sprinting = false
	c.speedMult = 1
}
