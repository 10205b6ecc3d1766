package entity

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/wavemaster/internal/gamedata"
	"github.com/samdwyer/wavemaster/internal/world"
)

func testRegistry(t *testing.T) *gamedata.Registry {
	t.Helper()
	registry, err := gamedata.LoadRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}
	return registry
}

func newTestUnit(t *testing.T, team Team, a gamedata.Archetype, pos world.Vec2) *Unit {
	t.Helper()
	return NewUnit(team, a, testRegistry(t).Stats.Get(a), pos)
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestTeamOpponent(t *testing.T) {
	if TeamAlly.Opponent() != TeamEnemy || TeamEnemy.Opponent() != TeamAlly {
		t.Error("Opponent should swap teams")
	}
	if TeamAlly.String() != "ally" || TeamEnemy.String() != "enemy" {
		t.Errorf("team names = %q/%q", TeamAlly, TeamEnemy)
	}
}

func TestUnitDiesExactlyOnce(t *testing.T) {
	u := newTestUnit(t, TeamEnemy, gamedata.ArchetypeRanged, world.Vec2{})

	kills := 0
	prev := u.Health()
	for i := 0; i < 10; i++ {
		_, killed := u.TakeDamage(65)
		if killed {
			kills++
		}
		if u.Health() > prev {
			t.Fatalf("health rose from %d to %d", prev, u.Health())
		}
		prev = u.Health()
	}

	if kills != 1 {
		t.Errorf("kills = %d, want exactly 1", kills)
	}
	if u.IsAlive() || u.Health() != 0 || u.State() != StateDead {
		t.Errorf("unit after lethal damage: alive=%v health=%d state=%s", u.IsAlive(), u.Health(), u.State())
	}
}

func TestUnitExpire(t *testing.T) {
	u := newTestUnit(t, TeamAlly, gamedata.ArchetypeLight, world.Vec2{})
	grace := 500 * time.Millisecond

	if u.Expire(time.Second, grace) {
		t.Error("alive unit should never expire")
	}

	u.TakeDamage(1000)
	if u.Expire(time.Second, grace) {
		t.Error("unit should not expire the tick it is first seen dead")
	}
	if u.Expire(1400*time.Millisecond, grace) {
		t.Error("unit should linger for the grace period")
	}
	if !u.Expire(1500*time.Millisecond, grace) {
		t.Error("unit should expire once grace has elapsed")
	}
}

func TestNilUnitIsDead(t *testing.T) {
	var u *Unit
	if u.IsAlive() {
		t.Error("nil unit should not be alive")
	}
}

func TestNearestTieGoesToFirst(t *testing.T) {
	first := newTestUnit(t, TeamEnemy, gamedata.ArchetypeLight, world.Vec2{X: -1, Z: 5})
	second := newTestUnit(t, TeamEnemy, gamedata.ArchetypeLight, world.Vec2{X: 1, Z: 5})
	dead := newTestUnit(t, TeamEnemy, gamedata.ArchetypeLight, world.Vec2{Z: 1})
	dead.TakeDamage(10000)

	got := Nearest(world.Vec2{}, []*Unit{dead, first, second})
	if got != first {
		t.Error("Nearest should skip dead units and keep the first of equal distances")
	}
	if Nearest(world.Vec2{}, []*Unit{dead}) != nil {
		t.Error("Nearest over dead units should be nil")
	}
}

func TestUnitAdvancesToBaseWithoutOpponents(t *testing.T) {
	lane := world.DefaultLane
	ally := newTestUnit(t, TeamAlly, gamedata.ArchetypeLight, world.Vec2{Z: 0})
	enemy := newTestUnit(t, TeamEnemy, gamedata.ArchetypeLight, world.Vec2{Z: 0})

	ally.Update(nil, lane, time.Second, time.Second)
	enemy.Update(nil, lane, time.Second, time.Second)

	if !near(ally.Position().Z, 2) {
		t.Errorf("ally Z = %v, want 2 (marching on the enemy base)", ally.Position().Z)
	}
	if !near(enemy.Position().Z, -2) {
		t.Errorf("enemy Z = %v, want -2 (marching on the ally base)", enemy.Position().Z)
	}
	if ally.State() != StateAdvancing {
		t.Errorf("state = %s, want advancing", ally.State())
	}
}

func TestUnitAdvancesThenAttacks(t *testing.T) {
	lane := world.DefaultLane
	ally := newTestUnit(t, TeamAlly, gamedata.ArchetypeLight, world.Vec2{Z: 0})
	enemy := newTestUnit(t, TeamEnemy, gamedata.ArchetypeLight, world.Vec2{Z: 4})
	enemies := []*Unit{enemy}

	// 4 apart, range 2.5: one second of movement closes 2 units
	hit := ally.Update(enemies, lane, time.Second, time.Second)
	if hit.Damage != 0 || ally.State() != StateAdvancing {
		t.Fatalf("first tick: hit=%+v state=%s, want advancing with no hit", hit, ally.State())
	}
	if !near(ally.Position().Z, 2) {
		t.Fatalf("ally Z = %v, want 2", ally.Position().Z)
	}

	hit = ally.Update(enemies, lane, 2*time.Second, 100*time.Millisecond)
	if ally.State() != StateAttacking || hit.Damage != 12 {
		t.Fatalf("second tick: hit=%+v state=%s, want attacking for 12", hit, ally.State())
	}
	if !near(ally.Position().Z, 2) {
		t.Error("attacking unit should not move")
	}

	// cooldown pending
	if hit = ally.Update(enemies, lane, 2500*time.Millisecond, 100*time.Millisecond); hit.Damage != 0 {
		t.Errorf("attack before interval dealt %d", hit.Damage)
	}
	if hit = ally.Update(enemies, lane, 3*time.Second, 100*time.Millisecond); hit.Damage != 12 {
		t.Errorf("attack after interval dealt %d, want 12", hit.Damage)
	}
	if enemy.Health() != 480-24 {
		t.Errorf("enemy health = %d, want %d", enemy.Health(), 480-24)
	}
}

func TestUnitDropsDeadTarget(t *testing.T) {
	lane := world.DefaultLane
	ally := newTestUnit(t, TeamAlly, gamedata.ArchetypeLight, world.Vec2{Z: 0})
	enemy := newTestUnit(t, TeamEnemy, gamedata.ArchetypeLight, world.Vec2{Z: 1})
	enemy.TakeDamage(10000)

	hit := ally.Update([]*Unit{enemy}, lane, time.Second, time.Second)
	if hit.Damage != 0 || ally.State() != StateAdvancing {
		t.Errorf("hit=%+v state=%s, want the dead target ignored", hit, ally.State())
	}
}

func newTestChampion(t *testing.T) *Champion {
	t.Helper()
	registry := testRegistry(t)
	return NewChampion(registry.Champion, registry.Abilities, world.DefaultLane)
}

func TestChampionStartsAtStartPosition(t *testing.T) {
	c := newTestChampion(t)
	if c.Position() != (world.Vec2{X: 0, Z: -20}) {
		t.Errorf("start position = %+v, want (0, -20)", c.Position())
	}
	for _, cd := range c.Cooldowns(0) {
		if !cd.Ready || cd.Percent != 100 {
			t.Errorf("slot %s should start ready, got %+v", cd.Slot, cd)
		}
	}
}

func TestChampionMoveOrder(t *testing.T) {
	c := newTestChampion(t)
	c.IssueMoveOrder(world.Vec2{X: 0, Z: -16})

	c.Update(250*time.Millisecond, 250*time.Millisecond)
	if !near(c.Position().Z, -18) {
		t.Fatalf("Z after 250ms = %v, want -18", c.Position().Z)
	}

	c.Update(time.Second, 1250*time.Millisecond)
	if !near(c.Position().Z, -16) {
		t.Errorf("Z = %v, want to stop exactly on the order", c.Position().Z)
	}
	if _, ok := c.MoveOrder(); ok {
		t.Error("order should clear once reached")
	}
}

func TestChampionMoveOrderClamped(t *testing.T) {
	c := newTestChampion(t)
	c.IssueMoveOrder(world.Vec2{X: 50, Z: -100})

	order, ok := c.MoveOrder()
	if !ok || order != (world.Vec2{X: 10, Z: -40}) {
		t.Errorf("order = %+v, want clamped to (10, -40)", order)
	}
}

func TestChampionSprintMovement(t *testing.T) {
	c := newTestChampion(t)

	if _, ok := c.CastAbility(gamedata.SlotE, 0, nil); !ok {
		t.Fatal("sprint cast should succeed")
	}
	c.IssueMoveOrder(world.Vec2{Z: 80})

	step := 100 * time.Millisecond
	for now := step; now <= 2*time.Second; now += step {
		c.Update(step, now)
	}
	// 16 units/s for 2s from Z -20
	if math.Abs(c.Position().Z-12) > 1e-6 {
		t.Errorf("Z after sprint = %v, want 12", c.Position().Z)
	}

	c.Update(step, 2*time.Second+step)
	if c.Sprinting() {
		t.Error("sprint should end after its duration")
	}
	if math.Abs(c.Position().Z-12.8) > 1e-6 {
		t.Errorf("Z after sprint ends = %v, want 12.8", c.Position().Z)
	}
}

func TestChampionTryAttack(t *testing.T) {
	c := newTestChampion(t)
	target := newTestUnit(t, TeamEnemy, gamedata.ArchetypeRanged, world.Vec2{Z: -16})
	far := newTestUnit(t, TeamEnemy, gamedata.ArchetypeRanged, world.Vec2{Z: -10})

	if _, killed := c.TryAttack(far, 0); killed || far.Health() != far.MaxHealth() {
		t.Error("out of range attack should do nothing")
	}
	var none *Unit
	if _, killed := c.TryAttack(none, 0); killed {
		t.Error("attack on nil target should do nothing")
	}

	c.TryAttack(target, 0)
	if target.Health() != 290-65 {
		t.Fatalf("health = %d, want %d", target.Health(), 290-65)
	}

	c.TryAttack(target, 500*time.Millisecond)
	if target.Health() != 290-65 {
		t.Error("attack during cooldown should do nothing")
	}

	// 290 hp: 5 hits of 65
	var reward struct {
		gold   int
		killed bool
	}
	for i, now := 0, 600*time.Millisecond; i < 4; i, now = i+1, now+600*time.Millisecond {
		r, killed := c.TryAttack(target, now)
		if killed {
			reward.gold, reward.killed = r.Gold, true
		}
	}
	if !reward.killed || reward.gold != 14 {
		t.Errorf("kill reward = %+v, want 14 gold", reward)
	}
	if s := c.Stats(); s.LastHits != 1 || s.Gold != 14 || s.XP != 30 || s.Combo != 1 {
		t.Errorf("stats = %+v", s)
	}
}

func TestChampionComboBonus(t *testing.T) {
	c := newTestChampion(t)

	now := time.Duration(0)
	for kill := 1; kill <= 6; kill++ {
		u := newTestUnit(t, TeamEnemy, gamedata.ArchetypeLight, world.Vec2{Z: -18})
		u.TakeDamage(u.Health() - 1)

		r, killed := c.TryAttack(u, now)
		if !killed {
			t.Fatalf("kill %d did not land", kill)
		}
		want := 21
		if kill >= 5 {
			want += 10
		}
		if r.Gold != want {
			t.Errorf("kill %d gold = %d, want %d", kill, r.Gold, want)
		}
		now += time.Second
	}
}

func TestChampionPowerStrike(t *testing.T) {
	c := newTestChampion(t)
	target := newTestUnit(t, TeamEnemy, gamedata.ArchetypeLight, world.Vec2{Z: -17})
	enemies := []*Unit{target}

	// no target selected: cooldown is consumed anyway
	if _, ok := c.CastAbility(gamedata.SlotA, 0, enemies); !ok {
		t.Fatal("first cast should succeed")
	}
	if target.Health() != target.MaxHealth() {
		t.Error("strike without a target should not deal damage")
	}
	if _, ok := c.CastAbility(gamedata.SlotA, time.Second, enemies); ok {
		t.Error("cast on cooldown should be rejected")
	}

	c.SetTarget(target.ID())
	if _, ok := c.CastAbility(gamedata.SlotA, 8*time.Second, enemies); !ok {
		t.Fatal("cast after cooldown should succeed")
	}
	if target.Health() != 480-150 {
		t.Errorf("health = %d, want %d", target.Health(), 480-150)
	}
}

func TestChampionShockwave(t *testing.T) {
	c := newTestChampion(t)
	inside := newTestUnit(t, TeamEnemy, gamedata.ArchetypeRanged, world.Vec2{X: 3, Z: -20})
	edge := newTestUnit(t, TeamEnemy, gamedata.ArchetypeRanged, world.Vec2{Z: -12})
	outside := newTestUnit(t, TeamEnemy, gamedata.ArchetypeRanged, world.Vec2{Z: -11})
	inside.TakeDamage(inside.Health() - 50)

	rewards, ok := c.CastAbility(gamedata.SlotZ, 0, []*Unit{inside, edge, outside})
	if !ok {
		t.Fatal("shockwave should cast")
	}
	if len(rewards) != 1 || rewards[0].UnitID != inside.ID() {
		t.Errorf("rewards = %+v, want one kill on the weakened unit", rewards)
	}
	if edge.Health() != 290-80 {
		t.Errorf("unit at radius health = %d, want %d", edge.Health(), 290-80)
	}
	if outside.Health() != 290 {
		t.Error("unit beyond radius should be untouched")
	}
}

func TestChampionCooldowns(t *testing.T) {
	c := newTestChampion(t)
	c.CastAbility(gamedata.SlotZ, time.Second, nil)

	cds := c.Cooldowns(4 * time.Second)
	z := cds[gamedata.SlotZ]
	if z.Ready || z.Remaining != 9*time.Second {
		t.Errorf("Z cooldown = %+v, want 9s remaining", z)
	}
	if !near(z.Fraction, 0.25) || !near(z.Percent, 25) {
		t.Errorf("Z fraction = %v (%v%%), want 0.25", z.Fraction, z.Percent)
	}

	z = c.Cooldowns(20 * time.Second)[gamedata.SlotZ]
	if !z.Ready || z.Remaining != 0 || z.Percent != 100 {
		t.Errorf("Z cooldown after expiry = %+v, want ready", z)
	}
}

func TestChampionResolveTarget(t *testing.T) {
	c := newTestChampion(t)
	u := newTestUnit(t, TeamEnemy, gamedata.ArchetypeLight, world.Vec2{})
	c.SetTarget(u.ID())

	if c.ResolveTarget([]*Unit{u}) != u {
		t.Fatal("live target should resolve")
	}
	u.TakeDamage(10000)
	if c.ResolveTarget([]*Unit{u}) != nil || c.TargetID() != uuid.Nil {
		t.Error("dead target should resolve to nil and clear the selection")
	}
}

func TestChampionReset(t *testing.T) {
	c := newTestChampion(t)
	u := newTestUnit(t, TeamEnemy, gamedata.ArchetypeLight, world.Vec2{Z: -19})
	u.TakeDamage(u.Health() - 1)
	c.TryAttack(u, 0)
	c.CastAbility(gamedata.SlotE, 0, nil)
	c.SetTarget(uuid.New())
	c.IssueMoveOrder(world.Vec2{Z: 10})
	c.Update(time.Second, time.Second)

	c.Reset()

	if c.Stats() != (Stats{}) {
		t.Errorf("stats after reset = %+v", c.Stats())
	}
	if c.Position() != (world.Vec2{Z: -20}) || c.Sprinting() || c.TargetID() != uuid.Nil {
		t.Error("reset should restore position and clear sprint and target")
	}
	if _, ok := c.MoveOrder(); ok {
		t.Error("reset should clear the move order")
	}
	if cd := c.Cooldowns(time.Second)[gamedata.SlotE]; !cd.Ready {
		t.Error("reset should make every ability ready")
	}
}
