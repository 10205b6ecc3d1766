package wave

import (
	"time"

	"github.com/samdwyer/wavemaster/internal/combat"
	"github.com/samdwyer/wavemaster/internal/entity"
	"github.com/samdwyer/wavemaster/internal/event"
	"github.com/samdwyer/wavemaster/internal/world"
)

// Tower guard constants.
const (
	TowerDamage   = 200
	TowerInterval = time.Second
	towerRange    = 8 // engagement depth in front of the tower
	towerReach    = 5 // units this close in front have reached the tower
)

// Guard is the automated defender of one team's tower.
type Guard struct {
	team     entity.Team
	pos      world.Vec2
	nextShot time.Duration
}

// NewGuard creates the guard of team's tower on lane.
func NewGuard(team entity.Team, lane world.Lane) *Guard {
	z := lane.AllyTowerZ
	if team == entity.TeamEnemy {
		z = lane.EnemyTowerZ
	}
	return &Guard{team: team, pos: world.Vec2{Z: z}}
}

// Team returns the side owning the tower.
func (g *Guard) Team() entity.Team { return g.team }

// Position returns the tower position.
func (g *Guard) Position() world.Vec2 { return g.pos }

// depth measures how far z lies inside the guard's territory, in front of
// the tower. Larger is deeper.
func (g *Guard) depth(z float64) float64 {
	if g.team == entity.TeamAlly {
		return g.pos.Z - z
	}
	return z - g.pos.Z
}

// Update flags opponents that reached the tower and shoots the deepest
// opponent in range when the guard is ready.
func (g *Guard) Update(opponents []*entity.Unit, now time.Duration) (event.TowerShot, bool) {
	var target *entity.Unit
	for _, u := range opponents {
		if !u.IsAlive() {
			continue
		}
		d := g.depth(u.Position().Z)
		if d > -towerReach {
			u.SetAttackingTower()
		}
		if d > -towerRange && (target == nil || d > g.depth(target.Position().Z)) {
			target = u
		}
	}

	if target == nil || now < g.nextShot {
		return event.TowerShot{}, false
	}
	g.nextShot = now + TowerInterval

	res := combat.Strike(target, TowerDamage)
	return event.TowerShot{
		Tower:  g.team,
		Target: target.ID(),
		From:   g.pos,
		To:     target.Position(),
		Damage: res.Damage,
		Killed: res.Killed,
	}, true
}

// Reset makes the guard ready to fire.
func (g *Guard) Reset() { g.nextShot = 0 }
