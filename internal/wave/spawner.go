package wave

import (
	"time"

	"github.com/samdwyer/wavemaster/internal/entity"
	"github.com/samdwyer/wavemaster/internal/gamedata"
	"github.com/samdwyer/wavemaster/internal/world"
)

// DefaultInterval is the time between automatic waves when no mode sets one.
const DefaultInterval = 30 * time.Second

// Wave layout, in lane units.
const (
	lightPerWave  = 3
	rangedPerWave = 3
	lateralGap    = 1.5 // X spacing inside a row
	rangedBehind  = 3   // ranged row distance behind the light row
	heavyBehind   = 5
	heavyEvery    = 3 // every Nth wave carries a heavy unit
)

// Spawner creates waves on a fixed interval.
type Spawner struct {
	lane     world.Lane
	stats    *gamedata.StatTable
	interval time.Duration
	last     time.Duration
	wave     int
}

// NewSpawner creates a spawner with DefaultInterval whose timer starts at zero.
func NewSpawner(lane world.Lane, stats *gamedata.StatTable) *Spawner {
	return &Spawner{lane: lane, stats: stats, interval: DefaultInterval}
}

// Wave returns the number of waves spawned so far.
func (s *Spawner) Wave() int { return s.wave }

// Interval returns the automatic wave interval. Zero disables automatic waves.
func (s *Spawner) Interval() time.Duration { return s.interval }

// SetInterval changes the automatic wave interval.
func (s *Spawner) SetInterval(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.interval = d
}

// Due reports whether an automatic wave should spawn at now.
func (s *Spawner) Due(now time.Duration) bool {
	return s.interval > 0 && now-s.last >= s.interval
}

// NextIn returns the time left until the next automatic wave, or zero when
// automatic waves are disabled.
func (s *Spawner) NextIn(now time.Duration) time.Duration {
	if s.interval <= 0 {
		return 0
	}
	return max(0, s.interval-(now-s.last))
}

// Spawn advances the wave counter, restarts the interval timer at now and
// returns the new units of both teams.
func (s *Spawner) Spawn(now time.Duration) (allies, enemies []*entity.Unit) {
	s.wave++
	s.last = now
	return s.team(entity.TeamAlly), s.team(entity.TeamEnemy)
}

// HeavyWave reports whether wave n carries a heavy unit.
func HeavyWave(n int) bool { return n > 0 && n%heavyEvery == 0 }

// Reset zeroes the wave counter and restarts the timer at now.
func (s *Spawner) Reset(now time.Duration) {
	s.wave = 0
	s.last = now
}

func (s *Spawner) team(team entity.Team) []*entity.Unit {
	z := s.lane.AllySpawnZ
	back := -1.0 // behind the row means further from the enemy
	if team == entity.TeamEnemy {
		z = s.lane.EnemySpawnZ
		back = 1
	}

	units := make([]*entity.Unit, 0, lightPerWave+rangedPerWave+1)
	for i := 0; i < lightPerWave; i++ {
		units = append(units, s.unit(team, gamedata.ArchetypeLight, world.Vec2{X: float64(i-1) * lateralGap, Z: z}))
	}
	for i := 0; i < rangedPerWave; i++ {
		units = append(units, s.unit(team, gamedata.ArchetypeRanged, world.Vec2{X: float64(i-1) * lateralGap, Z: z + back*rangedBehind}))
	}
	if HeavyWave(s.wave) {
		units = append(units, s.unit(team, gamedata.ArchetypeHeavy, world.Vec2{Z: z + back*heavyBehind}))
	}
	return units
}

func (s *Spawner) unit(team entity.Team, a gamedata.Archetype, pos world.Vec2) *entity.Unit {
	return entity.NewUnit(team, a, s.stats.Get(a), pos)
}
