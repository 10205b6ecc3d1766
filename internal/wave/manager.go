package wave

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/wavemaster/internal/combat"
	"github.com/samdwyer/wavemaster/internal/entity"
	"github.com/samdwyer/wavemaster/internal/event"
	"github.com/samdwyer/wavemaster/internal/gamedata"
	"github.com/samdwyer/wavemaster/internal/telemetry"
	"github.com/samdwyer/wavemaster/internal/world"
)

// RemovalGrace is how long a dead unit stays in its collection before it is
// pruned, so the front end can show it falling.
const RemovalGrace = 500 * time.Millisecond

// Scenario layout, in lane units.
const (
	scenarioDepthScale = 30 // lane Z per unit of scenario position
	scenarioRowGap     = 2
	scenarioEnemyGap   = 5
	scenarioRowSize    = 3
)

// Manager owns both unit collections and runs the lane phases of a tick.
type Manager struct {
	lane       world.Lane
	stats      *gamedata.StatTable
	spawner    *Spawner
	guards     [2]*Guard
	classifier *Classifier

	allies  []*entity.Unit
	enemies []*entity.Unit

	dispatcher *event.Dispatcher
	tracer     trace.Tracer
	logger     *slog.Logger
}

// NewManager creates an empty lane. A nil tracer uses the global provider and
// a nil logger discards.
func NewManager(lane world.Lane, stats *gamedata.StatTable, dispatcher *event.Dispatcher, tracer trace.Tracer, logger *slog.Logger) *Manager {
	if tracer == nil {
		tracer = telemetry.Tracer("wave")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("component", "wave")
	return &Manager{
		lane:       lane,
		stats:      stats,
		spawner:    NewSpawner(lane, stats),
		guards:     [2]*Guard{NewGuard(entity.TeamAlly, lane), NewGuard(entity.TeamEnemy, lane)},
		classifier: NewClassifier(lane, dispatcher, tracer, logger),
		dispatcher: dispatcher,
		tracer:     tracer,
		logger:     logger,
	}
}

// Allies returns the ally collection, dead units included until pruned.
func (m *Manager) Allies() []*entity.Unit { return m.allies }

// Enemies returns the enemy collection, dead units included until pruned.
func (m *Manager) Enemies() []*entity.Unit { return m.enemies }

// Guards returns the ally and enemy tower guards.
func (m *Manager) Guards() [2]*Guard { return m.guards }

// Wave returns the number of waves spawned since the last reset.
func (m *Manager) Wave() int { return m.spawner.Wave() }

// State returns the current tactical label.
func (m *Manager) State() State { return m.classifier.State() }

// Reading returns the lane measurement of the last tick.
func (m *Manager) Reading() Reading { return m.classifier.Reading() }

// Interval returns the automatic wave interval.
func (m *Manager) Interval() time.Duration { return m.spawner.Interval() }

// SetInterval changes the automatic wave interval. Zero disables it.
func (m *Manager) SetInterval(d time.Duration) { m.spawner.SetInterval(d) }

// NextWaveIn returns the time left before the next automatic wave.
func (m *Manager) NextWaveIn(now time.Duration) time.Duration { return m.spawner.NextIn(now) }

// Tick runs the lane phases in order: spawn check, ally AI, enemy AI,
// pruning, tower guards and classification.
//
// The enemy pass sees ally positions and health already updated this tick.
func (m *Manager) Tick(ctx context.Context, now, dt time.Duration) Reading {
	if m.spawner.Due(now) {
		m.spawn(ctx, now, false)
	}

	for _, u := range m.allies {
		u.Update(m.enemies, m.lane, now, dt)
	}
	for _, u := range m.enemies {
		u.Update(m.allies, m.lane, now, dt)
	}

	m.prune(now)

	for _, g := range m.guards {
		opponents := m.enemies
		if g.Team() == entity.TeamEnemy {
			opponents = m.allies
		}
		if shot, ok := g.Update(opponents, now); ok {
			m.dispatcher.Dispatch(shot)
		}
	}

	return m.classifier.Update(ctx, m.allies, m.enemies)
}

// ForceSpawnWave spawns a wave now and restarts the interval timer.
func (m *Manager) ForceSpawnWave(ctx context.Context, now time.Duration) {
	m.spawn(ctx, now, true)
}

func (m *Manager) spawn(ctx context.Context, now time.Duration, forced bool) {
	_, span := m.tracer.Start(ctx, "wave.spawn")
	defer span.End()

	allies, enemies := m.spawner.Spawn(now)
	m.allies = append(m.allies, allies...)
	m.enemies = append(m.enemies, enemies...)

	wave := m.spawner.Wave()
	heavy := HeavyWave(wave)
	span.SetAttributes(
		attribute.Int("wave.number", wave),
		attribute.Bool("wave.heavy", heavy),
		attribute.Bool("wave.forced", forced),
		attribute.Int("wave.units_per_team", len(allies)),
	)

	m.logger.Info("wave spawned", "wave", wave, "heavy", heavy, "forced", forced, "allies", len(m.allies), "enemies", len(m.enemies))
	m.dispatcher.Dispatch(event.WaveSpawned{Wave: wave, Heavy: heavy, PerTeam: len(allies), Forced: forced})
}

func (m *Manager) prune(now time.Duration) {
	expired := func(u *entity.Unit) bool { return u.Expire(now, RemovalGrace) }
	m.allies = slices.DeleteFunc(m.allies, expired)
	m.enemies = slices.DeleteFunc(m.enemies, expired)
}

// Add places a single unit on the lane.
func (m *Manager) Add(team entity.Team, a gamedata.Archetype, pos world.Vec2) *entity.Unit {
	u := entity.NewUnit(team, a, m.stats.Get(a), pos)
	if team == entity.TeamAlly {
		m.allies = append(m.allies, u)
	} else {
		m.enemies = append(m.enemies, u)
	}
	return u
}

// FindUnit returns the unit with the given ID from either collection.
func (m *Manager) FindUnit(id uuid.UUID) *entity.Unit {
	for _, units := range [][]*entity.Unit{m.allies, m.enemies} {
		for _, u := range units {
			if u.ID() == id {
				return u
			}
		}
	}
	return nil
}

// LowestHealthEnemy returns the alive enemy with the least health within
// reach of pos, or nil.
func (m *Manager) LowestHealthEnemy(pos world.Vec2, reach float64) *entity.Unit {
	u, ok := combat.LowestHealth(combat.Within(pos, reach, m.enemies))
	if !ok {
		return nil
	}
	return u
}

// Views returns the presentation state of every unit, allies first.
func (m *Manager) Views() []event.UnitView {
	views := make([]event.UnitView, 0, len(m.allies)+len(m.enemies))
	for _, units := range [][]*entity.Unit{m.allies, m.enemies} {
		for _, u := range units {
			views = append(views, event.UnitView{
				ID:             u.ID(),
				Team:           u.Team(),
				Archetype:      u.Archetype(),
				Position:       u.Position(),
				Health:         u.Health(),
				MaxHealth:      u.MaxHealth(),
				Alive:          u.IsAlive(),
				AttackingTower: u.AttackingTower(),
			})
		}
	}
	return views
}

// Clear removes every unit from the lane.
func (m *Manager) Clear() {
	m.allies = nil
	m.enemies = nil
}

// Reset clears the lane, zeroes the wave counter, restarts the spawn timer
// at now, readies the towers and returns the label to EVEN.
func (m *Manager) Reset(now time.Duration) {
	m.Clear()
	m.spawner.Reset(now)
	for _, g := range m.guards {
		g.Reset()
	}
	m.classifier.Reset()
}

// SetupScenario clears the lane and lays out fixed groups for a drill.
// position places the fight along the lane, -1 at the ally tower side and 1
// at the enemy side. Each team is half melee, half caster, in rows of three.
func (m *Manager) SetupScenario(allyCount, enemyCount int, position float64) {
	m.Clear()
	m.classifier.Reset()

	center := position * scenarioDepthScale
	for i := 0; i < allyCount; i++ {
		z := center - scenarioRowGap*float64(i/scenarioRowSize)
		m.Add(entity.TeamAlly, scenarioArchetype(i, allyCount), world.Vec2{X: scenarioX(i), Z: z})
	}
	for i := 0; i < enemyCount; i++ {
		z := center + scenarioRowGap*float64(i/scenarioRowSize) + scenarioEnemyGap
		m.Add(entity.TeamEnemy, scenarioArchetype(i, enemyCount), world.Vec2{X: scenarioX(i), Z: z})
	}

	m.logger.Info("scenario set up", "allies", allyCount, "enemies", enemyCount, "position", position)
}

func scenarioArchetype(i, n int) gamedata.Archetype {
	if i < int(math.Ceil(float64(n)/2)) {
		return gamedata.ArchetypeLight
	}
	return gamedata.ArchetypeRanged
}

func scenarioX(i int) float64 {
	return float64(i%scenarioRowSize-1) * lateralGap
}
