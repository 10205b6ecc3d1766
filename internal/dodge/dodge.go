// Package dodge runs the survival minigame: projectiles fly in from the lane
// edges at the champion, faster and more often as the score climbs.
package dodge

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/wavemaster/internal/event"
	"github.com/samdwyer/wavemaster/internal/store"
	"github.com/samdwyer/wavemaster/internal/telemetry"
	"github.com/samdwyer/wavemaster/internal/world"
)

// Config holds the difficulty curve and arena geometry.
type Config struct {
	BaseInterval   time.Duration // spawn interval at level 1
	MinInterval    time.Duration
	IntervalStep   time.Duration // interval shaved off per level
	BaseSpeed      float64
	SpeedStep      float64 // speed added per level
	PointsPerLevel int
	SpawnDistance  float64 // distance of the spawn edges from the origin
	EdgeHalfWidth  float64 // lateral spread on the Z edges
	CullRadius     float64
	HitRadius      float64 // champion radius plus projectile radius
}

// DefaultConfig returns the standard difficulty curve.
func DefaultConfig() Config {
	return Config{
		BaseInterval:   1500 * time.Millisecond,
		MinInterval:    200 * time.Millisecond,
		IntervalStep:   100 * time.Millisecond,
		BaseSpeed:      8,
		SpeedStep:      1.5,
		PointsPerLevel: 10,
		SpawnDistance:  20,
		EdgeHalfWidth:  10,
		CullRadius:     40,
		HitRadius:      0.8 + 0.5,
	}
}

// ArenaCenter is where the champion stands when a run starts.
var ArenaCenter = world.Vec2{}

// Projectile flies in a straight line at a fixed speed.
type Projectile struct {
	Pos   world.Vec2
	Dir   world.Vec2 // unit length
	Speed float64
}

// Edge is one side of the arena projectiles enter from: top is -Z, right
// +X, bottom +Z and left -X.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// Result is the outcome of a finished run.
type Result struct {
	Score       int
	HighScore   int
	NewHigh     bool
	Leaderboard []store.Entry
}

// Game is one dodge session. It is driven by the frame loop and is not safe
// for concurrent use.
type Game struct {
	cfg   Config
	rng   *rand.Rand
	store store.Store
	clock func() time.Time

	dispatcher *event.Dispatcher
	tracer     trace.Tracer
	logger     *slog.Logger

	running     bool
	started     time.Duration
	lastSpawn   time.Duration
	interval    time.Duration
	speed       float64
	level       int
	score       int
	highScore   int
	projectiles []*Projectile
	last        Result
}

// Option configures a Game.
type Option func(*Game)

// WithConfig replaces the default difficulty curve.
func WithConfig(cfg Config) Option {
	return func(g *Game) { g.cfg = cfg }
}

// WithClock sets the wall clock used to timestamp leaderboard entries.
func WithClock(clock func() time.Time) Option {
	return func(g *Game) { g.clock = clock }
}

// WithTracer sets the tracer for run spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(g *Game) { g.tracer = tracer }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// New creates an idle game drawing randomness from rng and keeping records
// in s.
func New(rng *rand.Rand, s store.Store, dispatcher *event.Dispatcher, opts ...Option) *Game {
	g := &Game{
		cfg:        DefaultConfig(),
		rng:        rng,
		store:      s,
		clock:      time.Now,
		dispatcher: dispatcher,
		tracer:     telemetry.Tracer("dodge"),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("component", "dodge")
	return g
}

// Running reports whether a run is in progress.
func (g *Game) Running() bool { return g.running }

// Score returns whole seconds survived in the current or last run.
func (g *Game) Score() int { return g.score }

// Level returns the current difficulty level.
func (g *Game) Level() int { return g.level }

// Interval returns the current spawn interval.
func (g *Game) Interval() time.Duration { return g.interval }

// Speed returns the speed given to new projectiles.
func (g *Game) Speed() float64 { return g.speed }

// HighScore returns the best score known to the game.
func (g *Game) HighScore() int { return g.highScore }

// Projectiles returns the live projectiles.
func (g *Game) Projectiles() []*Projectile { return g.projectiles }

// LastResult returns the outcome of the most recent finished run.
func (g *Game) LastResult() Result { return g.last }

// Start begins a run at now. The caller places the champion at ArenaCenter.
func (g *Game) Start(ctx context.Context, now time.Duration) {
	_, span := g.tracer.Start(ctx, "dodge.start")
	defer span.End()

	g.running = true
	g.started = now
	g.lastSpawn = now
	g.interval = g.cfg.BaseInterval
	g.speed = g.cfg.BaseSpeed
	g.level = 1
	g.score = 0
	g.projectiles = nil

	hs, err := g.store.HighScore()
	if err != nil {
		g.logger.Warn("read high score", "error", err)
	} else {
		g.highScore = hs
	}
	span.SetAttributes(attribute.Int("dodge.high_score", g.highScore))
	g.logger.Info("dodge started", "high_score", g.highScore)
}

// Stop abandons the run without recording a score.
func (g *Game) Stop() {
	g.running = false
	g.projectiles = nil
}

// Update advances the run to now with the champion at champion. It returns
// true on the tick a projectile hits.
func (g *Game) Update(ctx context.Context, now, dt time.Duration, champion world.Vec2) bool {
	if !g.running {
		return false
	}

	g.score = int((now - g.started) / time.Second)
	if level := 1 + g.score/g.cfg.PointsPerLevel; level > g.level {
		g.levelUp(level)
	}

	if now-g.lastSpawn > g.interval {
		g.spawn(champion)
		g.lastSpawn = now
	}

	kept := g.projectiles[:0]
	hit := false
	for _, p := range g.projectiles {
		p.Pos = p.Pos.Add(p.Dir.Scale(p.Speed * dt.Seconds()))
		if p.Pos.Dist(champion) < g.cfg.HitRadius {
			hit = true
		}
		if p.Pos.Len() <= g.cfg.CullRadius {
			kept = append(kept, p)
		}
	}
	clear(g.projectiles[len(kept):])
	g.projectiles = kept

	if hit {
		g.finish(ctx)
	}
	return hit
}

func (g *Game) levelUp(level int) {
	g.level = level
	g.interval = max(g.cfg.MinInterval, g.cfg.BaseInterval-time.Duration(level)*g.cfg.IntervalStep)
	g.speed = g.cfg.BaseSpeed + g.cfg.SpeedStep*float64(level)

	g.logger.Debug("dodge level up", "level", level, "interval", g.interval, "speed", g.speed)
	g.dispatcher.Dispatch(event.DodgeLevelUp{Level: level, Interval: g.interval, Speed: g.speed})
}

// spawn launches a projectile from a random edge at the champion's current
// position. It never re-targets.
func (g *Game) spawn(champion world.Vec2) *Projectile {
	pos := g.edgePoint(Edge(g.rng.Intn(4)))
	p := &Projectile{
		Pos:   pos,
		Dir:   champion.Sub(pos).Normalize(),
		Speed: g.speed,
	}
	g.projectiles = append(g.projectiles, p)
	return p
}

func (g *Game) edgePoint(e Edge) world.Vec2 {
	d := g.cfg.SpawnDistance
	switch e {
	case EdgeTop:
		return world.Vec2{X: g.spread(g.cfg.EdgeHalfWidth), Z: -d}
	case EdgeRight:
		return world.Vec2{X: d, Z: g.spread(d)}
	case EdgeBottom:
		return world.Vec2{X: g.spread(g.cfg.EdgeHalfWidth), Z: d}
	default:
		return world.Vec2{X: -d, Z: g.spread(d)}
	}
}

// spread returns a uniform offset in [-half, half).
func (g *Game) spread(half float64) float64 {
	return (g.rng.Float64()*2 - 1) * half
}

func (g *Game) finish(ctx context.Context) {
	_, span := g.tracer.Start(ctx, "dodge.over")
	defer span.End()

	g.running = false
	res := Result{Score: g.score, HighScore: g.highScore}

	if g.score > g.highScore {
		res.NewHigh = true
		res.HighScore = g.score
		g.highScore = g.score
		if err := g.store.SetHighScore(g.score); err != nil {
			g.logger.Warn("save high score", "error", err)
		}
	}

	board, err := g.store.AppendScore(store.Entry{Score: g.score, Timestamp: g.clock()})
	if err != nil {
		g.logger.Warn("append leaderboard", "error", err)
	}
	res.Leaderboard = board
	g.last = res

	span.SetAttributes(
		attribute.Int("dodge.score", res.Score),
		attribute.Bool("dodge.new_high", res.NewHigh),
		attribute.Int("dodge.level", g.level),
	)
	g.logger.Info("dodge over", "score", res.Score, "high_score", res.HighScore, "new_high", res.NewHigh)
	g.dispatcher.Dispatch(event.DodgeOver{
		Score:       res.Score,
		HighScore:   res.HighScore,
		NewHigh:     res.NewHigh,
		Leaderboard: res.Leaderboard,
	})
}

// View returns the presentation state of the run.
func (g *Game) View() event.DodgeView {
	v := event.DodgeView{
		Running:   g.running,
		Score:     g.score,
		Level:     g.level,
		HighScore: g.highScore,
	}
	if len(g.projectiles) > 0 {
		v.Projectiles = make([]world.Vec2, len(g.projectiles))
		for i, p := range g.projectiles {
			v.Projectiles[i] = p.Pos
		}
	}
	return v
}
