package game

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/wavemaster/internal/combat"
	"github.com/samdwyer/wavemaster/internal/dodge"
	"github.com/samdwyer/wavemaster/internal/entity"
	"github.com/samdwyer/wavemaster/internal/event"
	"github.com/samdwyer/wavemaster/internal/gamedata"
	"github.com/samdwyer/wavemaster/internal/store"
	"github.com/samdwyer/wavemaster/internal/telemetry"
	"github.com/samdwyer/wavemaster/internal/wave"
	"github.com/samdwyer/wavemaster/internal/world"
)

// Session is one player's game. It owns every simulation component and is
// driven from a single goroutine: Tick once per frame, Apply for each input.
type Session struct {
	cfg        Config
	registry   *gamedata.Registry
	lane       world.Lane
	dispatcher *event.Dispatcher
	store      store.Store
	logger     *slog.Logger
	tracer     trace.Tracer

	waves    *wave.Manager
	champion *entity.Champion
	dodge    *dodge.Game

	mode         Mode
	state        State
	now          time.Duration
	tutorialStep int
}

// Option configures a Session.
type Option func(*Session)

// WithDispatcher routes session events through d.
func WithDispatcher(d *event.Dispatcher) Option {
	return func(s *Session) { s.dispatcher = d }
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithTracer sets the tracer for session spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Session) { s.tracer = tracer }
}

// NewSession creates a session in the menu state.
func NewSession(cfg Config, registry *gamedata.Registry, st store.Store, opts ...Option) *Session {
	s := &Session{
		cfg:        cfg,
		registry:   registry,
		lane:       world.DefaultLane,
		dispatcher: event.NewDispatcher(),
		store:      st,
		logger:     slog.New(slog.DiscardHandler),
		tracer:     telemetry.Tracer("game"),
		state:      StateMenu,
	}
	for _, opt := range opts {
		opt(s)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s.waves = wave.NewManager(s.lane, registry.Stats, s.dispatcher, s.tracer, s.logger)
	s.champion = entity.NewChampion(registry.Champion, registry.Abilities, s.lane)
	s.dodge = dodge.New(rand.New(rand.NewSource(seed)), st, s.dispatcher,
		dodge.WithTracer(s.tracer),
		dodge.WithLogger(s.logger),
	)
	s.logger = s.logger.With("component", "session")
	return s
}

// Dispatcher returns the event dispatcher observers subscribe to.
func (s *Session) Dispatcher() *event.Dispatcher { return s.dispatcher }

// Mode returns the current or last mode.
func (s *Session) Mode() Mode { return s.mode }

// State returns the play state.
func (s *Session) State() State { return s.state }

// Now returns the simulated time since the mode started.
func (s *Session) Now() time.Duration { return s.now }

// Champion returns the player champion.
func (s *Session) Champion() *entity.Champion { return s.champion }

// Waves returns the lane manager.
func (s *Session) Waves() *wave.Manager { return s.waves }

// Dodge returns the survival minigame.
func (s *Session) Dodge() *dodge.Game { return s.dodge }

// Lane returns the lane geometry.
func (s *Session) Lane() world.Lane { return s.lane }

// TutorialStep returns the current tutorial page index.
func (s *Session) TutorialStep() int { return s.tutorialStep }

// Start resets the session and begins mode.
func (s *Session) Start(ctx context.Context, mode Mode) {
	ctx, span := s.tracer.Start(ctx, "session.start")
	defer span.End()

	s.dodge.Stop()
	s.mode = mode
	s.state = StatePlaying
	s.now = 0
	s.tutorialStep = 0
	s.champion.Reset()
	s.waves.Reset(s.now)
	s.waves.SetInterval(0)

	def := s.registry.Mode(mode.String())
	if def != nil && mode.Lane() {
		s.waves.SetInterval(def.WaveInterval())
		if def.ForceFirstWave {
			s.waves.ForceSpawnWave(ctx, s.now)
		}
	}
	if mode == ModeSurvival {
		s.champion.SetPosition(dodge.ArenaCenter)
		s.dodge.Start(ctx, s.now)
	}

	span.SetAttributes(
		attribute.String("session.mode", mode.String()),
		attribute.Int64("session.wave_interval_ms", s.waves.Interval().Milliseconds()),
	)
	s.logger.Info("mode started", "mode", mode, "wave_interval", s.waves.Interval())
	s.announceState()
	if mode == ModeTutorial {
		s.announceTutorial()
	}
}

// Tick advances the simulation by dt, clamped to MaxFrameDelta. It does
// nothing unless the session is playing.
func (s *Session) Tick(ctx context.Context, dt time.Duration) {
	if s.state != StatePlaying {
		return
	}
	dt = min(max(dt, 0), MaxFrameDelta)
	s.now += dt

	if s.mode.Lane() {
		s.waves.Tick(ctx, s.now, dt)
		s.champion.ResolveTarget(s.waves.Enemies())
		s.champion.Update(dt, s.now)
	} else {
		s.champion.Update(dt, s.now)
		if s.dodge.Update(ctx, s.now, dt, s.champion.Position()) {
			s.state = StateMenu
			s.announceState()
		}
	}

	s.dispatcher.Dispatch(s.Snapshot())
}

// Apply executes a player command and reports whether it had any effect.
// Invalid requests are ignored.
func (s *Session) Apply(ctx context.Context, cmd Command) bool {
	switch c := cmd.(type) {
	case SelectMode:
		s.Start(ctx, c.Mode)
		return true
	case Restart:
		s.Start(ctx, s.mode)
		return true
	case QuitToMenu:
		return s.quit()
	case Pause:
		return s.pause()
	case Resume:
		return s.resume()
	case TogglePause:
		if s.state == StatePaused {
			return s.resume()
		}
		return s.pause()
	case TutorialNext:
		return s.tutorialNext(ctx)
	case TutorialPrev:
		return s.tutorialPrev()
	}

	if s.state != StatePlaying {
		return false
	}

	switch c := cmd.(type) {
	case MoveTo:
		s.champion.IssueMoveOrder(c.Point)
		return true
	case Attack:
		return s.attack(c.Target)
	case Cast:
		return s.cast(c.Slot)
	case SelectTarget:
		return s.selectTarget(c.ID)
	case CycleTarget:
		return s.cycleTarget()
	}
	return false
}

func (s *Session) pause() bool {
	if s.state != StatePlaying {
		return false
	}
	s.state = StatePaused
	s.announceState()
	return true
}

func (s *Session) resume() bool {
	if s.state != StatePaused {
		return false
	}
	s.state = StatePlaying
	s.announceState()
	return true
}

func (s *Session) quit() bool {
	if s.state == StateMenu {
		return false
	}
	s.state = StateMenu
	s.dodge.Stop()
	s.waves.Clear()
	s.announceState()
	return true
}

func (s *Session) attack(id uuid.UUID) bool {
	if !s.mode.Lane() {
		return false
	}

	var target *entity.Unit
	if id == uuid.Nil {
		target = s.waves.LowestHealthEnemy(s.champion.Position(), s.champion.AttackRange())
	} else if u := s.waves.FindUnit(id); u != nil && u.Team() == entity.TeamEnemy {
		target = u
	}
	if target == nil {
		return false
	}

	s.champion.SetTarget(target.ID())
	before := target.Health()
	reward, killed := s.champion.TryAttack(target, s.now)
	if killed {
		s.pop(reward, target.Position())
	}
	return target.Health() < before
}

func (s *Session) cast(slot gamedata.Slot) bool {
	var enemies []*entity.Unit
	if s.mode.Lane() {
		enemies = s.waves.Enemies()
	}
	rewards, ok := s.champion.CastAbility(slot, s.now, enemies)
	for _, r := range rewards {
		at := s.champion.Position()
		if u := s.waves.FindUnit(r.UnitID); u != nil {
			at = u.Position()
		}
		s.pop(r, at)
	}
	return ok
}

func (s *Session) pop(r combat.Reward, at world.Vec2) {
	s.logger.Debug("last hit", "gold", r.Gold, "bonus", r.Bonus, "combo", r.Combo)
	s.dispatcher.Dispatch(event.RewardPop{
		UnitID: r.UnitID,
		At:     at,
		Gold:   r.Gold,
		XP:     r.XP,
		Bonus:  r.Bonus,
		Combo:  r.Combo,
	})
}

func (s *Session) selectTarget(id uuid.UUID) bool {
	u := s.waves.FindUnit(id)
	if u == nil || !u.IsAlive() || u.Team() != entity.TeamEnemy {
		return false
	}
	s.champion.SetTarget(id)
	return true
}

// cycleTarget moves the focus to the next alive enemy in collection order,
// wrapping around.
func (s *Session) cycleTarget() bool {
	enemies := s.waves.Enemies()
	current := -1
	for i, u := range enemies {
		if u.ID() == s.champion.TargetID() {
			current = i
			break
		}
	}
	for step := 1; step <= len(enemies); step++ {
		u := enemies[(current+step+len(enemies))%len(enemies)]
		if u.IsAlive() {
			s.champion.SetTarget(u.ID())
			return true
		}
	}
	return false
}

func (s *Session) tutorialNext(ctx context.Context) bool {
	if s.mode != ModeTutorial || s.state == StateMenu {
		return false
	}
	if s.tutorialStep < len(s.registry.Tutorial)-1 {
		s.tutorialStep++
		s.announceTutorial()
		return true
	}

	// finishing the tutorial carries the running lane over into freeplay
	s.mode = ModeFreeplay
	if def := s.registry.Mode(ModeFreeplay.String()); def != nil {
		s.waves.SetInterval(def.WaveInterval())
	}
	s.logger.Info("tutorial finished")
	s.announceState()
	return true
}

func (s *Session) tutorialPrev() bool {
	if s.mode != ModeTutorial || s.state == StateMenu || s.tutorialStep == 0 {
		return false
	}
	s.tutorialStep--
	s.announceTutorial()
	return true
}

func (s *Session) announceState() {
	s.dispatcher.Dispatch(event.ModeChanged{Mode: s.mode.String(), State: s.state.String()})
}

func (s *Session) announceTutorial() {
	steps := s.registry.Tutorial
	if s.tutorialStep >= len(steps) {
		return
	}
	step := steps[s.tutorialStep]
	s.dispatcher.Dispatch(event.TutorialStep{
		Index: s.tutorialStep,
		Total: len(steps),
		Title: step.Title,
		Body:  step.Body,
	})
}

// Snapshot returns the presentation state at the current tick.
func (s *Session) Snapshot() event.TickSnapshot {
	snap := event.TickSnapshot{
		Now:       s.now,
		Mode:      s.mode.String(),
		State:     s.state.String(),
		Stats:     s.champion.Stats(),
		Cooldowns: s.champion.Cooldowns(s.now),
		Champion:  s.champion.Position(),
		TargetID:  s.champion.TargetID(),
		Dodge:     s.dodge.View(),
	}
	if order, ok := s.champion.MoveOrder(); ok {
		snap.MoveOrder = &order
	}
	if s.mode.Lane() {
		r := s.waves.Reading()
		snap.Units = s.waves.Views()
		snap.Lane = event.LaneView{
			Wave:         s.waves.Wave(),
			Label:        s.waves.State().String(),
			Position:     r.Position,
			AllyAlive:    r.AllyAlive,
			EnemyAlive:   r.EnemyAlive,
			Differential: r.Differential,
			NextWave:     s.waves.NextWaveIn(s.now),
		}
	}
	return snap
}
