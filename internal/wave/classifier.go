package wave

import (
	"context"
	"log/slog"
	"math"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/wavemaster/internal/entity"
	"github.com/samdwyer/wavemaster/internal/event"
	"github.com/samdwyer/wavemaster/internal/telemetry"
	"github.com/samdwyer/wavemaster/internal/world"
)

// Classification thresholds, in lane units relative to the towers. An
// aggregate within freezeDepth of a tower can freeze; within crashDepth it is
// a crash.
const (
	evenDiff     = 1
	evenSpread   = 10
	freezeDepth  = 10
	freezeDiff   = 3
	fastPushDiff = 4
	slowPushDiff = 2
	crashDepth   = 5
)

// Reading is the lane measurement a classification is based on.
type Reading struct {
	AllyAlive    int
	EnemyAlive   int
	Differential int     // enemy alive minus ally alive
	AllyMean     float64 // mean Z of alive allies, 0 when none
	EnemyMean    float64
	Aggregate    float64 // mean of the two team means
	Position     float64 // Aggregate normalized to [-1, 1]
}

// Measure computes the reading for the two collections on lane.
func Measure(lane world.Lane, allies, enemies []*entity.Unit) Reading {
	var r Reading
	r.AllyAlive, r.AllyMean = meanZ(allies)
	r.EnemyAlive, r.EnemyMean = meanZ(enemies)
	r.Differential = r.EnemyAlive - r.AllyAlive
	if r.AllyAlive > 0 || r.EnemyAlive > 0 {
		r.Aggregate = (r.AllyMean + r.EnemyMean) / 2
	}
	r.Position = lane.Normalized(r.Aggregate)
	return r
}

func meanZ(units []*entity.Unit) (alive int, mean float64) {
	sum := 0.0
	for _, u := range units {
		if !u.IsAlive() {
			continue
		}
		alive++
		sum += u.Position().Z
	}
	if alive == 0 {
		return 0, 0
	}
	return alive, sum / float64(alive)
}

// Classify maps a differential and aggregate to a label on the default lane.
// The rules are tried in order and the first match wins; when none match the
// previous label is kept.
func Classify(diff int, aggregate float64, prev State) State {
	return classify(world.DefaultLane, diff, aggregate, prev)
}

func classify(lane world.Lane, diff int, agg float64, prev State) State {
	switch {
	case abs(diff) <= evenDiff && math.Abs(agg) < evenSpread:
		return StateEven
	case agg < lane.AllyTowerZ+freezeDepth && diff >= freezeDiff:
		return StateFreezeAlly
	case agg > lane.EnemyTowerZ-freezeDepth && diff <= -freezeDiff:
		return StateFreezeEnemy
	case diff >= fastPushDiff:
		return StateFastPushEnemy
	case diff <= -fastPushDiff:
		return StateFastPushAlly
	case diff >= slowPushDiff:
		return StateSlowPushEnemy
	case diff <= -slowPushDiff:
		return StateSlowPushAlly
	case agg < lane.AllyTowerZ+crashDepth:
		return StateCrashEnemy
	case agg > lane.EnemyTowerZ-crashDepth:
		return StateCrashAlly
	default:
		return prev
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Classifier tracks the lane label across ticks and announces changes.
type Classifier struct {
	lane       world.Lane
	state      State
	last       Reading
	dispatcher *event.Dispatcher
	tracer     trace.Tracer
	logger     *slog.Logger
}

// NewClassifier creates a classifier starting at EVEN.
func NewClassifier(lane world.Lane, dispatcher *event.Dispatcher, tracer trace.Tracer, logger *slog.Logger) *Classifier {
	if tracer == nil {
		tracer = telemetry.Tracer("wave")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Classifier{
		lane:       lane,
		state:      StateEven,
		dispatcher: dispatcher,
		tracer:     tracer,
		logger:     logger,
	}
}

// State returns the current label.
func (c *Classifier) State() State { return c.state }

// Reading returns the measurement of the last update.
func (c *Classifier) Reading() Reading { return c.last }

// Update measures the lane and relabels it. A WaveStateChanged event is
// dispatched only when the label actually changes.
func (c *Classifier) Update(ctx context.Context, allies, enemies []*entity.Unit) Reading {
	r := Measure(c.lane, allies, enemies)
	c.last = r

	next := classify(c.lane, r.Differential, r.Aggregate, c.state)
	if next == c.state {
		return r
	}

	prev := c.state
	c.state = next

	_, span := c.tracer.Start(ctx, "wave.state_change")
	span.SetAttributes(
		attribute.String("wave.state.from", string(prev)),
		attribute.String("wave.state.to", string(next)),
		attribute.Int("wave.differential", r.Differential),
		attribute.Float64("wave.aggregate", r.Aggregate),
	)
	span.End()

	c.logger.Debug("wave state changed", "from", prev, "to", next, "diff", r.Differential, "aggregate", r.Aggregate)
	c.dispatcher.Dispatch(event.WaveStateChanged{
		Previous:     string(prev),
		Current:      string(next),
		Differential: r.Differential,
		Aggregate:    r.Aggregate,
	})
	return r
}

// Reset returns the label to EVEN without notifying.
func (c *Classifier) Reset() {
	c.state = StateEven
	c.last = Reading{}
}
