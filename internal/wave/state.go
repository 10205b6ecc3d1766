// Package wave runs the minion lane: wave spawning, tower guards and the
// tactical classification of the lane.
package wave

// State is the tactical label of the lane.
type State string

const (
	StateEven State = "EVEN"
	// StateFreezeAlly means the wave is held just in front of the ally tower.
	StateFreezeAlly State = "FREEZE (ALLY)"
	// StateFreezeEnemy means the wave is held just in front of the enemy tower.
	StateFreezeEnemy State = "FREEZE (ENEMY)"
	// StateFastPushEnemy means the enemy is pushing hard toward the ally side.
	StateFastPushEnemy State = "←← FAST PUSH"
	StateFastPushAlly  State = "FAST PUSH →→"
	StateSlowPushEnemy State = "← SLOW PUSH"
	StateSlowPushAlly  State = "SLOW PUSH →"
	// StateCrashEnemy means the wave has reached the ally tower.
	StateCrashEnemy State = "← CRASH"
	StateCrashAlly  State = "CRASH →"
	// StateBounce is part of the label set but no rule assigns it.
	StateBounce State = "BOUNCE"
)

// States lists every label.
var States = [...]State{
	StateEven,
	StateFreezeAlly,
	StateFreezeEnemy,
	StateFastPushEnemy,
	StateFastPushAlly,
	StateSlowPushEnemy,
	StateSlowPushAlly,
	StateCrashEnemy,
	StateCrashAlly,
	StateBounce,
}

// String returns the display label.
func (s State) String() string { return string(s) }
