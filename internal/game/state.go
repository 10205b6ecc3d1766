// Package game owns a play session: the lane, the champion, the dodge
// minigame and the mode that ties them together.
package game

// State is the play state of a session.
type State int

const (
	// StateMenu means no mode is running; ticks do nothing.
	StateMenu State = iota
	// StatePlaying runs the simulation every tick.
	StatePlaying
	// StatePaused freezes the simulation until resumed.
	StatePaused
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}
