package game

import "fmt"

// Mode selects what a session plays.
type Mode int

const (
	ModeTutorial Mode = iota
	ModeFreeplay
	ModeSurvival
)

// Modes lists every mode in menu order.
var Modes = [...]Mode{ModeTutorial, ModeFreeplay, ModeSurvival}

// String returns the mode identifier used in the data files.
func (m Mode) String() string {
	switch m {
	case ModeTutorial:
		return "tutorial"
	case ModeFreeplay:
		return "freeplay"
	case ModeSurvival:
		return "survival"
	default:
		return "unknown"
	}
}

// Lane reports whether the mode runs minion waves.
func (m Mode) Lane() bool {
	return m == ModeTutorial || m == ModeFreeplay
}

// ParseMode maps an identifier to a Mode.
func ParseMode(id string) (Mode, error) {
	for _, m := range Modes {
		if m.String() == id {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", id)
}
