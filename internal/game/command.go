package game

import (
	"github.com/google/uuid"

	"github.com/samdwyer/wavemaster/internal/gamedata"
	"github.com/samdwyer/wavemaster/internal/world"
)

// Command is a player request, applied on the frame loop by Session.Apply.
type Command interface {
	command()
}

// MoveTo orders the champion to walk to a lane point.
type MoveTo struct{ Point world.Vec2 }

// Attack makes a basic attack. A nil Target picks the enemy with the least
// health within attack range.
type Attack struct{ Target uuid.UUID }

// Cast uses an ability.
type Cast struct{ Slot gamedata.Slot }

// SelectTarget focuses an enemy unit.
type SelectTarget struct{ ID uuid.UUID }

// CycleTarget focuses the next alive enemy.
type CycleTarget struct{}

type (
	Pause        struct{}
	Resume       struct{}
	TogglePause  struct{}
	Restart      struct{}
	QuitToMenu   struct{}
	TutorialNext struct{}
	TutorialPrev struct{}
)

// SelectMode starts a mode from any state.
type SelectMode struct{ Mode Mode }

func (MoveTo) command()       {}
func (Attack) command()       {}
func (Cast) command()         {}
func (SelectTarget) command() {}
func (CycleTarget) command()  {}
func (Pause) command()        {}
func (Resume) command()       {}
func (TogglePause) command()  {}
func (Restart) command()      {}
func (QuitToMenu) command()   {}
func (TutorialNext) command() {}
func (TutorialPrev) command() {}
func (SelectMode) command()   {}
