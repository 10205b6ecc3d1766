package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/wavemaster/internal/entity"
	"github.com/samdwyer/wavemaster/internal/game"
	"github.com/samdwyer/wavemaster/internal/gamedata"
	"github.com/samdwyer/wavemaster/internal/world"
)

// arrowStep is how far one arrow key press moves the move order.
const arrowStep = 4.0

// Action is what one terminal event asks of the frame loop.
type Action struct {
	Command game.Command // nil when the event maps to no command
	Exit    bool
}

// Input maps terminal events to session commands. Mouse clicks and arrow keys
// resolve against the renderer's last frame.
type Input struct {
	renderer *Renderer
}

// NewInput creates an input mapper over r.
func NewInput(r *Renderer) *Input {
	return &Input{renderer: r}
}

// Translate maps ev to an Action. Q in the menu and Ctrl-C exit.
func (in *Input) Translate(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return in.key(ev)
	case *tcell.EventMouse:
		return in.mouse(ev)
	case *tcell.EventResize:
		in.renderer.screen.Sync()
	}
	return Action{}
}

func (in *Input) key(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return Action{Exit: true}
	case tcell.KeyEscape:
		return Action{Command: game.TogglePause{}}
	case tcell.KeyTab:
		return Action{Command: game.CycleTarget{}}
	case tcell.KeyUp:
		return in.nudge(world.Vec2{X: -arrowStep})
	case tcell.KeyDown:
		return in.nudge(world.Vec2{X: arrowStep})
	case tcell.KeyLeft:
		return in.nudge(world.Vec2{Z: -arrowStep})
	case tcell.KeyRight:
		return in.nudge(world.Vec2{Z: arrowStep})
	case tcell.KeyRune:
		return in.char(ev.Rune())
	}
	return Action{}
}

func (in *Input) char(r rune) Action {
	switch r {
	case 'a', 'A':
		return Action{Command: game.Cast{Slot: gamedata.SlotA}}
	case 'z', 'Z':
		return Action{Command: game.Cast{Slot: gamedata.SlotZ}}
	case 'e', 'E':
		return Action{Command: game.Cast{Slot: gamedata.SlotE}}
	case ' ':
		return Action{Command: game.Attack{}}
	case 'p', 'P':
		return Action{Command: game.TogglePause{}}
	case 'r', 'R':
		return Action{Command: game.Restart{}}
	case 'q', 'Q':
		if in.renderer.State() == game.StateMenu.String() {
			return Action{Exit: true}
		}
		return Action{Command: game.QuitToMenu{}}
	case '[':
		return Action{Command: game.TutorialPrev{}}
	case ']':
		return Action{Command: game.TutorialNext{}}
	case '1', '2', '3':
		return Action{Command: game.SelectMode{Mode: game.Modes[r-'1']}}
	}
	return Action{}
}

// nudge orders a move from the champion's last drawn position.
func (in *Input) nudge(delta world.Vec2) Action {
	return Action{Command: game.MoveTo{Point: in.renderer.Champion().Add(delta)}}
}

// mouse handles button presses: the primary button selects an enemy, the
// secondary button attacks the enemy under the cursor or moves there.
func (in *Input) mouse(ev *tcell.EventMouse) Action {
	buttons := ev.Buttons()
	if buttons&(tcell.Button1|tcell.Button2) == 0 {
		return Action{}
	}

	col, row := ev.Position()
	u, onUnit := in.renderer.UnitAt(col, row)
	enemy := onUnit && u.Team == entity.TeamEnemy

	if buttons&tcell.Button1 != 0 {
		if enemy {
			return Action{Command: game.SelectTarget{ID: u.ID}}
		}
		return Action{}
	}

	if enemy {
		return Action{Command: game.Attack{Target: u.ID}}
	}
	p, ok := in.renderer.Viewport().ToWorld(col, row)
	if !ok {
		return Action{}
	}
	return Action{Command: game.MoveTo{Point: p}}
}
