package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/samdwyer/wavemaster/internal/entity"
	"github.com/samdwyer/wavemaster/internal/event"
	"github.com/samdwyer/wavemaster/internal/game"
	"github.com/samdwyer/wavemaster/internal/gamedata"
	"github.com/samdwyer/wavemaster/internal/store"
	"github.com/samdwyer/wavemaster/internal/world"
)

// Screen layout.
const (
	headerRows = 2 // status line and separator
	hudRows    = 5 // separator, stats, cooldowns, message, help
	minWidth   = 40
	minHeight  = headerRows + hudRows + 5
)

// popTTL is how long a reward pop stays on screen, in session time.
const popTTL = time.Second

const helpLine = "A/Z/E abilities  Space attack  Tab target  right-click move  P pause  R restart  Q menu"

type pop struct {
	text  string
	at    world.Vec2
	until time.Duration
}

// Renderer draws the session from the events it receives. It keeps the last
// snapshot, so Render can be called at any rate.
type Renderer struct {
	screen   *Screen
	registry *gamedata.Registry
	lane     world.Lane
	arena    float64

	allyStyle     tcell.Style
	enemyStyle    tcell.Style
	championStyle tcell.Style
	groundStyle   tcell.Style
	dimStyle      tcell.Style

	snap     event.TickSnapshot
	mode     string
	state    string
	banner   string
	tutorial *event.TutorialStep
	board    []store.Entry
	pops     []pop

	unsubscribe []func()
}

// NewRenderer creates a renderer for a lane and a dodge arena of the given
// half extent.
func NewRenderer(screen *Screen, registry *gamedata.Registry, lane world.Lane, arena float64) *Renderer {
	ally, enemy := registry.TeamColors()
	return &Renderer{
		screen:        screen,
		registry:      registry,
		lane:          lane,
		arena:         arena,
		allyStyle:     tcell.StyleDefault.Foreground(gamedata.ColorOr(ally, tcell.ColorBlue)),
		enemyStyle:    tcell.StyleDefault.Foreground(gamedata.ColorOr(enemy, tcell.ColorRed)),
		championStyle: tcell.StyleDefault.Foreground(gamedata.ColorOr(registry.Champion.Color, tcell.ColorPurple)).Bold(true),
		groundStyle:   tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray),
		dimStyle:      tcell.StyleDefault.Foreground(tcell.ColorGray),
		mode:          game.ModeTutorial.String(),
		state:         game.StateMenu.String(),
	}
}

// Attach subscribes the renderer to every event it draws.
func (r *Renderer) Attach(d *event.Dispatcher) {
	for _, t := range []event.Type{
		event.TypeTickSnapshot,
		event.TypeRewardPop,
		event.TypeWaveStateChanged,
		event.TypeWaveSpawned,
		event.TypeTutorialStep,
		event.TypeModeChanged,
		event.TypeDodgeOver,
	} {
		r.unsubscribe = append(r.unsubscribe, d.SubscribeFunc(t, r.handle))
	}
}

// Detach removes the renderer's subscriptions.
func (r *Renderer) Detach() {
	for _, unsubscribe := range r.unsubscribe {
		unsubscribe()
	}
	r.unsubscribe = nil
}

func (r *Renderer) handle(e event.Event) {
	switch e := e.(type) {
	case event.TickSnapshot:
		r.snap = e
		r.mode, r.state = e.Mode, e.State
		r.pops = expire(r.pops, e.Now)
	case event.RewardPop:
		text := fmt.Sprintf("+%dg", e.Gold)
		if e.Bonus > 0 {
			text = fmt.Sprintf("+%dg x%d", e.Gold, e.Combo)
		}
		r.pops = append(r.pops, pop{text: text, at: e.At, until: r.snap.Now + popTTL})
	case event.WaveStateChanged:
		r.banner = "Lane: " + e.Current
	case event.WaveSpawned:
		r.banner = fmt.Sprintf("Wave %d incoming", e.Wave)
		if e.Heavy {
			r.banner += " with a cannon"
		}
	case event.TutorialStep:
		step := e
		r.tutorial = &step
	case event.ModeChanged:
		entering := e.State == game.StatePlaying.String() &&
			(e.Mode != r.mode || r.state == game.StateMenu.String())
		if entering {
			r.snap = event.TickSnapshot{}
			r.pops = nil
			r.banner = ""
		}
		r.mode, r.state = e.Mode, e.State
		if e.Mode != game.ModeTutorial.String() {
			r.tutorial = nil
		}
	case event.DodgeOver:
		r.board = e.Leaderboard
		r.banner = fmt.Sprintf("Hit! You survived %ds", e.Score)
		if e.NewHigh {
			r.banner += ", a new best"
		}
	}
}

func expire(pops []pop, now time.Duration) []pop {
	kept := pops[:0]
	for _, p := range pops {
		if p.until > now {
			kept = append(kept, p)
		}
	}
	return kept
}

// State returns the last play state the renderer saw.
func (r *Renderer) State() string { return r.state }

// Champion returns the champion position of the last snapshot.
func (r *Renderer) Champion() world.Vec2 { return r.snap.Champion }

// Viewport returns the field area for the current mode and screen size.
func (r *Renderer) Viewport() Viewport {
	w, h := r.screen.Size()
	v := Viewport{
		HalfX:  r.lane.HalfWidth,
		HalfZ:  r.lane.HalfLength,
		Left:   0,
		Top:    headerRows,
		Width:  w,
		Height: h - headerRows - hudRows,
	}
	if r.mode == game.ModeSurvival.String() {
		v.HalfX, v.HalfZ = r.arena, r.arena
	}
	return v
}

// UnitAt returns the alive unit drawn at a cell, preferring the one drawn last.
func (r *Renderer) UnitAt(col, row int) (event.UnitView, bool) {
	v := r.Viewport()
	for i := len(r.snap.Units) - 1; i >= 0; i-- {
		u := r.snap.Units[i]
		if !u.Alive {
			continue
		}
		if c, rw, ok := v.ToScreen(u.Position); ok && c == col && rw == row {
			return u, true
		}
	}
	return event.UnitView{}, false
}

// Render draws the whole frame and flushes it.
func (r *Renderer) Render() {
	r.screen.Clear()
	defer r.screen.Show()

	w, h := r.screen.Size()
	if w < minWidth || h < minHeight {
		r.screen.DrawText(0, 0, "Terminal too small", r.dimStyle)
		return
	}

	r.drawHeader(w)
	if r.state == game.StateMenu.String() {
		r.drawMenu()
		return
	}
	r.drawField()
	r.drawHUD(w, h)
}

func (r *Renderer) drawHeader(w int) {
	parts := []string{"WAVE MASTER", strings.ToUpper(r.mode), formatClock(r.snap.Now)}
	if r.state == game.StatePaused.String() {
		parts = append(parts, "PAUSED")
	}
	if r.isLane() && r.state != game.StateMenu.String() {
		lane := r.snap.Lane
		parts = append(parts, fmt.Sprintf("Wave %d", lane.Wave), lane.Label)
		if lane.NextWave > 0 {
			parts = append(parts, fmt.Sprintf("next in %ds", int(lane.NextWave.Seconds()+0.999)))
		}
	}
	r.screen.DrawText(1, 0, strings.Join(parts, "  |  "), tcell.StyleDefault.Bold(true))
	r.hline(1, w)
}

func (r *Renderer) drawMenu() {
	y := headerRows + 1
	r.screen.DrawText(2, y, "Choose a mode:", tcell.StyleDefault.Bold(true))
	for i, m := range r.registry.Modes() {
		y++
		r.screen.DrawText(4, y, fmt.Sprintf("%d  %s", i+1, m.Name), tcell.StyleDefault)
	}
	y += 2
	if r.banner != "" {
		r.screen.DrawText(2, y, r.banner, tcell.StyleDefault.Foreground(tcell.ColorYellow))
		y += 2
	}
	if len(r.board) > 0 {
		r.screen.DrawText(2, y, "Best survival runs:", tcell.StyleDefault.Bold(true))
		for i, e := range r.board {
			y++
			line := fmt.Sprintf("%d. %4ds  %s", i+1, e.Score, e.Timestamp.Local().Format("2006-01-02 15:04"))
			r.screen.DrawText(4, y, line, tcell.StyleDefault)
		}
	}
	_, h := r.screen.Size()
	r.screen.DrawText(1, h-1, "1/2/3 start  Q exit", r.dimStyle)
}

func (r *Renderer) drawField() {
	v := r.Viewport()
	for row := v.Top; row < v.Top+v.Height; row++ {
		for col := v.Left; col < v.Left+v.Width; col++ {
			r.screen.SetContent(col, row, '·', r.groundStyle)
		}
	}

	if r.isLane() {
		r.put(v, world.Vec2{Z: r.lane.AllyTowerZ}, 'T', r.allyStyle.Bold(true))
		r.put(v, world.Vec2{Z: r.lane.EnemyTowerZ}, 'T', r.enemyStyle.Bold(true))
		for _, u := range r.snap.Units {
			r.put(v, u.Position, r.unitGlyph(u), r.unitStyle(u))
		}
	} else {
		for _, p := range r.snap.Dodge.Projectiles {
			r.put(v, p, '*', tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
		}
	}

	if r.snap.MoveOrder != nil {
		r.put(v, *r.snap.MoveOrder, '+', r.championStyle.Bold(false))
	}
	r.put(v, r.snap.Champion, r.registry.Champion.GlyphRune(), r.championStyle)

	popStyle := tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
	for _, p := range r.pops {
		if col, row, ok := v.ToScreen(p.at); ok {
			r.screen.DrawText(col, max(row-1, v.Top), p.text, popStyle)
		}
	}
}

func (r *Renderer) unitGlyph(u event.UnitView) rune {
	if !u.Alive {
		return 'x'
	}
	return r.registry.Stats.Get(u.Archetype).GlyphRune()
}

func (r *Renderer) unitStyle(u event.UnitView) tcell.Style {
	if !u.Alive {
		return r.dimStyle
	}
	style := r.allyStyle
	if u.Team == entity.TeamEnemy {
		style = r.enemyStyle
	}
	if u.ID != uuid.Nil && u.ID == r.snap.TargetID {
		style = style.Reverse(true)
	}
	if u.AttackingTower {
		style = style.Underline(true)
	}
	return style
}

func (r *Renderer) put(v Viewport, p world.Vec2, ch rune, style tcell.Style) {
	if col, row, ok := v.ToScreen(p); ok {
		r.screen.SetContent(col, row, ch, style)
	}
}

func (r *Renderer) drawHUD(w, h int) {
	top := h - hudRows
	r.hline(top, w)

	s := r.snap.Stats
	stats := fmt.Sprintf("Gold %d  XP %d  Last hits %d  Combo %d (best %d)", s.Gold, s.XP, s.LastHits, s.Combo, s.MaxCombo)
	if !r.isLane() {
		d := r.snap.Dodge
		stats = fmt.Sprintf("Score %d  Level %d  Best %d", d.Score, d.Level, d.HighScore)
	}
	r.screen.DrawText(1, top+1, stats, tcell.StyleDefault)

	r.drawCooldowns(top + 2)

	switch {
	case r.tutorial != nil:
		t := r.tutorial
		r.screen.DrawText(1, top+3, fmt.Sprintf("(%d/%d) %s: %s  [ ] pages", t.Index+1, t.Total, t.Title, t.Body), tcell.StyleDefault.Foreground(tcell.ColorLightCyan))
	case r.banner != "":
		r.screen.DrawText(1, top+3, r.banner, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}

	r.screen.DrawText(1, top+4, helpLine, r.dimStyle)
}

func (r *Renderer) drawCooldowns(y int) {
	col := 1
	for _, cd := range r.snap.Cooldowns {
		def := r.registry.Abilities.Get(cd.Slot)
		if def == nil {
			continue
		}
		style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
		status := "ready"
		if !cd.Ready {
			style = r.dimStyle
			status = fmt.Sprintf("%.1fs", cd.Remaining.Seconds())
		}
		col = r.screen.DrawText(col, y, fmt.Sprintf("[%s] ", cd.Slot), style)
		col += r.screen.PutGlyph(col, y, def.Icon, style)
		col = r.screen.DrawText(col, y, fmt.Sprintf(" %s %s    ", def.Name, status), style)
	}
}

func (r *Renderer) hline(y, w int) {
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', r.dimStyle)
	}
}

func (r *Renderer) isLane() bool {
	return r.mode != game.ModeSurvival.String()
}

func formatClock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
