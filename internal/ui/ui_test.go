package ui

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/wavemaster/internal/dodge"
	"github.com/samdwyer/wavemaster/internal/entity"
	"github.com/samdwyer/wavemaster/internal/game"
	"github.com/samdwyer/wavemaster/internal/gamedata"
	"github.com/samdwyer/wavemaster/internal/store"
	"github.com/samdwyer/wavemaster/internal/telemetry"
	"github.com/samdwyer/wavemaster/internal/world"
)

type testUI struct {
	sim      tcell.SimulationScreen
	session  *game.Session
	renderer *Renderer
	input    *Input
}

func newTestUI(t *testing.T, width, height int) *testUI {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom: %v", err)
	}
	t.Cleanup(screen.Close)
	sim.SetSize(width, height)

	registry := gamedata.MustLoadRegistry()
	cfg := game.DefaultConfig()
	cfg.Seed = 3
	session := game.NewSession(cfg, registry, store.NewMemoryStore(),
		game.WithTracer(telemetry.NoopTracer()),
		game.WithLogger(slog.New(slog.DiscardHandler)),
	)

	r := NewRenderer(screen, registry, session.Lane(), dodge.DefaultConfig().SpawnDistance)
	r.Attach(session.Dispatcher())
	return &testUI{sim: sim, session: session, renderer: r, input: NewInput(r)}
}

func (u *testUI) row(y int) string {
	w, _ := u.sim.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := u.sim.GetContent(x, y)
		b.WriteRune(ch)
	}
	return b.String()
}

func (u *testUI) text() string {
	_, h := u.sim.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = u.row(y)
	}
	return strings.Join(rows, "\n")
}

func TestViewport(t *testing.T) {
	v := Viewport{HalfX: 10, HalfZ: 40, Left: 0, Top: 2, Width: 81, Height: 21}

	tests := []struct {
		p        world.Vec2
		col, row int
	}{
		{world.Vec2{X: -10, Z: -40}, 0, 2},
		{world.Vec2{X: 10, Z: 40}, 80, 22},
		{world.Vec2{}, 40, 12},
		{world.Vec2{X: 5, Z: -20}, 20, 17},
	}
	for _, tt := range tests {
		col, row, ok := v.ToScreen(tt.p)
		if !ok || col != tt.col || row != tt.row {
			t.Errorf("ToScreen(%+v) = %d,%d,%v; want %d,%d", tt.p, col, row, ok, tt.col, tt.row)
		}
		back, ok := v.ToWorld(tt.col, tt.row)
		if !ok || math.Abs(back.X-tt.p.X) > 1e-9 || math.Abs(back.Z-tt.p.Z) > 1e-9 {
			t.Errorf("ToWorld(%d,%d) = %+v, want %+v", tt.col, tt.row, back, tt.p)
		}
	}

	if _, _, ok := v.ToScreen(world.Vec2{Z: 41}); ok {
		t.Error("point beyond the lane should not be visible")
	}
	if _, ok := v.ToWorld(0, 1); ok {
		t.Error("header row should not map to the field")
	}
}

func TestRenderMenu(t *testing.T) {
	u := newTestUI(t, 100, 30)
	u.renderer.Render()

	text := u.text()
	for _, want := range []string{"Choose a mode:", "1  Tutorial", "2  Freeplay", "3  Survival"} {
		if !strings.Contains(text, want) {
			t.Errorf("menu missing %q", want)
		}
	}
}

func TestRenderTooSmall(t *testing.T) {
	u := newTestUI(t, 20, 5)
	u.renderer.Render()

	if !strings.HasPrefix(u.row(0), "Terminal too small") {
		t.Errorf("row 0 = %q", u.row(0))
	}
}

func TestRenderLane(t *testing.T) {
	u := newTestUI(t, 100, 30)
	ctx := context.Background()
	u.session.Start(ctx, game.ModeFreeplay)
	u.session.Tick(ctx, 100*time.Millisecond)
	u.renderer.Render()

	header := u.row(0)
	for _, want := range []string{"FREEPLAY", "Wave 1", "EVEN", "00:00"} {
		if !strings.Contains(header, want) {
			t.Errorf("header %q missing %q", header, want)
		}
	}

	col, row, ok := u.renderer.Viewport().ToScreen(u.session.Champion().Position())
	if !ok {
		t.Fatal("champion should be inside the field")
	}
	if ch, _, _, _ := u.sim.GetContent(col, row); ch != '@' {
		t.Errorf("champion cell = %q, want '@'", ch)
	}

	_, h := u.sim.Size()
	if cd := u.row(h - 3); !strings.Contains(cd, "Power Strike ready") || !strings.Contains(cd, "Sprint ready") {
		t.Errorf("cooldown row = %q", cd)
	}
	if stats := u.row(h - 4); !strings.Contains(stats, "Gold 0") {
		t.Errorf("stats row = %q", stats)
	}
}

func TestRenderRewardPop(t *testing.T) {
	u := newTestUI(t, 100, 30)
	ctx := context.Background()
	u.session.Start(ctx, game.ModeFreeplay)
	u.session.Tick(ctx, 100*time.Millisecond)

	enemy := u.session.Waves().Add(entity.TeamEnemy, gamedata.ArchetypeLight, world.Vec2{Z: -18})
	enemy.TakeDamage(enemy.Health() - 5)
	if !u.session.Apply(ctx, game.Attack{}) {
		t.Fatal("attack should land")
	}
	u.renderer.Render()

	if !strings.Contains(u.text(), "+21g") {
		t.Error("reward pop not drawn")
	}

	u.session.Tick(ctx, 100*time.Millisecond)
	for i := 0; i < 10; i++ {
		u.session.Tick(ctx, 100*time.Millisecond)
	}
	u.renderer.Render()
	if strings.Contains(u.text(), "+21g") {
		t.Error("reward pop should expire after a second")
	}
}

func TestRenderTutorialStep(t *testing.T) {
	u := newTestUI(t, 120, 30)
	ctx := context.Background()
	u.session.Start(ctx, game.ModeTutorial)
	u.session.Tick(ctx, 100*time.Millisecond)
	u.renderer.Render()

	_, h := u.sim.Size()
	if line := u.row(h - 2); !strings.Contains(line, "(1/5)") {
		t.Errorf("tutorial line = %q", line)
	}

	u.session.Apply(ctx, game.TutorialNext{})
	u.renderer.Render()
	if line := u.row(h - 2); !strings.Contains(line, "(2/5)") {
		t.Errorf("tutorial line after next = %q", line)
	}
}

func TestRenderPaused(t *testing.T) {
	u := newTestUI(t, 100, 30)
	ctx := context.Background()
	u.session.Start(ctx, game.ModeFreeplay)
	u.session.Apply(ctx, game.Pause{})
	u.renderer.Render()

	if !strings.Contains(u.row(0), "PAUSED") {
		t.Errorf("header = %q, want PAUSED", u.row(0))
	}
}

func TestTranslateKeys(t *testing.T) {
	u := newTestUI(t, 100, 30)

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want game.Command
	}{
		{"power strike", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), game.Cast{Slot: gamedata.SlotA}},
		{"shockwave", tcell.NewEventKey(tcell.KeyRune, 'Z', tcell.ModNone), game.Cast{Slot: gamedata.SlotZ}},
		{"sprint", tcell.NewEventKey(tcell.KeyRune, 'e', tcell.ModNone), game.Cast{Slot: gamedata.SlotE}},
		{"attack", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), game.Attack{}},
		{"cycle", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), game.CycleTarget{}},
		{"pause", tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), game.TogglePause{}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), game.TogglePause{}},
		{"restart", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), game.Restart{}},
		{"prev page", tcell.NewEventKey(tcell.KeyRune, '[', tcell.ModNone), game.TutorialPrev{}},
		{"next page", tcell.NewEventKey(tcell.KeyRune, ']', tcell.ModNone), game.TutorialNext{}},
		{"tutorial", tcell.NewEventKey(tcell.KeyRune, '1', tcell.ModNone), game.SelectMode{Mode: game.ModeTutorial}},
		{"survival", tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone), game.SelectMode{Mode: game.ModeSurvival}},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := u.input.Translate(tt.ev)
			if got.Command != tt.want || got.Exit {
				t.Errorf("Translate = %+v, want %#v", got, tt.want)
			}
		})
	}
}

func TestTranslateQuit(t *testing.T) {
	u := newTestUI(t, 100, 30)
	q := tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)

	if got := u.input.Translate(q); !got.Exit {
		t.Error("Q in the menu should exit")
	}
	if got := u.input.Translate(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)); !got.Exit {
		t.Error("Ctrl-C should always exit")
	}

	u.session.Start(context.Background(), game.ModeFreeplay)
	if got := u.input.Translate(q); got.Exit || got.Command != (game.QuitToMenu{}) {
		t.Errorf("Q while playing = %+v, want quit to menu", got)
	}
}

func TestTranslateArrows(t *testing.T) {
	u := newTestUI(t, 100, 30)
	ctx := context.Background()
	u.session.Start(ctx, game.ModeFreeplay)
	u.session.Tick(ctx, 100*time.Millisecond)

	got := u.input.Translate(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	want := game.MoveTo{Point: world.Vec2{Z: -20 + arrowStep}}
	if got.Command != want {
		t.Errorf("right arrow = %+v, want %+v", got.Command, want)
	}
}

func TestTranslateMouse(t *testing.T) {
	u := newTestUI(t, 100, 30)
	ctx := context.Background()
	u.session.Start(ctx, game.ModeFreeplay)
	u.session.Waves().Clear()
	enemy := u.session.Waves().Add(entity.TeamEnemy, gamedata.ArchetypeRanged, world.Vec2{Z: 10})
	u.session.Tick(ctx, 100*time.Millisecond)

	v := u.renderer.Viewport()
	col, row, ok := v.ToScreen(enemy.Position())
	if !ok {
		t.Fatal("enemy should be visible")
	}

	got := u.input.Translate(tcell.NewEventMouse(col, row, tcell.Button2, tcell.ModNone))
	if got.Command != (game.Attack{Target: enemy.ID()}) {
		t.Errorf("right-click on enemy = %+v, want attack", got.Command)
	}

	got = u.input.Translate(tcell.NewEventMouse(col, row, tcell.Button1, tcell.ModNone))
	if got.Command != (game.SelectTarget{ID: enemy.ID()}) {
		t.Errorf("left-click on enemy = %+v, want select", got.Command)
	}

	empty, _ := v.ToWorld(5, v.Top+1)
	got = u.input.Translate(tcell.NewEventMouse(5, v.Top+1, tcell.Button2, tcell.ModNone))
	if got.Command != (game.MoveTo{Point: empty}) {
		t.Errorf("right-click on ground = %+v, want move to %+v", got.Command, empty)
	}

	if got := u.input.Translate(tcell.NewEventMouse(5, v.Top+1, tcell.ButtonNone, tcell.ModNone)); got.Command != nil {
		t.Error("mouse motion should map to nothing")
	}
}
