// Package ui is the terminal front end: a tcell screen, a HUD renderer fed by
// session events and an input mapper that turns key and mouse events into
// session commands.
package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Screen wraps tcell.Screen with a simplified interface.
type Screen struct {
	screen tcell.Screen
}

// NewScreen creates and initializes a new terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewScreenFrom(s)
}

// NewScreenFrom initializes s, which may be a simulation screen.
func NewScreenFrom(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.EnableMouse()
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close finalizes the screen and restores terminal state. A blocked
// PollEvent returns nil afterwards.
func (s *Screen) Close() {
	s.screen.Fini()
}

// PollEvent waits for and returns the next terminal event.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Clear clears the screen buffer.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show flushes the screen buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// SetContent sets a single cell's content at the given position.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// PutGlyph draws a glyph that may span several runes, such as an emoji with
// a variation selector. Wide glyphs blank the following cell. It returns the
// number of columns used.
func (s *Screen) PutGlyph(x, y int, glyph string, style tcell.Style) int {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return 0
	}
	s.screen.SetContent(x, y, runes[0], runes[1:], style)
	w := runewidth.StringWidth(glyph)
	if w == 2 {
		s.screen.SetContent(x+1, y, ' ', nil, style)
	}
	return max(w, 1)
}

// DrawText writes text from column x, stopping at the right edge of the
// screen. It returns the column after the last cell written.
func (s *Screen) DrawText(x, y int, text string, style tcell.Style) int {
	width, _ := s.Size()
	if x >= width {
		return x
	}
	text = runewidth.Truncate(text, width-x, "")
	col := x
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		s.screen.SetContent(col, y, ch, nil, style)
		col += w
	}
	return col
}

// Size returns the current terminal dimensions.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Sync forces a complete redraw of the screen.
func (s *Screen) Sync() {
	s.screen.Sync()
}
