// Package tui draws the board projection and the on-screen keyboard in a
// terminal, and turns raw terminal bytes into key identifiers.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/robalobadob/wordle/apps/go-engine/internal/config"
	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
)

// KeyboardRows is the on-screen keyboard layout.
var KeyboardRows = [][]string{
	{"Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P"},
	{"A", "S", "D", "F", "G", "H", "J", "K", "L"},
	{game.KeyEnter, "Z", "X", "C", "V", "B", "N", "M", game.KeyBackspace},
}

// Palette maps marks to terminal colours.
type Palette struct {
	profile   termenv.Profile
	rightSpot termenv.Color
	wrongSpot termenv.Color
	notInWord termenv.Color
	tile      termenv.Color
	key       termenv.Color
	letter    termenv.Color
}

// NewPalette converts theme hex colours for the given colour profile.
func NewPalette(p termenv.Profile, t config.Theme) Palette {
	return Palette{
		profile:   p,
		rightSpot: p.Color(t.RightSpot),
		wrongSpot: p.Color(t.WrongSpot),
		notInWord: p.Color(t.NotInWord),
		tile:      p.Color(t.Tile),
		key:       p.Color(t.Key),
		letter:    p.Color(t.Letter),
	}
}

// Background returns the fill colour for a mark; fallback is used for MarkNone.
func (p Palette) Background(m game.Mark, fallback termenv.Color) termenv.Color {
	switch m {
	case game.MarkCorrect:
		return p.rightSpot
	case game.MarkPresent:
		return p.wrongSpot
	case game.MarkAbsent:
		return p.notInWord
	}
	return fallback
}

func (p Palette) paint(text string, bg termenv.Color) string {
	return p.profile.String(text).Foreground(p.letter).Background(bg).Bold().String()
}

// Renderer writes full frames. Each frame is a complete redraw.
type Renderer struct {
	out     io.Writer
	palette Palette
	rows    int
	cols    int
}

func NewRenderer(out io.Writer, palette Palette, cols, rows int) *Renderer {
	return &Renderer{out: out, palette: palette, rows: rows, cols: cols}
}

// Frame is everything one redraw needs.
type Frame struct {
	Cells    []game.CellUpdate
	Keyboard map[byte]game.Mark
	State    game.RunState
	Message  string
	Answer   string
}

// Board renders the grid. Rows beyond the projection are drawn empty.
func (r *Renderer) Board(cells []game.CellUpdate) string {
	grid := make([][]game.CellUpdate, r.rows)
	for i := range grid {
		grid[i] = make([]game.CellUpdate, r.cols)
	}
	for _, c := range cells {
		if c.Row < r.rows && c.Col < r.cols {
			grid[c.Row][c.Col] = c
		}
	}

	var b strings.Builder
	for _, row := range grid {
		for i, c := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			letter := " "
			if c.Letter != "" {
				letter = strings.ToUpper(c.Letter)
			}
			b.WriteString(r.palette.paint(" "+letter+" ", r.palette.Background(c.Mark, r.palette.tile)))
		}
		b.WriteString("\r\n")
	}
	return b.String()
}

// Keys renders the keyboard with each letter coloured by its best mark.
func (r *Renderer) Keys(hints map[byte]game.Mark) string {
	var b strings.Builder
	for i, row := range KeyboardRows {
		b.WriteString(strings.Repeat(" ", i))
		for j, k := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			var m game.Mark
			if len(k) == 1 {
				m = hints[k[0]+('a'-'A')]
			}
			b.WriteString(r.palette.paint(" "+k+" ", r.palette.Background(m, r.palette.key)))
		}
		b.WriteString("\r\n")
	}
	return b.String()
}

// Status renders the message line below the keyboard.
func Status(f Frame) string {
	switch f.State {
	case game.StateWon:
		return "You got it! Press ENTER for a new word, Esc to quit."
	case game.StateLost:
		return fmt.Sprintf("The word was %s. Press ENTER for a new word, Esc to quit.", strings.ToUpper(f.Answer))
	}
	return f.Message
}

// Draw clears the screen and writes a full frame.
func (r *Renderer) Draw(f Frame) error {
	var b strings.Builder
	b.WriteString("\x1b[H\x1b[2J")
	b.WriteString(r.Board(f.Cells))
	b.WriteString("\r\n")
	b.WriteString(r.Keys(f.Keyboard))
	b.WriteString("\r\n")
	b.WriteString(Status(f))
	b.WriteString("\r\n")
	_, err := io.WriteString(r.out, b.String())
	return err
}
