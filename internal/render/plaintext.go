package render

import (
	"errors"
	"fmt"
	"strings"

	"torus-ca/internal/core"
)

// ErrBadPicture is returned by ParsePlaintext for malformed input.
var ErrBadPicture = errors.New("malformed plaintext picture")

// Plaintext glyphs.
const (
	GlyphDead  = '.'
	GlyphAlive = 'O'
	GlyphDying = 'o'
)

// Plaintext draws the grid one row per line, top row first.
func Plaintext(g *core.Grid) string {
	var b strings.Builder
	b.Grow((g.W + 1) * g.H)
	cells := g.Cells()
	for y := 0; y < g.H; y++ {
		for _, c := range cells[y*g.W : (y+1)*g.W] {
			switch c {
			case core.Alive:
				b.WriteByte(GlyphAlive)
			case core.Dying:
				b.WriteByte(GlyphDying)
			default:
				b.WriteByte(GlyphDead)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ParsePlaintext reads a picture written by Plaintext. Lines starting with
// '!' are comments. Short rows are padded with dead cells; '*' and 'X' are
// accepted as live glyphs.
func ParsePlaintext(s string) (*core.Grid, error) {
	var rows []string
	width := 0
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, "!") {
			continue
		}
		rows = append(rows, line)
		if len(line) > width {
			width = len(line)
		}
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 || width == 0 {
		return nil, fmt.Errorf("%w: empty", ErrBadPicture)
	}
	g, err := core.NewGrid(width, len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			switch row[x] {
			case GlyphAlive, '*', 'X':
				g.Set(x, y, core.Alive)
			case GlyphDying:
				g.Set(x, y, core.Dying)
			case GlyphDead, ' ':
			default:
				return nil, fmt.Errorf("%w: unexpected %q at line %d column %d", ErrBadPicture, row[x], y+1, x+1)
			}
		}
	}
	return g, nil
}

// Stamp copies the non-dead cells of pattern onto g with its top-left corner
// at (ox, oy), wrapping around the torus.
func Stamp(g, pattern *core.Grid, ox, oy int) {
	for y := 0; y < pattern.H; y++ {
		for x := 0; x < pattern.W; x++ {
			if s := pattern.Get(x, y); s != core.Dead {
				g.Set(ox+x, oy+y, s)
			}
		}
	}
}
