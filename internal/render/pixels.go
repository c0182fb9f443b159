package render

import (
	"image/color"

	"torus-ca/internal/core"
)

// DefaultPalette maps cell states to colours: black live cells on a white
// field, with dying cells in grey.
var DefaultPalette = []color.RGBA{
	core.Dead:  {R: 255, G: 255, B: 255, A: 255},
	core.Alive: {R: 0, G: 0, B: 0, A: 255},
	core.Dying: {R: 128, G: 128, B: 140, A: 255},
}

// FillRGBA converts cell states into RGBA pixels in buf using a palette
// indexed by state. States beyond the palette use its last entry. When the
// palette is empty the buffer is cleared to transparent black.
func FillRGBA(buf []byte, cells []core.CellState, palette []color.RGBA) {
	if len(buf) < len(cells)*4 {
		return
	}
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
